// Package locale holds the player facing text. Game code logs message keys
// such as GRID_CLEARED and renderers translate them here.
package locale

import (
	_ "embed"
	"fmt"
	"os"
	"sync"

	"github.com/leonelquinteros/gotext"
)

//go:embed en/default.po
var defaultPo []byte

var (
	mu      sync.RWMutex
	catalog map[string]string
)

func init() {
	catalog = parse(defaultPo)
}

// parse reads a .po file into a key to text catalog
func parse(data []byte) map[string]string {
	po := gotext.NewPo()
	po.Parse(data)
	out := make(map[string]string)
	for id, tr := range po.GetDomain().GetTranslations() {
		if id != "" {
			out[id] = tr.Get()
		}
	}
	return out
}

// LoadFile replaces the built-in catalog with a .po file
func LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading locale: %w", err)
	}
	c := parse(data)

	mu.Lock()
	catalog = c
	mu.Unlock()
	return nil
}

// Get returns the text for key. Keys with arguments come back as format
// strings for fmt.Sprintf. Unknown keys come back as is.
func Get(key string) string {
	mu.RLock()
	defer mu.RUnlock()
	if text, ok := catalog[key]; ok {
		return text
	}
	return key
}
