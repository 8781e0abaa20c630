package input

import (
	"context"
	"fmt"
	"os"
	"time"

	"golang.org/x/term"
)

// KeyReader delivers key presses from a terminal in raw mode
type KeyReader struct {
	in     *os.File
	state  *term.State
	events chan RawInput
}

// NewKeyReader puts the terminal behind in into raw mode
func NewKeyReader(in *os.File) (*KeyReader, error) {
	state, err := term.MakeRaw(int(in.Fd()))
	if err != nil {
		return nil, fmt.Errorf("setting terminal to raw mode: %w", err)
	}
	return &KeyReader{
		in:     in,
		state:  state,
		events: make(chan RawInput, 16),
	}, nil
}

// Events returns the channel key presses arrive on
func (k *KeyReader) Events() <-chan RawInput {
	return k.events
}

// Start reads keys until ctx is done or the terminal read fails
func (k *KeyReader) Start(ctx context.Context) {
	go func() {
		defer close(k.events)
		buf := make([]byte, 32)
		for {
			n, err := k.in.Read(buf)
			if err != nil {
				return
			}
			for _, code := range DecodeKeys(buf[:n]) {
				select {
				case k.events <- RawInput{Device: DeviceTerminal, Code: code, Timestamp: time.Now()}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
}

// Close restores the terminal
func (k *KeyReader) Close() error {
	return term.Restore(int(k.in.Fd()), k.state)
}

// escape sequences for keys that send more than one byte
var escapeCodes = map[string]string{
	"[A":   "arrow_up",
	"[B":   "arrow_down",
	"[C":   "arrow_right",
	"[D":   "arrow_left",
	"OA":   "arrow_up",
	"OB":   "arrow_down",
	"OC":   "arrow_right",
	"OD":   "arrow_left",
	"[15~": "f5",
	"[19~": "f8",
	"[20~": "f9",
}

// DecodeKeys splits a chunk of raw terminal bytes into key codes.
// Unknown escape sequences are dropped.
func DecodeKeys(b []byte) []string {
	var codes []string
	for i := 0; i < len(b); i++ {
		c := b[i]
		switch {
		case c == 0x1b:
			if i+1 >= len(b) || (b[i+1] != '[' && b[i+1] != 'O') {
				codes = append(codes, "escape")
				continue
			}
			// Sequence runs to the first letter or '~'
			end := i + 2
			for end < len(b) && !isFinalByte(b[end]) {
				end++
			}
			if end >= len(b) {
				return codes
			}
			if code, ok := escapeCodes[string(b[i+1:end+1])]; ok {
				codes = append(codes, code)
			}
			i = end
		case c == 3:
			codes = append(codes, "ctrl_c")
		case c == '\r' || c == '\n':
			codes = append(codes, "enter")
		case c == ' ':
			codes = append(codes, "space")
		case c == '\t':
			codes = append(codes, "tab")
		case c > 32 && c < 127:
			codes = append(codes, string(c))
		}
	}
	return codes
}

func isFinalByte(c byte) bool {
	return c == '~' || (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}
