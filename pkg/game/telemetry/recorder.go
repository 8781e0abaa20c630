// Package telemetry records destruction events and writes them as CSV.
package telemetry

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/spatial/r2"

	"hexpop/pkg/engine/world"
	"hexpop/pkg/game/destruction"
)

// PopRecord is one removed bubble.
type PopRecord struct {
	Seq    int     `csv:"seq"`
	Color  string  `csv:"color"`
	X      float64 `csv:"x"`
	Y      float64 `csv:"y"`
	Points int     `csv:"points"`
	Combo  int     `csv:"combo"`
}

// Recorder wraps an Effects collaborator and keeps a record of every pop.
// Calls are forwarded to the wrapped collaborator unchanged.
type Recorder struct {
	mu      sync.Mutex
	next    destruction.Effects
	records []PopRecord
	seq     int
}

// NewRecorder creates a recorder forwarding to next, which may be nil.
func NewRecorder(next destruction.Effects) *Recorder {
	return &Recorder{next: next}
}

// PlayPop implements destruction.Effects
func (r *Recorder) PlayPop(at r2.Vec, c world.Color) {
	r.mu.Lock()
	r.seq++
	r.records = append(r.records, PopRecord{
		Seq:   r.seq,
		Color: c.String(),
		X:     at.X,
		Y:     at.Y,
	})
	r.mu.Unlock()

	if r.next != nil {
		r.next.PlayPop(at, c)
	}
}

// PlayPopup implements destruction.Effects. The points and combo land on
// the most recent pop.
func (r *Recorder) PlayPopup(points int, at r2.Vec, combo int) {
	r.mu.Lock()
	if n := len(r.records); n > 0 {
		r.records[n-1].Points = points
		r.records[n-1].Combo = combo
	}
	r.mu.Unlock()

	if r.next != nil {
		r.next.PlayPopup(points, at, combo)
	}
}

// Records returns a copy of everything recorded so far.
func (r *Recorder) Records() []PopRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]PopRecord(nil), r.records...)
}

// Len returns the number of recorded pops.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}

// WriteCSV writes every record, with a header row, to w.
func (r *Recorder) WriteCSV(w io.Writer) error {
	records := r.Records()
	if len(records) == 0 {
		return nil
	}
	if err := gocsv.Marshal(records, w); err != nil {
		return fmt.Errorf("writing pop records: %w", err)
	}
	return nil
}

// WriteFile writes every record to a new CSV file at path.
func (r *Recorder) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := r.WriteCSV(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadCSV parses records previously written by WriteCSV.
func ReadCSV(rd io.Reader) ([]PopRecord, error) {
	var records []PopRecord
	if err := gocsv.Unmarshal(rd, &records); err != nil {
		return nil, fmt.Errorf("reading pop records: %w", err)
	}
	return records, nil
}
