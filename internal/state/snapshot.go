package state

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// Snapshot is a finished drawing handed to persistence. It is a value;
// nothing in the board keeps a reference to its strokes.
type Snapshot struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Grid      GridSize  `json:"grid"`
	Symmetry  Fold      `json:"symmetry"`
	Strokes   []Stroke  `json:"paths"`
	CreatedAt time.Time `json:"created_at"`
}

// NewSnapshot copies strokes into a new snapshot with a fresh id.
func NewSnapshot(name string, grid GridSize, fold Fold, strokes []Stroke) Snapshot {
	cp := make([]Stroke, len(strokes))
	for i, s := range strokes {
		cp[i] = s.Clone()
	}
	return Snapshot{
		ID:        NewID(),
		Name:      name,
		Grid:      grid,
		Symmetry:  fold,
		Strokes:   cp,
		CreatedAt: time.Now().UTC(),
	}
}

// Validate checks the grid, the symmetry and every stroke.
func (s Snapshot) Validate() error {
	if err := s.Grid.Validate(); err != nil {
		return err
	}
	if err := s.Symmetry.Validate(); err != nil {
		return err
	}
	for i, st := range s.Strokes {
		if err := st.Validate(); err != nil {
			return fmt.Errorf("path %d: %w", i, err)
		}
	}
	return nil
}

// DecodeSnapshot reads one JSON drawing and validates it.
func DecodeSnapshot(r io.Reader) (Snapshot, error) {
	var s Snapshot
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return Snapshot{}, fmt.Errorf("decoding drawing: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Snapshot{}, err
	}
	return s, nil
}
