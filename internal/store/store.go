// Package store persists finished drawings.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/Ash22686/Kolam-Kar/internal/state"
)

var ErrNotFound = errors.New("store: drawing not found")

// Saver accepts a finished drawing. Implementations may block on I/O; the
// caller decides whether to wait.
type Saver interface {
	Save(ctx context.Context, snap state.Snapshot) error
}

// Entry is a listing row.
type Entry struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Grid      state.GridSize `json:"grid"`
	Symmetry  state.Fold     `json:"symmetry"`
	Strokes   int            `json:"strokes"`
	CreatedAt time.Time      `json:"created_at"`
}

// FileStore keeps one JSON file per drawing in a directory, plus any
// rendered artifacts next to it.
type FileStore struct {
	dir string
	log *slog.Logger
}

func NewFileStore(dir string, log *slog.Logger) (*FileStore, error) {
	if log == nil {
		log = slog.Default()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}
	return &FileStore{dir: dir, log: log}, nil
}

func (s *FileStore) Dir() string { return s.dir }

func (s *FileStore) path(id, ext string) string {
	return filepath.Join(s.dir, id+ext)
}

// Save writes snap as <id>.json, replacing any earlier version.
func (s *FileStore) Save(ctx context.Context, snap state.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !state.ValidID(snap.ID) {
		return fmt.Errorf("store: bad drawing id %q", snap.ID)
	}
	if err := snap.Validate(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("store: encoding drawing: %w", err)
	}
	if err := s.write(s.path(snap.ID, ".json"), data); err != nil {
		return err
	}
	s.log.Info("drawing saved",
		slog.String("id", snap.ID),
		slog.String("name", snap.Name),
		slog.Int("strokes", len(snap.Strokes)))
	return nil
}

// SaveArtifact stores a derived file such as "<id>.png" beside the drawing.
func (s *FileStore) SaveArtifact(id, ext string, data []byte) error {
	if !state.ValidID(id) {
		return fmt.Errorf("store: bad drawing id %q", id)
	}
	return s.write(s.path(id, ext), data)
}

// write goes through a temp file so readers never see half a drawing.
func (s *FileStore) write(path string, data []byte) error {
	tmp, err := os.CreateTemp(s.dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("store: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("store: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("store: %w", err)
	}
	return nil
}

func (s *FileStore) Load(id string) (state.Snapshot, error) {
	if !state.ValidID(id) {
		return state.Snapshot{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	data, err := os.ReadFile(s.path(id, ".json"))
	if errors.Is(err, fs.ErrNotExist) {
		return state.Snapshot{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return state.Snapshot{}, fmt.Errorf("store: %w", err)
	}
	return state.DecodeSnapshot(bytes.NewReader(data))
}

// List returns every readable drawing, newest first. Unreadable files are
// skipped with a warning.
func (s *FileStore) List() ([]Entry, error) {
	files, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}
	var out []Entry
	for _, f := range files {
		id, ok := strings.CutSuffix(f.Name(), ".json")
		if f.IsDir() || !ok || !state.ValidID(id) {
			continue
		}
		snap, err := s.Load(id)
		if err != nil {
			s.log.Warn("skipping drawing", slog.String("file", f.Name()), slog.Any("err", err))
			continue
		}
		out = append(out, Entry{
			ID:        snap.ID,
			Name:      snap.Name,
			Grid:      snap.Grid,
			Symmetry:  snap.Symmetry,
			Strokes:   len(snap.Strokes),
			CreatedAt: snap.CreatedAt,
		})
	}
	slices.SortFunc(out, func(a, b Entry) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return out, nil
}
