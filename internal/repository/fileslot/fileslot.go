// Package fileslot stores each durable slot as a single file under a
// directory.
package fileslot

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/entnt/dental-center/internal/repository"
)

type Slot struct {
	path string
}

// New returns a slot backed by <dir>/<name>. The directory is created if
// missing.
func New(dir, name string) (*Slot, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create slot directory: %w", err)
	}
	return &Slot{path: filepath.Join(dir, name)}, nil
}

func (s *Slot) Read(_ context.Context) ([]byte, error) {
	payload, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, repository.ErrSlotEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read slot %s: %w", s.path, err)
	}
	return payload, nil
}

// Write replaces the slot content atomically: the payload lands in a temp
// file first and is renamed over the slot, so a crash mid-write never leaves
// a truncated document behind.
func (s *Slot) Write(_ context.Context, payload []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write slot payload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace slot %s: %w", s.path, err)
	}
	return nil
}

func (s *Slot) Clear(_ context.Context) error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear slot %s: %w", s.path, err)
	}
	return nil
}
