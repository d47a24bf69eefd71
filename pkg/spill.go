// Package pkg provides generic utilities for nbgrade.
package pkg

import (
	"encoding/gob"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
)

// Spill is an append-only, disk-backed sequence of T. It is safe for
// concurrent Append; Range replays items in append order.
type Spill[T any] interface {
	Len() int
	Path() string
	Append(item T) error
	Range(fn func(index int, item T) error) error
	Close() error
}

type gobSpill[T any] struct {
	mu      sync.Mutex
	path    string
	file    *os.File
	encoder *gob.Encoder
	length  int
	closed  bool
}

// NewSpill creates a spill file in dir, or in the OS temp dir when dir is
// empty. Close removes the file.
func NewSpill[T any](dir string) (Spill[T], error) {
	if dir == "" {
		dir = os.TempDir()
	}

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create spill directory: %w", err)
	}

	file, err := os.CreateTemp(dir, "nbgrade-spill-*.gob")
	if err != nil {
		return nil, fmt.Errorf("create spill file: %w", err)
	}

	slog.Debug("Created spill", "path", file.Name())

	return &gobSpill[T]{
		path:    file.Name(),
		file:    file,
		encoder: gob.NewEncoder(file),
	}, nil
}

func (s *gobSpill[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.length
}

func (s *gobSpill[T]) Path() string {
	return s.path
}

func (s *gobSpill[T]) Append(item T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return errors.New("spill is closed")
	}

	if err := s.encoder.Encode(item); err != nil {
		return fmt.Errorf("encode item %d: %w", s.length, err)
	}

	s.length++

	return nil
}

func (s *gobSpill[T]) Range(fn func(index int, item T) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return errors.New("spill is closed")
	}

	file, err := os.Open(s.path)
	if err != nil {
		return fmt.Errorf("open spill: %w", err)
	}

	defer func() { _ = file.Close() }()

	decoder := gob.NewDecoder(file)

	for i := range s.length {
		var item T
		if err := decoder.Decode(&item); err != nil {
			return fmt.Errorf("decode item %d: %w", i, err)
		}

		if err := fn(i, item); err != nil {
			return err
		}
	}

	return nil
}

func (s *gobSpill[T]) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true

	closeErr := s.file.Close()
	removeErr := os.Remove(s.path)

	slog.Debug("Closed spill", "path", s.path, "length", s.length)

	return errors.Join(closeErr, removeErr)
}
