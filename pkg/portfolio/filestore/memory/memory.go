package memory

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/dcamara/simple-portfolio/pkg/portfolio"
)

// Store implements portfolio.FileStore in memory. Intended for tests.
type Store struct {
	mu    sync.RWMutex
	files map[string][]byte
}

// New creates a new in-memory file store
func New() *Store {
	return &Store{files: make(map[string][]byte)}
}

func (s *Store) Save(ctx context.Context, category portfolio.FileCategory, filename string, r io.Reader) (string, error) {
	ref, err := portfolio.NewFileRef(category, filename)
	if err != nil {
		return "", err
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read content: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[ref] = data

	return ref, nil
}

func (s *Store) Open(ctx context.Context, ref string) (io.ReadCloser, error) {
	if _, err := portfolio.ParseRef(ref); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.files[ref]
	if !ok {
		return nil, fmt.Errorf("file %s: %w", ref, os.ErrNotExist)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *Store) Delete(ctx context.Context, ref string) error {
	if _, err := portfolio.ParseRef(ref); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.files, ref)

	return nil
}
