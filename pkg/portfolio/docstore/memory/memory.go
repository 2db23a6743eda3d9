package memory

import (
	"context"
	"sync"

	"github.com/dcamara/simple-portfolio/pkg/portfolio"
)

// Store implements portfolio.DocumentStore using in-memory storage.
// Intended for tests and development.
type Store struct {
	mu  sync.RWMutex
	doc *portfolio.Document
}

// New creates a new in-memory document store holding the default document.
func New() *Store {
	return &Store{doc: portfolio.NewDocument()}
}

func (s *Store) Read(ctx context.Context) (*portfolio.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Return a copy to prevent external modifications
	return s.doc.Clone(), nil
}

func (s *Store) Write(ctx context.Context, doc *portfolio.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.doc = doc.Clone()
	return nil
}
