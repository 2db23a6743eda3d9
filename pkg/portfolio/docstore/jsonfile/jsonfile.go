package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dcamara/simple-portfolio/pkg/portfolio"
)

// Store implements portfolio.DocumentStore on a single JSON file.
//
// Reads fail soft: a missing, unreadable or malformed file yields the
// default empty-shape document instead of an error, favoring availability
// of the public view over strict correctness. Writes replace the file
// atomically via a temp file and rename.
type Store struct {
	path string
}

// New creates a JSON-file document store at path, creating the parent
// directory if needed.
func New(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("document path is required")
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create document directory: %w", err)
		}
	}

	return &Store{path: path}, nil
}

func (s *Store) Read(ctx context.Context) (*portfolio.Document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("portfolio document unreadable, using empty document", "path", s.path, "err", err)
		}
		return portfolio.NewDocument(), nil
	}

	doc := portfolio.NewDocument()
	if err := json.Unmarshal(data, doc); err != nil {
		slog.Warn("portfolio document malformed, using empty document", "path", s.path, "err", err)
		return portfolio.NewDocument(), nil
	}
	doc.Normalize()

	return doc, nil
}

func (s *Store) Write(ctx context.Context, doc *portfolio.Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}

	// Write to a temp file in the same directory, then rename over the
	// target so readers never observe a partial document.
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".db-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp document: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp document: %w", err)
	}

	if err := os.Chmod(tmpPath, 0644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to set document permissions: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace document: %w", err)
	}

	return nil
}
