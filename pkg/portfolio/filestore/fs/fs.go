package fs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dcamara/simple-portfolio/pkg/portfolio"
)

// Store is a filesystem implementation of the portfolio.FileStore
// interface. Files live under BaseDir segmented by category; the logical
// references handed out never expose the base directory.
type Store struct {
	baseDir string
}

// Config options for the filesystem file store
type Config struct {
	BaseDir string // Base directory for storing uploads
}

// New creates a new filesystem file store
func New(config Config) (*Store, error) {
	if config.BaseDir == "" {
		return nil, errors.New("base directory is required")
	}

	if err := os.MkdirAll(config.BaseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}

	return &Store{baseDir: config.BaseDir}, nil
}

// resolve maps a logical reference to a path under baseDir, rejecting
// anything that escapes the upload root.
func (s *Store) resolve(ref string) (string, error) {
	rel, err := portfolio.ParseRef(ref)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.baseDir, filepath.FromSlash(rel)), nil
}

// Save stores content under a generated name in the category directory and
// returns the logical reference.
func (s *Store) Save(ctx context.Context, category portfolio.FileCategory, filename string, r io.Reader) (string, error) {
	ref, err := portfolio.NewFileRef(category, filename)
	if err != nil {
		return "", err
	}
	filePath, err := s.resolve(ref)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return "", fmt.Errorf("failed to create category directory: %w", err)
	}

	file, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, r); err != nil {
		os.Remove(filePath)
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return ref, nil
}

// Open streams a stored file back.
func (s *Store) Open(ctx context.Context, ref string) (io.ReadCloser, error) {
	filePath, err := s.resolve(ref)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file %s: %w", ref, os.ErrNotExist)
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return file, nil
}

// Delete removes the referenced file. Deleting a missing file is a no-op.
func (s *Store) Delete(ctx context.Context, ref string) error {
	filePath, err := s.resolve(ref)
	if err != nil {
		return err
	}

	if err := os.Remove(filePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
