package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dcamara/simple-portfolio/pkg/portfolio"
)

// The whole portfolio document lives in one jsonb row; writes replace it.
const documentID = 1

// Store implements portfolio.DocumentStore on a single-row jsonb table.
//
// A missing row or malformed payload reads soft as the default document,
// mirroring the jsonfile store. Connection-level failures are returned:
// falling back to an empty document on a flaky connection would let a
// subsequent write wipe real data.
type Store struct {
	pool *pgxpool.Pool
}

// New creates a postgres-backed document store using the given pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// EnsureSchema creates the backing table if it does not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS portfolio_document (
			id  integer PRIMARY KEY,
			doc jsonb NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("failed to create portfolio_document table: %w", err)
	}
	return nil
}

func (s *Store) Read(ctx context.Context) (*portfolio.Document, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx,
		`SELECT doc FROM portfolio_document WHERE id = $1`, documentID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return portfolio.NewDocument(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}

	doc := portfolio.NewDocument()
	if err := json.Unmarshal(raw, doc); err != nil {
		slog.Warn("portfolio document malformed, using empty document", "err", err)
		return portfolio.NewDocument(), nil
	}
	doc.Normalize()

	return doc, nil
}

func (s *Store) Write(ctx context.Context, doc *portfolio.Document) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO portfolio_document (id, doc) VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET doc = EXCLUDED.doc`,
		documentID, raw)
	if err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}
	return nil
}
