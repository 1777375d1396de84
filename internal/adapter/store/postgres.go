package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// PostgresStore owns the database connection used by the vector index.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore opens a connection and returns a store instance.
func NewPostgresStore(databaseURL string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

// Close closes the database connection.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB.
func (s *PostgresStore) DB() *sql.DB {
	return s.db
}

// EnsureSchema creates the embeddings table if it does not exist.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE EXTENSION IF NOT EXISTS vector`,
		`CREATE TABLE IF NOT EXISTS code_embeddings (
			id BIGSERIAL PRIMARY KEY,
			analysis_id UUID NOT NULL,
			username TEXT NOT NULL,
			repo_name TEXT NOT NULL,
			file_path TEXT NOT NULL,
			line_start INT NOT NULL,
			line_end INT NOT NULL,
			language TEXT,
			content TEXT NOT NULL,
			embedding VECTOR(768),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_code_embeddings_analysis ON code_embeddings (analysis_id)`,
		`CREATE INDEX IF NOT EXISTS idx_code_embeddings_username ON code_embeddings (username)`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
