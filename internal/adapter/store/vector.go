package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/fastboard-ai/devprofiler/internal/domain"
	"github.com/fastboard-ai/devprofiler/internal/port"
)

// VectorIndex implements port.VectorIndex over pgvector. Rows are
// partitioned by analysis session; concurrent runs never touch each
// other's data, so no locking is needed.
type VectorIndex struct {
	store *PostgresStore
}

// NewVectorIndex creates a vector index backed by the given Postgres store.
func NewVectorIndex(store *PostgresStore) *VectorIndex {
	return &VectorIndex{store: store}
}

// Store persists one chunk and its vector under a session.
func (v *VectorIndex) Store(ctx context.Context, session uuid.UUID, username string, chunk domain.CodeChunk, vector []float32) error {
	query := `INSERT INTO code_embeddings
	              (analysis_id, username, repo_name, file_path, line_start, line_end, language, content, embedding)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9::vector)`

	_, err := v.store.db.ExecContext(ctx, query,
		session, username, chunk.RepoName, chunk.FilePath,
		chunk.LineStart, chunk.LineEnd, chunk.Language, chunk.Content,
		vectorToString(vector),
	)
	if err != nil {
		return fmt.Errorf("store chunk: %w", err)
	}
	return nil
}

// Search performs a cosine similarity search within one session. An empty
// or unknown session yields an empty result.
func (v *VectorIndex) Search(ctx context.Context, session uuid.UUID, queryVector []float32, limit int) ([]domain.CodeExcerpt, error) {
	query := `SELECT repo_name, file_path, line_start, line_end, language, content,
	                 1 - (embedding <=> $1::vector) AS similarity
	          FROM code_embeddings
	          WHERE analysis_id = $2
	          ORDER BY embedding <=> $1::vector
	          LIMIT $3`

	rows, err := v.store.db.QueryContext(ctx, query, vectorToString(queryVector), session, limit)
	if err != nil {
		return nil, fmt.Errorf("search similar: %w", err)
	}
	defer rows.Close()

	var excerpts []domain.CodeExcerpt
	for rows.Next() {
		var e domain.CodeExcerpt
		if err := rows.Scan(
			&e.RepoName, &e.FilePath, &e.LineStart, &e.LineEnd,
			&e.Language, &e.Content, &e.Similarity,
		); err != nil {
			return nil, fmt.Errorf("scan excerpt: %w", err)
		}
		excerpts = append(excerpts, e)
	}
	return excerpts, rows.Err()
}

// Stats aggregates what was stored for a session.
func (v *VectorIndex) Stats(ctx context.Context, session uuid.UUID) (*port.IndexStats, error) {
	query := `SELECT COUNT(*),
	                 COALESCE(SUM(line_end - line_start + 1), 0),
	                 COUNT(DISTINCT repo_name)
	          FROM code_embeddings
	          WHERE analysis_id = $1`

	stats := &port.IndexStats{}
	err := v.store.db.QueryRowContext(ctx, query, session).Scan(
		&stats.ChunkCount, &stats.TotalLines, &stats.RepoCount,
	)
	if err != nil {
		return nil, fmt.Errorf("index stats: %w", err)
	}

	langQuery := `SELECT ARRAY_AGG(DISTINCT language)
	              FROM code_embeddings
	              WHERE analysis_id = $1 AND language IS NOT NULL`

	var languages pq.StringArray
	if err := v.store.db.QueryRowContext(ctx, langQuery, session).Scan(&languages); err != nil {
		return nil, fmt.Errorf("index languages: %w", err)
	}
	stats.Languages = []string(languages)

	return stats, nil
}

// Cleanup deletes all rows for a session and returns the count removed.
func (v *VectorIndex) Cleanup(ctx context.Context, session uuid.UUID) (int64, error) {
	result, err := v.store.db.ExecContext(ctx, `DELETE FROM code_embeddings WHERE analysis_id = $1`, session)
	if err != nil {
		return 0, fmt.Errorf("cleanup session: %w", err)
	}
	return result.RowsAffected()
}

// vectorToString converts a float32 slice to pgvector string format: [0.1,0.2,0.3].
func vectorToString(v []float32) string {
	parts := make([]string, len(v))
	for i, val := range v {
		parts[i] = fmt.Sprintf("%g", val)
	}
	return "[" + strings.Join(parts, ",") + "]"
}
