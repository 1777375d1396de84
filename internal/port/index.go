package port

import (
	"context"

	"github.com/google/uuid"

	"github.com/fastboard-ai/devprofiler/internal/domain"
)

// IndexStats describes the rows stored for one analysis session.
type IndexStats struct {
	ChunkCount int
	TotalLines int
	RepoCount  int
	Languages  []string
}

// VectorIndex persists code chunks with their embedding vectors, partitioned
// by analysis session. A session's rows are disposable as a unit; queries
// against an empty or unknown session return empty results, not an error.
type VectorIndex interface {
	// Store persists one chunk and its vector under a session.
	Store(ctx context.Context, session uuid.UUID, username string, chunk domain.CodeChunk, vector []float32) error

	// Search returns up to limit chunks of the session nearest to the query
	// vector, ordered by closeness, with similarity scores in [0,1].
	Search(ctx context.Context, session uuid.UUID, queryVector []float32, limit int) ([]domain.CodeExcerpt, error)

	// Stats aggregates chunk count, line totals, repository count, and
	// distinct languages for a session.
	Stats(ctx context.Context, session uuid.UUID) (*IndexStats, error)

	// Cleanup deletes every row of a session and returns the count removed.
	Cleanup(ctx context.Context, session uuid.UUID) (int64, error)
}
