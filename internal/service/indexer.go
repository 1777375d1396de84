package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"

	"github.com/fastboard-ai/devprofiler/internal/domain"
	"github.com/fastboard-ai/devprofiler/internal/port"
)

const (
	// embedBatchSize is how many embedding calls run concurrently.
	embedBatchSize = 5
	// embedBatchDelay bounds the outbound request rate between groups.
	embedBatchDelay = 100 * time.Millisecond
)

// Indexer embeds code chunks and stores them in the vector index. Embedding
// runs in fixed-size concurrent groups; a chunk whose embedding fails is
// dropped silently, never aborting the rest of the batch.
type Indexer struct {
	embedder   port.Embedder
	index      port.VectorIndex
	batchSize  int
	batchDelay time.Duration
}

// NewIndexer creates an indexer over the given embedder and index.
func NewIndexer(embedder port.Embedder, index port.VectorIndex) *Indexer {
	return &Indexer{
		embedder:   embedder,
		index:      index,
		batchSize:  embedBatchSize,
		batchDelay: embedBatchDelay,
	}
}

// IndexChunks embeds and stores all chunks under the given session,
// returning the number successfully embedded and stored.
func (ix *Indexer) IndexChunks(ctx context.Context, session uuid.UUID, username string, chunks []domain.CodeChunk) (int, error) {
	if len(chunks) == 0 {
		return 0, nil
	}

	pool, err := ants.NewPool(ix.batchSize)
	if err != nil {
		return 0, err
	}
	defer pool.Release()

	stored := 0
	for offset := 0; offset < len(chunks); offset += ix.batchSize {
		group := chunks[offset:min(offset+ix.batchSize, len(chunks))]
		vectors := ix.embedGroup(ctx, pool, group)

		for i, chunk := range group {
			if vectors[i] == nil {
				continue
			}
			if err := ix.index.Store(ctx, session, username, chunk, vectors[i]); err != nil {
				slog.Warn("storing chunk failed", "file", chunk.FilePath, "error", err)
				continue
			}
			stored++
		}

		if offset+ix.batchSize < len(chunks) {
			time.Sleep(ix.batchDelay)
		}
	}

	slog.Info("indexed chunks", "stored", stored, "total", len(chunks))
	return stored, nil
}

// embedGroup embeds one group concurrently and returns a vector per chunk,
// nil where embedding failed.
func (ix *Indexer) embedGroup(ctx context.Context, pool *ants.Pool, group []domain.CodeChunk) [][]float32 {
	vectors := make([][]float32, len(group))

	var wg sync.WaitGroup
	for i, chunk := range group {
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			vec, err := ix.embedder.Embed(ctx, chunk.Content)
			if err != nil {
				slog.Debug("embedding failed, dropping chunk", "file", chunk.FilePath, "error", err)
				return
			}
			vectors[i] = vec
		})
		if submitErr != nil {
			wg.Done()
		}
	}
	wg.Wait()

	return vectors
}
