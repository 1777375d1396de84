package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/fastboard-ai/devprofiler/internal/domain"
	"github.com/fastboard-ai/devprofiler/internal/port"
	"github.com/fastboard-ai/devprofiler/pkg/config"
)

// ProfileService runs the full profiling pipeline: harvest, chunk, embed,
// index, retrieve, assemble. It is the library entry point; callers receive
// either a complete stats object or a single terminal error.
type ProfileService struct {
	source   port.SourceProvider
	embedder port.Embedder
	index    port.VectorIndex

	harvester *Harvester
	chunker   *Chunker
	mode      string // config.ModeSemantic or config.ModeKeyword

	perCategory int
}

// NewProfileService wires the pipeline. A nil embedder or index forces
// keyword mode regardless of the configured mode.
func NewProfileService(source port.SourceProvider, embedder port.Embedder, index port.VectorIndex,
	budgets Budgets, mode string, perCategory int) *ProfileService {

	return &ProfileService{
		source:      source,
		embedder:    embedder,
		index:       index,
		harvester:   NewHarvester(source, budgets),
		chunker:     NewChunker(DefaultChunkOptions()),
		mode:        mode,
		perCategory: perCategory,
	}
}

// semanticCapable reports whether the vector path can run: configured for
// it, with an embedding credential and a vector backend present.
func (s *ProfileService) semanticCapable() bool {
	return s.mode == config.ModeSemantic && s.embedder != nil && s.embedder.Ready() && s.index != nil
}

// Analyze profiles one developer. Per-item upstream failures are absorbed;
// the only terminal failure beyond an unreachable profile is
// port.ErrNoUsableInput, returned when zero files could be harvested.
func (s *ProfileService) Analyze(ctx context.Context, username string) (*domain.ProfileStats, error) {
	slog.Info("starting analysis", "username", username, "mode", s.mode)

	profile, err := s.source.Profile(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("fetch profile for %s: %w", username, err)
	}

	repos, err := s.source.Repos(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("list repositories for %s: %w", username, err)
	}

	harvest := s.harvester.Harvest(ctx, repos)
	if len(harvest.Files) == 0 {
		return nil, fmt.Errorf("analyze %s: %w", username, port.ErrNoUsableInput)
	}
	slog.Info("harvest complete", "files", len(harvest.Files), "repos", harvest.ReposAnalyzed)

	var results *domain.SearchResults
	var metadata *domain.AnalysisMetadata

	if s.semanticCapable() {
		results, metadata = s.semanticRetrieval(ctx, username, harvest)
	}
	if results == nil {
		// Vector path unavailable or produced nothing: degrade, don't fail.
		retriever := NewRetriever(nil, nil, s.perCategory)
		results, metadata = retriever.KeywordFallback(harvest.Files)
		metadata.ReposAnalyzed = harvest.ReposAnalyzed
	}

	stats := BuildStats(username, profile, repos, results, metadata)
	slog.Info("analysis complete", "username", username,
		"excerpts", results.TotalCount(), "chunks", metadata.ChunksAnalyzed)
	return stats, nil
}

// semanticRetrieval runs the embedding tier under a fresh session. Returns
// nil results when nothing could be embedded, signaling the caller to fall
// back to keyword mode. The session's rows are removed afterwards; cleanup
// failure is logged, never surfaced.
func (s *ProfileService) semanticRetrieval(ctx context.Context, username string, harvest *HarvestResult) (*domain.SearchResults, *domain.AnalysisMetadata) {
	session := uuid.New()

	var chunks []domain.CodeChunk
	for _, file := range harvest.Files {
		chunks = append(chunks, s.chunker.Split(file.Content, file.RepoName, file.Path, file.Language)...)
	}

	indexer := NewIndexer(s.embedder, s.index)
	stored, err := indexer.IndexChunks(ctx, session, username, chunks)
	if err != nil || stored == 0 {
		slog.Warn("no chunks indexed, falling back to keyword mode", "session", session, "error", err)
		return nil, nil
	}

	defer func() {
		removed, err := s.index.Cleanup(ctx, session)
		if err != nil {
			slog.Warn("session cleanup failed", "session", session, "error", err)
			return
		}
		slog.Debug("session cleaned up", "session", session, "rows", removed)
	}()

	retriever := NewRetriever(s.embedder, s.index, s.perCategory)
	results := retriever.SearchAllCategories(ctx, session)

	metadata := &domain.AnalysisMetadata{
		ChunksAnalyzed: stored,
		ReposAnalyzed:  harvest.ReposAnalyzed,
	}
	if stats, err := s.index.Stats(ctx, session); err != nil {
		slog.Warn("index stats failed", "session", session, "error", err)
	} else {
		metadata.TotalLines = stats.TotalLines
		metadata.LanguagesDetected = stats.Languages
	}

	return results, metadata
}

// Summarize exposes the condensed excerpt text for the narrative
// collaborator.
func (s *ProfileService) Summarize(stats *domain.ProfileStats, maxCharsPerCategory int) string {
	if stats.CodeExcerpts == nil {
		return ""
	}
	return SummarizeExcerpts(stats.CodeExcerpts, maxCharsPerCategory)
}
