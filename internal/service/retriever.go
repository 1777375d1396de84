package service

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/fastboard-ai/devprofiler/internal/domain"
	"github.com/fastboard-ai/devprofiler/internal/port"
)

// fallbackMaxLines truncates a file's content before keyword bucketing.
const fallbackMaxLines = 300

// categoryKeywords drives fallback categorization: a file joins a category
// when its lowercase content contains any of the listed keywords. Comments
// and configuration have no keyword rows; in fallback mode those categories
// stay empty.
var categoryKeywords = map[domain.SearchCategory][]string{
	domain.CategoryErrorHandling:      {"error", "catch", "exception", "result", "unwrap"},
	domain.CategoryAsyncPatterns:      {"async", "await", "promise", "future"},
	domain.CategoryTesting:            {"test", "assert", "expect"},
	domain.CategoryLogging:            {"log", "debug", "print", "console"},
	domain.CategoryClassStructure:     {"class", "struct", "impl", "interface"},
	domain.CategoryFunctionalPatterns: {"map", "filter", "reduce", "lambda", "closure"},
	domain.CategoryValidation:         {"valid", "check", "parse"},
}

// Retriever produces the per-category code excerpts, either by semantic
// search over the vector index or by the keyword fallback directly over
// harvested content.
type Retriever struct {
	embedder    port.Embedder
	index       port.VectorIndex
	perCategory int
}

// NewRetriever creates a retriever. The embedder and index may be nil when
// only the fallback path is used.
func NewRetriever(embedder port.Embedder, index port.VectorIndex, perCategory int) *Retriever {
	return &Retriever{embedder: embedder, index: index, perCategory: perCategory}
}

// SearchAllCategories runs one vector retrieval per category against the
// session. A failed category yields an empty list rather than failing the
// whole retrieval; every category key is always present in the result.
func (r *Retriever) SearchAllCategories(ctx context.Context, session uuid.UUID) *domain.SearchResults {
	results := &domain.SearchResults{}

	for _, category := range domain.AllCategories() {
		excerpts, err := r.searchCategory(ctx, session, category)
		if err != nil {
			slog.Warn("category search failed", "category", category, "error", err)
			continue
		}
		results.Set(category, excerpts)
	}

	return results
}

// searchCategory embeds the category's canonical query and retrieves the
// nearest chunks of the session.
func (r *Retriever) searchCategory(ctx context.Context, session uuid.UUID, category domain.SearchCategory) ([]domain.CodeExcerpt, error) {
	queryVector, err := r.embedder.Embed(ctx, category.Query())
	if err != nil {
		return nil, err
	}
	return r.index.Search(ctx, session, queryVector, r.perCategory)
}

// KeywordFallback buckets harvested files into categories by keyword
// matching, used when no vector backend is available. A file may join
// several categories; every processed file is also added to naming_style as
// a general style sample. Bucketing is deterministic and preserves harvest
// order; each category is capped like the vector path. The returned
// metadata summarizes what was processed.
func (r *Retriever) KeywordFallback(files []domain.HarvestedFile) (*domain.SearchResults, *domain.AnalysisMetadata) {
	results := &domain.SearchResults{}
	totalLines := 0
	languages := map[string]bool{}
	repos := map[string]bool{}

	for _, file := range files {
		lines := splitLines(file.Content)
		if len(lines) > fallbackMaxLines {
			lines = lines[:fallbackMaxLines]
		}

		excerpt := domain.CodeExcerpt{
			RepoName:   file.RepoName,
			FilePath:   file.Path,
			LineStart:  1,
			LineEnd:    len(lines),
			Language:   file.Language,
			Content:    strings.Join(lines, "\n"),
			Similarity: 1.0,
		}

		lower := strings.ToLower(file.Content)
		for _, category := range domain.AllCategories() {
			if containsAny(lower, categoryKeywords[category]) {
				results.Append(category, excerpt, r.perCategory)
			}
		}

		// Every file shows general coding style
		results.Append(domain.CategoryNamingStyle, excerpt, r.perCategory)

		totalLines += len(lines)
		repos[file.RepoName] = true
		if file.Language != nil {
			languages[*file.Language] = true
		}
	}

	metadata := &domain.AnalysisMetadata{
		ChunksAnalyzed:    len(files),
		TotalLines:        totalLines,
		ReposAnalyzed:     len(repos),
		LanguagesDetected: sortedKeys(languages),
	}
	return results, metadata
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
