package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/fastboard-ai/devprofiler/internal/domain"
)

// excerptCharLimit truncates a single excerpt inside the condensed summary.
const excerptCharLimit = 500

// LanguagePercentages aggregates repository counts per primary language
// into integer percentages of the repositories that report a language.
func LanguagePercentages(repos []domain.RepositorySummary) map[string]int {
	counts := map[string]int{}
	withLanguage := 0
	for _, r := range repos {
		if r.Language != nil && *r.Language != "" {
			counts[*r.Language]++
			withLanguage++
		}
	}

	total := max(withLanguage, 1)
	percentages := make(map[string]int, len(counts))
	for lang, n := range counts {
		percentages[lang] = n * 100 / total
	}
	return percentages
}

// BuildStats merges profile metadata, repository snapshots, language
// distribution, and retrieval results into the caller-facing stats object.
func BuildStats(username string, profile *domain.DeveloperProfile, repos []domain.RepositorySummary,
	results *domain.SearchResults, metadata *domain.AnalysisMetadata) *domain.ProfileStats {

	repositories := make([]domain.RepositoryInfo, 0, len(repos))
	for _, r := range repos {
		repositories = append(repositories, domain.RepositoryInfo{
			Name:        r.Name,
			Description: r.Description,
			Language:    r.Language,
			IsFork:      r.Fork,
			Size:        r.Size,
			CreatedAt:   r.CreatedAt,
			UpdatedAt:   r.UpdatedAt,
		})
	}

	return &domain.ProfileStats{
		Username:     username,
		Profile:      *profile,
		Repositories: repositories,
		Languages:    LanguagePercentages(repos),
		AnalyzedAt:   time.Now().UTC().Format(time.RFC3339),
		CodeExcerpts: results,
		Metadata:     metadata,
	}
}

// SummarizeExcerpts condenses the retrieved excerpts into the single text
// artifact consumed by the narrative collaborator. Each excerpt is capped
// at excerptCharLimit characters and each category at maxCharsPerCategory;
// categories with no excerpts are skipped.
func SummarizeExcerpts(results *domain.SearchResults, maxCharsPerCategory int) string {
	var summary strings.Builder

	for _, category := range domain.AllCategories() {
		excerpts := results.Get(category)
		if len(excerpts) == 0 {
			continue
		}

		fmt.Fprintf(&summary, "\n=== %s ===\n", strings.ToUpper(string(category)))

		charsUsed := 0
		for _, excerpt := range excerpts {
			if charsUsed >= maxCharsPerCategory {
				break
			}

			fmt.Fprintf(&summary, "\n// %s (%d:%d)\n", excerpt.FilePath, excerpt.LineStart, excerpt.LineEnd)

			content := excerpt.Content
			if len(content) > excerptCharLimit {
				content = content[:excerptCharLimit] + "..."
			}
			summary.WriteString(content)
			summary.WriteByte('\n')

			charsUsed += len(content)
		}
	}

	return summary.String()
}
