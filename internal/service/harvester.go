package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/fastboard-ai/devprofiler/internal/domain"
	"github.com/fastboard-ai/devprofiler/internal/port"
)

// minContentLength discards near-empty files. Content length is only known
// after download, so this check runs post-fetch.
const minContentLength = 50

// Harvester walks a user's repositories and fetches the selected source
// files under the configured budgets. Upstream failures (missing tree,
// unreadable file, rate limit) skip the item and continue; they are never
// fatal to the run.
type Harvester struct {
	source    port.SourceProvider
	budgets   Budgets
	repoDelay time.Duration
}

// NewHarvester creates a harvester over the given source provider.
func NewHarvester(source port.SourceProvider, budgets Budgets) *Harvester {
	return &Harvester{
		source:    source,
		budgets:   budgets,
		repoDelay: 50 * time.Millisecond,
	}
}

// harvestState is the explicit accumulator for budget tracking across the
// nested repo/file loops.
type harvestState struct {
	files      []domain.HarvestedFile
	totalFiles int
}

// HarvestResult is what the harvest loop produced.
type HarvestResult struct {
	Files         []domain.HarvestedFile
	ReposAnalyzed int
}

// Harvest fetches code files across the user's non-fork repositories,
// honoring the repo, per-repo, and total-file budgets. Whichever limit is
// hit first stops further harvesting for that scope.
func (h *Harvester) Harvest(ctx context.Context, repos []domain.RepositorySummary) *HarvestResult {
	var nonForks []domain.RepositorySummary
	for _, r := range repos {
		if !r.Fork {
			nonForks = append(nonForks, r)
		}
	}
	reposAnalyzed := min(len(nonForks), h.budgets.MaxRepos)

	state := &harvestState{}
	for i, repo := range nonForks {
		if i >= h.budgets.MaxRepos || state.totalFiles >= h.budgets.MaxTotalFiles {
			break
		}

		slog.Info("harvesting repository", "repo", repo.Name, "index", i+1, "of", reposAnalyzed)
		h.harvestRepo(ctx, repo, state)

		time.Sleep(h.repoDelay)
	}

	return &HarvestResult{Files: state.files, ReposAnalyzed: reposAnalyzed}
}

// harvestRepo fetches the selected files of one repository into state.
func (h *Harvester) harvestRepo(ctx context.Context, repo domain.RepositorySummary, state *harvestState) {
	tree, err := h.source.Tree(ctx, repo.Owner, repo.Name)
	if err != nil {
		slog.Warn("skipping repository, tree fetch failed", "repo", repo.Name, "error", err)
		return
	}

	for _, entry := range SelectFiles(tree, h.budgets) {
		if state.totalFiles >= h.budgets.MaxTotalFiles {
			return
		}

		content, err := h.source.FileContent(ctx, repo.Owner, repo.Name, entry.Path)
		if err != nil {
			slog.Debug("skipping file, fetch failed", "repo", repo.Name, "path", entry.Path, "error", err)
			continue
		}
		if len(content) < minContentLength {
			continue
		}

		state.files = append(state.files, domain.HarvestedFile{
			RepoName: repo.Name,
			Path:     entry.Path,
			Language: detectLanguage(entry.Path),
			Content:  content,
		})
		state.totalFiles++
	}
}
