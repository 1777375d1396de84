package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastboard-ai/devprofiler/internal/domain"
	"github.com/fastboard-ai/devprofiler/internal/port"
	"github.com/fastboard-ai/devprofiler/pkg/config"
)

func newProfileService(src *fakeSource, embedder port.Embedder, index port.VectorIndex, mode string) *ProfileService {
	s := NewProfileService(src, embedder, index, DefaultBudgets(), mode, 3)
	s.harvester.repoDelay = 0
	return s
}

func TestAnalyzeKeywordModeSingleFile(t *testing.T) {
	src := newFakeSource()
	src.repos = []domain.RepositorySummary{repoSummary("hello", false)}
	src.trees["hello"] = []domain.TreeEntry{blob("src/main.rs", 2048)}
	src.files["hello/src/main.rs"] = fileBody("main", 120)

	s := newProfileService(src, nil, nil, config.ModeKeyword)
	stats, err := s.Analyze(context.Background(), "octocat")

	require.NoError(t, err)
	require.NotNil(t, stats.CodeExcerpts)
	require.Len(t, stats.CodeExcerpts.NamingStyle, 1)
	assert.Equal(t, "src/main.rs", stats.CodeExcerpts.NamingStyle[0].FilePath)
	assert.Equal(t, 1.0, stats.CodeExcerpts.NamingStyle[0].Similarity)

	require.NotNil(t, stats.Metadata)
	assert.Equal(t, 1, stats.Metadata.ChunksAnalyzed)
	assert.Equal(t, 120, stats.Metadata.TotalLines)
	assert.Equal(t, 1, stats.Metadata.ReposAnalyzed)
}

func TestAnalyzeNoHarvestedFilesIsTerminal(t *testing.T) {
	src := newFakeSource()
	src.repos = []domain.RepositorySummary{repoSummary("empty", false)}
	src.trees["empty"] = []domain.TreeEntry{
		blob("node_modules/foo.js", 300),
		blob("package-lock.json", 5000),
	}

	s := newProfileService(src, nil, nil, config.ModeKeyword)
	_, err := s.Analyze(context.Background(), "octocat")

	assert.ErrorIs(t, err, port.ErrNoUsableInput)
}

func TestAnalyzeUnknownUser(t *testing.T) {
	src := newFakeSource()
	src.profile = nil

	s := newProfileService(src, nil, nil, config.ModeKeyword)
	_, err := s.Analyze(context.Background(), "ghost")

	assert.ErrorIs(t, err, port.ErrNotFound)
}

func TestAnalyzeSemanticModeCleansUpSession(t *testing.T) {
	src := newFakeSource()
	src.repos = []domain.RepositorySummary{repoSummary("app", false)}
	src.trees["app"] = []domain.TreeEntry{blob("src/lib.rs", 4096)}
	src.files["app/src/lib.rs"] = fileBody("lib", 200)

	embedder := &fakeEmbedder{ready: true}
	index := newMemIndex()

	s := newProfileService(src, embedder, index, config.ModeSemantic)
	stats, err := s.Analyze(context.Background(), "octocat")

	require.NoError(t, err)
	require.NotNil(t, stats.CodeExcerpts)
	assert.Positive(t, stats.CodeExcerpts.TotalCount())
	require.NotNil(t, stats.Metadata)
	assert.Positive(t, stats.Metadata.ChunksAnalyzed)
	assert.Equal(t, []string{"Rust"}, stats.Metadata.LanguagesDetected)

	// The run's rows are disposable; nothing survives the analysis.
	assert.Empty(t, index.sessions)
}

func TestAnalyzeMissingCredentialFallsBackToKeywords(t *testing.T) {
	src := newFakeSource()
	src.repos = []domain.RepositorySummary{repoSummary("app", false)}
	src.trees["app"] = []domain.TreeEntry{blob("src/handler.ts", 2048)}
	src.files["app/src/handler.ts"] = "export function run(input: string) {\n" +
		"  try { parse(input) } catch (err) { console.error(err) }\n" +
		"}\n"

	embedder := &fakeEmbedder{ready: false} // semantic configured, no key
	index := newMemIndex()

	s := newProfileService(src, embedder, index, config.ModeSemantic)
	stats, err := s.Analyze(context.Background(), "octocat")

	require.NoError(t, err)
	require.NotNil(t, stats.CodeExcerpts)
	assert.NotEmpty(t, stats.CodeExcerpts.ErrorHandling)
	assert.NotEmpty(t, stats.CodeExcerpts.NamingStyle)
	assert.Empty(t, index.sessions)
}

func TestSummarizeWithoutExcerpts(t *testing.T) {
	s := newProfileService(newFakeSource(), nil, nil, config.ModeKeyword)

	assert.Empty(t, s.Summarize(&domain.ProfileStats{}, 2000))
}

func TestAnalyzeLanguagePercentagesInStats(t *testing.T) {
	goLang := "Go"
	src := newFakeSource()
	src.repos = []domain.RepositorySummary{
		{Name: "app", Owner: "octocat", Language: &goLang},
		{Name: "tool", Owner: "octocat", Language: &goLang},
	}
	src.trees["app"] = []domain.TreeEntry{blob("main.go", 1000)}
	src.trees["tool"] = []domain.TreeEntry{blob("tool.go", 1000)}
	src.files["app/main.go"] = fileBody("app", 60)
	src.files["tool/tool.go"] = fileBody("tool", 60)

	s := newProfileService(src, nil, nil, config.ModeKeyword)
	stats, err := s.Analyze(context.Background(), "octocat")

	require.NoError(t, err)
	assert.Equal(t, map[string]int{"Go": 100}, stats.Languages)
	assert.Len(t, stats.Repositories, 2)
}
