package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/fastboard-ai/devprofiler/internal/domain"
	"github.com/fastboard-ai/devprofiler/internal/port"
)

// fakeSource is an in-memory port.SourceProvider that records which file
// paths were fetched.
type fakeSource struct {
	profile *domain.DeveloperProfile
	repos   []domain.RepositorySummary
	trees   map[string][]domain.TreeEntry // keyed by repo name
	files   map[string]string             // keyed by repo/path

	mu      sync.Mutex
	fetched []string
}

func newFakeSource() *fakeSource {
	name := "Test User"
	return &fakeSource{
		profile: &domain.DeveloperProfile{Name: &name, AvatarURL: "https://example.com/a.png"},
		trees:   map[string][]domain.TreeEntry{},
		files:   map[string]string{},
	}
}

func (f *fakeSource) Profile(_ context.Context, _ string) (*domain.DeveloperProfile, error) {
	if f.profile == nil {
		return nil, port.ErrNotFound
	}
	return f.profile, nil
}

func (f *fakeSource) Repos(_ context.Context, _ string) ([]domain.RepositorySummary, error) {
	return f.repos, nil
}

func (f *fakeSource) Tree(_ context.Context, _, repo string) ([]domain.TreeEntry, error) {
	tree, ok := f.trees[repo]
	if !ok {
		return nil, port.ErrNotFound
	}
	return tree, nil
}

func (f *fakeSource) FileContent(_ context.Context, _, repo, path string) (string, error) {
	f.mu.Lock()
	f.fetched = append(f.fetched, repo+"/"+path)
	f.mu.Unlock()

	content, ok := f.files[repo+"/"+path]
	if !ok {
		return "", port.ErrNotFound
	}
	return content, nil
}

func (f *fakeSource) fetchedPaths() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.fetched...)
}

// fakeEmbedder produces deterministic vectors from text bytes. Texts
// containing failOn (when set) fail to embed.
type fakeEmbedder struct {
	ready  bool
	failOn string
}

func (f *fakeEmbedder) ModelName() string { return "fake-embedding" }

func (f *fakeEmbedder) Ready() bool { return f.ready }

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if !f.ready {
		return nil, port.ErrMissingCredential
	}
	if f.failOn != "" && strings.Contains(text, f.failOn) {
		return nil, fmt.Errorf("embed %q: upstream failure", f.failOn)
	}

	vec := make([]float32, 8)
	for i, b := range []byte(text) {
		vec[i%8] += float32(b) / 255
	}
	return vec, nil
}

// memIndex is an in-memory port.VectorIndex partitioned by session,
// ordering search results by ascending L2 distance.
type memIndex struct {
	mu       sync.Mutex
	sessions map[uuid.UUID][]memRow
	storeErr error
}

type memRow struct {
	chunk  domain.CodeChunk
	vector []float32
}

func newMemIndex() *memIndex {
	return &memIndex{sessions: map[uuid.UUID][]memRow{}}
}

func (m *memIndex) Store(_ context.Context, session uuid.UUID, _ string, chunk domain.CodeChunk, vector []float32) error {
	if m.storeErr != nil {
		return m.storeErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[session] = append(m.sessions[session], memRow{chunk: chunk, vector: vector})
	return nil
}

func (m *memIndex) Search(_ context.Context, session uuid.UUID, queryVector []float32, limit int) ([]domain.CodeExcerpt, error) {
	m.mu.Lock()
	rows := append([]memRow(nil), m.sessions[session]...)
	m.mu.Unlock()

	type scored struct {
		row  memRow
		dist float64
	}
	ranked := make([]scored, 0, len(rows))
	for _, row := range rows {
		ranked = append(ranked, scored{row: row, dist: l2(row.vector, queryVector)})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].dist < ranked[j].dist })

	var excerpts []domain.CodeExcerpt
	for i := 0; i < len(ranked) && i < limit; i++ {
		c := ranked[i].row.chunk
		excerpts = append(excerpts, domain.CodeExcerpt{
			RepoName:   c.RepoName,
			FilePath:   c.FilePath,
			LineStart:  c.LineStart,
			LineEnd:    c.LineEnd,
			Language:   c.Language,
			Content:    c.Content,
			Similarity: 1 - ranked[i].dist,
		})
	}
	return excerpts, nil
}

func (m *memIndex) Stats(_ context.Context, session uuid.UUID) (*port.IndexStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stats := &port.IndexStats{}
	repos := map[string]bool{}
	langs := map[string]bool{}
	for _, row := range m.sessions[session] {
		stats.ChunkCount++
		stats.TotalLines += row.chunk.LineEnd - row.chunk.LineStart + 1
		repos[row.chunk.RepoName] = true
		if row.chunk.Language != nil {
			langs[*row.chunk.Language] = true
		}
	}
	stats.RepoCount = len(repos)
	for l := range langs {
		stats.Languages = append(stats.Languages, l)
	}
	sort.Strings(stats.Languages)
	return stats, nil
}

func (m *memIndex) Cleanup(_ context.Context, session uuid.UUID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	removed := int64(len(m.sessions[session]))
	delete(m.sessions, session)
	return removed, nil
}

func (m *memIndex) count(session uuid.UUID) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions[session])
}

func l2(a, b []float32) float64 {
	n := min(len(a), len(b))
	var sum float64
	for i := 0; i < n; i++ {
		d := float64(a[i] - b[i])
		sum += d * d
	}
	return math.Sqrt(sum)
}
