package github

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastboard-ai/devprofiler/internal/port"
)

func newTestClient(handler http.Handler) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	client := NewClient(srv.URL, "test-token")
	client.pageDelay = 0
	return client, srv
}

func TestProfileDecodesOptionalFields(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/octocat", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		fmt.Fprint(w, `{"name":null,"bio":null,"avatar_url":"https://a.png","public_repos":8,"followers":3,"following":1,"created_at":"2015-01-01T00:00:00Z"}`)
	}))
	defer srv.Close()

	profile, err := client.Profile(context.Background(), "octocat")

	require.NoError(t, err)
	assert.Nil(t, profile.Name)
	assert.Nil(t, profile.Bio)
	assert.Equal(t, 8, profile.PublicRepos)
}

func TestProfileNotFound(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := client.Profile(context.Background(), "ghost")

	assert.ErrorIs(t, err, port.ErrNotFound)
}

func TestReposRateLimited(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := client.Repos(context.Background(), "octocat")

	assert.ErrorIs(t, err, port.ErrRateLimited)
}

func TestReposStopsAtFirstShortPage(t *testing.T) {
	var pagesServed []string
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page := r.URL.Query().Get("page")
		pagesServed = append(pagesServed, page)
		fmt.Fprint(w, `[{"name":"app","owner":{"login":"octocat"},"fork":false,"size":10,"created_at":"2020-01-01T00:00:00Z","updated_at":"2020-06-01T00:00:00Z"}]`)
	}))
	defer srv.Close()

	repos, err := client.Repos(context.Background(), "octocat")

	require.NoError(t, err)
	// One repo is fewer than a full page: no second request is made.
	assert.Equal(t, []string{"1"}, pagesServed)
	require.Len(t, repos, 1)
	assert.Equal(t, "app", repos[0].Name)
	assert.Equal(t, "octocat", repos[0].Owner)
	assert.Nil(t, repos[0].Language)
}

func TestReposStopsAtMaxPages(t *testing.T) {
	full := make([]map[string]any, perPage)
	for i := range full {
		full[i] = map[string]any{
			"name": fmt.Sprintf("repo%d", i), "owner": map[string]any{"login": "octocat"},
			"fork": false, "size": 1, "created_at": "", "updated_at": "",
		}
	}
	payload, err := json.Marshal(full)
	require.NoError(t, err)

	requests := 0
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests++
		w.Write(payload)
	}))
	defer srv.Close()

	repos, err := client.Repos(context.Background(), "octocat")

	require.NoError(t, err)
	assert.Equal(t, maxPages, requests)
	assert.Len(t, repos, perPage*maxPages)
}

func TestTreeMapsEntries(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/octocat/app/git/trees/HEAD", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("recursive"))
		fmt.Fprint(w, `{"tree":[{"path":"src/main.rs","type":"blob","size":2048},{"path":"src","type":"tree"}]}`)
	}))
	defer srv.Close()

	entries, err := client.Tree(context.Background(), "octocat", "app")

	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.True(t, entries[0].IsFile())
	assert.EqualValues(t, 2048, entries[0].Size)
	assert.False(t, entries[1].IsFile())
	assert.Zero(t, entries[1].Size) // size omitted upstream
}

func TestFileContentDecodesWrappedBase64(t *testing.T) {
	source := "fn main() {\n    println!(\"hello\");\n}\n"
	encoded := base64.StdEncoding.EncodeToString([]byte(source))
	// GitHub wraps base64 payloads at 60 columns
	wrapped := encoded[:20] + "\n" + encoded[20:]

	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		resp := map[string]string{"content": wrapped, "encoding": "base64"}
		json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	content, err := client.FileContent(context.Background(), "octocat", "app", "src/main.rs")

	require.NoError(t, err)
	assert.Equal(t, source, content)
}

func TestFileContentReplacesInvalidUTF8(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString([]byte{'o', 'k', 0xff, 0xfe, '!'})
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"content": encoded})
	}))
	defer srv.Close()

	content, err := client.FileContent(context.Background(), "octocat", "app", "bin.dat")

	require.NoError(t, err)
	// a run of invalid bytes collapses to one replacement rune
	assert.Equal(t, "ok�!", content)
}

func TestFileContentMissingPayload(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"content":null,"encoding":null}`)
	}))
	defer srv.Close()

	content, err := client.FileContent(context.Background(), "octocat", "app", "empty")

	require.NoError(t, err)
	assert.Empty(t, content)
}
