package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/fastboard-ai/devprofiler/internal/port"
)

// GeminiProvider implements port.Embedder using the Gemini embedContent API.
type GeminiProvider struct {
	baseURL    string
	model      string
	apiKey     string
	httpClient *http.Client
}

// NewGeminiProvider creates a Gemini-backed embedder. An empty API key is
// allowed; the provider then reports not-ready and fails every call with
// port.ErrMissingCredential.
func NewGeminiProvider(baseURL, model, apiKey string) *GeminiProvider {
	return &GeminiProvider{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		model:      model,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// ModelName returns the embedding model identifier.
func (g *GeminiProvider) ModelName() string {
	return g.model
}

// Ready reports whether an API key is configured.
func (g *GeminiProvider) Ready() bool {
	return g.apiKey != ""
}

type embedRequest struct {
	Model   string       `json:"model"`
	Content embedContent `json:"content"`
}

type embedContent struct {
	Parts []embedPart `json:"parts"`
}

type embedPart struct {
	Text string `json:"text"`
}

type embedResponse struct {
	Embedding *struct {
		Values []float32 `json:"values"`
	} `json:"embedding"`
}

// Embed generates a vector embedding for the given text.
func (g *GeminiProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	if g.apiKey == "" {
		return nil, port.ErrMissingCredential
	}

	payload := embedRequest{
		Model:   "models/" + g.model,
		Content: embedContent{Parts: []embedPart{{Text: text}}},
	}
	body, err := g.post(ctx, fmt.Sprintf("/%s:embedContent", g.model), payload)
	if err != nil {
		return nil, fmt.Errorf("gemini embed: %w", err)
	}

	var resp embedResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("gemini embed decode: %w", err)
	}
	if resp.Embedding == nil || len(resp.Embedding.Values) == 0 {
		return nil, fmt.Errorf("gemini embed: empty response")
	}

	return resp.Embedding.Values, nil
}

// post is a helper for POST requests to the Gemini endpoint. The key travels
// in a header, never in the URL, so transport errors cannot echo it.
func (g *GeminiProvider) post(ctx context.Context, path string, payload any) ([]byte, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+path, bytes.NewReader(payloadBytes))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.apiKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("gemini API error (%d): %s", resp.StatusCode, string(body))
	}

	return io.ReadAll(resp.Body)
}
