package port

import "context"

// Embedder abstracts the embedding model backend. Implementations convert a
// text segment into a fixed-dimension vector.
type Embedder interface {
	// ModelName returns the identifier of the embedding model.
	ModelName() string

	// Ready reports whether the backend is usable (credential configured).
	// A not-ready embedder fails every Embed call with ErrMissingCredential.
	Ready() bool

	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)
}

// NarrativeProvider is the external profile-narrative collaborator. It
// consumes the assembler's condensed summary plus the stats JSON and returns
// free text. Entirely outside this core's responsibility.
type NarrativeProvider interface {
	GenerateProfile(ctx context.Context, summary string, statsJSON []byte) (string, error)
}
