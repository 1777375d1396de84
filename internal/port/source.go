package port

import (
	"context"

	"github.com/fastboard-ai/devprofiler/internal/domain"
)

// SourceProvider abstracts the code-hosting API a developer's public code is
// harvested from. Implementations handle pagination, auth, and decoding;
// callers treat every error as "skip this item, continue".
type SourceProvider interface {
	// Profile fetches the account metadata for a username.
	Profile(ctx context.Context, username string) (*domain.DeveloperProfile, error)

	// Repos enumerates the user's repositories, paginated upstream and
	// capped at a fixed page count.
	Repos(ctx context.Context, username string) ([]domain.RepositorySummary, error)

	// Tree fetches the recursive file tree of one repository.
	Tree(ctx context.Context, owner, repo string) ([]domain.TreeEntry, error)

	// FileContent fetches and decodes the text content of one file.
	// Non-UTF8 bytes are replaced, never an error.
	FileContent(ctx context.Context, owner, repo, path string) (string, error)
}
