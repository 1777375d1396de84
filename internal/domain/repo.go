package domain

// RepositorySummary is an immutable snapshot of a hosted repository,
// fetched once per analysis run.
type RepositorySummary struct {
	Name        string  `json:"name"`
	Owner       string  `json:"owner"`
	Description *string `json:"description"`
	Language    *string `json:"language"`
	Fork        bool    `json:"fork"`
	Size        int64   `json:"size"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

// TreeEntry is one entry of a repository's recursive file tree.
// It exists only for file selection and is discarded afterwards.
type TreeEntry struct {
	Path string `json:"path"`
	Type string `json:"type"` // "blob" or "tree"
	Size int64  `json:"size"`
}

// IsFile reports whether the entry is a regular file.
func (e TreeEntry) IsFile() bool {
	return e.Type == "blob"
}

// HarvestedFile is a file fetched from a repository together with the
// metadata the pipeline needs downstream.
type HarvestedFile struct {
	RepoName string
	Path     string
	Language *string
	Content  string
}
