package domain

// CodeChunk is a bounded contiguous slice of a file's lines treated as one
// embeddable unit. Chunks belong to exactly one analysis session and are
// never mutated after creation.
type CodeChunk struct {
	RepoName  string  `json:"repo_name"`
	FilePath  string  `json:"file_path"`
	LineStart int     `json:"line_start"` // 1-based, inclusive
	LineEnd   int     `json:"line_end"`   // inclusive
	Language  *string `json:"language"`
	Content   string  `json:"content"`
}

// CodeExcerpt is a retrieved chunk plus its source location and similarity
// score. Similarity is in [0,1]; fallback-mode excerpts carry 1.0.
type CodeExcerpt struct {
	RepoName   string  `json:"repo_name"`
	FilePath   string  `json:"file_path"`
	LineStart  int     `json:"line_start"`
	LineEnd    int     `json:"line_end"`
	Language   *string `json:"language"`
	Content    string  `json:"content"`
	Similarity float64 `json:"similarity"`
}
