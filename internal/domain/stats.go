package domain

// DeveloperProfile is the upstream account metadata for the profiled user.
// Optional fields are pointers; upstream may omit them.
type DeveloperProfile struct {
	Name        *string `json:"name"`
	Bio         *string `json:"bio"`
	AvatarURL   string  `json:"avatar_url"`
	PublicRepos int     `json:"public_repos"`
	Followers   int     `json:"followers"`
	Following   int     `json:"following"`
	CreatedAt   string  `json:"created_at"`
}

// RepositoryInfo is the caller-facing snapshot of one repository.
type RepositoryInfo struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Language    *string `json:"language"`
	IsFork      bool    `json:"is_fork"`
	Size        int64   `json:"size"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

// AnalysisMetadata summarizes a completed profiling run.
type AnalysisMetadata struct {
	ChunksAnalyzed    int      `json:"chunks_analyzed"`
	TotalLines        int      `json:"total_lines"`
	ReposAnalyzed     int      `json:"repos_analyzed"`
	LanguagesDetected []string `json:"languages_detected"`
}

// ProfileStats is the single structured value returned to callers: profile
// metadata, repository snapshots, language distribution, and the retrieved
// code excerpts, all best-effort populated.
type ProfileStats struct {
	Username     string           `json:"username"`
	Profile      DeveloperProfile `json:"profile"`
	Repositories []RepositoryInfo `json:"repositories"`
	Languages    map[string]int   `json:"languages"` // language -> integer percentage
	AnalyzedAt   string           `json:"analyzed_at"`

	CodeExcerpts *SearchResults    `json:"code_excerpts,omitempty"`
	Metadata     *AnalysisMetadata `json:"analysis_metadata,omitempty"`
}
