package config

import (
	"os"
	"strconv"
)

// Profiling modes.
const (
	ModeSemantic = "semantic"
	ModeKeyword  = "keyword"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Server
	Port    string
	AppName string

	// Database (empty = run without a vector backend, keyword mode only)
	DatabaseURL string

	// Code hosting API
	GitHubToken   string
	GitHubBaseURL string

	// Embedding API
	GeminiAPIKey   string
	GeminiBaseURL  string
	EmbeddingModel string

	// Profiling
	ProfileMode         string // semantic or keyword
	MaxRepos            int
	MaxFilesPerRepo     int
	MaxTotalFiles       int
	MaxFileSize         int64
	ExcerptsPerCategory int
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Port:    envOrDefault("PORT", "3001"),
		AppName: envOrDefault("APP_NAME", "Fastboard Profiler"),

		DatabaseURL: os.Getenv("DATABASE_URL"),

		GitHubToken:   os.Getenv("GITHUB_TOKEN"),
		GitHubBaseURL: envOrDefault("GITHUB_API_URL", "https://api.github.com"),

		GeminiAPIKey:   os.Getenv("GEMINI_API_KEY"),
		GeminiBaseURL:  envOrDefault("GEMINI_API_URL", "https://generativelanguage.googleapis.com/v1beta/models"),
		EmbeddingModel: envOrDefault("EMBEDDING_MODEL", "text-embedding-004"),

		ProfileMode:         envOrDefault("PROFILE_MODE", ModeSemantic),
		MaxRepos:            envOrDefaultInt("MAX_REPOS", 5),
		MaxFilesPerRepo:     envOrDefaultInt("MAX_FILES_PER_REPO", 10),
		MaxTotalFiles:       envOrDefaultInt("MAX_TOTAL_FILES", 30),
		MaxFileSize:         int64(envOrDefaultInt("MAX_FILE_SIZE", 50000)),
		ExcerptsPerCategory: envOrDefaultInt("EXCERPTS_PER_CATEGORY", 3),
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envOrDefaultInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return fallback
}
