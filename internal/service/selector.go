package service

import (
	"strings"

	"github.com/fastboard-ai/devprofiler/internal/domain"
)

// codeExtensions is the allow-list of source file extensions considered for
// harvesting.
var codeExtensions = []string{
	".rs", ".ts", ".tsx", ".js", ".jsx", ".py", ".go",
	".java", ".cpp", ".c", ".h", ".hpp", ".rb", ".swift", ".kt",
	".cs", ".scala", ".clj", ".ex", ".exs", ".hs", ".ml", ".php",
	".vue", ".svelte",
}

// skipDirs are path fragments that mark generated, vendored, or test code.
var skipDirs = []string{
	"node_modules/", "vendor/", "dist/", "build/", "target/",
	".git/", "__pycache__/", ".next/", "coverage/",
	"test/", "tests/", "__tests__/", "spec/",
}

// skipFragments are lowercase path fragments for config and tooling files.
var skipFragments = []string{
	".env", "config.", ".config.", "eslint", "prettier", "tsconfig",
	"package.json", "package-lock", "cargo.toml", "cargo.lock",
	"yarn.lock", "pnpm-lock", "dockerfile", "docker-compose",
	"makefile", ".min.",
}

// skipSuffixes are lowercase extensions that never contain source code
// worth profiling.
var skipSuffixes = []string{
	".json", ".yaml", ".yml", ".toml", ".lock", ".md", ".txt",
}

// Budgets are the hard upper bounds on harvesting. They are never exceeded,
// regardless of how many files qualify.
type Budgets struct {
	MaxRepos        int
	MaxFilesPerRepo int
	MaxTotalFiles   int
	MaxFileSize     int64
}

// DefaultBudgets returns the standard deep-analysis limits.
func DefaultBudgets() Budgets {
	return Budgets{
		MaxRepos:        5,
		MaxFilesPerRepo: 10,
		MaxTotalFiles:   30,
		MaxFileSize:     50000,
	}
}

// isCodeFile reports whether the path carries an allow-listed extension.
func isCodeFile(path string) bool {
	for _, ext := range codeExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// shouldSkipPath reports whether the path matches the exclusion rules.
func shouldSkipPath(path string) bool {
	for _, dir := range skipDirs {
		if strings.Contains(path, dir) {
			return true
		}
	}

	lower := strings.ToLower(path)
	for _, frag := range skipFragments {
		if strings.Contains(lower, frag) {
			return true
		}
	}
	for _, suffix := range skipSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return true
		}
	}
	return false
}

// SelectFiles applies the filtering rules, in order, to a repository's tree:
// the entry must be a file, carry an allow-listed extension, sit under the
// size ceiling, and not match the exclusion list. At most MaxFilesPerRepo
// entries are returned, preserving tree order. All filtering happens before
// any content fetch.
func SelectFiles(entries []domain.TreeEntry, b Budgets) []domain.TreeEntry {
	var selected []domain.TreeEntry
	for _, e := range entries {
		if len(selected) >= b.MaxFilesPerRepo {
			break
		}
		if !e.IsFile() {
			continue
		}
		if !isCodeFile(e.Path) {
			continue
		}
		if e.Size >= b.MaxFileSize {
			continue
		}
		if shouldSkipPath(e.Path) {
			continue
		}
		selected = append(selected, e)
	}
	return selected
}

// detectLanguage infers the programming language from the file extension.
func detectLanguage(path string) *string {
	idx := strings.LastIndex(path, ".")
	if idx < 0 {
		return nil
	}

	var lang string
	switch path[idx+1:] {
	case "rs":
		lang = "Rust"
	case "ts", "tsx":
		lang = "TypeScript"
	case "js", "jsx":
		lang = "JavaScript"
	case "py":
		lang = "Python"
	case "go":
		lang = "Go"
	case "java":
		lang = "Java"
	case "cpp", "cc", "cxx", "hpp":
		lang = "C++"
	case "c", "h":
		lang = "C"
	case "rb":
		lang = "Ruby"
	case "swift":
		lang = "Swift"
	case "kt":
		lang = "Kotlin"
	case "cs":
		lang = "C#"
	case "scala":
		lang = "Scala"
	case "clj":
		lang = "Clojure"
	case "ex", "exs":
		lang = "Elixir"
	case "hs":
		lang = "Haskell"
	case "ml":
		lang = "OCaml"
	case "php":
		lang = "PHP"
	case "vue":
		lang = "Vue"
	case "svelte":
		lang = "Svelte"
	default:
		return nil
	}
	return &lang
}
