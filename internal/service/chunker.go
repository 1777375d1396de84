package service

import (
	"strings"

	"github.com/fastboard-ai/devprofiler/internal/domain"
)

// ChunkOptions controls how files are split into embeddable segments.
type ChunkOptions struct {
	// ChunkSize is the target segment size in lines.
	ChunkSize int
	// MaxChunksPerFile caps how many segments one file may produce.
	MaxChunksPerFile int
	// MinChunkChars discards segments whose trimmed content is at or below
	// this length.
	MinChunkChars int
	// BreakWindow is how many lines around the naive boundary are searched
	// for a natural break.
	BreakWindow int
}

// DefaultChunkOptions returns the standard chunking parameters.
func DefaultChunkOptions() ChunkOptions {
	return ChunkOptions{
		ChunkSize:        300,
		MaxChunksPerFile: 10,
		MinChunkChars:    50,
		BreakWindow:      20,
	}
}

// Chunker splits file text into bounded line segments, preferring natural
// break points so logical units are not severed mid-body. Splitting is
// deterministic: identical input always yields identical boundaries.
type Chunker struct {
	opts ChunkOptions
}

// NewChunker creates a chunker with the given options.
func NewChunker(opts ChunkOptions) *Chunker {
	return &Chunker{opts: opts}
}

// Split produces ordered chunks covering the file's lines. A file shorter
// than the target size yields one chunk, provided it passes the minimum
// length threshold. Line numbers are 1-based and inclusive.
func (c *Chunker) Split(content, repoName, filePath string, language *string) []domain.CodeChunk {
	lines := splitLines(content)
	if len(lines) == 0 {
		return nil
	}

	var chunks []domain.CodeChunk
	i := 0
	for i < len(lines) && len(chunks) < c.opts.MaxChunksPerFile {
		start := i
		end := min(i+c.opts.ChunkSize, len(lines))
		end = c.naturalBreak(lines, start, end)

		chunkContent := strings.Join(lines[start:end], "\n")
		if len(strings.TrimSpace(chunkContent)) > c.opts.MinChunkChars {
			chunks = append(chunks, domain.CodeChunk{
				RepoName:  repoName,
				FilePath:  filePath,
				LineStart: start + 1,
				LineEnd:   end,
				Language:  language,
				Content:   chunkContent,
			})
		}

		i = end
	}

	return chunks
}

// naturalBreak searches a window around the naive boundary for a line the
// chunk can end after: a blank line, a lone closing brace, or a line
// comment. Scanning runs backward from the window's end so the break stays
// as close to the target as possible. Without a match the naive boundary
// stands. The window never reaches back past start, so every chunk makes
// progress.
func (c *Chunker) naturalBreak(lines []string, start, targetEnd int) int {
	searchStart := max(targetEnd-c.opts.BreakWindow, start)
	searchEnd := min(targetEnd+c.opts.BreakWindow, len(lines))

	for i := searchEnd - 1; i >= searchStart; i-- {
		line := strings.TrimSpace(lines[i])
		if line == "" || line == "}" || line == "};" || strings.HasPrefix(line, "// ") {
			return i + 1
		}
	}
	return targetEnd
}

// splitLines splits content into lines without counting the phantom empty
// element a trailing newline would otherwise produce.
func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.Split(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
