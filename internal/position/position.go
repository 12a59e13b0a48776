// Package position provides source position tracking for the minilang
// front end. The AST only carries byte offsets; line and column numbers are
// derived from a SourceFile when a diagnostic has to be shown.
package position

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"
)

// Position represents a single point in source code
type Position struct {
	Filename string // Source file name
	Line     int    // 1-based line number
	Column   int    // 1-based column number (in runes)
	Offset   int    // 0-based byte offset in source
}

// IsValid returns true if the position is valid
func (p Position) IsValid() bool {
	return p.Line > 0 && p.Column > 0 && p.Offset >= 0
}

// String returns a string representation of the position
func (p Position) String() string {
	if p.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", filepath.Base(p.Filename), p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Span represents a range of source code between two positions
type Span struct {
	Start Position // Starting position (inclusive)
	End   Position // Ending position (exclusive)
}

// SourceFile represents a source file with content and line tracking
type SourceFile struct {
	Filename   string // File path, may be empty for inline sources
	Content    string // Source code content
	lineStarts []int  // byte offset at which each line begins
}

// NewSourceFile creates a new source file from content
func NewSourceFile(filename, content string) *SourceFile {
	starts := []int{0}
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &SourceFile{
		Filename:   filename,
		Content:    content,
		lineStarts: starts,
	}
}

// Position converts a byte offset into a full Position.
// Offsets outside the content are clamped to its bounds.
func (sf *SourceFile) Position(offset int) Position {
	offset = sf.clamp(offset)

	// index of the last line start <= offset
	line := sort.Search(len(sf.lineStarts), func(i int) bool {
		return sf.lineStarts[i] > offset
	}) - 1

	start := sf.lineStarts[line]
	return Position{
		Filename: sf.Filename,
		Line:     line + 1,
		Column:   utf8.RuneCountInString(sf.Content[start:offset]) + 1,
		Offset:   offset,
	}
}

// Span converts a pair of byte offsets into a Span.
func (sf *SourceFile) Span(start, end int) Span {
	return Span{Start: sf.Position(start), End: sf.Position(end)}
}

// GetLine returns the specified line (1-based) without its line terminator,
// or an empty string if the line does not exist.
func (sf *SourceFile) GetLine(lineNum int) string {
	if lineNum < 1 || lineNum > len(sf.lineStarts) {
		return ""
	}

	start := sf.lineStarts[lineNum-1]
	end := len(sf.Content)
	if lineNum < len(sf.lineStarts) {
		end = sf.lineStarts[lineNum] - 1
	}

	return strings.TrimSuffix(sf.Content[start:end], "\r")
}

func (sf *SourceFile) clamp(offset int) int {
	if offset < 0 {
		return 0
	}
	if offset > len(sf.Content) {
		return len(sf.Content)
	}
	return offset
}
