// Package format rewrites minilang source into its canonical layout: one
// statement per line, single spaces around '=' and after ':', and exactly
// one trailing newline.
package format

import (
	"bytes"
	"strings"

	"github.com/orizon-lang/minilang/internal/parser"
)

// Options controls formatting style.
type Options struct {
	// PreserveNewlineStyle: when true, CRLF in input keeps CRLF in output; else LF.
	PreserveNewlineStyle bool
	// MaxAssignmentDepth is passed to the parser; 0 means the default.
	MaxAssignmentDepth int
}

// DefaultOptions returns sane defaults.
func DefaultOptions() Options {
	return Options{PreserveNewlineStyle: true}
}

// Source parses src and prints it back in canonical form. Source that does
// not parse is returned unchanged together with the parse error.
func Source(src string, opts Options) (string, error) {
	mod, _, err := parser.ParseString(src, parser.Options{MaxAssignmentDepth: opts.MaxAssignmentDepth})
	if err != nil {
		return src, err
	}

	out := mod.String()
	if newlineFor(src, opts) == "\r\n" {
		out = strings.ReplaceAll(out, "\n", "\r\n")
	}
	return FormatText(out, opts), nil
}

// Changed reports whether Source would modify src.
func Changed(src string, opts Options) (bool, error) {
	out, err := Source(src, opts)
	if err != nil {
		return false, err
	}
	return out != src, nil
}

// FormatText applies minimal, safe formatting without parsing:
// - trims trailing spaces/tabs on each line
// - ensures exactly one trailing newline.
// - preserves CRLF vs LF depending on options and input.
func FormatText(text string, opts Options) string {
	norm := strings.ReplaceAll(text, "\r\n", "\n")
	norm = strings.ReplaceAll(norm, "\r", "\n")

	lines := strings.Split(norm, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return withNewlines(strings.Join(lines, "\n"), newlineFor(text, opts))
}

func newlineFor(src string, opts Options) string {
	if opts.PreserveNewlineStyle && strings.Contains(src, "\r\n") {
		return "\r\n"
	}
	return "\n"
}

// withNewlines joins the LF-separated lines of text with sep and ends the
// result with exactly one sep.
func withNewlines(text, sep string) string {
	text = strings.TrimRight(text, "\n")
	if text == "" {
		return sep
	}

	var buf bytes.Buffer
	for i, ln := range strings.Split(text, "\n") {
		if i > 0 {
			buf.WriteString(sep)
		}
		buf.WriteString(ln)
	}
	buf.WriteString(sep)
	return buf.String()
}
