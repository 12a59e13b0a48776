package diagnostic

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/orizon-lang/minilang/internal/position"
)

// Palette
var (
	ColorError = lipgloss.Color("#EF4444") // Red
	ColorNote  = lipgloss.Color("#06B6D4") // Cyan
	ColorMuted = lipgloss.Color("#6B7280") // Gray
)

// RenderOptions controls how diagnostics are printed.
type RenderOptions struct {
	// Verbose adds a file:line:col header and related notes.
	Verbose bool
	// Color enables ANSI styling.
	Color bool
}

// Renderer writes diagnostics as the offending line followed by a caret
// line pointing at the failure.
type Renderer struct {
	out  io.Writer
	opts RenderOptions

	level   map[DiagnosticLevel]lipgloss.Style
	caret   lipgloss.Style
	message lipgloss.Style
	muted   lipgloss.Style
}

// NewRenderer creates a renderer writing to out.
func NewRenderer(out io.Writer, opts RenderOptions) *Renderer {
	lr := lipgloss.NewRenderer(out)
	if opts.Color {
		lr.SetColorProfile(termenv.ANSI256)
	} else {
		lr.SetColorProfile(termenv.Ascii)
	}

	return &Renderer{
		out:  out,
		opts: opts,
		level: map[DiagnosticLevel]lipgloss.Style{
			DiagnosticError: lr.NewStyle().Foreground(ColorError).Bold(true),
			DiagnosticNote:  lr.NewStyle().Foreground(ColorNote).Bold(true),
		},
		caret:   lr.NewStyle().Foreground(ColorError).Bold(true),
		message: lr.NewStyle().Bold(true),
		muted:   lr.NewStyle().Foreground(ColorMuted),
	}
}

// paint applies style only when colour is enabled. Source text never goes
// through lipgloss since it would expand tabs.
func (r *Renderer) paint(style lipgloss.Style, s string) string {
	if !r.opts.Color || s == "" {
		return s
	}
	return style.Render(s)
}

// Format returns the rendering of a single diagnostic against file.
func (r *Renderer) Format(file *position.SourceFile, diag *Diagnostic) string {
	var b strings.Builder

	start := diag.Span.Start
	if file != nil && !start.IsValid() {
		start = file.Position(start.Offset)
	}

	if r.opts.Verbose {
		levelStyle := r.level[diag.Level]
		fmt.Fprintf(&b, "%s: %s",
			r.paint(r.muted, start.String()),
			r.paint(levelStyle, fmt.Sprintf("%s[%s]", diag.Level, diag.Code)))
		if diag.Title != "" {
			fmt.Fprintf(&b, ": %s", diag.Title)
		}
		b.WriteString("\n")
	}

	r.writeCaret(&b, file, start, diag.Message, r.caret)

	if r.opts.Verbose {
		for _, related := range diag.RelatedInfo {
			pos := related.Span.Start
			if file != nil && !pos.IsValid() {
				pos = file.Position(pos.Offset)
			}
			fmt.Fprintf(&b, "%s: %s\n",
				r.paint(r.muted, pos.String()),
				r.paint(r.level[DiagnosticNote], "note"))
			r.writeCaret(&b, file, pos, related.Message, r.level[DiagnosticNote])
		}
	}

	return b.String()
}

func (r *Renderer) writeCaret(b *strings.Builder, file *position.SourceFile, pos position.Position, message string, caretStyle lipgloss.Style) {
	line := ""
	if file != nil {
		line = file.GetLine(pos.Line)
	}

	column := pos.Column
	if column < 1 {
		column = 1
	}
	caret := position.CaretLine(line, column)
	pad := caret[:len(caret)-1]

	b.WriteString(line)
	b.WriteString("\n")
	b.WriteString(pad)
	b.WriteString(r.paint(caretStyle, "^"))
	if message != "" {
		b.WriteString(" ")
		b.WriteString(r.paint(r.message, message))
	}
	b.WriteString("\n")
}

// Render writes one diagnostic.
func (r *Renderer) Render(file *position.SourceFile, diag *Diagnostic) error {
	_, err := io.WriteString(r.out, r.Format(file, diag))
	return err
}

// RenderAll writes every diagnostic in order.
func (r *Renderer) RenderAll(file *position.SourceFile, diags []Diagnostic) error {
	for i := range diags {
		if err := r.Render(file, &diags[i]); err != nil {
			return err
		}
	}
	return nil
}
