// Diagnostic reporting for the minilang front end.
// Collects parse and binding failures and renders them against the source.

package diagnostic

import (
	"fmt"
	"sort"

	"github.com/orizon-lang/minilang/internal/position"
)

// DiagnosticLevel represents the severity level of a diagnostic message.
type DiagnosticLevel int

const (
	DiagnosticError DiagnosticLevel = iota
	DiagnosticNote
)

func (dl DiagnosticLevel) String() string {
	switch dl {
	case DiagnosticError:
		return "error"
	case DiagnosticNote:
		return "note"
	default:
		return "unknown"
	}
}

// DiagnosticCategory represents the category of diagnostic.
type DiagnosticCategory int

const (
	DiagnosticSyntax DiagnosticCategory = iota
	DiagnosticSemantic
)

func (dc DiagnosticCategory) String() string {
	switch dc {
	case DiagnosticSyntax:
		return "syntax"
	case DiagnosticSemantic:
		return "semantic"
	default:
		return "unknown"
	}
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	Code        string
	Title       string
	Message     string
	RelatedInfo []RelatedInformation
	Span        position.Span
	Level       DiagnosticLevel
	Category    DiagnosticCategory
}

// RelatedInformation provides additional context for a diagnostic.
type RelatedInformation struct {
	Message string
	Span    position.Span
}

// DiagnosticBuilder helps construct diagnostic messages with fluent API.
type DiagnosticBuilder struct {
	diagnostic *Diagnostic
}

// NewDiagnostic creates a new diagnostic builder.
func NewDiagnostic() *DiagnosticBuilder {
	return &DiagnosticBuilder{diagnostic: &Diagnostic{}}
}

func (db *DiagnosticBuilder) Error() *DiagnosticBuilder {
	db.diagnostic.Level = DiagnosticError

	return db
}

func (db *DiagnosticBuilder) Syntax() *DiagnosticBuilder {
	db.diagnostic.Category = DiagnosticSyntax

	return db
}

func (db *DiagnosticBuilder) Semantic() *DiagnosticBuilder {
	db.diagnostic.Category = DiagnosticSemantic

	return db
}

func (db *DiagnosticBuilder) Code(code string) *DiagnosticBuilder {
	db.diagnostic.Code = code

	return db
}

func (db *DiagnosticBuilder) Title(title string) *DiagnosticBuilder {
	db.diagnostic.Title = title

	return db
}

func (db *DiagnosticBuilder) Message(message string) *DiagnosticBuilder {
	db.diagnostic.Message = message

	return db
}

func (db *DiagnosticBuilder) Span(span position.Span) *DiagnosticBuilder {
	db.diagnostic.Span = span

	return db
}

func (db *DiagnosticBuilder) Related(span position.Span, message string) *DiagnosticBuilder {
	related := RelatedInformation{
		Span:    span,
		Message: message,
	}
	db.diagnostic.RelatedInfo = append(db.diagnostic.RelatedInfo, related)

	return db
}

func (db *DiagnosticBuilder) Build() *Diagnostic {
	return db.diagnostic
}

// DiagnosticEngine manages the collection and processing of diagnostics.
type DiagnosticEngine struct {
	diagnostics []Diagnostic
	config      DiagnosticConfig
	truncated   bool
}

// DiagnosticConfig controls diagnostic behavior.
type DiagnosticConfig struct {
	MaxErrors int // 0 means unlimited
}

// NewDiagnosticEngine creates a new diagnostic engine.
func NewDiagnosticEngine(config DiagnosticConfig) *DiagnosticEngine {
	return &DiagnosticEngine{
		diagnostics: make([]Diagnostic, 0),
		config:      config,
	}
}

// AddDiagnostic adds a diagnostic to the engine. It reports false once the
// error limit has been reached and the diagnostic was dropped.
func (de *DiagnosticEngine) AddDiagnostic(diagnostic *Diagnostic) bool {
	if de.config.MaxErrors > 0 && diagnostic.Level == DiagnosticError &&
		de.ErrorCount() >= de.config.MaxErrors {
		de.truncated = true
		return false
	}

	de.diagnostics = append(de.diagnostics, *diagnostic)

	return true
}

// GetDiagnostics returns all diagnostics.
func (de *DiagnosticEngine) GetDiagnostics() []Diagnostic {
	return de.diagnostics
}

// ErrorCount returns the number of error-level diagnostics.
func (de *DiagnosticEngine) ErrorCount() int {
	n := 0
	for _, diag := range de.diagnostics {
		if diag.Level == DiagnosticError {
			n++
		}
	}

	return n
}

// Truncated reports whether diagnostics were dropped because of MaxErrors.
func (de *DiagnosticEngine) Truncated() bool {
	return de.truncated
}

// SortDiagnostics sorts diagnostics by position and severity. Diagnostics
// at the same place keep the order they were reported in.
func (de *DiagnosticEngine) SortDiagnostics() {
	sort.SliceStable(de.diagnostics, func(i, j int) bool {
		a, b := de.diagnostics[i], de.diagnostics[j]

		if a.Span.Start.Filename != b.Span.Start.Filename {
			return a.Span.Start.Filename < b.Span.Start.Filename
		}

		if a.Span.Start.Offset != b.Span.Start.Offset {
			return a.Span.Start.Offset < b.Span.Start.Offset
		}

		return a.Level < b.Level
	})
}

// Summary returns a one-line count of the reported errors.
func (de *DiagnosticEngine) Summary() string {
	errorCount := de.ErrorCount()

	switch {
	case errorCount == 0:
		return "no issues found"
	case de.truncated:
		return fmt.Sprintf("%d error(s), more not shown", errorCount)
	default:
		return fmt.Sprintf("%d error(s)", errorCount)
	}
}

// CommonDiagnostics provides factory functions for common diagnostic patterns.
type CommonDiagnostics struct{}

// SyntaxError creates a diagnostic for a failed statement.
func (cd *CommonDiagnostics) SyntaxError(span position.Span, code, message string) *Diagnostic {
	return NewDiagnostic().
		Error().
		Syntax().
		Code(code).
		Title("syntax error").
		Message(message).
		Span(span).
		Build()
}

// Redeclaration creates a diagnostic for a name declared twice with the
// same kind.
func (cd *CommonDiagnostics) Redeclaration(span, first position.Span, code, message string) *Diagnostic {
	return NewDiagnostic().
		Error().
		Semantic().
		Code(code).
		Title("duplicate declaration").
		Message(message).
		Span(span).
		Related(first, "first declared here").
		Build()
}

// Global instance for convenience.
var Common = &CommonDiagnostics{}
