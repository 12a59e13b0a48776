// Package frontend runs the lex, parse and bind pipeline over one source
// text and turns its failures into diagnostics.
package frontend

import (
	"fmt"
	"io"
	"os"

	"github.com/orizon-lang/minilang/internal/ast"
	"github.com/orizon-lang/minilang/internal/binder"
	"github.com/orizon-lang/minilang/internal/diagnostic"
	mlerrors "github.com/orizon-lang/minilang/internal/errors"
	"github.com/orizon-lang/minilang/internal/parser"
	"github.com/orizon-lang/minilang/internal/position"
)

// Stage names the pipeline step a result stopped at.
type Stage int

const (
	StageDone Stage = iota
	StageParse
	StageBind
)

func (s Stage) String() string {
	switch s {
	case StageDone:
		return "done"
	case StageParse:
		return "parse"
	case StageBind:
		return "bind"
	default:
		return "unknown"
	}
}

// Options configures a check.
type Options struct {
	// Filename is used in verbose diagnostics; it may be empty.
	Filename           string
	MaxAssignmentDepth int
	// MaxErrors caps reported parse diagnostics; 0 means unlimited.
	MaxErrors int
}

// Result is the outcome of checking one source text.
type Result struct {
	File   *position.SourceFile
	Module *ast.Module
	// Err is nil on success, otherwise the module-level failure: the last
	// parse error, or the binder's error when parsing succeeded.
	Err         error
	Stage       Stage
	ParseErrors []*parser.ParseError
	Diagnostics []diagnostic.Diagnostic
	// Truncated is set when MaxErrors dropped diagnostics.
	Truncated bool

	engine *diagnostic.DiagnosticEngine
}

// OK reports whether parsing and binding both succeeded.
func (r *Result) OK() bool {
	return r.Err == nil
}

// Summary returns a one-line count of the reported diagnostics.
func (r *Result) Summary() string {
	return r.engine.Summary()
}

// Code returns the failure code, or "" on success.
func (r *Result) Code() mlerrors.Code {
	return mlerrors.CodeOf(r.Err)
}

// Check parses and binds src. Binding only runs when every statement
// parsed.
func Check(src string, opts Options) *Result {
	file := position.NewSourceFile(opts.Filename, src)
	engine := diagnostic.NewDiagnosticEngine(diagnostic.DiagnosticConfig{MaxErrors: opts.MaxErrors})

	mod, perrs, err := parser.ParseString(src, parser.Options{MaxAssignmentDepth: opts.MaxAssignmentDepth})

	res := &Result{
		File:        file,
		Module:      mod,
		ParseErrors: perrs,
		engine:      engine,
	}

	if err != nil {
		for _, perr := range perrs {
			engine.AddDiagnostic(diagnostic.Common.SyntaxError(
				file.Span(perr.Token.Offset, perr.Token.End()),
				string(perr.Code),
				perr.Message))
		}
		res.Err = err
		res.Stage = StageParse
	} else if err := binder.Bind(mod); err != nil {
		res.Err = err
		res.Stage = StageBind
		engine.AddDiagnostic(bindDiagnostic(file, mod, err))
	}

	engine.SortDiagnostics()
	res.Diagnostics = engine.GetDiagnostics()
	res.Truncated = engine.Truncated()
	return res
}

func bindDiagnostic(file *position.SourceFile, mod *ast.Module, err error) *diagnostic.Diagnostic {
	rerr, ok := err.(*binder.RedeclarationError)
	if !ok {
		return diagnostic.NewDiagnostic().Error().Semantic().
			Code(string(mlerrors.CodeOf(err))).
			Message(err.Error()).
			Build()
	}

	return diagnostic.Common.Redeclaration(
		file.Span(int(rerr.Pos), int(rerr.Pos)),
		file.Span(int(rerr.First), int(rerr.First)),
		string(rerr.ErrorCode()),
		rerr.Error())
}

// CheckFile reads path and checks its contents. Only read failures are
// returned as errors; check failures are reported in the Result.
func CheckFile(path string, opts Options) (*Result, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, mlerrors.ReadFailed(path, err)
	}

	if opts.Filename == "" {
		opts.Filename = path
	}
	return Check(string(src), opts), nil
}

// WriteDiagnostics renders every diagnostic of r to w.
func (r *Result) WriteDiagnostics(w io.Writer, opts diagnostic.RenderOptions) error {
	renderer := diagnostic.NewRenderer(w, opts)
	if err := renderer.RenderAll(r.File, r.Diagnostics); err != nil {
		return fmt.Errorf("writing diagnostics: %w", err)
	}
	if r.Truncated {
		if _, err := fmt.Fprintln(w, "too many errors"); err != nil {
			return fmt.Errorf("writing diagnostics: %w", err)
		}
	}
	return nil
}
