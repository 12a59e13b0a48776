package parser

import (
	"fmt"

	"github.com/orizon-lang/minilang/internal/ast"
	mlerrors "github.com/orizon-lang/minilang/internal/errors"
	"github.com/orizon-lang/minilang/internal/lexer"
)

// ParseError represents a failed statement. Pos is the start of the
// offending token; Token is that token.
type ParseError struct {
	Code    mlerrors.Code
	Pos     ast.Pos
	Token   lexer.Token
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at offset %d: %s", e.Code, e.Pos, e.Message)
}

// Is lets errors.Is match a ParseError against its code.
func (e *ParseError) Is(target error) bool {
	code, ok := target.(mlerrors.Code)
	return ok && code == e.Code
}

// ErrorCode returns the failure kind.
func (e *ParseError) ErrorCode() mlerrors.Code {
	return e.Code
}

func newError(code mlerrors.Code, tok lexer.Token, format string, args ...interface{}) *ParseError {
	return &ParseError{
		Code:    code,
		Pos:     ast.Pos(tok.Offset),
		Token:   tok,
		Message: fmt.Sprintf(format, args...),
	}
}
