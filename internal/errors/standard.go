// Package errors provides standardized error messaging for minilang
package errors

import (
	"fmt"
	"runtime"
	"sort"
	"strings"
)

// ErrorCategory represents different categories of errors
type ErrorCategory string

const (
	CategorySyntax   ErrorCategory = "SYNTAX"
	CategorySemantic ErrorCategory = "SEMANTIC"
	CategoryConfig   ErrorCategory = "CONFIG"
	CategoryIO       ErrorCategory = "IO"
)

// Code identifies a failure kind. A Code is itself an error so callers can
// test for a kind with errors.Is(err, CodeUnexpectedToken).
type Code string

const (
	CodeUnexpectedToken       Code = "unexpected-token"
	CodeInvalidNumericLiteral Code = "invalid-numeric-literal"
	CodeAssignmentTooDeep     Code = "assignment-too-deep"
	CodeCannotRedeclare       Code = "cannot-redeclare"

	CodeInvalidConfig      Code = "invalid-config"
	CodeUnsupportedVersion Code = "unsupported-language-version"
	CodeReadFailed         Code = "read-failed"
)

// Error implements the error interface
func (c Code) Error() string {
	return string(c)
}

// Category returns the category a code belongs to.
func (c Code) Category() ErrorCategory {
	switch c {
	case CodeUnexpectedToken, CodeInvalidNumericLiteral, CodeAssignmentTooDeep:
		return CategorySyntax
	case CodeCannotRedeclare:
		return CategorySemantic
	case CodeInvalidConfig, CodeUnsupportedVersion:
		return CategoryConfig
	default:
		return CategoryIO
	}
}

// Coded is implemented by errors that carry a Code.
type Coded interface {
	error
	ErrorCode() Code
}

// CodeOf returns the code carried by err or anything it wraps, or "" if
// there is none.
func CodeOf(err error) Code {
	for err != nil {
		switch e := err.(type) {
		case Code:
			return e
		case Coded:
			return e.ErrorCode()
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return ""
		}
		err = u.Unwrap()
	}
	return ""
}

// StandardError provides a consistent error format
type StandardError struct {
	Category ErrorCategory
	Code     Code
	Message  string
	Context  map[string]interface{}
	Caller   string
	Err      error
}

// Error implements the error interface
func (e *StandardError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s:%s] %s", e.Category, e.Code, e.Message)

	if len(e.Context) > 0 {
		keys := make([]string, 0, len(e.Context))
		for k := range e.Context {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = fmt.Sprintf("%s=%v", k, e.Context[k])
		}
		fmt.Fprintf(&b, " (%s)", strings.Join(parts, ", "))
	}

	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

// ErrorCode returns the error's code.
func (e *StandardError) ErrorCode() Code {
	return e.Code
}

// Unwrap returns the underlying cause.
func (e *StandardError) Unwrap() error {
	return e.Err
}

// Is matches the error's Code.
func (e *StandardError) Is(target error) bool {
	code, ok := target.(Code)
	return ok && code == e.Code
}

// NewStandardError creates a new standardized error
func NewStandardError(code Code, message string, context map[string]interface{}) *StandardError {
	pc, _, _, ok := runtime.Caller(1)
	caller := "unknown"
	if ok {
		if fn := runtime.FuncForPC(pc); fn != nil {
			caller = fn.Name()
		}
	}

	return &StandardError{
		Category: code.Category(),
		Code:     code,
		Message:  message,
		Context:  context,
		Caller:   caller,
	}
}

// Common error constructors

func InvalidConfig(path, field string, value interface{}) *StandardError {
	return NewStandardError(CodeInvalidConfig,
		fmt.Sprintf("invalid value for %s", field),
		map[string]interface{}{"path": path, "value": value})
}

func UnsupportedVersion(constraint, version string) *StandardError {
	return NewStandardError(CodeUnsupportedVersion,
		fmt.Sprintf("language version %s does not satisfy %q", version, constraint),
		map[string]interface{}{"constraint": constraint, "version": version})
}

func ReadFailed(path string, err error) *StandardError {
	e := NewStandardError(CodeReadFailed,
		fmt.Sprintf("cannot read %s", path),
		nil)
	e.Err = err
	return e
}
