package errors

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"strings"
	"testing"
)

func TestCodeCategory(t *testing.T) {
	tests := []struct {
		code Code
		want ErrorCategory
	}{
		{CodeUnexpectedToken, CategorySyntax},
		{CodeInvalidNumericLiteral, CategorySyntax},
		{CodeAssignmentTooDeep, CategorySyntax},
		{CodeCannotRedeclare, CategorySemantic},
		{CodeInvalidConfig, CategoryConfig},
		{CodeUnsupportedVersion, CategoryConfig},
		{CodeReadFailed, CategoryIO},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			if got := tt.code.Category(); got != tt.want {
				t.Errorf("Category() = %s, want %s", got, tt.want)
			}
			if tt.code.Error() != string(tt.code) {
				t.Errorf("Error() = %q", tt.code.Error())
			}
		})
	}
}

func TestStandardErrorFormat(t *testing.T) {
	err := InvalidConfig("minilang.toml", "color", "purple")

	msg := err.Error()
	if !strings.HasPrefix(msg, "[CONFIG:invalid-config] invalid value for color") {
		t.Errorf("unexpected message %q", msg)
	}
	if !strings.Contains(msg, "(path=minilang.toml, value=purple)") {
		t.Errorf("context missing or unsorted in %q", msg)
	}
	if !strings.Contains(err.Caller, "InvalidConfig") {
		t.Errorf("Caller = %q, want the constructor", err.Caller)
	}
}

func TestStandardErrorIsAndUnwrap(t *testing.T) {
	err := fmt.Errorf("loading: %w", ReadFailed("x.ml", fs.ErrNotExist))

	if !stderrors.Is(err, CodeReadFailed) {
		t.Error("errors.Is should match the code")
	}
	if stderrors.Is(err, CodeInvalidConfig) {
		t.Error("errors.Is matched the wrong code")
	}
	if !stderrors.Is(err, fs.ErrNotExist) {
		t.Error("errors.Is should reach the wrapped cause")
	}

	var se *StandardError
	if !stderrors.As(err, &se) || se.Category != CategoryIO {
		t.Fatalf("errors.As failed or wrong category: %v", se)
	}
}

func TestUnsupportedVersion(t *testing.T) {
	err := UnsupportedVersion(">= 2.0", "0.1.0")
	if err.Code != CodeUnsupportedVersion || err.Category != CategoryConfig {
		t.Errorf("unexpected code/category %s/%s", err.Code, err.Category)
	}
	if !strings.Contains(err.Error(), `does not satisfy ">= 2.0"`) {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestCodeOf(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", InvalidConfig("x", "color", 1))

	tests := []struct {
		name string
		err  error
		want Code
	}{
		{"nil", nil, ""},
		{"bare code", CodeCannotRedeclare, CodeCannotRedeclare},
		{"wrapped standard error", wrapped, CodeInvalidConfig},
		{"plain error", stderrors.New("x"), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CodeOf(tt.err); got != tt.want {
				t.Errorf("CodeOf() = %q, want %q", got, tt.want)
			}
		})
	}
}
