package cli

import (
	"os"
)

// ColorMode selects when diagnostics are coloured.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// Enabled resolves the mode for output going to f. Auto colours only
// terminals, and honours NO_COLOR and TERM=dumb.
func (m ColorMode) Enabled(f *os.File) bool {
	switch m {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}

	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return false
	}
	return f != nil && IsTerminal(f)
}

// IsTerminal reports whether f refers to a terminal.
func IsTerminal(f *os.File) bool {
	return isTerminal(f)
}
