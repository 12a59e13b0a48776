//go:build !linux && !darwin && !freebsd && !netbsd && !openbsd

package cli

import (
	"os"
)

// Without termios, a character device is the best available hint.
func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
