package cmd

import (
	"os"

	mlerrors "github.com/orizon-lang/minilang/internal/errors"
)

// loadSource picks the text a single-source command works on: inline
// text, the named file, or the sample program.
func loadSource(args []string, expr string) (name, src string, err error) {
	switch {
	case expr != "":
		return "", expr, nil
	case len(args) > 0:
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", mlerrors.ReadFailed(args[0], err)
		}
		return args[0], string(data), nil
	default:
		return "", SampleProgram, nil
	}
}
