package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	mlerrors "github.com/orizon-lang/minilang/internal/errors"
	"github.com/orizon-lang/minilang/internal/format"
)

func newFmtCmd(g *globals) *cobra.Command {
	var writeInPlace, listOnly bool

	fmtCmd := &cobra.Command{
		Use:   "fmt [files...]",
		Short: "Print source in canonical layout",
		Long: `Fmt reformats each file to one statement per line. Without files it
reads standard input and writes the result to standard output.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := format.DefaultOptions()
			opts.MaxAssignmentDepth = g.cfg.MaxAssignmentDepth

			if len(args) == 0 {
				in, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return mlerrors.ReadFailed("<stdin>", err)
				}
				out, err := format.Source(string(in), opts)
				if err != nil {
					return fmt.Errorf("<stdin>: %w", err)
				}
				_, err = io.WriteString(cmd.OutOrStdout(), out)
				return err
			}

			for _, path := range args {
				if err := formatFile(cmd, path, opts, writeInPlace, listOnly); err != nil {
					return err
				}
			}
			return nil
		},
	}
	fmtCmd.Flags().BoolVarP(&writeInPlace, "write", "w", false, "write result to (source) file instead of stdout")
	fmtCmd.Flags().BoolVarP(&listOnly, "list", "l", false, "list files whose formatting differs")
	return fmtCmd
}

func formatFile(cmd *cobra.Command, path string, opts format.Options, writeInPlace, listOnly bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return mlerrors.ReadFailed(path, err)
	}
	src := string(data)

	if listOnly || writeInPlace {
		changed, err := format.Changed(src, opts)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if !changed {
			return nil
		}
		if listOnly {
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		}
	}

	out, err := format.Source(src, opts)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	if writeInPlace {
		info, err := os.Stat(path)
		if err != nil {
			return err
		}
		if err := os.WriteFile(path, []byte(out), info.Mode().Perm()); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		return nil
	}

	_, err = io.WriteString(cmd.OutOrStdout(), out)
	return err
}
