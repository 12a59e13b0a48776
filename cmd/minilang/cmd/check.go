package cmd

import (
	"bytes"
	"fmt"
	"runtime"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/orizon-lang/minilang/internal/frontend"
)

// Checked pairs a source name with its check result. Name is empty for
// inline source.
type Checked struct {
	Name   string
	Result *frontend.Result
}

func (c Checked) String() string {
	verb := "parse"
	if c.Result.Stage == frontend.StageBind {
		verb = "bind"
	}
	return fmt.Sprintf("%sfailed to %s: %s", prefix(c.Name), verb, c.Result.Code())
}

// CheckError reports the sources that failed.
type CheckError struct {
	Failures []Checked
}

func (e *CheckError) Error() string {
	lines := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		lines[i] = f.String()
	}
	return strings.Join(lines, "\n")
}

func newCheckCmd(g *globals) *cobra.Command {
	var expr string

	checkCmd := &cobra.Command{
		Use:   "check [files...]",
		Short: "Parse and bind source files",
		Long: `Check parses and binds each file, printing a diagnostic for every
failure. Files are checked concurrently; the exit status is 1 if any failed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, g, args, expr)
		},
	}
	checkCmd.Flags().StringVarP(&expr, "expr", "e", "", "check the given source text")
	return checkCmd
}

func runCheck(cmd *cobra.Command, g *globals, files []string, expr string) error {
	if expr != "" || len(files) == 0 {
		src := expr
		if src == "" {
			src = SampleProgram
			g.logger.Info("no input given, checking the sample program")
		}
		return g.checkSource(cmd, src)
	}

	results, err := g.checkFiles(cmd, files)
	if err != nil {
		return err
	}

	checked := make([]Checked, len(files))
	for i, res := range results {
		checked[i] = Checked{Result: res}
		if len(files) > 1 {
			checked[i].Name = files[i]
		}
	}
	return g.report(checked)
}

// checkSource checks inline program text.
func (g *globals) checkSource(cmd *cobra.Command, src string) error {
	res := frontend.Check(src, g.frontendOptions(""))
	if err := res.WriteDiagnostics(cmd.ErrOrStderr(), g.renderOptions(cmd)); err != nil {
		return err
	}
	return g.report([]Checked{{Result: res}})
}

// checkFiles checks files concurrently. Diagnostics of one file are rendered
// into a buffer and written out in one piece.
func (g *globals) checkFiles(cmd *cobra.Command, files []string) ([]*frontend.Result, error) {
	results := make([]*frontend.Result, len(files))
	opts := g.renderOptions(cmd)
	out := cmd.ErrOrStderr()

	var mu sync.Mutex
	var eg errgroup.Group
	eg.SetLimit(runtime.NumCPU())

	for i, path := range files {
		i, path := i, path
		eg.Go(func() error {
			g.logger.Debug("checking %s", path)

			res, err := frontend.CheckFile(path, g.frontendOptions(path))
			if err != nil {
				return err
			}
			results[i] = res

			var buf bytes.Buffer
			if err := res.WriteDiagnostics(&buf, opts); err != nil {
				return err
			}

			mu.Lock()
			defer mu.Unlock()
			_, err = out.Write(buf.Bytes())
			return err
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// report logs successes and returns a CheckError for the failures.
func (g *globals) report(checked []Checked) error {
	var failed []Checked
	for _, c := range checked {
		if c.Result.OK() {
			g.logger.Info("%sok: %d statements, %d symbols", prefix(c.Name),
				len(c.Result.Module.Statements), c.Result.Module.Scope.Len())
			continue
		}
		g.logger.Info("%s%s", prefix(c.Name), c.Result.Summary())
		failed = append(failed, c)
	}

	if len(failed) == 0 {
		return nil
	}
	return &CheckError{Failures: failed}
}

func prefix(name string) string {
	if name == "" {
		return ""
	}
	return name + ": "
}
