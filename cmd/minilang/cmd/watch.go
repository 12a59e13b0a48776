package cmd

import (
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/orizon-lang/minilang/internal/watch"
)

func newWatchCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "watch files...",
		Short: "Re-check files whenever they change",
		Long: `Watch checks the given files once, then again each time one of them
is written. Changes arriving within watch_debounce of each other are
checked together. Stop with Ctrl-C.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fw, err := watch.NewFSWatcher()
			if err != nil {
				return err
			}
			defer fw.Close()

			watched, err := addParents(fw, args)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			g.recheck(cmd, args)
			return watch.Run(ctx, fw, g.cfg.WatchDebounce.Duration, func(paths []string) {
				var changed []string
				for _, p := range paths {
					if name, ok := watched[filepath.Clean(p)]; ok {
						changed = append(changed, name)
					}
				}
				if len(changed) > 0 {
					g.recheck(cmd, changed)
				}
			})
		},
	}
}

// addParents watches the directory of every file, since editors often
// replace a file rather than write it in place. It returns the cleaned
// paths mapped to the names given on the command line.
func addParents(w watch.Watcher, files []string) (map[string]string, error) {
	watched := make(map[string]string, len(files))
	dirs := make(map[string]bool)
	for _, f := range files {
		watched[filepath.Clean(f)] = f
		dir := filepath.Dir(f)
		if dirs[dir] {
			continue
		}
		dirs[dir] = true
		if err := w.Add(dir); err != nil {
			return nil, err
		}
	}
	return watched, nil
}

// recheck checks files and logs the outcome; failures do not stop watching.
func (g *globals) recheck(cmd *cobra.Command, files []string) {
	results, err := g.checkFiles(cmd, files)
	if err != nil {
		g.logger.Error("%v", err)
		return
	}

	checked := make([]Checked, len(files))
	for i, res := range results {
		checked[i] = Checked{Name: files[i], Result: res}
	}
	if err := g.report(checked); err != nil {
		g.logger.Warn("%v", err)
	}
}
