// Package cmd implements the minilang command line.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/orizon-lang/minilang/internal/cli"
	"github.com/orizon-lang/minilang/internal/diagnostic"
	"github.com/orizon-lang/minilang/internal/frontend"
)

// SampleProgram is checked when no source is given.
const SampleProgram = "let a = 1;\nlet b: number = 2;\nlet c = a = b;"

// globals holds the persistent flags and the state derived from them.
type globals struct {
	cfgFile string
	verbose bool
	debug   bool
	color   string

	cfg    *cli.Config
	logger *cli.Logger
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	g := &globals{}

	rootCmd := &cobra.Command{
		Use:   "minilang [source]",
		Short: "Front end for the minilang let/type language",
		Long: `minilang lexes, parses and binds programs made of let declarations,
type aliases and assignment expressions, and reports every failure with
a caret under the offending token.

The optional argument is the program text itself. Without it the built-in
sample program is checked. Use "minilang check" to check files.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return g.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			src := SampleProgram
			if len(args) > 0 {
				src = args[0]
			} else {
				g.logger.Info("no input given, checking the sample program")
			}
			return g.checkSource(cmd, src)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&g.cfgFile, "config", "", "config file (default: $"+cli.EnvConfig+" or ./"+cli.DefaultConfigFile+")")
	flags.BoolVarP(&g.verbose, "verbose", "v", false, "verbose output and file:line:col diagnostics")
	flags.BoolVar(&g.debug, "debug", false, "debug logging")
	flags.StringVar(&g.color, "color", "", "colour diagnostics: auto, always or never")

	rootCmd.AddCommand(
		newCheckCmd(g),
		newTokensCmd(g),
		newASTCmd(g),
		newWatchCmd(g),
		newVersionCmd(),
		newConfigCmd(g),
		newFmtCmd(g),
	)
	return rootCmd
}

// Execute runs the command line and prints the resulting error, if any.
func Execute() error {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), err)
		return err
	}
	return nil
}

// setup loads the config file and lets explicitly set flags override it.
func (g *globals) setup(cmd *cobra.Command) error {
	path := cli.DiscoverConfigPath(g.cfgFile)
	cfg, err := cli.LoadConfig(path)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("verbose") {
		cfg.Verbose = g.verbose
	}
	if flags.Changed("debug") {
		cfg.Debug = g.debug
	}
	if flags.Changed("color") {
		cfg.Color = cli.ColorMode(g.color)
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	g.cfg = cfg
	g.logger = cli.NewLoggerTo(cmd.ErrOrStderr(), cfg.Verbose, cfg.Debug)
	if path != "" {
		g.logger.Debug("config loaded from %s", path)
	}
	return nil
}

func (g *globals) frontendOptions(filename string) frontend.Options {
	return frontend.Options{
		Filename:           filename,
		MaxAssignmentDepth: g.cfg.MaxAssignmentDepth,
		MaxErrors:          g.cfg.MaxErrors,
	}
}

func (g *globals) renderOptions(cmd *cobra.Command) diagnostic.RenderOptions {
	f, _ := cmd.ErrOrStderr().(*os.File)
	return diagnostic.RenderOptions{
		Verbose: g.cfg.Verbose,
		Color:   g.cfg.Color.Enabled(f),
	}
}
