package cmd

import (
	"github.com/spf13/cobra"

	"github.com/orizon-lang/minilang/internal/cli"
)

func newVersionCmd() *cobra.Command {
	var jsonOutput bool

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.PrintVersion(cmd.OutOrStdout(), "minilang", jsonOutput)
		},
	}
	versionCmd.Flags().BoolVar(&jsonOutput, "json", false, "output in JSON format")
	return versionCmd
}
