package cmd

import (
	"github.com/spf13/cobra"

	"github.com/orizon-lang/minilang/internal/ast"
	"github.com/orizon-lang/minilang/internal/frontend"
)

func newASTCmd(g *globals) *cobra.Command {
	var expr string

	astCmd := &cobra.Command{
		Use:   "ast [file]",
		Short: "Print the parsed statements and the symbol table",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, src, err := loadSource(args, expr)
			if err != nil {
				return err
			}

			res := frontend.Check(src, g.frontendOptions(name))
			g.logger.Debug("%d nodes", ast.NewNodeCountVisitor().CountModule(res.Module))
			if err := ast.Fprint(cmd.OutOrStdout(), res.Module); err != nil {
				return err
			}
			if err := res.WriteDiagnostics(cmd.ErrOrStderr(), g.renderOptions(cmd)); err != nil {
				return err
			}
			return g.report([]Checked{{Result: res}})
		},
	}
	astCmd.Flags().StringVarP(&expr, "expr", "e", "", "parse the given source text")
	return astCmd
}
