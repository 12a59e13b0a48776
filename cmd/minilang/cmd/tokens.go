package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/orizon-lang/minilang/internal/lexer"
	"github.com/orizon-lang/minilang/internal/position"
)

func newTokensCmd(g *globals) *cobra.Command {
	var expr string

	tokensCmd := &cobra.Command{
		Use:   "tokens [file]",
		Short: "Print the token stream",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, src, err := loadSource(args, expr)
			if err != nil {
				return err
			}
			file := position.NewSourceFile(name, src)
			tokens := lexer.New(src).Tokens()
			g.logger.Debug("%d tokens", len(tokens))

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
			for _, tok := range tokens {
				pos := file.Position(tok.Offset)
				fmt.Fprintf(tw, "%d:%d\t%s\t%q\n", pos.Line, pos.Column, tok.Type, tok.Literal)
			}
			return tw.Flush()
		},
	}
	tokensCmd.Flags().StringVarP(&expr, "expr", "e", "", "scan the given source text")
	return tokensCmd
}
