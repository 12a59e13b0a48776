package main

import (
	"github.com/orizon-lang/minilang/cmd/minilang/cmd"
	"github.com/orizon-lang/minilang/internal/cli"
)

func main() {
	if err := cmd.Execute(); err != nil {
		cli.ExitWithCode(1, "")
	}
}
