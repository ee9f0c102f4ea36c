package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/kk-code-lab/rctx/internal/cli"
)

func main() {
	rootCmd := cli.NewRootCommand()

	if err := rootCmd.Execute(); err != nil {
		red := color.New(color.FgRed, color.Bold)
		fmt.Fprintf(os.Stderr, "%s %v\n", red.Sprint("Error:"), err)
		os.Exit(1)
	}
}
