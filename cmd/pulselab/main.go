package main

import (
	"fmt"
	"os"

	"github.com/EntroMorphic/pulse-arithmetic-lab/internal/cli"
)

func main() {
	rootCmd := cli.NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.GetExitCode(err))
	}
}
