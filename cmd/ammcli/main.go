package main

import (
	"os"

	"github.com/paw-chain/cpamm/cmd/ammcli/cmd"
)

func main() {
	rootCmd := cmd.NewRootCmd()

	if err := rootCmd.Execute(); err != nil {
		cmd.PrintError(rootCmd.ErrOrStderr(), err)
		os.Exit(1)
	}
}
