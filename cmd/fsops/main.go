package main

import (
	"fmt"
	"os"

	"github.com/gobeaver/fsops/internal/cli"
)

var version = "dev"

func main() {
	rootCmd := cli.NewRootCmd(version)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "fsops: %s: %v\n", cli.ErrorKind(err), err)
		os.Exit(cli.ExitCode(err))
	}
}
