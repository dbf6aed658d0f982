package main

import (
	"fmt"
	"os"

	"github.com/roach88/forgepatch/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "forgepatch:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
