package main

import (
	"fmt"
	"os"

	"gemba.tools/internal/cli"
	"gemba.tools/internal/obs"
)

func main() {
	defer func() { _ = obs.Logger().Sync() }()

	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
