// Package main is the entry point for the newstimes CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Adda-Baaj/newstimes/internal/cli"
)

// set at build time via ldflags
var (
	version   = "dev"
	commit    = ""
	buildTime = ""
)

func main() {
	cli.SetBuildInfo(version, commit, buildTime)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.NewRootCmd().ExecuteContext(ctx); err != nil {
		os.Stderr.WriteString("Error: " + err.Error() + "\n")
		stop()
		os.Exit(1)
	}
}
