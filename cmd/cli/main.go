// Package main is the entry point for the award-sync CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"award-sync/cmd/cli/cmd"
	"award-sync/core/ui"
	"award-sync/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cmd.Execute(ctx)
	stop()
	logging.Sync()

	if err != nil {
		ui.NewWriter(os.Stderr, false).Error("%v", err)
		os.Exit(1)
	}
}
