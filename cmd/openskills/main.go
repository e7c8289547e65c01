package main

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"openskills/internal/ui"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := newRootCmd().ExecuteContext(ctx)
	switch {
	case err == nil:
	case isCancelled(err) || errors.Is(err, context.Canceled):
		ui.Warning("Cancelled by user")
	default:
		ui.Error("%v", err)
		os.Exit(1)
	}
}
