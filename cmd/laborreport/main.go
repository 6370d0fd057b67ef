package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"laborreport/internal/platform/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := newApp(os.Stdin, os.Stdout, os.Stderr)
	if err := newRootCmd(a).ExecuteContext(ctx); err != nil {
		logger.Get().Debug().Err(err).Msg("command failed")
		os.Exit(1)
	}
}
