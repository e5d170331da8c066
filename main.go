package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/CampusFoundry/ums-console/cmd"
	"github.com/CampusFoundry/ums-console/pkg/logger"
)

func main() {
	// Pre-parse --debug so the logger is configured before cobra runs.
	// Cobra parses the flag again afterwards, which is fine.
	var debug bool
	for _, arg := range os.Args[1:] {
		if arg == "--debug" {
			debug = true
			break
		}
	}

	logger.Init(debug)

	// Cancel all in-flight API calls on Ctrl+C or SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd.ExecuteContext(ctx)
}
