package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	telltalecmd "github.com/louisbranch/telltale/internal/cmd/telltale"
	apperrors "github.com/louisbranch/telltale/internal/errors"
	"github.com/louisbranch/telltale/internal/platform/config"
)

// main expands grammar symbols or templates to stdout.
func main() {
	cfg, err := telltalecmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := telltalecmd.Run(ctx, cfg, os.Stdout); err != nil {
		config.Exitf("%s", apperrors.UserMessage(err, cfg.Locale))
	}
}
