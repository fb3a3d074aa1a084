// Package main prints paracletic random bytes as hex or runs the
// generator self-test.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/opd-ai/go-paracletic/internal/config"
	"github.com/opd-ai/go-paracletic/internal/log"
	"github.com/opd-ai/go-paracletic/internal/tools/generate"
)

func main() {
	cfg, err := generate.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = log.ContextWithLogger(ctx, log.GetLogger(cfg.Verbosity))

	if err := generate.Run(ctx, cfg, os.Stdout); err != nil {
		stop()
		if msg := generate.ErrorMessage(err); msg != "" {
			config.Exitf("%s", msg)
		}
		os.Exit(1)
	}
}
