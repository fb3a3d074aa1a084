// Package main writes generator output as raw uint32 words for TestU01
// BigCrush.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/opd-ai/go-paracletic/internal/config"
	"github.com/opd-ai/go-paracletic/internal/log"
	"github.com/opd-ai/go-paracletic/internal/tools/bigcrush"
)

func main() {
	cfg, err := bigcrush.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = log.ContextWithLogger(ctx, log.GetLogger(cfg.Verbosity))

	if err := bigcrush.Run(ctx, cfg, os.Stdout); err != nil {
		stop()
		config.Exitf("\nERROR: %v", err)
	}
}
