// Package main exports generator streams as ASCII bit files for the NIST
// statistical test suite.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/opd-ai/go-paracletic/internal/config"
	"github.com/opd-ai/go-paracletic/internal/log"
	"github.com/opd-ai/go-paracletic/internal/tools/niststreams"
)

func main() {
	cfg, err := niststreams.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = log.ContextWithLogger(ctx, log.GetLogger(cfg.Verbosity))

	if err := niststreams.Run(ctx, cfg, os.Stdout); err != nil {
		stop()
		config.Exitf("niststreams: %v", err)
	}
}
