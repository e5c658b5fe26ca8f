// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// ledgerengine replays an ordered, client-scoped CSV stream of payment
// events (deposits, withdrawals, disputes, resolves, chargebacks) and
// writes the resulting per-client account balances as CSV.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/luxfi/ledgerengine/cmd/ledgerengine/config"
	"github.com/luxfi/ledgerengine/internal/ledger/csv"
	"github.com/luxfi/ledgerengine/internal/ledger/dispatcher"
	"github.com/luxfi/ledgerengine/internal/ledgerlog"
)

const clientIdentifier = "ledgerengine"

var app = &cli.App{
	Name:            clientIdentifier,
	Usage:           "replay a client-scoped payments event stream into final account balances",
	Version:         "1.0.0",
	SkipFlagParsing: true, // flags are parsed by cmd/ledgerengine/config below, not urfave/cli
	Action:          run,
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run is the urfave/cli Action: it resolves config/flags, enforces the
// CLI-misuse and input-open exit codes from spec.md §6, then delegates
// the rest to process so the pipeline itself stays testable without a
// live os.Exit.
func run(cctx *cli.Context) error {
	progName := filepath.Base(os.Args[0])

	fs := config.BuildFlagSet()
	v, err := config.BuildViper(fs, cctx.Args().Slice())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	cfg, err := config.BuildConfig(v)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	positional := fs.Args()
	if len(positional) < 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s <input>\n", progName)
		os.Exit(1)
	}
	inputPath := positional[0]

	level, err := ledgerlog.LevelFromString(cfg.LogLevel)
	if err != nil {
		level = ledgerlog.LevelInfo
	}
	logger := ledgerlog.Setup(os.Stderr, level)

	f, err := os.Open(inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", inputPath, err)
		os.Exit(1)
	}
	defer f.Close()

	if err := process(f, os.Stdout, cfg, logger); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", inputPath, err)
		os.Exit(1)
	}
	return nil
}

// process streams events from r through the shard dispatcher and writes
// the resulting accounts as CSV to w. It is the pipeline's only
// fallible step once the input file is open: everything upstream (CLI
// misuse, open failure) and downstream (per-line/per-event rejections)
// is absorbed elsewhere per spec.md §7.
func process(r io.Reader, w io.Writer, cfg config.Config, logger ledgerlog.Logger) error {
	logger.Info("starting", "workers", cfg.Workers, "queueSize", cfg.QueueSize)
	start := time.Now()

	events, readErrs := csv.Stream(r)
	accounts := dispatcher.New(cfg.Workers, cfg.QueueSize).Run(events)
	if err := <-readErrs; err != nil {
		return err
	}

	if err := csv.WriteAccounts(w, accounts); err != nil {
		return err
	}

	logger.Info("done", "accounts", len(accounts), "elapsed", time.Since(start))
	return nil
}
