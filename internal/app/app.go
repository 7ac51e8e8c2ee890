// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 wangdage1949

// Package app wires the recovery tool together: configuration → keyspace
// template → filter → scan driver → terminal UI, plus the resume prompt
// and the interrupt protocol.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/wangdage1949/WIF500-Lottery/internal/config"
	"github.com/wangdage1949/WIF500-Lottery/internal/filter"
	"github.com/wangdage1949/WIF500-Lottery/internal/keyspace"
	"github.com/wangdage1949/WIF500-Lottery/internal/logger"
	"github.com/wangdage1949/WIF500-Lottery/internal/scanner"
	"github.com/wangdage1949/WIF500-Lottery/internal/store"
	"github.com/wangdage1949/WIF500-Lottery/internal/tui"
	"github.com/wangdage1949/WIF500-Lottery/internal/wif"
)

// App holds the assembled components of one invocation.
type App struct {
	cfg      *config.StructuredConfig
	log      *logger.Logger
	template *keyspace.Template
	driver   *scanner.Driver
	progress store.ProgressStore
}

// New assembles the application from a validated configuration. Template
// problems (an unknown position whose candidate set is empty, a fixed
// character outside the Base58 alphabet) surface here, before anything
// runs.
func New(cfg *config.StructuredConfig, log *logger.Logger) (*App, error) {
	runLog := &logger.Logger{Logger: log.With().Str("run_id", uuid.NewString()).Logger()}

	template, err := keyspace.New(cfg.Template.WIF, cfg.Template.CandidateSets(wif.Alphabet), wif.Alphabet)
	if err != nil {
		return nil, fmt.Errorf("build template: %w", err)
	}

	accept := filter.Diversity(cfg.Scan.FilterStart, cfg.Scan.FilterEnd)
	if cfg.Scan.NoFilter {
		accept = filter.PassAll
	}

	progress := store.NewProgressFileStorage(cfg.Store.ProgressFile, runLog.GetChildLogger())

	driver := scanner.New(template, accept, progress, runLog, scanner.Options{
		Workers:            cfg.Scan.Workers,
		CheckpointInterval: cfg.Scan.CheckpointInterval,
		CheckpointEvery:    cfg.Scan.CheckpointEvery,
		RefreshInterval:    cfg.Scan.RefreshInterval,
	})

	return &App{
		cfg:      cfg,
		log:      runLog,
		template: template,
		driver:   driver,
		progress: progress,
	}, nil
}

// Run executes one scan and returns the process exit code: 0 on clean
// completion or clean interruption, 1 on a configuration or fatal error.
func (a *App) Run() int {
	fmt.Printf("Template WIF : %s\n", a.cfg.Template.WIF)
	fmt.Printf("Length       : %d\n", len(a.cfg.Template.WIF))
	fmt.Printf("Unknown      : %d position(s)\n", len(a.template.FreePositions()))
	fmt.Printf("Combinations : %s\n\n", a.driver.Total())

	prior, err := a.progress.Load()
	if err != nil {
		// Load never fails by contract, but surface it anyway.
		a.log.Warn().Err(err).Msg("progress load")
	}

	if prior != nil {
		resume, confirmErr := tui.ConfirmResume(prior)
		if confirmErr != nil {
			if errors.Is(confirmErr, tui.ErrUserQuit) {
				return 0
			}
			a.log.Error().Err(confirmErr).Msg("resume prompt failed")
			return 1
		}
		if !resume {
			// Starting over. The record stays on disk; only a completed
			// enumeration removes it.
			prior = nil
		}
	}

	signalCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(signalCtx)
	defer cancel()

	type outcome struct {
		report scanner.Report
		err    error
	}
	result := make(chan outcome, 1)
	go func() {
		report, runErr := a.driver.Run(ctx, prior)
		result <- outcome{report: report, err: runErr}
	}()

	done, uiErr := tui.RunScan(cancel, a.driver.Events(), a.driver.Total(), a.cfg.Template.WIF)
	if uiErr != nil {
		// The UI died; stop the scan, drain its events, and let the
		// driver checkpoint.
		cancel()
		go func() {
			for range a.driver.Events() {
			}
		}()
		a.log.Error().Err(uiErr).Msg("terminal ui failed")
	}

	res := <-result
	a.printSummary(res.report)

	switch {
	case res.err != nil:
		fmt.Fprintf(os.Stderr, "scan failed: %v\n", res.err)
		return 1
	case uiErr != nil:
		return 1
	case done.State == scanner.StateInterrupted:
		fmt.Println("Progress saved. Run again to resume.")
		return 0
	default:
		return 0
	}
}

func (a *App) printSummary(report scanner.Report) {
	fmt.Printf("\nScan %s: examined %s of %s, found %d valid WIF(s)\n",
		report.State, report.Examined, report.Total, len(report.Found))
	for i, f := range report.Found {
		fmt.Printf("\n%d. %s\n   private key: %s\n   compressed:  %v\n", i+1, f.WIF, f.PrivateHex, f.Compressed)
	}
}
