package main

import (
	"errors"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"medfund_ledger/contract"
	"medfund_ledger/internal/config"
	"medfund_ledger/journal"
	"medfund_ledger/store"
)

// app bundles everything a subcommand needs against the configured data dir.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	store   *store.BadgerStore
	journal *journal.Journal
	engine  *contract.Engine
}

func openApp(cfg *config.Config, logger *slog.Logger, reg prometheus.Registerer) (*app, error) {
	if cfg.DataDir == "" {
		logger.Warn(
			"no dataDir configured, state lives in memory for this run only",
			"component", programName,
		)
	}
	storeOpts := []store.BadgerStoreOptionFunc{
		store.WithDataDir(cfg.DataDir),
		store.WithLogger(logger),
		store.WithGc(!cfg.DisableGc),
	}
	if reg != nil {
		storeOpts = append(storeOpts, store.WithPromRegistry(reg))
	}
	s, err := store.New(storeOpts...)
	if err != nil {
		return nil, err
	}
	journalDir := cfg.JournalDir
	if journalDir == "" {
		journalDir = cfg.DataDir
	}
	j, err := journal.New(journalDir, logger)
	if err != nil {
		_ = s.Close()
		return nil, err
	}
	engineOpts := []contract.EngineOptionFunc{
		contract.WithLogger(logger),
		contract.WithHasher(cfg.IDHasher()),
		contract.WithEventSink(j),
		contract.WithScoreCap(cfg.ScoreCap),
	}
	if reg != nil {
		engineOpts = append(engineOpts, contract.WithPromRegistry(reg))
	}
	e, err := contract.New(s, engineOpts...)
	if err != nil {
		_ = j.Close()
		_ = s.Close()
		return nil, err
	}
	return &app{cfg: cfg, logger: logger, store: s, journal: j, engine: e}, nil
}

func (a *app) Close() error {
	return errors.Join(a.journal.Close(), a.store.Close())
}

// withApp loads the config from the command context and runs fn against an open app.
func withApp(cmd *cobra.Command, reg prometheus.Registerer, fn func(a *app) error) error {
	cfg := config.FromContext(cmd.Context())
	if cfg == nil {
		return errors.New("no config found in context")
	}
	logger := commonRun(cfg)
	a, err := openApp(cfg, logger, reg)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}
