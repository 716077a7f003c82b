package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"medfund_ledger/sdk"
)

func initCommand() *cobra.Command {
	var admin string
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the platform config from the genesis section",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, nil, func(a *app) error {
				if admin == "" {
					admin = a.cfg.Genesis.Admin
				}
				if admin == "" {
					return errors.New("no admin given, set --admin or genesis.admin")
				}
				if err := a.engine.Initialize(sdk.Address(admin), a.cfg.InitParams()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "initialized, admin "+admin)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&admin, "admin", "", "admin address, overrides genesis.admin")
	return cmd
}

func callCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "call <action> <caller> [payload]",
		Short: "Run one ledger action with a pipe-delimited payload",
		Long:  "Run one ledger action with a pipe-delimited payload.\n\nActions:\n  " + actionList(),
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := ""
			if len(args) == 3 {
				payload = args[2]
			}
			return withApp(cmd, nil, func(a *app) error {
				res, err := a.engine.Dispatch(args[0], sdk.Address(args[1]), payload)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), res)
				return nil
			})
		},
	}
}

func showCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <kind> [key...]",
		Short: "Print a stored record as JSON",
		Long:  "Print a stored record as JSON.\n\nKinds:\n  " + showKindList(),
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, nil, func(a *app) error {
				out, err := show(a.engine, args[0], args[1:])
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(out))
				return nil
			})
		},
	}
}

func eventsCommand() *cobra.Command {
	var limit int
	var subject string
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Print journaled events, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, nil, func(a *app) error {
				if subject != "" {
					entries, err := a.journal.BySubject(subject)
					if err != nil {
						return err
					}
					// BySubject is oldest first
					for i := len(entries) - 1; i >= 0; i-- {
						e := entries[i]
						fmt.Fprintf(cmd.OutOrStdout(), "%d %d %s\n", e.Seq, e.Timestamp, e.Line)
					}
					return nil
				}
				entries, err := a.journal.Recent(limit)
				if err != nil {
					return err
				}
				for _, e := range entries {
					fmt.Fprintf(cmd.OutOrStdout(), "%d %d %s\n", e.Seq, e.Timestamp, e.Line)
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "max entries, 0 for all")
	cmd.Flags().StringVar(&subject, "subject", "", "only events about this id or address")
	return cmd
}

func metricsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "metrics",
		Short: "Serve prometheus metrics until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := prometheus.NewRegistry()
			reg.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)
			return withApp(cmd, reg, func(a *app) error {
				return serveMetrics(cmd.Context(), a, reg)
			})
		},
	}
}

func serveMetrics(ctx context.Context, a *app, reg *prometheus.Registry) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	a.logger.Info(
		"serving prometheus metrics on "+a.cfg.MetricsAddr,
		"component", programName,
	)
	metricsServer := &http.Server{
		Addr:              a.cfg.MetricsAddr,
		Handler:           mux,
		ReadHeaderTimeout: 60 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	errChan := make(chan error, 1)
	go func() {
		if err := metricsServer.ListenAndServe(); err != nil &&
			!errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()
	// Wait for interrupt/termination signal
	signalCtx, signalCtxStop := signal.NotifyContext(
		ctx,
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer signalCtxStop()
	select {
	case <-signalCtx.Done():
		a.logger.Info("signal received, shutting down metrics listener")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return metricsServer.Shutdown(shutdownCtx)
	case err := <-errChan:
		return fmt.Errorf("failed to start metrics listener: %w", err)
	}
}
