package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/naveenspark/catalyst/internal/config"
	"github.com/naveenspark/catalyst/internal/logging"
	"github.com/naveenspark/catalyst/internal/metrics"
	"github.com/naveenspark/catalyst/internal/tui"
	"github.com/naveenspark/catalyst/pkg/client"
)

// skipSetup marks commands that run without configuration, logging or metrics.
const skipSetup = "catalyst/skip-setup"

// env is the per-invocation state shared by every subcommand.
type env struct {
	cfgFile  string
	cfg      config.Config
	logger   zerolog.Logger
	closeLog func() error
	metrics  *metrics.Collector
}

func newRootCmd(ver string) *cobra.Command {
	e := &env{logger: zerolog.Nop(), closeLog: func() error { return nil }}

	cmd := &cobra.Command{
		Use:           "catalyst",
		Short:         "Browse Catalyst accelerator programs",
		Long:          "catalyst renders the Catalyst program catalog and program details in the terminal.",
		Version:       ver,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Annotations[skipSetup] != "" {
				return nil
			}
			return e.setup(cmd)
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return e.closeLog()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := tui.NewApp(e.client(), e.logger)
			p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("tui error: %w", err)
			}
			return nil
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&e.cfgFile, "config", "", "config file (default: ./catalyst.yaml or ~/.config/catalyst/catalyst.yaml)")
	pf.String("api-url", config.DefaultAPIURL, "content source base URL")
	pf.Duration("timeout", config.DefaultTimeout, "per-request timeout")
	pf.String("log-level", "info", "log level (debug, info, warn, error)")
	pf.String("log-file", "", "write logs to this file (the TUI defaults to "+logging.DefaultFile()+")")
	pf.String("metrics-addr", "", "serve Prometheus metrics on this address, e.g. :9090")

	cmd.AddCommand(newProgramsCmd(e), newFixtureCmd(e), newVersionCmd(ver))
	return cmd
}

// setup resolves configuration, then builds the logger and metrics. The TUI
// owns the terminal, so it logs to a file; every other command logs to stderr.
func (e *env) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(e.cfgFile, cmd.Flags())
	if err != nil {
		return err
	}
	e.cfg = cfg

	opts := logging.Options{Level: cfg.LogLevel, File: cfg.LogFile}
	if cmd == cmd.Root() {
		if opts.File == "" {
			opts.File = logging.DefaultFile()
		}
	} else {
		opts.Console = cmd.ErrOrStderr()
	}
	logger, closeLog, err := logging.New(opts)
	if err != nil {
		return err
	}
	e.logger = logger.With().Str("cmd", cmd.Name()).Logger()
	e.closeLog = closeLog

	e.metrics = metrics.NewCollector()
	if cfg.MetricsAddr != "" {
		go func() {
			e.logger.Info().Str("addr", cfg.MetricsAddr).Msg("serving metrics")
			if err := e.metrics.Serve(cmd.Context(), cfg.MetricsAddr); err != nil {
				e.logger.Error().Err(err).Msg("metrics server stopped")
			}
		}()
	}
	return nil
}

func (e *env) client() *client.Client {
	return client.New(e.cfg.APIURL,
		client.WithTimeout(e.cfg.Timeout),
		client.WithLogger(e.logger),
		client.WithObserver(e.metrics),
	)
}

func newVersionCmd(ver string) *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print the version",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipSetup: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "catalyst "+ver)
			return err
		},
	}
}
