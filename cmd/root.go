// Package cmd defines and implements the CLI commands for the progressreport executable.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Meshotron2/monitor/internal/config"
	"github.com/Meshotron2/monitor/internal/logging"
	"github.com/Meshotron2/monitor/internal/metrics"
	"github.com/Meshotron2/monitor/internal/reporter"
)

// appKeyType is the key for storing the app in the context.
type appKeyType string

const appKey appKeyType = "app"

// app holds the services shared by every subcommand.
type app struct {
	cfg      config.Config
	logger   *zap.Logger
	registry *prometheus.Registry
	metrics  *metrics.Reporter
}

func (a *app) newClient() *reporter.Client {
	return reporter.New(
		reporter.Config{Timeout: a.cfg.Monitor.Timeout()},
		a.logger.Named("reporter"),
		a.metrics,
	)
}

func (a *app) workerID() int32 {
	if a.cfg.Worker.ID != 0 {
		return a.cfg.Worker.ID
	}
	return int32(os.Getpid())
}

// close flushes the logger and optionally dumps the metrics to w.
func (a *app) close(w io.Writer) {
	if a.cfg.Metrics.Dump {
		if err := dumpMetrics(w, a.registry); err != nil {
			a.logger.Warn("metrics dump failed", zap.Error(err))
		}
	}
	_ = a.logger.Sync()
}

type rootFlags struct {
	cfgFile       string
	host          string
	port          int
	timeoutMillis int
	workerID      int32
}

// newRootCmd creates and configures the root command.
func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	cmd := &cobra.Command{
		Use:   "progressreport",
		Short: "Reports worker progress to a monitor over TCP.",
		Long: `progressreport sends fixed-width progress records to a monitor process.
Each invocation opens one connection, writes one record and closes it. A monitor
that cannot be reached is reported as an error; nothing is retried.`,
		SilenceUsage: true,

		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			appInstance, err := newApp(cmd, flags)
			if err != nil {
				return fmt.Errorf("failed to initialize application services: %w", err)
			}
			cmd.SetContext(context.WithValue(cmd.Context(), appKey, appInstance))
			return nil
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.cfgFile, "config", "", "config file (yaml, json or toml)")
	pf.StringVar(&flags.host, "host", "", "monitor host (overrides monitor.host)")
	pf.IntVar(&flags.port, "port", 0, "monitor port (overrides monitor.port)")
	pf.IntVar(&flags.timeoutMillis, "timeout-millis", 0, "connect/send timeout in milliseconds, 0 disables (overrides monitor.timeout_millis)")
	pf.Int32Var(&flags.workerID, "worker-id", 0, "worker id to report (defaults to worker.id, then the process id)")

	cmd.AddCommand(newSendCmd(), newFinishCmd())
	return cmd
}

func newApp(cmd *cobra.Command, flags *rootFlags) (*app, error) {
	cfg, err := config.Load(flags.cfgFile)
	if err != nil {
		return nil, err
	}
	applyFlagOverrides(cmd, flags, &cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.Logging.Development, cfg.Logging.Level)
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	m, err := metrics.NewReporter(registry)
	if err != nil {
		return nil, err
	}
	return &app{cfg: cfg, logger: logger, registry: registry, metrics: m}, nil
}

func applyFlagOverrides(cmd *cobra.Command, flags *rootFlags, cfg *config.Config) {
	pf := cmd.Flags()
	if pf.Changed("host") {
		cfg.Monitor.Host = flags.host
	}
	if pf.Changed("port") {
		cfg.Monitor.Port = flags.port
	}
	if pf.Changed("timeout-millis") {
		cfg.Monitor.TimeoutMillis = flags.timeoutMillis
	}
	if pf.Changed("worker-id") {
		cfg.Worker.ID = flags.workerID
	}
}

func resolveApp(ctx context.Context) (*app, error) {
	appInstance, ok := ctx.Value(appKey).(*app)
	if !ok || appInstance == nil {
		return nil, errors.New("application services not initialized")
	}
	return appInstance, nil
}

// withApp resolves the app for a subcommand and closes it once fn returns,
// whether or not fn failed.
func withApp(fn func(cmd *cobra.Command, appInstance *app) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		appInstance, err := resolveApp(cmd.Context())
		if err != nil {
			return err
		}
		defer appInstance.close(cmd.OutOrStdout())
		return fn(cmd, appInstance)
	}
}

func dumpMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("write metric family %s: %w", mf.GetName(), err)
		}
	}
	return nil
}

// Execute is the main entry point.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
