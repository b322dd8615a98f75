package main

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/localize/datagen/internal/adapter/idgen"
	"github.com/localize/datagen/internal/adapter/sink"
	"github.com/localize/datagen/internal/generator"
	"github.com/localize/datagen/internal/infrastructure/config"
	"github.com/localize/datagen/internal/infrastructure/logger"
	"github.com/localize/datagen/internal/infrastructure/metrics"
	"github.com/localize/datagen/internal/usecase"
)

type options struct {
	format   string
	dryRun   bool
	pretty   bool
	interval float64
	count    int
	sink     string
	timeout  time.Duration
	seed     uint64
	envFile  string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "datagen",
		Short: "Mock payment data generator",
		Long: `Generates mock payment payloads (c2b, iso8583, iso20022, CitizenToBusiness,
BusinessToBusiness) and prints them or sends them to MOCK_DATA_URL or a broker.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.SetNormalizeFunc(normalizeFlagName)
	flags.StringVar(&opts.format, "format", "", "payload format: "+strings.Join(generator.Formats(), ", ")+" (default: random legacy format)")
	flags.BoolVar(&opts.dryRun, "dry-run", false, "print payloads instead of sending them")
	flags.BoolVar(&opts.pretty, "pretty", false, "pretty-print JSON output")
	flags.Float64VarP(&opts.interval, "interval", "i", 1.0, "seconds to wait between payloads")
	flags.IntVarP(&opts.count, "count", "n", 0, "number of payloads to generate (0 = unlimited)")
	flags.StringVar(&opts.sink, "sink", "", "send-mode sink: http, kafka, amqp or redis (overrides MOCK_DATA_SINK)")
	flags.DurationVar(&opts.timeout, "timeout", 0, "per-send timeout (overrides MOCK_DATA_TIMEOUT)")
	flags.Uint64Var(&opts.seed, "seed", 0, "random seed (0 = random)")
	flags.StringVar(&opts.envFile, "env-file", ".env", "dotenv file loaded before reading the environment")

	cmd.AddCommand(formatsCmd())

	return cmd
}

// normalizeFlagName lets --dry_run and --dry-run name the same flag.
func normalizeFlagName(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
}

func formatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List accepted --format values",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, f := range generator.Formats() {
				fmt.Fprintln(cmd.OutOrStdout(), f)
			}
		},
	}
}

func run(cmd *cobra.Command, opts *options) error {
	interval, err := intervalDuration(opts.interval)
	if err != nil {
		return err
	}
	if opts.count < 0 {
		return fmt.Errorf("count must not be negative, got %d", opts.count)
	}

	cfg, err := config.Load(opts.envFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if opts.sink != "" {
		cfg.Sink = opts.sink
	}
	if opts.timeout > 0 {
		cfg.SendTimeout = opts.timeout
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Out:    cmd.ErrOrStderr(),
	})

	rnd := generator.NewSource(opts.seed)
	selector, err := generator.NewSelector(opts.format, rnd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	if cfg.MetricsAddr != "" {
		srv := serveMetrics(cfg.MetricsAddr, reg, log)
		defer shutdown(srv, log)
	}

	var remote usecase.Sink
	if !opts.dryRun {
		remote, err = sink.Open(ctx, cfg, sink.NewRetrier(sink.DefaultConnectTimeout, log), log)
		if err != nil {
			return err
		}
	}

	dispatcher := usecase.NewDispatcher(usecase.DispatcherConfig{
		Console:        sink.NewConsoleSink(cmd.OutOrStdout(), opts.pretty),
		Remote:         remote,
		DestinationVar: cfg.DestinationVar(),
		DryRun:         opts.dryRun,
		IDGen:          idgen.NewULIDGenerator(),
		Timeout:        cfg.SendTimeout,
		Logger:         log,
		Metrics:        m,
	})
	defer func() {
		if err := dispatcher.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close sink")
		}
	}()

	log.Info().
		Str("mode", selector.Mode().String()).
		Str("format", opts.format).
		Bool("dry_run", opts.dryRun).
		Bool("sending", dispatcher.Sending()).
		Int("count", opts.count).
		Float64("interval", opts.interval).
		Msg("starting generator")

	runner := usecase.NewRunner(usecase.RunnerConfig{
		Selector:   selector,
		Generator:  generator.New(rnd),
		Dispatcher: dispatcher,
		Interval:   interval,
		Count:      opts.count,
		Logger:     log,
		Metrics:    m,
	})

	_, err = runner.Run(ctx)
	return err
}

// maxIntervalSeconds is the longest interval a time.Duration can hold.
const maxIntervalSeconds = float64(math.MaxInt64) / float64(time.Second)

// intervalDuration converts --interval seconds, rejecting values that are
// negative, not finite, or too large for a time.Duration.
func intervalDuration(seconds float64) (time.Duration, error) {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return 0, fmt.Errorf("interval must be a finite number, got %v", seconds)
	}
	if seconds < 0 {
		return 0, fmt.Errorf("interval must not be negative, got %v", seconds)
	}
	if seconds >= maxIntervalSeconds {
		return 0, fmt.Errorf("interval must be below %.0f seconds, got %v", maxIntervalSeconds, seconds)
	}

	return time.Duration(seconds * float64(time.Second)), nil
}

func serveMetrics(addr string, reg *prometheus.Registry, log zerolog.Logger) *http.Server {
	r := chi.NewRouter()
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("serving metrics")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("metrics server failed")
		}
	}()

	return srv
}

func shutdown(srv *http.Server, log zerolog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Warn().Err(err).Msg("metrics server forced to shutdown")
	}
}
