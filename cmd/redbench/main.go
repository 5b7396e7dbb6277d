// Package main provides the CLI entry point for redbench, a set/get
// round-trip benchmark for Redis.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/fpierfederici/redbench/internal/bench"
	"github.com/fpierfederici/redbench/internal/config"
	"github.com/fpierfederici/redbench/internal/container"
	"github.com/fpierfederici/redbench/internal/display"
	"github.com/fpierfederici/redbench/internal/export"
	"github.com/fpierfederici/redbench/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}))

	root := newRootCmd(logger, cfg)
	if err := root.Execute(); err != nil {
		logger.Error("benchmark failed", "err", err)
		os.Exit(1)
	}
}

func parseLogLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func newRootCmd(logger *slog.Logger, cfg config.Config) *cobra.Command {
	root := &cobra.Command{
		Use:   "redbench",
		Short: "Redis set/get round-trip benchmark",
		Long: `Redbench measures set-then-get round-trip throughput against a Redis
server, sequentially or pipelined, with one or many concurrent workers. Each
workload is repeated several times and summarized with best/worst throughput
and standard deviation.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newRunCmd(logger, cfg))

	return root
}

func newRunCmd(logger *slog.Logger, cfg config.Config) *cobra.Command {
	var (
		addr           string
		password       string
		db             int
		ops            int
		workers        int
		mode           string
		repetitions    int
		valueSize      int
		csvPath        string
		flushBetween   bool
		startContainer bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the round-trip benchmark",
		RunE: func(cmd *cobra.Command, _ []string) error {
			benchMode, err := bench.ParseMode(mode)
			if err != nil {
				return err
			}
			if ops <= 0 {
				return fmt.Errorf("--ops must be positive, got %d", ops)
			}
			if workers <= 0 {
				return fmt.Errorf("--workers must be positive, got %d", workers)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			storeCfg := store.Config{
				Addr:        addr,
				Password:    password,
				DB:          db,
				DialTimeout: cfg.DialTimeout,
			}

			if startContainer {
				containerCfg := container.RedisConfig(addr)
				if err := container.Start(containerCfg); err != nil {
					return err
				}
				defer container.Stop(containerCfg.ComposeFile)
			}

			return runBenchmark(ctx, logger, storeCfg, runOptions{
				ops:          ops,
				workers:      workers,
				mode:         benchMode,
				repetitions:  repetitions,
				valueSize:    valueSize,
				csvPath:      csvPath,
				flushBetween: flushBetween,
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&addr, "addr", cfg.Addr, "Redis address (host:port)")
	flags.StringVar(&password, "password", cfg.Password, "Redis password")
	flags.IntVar(&db, "db", cfg.DB, "Redis database number")
	flags.IntVar(&ops, "ops", cfg.Ops, "Total number of set/get round trips per run")
	flags.IntVar(&workers, "workers", cfg.Workers, "Concurrent worker count hint (1 = sequential single-worker)")
	flags.StringVar(&mode, "mode", cfg.Mode, "Round-trip mode (sequential, pipelined)")
	flags.IntVar(&repetitions, "repetitions", cfg.Repetitions, "Number of repeated runs to aggregate")
	flags.IntVar(&valueSize, "value-size", cfg.ValueSize, "Pad values to this many bytes (0 = no padding)")
	flags.StringVar(&csvPath, "csv", "", "Write per-run results to this CSV file")
	flags.BoolVar(&flushBetween, "flush-between", false, "Issue FLUSHDB before each repetition")
	flags.BoolVar(&startContainer, "start-container", false, "Start a local Redis via docker compose for the benchmark")

	return cmd
}

type runOptions struct {
	ops          int
	workers      int
	mode         bench.Mode
	repetitions  int
	valueSize    int
	csvPath      string
	flushBetween bool
}

func runBenchmark(ctx context.Context, logger *slog.Logger, storeCfg store.Config, opts runOptions) error {
	workload := bench.NewWorkload(opts.ops, opts.workers, opts.mode)
	workload.ValueSize = opts.valueSize

	display.Header(storeCfg.Addr, workload, opts.repetitions)

	harness := &bench.Harness{
		Runner: &bench.Runner{
			Provider: store.NewRedisProvider(storeCfg),
			Logger:   logger,
		},
		Repetitions: opts.repetitions,
		Logger:      logger,
	}

	if opts.flushBetween {
		admin, err := store.NewAdmin(ctx, storeCfg)
		if err != nil {
			return fmt.Errorf("connect admin handle: %w", err)
		}
		defer admin.Close()
		harness.Reset = admin.Flush
	}

	summary, err := harness.Benchmark(ctx, workload)
	if err != nil {
		return err
	}

	display.Summary(summary)

	if opts.csvPath != "" {
		if err := export.RunsToCSV(summary, opts.csvPath); err != nil {
			return err
		}
		fmt.Printf("\nResults written to %s\n", opts.csvPath)
	}

	return nil
}
