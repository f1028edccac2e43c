package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/andrescamacho/hive-go/internal/adapters/metrics"
	"github.com/andrescamacho/hive-go/internal/infrastructure/bootstrap"
	"github.com/andrescamacho/hive-go/internal/infrastructure/config"
	"github.com/andrescamacho/hive-go/internal/infrastructure/pidfile"
)

func main() {
	configFlag := flag.String("config", "", "Path to config file (default: search hive.yaml)")
	ticksFlag := flag.Int("ticks", -1, "Stop after this many ticks (overrides daemon.max_ticks)")
	flag.Parse()

	fmt.Println("Hive Daemon v0.1.0")
	fmt.Println("==================")

	fmt.Println("Loading configuration...")
	cfg := config.MustLoadConfig(*configFlag)
	if *ticksFlag >= 0 {
		cfg.Daemon.MaxTicks = *ticksFlag
	}

	// Acquire PID file lock to prevent two loops driving the same memory
	fmt.Printf("Acquiring PID file lock: %s\n", cfg.Daemon.PIDFile)
	pf := pidfile.New(cfg.Daemon.PIDFile)
	if err := pf.Acquire(); err != nil {
		log.Fatalf("Failed to acquire PID file lock: %v", err)
	}
	defer func() {
		if err := pf.Release(); err != nil {
			log.Printf("Warning: failed to release PID file: %v", err)
		}
	}()
	fmt.Println("PID file lock acquired")

	if err := run(cfg); err != nil {
		log.Printf("Fatal error: %v", err)
		_ = pf.Release()
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	fmt.Printf("Opening %s memory backend...\n", cfg.Memory.Backend)
	app, err := bootstrap.New(cfg, "daemon")
	if err != nil {
		return fmt.Errorf("failed to start colony: %w", err)
	}
	defer app.Close()
	fmt.Printf("Colony ready (run %s, %s)\n", app.RunID, app.Host)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = app.Context(ctx)

	if cfg.Metrics.Enabled {
		metrics.StartServer(ctx, cfg.Metrics.Host, cfg.Metrics.Port, cfg.Metrics.Path)
		fmt.Printf("Metrics at http://%s:%d%s\n", cfg.Metrics.Host, cfg.Metrics.Port, cfg.Metrics.Path)
	}

	if cfg.Daemon.MaxTicks > 0 {
		fmt.Printf("\n✓ Running %d ticks every %s\n", cfg.Daemon.MaxTicks, cfg.Daemon.TickInterval)
	} else {
		fmt.Printf("\n✓ Running a tick every %s\n", cfg.Daemon.TickInterval)
		fmt.Println("Press Ctrl+C to stop")
	}

	completed := app.RunLoop(ctx, bootstrap.LoopConfig{
		Interval: cfg.Daemon.TickInterval,
		MaxTicks: cfg.Daemon.MaxTicks,
		Timeout:  cfg.Daemon.ShutdownTimeout,
	})

	stats := app.Host.Stats()
	fmt.Printf("\nDaemon stopped after %d ticks (world tick %d, %d workers)\n", completed, stats.Tick, stats.Workers)
	return nil
}
