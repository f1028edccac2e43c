package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/hive-go/internal/infrastructure/config"
)

// NewConfigCommand creates the config command with subcommands
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration settings",
		Long: `Inspect Hive configuration settings.

Configuration is loaded from multiple sources with priority:
1. Environment variables (HIVE_* prefix, plus DATABASE_URL and REDIS_URL)
2. Config file (hive.yaml)
3. Default values

Examples:
  hive config show`,
	}

	cmd.AddCommand(newConfigShowCommand())

	return cmd
}

// newConfigShowCommand creates the config show subcommand
func newConfigShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Hive Configuration")
			fmt.Fprintln(out, "==================")

			fmt.Fprintln(out, "Memory:")
			fmt.Fprintf(out, "  Backend:          %s\n", cfg.Memory.Backend)
			fmt.Fprintf(out, "  Key:              %s\n", cfg.Memory.Key)
			switch cfg.Memory.Backend {
			case config.MemoryBackendFile:
				fmt.Fprintf(out, "  File:             %s\n", cfg.Memory.File.Path)
			case config.MemoryBackendRedis:
				if cfg.Memory.Redis.URL != "" {
					fmt.Fprintf(out, "  Redis URL:        %s\n", maskPassword(cfg.Memory.Redis.URL))
				} else {
					fmt.Fprintf(out, "  Redis Address:    %s (db %d)\n", cfg.Memory.Redis.Address, cfg.Memory.Redis.DB)
				}
			}
			if cfg.Memory.GenesisRoom != "" {
				fmt.Fprintf(out, "  Genesis Room:     %s\n", cfg.Memory.GenesisRoom)
			} else {
				fmt.Fprintf(out, "  Genesis Room:     (first room)\n")
			}

			fmt.Fprintln(out, "\nDatabase:")
			fmt.Fprintf(out, "  Type:             %s\n", cfg.Database.Type)
			switch {
			case cfg.Database.URL != "":
				fmt.Fprintf(out, "  URL:              %s\n", maskPassword(cfg.Database.URL))
			case cfg.Database.Type == "sqlite":
				fmt.Fprintf(out, "  Path:             %s\n", cfg.Database.Path)
			default:
				fmt.Fprintf(out, "  Host:             %s\n", cfg.Database.Host)
				fmt.Fprintf(out, "  Port:             %d\n", cfg.Database.Port)
				fmt.Fprintf(out, "  Database:         %s\n", cfg.Database.Name)
				fmt.Fprintf(out, "  User:             %s\n", cfg.Database.User)
			}
			fmt.Fprintf(out, "  Max Connections:  %d\n", cfg.Database.Pool.MaxOpen)

			fmt.Fprintln(out, "\nDaemon:")
			fmt.Fprintf(out, "  PID File:         %s\n", cfg.Daemon.PIDFile)
			fmt.Fprintf(out, "  Tick Interval:    %s\n", cfg.Daemon.TickInterval)
			if cfg.Daemon.MaxTicks > 0 {
				fmt.Fprintf(out, "  Max Ticks:        %d\n", cfg.Daemon.MaxTicks)
			} else {
				fmt.Fprintf(out, "  Max Ticks:        unlimited\n")
			}

			fmt.Fprintln(out, "\nSimulation:")
			if cfg.Simulation.Scenario != "" {
				fmt.Fprintf(out, "  Scenario:         %s\n", cfg.Simulation.Scenario)
			} else {
				fmt.Fprintf(out, "  Scenario:         (built-in default)\n")
			}

			fmt.Fprintln(out, "\nMetrics:")
			fmt.Fprintf(out, "  Enabled:          %v\n", cfg.Metrics.Enabled)
			if cfg.Metrics.Enabled {
				fmt.Fprintf(out, "  Endpoint:         %s:%d%s\n", cfg.Metrics.Host, cfg.Metrics.Port, cfg.Metrics.Path)
			}

			fmt.Fprintln(out, "\nLogging:")
			fmt.Fprintf(out, "  Level:            %s\n", cfg.Logging.Level)
			fmt.Fprintf(out, "  Format:           %s\n", cfg.Logging.Format)
			fmt.Fprintf(out, "  Output:           %s\n", cfg.Logging.Output)
			fmt.Fprintf(out, "  Persist:          %v\n", cfg.Logging.Persist)

			return nil
		},
	}

	return cmd
}
