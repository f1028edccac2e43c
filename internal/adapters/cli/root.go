package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	verbose    bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "hive",
		Short: "Hive CLI - drive and inspect the colony",
		Long: `Hive CLI runs the colony against the simulated host and manages its memory.

Memory is kept in the configured backend (database, file or redis) between
invocations, so tasks registered here are picked up by the next tick.

Examples:
  hive run --ticks 50
  hive task add harvester-1 --task '{"kind":"CONTINUOUS","inner":{"kind":"HARVEST","source_id":"source-near"}}'
  hive task cancel harvester-1
  hive task list
  hive memory show
  hive memory reset --yes
  hive config show`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: hive.yaml in ., ./configs or /etc/hive)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable verbose output")

	rootCmd.AddCommand(NewConfigCommand())
	rootCmd.AddCommand(NewRunCommand())
	rootCmd.AddCommand(NewTaskCommand())
	rootCmd.AddCommand(NewMemoryCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
