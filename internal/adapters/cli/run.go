package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/hive-go/internal/application/colony"
	"github.com/andrescamacho/hive-go/internal/infrastructure/bootstrap"
)

// NewRunCommand creates the run command
func NewRunCommand() *cobra.Command {
	var ticks int

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the colony for a number of ticks",
		Long: `Run the colony against the simulated host.

Each tick loads the memory, runs every mine room and task, saves the memory
and commits the tick. The simulated world starts from the configured scenario
on every invocation; use the daemon for a long-lived world.

Examples:
  hive run
  hive run --ticks 300`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if ticks < 1 {
				return fmt.Errorf("--ticks must be at least 1")
			}

			return withApp(cmd, func(ctx context.Context, app *bootstrap.App) error {
				out := cmd.OutOrStdout()
				for i := 0; i < ticks; i++ {
					result, err := app.RunTick(ctx)
					if err != nil {
						return fmt.Errorf("tick %d: %w", i+1, err)
					}
					printTickSummary(out, result)
				}

				stats := app.Host.Stats()
				fmt.Fprintf(out, "\nWorld at tick %d: %d workers, %d energy dropped, %d energy carried\n",
					stats.Tick, stats.Workers, stats.DroppedEnergy, stats.CarriedEnergy)
				for _, room := range app.Host.Rooms() {
					fmt.Fprintf(out, "  %s: %d energy\n", room, stats.RoomEnergy[room])
				}
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&ticks, "ticks", "n", 1, "Number of ticks to run")

	return cmd
}

func printTickSummary(out io.Writer, result *colony.RunTickResponse) {
	report := result.Report

	processed, failures := 0, 0
	for _, room := range report.Mining {
		processed += room.Processed
		failures += len(room.Failures)
	}

	founded := ""
	if result.Fresh {
		founded = " (new hive)"
	}
	fmt.Fprintf(out, "tick %d%s: sources %d ok / %d failing, tasks %d stepped / %d evicted, %d spawn orders\n",
		result.Tick, founded, processed, failures, report.Tasks.Stepped, report.Tasks.Evicted(), len(report.SpawnOrders))

	if !verbose {
		return
	}
	for _, order := range report.SpawnOrders {
		fmt.Fprintf(out, "  spawn #%d %s at %s (%d parts, %d energy)\n",
			order.Sequence, order.WorkerName, order.SpawnID, len(order.Body), order.Energy)
	}
	for _, room := range report.Mining {
		for _, failure := range room.Failures {
			fmt.Fprintf(out, "  %s: %v\n", failure.SourceID, failure.Err)
		}
	}
}
