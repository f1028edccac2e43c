package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/hive-go/internal/application/colony"
	"github.com/andrescamacho/hive-go/internal/infrastructure/bootstrap"
)

// NewMemoryCommand creates the memory command with subcommands
func NewMemoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "memory",
		Short: "Inspect or reset the colony memory",
		Long: `Inspect or reset the persisted colony memory.

Examples:
  hive memory show
  hive memory reset --yes`,
	}

	cmd.AddCommand(newMemoryShowCommand())
	cmd.AddCommand(newMemoryResetCommand())

	return cmd
}

func newMemoryShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the colony memory as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, app *bootstrap.App) error {
				response, err := app.Mediator.Send(ctx, &colony.GetMemoryQuery{})
				if err != nil {
					return err
				}
				result := response.(*colony.GetMemoryResponse)

				out := cmd.OutOrStdout()
				if result.Fresh {
					fmt.Fprintln(out, "# no stored memory; showing the hive the next tick would found")
				}
				fmt.Fprintln(out, prettyPrint(result.Memory))
				return nil
			})
		},
	}
}

func newMemoryResetCommand() *cobra.Command {
	var confirmed bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Discard the colony memory",
		Long: `Discard the stored colony memory. The next tick founds a new hive.

Workers keep living in the world, but every task and mine room assignment is lost.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirmed {
				return fmt.Errorf("refusing to reset memory without --yes")
			}

			return withApp(cmd, func(ctx context.Context, app *bootstrap.App) error {
				if _, err := app.Mediator.Send(ctx, &colony.ResetMemoryCommand{}); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "✓ Memory reset")
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&confirmed, "yes", false, "Confirm the reset")

	return cmd
}
