package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/hive-go/internal/application/colony"
	"github.com/andrescamacho/hive-go/internal/domain/tasks"
	"github.com/andrescamacho/hive-go/internal/infrastructure/bootstrap"
)

// NewTaskCommand creates the task command with subcommands
func NewTaskCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage worker tasks",
		Long: `Manage the task registry.

A worker with a task is busy: the mine rooms will not use it until the task
completes, the worker disappears or the task is cancelled.

Examples:
  hive task add scout-1 --task '{"kind":"MULTI_STEP","steps":[{"kind":"MOVE","direction":"TOP"},{"kind":"MOVE","direction":"LEFT"}]}'
  hive task add miner-1 --file harvest.json
  hive task cancel scout-1
  hive task list`,
	}

	cmd.AddCommand(newTaskAddCommand())
	cmd.AddCommand(newTaskCancelCommand())
	cmd.AddCommand(newTaskListCommand())

	return cmd
}

func newTaskAddCommand() *cobra.Command {
	var taskJSON, taskFile string

	cmd := &cobra.Command{
		Use:   "add <worker>",
		Short: "Bind a task tree to a worker",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readTaskData(taskJSON, taskFile)
			if err != nil {
				return err
			}

			return withApp(cmd, func(ctx context.Context, app *bootstrap.App) error {
				response, err := app.Mediator.Send(ctx, &colony.AddTaskCommand{WorkerName: args[0], Task: data})
				if err != nil {
					return err
				}
				result := response.(*colony.AddTaskResponse)

				out := cmd.OutOrStdout()
				if result.Replaced {
					fmt.Fprintf(out, "✓ Task of %s replaced\n", result.WorkerName)
				} else {
					fmt.Fprintf(out, "✓ Task added for %s\n", result.WorkerName)
				}
				fmt.Fprint(out, NewTaskTreeFormatter(false).FormatTree(data))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&taskJSON, "task", "", "Task tree as JSON")
	cmd.Flags().StringVar(&taskFile, "file", "", "File holding the task tree as JSON")

	return cmd
}

func readTaskData(taskJSON, taskFile string) (*tasks.TaskData, error) {
	var raw []byte
	switch {
	case taskJSON != "" && taskFile != "":
		return nil, fmt.Errorf("use either --task or --file, not both")
	case taskJSON != "":
		raw = []byte(taskJSON)
	case taskFile != "":
		content, err := os.ReadFile(taskFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read task file: %w", err)
		}
		raw = content
	default:
		return nil, fmt.Errorf("a task is required: use --task or --file")
	}

	var data tasks.TaskData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to parse task: %w", err)
	}
	return &data, nil
}

func newTaskCancelCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <worker>",
		Short: "Remove the task of a worker",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, app *bootstrap.App) error {
				response, err := app.Mediator.Send(ctx, &colony.CancelTaskCommand{WorkerName: args[0]})
				if err != nil {
					return err
				}

				if response.(*colony.CancelTaskResponse).Removed {
					fmt.Fprintf(cmd.OutOrStdout(), "✓ Task of %s cancelled\n", args[0])
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "%s has no task\n", args[0])
				}
				return nil
			})
		},
	}
}

func newTaskListCommand() *cobra.Command {
	var useColors bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, app *bootstrap.App) error {
				response, err := app.Mediator.Send(ctx, &colony.GetMemoryQuery{})
				if err != nil {
					return err
				}
				registry := response.(*colony.GetMemoryResponse).Memory.Hive.Tasks

				out := cmd.OutOrStdout()
				if len(registry) == 0 {
					fmt.Fprintln(out, "No tasks registered")
					return nil
				}

				formatter := NewTaskTreeFormatter(useColors)
				for _, worker := range sortedWorkers(registry) {
					data := registry[worker]
					fmt.Fprintf(out, "%s  %s\n", worker, formatter.FormatTreeSummary(data))
					fmt.Fprint(out, formatter.FormatTree(data))
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&useColors, "color", false, "Colour task kinds")

	return cmd
}
