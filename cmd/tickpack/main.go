// Command tickpack reads a compute pool and a task set, validates the
// task dependency graph, and prints the execution plan the tick-driven
// best-fit scheduler produces for them.
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"tickpack/internal/parse"
	"tickpack/internal/report"
	"tickpack/internal/sched"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var tasksPath, computePath, configPath string
	var analyze, verbose bool

	cmd := &cobra.Command{
		Use:           "tickpack",
		Short:         "Simulate a tick-driven best-fit scheduler over a compute pool",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.OutOrStdout(), tasksPath, computePath, configPath, analyze, verbose)
		},
	}

	cmd.Flags().StringVar(&tasksPath, "tasks", "tasks.yaml", "name of task description file")
	cmd.Flags().StringVar(&computePath, "compute", "compute.yaml", "name of compute description file")
	cmd.Flags().StringVar(&configPath, "config", "", "optional YAML config tuning report size and CSV event logging")
	cmd.Flags().BoolVar(&analyze, "analyze", false, "analyze compute utilization and task dependencies")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "print details of task and compute input")

	return cmd
}

func run(out io.Writer, tasksPath, computePath, configPath string, analyze, verbose bool) error {
	cfg := sched.LoadConfig(configPath)

	if verbose {
		fmt.Fprintf(out, "Using compute file %s.\n", computePath)
	}
	nodes, err := parse.LoadCompute(computePath)
	if err != nil {
		if cfg.LogEnabled() {
			log.Printf("parse of compute file %s failed: %v", computePath, err)
		}
		fmt.Fprintf(out, "Parse of compute file %s failed: %v\n", computePath, err)
		return err
	}
	if verbose {
		fmt.Fprintln(out, "Compute Resources:")
		for _, n := range nodes {
			fmt.Fprintf(out, "    %s\n", n)
		}
	}

	if verbose {
		fmt.Fprintf(out, "Using tasks file %s.\n", tasksPath)
	}
	tasks, err := parse.LoadTasks(tasksPath)
	if err != nil {
		if cfg.LogEnabled() {
			log.Printf("parse of task file %s failed: %v", tasksPath, err)
		}
		fmt.Fprintf(out, "Parse of task file %s failed: %v\n", tasksPath, err)
		return err
	}
	if verbose {
		fmt.Fprintln(out, "Tasks:")
		for _, t := range tasks {
			fmt.Fprintf(out, "    %s\n", t)
		}
	}

	planner := sched.NewPlanner(nodes, tasks, cfg)
	if cfg.LogCSVPath != "" {
		if err := planner.EnableCSVLogging(cfg.LogCSVPath); err != nil {
			return err
		}
		defer planner.CloseCSVLogging()
	}

	status := planner.Validate()
	if status != sched.StatusOk {
		fmt.Fprintf(out, "Planner failed: %s\n", status)
		return fmt.Errorf("validation failed: %s", status)
	}

	schedule := planner.Schedule()

	fmt.Fprintln(out, "# task schedule:")
	for _, entry := range schedule {
		fmt.Fprintf(out, "%s: %s\n", entry.Task.Name(), entry.Node.Name())
	}

	if analyze {
		fmt.Fprint(out, report.Format(nodes, tasks, planner, cfg.ReportTopN))
	}

	return nil
}
