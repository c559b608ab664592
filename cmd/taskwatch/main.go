// Package main is the taskwatch CLI.
//
// Usage:
//
//	taskwatch watch http://localhost:8000/admin/tasks/   # keep a live browser page in sync
//	taskwatch sync page.html --origin http://localhost:8000 -o out.html
//	taskwatch serve --addr :8000 --demo 5               # reference task server
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"taskwatch/internal/application/port/input"
	"taskwatch/internal/domain/entity"
	"taskwatch/internal/infrastructure/env"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "taskwatch",
	Short: "Keep rendered background-task state in sync with its server",
	Long: `taskwatch polls the task status endpoint for every task that is still
waiting or running on an admin page and swaps in the new renderings until
no unfinished task is left.

Configuration is read from defaults, an optional YAML file (--config),
.env / .env.<APP_ENV> and TASKWATCH_* environment variables, in that order.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "path to YAML config file")
	rootCmd.PersistentFlags().Bool("verbose", false, "log at debug level and mirror logs to stderr")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadSettings applies the persistent flags on top of file and env settings.
func loadSettings(cmd *cobra.Command) (env.Settings, error) {
	path, _ := cmd.Flags().GetString("config")
	s, err := env.LoadSettings(path, env.NewEnvService())
	if err != nil {
		return s, fmt.Errorf("failed to load config: %w", err)
	}
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		s.Log.Level = "debug"
		s.Log.Console = true
	}
	return s, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// runPoller treats an interrupt as a normal stop.
func runPoller(ctx context.Context, p input.TaskPoller) (*entity.PollReport, error) {
	report, err := p.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return report, nil
	}
	return report, err
}

func printReport(cmd *cobra.Command, report *entity.PollReport) {
	if report == nil {
		return
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "run %s: %d cycles, %d failed, %d replaced, %d marked failed\n",
		report.RunID, report.Cycles, report.Failures, report.Replaced, report.Reclassified)
}
