package main

import (
	"fmt"

	"taskwatch/internal/di"

	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch <page-url>",
	Short: "Open an admin page in a browser and keep its task messages up to date",
	Long: `Open the page in Chromium (launched, or reached through BROWSER_CONTROL_URL)
and poll until every task on it reached a final state.

Example:
  taskwatch watch http://localhost:8000/admin/tasks/ --headless=false`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().Bool("headless", true, "run the browser without a window")
}

func runWatch(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("headless") {
		settings.Browser.Headless, _ = cmd.Flags().GetBool("headless")
	}

	ctx, stop := signalContext()
	defer stop()

	container, err := di.NewContainer(ctx, di.Config{
		Settings: settings,
		LogName:  "watch_" + args[0],
		PageURL:  args[0],
	})
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}
	defer container.Close()

	report, err := runPoller(ctx, container.Poller)
	printReport(cmd, report)
	return err
}
