package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"taskwatch/internal/di"

	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync <page.html>",
	Short: "Poll for the tasks of a saved page and write the reconciled HTML",
	Long: `Load a saved admin page, poll until none of its tasks is waiting or running,
then write the resulting document.

Example:
  taskwatch sync tasks.html --origin http://localhost:8000 -o tasks.done.html`,
	Args: cobra.ExactArgs(1),
	RunE: runSync,
}

func init() {
	rootCmd.AddCommand(syncCmd)
	syncCmd.Flags().String("origin", "", "scheme://host the page was served from (required unless base_url is configured)")
	syncCmd.Flags().StringP("output", "o", "", "write the result here instead of stdout")
}

func runSync(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	origin, _ := cmd.Flags().GetString("origin")
	outPath, _ := cmd.Flags().GetString("output")

	ctx, stop := signalContext()
	defer stop()

	container, err := di.NewContainer(ctx, di.Config{
		Settings: settings,
		LogName:  "sync_" + args[0],
		HTMLFile: args[0],
		Origin:   origin,
	})
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}
	defer container.Close()

	report, err := runPoller(ctx, container.Poller)
	printReport(cmd, report)
	if err != nil {
		return err
	}

	html, err := container.Document.HTML(context.Background())
	if err != nil {
		return err
	}

	var w io.Writer = cmd.OutOrStdout()
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		w = f
	}
	_, err = io.WriteString(w, html)
	return err
}
