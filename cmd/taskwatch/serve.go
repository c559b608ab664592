package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"taskwatch/internal/infrastructure/taskserver"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the reference task status server",
	Long: `Serve an admin page and the task status endpoints from an in-memory registry:

  GET /admin/tasks/                 the page with one row per task
  GET /async_actions/messages/get/  msgs=<json>, answered by message id
  GET /async_actions/tasks_by_ids/  task_id=checksum pairs, answered by task id

With --demo N the server seeds N tasks and advances them every --step.

Example:
  taskwatch serve --addr :8000 --demo 5`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", ":8000", "listen address")
	serveCmd.Flags().Int("demo", 0, "number of demo tasks to seed")
	serveCmd.Flags().Duration("step", time.Second, "demo progression interval")
	serveCmd.Flags().Bool("debug", false, "render full task names and tracebacks")
}

func runServe(cmd *cobra.Command, args []string) error {
	addr, _ := cmd.Flags().GetString("addr")
	demo, _ := cmd.Flags().GetInt("demo")
	step, _ := cmd.Flags().GetDuration("step")
	debug, _ := cmd.Flags().GetBool("debug")

	registry := taskserver.NewRegistry(debug)
	if err := seedDemo(registry, demo); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           taskserver.NewServer(registry, taskserver.Options{RequestLogs: true, JSONLogs: true}).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signalContext()
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		fmt.Fprintf(cmd.ErrOrStderr(), "serving %s on %s\n", taskserver.PagePath, addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	if demo > 0 {
		g.Go(func() error {
			ticker := time.NewTicker(step)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return nil
				case <-ticker.C:
					registry.Advance()
				}
			}
		})
	}

	return g.Wait()
}

// seedDemo adds n tasks spread over the start states; every fifth one fails.
func seedDemo(r *taskserver.Registry, n int) error {
	states := []taskserver.State{taskserver.StatePending, taskserver.StateReceived, taskserver.StateStarted}
	for i := 1; i <= n; i++ {
		t := taskserver.Task{
			ID:    fmt.Sprintf("demo-%d", i),
			Name:  fmt.Sprintf("demo.tasks.job_%d", i),
			State: states[i%len(states)],
		}
		if i%5 == 0 {
			t.State = taskserver.StateFailure
			t.Result = "Traceback (most recent call last):\nRuntimeError: demo failure"
		}
		if err := r.Add(t); err != nil {
			return err
		}
	}
	return nil
}
