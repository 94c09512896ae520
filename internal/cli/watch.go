package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/thatguyinabeanie/todo-mcp/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch <root>",
	Short: "Watch a directory and keep the todo database in sync with TODO comments",
	Long: `Watches a source tree. When files change, they are re-scanned and
their pending scanned todos replaced. Runs until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	w, err := watcher.New(watcher.DefaultConfig(), store)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initial sync before waiting for events.
	if err := runScanOnce(store, args[0]); err != nil {
		return err
	}

	return w.Watch(ctx, args[0])
}
