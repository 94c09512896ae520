package cli

import (
	"github.com/spf13/cobra"

	"github.com/thatguyinabeanie/todo-mcp/internal/scan"
	"github.com/thatguyinabeanie/todo-mcp/internal/todo"
)

var scanIgnore []string

var scanCmd = &cobra.Command{
	Use:   "scan <root>",
	Short: "Scan a directory for TODO comments and import them",
	Args:  cobra.ExactArgs(1),
	RunE:  runScan,
}

func init() {
	scanCmd.Flags().StringSliceVar(&scanIgnore, "ignore", nil, "Extra glob patterns to skip (repeatable)")
}

func runScan(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	patterns := scan.DefaultIgnorePatterns
	if len(scanIgnore) > 0 {
		patterns = append(append([]string{}, patterns...), scanIgnore...)
	}

	return scanInto(store, args[0], patterns)
}

// runScanOnce is the watch command's initial sync.
func runScanOnce(store *todo.Store, root string) error {
	return scanInto(store, root, nil)
}

func scanInto(store *todo.Store, root string, patterns []string) error {
	scanner := scan.NewScanner(patterns)
	items, err := scanner.ScanRoot(root)
	if err != nil {
		return err
	}

	imported, err := todo.ImportScanned(store, items)
	if err != nil {
		return err
	}

	printSuccess("found %d markers, imported %d new todos", len(items), imported)
	return nil
}
