package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thatguyinabeanie/todo-mcp/internal/config"
	"github.com/thatguyinabeanie/todo-mcp/internal/todo"
	"github.com/thatguyinabeanie/todo-mcp/pkg/version"
)

var rootCmd = &cobra.Command{
	Use:   "todoctl",
	Short: "Manage code TODOs and drive the todo-mcp servers",
	Long: `todoctl works the local todo database directly (list, add, scan,
watch) and doubles as an MCP client: it can spawn any of the todo-mcp
servers and call their tools over stdio.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(doneCmd)
	rootCmd.AddCommand(rmCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(callCmd)
	rootCmd.AddCommand(toolsCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("todoctl v%s\n", version.Version)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func openStore() (*todo.Store, error) {
	cfg := config.LoadTodo()
	store, err := todo.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open todo database: %w", err)
	}
	return store, nil
}

func printSuccess(format string, a ...interface{}) {
	color.Green("✓ "+format, a...)
}
