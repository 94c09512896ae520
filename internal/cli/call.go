package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thatguyinabeanie/todo-mcp/internal/client"
)

var callTimeout time.Duration

var callCmd = &cobra.Command{
	Use:   "call <server-command> <tool> [json-arguments]",
	Short: "Spawn an MCP server and invoke one of its tools",
	Long: `Spawns the given server binary, performs the initialize handshake,
calls the named tool, and prints the result.

Examples:
  todoctl call todo-mcp list_todos
  todoctl call todo-mcp add_todo '{"content":"fix the flaky test"}'
  todoctl call github-mcp create_github_issue '{"title":"Crash on startup"}'`,
	Args: cobra.RangeArgs(2, 3),
	RunE: runCall,
}

func init() {
	callCmd.Flags().DurationVar(&callTimeout, "timeout", 2*time.Minute, "Overall call timeout")
}

func runCall(cmd *cobra.Command, args []string) error {
	arguments := map[string]interface{}{}
	if len(args) == 3 {
		if err := json.Unmarshal([]byte(args[2]), &arguments); err != nil {
			return fmt.Errorf("arguments must be a JSON object: %w", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
	defer cancel()

	c, err := client.Spawn(ctx, args[0])
	if err != nil {
		return err
	}
	defer c.Close()

	if _, err := c.Initialize(ctx); err != nil {
		return err
	}

	result, err := c.CallTool(ctx, args[1], arguments)
	if err != nil {
		return err
	}

	return printJSON(result)
}

var toolsCmd = &cobra.Command{
	Use:   "tools <server-command>",
	Short: "List the tools an MCP server exposes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		c, err := client.Spawn(ctx, args[0])
		if err != nil {
			return err
		}
		defer c.Close()

		info, err := c.Initialize(ctx)
		if err != nil {
			return err
		}

		tools, err := c.ListTools(ctx)
		if err != nil {
			return err
		}

		color.New(color.Bold).Printf("%s v%s — %d tools\n\n", info.ServerInfo.Name, info.ServerInfo.Version, len(tools))
		for _, t := range tools {
			color.Cyan("%s", t.Name)
			fmt.Printf("    %s\n", t.Description)
		}
		return nil
	},
}

func printJSON(raw json.RawMessage) error {
	var buf interface{}
	if err := json.Unmarshal(raw, &buf); err != nil {
		fmt.Println(string(raw))
		return nil
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(buf)
}
