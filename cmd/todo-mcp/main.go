package main

import (
	"fmt"
	"os"

	"github.com/thatguyinabeanie/todo-mcp/internal/config"
	"github.com/thatguyinabeanie/todo-mcp/internal/logger"
	"github.com/thatguyinabeanie/todo-mcp/internal/mcp"
	"github.com/thatguyinabeanie/todo-mcp/internal/todo"
	"github.com/thatguyinabeanie/todo-mcp/internal/tools"
	"github.com/thatguyinabeanie/todo-mcp/pkg/protocol"
	"github.com/thatguyinabeanie/todo-mcp/pkg/version"
)

func main() {
	logger.InitFromEnv()
	cfg := config.LoadTodo()

	store, err := todo.Open(cfg.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open todo database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	registry := tools.NewRegistry()
	registry.MustRegister(todo.GetTools(store)...)

	server := mcp.NewServer(protocol.ServerInfo{
		Name:    "todo-mcp",
		Version: version.Version,
	}, registry)

	logger.Info("todo server ready", "db", cfg.DBPath, "tools", len(registry.Names()))

	if err := server.ProcessStream(os.Stdin, os.Stdout); err != nil {
		logger.Error("server terminated", "error", err)
		os.Exit(1)
	}
}
