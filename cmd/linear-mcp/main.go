package main

import (
	"os"

	"github.com/thatguyinabeanie/todo-mcp/internal/config"
	"github.com/thatguyinabeanie/todo-mcp/internal/logger"
	"github.com/thatguyinabeanie/todo-mcp/internal/mcp"
	"github.com/thatguyinabeanie/todo-mcp/internal/tools"
	"github.com/thatguyinabeanie/todo-mcp/internal/tracker/linear"
	"github.com/thatguyinabeanie/todo-mcp/pkg/protocol"
	"github.com/thatguyinabeanie/todo-mcp/pkg/version"
)

func main() {
	logger.InitFromEnv()

	cfg := config.LoadLinear()
	if cfg.APIKey == "" {
		logger.Warn("LINEAR_API_KEY not set; tools will return configuration errors")
	}

	registry := tools.NewRegistry()
	registry.MustRegister(linear.GetTools(linear.NewClient(cfg))...)

	server := mcp.NewServer(protocol.ServerInfo{
		Name:    "linear-mcp",
		Version: version.Version,
	}, registry)

	if err := server.ProcessStream(os.Stdin, os.Stdout); err != nil {
		logger.Error("server terminated", "error", err)
		os.Exit(1)
	}
}
