package main

import (
	"os"

	"github.com/thatguyinabeanie/todo-mcp/internal/config"
	"github.com/thatguyinabeanie/todo-mcp/internal/logger"
	"github.com/thatguyinabeanie/todo-mcp/internal/mcp"
	"github.com/thatguyinabeanie/todo-mcp/internal/tools"
	"github.com/thatguyinabeanie/todo-mcp/internal/tracker/jira"
	"github.com/thatguyinabeanie/todo-mcp/pkg/protocol"
	"github.com/thatguyinabeanie/todo-mcp/pkg/version"
)

func main() {
	logger.InitFromEnv()

	cfg := config.LoadJira()
	if cfg.BaseURL == "" || cfg.APIToken == "" {
		logger.Warn("JIRA credentials not set; tools will return configuration errors")
	}

	registry := tools.NewRegistry()
	registry.MustRegister(jira.GetTools(jira.NewClient(cfg))...)

	server := mcp.NewServer(protocol.ServerInfo{
		Name:    "jira-mcp",
		Version: version.Version,
	}, registry)

	if err := server.ProcessStream(os.Stdin, os.Stdout); err != nil {
		logger.Error("server terminated", "error", err)
		os.Exit(1)
	}
}
