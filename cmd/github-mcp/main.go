package main

import (
	"os"

	"github.com/thatguyinabeanie/todo-mcp/internal/config"
	"github.com/thatguyinabeanie/todo-mcp/internal/logger"
	"github.com/thatguyinabeanie/todo-mcp/internal/mcp"
	"github.com/thatguyinabeanie/todo-mcp/internal/tools"
	"github.com/thatguyinabeanie/todo-mcp/internal/tracker/github"
	"github.com/thatguyinabeanie/todo-mcp/pkg/protocol"
	"github.com/thatguyinabeanie/todo-mcp/pkg/version"
)

func main() {
	logger.InitFromEnv()

	// Missing credentials are reported per tool call; the server starts
	// and serves initialize/tools/list regardless.
	cfg := config.LoadGitHub()
	if cfg.Token == "" {
		logger.Warn("GITHUB_TOKEN not set; tools will return configuration errors")
	}

	registry := tools.NewRegistry()
	registry.MustRegister(github.GetTools(github.NewClient(cfg))...)

	server := mcp.NewServer(protocol.ServerInfo{
		Name:    "github-mcp",
		Version: version.Version,
	}, registry)

	if err := server.ProcessStream(os.Stdin, os.Stdout); err != nil {
		logger.Error("server terminated", "error", err)
		os.Exit(1)
	}
}
