package main

import (
	"os"

	"github.com/thatguyinabeanie/todo-mcp/internal/cli"
	"github.com/thatguyinabeanie/todo-mcp/internal/logger"
)

func main() {
	logger.InitFromEnv()

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
