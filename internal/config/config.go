package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Todo holds the todo server configuration. Values are read once at
// startup; the struct is treated as immutable afterwards.
type Todo struct {
	DBPath   string
	LogLevel string
}

// GitHub holds credentials and target repository for the GitHub server.
// An empty Token is valid at startup: tools report it per call.
type GitHub struct {
	Token  string
	Repo   string
	APIURL string
}

// Linear holds credentials for the Linear GraphQL server.
type Linear struct {
	APIKey string
	TeamID string
	APIURL string
}

// Jira holds credentials for the JIRA server. Auth is basic, email:token.
type Jira struct {
	BaseURL  string
	Email    string
	APIToken string
	Project  string
}

const (
	defaultGitHubAPIURL = "https://api.github.com"
	defaultLinearAPIURL = "https://api.linear.app/graphql"
)

// loadEnvFile pulls a .env from the working directory into the process
// environment without overriding variables that are already set. Missing
// files are not an error.
func loadEnvFile() {
	_ = godotenv.Load()
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func LoadTodo() Todo {
	loadEnvFile()

	dbPath := os.Getenv("TODO_MCP_DB")
	if dbPath == "" {
		homeDir, _ := os.UserHomeDir()
		dbPath = filepath.Join(homeDir, ".todo-mcp", "todos.db")
	}

	return Todo{
		DBPath:   dbPath,
		LogLevel: envOr("TODO_MCP_LOG_LEVEL", "info"),
	}
}

func LoadGitHub() GitHub {
	loadEnvFile()

	cfg := GitHub{
		Token:  os.Getenv("GITHUB_TOKEN"),
		Repo:   os.Getenv("GITHUB_REPO"),
		APIURL: envOr("GITHUB_API_URL", defaultGitHubAPIURL),
	}

	if cfg.Repo == "" {
		cfg.Repo = detectGitHubRepo()
	}

	return cfg
}

func LoadLinear() Linear {
	loadEnvFile()

	return Linear{
		APIKey: os.Getenv("LINEAR_API_KEY"),
		TeamID: os.Getenv("LINEAR_TEAM_ID"),
		APIURL: envOr("LINEAR_API_URL", defaultLinearAPIURL),
	}
}

func LoadJira() Jira {
	loadEnvFile()

	return Jira{
		BaseURL:  os.Getenv("JIRA_BASE_URL"),
		Email:    os.Getenv("JIRA_EMAIL"),
		APIToken: os.Getenv("JIRA_API_TOKEN"),
		Project:  os.Getenv("JIRA_PROJECT"),
	}
}
