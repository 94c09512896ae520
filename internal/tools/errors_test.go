package tools

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestConfigurationError(t *testing.T) {
	err := NewConfigurationError("GitHub", "set GITHUB_TOKEN")

	if err.Code != "configuration_error" {
		t.Errorf("got code %q", err.Code)
	}
	if !strings.Contains(err.Error(), "GitHub is not configured") {
		t.Errorf("got message %q", err.Error())
	}
	if !strings.Contains(err.Error(), "GITHUB_TOKEN") {
		t.Errorf("remedy missing from message: %q", err.Error())
	}
}

func TestAPIError(t *testing.T) {
	err := NewAPIError("Linear", 401, "unauthorized")

	if err.Code != "api_error" {
		t.Errorf("got code %q", err.Code)
	}
	if !strings.Contains(err.Error(), "401") {
		t.Errorf("status missing from message: %q", err.Error())
	}
}

func TestToolErrorUnwrapsThroughWrapping(t *testing.T) {
	inner := NewMissingArgumentError("content")
	wrapped := fmt.Errorf("add_todo: %w", inner)

	var toolErr *ToolError
	if !errors.As(wrapped, &toolErr) {
		t.Fatal("errors.As failed through wrapping")
	}
	if toolErr.Code != "invalid_arguments" {
		t.Errorf("got code %q", toolErr.Code)
	}
}
