package tools

import "fmt"

// ToolError is an application-level failure surfaced to the client as a
// normal result object, never as a JSON-RPC protocol error. Code is a
// machine-readable tag ("configuration_error", "api_error", ...); it may
// be empty for plain message errors.
type ToolError struct {
	Code    string
	Message string
}

func (e *ToolError) Error() string {
	return e.Message
}

// NewConfigurationError reports a credential or setting missing for a
// tool that needs it. Detection happens per call so an unconfigured
// server still answers initialize and tools/list.
func NewConfigurationError(service, detail string) *ToolError {
	return &ToolError{
		Code:    "configuration_error",
		Message: fmt.Sprintf("%s is not configured: %s", service, detail),
	}
}

// NewAPIError reports a remote tracker failure (HTTP status >= 400 or a
// service-level error payload).
func NewAPIError(service string, status int, message string) *ToolError {
	return &ToolError{
		Code:    "api_error",
		Message: fmt.Sprintf("%s API error %d: %s", service, status, message),
	}
}

func NewMissingArgumentError(name string) *ToolError {
	return &ToolError{
		Code:    "invalid_arguments",
		Message: fmt.Sprintf("missing required argument: %s", name),
	}
}
