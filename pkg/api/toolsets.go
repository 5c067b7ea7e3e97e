package api

import (
	"context"
	"math"

	"github.com/google/jsonschema-go/jsonschema"
	"go.uber.org/zap"
)

// ServerTool represents a tool that can be registered with the MCP server
type ServerTool struct {
	Tool    Tool            // Tool metadata and schema
	Handler ToolHandlerFunc // Function to execute the tool
}

// Tool represents a tool definition
type Tool struct {
	Name        string
	Description string
	InputSchema *jsonschema.Schema
}

// Toolset represents a collection of related tools
type Toolset interface {
	// Name returns the toolset name
	Name() string

	// GetTools returns all tools in this toolset
	GetTools() []ServerTool
}

// ToolCallRequest provides access to tool call arguments
type ToolCallRequest interface {
	GetArguments() map[string]any
}

// ToolCallResult represents the result of a tool call: one text block
// plus a flag telling the host whether the call failed.
type ToolCallResult struct {
	Content string
	IsError bool
}

// NewToolCallResult creates a successful ToolCallResult
func NewToolCallResult(content string) *ToolCallResult {
	return &ToolCallResult{Content: content}
}

// NewToolCallError creates a failed ToolCallResult carrying the given text
func NewToolCallError(content string) *ToolCallResult {
	return &ToolCallResult{Content: content, IsError: true}
}

// ToolHandlerFunc is the signature for tool handler functions
type ToolHandlerFunc func(params ToolHandlerParams) (*ToolCallResult, error)

// ToolHandlerParams contains all parameters passed to a tool handler
type ToolHandlerParams struct {
	context.Context
	Monitors        MonitorsClient
	Logger          *zap.Logger
	ToolCallRequest ToolCallRequest
}

// GetString returns a string argument value with default
func (p ToolHandlerParams) GetString(key, defaultValue string) string {
	args := p.ToolCallRequest.GetArguments()
	if val, ok := args[key]; ok {
		if str, ok := val.(string); ok {
			return str
		}
	}
	return defaultValue
}

// GetBool returns a boolean argument value with default
func (p ToolHandlerParams) GetBool(key string, defaultValue bool) bool {
	args := p.ToolCallRequest.GetArguments()
	if val, ok := args[key]; ok {
		if b, ok := val.(bool); ok {
			return b
		}
	}
	return defaultValue
}

// GetInt returns an int argument value with default
func (p ToolHandlerParams) GetInt(key string, defaultValue int) int {
	if v, ok := p.OptionalInt(key); ok {
		return v
	}
	return defaultValue
}

// OptionalInt returns an int argument and whether it was provided.
// An explicit JSON null counts as absent, as does a fractional number:
// the schemas declare integers, so a lenient host's 2.5 must not
// truncate into a valid value.
func (p ToolHandlerParams) OptionalInt(key string) (int, bool) {
	args := p.ToolCallRequest.GetArguments()
	switch v := args[key].(type) {
	case int:
		return v, true
	case float64:
		if v != math.Trunc(v) {
			return 0, false
		}
		return int(v), true
	}
	return 0, false
}

// OptionalString returns a string argument and whether it was provided.
// An empty string counts as provided; a JSON null does not.
func (p ToolHandlerParams) OptionalString(key string) (string, bool) {
	args := p.ToolCallRequest.GetArguments()
	if s, ok := args[key].(string); ok {
		return s, true
	}
	return "", false
}

// OptionalStringSlice returns a string-array argument and whether it was
// provided. An empty array counts as provided; a JSON null does not.
func (p ToolHandlerParams) OptionalStringSlice(key string) ([]string, bool) {
	args := p.ToolCallRequest.GetArguments()
	raw, ok := args[key].([]any)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out, true
}
