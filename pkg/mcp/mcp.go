package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/esumerfd/datadog-mcp/pkg/api"
	"github.com/esumerfd/datadog-mcp/pkg/version"
)

// Server represents the MCP server
type Server struct {
	server   *mcp.Server
	monitors api.MonitorsClient
	toolsets []api.Toolset
	logger   *zap.Logger
}

// NewServer creates a new MCP server
func NewServer(monitors api.MonitorsClient, toolsets []api.Toolset, logger *zap.Logger) (*Server, error) {
	s := &Server{
		monitors: monitors,
		toolsets: toolsets,
		logger:   logger,
	}

	s.server = mcp.NewServer(
		&mcp.Implementation{
			Name:    version.BinaryName,
			Version: version.Version,
		},
		&mcp.ServerOptions{
			Capabilities: &mcp.ServerCapabilities{
				Tools: &mcp.ToolCapabilities{},
			},
		},
	)

	if err := s.registerTools(); err != nil {
		return nil, fmt.Errorf("failed to register tools: %w", err)
	}

	return s, nil
}

// ServeStdio starts the MCP server with STDIO transport
func (s *Server) ServeStdio(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.LoggingTransport{
		Transport: &mcp.StdioTransport{},
		Writer:    os.Stderr,
	})
}

// ServeHTTP starts the MCP server with HTTP/SSE transport
func (s *Server) ServeHTTP(ctx context.Context, addr string) error {
	sseHandler := mcp.NewSSEHandler(func(r *http.Request) *mcp.Server {
		return s.server
	}, nil)

	router := mux.NewRouter()
	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	}).Methods(http.MethodGet)
	router.HandleFunc("/version", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, version.Info())
	}).Methods(http.MethodGet)
	router.PathPrefix("/").Handler(sseHandler)

	httpServer := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	s.logger.Info("starting HTTP/SSE server",
		zap.String("addr", addr),
		zap.String("sse_endpoint", "/sse"),
	)

	errChan := make(chan error, 1)
	go func() {
		errChan <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutting down HTTP server")
		return httpServer.Shutdown(context.Background())
	case err := <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	}
}

// registerTools registers all tools from toolsets
func (s *Server) registerTools() error {
	for _, toolset := range s.toolsets {
		tools := toolset.GetTools()
		s.logger.Info("registering toolset",
			zap.String("toolset", toolset.Name()),
			zap.Int("tools", len(tools)),
		)

		for _, tool := range tools {
			if err := s.registerTool(tool); err != nil {
				return fmt.Errorf("failed to register tool %s: %w", tool.Tool.Name, err)
			}
		}
	}

	return nil
}

// registerTool registers a single tool with the MCP server
func (s *Server) registerTool(serverTool api.ServerTool) error {
	mcpTool, handler, err := ServerToolToMCPTool(s, serverTool)
	if err != nil {
		return err
	}

	s.server.AddTool(mcpTool, handler)
	return nil
}

// ServerToolToMCPTool converts our ServerTool to MCP SDK format
func ServerToolToMCPTool(s *Server, tool api.ServerTool) (*mcp.Tool, mcp.ToolHandler, error) {
	mcpTool := &mcp.Tool{
		Name:        tool.Tool.Name,
		Description: tool.Tool.Description,
		InputSchema: tool.Tool.InputSchema,
	}

	mcpHandler := func(ctx context.Context, request *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		callID := uuid.NewString()
		start := time.Now()
		logger := s.logger.With(
			zap.String("call_id", callID),
			zap.String("tool", tool.Tool.Name),
		)

		toolCallRequest, err := MCPRequestToToolCallRequest(request)
		if err != nil {
			return nil, fmt.Errorf("failed to convert request for tool %s: %w", tool.Tool.Name, err)
		}

		result, err := tool.Handler(api.ToolHandlerParams{
			Context:         ctx,
			Monitors:        s.monitors,
			Logger:          logger,
			ToolCallRequest: toolCallRequest,
		})
		if err != nil {
			// Nothing escapes the handler boundary as a protocol fault
			logger.Error("tool call failed",
				zap.Duration("duration", time.Since(start)),
				zap.Error(err),
			)
			result = api.NewToolCallError(fmt.Sprintf("Error: %v", err))
		} else {
			logger.Info("tool call completed",
				zap.Duration("duration", time.Since(start)),
				zap.Bool("is_error", result.IsError),
			)
		}

		return NewTextResult(result), nil
	}

	return mcpTool, mcpHandler, nil
}

// ToolCallRequest implements api.ToolCallRequest
type ToolCallRequest struct {
	Name      string
	arguments map[string]any
}

var _ api.ToolCallRequest = (*ToolCallRequest)(nil)

// GetArguments returns the tool call arguments
func (t *ToolCallRequest) GetArguments() map[string]any {
	return t.arguments
}

// MCPRequestToToolCallRequest converts MCP request to our internal format
func MCPRequestToToolCallRequest(request *mcp.CallToolRequest) (*ToolCallRequest, error) {
	params, ok := request.GetParams().(*mcp.CallToolParamsRaw)
	if !ok {
		return nil, errors.New("invalid tool call parameters")
	}

	var arguments map[string]any
	if len(params.Arguments) > 0 {
		if err := json.Unmarshal(params.Arguments, &arguments); err != nil {
			return nil, fmt.Errorf("failed to unmarshal arguments: %w", err)
		}
	}

	return &ToolCallRequest{
		Name:      params.Name,
		arguments: arguments,
	}, nil
}

// NewTextResult converts a ToolCallResult to the SDK result type
func NewTextResult(result *api.ToolCallResult) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{
				Text: result.Content,
			},
		},
		IsError: result.IsError,
	}
}
