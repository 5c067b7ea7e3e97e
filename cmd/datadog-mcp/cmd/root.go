package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	// Import toolsets to register them
	_ "github.com/esumerfd/datadog-mcp/pkg/toolsets/monitors"

	"github.com/esumerfd/datadog-mcp/pkg/config"
	"github.com/esumerfd/datadog-mcp/pkg/datadog"
	"github.com/esumerfd/datadog-mcp/pkg/logging"
	"github.com/esumerfd/datadog-mcp/pkg/mcp"
	"github.com/esumerfd/datadog-mcp/pkg/toolsets"
	"github.com/esumerfd/datadog-mcp/pkg/version"
)

var (
	configPath  string
	showVersion bool
	httpMode    bool
	httpAddr    string
	logLevel    string
	logFile     string
)

var rootCmd = &cobra.Command{
	Use:   "datadog-mcp",
	Short: "MCP server exposing Datadog monitor tools",
	Long: `A Model Context Protocol (MCP) server that lets AI assistants
read and edit Datadog monitors through the Datadog HTTP API.`,
	RunE: run,
}

func init() {
	rootCmd.Flags().StringVar(&configPath, "config", "", "Path to YAML config file (optional; env vars take precedence)")
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "Show version information")
	rootCmd.Flags().BoolVar(&httpMode, "http", false, "Run in HTTP/SSE mode instead of STDIO")
	rootCmd.Flags().StringVar(&httpAddr, "http-addr", "localhost:8080", "HTTP server address (only used with --http)")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.Flags().StringVar(&logFile, "log-file", "", "Write logs to this file with rotation (in addition to stderr)")
}

func Execute() error {
	return rootCmd.Execute()
}

func run(cmd *cobra.Command, args []string) error {
	if showVersion {
		fmt.Println(version.Info())
		return nil
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(logging.Options{
		Level:    logLevel,
		Filename: logFile,
	})
	if err != nil {
		return err
	}
	defer logger.Sync()

	client := datadog.NewClient(cfg)

	allToolsets := toolsets.All()
	if len(allToolsets) == 0 {
		return fmt.Errorf("no toolsets registered")
	}

	server, err := mcp.NewServer(client, allToolsets, logger)
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}

	ctx := cmd.Context()

	if httpMode {
		if err := server.ServeHTTP(ctx, httpAddr); err != nil {
			return fmt.Errorf("failed to start MCP server: %w", err)
		}
	} else {
		logger.Info("starting MCP server in STDIO mode")
		if err := server.ServeStdio(ctx); err != nil {
			return fmt.Errorf("failed to start MCP server: %w", err)
		}
	}

	return nil
}
