package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/jasonrhunter/FrequentEmailSummarizer/internal/instrumentation"
	"github.com/jasonrhunter/FrequentEmailSummarizer/internal/logging"
	"github.com/jasonrhunter/FrequentEmailSummarizer/internal/tools/summarize_tools"
)

func newServeCmd() *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server",
		Long: `Start the Model Context Protocol (MCP) server over stdio, exposing the
email summarization pipeline as tools for AI assistants:

  - summarize_emails: run the full fetch/redact/summarize/cite pipeline
  - redact_text: redact PII from arbitrary text
  - parse_date_range: resolve natural language date ranges

Gmail access uses the cached OAuth token; run 'mailbrief auth' first.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(logLevel)
		},
	}

	cmd.Flags().StringVar(&logLevel, "log-level", "warn", "Log level: debug, info, warn or error")
	return cmd
}

func runServe(logLevel string) error {
	// Stdout belongs to the stdio transport; slog writes to stderr.
	logging.Setup(logLevel)

	shutdownCtx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	instrConfig := instrumentation.DefaultConfig()
	instrConfig.ServiceVersion = version

	provider, err := instrumentation.NewProvider(shutdownCtx, instrConfig)
	if err != nil {
		return fmt.Errorf("failed to create instrumentation provider: %w", err)
	}
	defer func() {
		_ = provider.Shutdown(shutdownCtx)
	}()

	mcpSrv := mcpserver.NewMCPServer("mailbrief", version,
		mcpserver.WithToolCapabilities(true),
	)

	if err := summarize_tools.RegisterSummarizeTools(mcpSrv); err != nil {
		return fmt.Errorf("failed to register summarize tools: %w", err)
	}

	serverDone := make(chan error, 1)
	go func() {
		defer close(serverDone)
		if err := mcpserver.ServeStdio(mcpSrv); err != nil {
			serverDone <- err
		}
	}()

	select {
	case <-shutdownCtx.Done():
		return nil
	case err := <-serverDone:
		if err != nil {
			return fmt.Errorf("server stopped with error: %w", err)
		}
		return nil
	}
}
