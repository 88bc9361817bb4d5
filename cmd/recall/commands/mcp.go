// ABOUTME: MCP command starts Model Context Protocol server
// ABOUTME: Enables LLM agents to store and search notes via stdio
package commands

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/harper/recall/internal/config"
	"github.com/harper/recall/internal/core"
	"github.com/harper/recall/internal/llm"
	"github.com/harper/recall/internal/mcp"
	"github.com/harper/recall/internal/storage"
)

// NewMCPCmd creates the MCP command
func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents

Runs recall as an MCP (Model Context Protocol) server over stdio,
exposing note storage, semantic search, and question answering as
tools.`,
		RunE: runMCP,
		Example: `  # Start MCP server (typically called by an agent host)
  recall mcp

  # Configure in claude_desktop_config.json:
  # {
  #   "mcpServers": {
  #     "recall": {
  #       "command": "recall",
  #       "args": ["mcp"]
  #     }
  #   }
  # }`,
	}

	return cmd
}

func runMCP(cmd *cobra.Command, args []string) error {
	if err := godotenv.Load(); err != nil && verbose {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	if os.Getenv("OPENAI_API_KEY") == "" {
		log.Println("Warning: OPENAI_API_KEY not set - search and generative answers will not work")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	client := llm.NewClient(cfg)

	store, err := storage.New(cfg, client)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	synthesizer := core.NewSynthesizer(client, cfg.AnswerNotes)

	server := mcpserver.NewMCPServer(
		"Recall Notes",
		versionInfo.Version,
	)

	mcp.RegisterTools(server, store, synthesizer, cfg)

	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !quiet {
		log.Println("recall MCP server starting on stdio...")
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- mcpserver.ServeStdio(server)
	}()

	select {
	case <-ctx.Done():
		if !quiet {
			log.Println("Shutdown signal received, gracefully shutting down...")
		}
		if err := store.Close(); err != nil {
			log.Printf("Warning: Error closing storage: %v", err)
		}
		if !quiet {
			log.Println("Shutdown complete")
		}
	case err := <-serverErr:
		if err != nil {
			_ = store.Close()
			return fmt.Errorf("server error: %w", err)
		}
	}

	return nil
}
