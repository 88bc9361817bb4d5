// ABOUTME: CLI command reporting note store health
// ABOUTME: Shows counts, embedding coverage, database path, and model config
package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewStatusCmd creates the status command
func NewStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show note store status",
		Long: `Show the state of the note store: note counts, how many notes
are embedded, where the database lives, and which models are
configured.

Examples:
  recall status
  recall status --format json`,
		RunE: runStatus,
	}

	return cmd
}

func runStatus(cmd *cobra.Command, args []string) error {
	store, _, cfg, err := openStorage()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	total, embedded, err := store.Stats()
	if err != nil {
		return fmt.Errorf("reading stats: %w", err)
	}

	apiKeySet := os.Getenv("OPENAI_API_KEY") != ""

	if outputFormat == "json" {
		out := map[string]interface{}{
			"db_path":         store.DBPath(),
			"notes":           total,
			"embedded":        embedded,
			"missing":         total - embedded,
			"embedding_model": cfg.EmbeddingModel,
			"chat_model":      cfg.ChatModel,
			"api_key_set":     apiKeySet,
			"threshold":       cfg.SimilarityThreshold,
			"top_k":           cfg.TopK,
		}
		jsonData, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Database:        %s\n", store.DBPath())
	fmt.Fprintf(cmd.OutOrStdout(), "Notes:           %d\n", total)
	fmt.Fprintf(cmd.OutOrStdout(), "Embedded:        %d\n", embedded)
	if total > embedded {
		fmt.Fprintf(cmd.OutOrStdout(), "Missing:         %d (run 'recall reembed')\n", total-embedded)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Embedding model: %s\n", cfg.EmbeddingModel)
	fmt.Fprintf(cmd.OutOrStdout(), "Chat model:      %s\n", cfg.ChatModel)
	if !apiKeySet {
		fmt.Fprintln(cmd.OutOrStdout(), "OPENAI_API_KEY:  not set (embedding and generation disabled)")
	}
	return nil
}
