// ABOUTME: CLI command to answer questions from stored notes
// ABOUTME: Retrieves relevant notes then synthesizes an answer with fallback
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/harper/recall/internal/core"
)

// NewAskCmd creates the ask command
func NewAskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Answer a question from your notes",
		Long: `Answer a question using the stored notes as the only source.

The question retrieves the most relevant notes, then the chat model
writes an answer grounded in them. Without a working model the answer
is assembled from matching sentences in the notes, so this command
always produces something.

Examples:
  recall ask "when does the certificate expire?"
  recall ask -v "what did we decide about the migration?"`,
		Args: cobra.ExactArgs(1),
		RunE: runAsk,
	}

	return cmd
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := args[0]

	store, client, cfg, err := openStorage()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	results, err := store.SearchNotes(question, cfg.TopK, cfg.SimilarityThreshold)
	if err != nil {
		// Retrieval failures degrade to "no results" with a diagnostic,
		// never a bare failure.
		fmt.Fprintf(os.Stderr, "Warning: retrieval unavailable: %v\n", err)
		results = nil
	}

	texts := make([]string, 0, len(results))
	for _, r := range results {
		texts = append(texts, r.Content)
	}

	synthesizer := core.NewSynthesizer(client, cfg.AnswerNotes)
	answer := synthesizer.Answer(question, texts)

	fmt.Fprintln(cmd.OutOrStdout(), answer)

	if verbose && len(results) > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "\nSources:\n")
		for _, r := range results {
			fmt.Fprintf(cmd.OutOrStdout(), "  [%.1f%%] note %d: %s\n",
				r.Percent(), r.ID, truncate(firstLine(r.Content), 50))
		}
	}
	return nil
}
