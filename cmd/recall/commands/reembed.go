// ABOUTME: CLI command to regenerate note embeddings
// ABOUTME: Fills in missing embeddings, or rebuilds all after a model change
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/harper/recall/internal/models"
)

var reembedAll bool

// NewReembedCmd creates the reembed command
func NewReembedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reembed",
		Short: "Regenerate note embeddings",
		Long: `Regenerate embeddings for stored notes.

By default only notes without an embedding are processed. With --all
every note is re-embedded, which is required after switching embedding
models since vectors from different models cannot be compared.

Examples:
  recall reembed
  recall reembed --all`,
		RunE: runReembed,
	}

	cmd.Flags().BoolVar(&reembedAll, "all", false, "Re-embed every note, not just missing ones")

	return cmd
}

func runReembed(cmd *cobra.Command, args []string) error {
	store, _, _, err := openStorage()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	failed := 0
	done, err := store.RegenerateEmbeddings(reembedAll, func(note models.Note, err error) {
		if err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "Warning: note %d (%s): %v\n", note.ID, truncate(note.Title, 30), err)
			return
		}
		if verbose {
			fmt.Fprintf(cmd.OutOrStdout(), "  embedded note %d: %s\n", note.ID, truncate(note.Title, 40))
		}
	})
	if err != nil {
		return fmt.Errorf("regenerating embeddings: %w", err)
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Embedded %d note(s)", done)
		if failed > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), ", %d failed", failed)
		}
		fmt.Fprintln(cmd.OutOrStdout())
	}
	return nil
}
