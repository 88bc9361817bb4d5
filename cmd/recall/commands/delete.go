// ABOUTME: CLI command to delete a note
// ABOUTME: Removes the record and its embedded vector in one step
package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewDeleteCmd creates the delete command
func NewDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a note",
		Long: `Delete a note by id. The embedding stored with the note is
removed along with it.

Examples:
  recall delete 12`,
		Args: cobra.ExactArgs(1),
		RunE: runDelete,
	}

	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	id, err := parseNoteID(args[0])
	if err != nil {
		return err
	}

	store, _, _, err := openStorage()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	note, err := store.GetNote(id)
	if err != nil {
		return fmt.Errorf("loading note: %w", err)
	}
	if note == nil {
		return fmt.Errorf("note %d not found", id)
	}

	if err := store.DeleteNote(id); err != nil {
		return fmt.Errorf("deleting note: %w", err)
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Deleted note %d: %s\n", id, note.Title)
	}
	return nil
}
