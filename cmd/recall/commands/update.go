// ABOUTME: CLI command to update an existing note
// ABOUTME: Content changes regenerate the embedding automatically
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	updateTitle   string
	updateContent string
	updateFile    string
)

// NewUpdateCmd creates the update command
func NewUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a note",
		Long: `Update a note's title and/or content.

Changing the content re-embeds the note so search results never rank
against a stale vector.

Examples:
  recall update 12 --title "Deploy runbook"
  recall update 12 --content "freeze, tag, ship, verify, announce"
  recall update 12 --file runbook.txt`,
		Args: cobra.ExactArgs(1),
		RunE: runUpdate,
	}

	cmd.Flags().StringVar(&updateTitle, "title", "", "New title")
	cmd.Flags().StringVar(&updateContent, "content", "", "New content")
	cmd.Flags().StringVar(&updateFile, "file", "", "Read new content from file")

	return cmd
}

func runUpdate(cmd *cobra.Command, args []string) error {
	id, err := parseNoteID(args[0])
	if err != nil {
		return err
	}

	content := updateContent
	if updateFile != "" {
		data, err := os.ReadFile(updateFile)
		if err != nil {
			return fmt.Errorf("reading file: %w", err)
		}
		content = string(data)
	}

	if updateTitle == "" && content == "" {
		return fmt.Errorf("nothing to update: pass --title, --content, or --file")
	}

	store, _, _, err := openStorage()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	note, err := store.UpdateNote(id, updateTitle, content)
	if note == nil {
		return fmt.Errorf("updating note: %w", err)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Updated note %d: %s\n", note.ID, note.Title)
	}
	return nil
}
