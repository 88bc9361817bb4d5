// ABOUTME: CLI command to add new notes
// ABOUTME: Reads text from argument, file, or stdin and embeds it on save
package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var (
	addFile  string
	addTitle string
)

// NewAddCmd creates the add command
func NewAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add [text]",
		Short: "Add a new note",
		Long: `Add a new note from text, a file, or stdin.

The note content is embedded immediately so it is searchable. Without
an OpenAI API key the note is stored unembedded; run 'recall reembed'
once the key is configured.

Examples:
  recall add "Deploy steps: freeze, tag, ship, verify"
  recall add --title "Deploy" --file runbook.txt
  pbpaste | recall add`,
		Args: cobra.MaximumNArgs(1),
		RunE: runAdd,
	}

	cmd.Flags().StringVar(&addFile, "file", "", "Read note content from file")
	cmd.Flags().StringVar(&addTitle, "title", "", "Note title (defaults to the first line of content)")

	return cmd
}

func runAdd(cmd *cobra.Command, args []string) error {
	var text string
	if addFile != "" {
		data, err := os.ReadFile(addFile)
		if err != nil {
			return fmt.Errorf("reading file: %w", err)
		}
		text = string(data)
	} else if len(args) > 0 {
		text = args[0]
	} else {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		text = string(data)
	}

	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("no text provided")
	}

	store, _, _, err := openStorage()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	note, err := store.AddNote(addTitle, text)
	if note == nil {
		return fmt.Errorf("adding note: %w", err)
	}
	if err != nil {
		// Stored, but the embedding call failed
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	if !quiet {
		state := ""
		if note.Embedding == "" {
			state = " (not embedded)"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Added note %d: %s%s\n", note.ID, note.Title, state)
	}
	return nil
}
