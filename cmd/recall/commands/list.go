// ABOUTME: CLI command to list stored notes
// ABOUTME: Unranked default listing, newest first, as table or JSON
package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var listLimit int

// NewListCmd creates the list command
func NewListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List notes",
		Long: `List stored notes, newest first.

This is the unranked default listing; use 'recall search' for
relevance-ranked results.

Examples:
  recall list
  recall list --limit 50
  recall list --format json`,
		RunE: runList,
	}

	cmd.Flags().IntVar(&listLimit, "limit", 20, "Maximum notes to show (0 for all)")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	if listLimit < 0 {
		return fmt.Errorf("limit must not be negative, got %d", listLimit)
	}

	store, _, _, err := openStorage()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	notes, err := store.ListNotes(listLimit)
	if err != nil {
		return fmt.Errorf("listing notes: %w", err)
	}

	if len(notes) == 0 {
		if !quiet {
			fmt.Fprintln(cmd.OutOrStdout(), "No notes stored yet. Add one with 'recall add'.")
		}
		return nil
	}

	if outputFormat == "json" {
		type listedNote struct {
			ID        int64  `json:"id"`
			Title     string `json:"title"`
			Content   string `json:"content"`
			Embedded  bool   `json:"embedded"`
			CreatedAt string `json:"created_at"`
			UpdatedAt string `json:"updated_at"`
		}
		out := make([]listedNote, 0, len(notes))
		for _, n := range notes {
			out = append(out, listedNote{
				ID:        n.ID,
				Title:     n.Title,
				Content:   n.Content,
				Embedded:  n.Embedding != "",
				CreatedAt: n.CreatedAt.Format("2006-01-02 15:04:05"),
				UpdatedAt: n.UpdatedAt.Format("2006-01-02 15:04:05"),
			})
		}
		jsonData, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID\tCREATED\tEMBEDDED\tTITLE\tPREVIEW\n")
	fmt.Fprintf(w, "--\t-------\t--------\t-----\t-------\n")
	for _, n := range notes {
		embedded := "yes"
		if n.Embedding == "" {
			embedded = "no"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			n.ID,
			formatTime(n.CreatedAt),
			embedded,
			truncate(n.Title, 30),
			truncate(firstLine(n.Content), 50))
	}
	w.Flush()

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\n%d note(s)\n", len(notes))
	}
	return nil
}
