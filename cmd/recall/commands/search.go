// ABOUTME: CLI command for semantic note search
// ABOUTME: Ranks notes by cosine similarity with percentage score display
package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var (
	searchLimit     int
	searchThreshold float64
)

// NewSearchCmd creates the search command
func NewSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search notes by meaning",
		Long: `Search notes semantically.

The query is embedded and scored against every stored note by cosine
similarity; results below the threshold are dropped. Scores are shown
as percentages.

Examples:
  recall search "kubernetes upgrade notes"
  recall search --limit 3 "tax paperwork"
  recall search --threshold 0.3 --format json "standup"`,
		Args: cobra.ExactArgs(1),
		RunE: runSearch,
	}

	cmd.Flags().IntVar(&searchLimit, "limit", 10, "Maximum results to return")
	cmd.Flags().Float64Var(&searchThreshold, "threshold", 0.15, "Minimum similarity score (0-1)")

	return cmd
}

func runSearch(cmd *cobra.Command, args []string) error {
	if err := validatePositiveInt(searchLimit, "limit"); err != nil {
		return err
	}

	query := args[0]

	store, _, _, err := openStorage()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	results, err := store.SearchNotes(query, searchLimit, searchThreshold)
	if err != nil {
		return fmt.Errorf("searching notes: %w", err)
	}

	if len(results) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No relevant notes found for: %s\n", query)
		}
		return nil
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "SCORE\tID\tPREVIEW\n")
	fmt.Fprintf(w, "-----\t--\t-------\n")
	for _, r := range results {
		fmt.Fprintf(w, "%.1f%%\t%d\t%s\n",
			r.Percent(),
			r.ID,
			truncate(firstLine(r.Content), 60))
	}
	w.Flush()

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\nFound %d result(s)\n", len(results))
	}
	return nil
}
