// ABOUTME: Root CLI command with global flags and subcommand registration
// ABOUTME: Defines the recall command tree and shared output options
package commands

import (
	"github.com/spf13/cobra"
)

var (
	verbose      bool
	quiet        bool
	outputFormat string
)

// NewRootCmd creates the root command with all subcommands
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recall",
		Short: "Semantic note store",
		Long: `recall — store notes, find them by meaning

Notes are embedded with OpenAI text-embedding-3-small and retrieved by
cosine similarity, so a search for "deployment checklist" finds the
note that says "steps before shipping to production".

Requires OPENAI_API_KEY for embedding and answer generation; notes can
be stored and listed without it and embedded later with 'recall reembed'.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	cmd.PersistentFlags().StringVar(&outputFormat, "format", "table", "Output format: table or json")

	cmd.AddCommand(
		NewAddCmd(),
		NewListCmd(),
		NewSearchCmd(),
		NewAskCmd(),
		NewUpdateCmd(),
		NewDeleteCmd(),
		NewReembedCmd(),
		NewStatusCmd(),
		NewMCPCmd(),
		NewVersionCmd(),
	)

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}
