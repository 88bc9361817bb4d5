// ABOUTME: Shared utility functions for CLI commands
// ABOUTME: Output helpers plus common storage/config initialization
package commands

import (
	"fmt"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/harper/recall/internal/config"
	"github.com/harper/recall/internal/llm"
	"github.com/harper/recall/internal/storage"
)

// openStorage loads .env and configuration, then opens the note store
// with an OpenAI-backed embedder. The caller owns Close.
func openStorage() (*storage.Storage, *llm.Client, *config.Config, error) {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading configuration: %w", err)
	}

	client := llm.NewClient(cfg)

	store, err := storage.New(cfg, client)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("initializing storage: %w", err)
	}

	return store, client, cfg, nil
}

// parseNoteID parses a note id argument
func parseNoteID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid note id %q", arg)
	}
	return id, nil
}

// truncate shortens a string to maxLen, adding "..." if truncated
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// firstLine returns the first line of s for table previews
func firstLine(s string) string {
	for i, r := range s {
		if r == '\n' {
			return s[:i]
		}
	}
	return s
}

// formatTime formats a time for display
func formatTime(t time.Time) string {
	now := time.Now()
	diff := now.Sub(t)

	if diff < time.Minute {
		return "just now"
	} else if diff < time.Hour {
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	} else if diff < 24*time.Hour {
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	} else if diff < 7*24*time.Hour {
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	}
	return t.Format("2006-01-02")
}

// validatePositiveInt returns error if n is not positive
func validatePositiveInt(n int, name string) error {
	if n <= 0 {
		return fmt.Errorf("%s must be positive, got %d", name, n)
	}
	return nil
}
