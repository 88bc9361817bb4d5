// ABOUTME: Note models for the recall note store
// ABOUTME: Defines Note records, corpus rows, and scored search results
package models

import (
	"strings"
	"time"
)

// Note is a stored free-text note. Embedding holds the serialized vector
// for Content; empty means the note has not been embedded yet.
type Note struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Embedding string    `json:"embedding,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CorpusRecord is the minimal projection of a note used by retrieval:
// id, serialized vector (possibly empty), and the embedded text.
type CorpusRecord struct {
	ID        int64
	Embedding string
	Content   string
}

// ScoredNote is one retrieval result. Score is a cosine similarity;
// results live only for the duration of a single query.
type ScoredNote struct {
	ID      int64   `json:"id"`
	Score   float64 `json:"score"`
	Content string  `json:"content"`
}

// Percent returns the score as a display percentage.
func (s ScoredNote) Percent() float64 {
	return s.Score * 100
}

const maxGuessedTitleLen = 80

// GuessTitle derives a title from note content: the first non-blank line,
// truncated to 80 characters with an ellipsis. Blank content yields
// "Untitled note".
func GuessTitle(content string) string {
	head := ""
	for _, line := range strings.Split(strings.TrimSpace(content), "\n") {
		if l := strings.TrimSpace(line); l != "" {
			head = l
			break
		}
	}
	if head == "" {
		return "Untitled note"
	}
	runes := []rune(head)
	if len(runes) > maxGuessedTitleLen {
		head = strings.TrimRight(string(runes[:maxGuessedTitleLen-3]), " ") + "..."
	}
	return head
}
