// ABOUTME: Storage facade for the recall note store
// ABOUTME: Owns the SQLite note store and keeps embeddings in step with content
package storage

import (
	"fmt"
	"strings"

	"github.com/harper/recall/internal/config"
	"github.com/harper/recall/internal/core"
	"github.com/harper/recall/internal/models"
	"github.com/harper/recall/internal/storage/sqlite"
	"github.com/harper/recall/internal/vector"
)

// Embedder produces an embedding vector for a text.
type Embedder interface {
	GenerateEmbedding(text string) ([]float64, error)
}

// Storage manages persistent notes and their embeddings. Retrieval
// itself is delegated to a core.Engine over locally fetched corpus
// rows, so concurrent searches need no coordination here.
type Storage struct {
	db       *sqlite.DB
	notes    *sqlite.NoteStore
	embedder Embedder
	engine   *core.Engine
}

// New opens (or creates) the database at cfg.DBPath
func New(cfg *config.Config, embedder Embedder) (*Storage, error) {
	db, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return NewWithDB(db, embedder), nil
}

// NewWithDB wraps an already-open database (used by tests with an
// in-memory database)
func NewWithDB(db *sqlite.DB, embedder Embedder) *Storage {
	return &Storage{
		db:       db,
		notes:    sqlite.NewNoteStore(db),
		embedder: embedder,
		engine:   core.NewEngine(embedder),
	}
}

// Close closes the underlying database
func (s *Storage) Close() error {
	return s.db.Close()
}

// DBPath returns the database location
func (s *Storage) DBPath() string {
	return s.db.Path()
}

// AddNote stores a new note and embeds its content. A blank title is
// derived from the content. If embedding fails the note is still
// stored with an empty embedding, and the embedding error is returned
// alongside the persisted note so the caller can warn and retry later
// with RegenerateEmbeddings.
func (s *Storage) AddNote(title, content string) (*models.Note, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("note content is empty")
	}

	title = strings.TrimSpace(title)
	if title == "" {
		title = models.GuessTitle(content)
	}

	note := &models.Note{Title: title, Content: content}
	if _, err := s.notes.Create(note); err != nil {
		return nil, err
	}

	if err := s.embedNote(note); err != nil {
		return note, fmt.Errorf("note %d stored without embedding: %w", note.ID, err)
	}
	return note, nil
}

// UpdateNote rewrites a note's title and/or content. A changed content
// always regenerates the embedding: a stored vector must never go
// stale silently. Empty arguments leave the corresponding field
// untouched.
func (s *Storage) UpdateNote(id int64, title, content string) (*models.Note, error) {
	note, err := s.notes.Get(id)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, fmt.Errorf("note %d not found", id)
	}

	if t := strings.TrimSpace(title); t != "" {
		note.Title = t
	}

	contentChanged := false
	if c := strings.TrimSpace(content); c != "" && c != note.Content {
		note.Content = c
		note.Embedding = ""
		contentChanged = true
	}

	if err := s.notes.Update(note); err != nil {
		return nil, err
	}

	if contentChanged {
		if err := s.embedNote(note); err != nil {
			return note, fmt.Errorf("note %d updated without embedding: %w", note.ID, err)
		}
	}
	return note, nil
}

// GetNote retrieves a note by id, nil if absent
func (s *Storage) GetNote(id int64) (*models.Note, error) {
	return s.notes.Get(id)
}

// ListNotes returns notes newest first, all of them when limit <= 0
func (s *Storage) ListNotes(limit int) ([]models.Note, error) {
	return s.notes.List(limit)
}

// NotesByIDs returns notes in the supplied id order
func (s *Storage) NotesByIDs(ids []int64) ([]models.Note, error) {
	return s.notes.ByIDs(ids)
}

// DeleteNote removes a note
func (s *Storage) DeleteNote(id int64) error {
	return s.notes.Delete(id)
}

// SearchNotes runs semantic retrieval over every embedded note.
// topK <= 0 and the threshold follow core defaults and configuration;
// an empty result means no note was sufficiently relevant.
func (s *Storage) SearchNotes(query string, topK int, threshold float64) ([]models.ScoredNote, error) {
	corpus, err := s.notes.AllEmbeddable()
	if err != nil {
		return nil, fmt.Errorf("loading corpus: %w", err)
	}
	return s.engine.Retrieve(query, corpus, topK, threshold)
}

// RegenerateEmbeddings re-embeds notes. With all=false only notes with
// a missing embedding are processed; with all=true every note is. A
// per-note failure is reported through report (if non-nil) and skipped
// rather than aborting the pass. Returns how many notes were embedded.
func (s *Storage) RegenerateEmbeddings(all bool, report func(note models.Note, err error)) (int, error) {
	var notes []models.Note
	var err error
	if all {
		notes, err = s.notes.List(0)
	} else {
		notes, err = s.notes.MissingEmbeddings()
	}
	if err != nil {
		return 0, err
	}

	done := 0
	for _, note := range notes {
		vec, err := s.embedder.GenerateEmbedding(note.Content)
		if err != nil {
			if report != nil {
				report(note, err)
			}
			continue
		}
		if err := s.notes.UpdateEmbedding(note.ID, vector.Encode(vec)); err != nil {
			if report != nil {
				report(note, err)
			}
			continue
		}
		done++
		if report != nil {
			report(note, nil)
		}
	}
	return done, nil
}

// Stats reports note counts for the status command
func (s *Storage) Stats() (total, embedded int, err error) {
	return s.notes.Counts()
}

func (s *Storage) embedNote(note *models.Note) error {
	vec, err := s.embedder.GenerateEmbedding(note.Content)
	if err != nil {
		return err
	}
	encoded := vector.Encode(vec)
	if err := s.notes.UpdateEmbedding(note.ID, encoded); err != nil {
		return err
	}
	note.Embedding = encoded
	return nil
}
