// ABOUTME: Note persistence operations for SQLite
// ABOUTME: CRUD plus the corpus projections retrieval reads from
package sqlite

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/harper/recall/internal/models"
)

// NoteStore handles note persistence
type NoteStore struct {
	db *DB
}

// NewNoteStore creates a new NoteStore
func NewNoteStore(db *DB) *NoteStore {
	return &NoteStore{db: db}
}

// Create inserts a note and returns its assigned id
func (s *NoteStore) Create(note *models.Note) (int64, error) {
	now := time.Now().UTC()
	result, err := s.db.Exec(`
		INSERT INTO notes (title, content, embedding, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`, note.Title, note.Content, note.Embedding, now, now)
	if err != nil {
		return 0, fmt.Errorf("inserting note: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading note id: %w", err)
	}

	note.ID = id
	note.CreatedAt = now
	note.UpdatedAt = now
	return id, nil
}

// Get retrieves a note by id, or nil if it does not exist
func (s *NoteStore) Get(id int64) (*models.Note, error) {
	var note models.Note
	err := s.db.QueryRow(`
		SELECT id, title, content, embedding, created_at, updated_at
		FROM notes
		WHERE id = ?
	`, id).Scan(&note.ID, &note.Title, &note.Content, &note.Embedding, &note.CreatedAt, &note.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &note, nil
}

// List returns notes newest first. limit <= 0 returns all notes.
func (s *NoteStore) List(limit int) ([]models.Note, error) {
	query := `
		SELECT id, title, content, embedding, created_at, updated_at
		FROM notes
		ORDER BY created_at DESC, id DESC
	`
	var args []interface{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	return scanNotes(rows)
}

// Update rewrites a note's title, content, and embedding
func (s *NoteStore) Update(note *models.Note) error {
	now := time.Now().UTC()
	result, err := s.db.Exec(`
		UPDATE notes
		SET title = ?, content = ?, embedding = ?, updated_at = ?
		WHERE id = ?
	`, note.Title, note.Content, note.Embedding, now, note.ID)
	if err != nil {
		return fmt.Errorf("updating note %d: %w", note.ID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("note %d not found", note.ID)
	}

	note.UpdatedAt = now
	return nil
}

// UpdateEmbedding replaces only the serialized vector of a note
func (s *NoteStore) UpdateEmbedding(id int64, embedding string) error {
	result, err := s.db.Exec(`
		UPDATE notes SET embedding = ?, updated_at = ? WHERE id = ?
	`, embedding, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("updating embedding for note %d: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("note %d not found", id)
	}
	return nil
}

// Delete removes a note by id
func (s *NoteStore) Delete(id int64) error {
	_, err := s.db.Exec("DELETE FROM notes WHERE id = ?", id)
	return err
}

// AllEmbeddable returns (id, embedding, content) rows for every note
// with a non-empty serialized vector, in stable id order. This is the
// corpus the retrieval engine scans.
func (s *NoteStore) AllEmbeddable() ([]models.CorpusRecord, error) {
	rows, err := s.db.Query(`
		SELECT id, embedding, content
		FROM notes
		WHERE embedding != ''
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var records []models.CorpusRecord
	for rows.Next() {
		var r models.CorpusRecord
		if err := rows.Scan(&r.ID, &r.Embedding, &r.Content); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// ByIDs returns the notes for the given ids, in the order the ids were
// supplied. Unknown ids are omitted.
func (s *NoteStore) ByIDs(ids []int64) ([]models.Note, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := s.db.Query(fmt.Sprintf(`
		SELECT id, title, content, embedding, created_at, updated_at
		FROM notes
		WHERE id IN (%s)
	`, placeholders), args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	notes, err := scanNotes(rows)
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]models.Note, len(notes))
	for _, n := range notes {
		byID[n.ID] = n
	}

	ordered := make([]models.Note, 0, len(ids))
	for _, id := range ids {
		if n, ok := byID[id]; ok {
			ordered = append(ordered, n)
		}
	}
	return ordered, nil
}

// MissingEmbeddings returns notes whose embedding column is empty
func (s *NoteStore) MissingEmbeddings() ([]models.Note, error) {
	rows, err := s.db.Query(`
		SELECT id, title, content, embedding, created_at, updated_at
		FROM notes
		WHERE embedding = ''
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	return scanNotes(rows)
}

// Counts returns the total number of notes and how many are embedded
func (s *NoteStore) Counts() (total, embedded int, err error) {
	err = s.db.QueryRow(`
		SELECT COUNT(*), COUNT(CASE WHEN embedding != '' THEN 1 END)
		FROM notes
	`).Scan(&total, &embedded)
	return total, embedded, err
}

// scanNotes scans rows into notes
func scanNotes(rows *sql.Rows) ([]models.Note, error) {
	var notes []models.Note
	for rows.Next() {
		var note models.Note
		if err := rows.Scan(&note.ID, &note.Title, &note.Content, &note.Embedding, &note.CreatedAt, &note.UpdatedAt); err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}
	return notes, rows.Err()
}
