// ABOUTME: Tests for the storage facade
// ABOUTME: Exercises note lifecycle, embedding upkeep, and semantic search end to end
package storage

import (
	"errors"
	"strings"
	"testing"

	"github.com/harper/recall/internal/models"
	"github.com/harper/recall/internal/storage/sqlite"
	"github.com/harper/recall/internal/vector"
)

// fakeEmbedder returns canned vectors keyed by text, or a fixed error.
type fakeEmbedder struct {
	vectors map[string][]float64
	err     error
	calls   int
}

func (f *fakeEmbedder) GenerateEmbedding(text string) ([]float64, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if vec, ok := f.vectors[text]; ok {
		return vec, nil
	}
	return []float64{1, 0, 0}, nil
}

func newTestStorage(t *testing.T, embedder Embedder) *Storage {
	t.Helper()
	db, err := sqlite.OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewWithDB(db, embedder)
}

func TestAddNoteEmbedsAndPersists(t *testing.T) {
	emb := &fakeEmbedder{vectors: map[string][]float64{
		"remember the milk": {0.5, 0.5, 0},
	}}
	store := newTestStorage(t, emb)

	note, err := store.AddNote("Groceries", "remember the milk")
	if err != nil {
		t.Fatalf("AddNote() error = %v", err)
	}
	if note.ID <= 0 {
		t.Fatalf("note.ID = %d, want positive", note.ID)
	}
	if note.Embedding == "" {
		t.Error("note.Embedding is empty, want serialized vector")
	}

	got, err := store.GetNote(note.ID)
	if err != nil {
		t.Fatal(err)
	}
	vec, err := vector.Decode(got.Embedding)
	if err != nil {
		t.Fatalf("Decode(stored embedding) error = %v", err)
	}
	if len(vec) != 3 || vec[0] != 0.5 {
		t.Errorf("stored vector = %v, want [0.5 0.5 0]", vec)
	}
}

func TestAddNoteGuessesTitle(t *testing.T) {
	store := newTestStorage(t, &fakeEmbedder{})

	note, err := store.AddNote("", "Deploy checklist\nrun migrations first")
	if err != nil {
		t.Fatal(err)
	}
	if note.Title != "Deploy checklist" {
		t.Errorf("Title = %q, want first content line", note.Title)
	}
}

func TestAddNoteEmptyContent(t *testing.T) {
	store := newTestStorage(t, &fakeEmbedder{})

	if _, err := store.AddNote("title", "   \n  "); err == nil {
		t.Error("AddNote() with blank content error = nil, want error")
	}
}

func TestAddNoteEmbedderFailureStillStores(t *testing.T) {
	embErr := errors.New("embedding service down")
	store := newTestStorage(t, &fakeEmbedder{err: embErr})

	note, err := store.AddNote("t", "content")
	if err == nil {
		t.Fatal("AddNote() error = nil, want embedding failure")
	}
	if !errors.Is(err, embErr) {
		t.Errorf("error = %v, want wrapped embedding failure", err)
	}
	if note == nil {
		t.Fatal("note = nil, want persisted note despite embedding failure")
	}

	got, getErr := store.GetNote(note.ID)
	if getErr != nil {
		t.Fatal(getErr)
	}
	if got == nil {
		t.Fatal("note was not persisted")
	}
	if got.Embedding != "" {
		t.Errorf("Embedding = %q, want empty after failed embed", got.Embedding)
	}
}

func TestUpdateNoteContentReembeds(t *testing.T) {
	emb := &fakeEmbedder{vectors: map[string][]float64{
		"old body": {1, 0},
		"new body": {0, 1},
	}}
	store := newTestStorage(t, emb)

	note, err := store.AddNote("t", "old body")
	if err != nil {
		t.Fatal(err)
	}
	before := note.Embedding

	updated, err := store.UpdateNote(note.ID, "", "new body")
	if err != nil {
		t.Fatalf("UpdateNote() error = %v", err)
	}
	if updated.Embedding == before {
		t.Error("embedding unchanged after content change")
	}
	vec, err := vector.Decode(updated.Embedding)
	if err != nil {
		t.Fatal(err)
	}
	if vec[0] != 0 || vec[1] != 1 {
		t.Errorf("re-embedded vector = %v, want [0 1]", vec)
	}
}

func TestUpdateNoteTitleOnlyKeepsEmbedding(t *testing.T) {
	emb := &fakeEmbedder{}
	store := newTestStorage(t, emb)

	note, err := store.AddNote("old title", "body")
	if err != nil {
		t.Fatal(err)
	}
	callsAfterAdd := emb.calls

	updated, err := store.UpdateNote(note.ID, "new title", "")
	if err != nil {
		t.Fatal(err)
	}
	if updated.Title != "new title" {
		t.Errorf("Title = %q", updated.Title)
	}
	if updated.Embedding == "" {
		t.Error("embedding cleared by title-only update")
	}
	if emb.calls != callsAfterAdd {
		t.Errorf("embedder called %d extra times on title-only update", emb.calls-callsAfterAdd)
	}
}

func TestUpdateNoteMissing(t *testing.T) {
	store := newTestStorage(t, &fakeEmbedder{})

	if _, err := store.UpdateNote(404, "t", "c"); err == nil {
		t.Error("UpdateNote() on missing note error = nil, want error")
	}
}

func TestSearchNotes(t *testing.T) {
	emb := &fakeEmbedder{vectors: map[string][]float64{
		"coffee machine descaling": {1, 0, 0},
		"quarterly tax deadline":   {0, 1, 0},
		"coffee beans order":       {0.9, 0.1, 0},
		"coffee":                   {1, 0, 0},
	}}
	store := newTestStorage(t, emb)

	for _, content := range []string{"coffee machine descaling", "quarterly tax deadline", "coffee beans order"} {
		if _, err := store.AddNote("", content); err != nil {
			t.Fatal(err)
		}
	}

	results, err := store.SearchNotes("coffee", 0, 0.5)
	if err != nil {
		t.Fatalf("SearchNotes() error = %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2 above threshold", len(results))
	}
	if results[0].Content != "coffee machine descaling" {
		t.Errorf("results[0].Content = %q, want best match first", results[0].Content)
	}
	if results[0].Score < results[1].Score {
		t.Error("results not sorted by descending score")
	}
}

func TestSearchNotesSkipsCorruptRecord(t *testing.T) {
	emb := &fakeEmbedder{vectors: map[string][]float64{
		"good note": {1, 0},
		"query":     {1, 0},
	}}
	store := newTestStorage(t, emb)

	note, err := store.AddNote("", "good note")
	if err != nil {
		t.Fatal(err)
	}

	// Corrupt a second note's stored vector directly.
	bad, err := store.AddNote("", "bad note")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := store.db.Exec("UPDATE notes SET embedding = 'not json' WHERE id = ?", bad.ID); err != nil {
		t.Fatal(err)
	}

	results, err := store.SearchNotes("query", 0, 0.1)
	if err != nil {
		t.Fatalf("SearchNotes() error = %v", err)
	}
	if len(results) != 1 || results[0].ID != note.ID {
		t.Errorf("results = %+v, want only the intact note", results)
	}
}

func TestRegenerateEmbeddingsMissingOnly(t *testing.T) {
	emb := &fakeEmbedder{err: errors.New("down")}
	store := newTestStorage(t, emb)

	// Two notes stored without embeddings while the embedder is down.
	if _, err := store.AddNote("", "first"); err == nil {
		t.Fatal("expected embedding failure")
	}
	if _, err := store.AddNote("", "second"); err == nil {
		t.Fatal("expected embedding failure")
	}

	emb.err = nil
	var reported []models.Note
	done, err := store.RegenerateEmbeddings(false, func(note models.Note, err error) {
		if err == nil {
			reported = append(reported, note)
		}
	})
	if err != nil {
		t.Fatalf("RegenerateEmbeddings() error = %v", err)
	}
	if done != 2 {
		t.Errorf("done = %d, want 2", done)
	}
	if len(reported) != 2 {
		t.Errorf("reported %d successes, want 2", len(reported))
	}

	total, embedded, err := store.Stats()
	if err != nil {
		t.Fatal(err)
	}
	if total != 2 || embedded != 2 {
		t.Errorf("Stats() = (%d, %d), want (2, 2)", total, embedded)
	}
}

func TestRegenerateEmbeddingsAll(t *testing.T) {
	emb := &fakeEmbedder{}
	store := newTestStorage(t, emb)

	if _, err := store.AddNote("", "already embedded"); err != nil {
		t.Fatal(err)
	}
	callsAfterAdd := emb.calls

	done, err := store.RegenerateEmbeddings(true, nil)
	if err != nil {
		t.Fatal(err)
	}
	if done != 1 {
		t.Errorf("done = %d, want 1", done)
	}
	if emb.calls != callsAfterAdd+1 {
		t.Errorf("embedder calls = %d, want one per note with all=true", emb.calls-callsAfterAdd)
	}
}

func TestRegenerateEmbeddingsSkipsFailures(t *testing.T) {
	emb := &fakeEmbedder{err: errors.New("down")}
	store := newTestStorage(t, emb)

	if _, err := store.AddNote("", "only note"); err == nil {
		t.Fatal("expected embedding failure")
	}

	var failures int
	done, err := store.RegenerateEmbeddings(false, func(note models.Note, err error) {
		if err != nil {
			failures++
		}
	})
	if err != nil {
		t.Fatalf("RegenerateEmbeddings() error = %v, want per-note skip", err)
	}
	if done != 0 || failures != 1 {
		t.Errorf("done = %d, failures = %d, want 0 and 1", done, failures)
	}
}

func TestDeleteNote(t *testing.T) {
	store := newTestStorage(t, &fakeEmbedder{})

	note, err := store.AddNote("", "to delete")
	if err != nil {
		t.Fatal(err)
	}
	if err := store.DeleteNote(note.ID); err != nil {
		t.Fatalf("DeleteNote() error = %v", err)
	}
	got, err := store.GetNote(note.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Errorf("GetNote() after delete = %+v, want nil", got)
	}
}

func TestNotesByIDs(t *testing.T) {
	store := newTestStorage(t, &fakeEmbedder{})

	var ids []int64
	for _, c := range []string{"one", "two"} {
		n, err := store.AddNote("", c)
		if err != nil {
			t.Fatal(err)
		}
		ids = append(ids, n.ID)
	}

	notes, err := store.NotesByIDs([]int64{ids[1], ids[0]})
	if err != nil {
		t.Fatal(err)
	}
	if len(notes) != 2 || notes[0].ID != ids[1] {
		t.Errorf("NotesByIDs() order not preserved: %+v", notes)
	}
	if !strings.HasPrefix(notes[0].Content, "two") {
		t.Errorf("notes[0].Content = %q", notes[0].Content)
	}
}
