// ABOUTME: Tests for answer synthesis
// ABOUTME: Covers the generative path, extractive fallback, and summary tier
package core

import (
	"strings"
	"testing"
)

// fakeGenerator scripts the generative path.
type fakeGenerator struct {
	text      string
	ok        bool
	lastNotes []string
}

func (f *fakeGenerator) GenerateAnswer(question string, notes []string) (string, bool) {
	f.lastNotes = notes
	return f.text, f.ok
}

func TestAnswerEmptyNotes(t *testing.T) {
	s := NewSynthesizer(&fakeGenerator{text: "should not be used", ok: true}, 3)

	got := s.Answer("What is machine learning?", nil)
	if got != NoInformationAnswer {
		t.Errorf("Answer() = %q, want the fixed no-information message", got)
	}
}

func TestAnswerGenerativePath(t *testing.T) {
	gen := &fakeGenerator{text: "Machine learning is covered in your AI note.", ok: true}
	s := NewSynthesizer(gen, 3)

	got := s.Answer("what is machine learning", []string{"Machine learning is a subset of AI."})
	if got != gen.text {
		t.Errorf("Answer() = %q, want generator output", got)
	}
}

func TestAnswerGenerativeLimitsNotes(t *testing.T) {
	gen := &fakeGenerator{text: "answer", ok: true}
	s := NewSynthesizer(gen, 3)

	notes := []string{"one", "two", "three", "four", "five"}
	s.Answer("question", notes)

	if len(gen.lastNotes) != 3 {
		t.Errorf("generator received %d notes, want 3", len(gen.lastNotes))
	}
	if gen.lastNotes[0] != "one" || gen.lastNotes[2] != "three" {
		t.Errorf("generator notes = %v, want the first three in order", gen.lastNotes)
	}
}

func TestAnswerFallbackOnGeneratorFailure(t *testing.T) {
	s := NewSynthesizer(&fakeGenerator{ok: false}, 3)

	notes := []string{"Machine learning is a subset of AI. It learns from data."}
	got := s.Answer("What is machine learning?", notes)

	if got == "" {
		t.Fatal("Answer() = empty, want extractive fallback text")
	}
	if !strings.Contains(strings.ToLower(got), "machine learning") {
		t.Errorf("Answer() = %q, want sentence sharing a question keyword", got)
	}
}

func TestAnswerNilGeneratorUsesExtractive(t *testing.T) {
	s := NewSynthesizer(nil, 3)

	notes := []string{"The deploy happens every Friday. Lunch menu rotates weekly."}
	got := s.Answer("when is the deploy", notes)

	if !strings.Contains(got, "deploy happens every Friday") {
		t.Errorf("Answer() = %q, want the matching sentence", got)
	}
	if strings.Contains(got, "Lunch") {
		t.Errorf("Answer() = %q, should not include non-matching sentence", got)
	}
	if !strings.HasSuffix(got, ".") {
		t.Errorf("Answer() = %q, want trailing period", got)
	}
}

func TestAnswerExtractiveSentenceCap(t *testing.T) {
	s := NewSynthesizer(nil, 3)

	// Every sentence shares the word "cat" with the question.
	note := "cat one. cat two. cat three. cat four. cat five. cat six. cat seven"
	got := s.Answer("the cat", []string{note})

	count := strings.Count(got, "cat")
	if count != 5 {
		t.Errorf("Answer() kept %d sentences, want 5: %q", count, got)
	}
}

func TestAnswerExtractiveAcrossNotes(t *testing.T) {
	s := NewSynthesizer(nil, 3)

	notes := []string{
		"The server restarts nightly. Unrelated filler text here",
		"Backup runs after the server restart. More filler",
	}
	got := s.Answer("server restart schedule", notes)

	if !strings.Contains(got, "server restarts nightly") {
		t.Errorf("Answer() = %q, missing sentence from first note", got)
	}
	if !strings.Contains(got, "Backup runs after the server restart") {
		t.Errorf("Answer() = %q, missing sentence from second note", got)
	}
}

func TestAnswerSummaryTierSingleNote(t *testing.T) {
	s := NewSynthesizer(nil, 3)

	// No shared words between question and note
	long := strings.Repeat("z", 250)
	got := s.Answer("completely unrelated question", []string{long})

	if !strings.HasSuffix(got, "...") {
		t.Errorf("Answer() = %q, want truncated summary with ellipsis", got)
	}
	if len([]rune(got)) != 203 {
		t.Errorf("Answer() length = %d, want 200 chars plus ellipsis", len([]rune(got)))
	}
	if strings.Contains(got, "Based on your notes") {
		t.Errorf("single-note summary should not carry the multi-note prefix: %q", got)
	}
}

func TestAnswerSummaryTierMultipleNotes(t *testing.T) {
	s := NewSynthesizer(nil, 3)

	got := s.Answer("xyzzy", []string{"First unrelated body", "Second unrelated body"})

	if !strings.HasPrefix(got, "Based on your notes:") {
		t.Errorf("Answer() = %q, want multi-note summary prefix", got)
	}
	if !strings.Contains(got, "First unrelated body") || !strings.Contains(got, "Second unrelated body") {
		t.Errorf("Answer() = %q, want both summaries", got)
	}
	if !strings.Contains(got, "\n\n") {
		t.Errorf("Answer() = %q, want blank-line separated summaries", got)
	}
}

func TestNewSynthesizerDefaultMaxNotes(t *testing.T) {
	gen := &fakeGenerator{text: "a", ok: true}
	s := NewSynthesizer(gen, 0)

	s.Answer("q", []string{"1", "2", "3", "4", "5"})
	if len(gen.lastNotes) != DefaultAnswerNotes {
		t.Errorf("generator received %d notes, want default %d", len(gen.lastNotes), DefaultAnswerNotes)
	}
}
