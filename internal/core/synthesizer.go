// ABOUTME: Answer synthesis from retrieved notes
// ABOUTME: Generative model path with deterministic extractive fallback
package core

import (
	"strings"
)

// NoInformationAnswer is returned when no notes are available to
// answer from.
const NoInformationAnswer = "I don't have enough information to answer that question."

// DefaultAnswerNotes is how many retrieved notes the generative prompt
// includes.
const DefaultAnswerNotes = 3

const maxExtractedSentences = 5
const summaryLength = 200

// Generator produces a natural-language answer from a question and
// note texts. ok=false means the generative path is unavailable or
// failed; it is never an error the synthesizer propagates.
type Generator interface {
	GenerateAnswer(question string, notes []string) (string, bool)
}

// Synthesizer turns retrieved note texts into an answer. It always
// returns some text: the generative path when the Generator succeeds,
// otherwise extractive synthesis from the notes themselves.
type Synthesizer struct {
	generator Generator
	maxNotes  int
}

// NewSynthesizer creates a Synthesizer. generator may be nil, which
// forces the extractive path. maxNotes <= 0 selects DefaultAnswerNotes.
func NewSynthesizer(generator Generator, maxNotes int) *Synthesizer {
	if maxNotes <= 0 {
		maxNotes = DefaultAnswerNotes
	}
	return &Synthesizer{generator: generator, maxNotes: maxNotes}
}

// Answer produces an answer to question from the supplied notes,
// ordered most relevant first. With no notes it returns
// NoInformationAnswer without attempting either path.
func (s *Synthesizer) Answer(question string, notes []string) string {
	if len(notes) == 0 {
		return NoInformationAnswer
	}

	if s.generator != nil {
		context := notes
		if len(context) > s.maxNotes {
			context = context[:s.maxNotes]
		}
		if text, ok := s.generator.GenerateAnswer(question, context); ok {
			return text
		}
	}

	return extractAnswer(question, notes)
}

// extractAnswer builds an answer from sentences that share a word with
// the question, capped at maxExtractedSentences across all notes. If
// nothing matches it degrades to truncated note summaries.
func extractAnswer(question string, notes []string) string {
	questionWords := wordSet(question)

	var parts []string
collect:
	for _, note := range notes {
		for _, sentence := range strings.Split(note, ". ") {
			if sharesWord(questionWords, sentence) {
				parts = append(parts, strings.TrimSpace(sentence))
				if len(parts) >= maxExtractedSentences {
					break collect
				}
			}
		}
	}

	if len(parts) > 0 {
		answer := strings.Join(parts, ". ")
		if !strings.HasSuffix(answer, ".") {
			answer += "."
		}
		return answer
	}

	summaries := make([]string, 0, len(notes))
	for _, note := range notes {
		summaries = append(summaries, summarize(note))
	}
	if len(summaries) == 1 {
		return summaries[0]
	}
	for i, s := range summaries {
		summaries[i] = "• " + s
	}
	return "Based on your notes:\n\n" + strings.Join(summaries, "\n\n")
}

// summarize truncates a note to summaryLength characters with an
// ellipsis.
func summarize(note string) string {
	runes := []rune(note)
	if len(runes) <= summaryLength {
		return note
	}
	return string(runes[:summaryLength]) + "..."
}

// wordSet lowercases text and splits it into a token set.
func wordSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(strings.ToLower(text)) {
		set[w] = struct{}{}
	}
	return set
}

// sharesWord reports whether any lowercase token of sentence appears in
// words.
func sharesWord(words map[string]struct{}, sentence string) bool {
	for _, w := range strings.Fields(strings.ToLower(sentence)) {
		if _, ok := words[w]; ok {
			return true
		}
	}
	return false
}
