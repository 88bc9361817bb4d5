// ABOUTME: Retrieval engine ranking notes against a query by cosine similarity
// ABOUTME: Brute-force scan with threshold filtering and top-k truncation
package core

import (
	"fmt"
	"sort"

	"github.com/harper/recall/internal/models"
	"github.com/harper/recall/internal/vector"
)

// Defaults for retrieval; both are configurable per call.
const (
	DefaultTopK                = 10
	DefaultSimilarityThreshold = 0.15
)

// Embedder produces an embedding vector for a text.
type Embedder interface {
	GenerateEmbedding(text string) ([]float64, error)
}

// Engine ranks corpus records against a query. It owns no persistence:
// the caller supplies the corpus rows, and results live only for the
// duration of the call. A linear scan is the right shape for a corpus
// of hundreds to low thousands of notes.
type Engine struct {
	embedder Embedder
}

// NewEngine creates a retrieval engine around an embedder.
func NewEngine(embedder Embedder) *Engine {
	return &Engine{embedder: embedder}
}

// Retrieve embeds the query and returns the corpus records scoring at
// least threshold, sorted by descending similarity and truncated to
// topK. Ties keep corpus order. topK <= 0 selects DefaultTopK.
//
// Records with an empty, undecodable, or absent vector are skipped;
// a decodable vector of the wrong dimension aborts the query with
// vector.ErrDimensionMismatch since it means the corpus and embedder
// disagree. A zero-norm query vector yields an empty result, not an
// error. An empty result is a valid outcome meaning no note was
// sufficiently relevant.
func (e *Engine) Retrieve(query string, corpus []models.CorpusRecord, topK int, threshold float64) ([]models.ScoredNote, error) {
	if topK <= 0 {
		topK = DefaultTopK
	}

	queryVec, err := e.embedder.GenerateEmbedding(query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}
	if vector.Norm(queryVec) == 0 {
		return nil, nil
	}

	var scored []models.ScoredNote
	for _, record := range corpus {
		if record.Content == "" {
			continue
		}

		vec, err := vector.Decode(record.Embedding)
		if err != nil || vec == nil {
			// Missing or corrupt vector: skip the record, never the query.
			continue
		}

		score, err := vector.Cosine(queryVec, vec)
		if err != nil {
			return nil, fmt.Errorf("scoring note %d: %w", record.ID, err)
		}
		if score >= threshold {
			scored = append(scored, models.ScoredNote{
				ID:      record.ID,
				Score:   score,
				Content: record.Content,
			})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > topK {
		scored = scored[:topK]
	}

	return scored, nil
}
