// ABOUTME: MCP tool handler implementations for the recall server
// ABOUTME: Maps tool calls onto the storage facade and answer synthesizer
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/harper/recall/internal/config"
	"github.com/harper/recall/internal/core"
	"github.com/harper/recall/internal/storage"
)

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	storage     *storage.Storage
	synthesizer *core.Synthesizer
	cfg         *config.Config
}

// noteSummary is the note projection returned over MCP; the raw
// embedding column stays out of responses.
type noteSummary struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Embedded  bool   `json:"embedded"`
	CreatedAt string `json:"created_at"`
}

// searchResult annotates a retrieval hit with a display percentage.
type searchResult struct {
	ID      int64   `json:"id"`
	Score   float64 `json:"score"`
	Percent float64 `json:"percent"`
	Content string  `json:"content"`
}

// AddNote handles the add_note tool
func (h *Handlers) AddNote(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	content, err := request.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError("content argument is required and must be a string"), nil
	}
	title := request.GetString("title", "")

	note, err := h.storage.AddNote(title, content)
	if note == nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to store note: %v", err)), nil
	}
	if err != nil {
		// Stored but not embedded; the note is still usable and can be
		// re-embedded with regenerate.
		log.Printf("Warning: %v", err)
	}

	response := map[string]interface{}{
		"id":       note.ID,
		"title":    note.Title,
		"embedded": note.Embedding != "",
	}
	return jsonResult(response)
}

// ListNotes handles the list_notes tool
func (h *Handlers) ListNotes(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := request.GetInt("limit", 20)

	notes, err := h.storage.ListNotes(limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list notes: %v", err)), nil
	}

	summaries := make([]noteSummary, 0, len(notes))
	for _, n := range notes {
		summaries = append(summaries, noteSummary{
			ID:        n.ID,
			Title:     n.Title,
			Content:   n.Content,
			Embedded:  n.Embedding != "",
			CreatedAt: n.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}

	return jsonResult(map[string]interface{}{
		"count": len(summaries),
		"notes": summaries,
	})
}

// SearchNotes handles the search_notes tool
func (h *Handlers) SearchNotes(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query argument is required and must be a string"), nil
	}
	maxResults := request.GetInt("max_results", h.cfg.TopK)

	scored, err := h.storage.SearchNotes(query, maxResults, h.cfg.SimilarityThreshold)
	if err != nil {
		// Unrecoverable retrieval failure surfaces as no results plus a
		// diagnostic, never a raw error dump to the agent.
		return jsonResult(map[string]interface{}{
			"count":   0,
			"results": []searchResult{},
			"error":   fmt.Sprintf("search unavailable: %v", err),
		})
	}

	results := make([]searchResult, 0, len(scored))
	for _, s := range scored {
		results = append(results, searchResult{
			ID:      s.ID,
			Score:   s.Score,
			Percent: s.Percent(),
			Content: s.Content,
		})
	}

	return jsonResult(map[string]interface{}{
		"count":   len(results),
		"results": results,
	})
}

// AskQuestion handles the ask_question tool
func (h *Handlers) AskQuestion(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	question, err := request.RequireString("question")
	if err != nil {
		return mcp.NewToolResultError("question argument is required and must be a string"), nil
	}

	scored, err := h.storage.SearchNotes(question, h.cfg.TopK, h.cfg.SimilarityThreshold)
	if err != nil {
		return jsonResult(map[string]interface{}{
			"answer":  core.NoInformationAnswer,
			"sources": []int64{},
			"error":   fmt.Sprintf("retrieval unavailable: %v", err),
		})
	}

	texts := make([]string, 0, len(scored))
	ids := make([]int64, 0, len(scored))
	for _, s := range scored {
		texts = append(texts, s.Content)
		ids = append(ids, s.ID)
	}

	answer := h.synthesizer.Answer(question, texts)

	return jsonResult(map[string]interface{}{
		"answer":  answer,
		"sources": ids,
	})
}

// DeleteNote handles the delete_note tool
func (h *Handlers) DeleteNote(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := request.GetInt("id", 0)
	if id <= 0 {
		return mcp.NewToolResultError("id argument is required and must be a positive number"), nil
	}

	if err := h.storage.DeleteNote(int64(id)); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to delete note: %v", err)), nil
	}

	return jsonResult(map[string]interface{}{"deleted": id})
}

func jsonResult(response interface{}) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
