// ABOUTME: MCP tool definitions and registration for the recall server
// ABOUTME: Exposes note CRUD, semantic search, and question answering over stdio
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/harper/recall/internal/config"
	"github.com/harper/recall/internal/core"
	"github.com/harper/recall/internal/storage"
)

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, store *storage.Storage, synthesizer *core.Synthesizer, cfg *config.Config) *Handlers {
	handlers := &Handlers{
		storage:     store,
		synthesizer: synthesizer,
		cfg:         cfg,
	}

	// 1. add_note - store a note and embed it
	server.AddTool(mcp.Tool{
		Name:        "add_note",
		Description: "Store a free-text note. The note content is embedded so it can be found later by semantic search.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"content": map[string]interface{}{
					"type":        "string",
					"description": "Note text to store",
				},
				"title": map[string]interface{}{
					"type":        "string",
					"description": "Optional title; derived from the first line when omitted",
				},
			},
			Required: []string{"content"},
		},
	}, handlers.AddNote)

	// 2. list_notes - unranked default listing
	server.AddTool(mcp.Tool{
		Name:        "list_notes",
		Description: "List stored notes, newest first.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"limit": map[string]interface{}{
					"type":        "number",
					"description": "Maximum number of notes to return (default: 20)",
					"default":     20,
				},
			},
		},
	}, handlers.ListNotes)

	// 3. search_notes - semantic retrieval with percentage scores
	server.AddTool(mcp.Tool{
		Name:        "search_notes",
		Description: "Find the most semantically relevant notes for a query using embedding similarity.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Search query",
				},
				"max_results": map[string]interface{}{
					"type":        "number",
					"description": "Maximum number of results (default: 10)",
					"default":     10,
				},
			},
			Required: []string{"query"},
		},
	}, handlers.SearchNotes)

	// 4. ask_question - retrieve then synthesize an answer
	server.AddTool(mcp.Tool{
		Name:        "ask_question",
		Description: "Answer a question from the stored notes. Uses the generative model when available, otherwise extracts matching sentences.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"question": map[string]interface{}{
					"type":        "string",
					"description": "Question to answer from the notes",
				},
			},
			Required: []string{"question"},
		},
	}, handlers.AskQuestion)

	// 5. delete_note - remove a note
	server.AddTool(mcp.Tool{
		Name:        "delete_note",
		Description: "Delete a stored note by id.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"id": map[string]interface{}{
					"type":        "number",
					"description": "Note id to delete",
				},
			},
			Required: []string{"id"},
		},
	}, handlers.DeleteNote)

	return handlers
}
