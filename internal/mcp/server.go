package mcp

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"dreamnotes/internal/notes"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewServer creates an MCP server with tools for dream note operations
func NewServer(svc *notes.Service, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer(
		"Dream Notes",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	// Tool: create_dream_note - Record a new dream
	s.AddTool(
		mcp.NewTool("create_dream_note",
			mcp.WithDescription("Record a new dream note. All three fields are required and must be non-empty."),
			mcp.WithString("title",
				mcp.Required(),
				mcp.Description("Short title of the dream (e.g., 'Flying dream')"),
			),
			mcp.WithString("description",
				mcp.Required(),
				mcp.Description("What happened in the dream; markdown is allowed"),
			),
			mcp.WithString("mood",
				mcp.Required(),
				mcp.Description("Free-form mood tag (e.g., 'excited', 'anxious')"),
			),
		),
		handleCreateNote(svc, log),
	)

	// Tool: list_dream_notes - Every stored note
	s.AddTool(
		mcp.NewTool("list_dream_notes",
			mcp.WithDescription("List every stored dream note, unfiltered, in storage order."),
		),
		handleListNotes(svc, log),
	)

	return s
}

// NoteResult represents a note in tool responses
type NoteResult struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Mood        string    `json:"mood"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CreateResult is the create_dream_note response
type CreateResult struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

func handleCreateNote(svc *notes.Service, log *slog.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		input := notes.CreateNoteInput{
			Title:       req.GetString("title", ""),
			Description: req.GetString("description", ""),
			Mood:        req.GetString("mood", ""),
		}

		res, err := svc.Create(ctx, input)
		if notes.KindOf(err) == notes.KindValidation {
			return mcp.NewToolResultError("Missing required fields"), nil
		}
		if err != nil {
			log.Error("mcp: failed to create note", "error", err)
			return mcp.NewToolResultError("Failed to create note"), nil
		}

		return jsonResult(CreateResult{ID: res.ID.Hex(), Message: res.Message}, log)
	}
}

func handleListNotes(svc *notes.Service, log *slog.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		noteList, err := svc.List(ctx)
		if err != nil {
			log.Error("mcp: failed to fetch notes", "error", err)
			return mcp.NewToolResultError("Failed to fetch notes"), nil
		}

		return jsonResult(notesToResults(noteList), log)
	}
}

// Helper functions

func jsonResult(v any, log *slog.Logger) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Error("mcp: failed to encode result", "error", err)
		return mcp.NewToolResultError("Failed to encode result"), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func notesToResults(noteList []*notes.Note) []NoteResult {
	results := make([]NoteResult, len(noteList))
	for i, note := range noteList {
		results[i] = NoteResult{
			ID:          note.ID.Hex(),
			Title:       note.Title,
			Description: note.Description,
			Mood:        note.Mood,
			CreatedAt:   note.CreatedAt,
		}
	}
	return results
}
