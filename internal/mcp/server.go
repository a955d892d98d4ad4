package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"notesboard/internal/notes"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewServer creates an MCP server with tools for the notes service
func NewServer(svc *notes.Service) *server.MCPServer {
	s := server.NewMCPServer(
		"Notes Service",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	// Tool: list_notes - List notes, optionally for one user
	s.AddTool(
		mcp.NewTool("list_notes",
			mcp.WithDescription("List notes ordered by id. Pass user_id to see the notes of a single user; omit it to list every note."),
			mcp.WithNumber("user_id",
				mcp.Description("Optional: only return notes owned by this user id"),
			),
			mcp.WithNumber("limit",
				mcp.Description("Maximum number of notes to return (default: 100, max: 100)"),
			),
			mcp.WithNumber("skip",
				mcp.Description("Number of notes to skip (default: 0)"),
			),
		),
		handleListNotes(svc),
	)

	// Tool: get_note - Get a specific note by ID
	s.AddTool(
		mcp.NewTool("get_note",
			mcp.WithDescription("Get a specific note by its numeric ID."),
			mcp.WithNumber("id",
				mcp.Required(),
				mcp.Description("The note ID"),
			),
		),
		handleGetNote(svc),
	)

	// Tool: create_note - Create a note for a user
	s.AddTool(
		mcp.NewTool("create_note",
			mcp.WithDescription("Create a note owned by a user."),
			mcp.WithNumber("user_id",
				mcp.Required(),
				mcp.Description("Owner user id (must be positive)"),
			),
			mcp.WithString("title",
				mcp.Required(),
				mcp.Description("Note title, 1-255 characters"),
			),
			mcp.WithString("content",
				mcp.Required(),
				mcp.Description("Note content"),
			),
		),
		handleCreateNote(svc),
	)

	// Tool: update_note - Change the title and/or content of a note
	s.AddTool(
		mcp.NewTool("update_note",
			mcp.WithDescription("Change the title and/or content of a note. The owner of a note cannot be changed."),
			mcp.WithNumber("id",
				mcp.Required(),
				mcp.Description("The note ID"),
			),
			mcp.WithString("title",
				mcp.Description("Optional: new title"),
			),
			mcp.WithString("content",
				mcp.Description("Optional: new content"),
			),
		),
		handleUpdateNote(svc),
	)

	// Tool: delete_note - Delete a note
	s.AddTool(
		mcp.NewTool("delete_note",
			mcp.WithDescription("Delete a note by its numeric ID. This cannot be undone."),
			mcp.WithNumber("id",
				mcp.Required(),
				mcp.Description("The note ID"),
			),
		),
		handleDeleteNote(svc),
	)

	return s
}

func handleListNotes(svc *notes.Service) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		userID := int64(req.GetInt("user_id", 0))
		if userID < 0 {
			return mcp.NewToolResultError("user_id must not be negative"), nil
		}

		limit := req.GetInt("limit", 100)
		if limit <= 0 || limit > 100 {
			limit = 100
		}

		noteList, err := svc.List(ctx, notes.ListQuery{
			UserID: userID,
			Skip:   max(req.GetInt("skip", 0), 0),
			Limit:  limit,
		})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to list notes: %v", err)), nil
		}

		return jsonResult(noteList), nil
	}
}

func handleGetNote(svc *notes.Service) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := int64(req.GetInt("id", 0))
		if id <= 0 {
			return mcp.NewToolResultError("id must be a positive integer"), nil
		}

		note, err := svc.GetByID(ctx, id)
		if err != nil {
			return toolError("get note", err), nil
		}
		return jsonResult(note), nil
	}
}

func handleCreateNote(svc *notes.Service) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		title, err := req.RequireString("title")
		if err != nil {
			return mcp.NewToolResultError("title is required"), nil
		}
		content, err := req.RequireString("content")
		if err != nil {
			return mcp.NewToolResultError("content is required"), nil
		}

		note, err := svc.Create(ctx, notes.CreateNoteInput{
			UserID:  int64(req.GetInt("user_id", 0)),
			Title:   title,
			Content: content,
		})
		if err != nil {
			return toolError("create note", err), nil
		}
		return jsonResult(note), nil
	}
}

func handleUpdateNote(svc *notes.Service) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := int64(req.GetInt("id", 0))
		if id <= 0 {
			return mcp.NewToolResultError("id must be a positive integer"), nil
		}

		var input notes.UpdateNoteInput
		args := req.GetArguments()
		if _, ok := args["title"]; ok {
			title := req.GetString("title", "")
			input.Title = &title
		}
		if _, ok := args["content"]; ok {
			content := req.GetString("content", "")
			input.Content = &content
		}

		note, err := svc.Update(ctx, id, input)
		if err != nil {
			return toolError("update note", err), nil
		}
		return jsonResult(note), nil
	}
}

func handleDeleteNote(svc *notes.Service) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := int64(req.GetInt("id", 0))
		if id <= 0 {
			return mcp.NewToolResultError("id must be a positive integer"), nil
		}

		if err := svc.Delete(ctx, id); err != nil {
			return toolError("delete note", err), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("note %d deleted", id)), nil
	}
}

// Helper functions

func jsonResult(v any) *mcp.CallToolResult {
	data, _ := json.MarshalIndent(v, "", "  ")
	return mcp.NewToolResultText(string(data))
}

func toolError(op string, err error) *mcp.CallToolResult {
	if errors.Is(err, notes.ErrNoteNotFound) {
		return mcp.NewToolResultError("note not found")
	}
	return mcp.NewToolResultError(fmt.Sprintf("failed to %s: %v", op, err))
}
