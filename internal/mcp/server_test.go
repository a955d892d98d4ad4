package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notesboard/internal/notes"
)

func callTool(t *testing.T, h func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args map[string]any) *mcp.CallToolResult {
	t.Helper()
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	res, err := h(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, res)
	return res
}

func textOf(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	switch c := res.Content[0].(type) {
	case mcp.TextContent:
		return c.Text
	case *mcp.TextContent:
		return c.Text
	}
	t.Fatalf("unexpected content type %T", res.Content[0])
	return ""
}

func TestTools_CreateUpdateDelete(t *testing.T) {
	svc := notes.NewService(notes.NewMemoryStore())

	res := callTool(t, handleCreateNote(svc), map[string]any{
		"user_id": float64(4),
		"title":   "Plan",
		"content": "Write tests",
	})
	require.False(t, res.IsError, textOf(t, res))

	var created notes.Note
	require.NoError(t, json.Unmarshal([]byte(textOf(t, res)), &created))
	assert.Equal(t, int64(4), created.UserID)

	res = callTool(t, handleUpdateNote(svc), map[string]any{
		"id":      float64(created.ID),
		"content": "Write more tests",
	})
	require.False(t, res.IsError, textOf(t, res))

	var updated notes.Note
	require.NoError(t, json.Unmarshal([]byte(textOf(t, res)), &updated))
	assert.Equal(t, "Plan", updated.Title)
	assert.Equal(t, "Write more tests", updated.Content)

	res = callTool(t, handleListNotes(svc), map[string]any{"user_id": float64(4)})
	var listed []notes.Note
	require.NoError(t, json.Unmarshal([]byte(textOf(t, res)), &listed))
	assert.Len(t, listed, 1)

	res = callTool(t, handleDeleteNote(svc), map[string]any{"id": float64(created.ID)})
	assert.False(t, res.IsError)

	res = callTool(t, handleGetNote(svc), map[string]any{"id": float64(created.ID)})
	assert.True(t, res.IsError)
	assert.Equal(t, "note not found", textOf(t, res))
}

func TestTools_RejectBadInput(t *testing.T) {
	svc := notes.NewService(notes.NewMemoryStore())

	res := callTool(t, handleGetNote(svc), map[string]any{})
	assert.True(t, res.IsError)

	res = callTool(t, handleCreateNote(svc), map[string]any{"user_id": float64(1), "content": "x"})
	assert.True(t, res.IsError)
	assert.Equal(t, "title is required", textOf(t, res))

	res = callTool(t, handleCreateNote(svc), map[string]any{"user_id": float64(0), "title": "x", "content": "y"})
	assert.True(t, res.IsError)
	_, err := svc.Create(context.Background(), notes.CreateNoteInput{UserID: 2, Title: "kept", Content: "c"})
	require.NoError(t, err)
	res = callTool(t, handleListNotes(svc), map[string]any{"user_id": float64(-1)})
	assert.True(t, res.IsError)
	assert.Equal(t, "user_id must not be negative", textOf(t, res))
	assert.NotContains(t, textOf(t, res), "kept")
}

func TestNewServer_ListsTools(t *testing.T) {
	s := NewServer(notes.NewService(notes.NewMemoryStore()))

	resp := s.HandleMessage(context.Background(), json.RawMessage(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`))
	data, err := json.Marshal(resp)
	require.NoError(t, err)

	for _, name := range []string{"list_notes", "get_note", "create_note", "update_note", "delete_note"} {
		assert.Contains(t, string(data), `"`+name+`"`)
	}
}
