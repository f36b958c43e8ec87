package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"math"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"dreamnotes/internal/notes"
)

type memStore struct {
	notes   []*notes.Note
	findErr error
}

func (m *memStore) Insert(ctx context.Context, n *notes.Note) (primitive.ObjectID, error) {
	n.ID = primitive.NewObjectID()
	m.notes = append(m.notes, n)
	return n.ID, nil
}

func (m *memStore) FindAll(ctx context.Context) ([]*notes.Note, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	return append([]*notes.Note{}, m.notes...), nil
}

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func callTool(t *testing.T, h func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args map[string]any) (*mcp.CallToolResult, string) {
	t.Helper()
	var req mcp.CallToolRequest
	req.Params.Arguments = args

	res, err := h(context.Background(), req)
	require.NoError(t, err)
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return res, text.Text
}

func TestNewServer(t *testing.T) {
	assert.NotNil(t, NewServer(notes.NewService(&memStore{}), discard))
}

func TestCreateAndListTools(t *testing.T) {
	store := &memStore{}
	svc := notes.NewService(store)

	res, text := callTool(t, handleCreateNote(svc, discard), map[string]any{
		"title":       "Flying dream",
		"description": "I was flying over mountains",
		"mood":        "excited",
	})
	require.False(t, res.IsError)

	var created CreateResult
	require.NoError(t, json.Unmarshal([]byte(text), &created))
	assert.Equal(t, "Note created", created.Message)
	assert.Equal(t, store.notes[0].ID.Hex(), created.ID)

	res, text = callTool(t, handleListNotes(svc, discard), nil)
	require.False(t, res.IsError)

	var listed []NoteResult
	require.NoError(t, json.Unmarshal([]byte(text), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, created.ID, listed[0].ID)
	assert.Equal(t, "excited", listed[0].Mood)
}

func TestCreateTool_MissingFields(t *testing.T) {
	store := &memStore{}

	res, text := callTool(t, handleCreateNote(notes.NewService(store), discard), map[string]any{
		"title": "Flying dream",
	})
	assert.True(t, res.IsError)
	assert.Equal(t, "Missing required fields", text)
	assert.Empty(t, store.notes)
}

func TestListTool_Failure(t *testing.T) {
	store := &memStore{findErr: errors.New("connection reset")}

	res, text := callTool(t, handleListNotes(notes.NewService(store), discard), nil)
	assert.True(t, res.IsError)
	assert.Equal(t, "Failed to fetch notes", text)
}

func TestJSONResult(t *testing.T) {
	res, err := jsonResult(map[string]string{"message": "Note created"}, discard)
	require.NoError(t, err)
	assert.False(t, res.IsError)

	res, err = jsonResult(math.NaN(), discard)
	require.NoError(t, err)
	assert.True(t, res.IsError)
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	assert.Equal(t, "Failed to encode result", text.Text)
}
