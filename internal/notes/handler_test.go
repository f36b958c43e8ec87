package notes

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(store Store) *Handler {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewHandler(newTestService(store), log)
}

func postNote(h *Handler, body string) *httptest.ResponseRecorder {
	return postNoteAs(h, "application/json", body)
}

func postNoteAs(h *Handler, contentType, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/notes", strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	h.CreateNote(rec, req)
	return rec
}

func getNotes(h *Handler) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ListNotes(rec, httptest.NewRequest(http.MethodGet, "/notes", nil))
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["error"]
}

func TestHandler_CreateThenList(t *testing.T) {
	h := newTestHandler(&fakeStore{})

	rec := postNote(h, `{"title":"Flying dream","description":"I was flying over mountains","mood":"excited"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var created struct {
		ID      string `json:"id"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Len(t, created.ID, 24)
	assert.Equal(t, "Note created", created.Message)

	rec = getNotes(h)
	require.Equal(t, http.StatusOK, rec.Code)

	var listed []struct {
		ID          string    `json:"id"`
		Title       string    `json:"title"`
		Description string    `json:"description"`
		Mood        string    `json:"mood"`
		CreatedAt   time.Time `json:"createdAt"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, created.ID, listed[0].ID)
	assert.Equal(t, "Flying dream", listed[0].Title)
	assert.Equal(t, "I was flying over mountains", listed[0].Description)
	assert.Equal(t, "excited", listed[0].Mood)
	assert.True(t, listed[0].CreatedAt.Equal(fixedNow))
}

func TestHandler_CreateNote_BadRequests(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		status  int
		message string
	}{
		{"missing mood", `{"title":"t","description":"d"}`, http.StatusBadRequest, "Missing required fields"},
		{"empty title", `{"title":"","description":"d","mood":"m"}`, http.StatusBadRequest, "Missing required fields"},
		{"empty object", `{}`, http.StatusBadRequest, "Missing required fields"},
		{"empty body", ``, http.StatusBadRequest, "Missing required fields"},
		{"null body", `null`, http.StatusBadRequest, "Missing required fields"},
		{"malformed", `{"title":`, http.StatusBadRequest, "Invalid JSON body"},
		{"trailing garbage", `{"title":"t","description":"d","mood":"m"} trailing-garbage`, http.StatusBadRequest, "Invalid JSON body"},
		{"second value", `{"title":"t","description":"d","mood":"m"}{}`, http.StatusBadRequest, "Invalid JSON body"},
		{"wrong type", `{"title":5,"description":"d","mood":"m"}`, http.StatusBadRequest, "Invalid JSON body"},
		{"too large", `{"title":"` + strings.Repeat("a", maxBodyBytes) + `"}`, http.StatusRequestEntityTooLarge, "Request body too large"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{}
			h := newTestHandler(store)

			rec := postNote(h, tt.body)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.message, decodeError(t, rec))
			assert.Zero(t, store.len())
		})
	}
}

func TestHandler_CreateNote_ContentType(t *testing.T) {
	const body = `{"title":"t","description":"d","mood":"m"}`

	tests := []struct {
		name        string
		contentType string
		status      int
		stored      int
	}{
		{"json", "application/json", http.StatusCreated, 1},
		{"json with charset", "application/json; charset=utf-8", http.StatusCreated, 1},
		{"plain text", "text/plain", http.StatusBadRequest, 0},
		{"form", "application/x-www-form-urlencoded", http.StatusBadRequest, 0},
		{"missing", "", http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{}
			h := newTestHandler(store)

			rec := postNoteAs(h, tt.contentType, body)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.stored, store.len())
			if tt.status == http.StatusBadRequest {
				assert.Equal(t, "Missing required fields", decodeError(t, rec))
			}
		})
	}
}

func TestHandler_CreateNote_TrailingWhitespace(t *testing.T) {
	store := &fakeStore{}
	h := newTestHandler(store)

	rec := postNote(h, "{\"title\":\"t\",\"description\":\"d\",\"mood\":\"m\"}\n  \n")
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 1, store.len())
}

func TestHandler_CreateNote_StorageFailure(t *testing.T) {
	h := newTestHandler(&fakeStore{insertErr: errors.New("insert note: server selection timeout")})

	rec := postNote(h, `{"title":"t","description":"d","mood":"m"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Failed to create note", decodeError(t, rec))
	assert.NotContains(t, rec.Body.String(), "server selection")
}

func TestHandler_CreateNote_NoDatabase(t *testing.T) {
	h := newTestHandler(nil)

	rec := postNote(h, `{"title":"t","description":"d","mood":"m"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Failed to create note", decodeError(t, rec))
}

func TestHandler_ListNotes_Empty(t *testing.T) {
	h := newTestHandler(&fakeStore{})

	rec := getNotes(h)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestHandler_ListNotes_Failure(t *testing.T) {
	h := newTestHandler(&fakeStore{findErr: errors.New("find notes: connection reset")})

	rec := getNotes(h)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Failed to fetch notes", decodeError(t, rec))
	assert.NotContains(t, rec.Body.String(), "connection reset")
}

func TestHandler_ListNotes_Idempotent(t *testing.T) {
	h := newTestHandler(&fakeStore{})
	for _, title := range []string{"one", "two"} {
		require.Equal(t, http.StatusCreated, postNote(h, `{"title":"`+title+`","description":"d","mood":"m"}`).Code)
	}

	first := getNotes(h).Body.String()
	second := getNotes(h).Body.String()
	assert.Equal(t, first, second)
}

func TestHandler_HomePage(t *testing.T) {
	h := newTestHandler(&fakeStore{})
	require.Equal(t, http.StatusCreated, postNote(h, `{"title":"<b>Falling</b>","description":"down a *well*","mood":"anxious"}`).Code)

	rec := httptest.NewRecorder()
	h.HomePage(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	body := rec.Body.String()
	assert.Contains(t, body, "&lt;b&gt;Falling&lt;/b&gt;")
	assert.Contains(t, body, "<em>well</em>")
	assert.Contains(t, body, "anxious")
}

func TestHandler_HomePage_Failure(t *testing.T) {
	h := newTestHandler(&fakeStore{findErr: errors.New("boom")})

	rec := httptest.NewRecorder()
	h.HomePage(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
