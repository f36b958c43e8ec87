package notes

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"

	"dreamnotes/views/models"
	"dreamnotes/views/pages"
)

// maxBodyBytes caps JSON request bodies at 100kb.
const maxBodyBytes = 100 << 10

type Handler struct {
	svc *Service
	log *slog.Logger
}

func NewHandler(svc *Service, log *slog.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// --- REST API Handlers ---

// CreateNote handles POST /notes
func (h *Handler) CreateNote(w http.ResponseWriter, r *http.Request) {
	var input CreateNoteInput
	if status, msg, ok := h.decodeJSON(w, r, &input); !ok {
		h.jsonError(w, msg, status)
		return
	}

	res, err := h.svc.Create(r.Context(), input)
	if err != nil {
		switch KindOf(err) {
		case KindValidation:
			h.log.Warn("rejected note", "error", err)
			h.jsonError(w, "Missing required fields", http.StatusBadRequest)
		default:
			h.log.Error("failed to create note", "kind", KindOf(err).String(), "error", err)
			h.jsonError(w, "Failed to create note", http.StatusInternalServerError)
		}
		return
	}

	h.log.Debug("note created", "id", res.ID.Hex())
	h.jsonResponse(w, res, http.StatusCreated)
}

// ListNotes handles GET /notes
func (h *Handler) ListNotes(w http.ResponseWriter, r *http.Request) {
	notes, err := h.svc.List(r.Context())
	if err != nil {
		h.log.Error("failed to fetch notes", "kind", KindOf(err).String(), "error", err)
		h.jsonError(w, "Failed to fetch notes", http.StatusInternalServerError)
		return
	}

	h.jsonResponse(w, notes, http.StatusOK)
}

// --- Web Handlers ---

// HomePage handles GET /
func (h *Handler) HomePage(w http.ResponseWriter, r *http.Request) {
	notes, err := h.svc.List(r.Context())
	if err != nil {
		h.log.Error("failed to fetch notes", "kind", KindOf(err).String(), "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pages.HomePage(h.notesToViews(notes)).Render(r.Context(), w); err != nil {
		h.log.Error("failed to render home page", "error", err)
	}
}

// --- Helper methods ---

// decodeJSON reads a single JSON value into dst. An empty body, or a body
// whose Content-Type is not application/json, decodes as {}.
func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) (int, string, bool) {
	if !isJSON(r.Header.Get("Content-Type")) {
		return 0, "", true
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	err := dec.Decode(dst)
	if errors.Is(err, io.EOF) {
		return 0, "", true
	}
	if err == nil {
		// Only whitespace may follow the value
		if err = dec.Decode(&struct{}{}); errors.Is(err, io.EOF) {
			return 0, "", true
		}
		if err == nil {
			err = errors.New("unexpected data after JSON value")
		}
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge, "Request body too large", false
	}
	h.log.Debug("invalid JSON body", "error", err)
	return http.StatusBadRequest, "Invalid JSON body", false
}

func isJSON(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	return err == nil && mediaType == "application/json"
}

func (h *Handler) jsonResponse(w http.ResponseWriter, data any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *Handler) jsonError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// --- View model converters ---

func (h *Handler) notesToViews(notes []*Note) []models.NoteView {
	views := make([]models.NoteView, len(notes))
	for i, note := range notes {
		views[i] = models.NoteView{
			ID:              note.ID.Hex(),
			Title:           note.Title,
			Description:     note.Description,
			DescriptionHTML: h.svc.RenderMarkdown(note.Description),
			Mood:            note.Mood,
			CreatedAt:       note.CreatedAt,
		}
	}
	return views
}
