package notes

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"notesboard/internal/httpapi"
)

const maxPageSize = 100

type Handler struct {
	svc *Service
	log *slog.Logger
}

func NewHandler(svc *Service, log *slog.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// Register mounts the notes API on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.Root)
	mux.HandleFunc("GET /health", h.Health)
	mux.HandleFunc("POST /notes/{$}", h.CreateNote)
	mux.HandleFunc("GET /notes/{$}", h.ListNotes)
	mux.HandleFunc("GET /notes/{id}", h.GetNote)
	mux.HandleFunc("PUT /notes/{id}", h.UpdateNote)
	mux.HandleFunc("DELETE /notes/{id}", h.DeleteNote)
}

// Root handles GET /
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	httpapi.JSON(w, map[string]string{"message": "Welcome to the Notes Service!"}, http.StatusOK)
}

// Health handles GET /health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	httpapi.JSON(w, map[string]string{"status": "ok", "service": "notes-service"}, http.StatusOK)
}

// CreateNote handles POST /notes/
func (h *Handler) CreateNote(w http.ResponseWriter, r *http.Request) {
	var input CreateNoteInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httpapi.Invalid(w, []httpapi.Issue{{Loc: []string{"body"}, Msg: "invalid JSON body"}})
		return
	}

	h.log.Info("creating note", "title", input.Title, "user_id", input.UserID)
	note, err := h.svc.Create(r.Context(), input)
	if h.writeFailure(w, err, "Could not create note.") {
		return
	}

	h.log.Info("note created", "id", note.ID, "title", note.Title)
	httpapi.JSON(w, note, http.StatusCreated)
}

// ListNotes handles GET /notes/?user_id=N. A missing or zero user_id lists
// the notes of every owner.
func (h *Handler) ListNotes(w http.ResponseWriter, r *http.Request) {
	page, issues := httpapi.ParsePage(r, maxPageSize)

	var userID int64
	if s := r.URL.Query().Get("user_id"); s != "" {
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil || v < 0 {
			issues = append(issues, httpapi.Issue{Loc: []string{"query", "user_id"}, Msg: "user_id must be an integer >= 0"})
		}
		userID = v
	}
	if len(issues) > 0 {
		httpapi.Invalid(w, issues)
		return
	}

	notes, err := h.svc.List(r.Context(), ListQuery{UserID: userID, Skip: page.Skip, Limit: page.Limit})
	if err != nil {
		h.log.Error("failed to list notes", "error", err)
		httpapi.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	h.log.Info("listed notes", "user_id", userID, "count", len(notes))
	httpapi.JSON(w, notes, http.StatusOK)
}

// GetNote handles GET /notes/{id}
func (h *Handler) GetNote(w http.ResponseWriter, r *http.Request) {
	id, ok := h.noteID(w, r)
	if !ok {
		return
	}

	note, err := h.svc.GetByID(r.Context(), id)
	if h.writeFailure(w, err, "internal error") {
		return
	}

	httpapi.JSON(w, note, http.StatusOK)
}

// UpdateNote handles PUT /notes/{id}
func (h *Handler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	id, ok := h.noteID(w, r)
	if !ok {
		return
	}

	var input UpdateNoteInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httpapi.Invalid(w, []httpapi.Issue{{Loc: []string{"body"}, Msg: "invalid JSON body"}})
		return
	}

	note, err := h.svc.Update(r.Context(), id, input)
	if h.writeFailure(w, err, "Could not update note.") {
		return
	}

	h.log.Info("note updated", "id", id)
	httpapi.JSON(w, note, http.StatusOK)
}

// DeleteNote handles DELETE /notes/{id}
func (h *Handler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	id, ok := h.noteID(w, r)
	if !ok {
		return
	}

	err := h.svc.Delete(r.Context(), id)
	if h.writeFailure(w, err, "Could not delete note.") {
		return
	}

	h.log.Info("note deleted", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

// --- Helper methods ---

func (h *Handler) noteID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, ok := httpapi.PathID(r)
	if !ok {
		httpapi.Invalid(w, []httpapi.Issue{{Loc: []string{"path", "note_id"}, Msg: "note_id must be a positive integer"}})
	}
	return id, ok
}

// writeFailure maps err to a response and reports whether it wrote one.
func (h *Handler) writeFailure(w http.ResponseWriter, err error, internal string) bool {
	if err == nil {
		return false
	}

	var verrs validator.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		httpapi.Invalid(w, httpapi.ValidationIssues(err))
	case errors.Is(err, ErrNoteNotFound):
		h.log.Warn("note not found", "error", err)
		httpapi.Error(w, "Note not found", http.StatusNotFound)
	default:
		h.log.Error("note operation failed", "error", err)
		httpapi.Error(w, internal, http.StatusInternalServerError)
	}
	return true
}
