package web

import (
	"bytes"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"github.com/yuin/goldmark"

	"notesboard/internal/board"
	"notesboard/views/components"
	"notesboard/views/models"
	"notesboard/views/pages"
)

type Handler struct {
	sessions *Sessions
	md       goldmark.Markdown
	log      *slog.Logger
}

func NewHandler(sessions *Sessions, log *slog.Logger) *Handler {
	return &Handler{
		sessions: sessions,
		md:       goldmark.New(),
		log:      log,
	}
}

// Register mounts the page and its fragments on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.HomePage)
	mux.HandleFunc("GET /fragments/users", h.UsersFragment)
	mux.HandleFunc("POST /fragments/users", h.CreateUser)
	mux.HandleFunc("GET /fragments/notes", h.NotesFragment)
	mux.HandleFunc("POST /fragments/notes", h.CreateNote)
	mux.HandleFunc("POST /fragments/notes/filter", h.SetFilter)
	mux.HandleFunc("POST /fragments/notes/filter/clear", h.ClearFilter)
	mux.HandleFunc("GET /fragments/notes/{id}/edit", h.BeginEdit)
	mux.HandleFunc("POST /fragments/notes/edit", h.CommitEdit)
	mux.HandleFunc("POST /fragments/notes/edit/cancel", h.CancelEdit)
	mux.HandleFunc("DELETE /fragments/notes/{id}", h.DeleteNote)
}

// HomePage handles GET /
func (h *Handler) HomePage(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Get(w, r)
	sess.Ctrl.Load(r.Context())

	h.render(w, r, pages.BoardPage(h.snapshot(sess)))
}

// UsersFragment handles GET /fragments/users (HTMX partial)
func (h *Handler) UsersFragment(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	sess.Ctrl.ListUsers(r.Context())

	v := h.snapshot(sess)
	h.render(w, r, components.UserPanel(v), components.NoticeBox(v.Notice, true))
}

// CreateUser handles POST /fragments/users
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	form := models.UserFormView{
		Username: r.FormValue("username"),
		Email:    r.FormValue("email"),
	}
	sess.Screen.KeepUserForm(form)

	// Failures are already on screen as a notice; the form keeps its input.
	_ = sess.Ctrl.CreateUser(r.Context(), form.Username, form.Email)

	v := h.snapshot(sess)
	h.render(w, r, components.UserPanel(v), components.NoticeBox(v.Notice, true))
}

// NotesFragment handles GET /fragments/notes, also polled by the page
func (h *Handler) NotesFragment(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	sess.Ctrl.ListNotes(r.Context())

	v := h.snapshot(sess)
	h.render(w, r,
		components.NoteList(v.Notes, v.NotesPlaceholder, v.PollMS, false),
		components.NoticeBox(v.Notice, true),
	)
}

// CreateNote handles POST /fragments/notes
func (h *Handler) CreateNote(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	form := models.NoteFormView{
		UserID:  strings.TrimSpace(r.FormValue("user_id")),
		Title:   r.FormValue("title"),
		Content: r.FormValue("content"),
	}
	sess.Screen.KeepNoteForm(form)

	ownerID, err := strconv.ParseInt(form.UserID, 10, 64)
	if err != nil {
		sess.Ctrl.Notifier().Notify("Error: User ID must be a number", board.SeverityError)
	} else {
		_ = sess.Ctrl.CreateNote(r.Context(), ownerID, form.Title, form.Content)
	}

	v := h.snapshot(sess)
	h.render(w, r, components.NotePanel(v), components.NoticeBox(v.Notice, true))
}

// SetFilter handles POST /fragments/notes/filter. An empty field clears the filter.
func (h *Handler) SetFilter(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	raw := strings.TrimSpace(r.FormValue("user_id"))
	ownerID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		ownerID = 0
	}
	sess.Screen.SetFilterInput(formatID(ownerID))
	sess.Ctrl.SetFilter(r.Context(), ownerID)

	v := h.snapshot(sess)
	h.render(w, r, components.NotePanel(v), components.NoticeBox(v.Notice, true))
}

// ClearFilter handles POST /fragments/notes/filter/clear
func (h *Handler) ClearFilter(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	sess.Screen.SetFilterInput("")
	sess.Ctrl.ClearFilter(r.Context())

	v := h.snapshot(sess)
	h.render(w, r, components.NotePanel(v), components.NoticeBox(v.Notice, true))
}

// BeginEdit handles GET /fragments/notes/{id}/edit
func (h *Handler) BeginEdit(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "invalid note id", http.StatusBadRequest)
		return
	}
	_ = sess.Ctrl.BeginEdit(r.Context(), id)

	v := h.snapshot(sess)
	h.render(w, r, components.EditModal(v.Editor, false), components.NoticeBox(v.Notice, true))
}

// CommitEdit handles POST /fragments/notes/edit
func (h *Handler) CommitEdit(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	title := r.FormValue("title")
	content := r.FormValue("content")
	sess.Screen.KeepEditorValues(title, content)

	_ = sess.Ctrl.CommitEdit(r.Context(), title, content)

	v := h.snapshot(sess)
	h.render(w, r,
		components.EditModal(v.Editor, false),
		components.NoteList(v.Notes, v.NotesPlaceholder, v.PollMS, true),
		components.NoticeBox(v.Notice, true),
	)
}

// CancelEdit handles POST /fragments/notes/edit/cancel
func (h *Handler) CancelEdit(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	sess.Ctrl.CancelEdit()

	v := h.snapshot(sess)
	h.render(w, r, components.EditModal(v.Editor, false))
}

// DeleteNote handles DELETE /fragments/notes/{id}. The browser asks for
// confirmation and marks the request with confirmed=true.
func (h *Handler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "invalid note id", http.StatusBadRequest)
		return
	}

	confirmed := r.FormValue("confirmed") == "true"
	_ = sess.Ctrl.DeleteNote(r.Context(), id, board.ConfirmFunc(func(string) bool { return confirmed }))

	v := h.snapshot(sess)
	h.render(w, r,
		components.NoteList(v.Notes, v.NotesPlaceholder, v.PollMS, false),
		components.NoticeBox(v.Notice, true),
	)
}

// --- Helper methods ---

// session resolves the board behind a fragment request. Without a live
// session the fragment has nothing to update, so the browser is sent back
// to the page, which starts one.
func (h *Handler) session(w http.ResponseWriter, r *http.Request) (*Session, bool) {
	if sess, ok := h.sessions.Lookup(r); ok {
		return sess, true
	}
	h.log.Debug("fragment without session", "path", r.URL.Path)
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Refresh", "true")
		w.WriteHeader(http.StatusNoContent)
		return nil, false
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
	return nil, false
}

func (h *Handler) snapshot(sess *Session) models.BoardView {
	v := sess.Screen.Snapshot()
	for i := range v.Notes {
		v.Notes[i].ContentHTML = h.renderMarkdown(v.Notes[i].Content)
	}
	return v
}

// renderMarkdown converts note content to HTML. goldmark drops raw HTML
// unless configured otherwise; on error the card falls back to escaped text.
func (h *Handler) renderMarkdown(content string) string {
	var buf bytes.Buffer
	if err := h.md.Convert([]byte(content), &buf); err != nil {
		h.log.Warn("failed to render markdown", "error", err)
		return ""
	}
	return buf.String()
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, parts ...templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	for _, c := range parts {
		if err := c.Render(r.Context(), w); err != nil {
			h.log.Error("failed to render", "path", r.URL.Path, "error", err)
			return
		}
	}
}
