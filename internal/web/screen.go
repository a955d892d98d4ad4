package web

import (
	"strconv"
	"sync"
	"time"

	"notesboard/internal/board"
	"notesboard/internal/client"
	"notesboard/views/models"
)

// Screen is the server-side state of one browser page. The board controller
// renders into it and handlers turn snapshots of it into HTML.
type Screen struct {
	pollInterval   time.Duration
	notifyInterval time.Duration

	mu               sync.Mutex
	users            []client.User
	usersPlaceholder string
	notes            []client.Note
	notesPlaceholder string
	userForm         models.UserFormView
	noteForm         models.NoteFormView
	filterInput      string
	editor           models.EditorView
	notice           *board.Notice
}

var _ board.View = (*Screen)(nil)

// NewScreen creates an empty screen.
func NewScreen(pollInterval, notifyInterval time.Duration) *Screen {
	return &Screen{
		pollInterval:     pollInterval,
		notifyInterval:   notifyInterval,
		usersPlaceholder: board.UsersLoading,
		notesPlaceholder: board.NotesLoading,
	}
}

func (s *Screen) ShowUsers(users []client.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = users
	s.usersPlaceholder = ""
}

func (s *Screen) ShowUsersPlaceholder(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = nil
	s.usersPlaceholder = text
}

func (s *Screen) ShowNotes(notes []client.Note) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notes = notes
	s.notesPlaceholder = ""
}

func (s *Screen) ShowNotesPlaceholder(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notes = nil
	s.notesPlaceholder = text
}

func (s *Screen) ResetUserForm() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userForm = models.UserFormView{}
}

func (s *Screen) ResetNoteForm() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.noteForm = models.NoteFormView{}
}

func (s *Screen) OpenEditor(note client.Note) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editor = models.EditorView{Open: true, NoteID: note.ID, Title: note.Title, Content: note.Content}
}

func (s *Screen) CloseEditor(clear bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editor.Open = false
	if clear {
		s.editor = models.EditorView{}
	}
}

func (s *Screen) ShowNotice(n board.Notice) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notice = &n
}

func (s *Screen) HideNotice() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notice = nil
}

// KeepUserForm records what was submitted so a failed create re-renders it.
func (s *Screen) KeepUserForm(f models.UserFormView) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userForm = f
}

// KeepNoteForm records what was submitted so a failed create re-renders it.
func (s *Screen) KeepNoteForm(f models.NoteFormView) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.noteForm = f
}

// KeepEditorValues records the edited values so a failed save re-renders them.
func (s *Screen) KeepEditorValues(title, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editor.Title = title
	s.editor.Content = content
}

// SetFilterInput records the text of the filter field.
func (s *Screen) SetFilterInput(v string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filterInput = v
}

// Snapshot copies the screen into a view model.
func (s *Screen) Snapshot() models.BoardView {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := models.BoardView{
		UsersPlaceholder: s.usersPlaceholder,
		NotesPlaceholder: s.notesPlaceholder,
		UserForm:         s.userForm,
		NoteForm:         s.noteForm,
		FilterInput:      s.filterInput,
		Editor:           s.editor,
		PollMS:           s.pollInterval.Milliseconds(),
		Notice:           models.NoticeView{HideAfterMS: s.notifyInterval.Milliseconds()},
	}

	v.Users = make([]models.UserView, len(s.users))
	for i, u := range s.users {
		v.Users[i] = models.UserView{ID: u.ID, Username: u.Username, Email: u.Email, CreatedAt: u.CreatedAt}
	}

	v.Notes = make([]models.NoteView, len(s.notes))
	for i, n := range s.notes {
		v.Notes[i] = models.NoteView{
			ID:        n.ID,
			UserID:    n.UserID,
			Title:     n.Title,
			Content:   n.Content,
			CreatedAt: n.CreatedAt,
			UpdatedAt: n.UpdatedAt,
		}
	}

	// A notice re-rendered by a later fragment only stays up for what is
	// left of its interval.
	if s.notice != nil {
		remaining := s.notifyInterval - time.Since(s.notice.ShownAt)
		if remaining > 0 {
			v.Notice = models.NoticeView{
				Visible:     true,
				Message:     s.notice.Message,
				Severity:    string(s.notice.Severity),
				HideAfterMS: remaining.Milliseconds(),
			}
		}
	}
	return v
}

func formatID(id int64) string {
	if id <= 0 {
		return ""
	}
	return strconv.FormatInt(id, 10)
}
