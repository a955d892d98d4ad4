package models

import "time"

// UserView represents a user card for template rendering
type UserView struct {
	ID        int64
	Username  string
	Email     string
	CreatedAt time.Time
}

// NoteView represents a note card for template rendering
type NoteView struct {
	ID          int64
	UserID      int64
	Title       string
	Content     string
	ContentHTML string // markdown rendered by the handler
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// NoticeView is the message box
type NoticeView struct {
	Visible  bool
	Message  string
	Severity string
	// HideAfterMS is how long the box stays up in the browser.
	HideAfterMS int64
}

// UserFormView holds what the user form currently shows
type UserFormView struct {
	Username string
	Email    string
}

// NoteFormView holds what the note form currently shows
type NoteFormView struct {
	UserID  string
	Title   string
	Content string
}

// EditorView is the edit modal
type EditorView struct {
	Open    bool
	NoteID  int64
	Title   string
	Content string
}

// BoardView is everything the page renders for one session
type BoardView struct {
	Users            []UserView
	UsersPlaceholder string
	Notes            []NoteView
	NotesPlaceholder string
	UserForm         UserFormView
	NoteForm         NoteFormView
	FilterInput      string
	Editor           EditorView
	Notice           NoticeView
	PollMS           int64
}
