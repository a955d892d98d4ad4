package board

import (
	"context"
	"time"

	"notesboard/internal/client"
)

// Placeholder texts rendered in place of a list.
const (
	UsersLoading = "Loading users..."
	UsersEmpty   = "No users registered yet."
	UsersFailed  = "Could not load users."
	NotesLoading = "Loading notes..."
	NotesEmpty   = "No notes found."
	NotesFailed  = "Could not load notes."
)

// Severity selects the style of a notice.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Notice is a transient status message.
type Notice struct {
	Message  string
	Severity Severity
	ShownAt  time.Time
}

// View is the surface a Controller renders into. Implementations must be
// safe for concurrent use: the poller and user actions render independently.
type View interface {
	ShowUsers(users []client.User)
	ShowUsersPlaceholder(text string)
	ShowNotes(notes []client.Note)
	ShowNotesPlaceholder(text string)
	ResetUserForm()
	ResetNoteForm()
	// OpenEditor loads note into the edit form and shows it.
	OpenEditor(note client.Note)
	// CloseEditor hides the edit form, emptying it when clear is set.
	CloseEditor(clear bool)
	ShowNotice(n Notice)
	HideNotice()
}

// UserService is the users backend as the board needs it.
type UserService interface {
	List(ctx context.Context) ([]client.User, error)
	Create(ctx context.Context, input client.CreateUserInput) (*client.User, error)
}

// NoteService is the notes backend as the board needs it.
type NoteService interface {
	List(ctx context.Context, ownerID int64) ([]client.Note, error)
	Get(ctx context.Context, id int64) (*client.Note, error)
	Create(ctx context.Context, input client.CreateNoteInput) (*client.Note, error)
	Update(ctx context.Context, id int64, input client.UpdateNoteInput) error
	Delete(ctx context.Context, id int64) error
}

// Confirmer asks the person at the board to approve a destructive action.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }
