package board

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"notesboard/internal/client"
)

// ErrNoEditSession is returned when an edit is committed with no note loaded.
var ErrNoEditSession = errors.New("no note is being edited")

// Option configures a Controller.
type Option func(*options)

type options struct {
	logger         *slog.Logger
	notifyInterval time.Duration
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(log *slog.Logger) Option {
	return func(o *options) { o.logger = log }
}

// WithNotifyInterval sets how long notices stay visible.
func WithNotifyInterval(d time.Duration) Option {
	return func(o *options) { o.notifyInterval = d }
}

// Controller drives the user panel and the note panel of one board.
//
// The owner filter and the edit target are the only state it keeps; lists are
// never cached and each fetch replaces what the view shows. The lock guards
// that state only and is never held across a request, so overlapping
// operations render in whatever order they finish.
type Controller struct {
	users  UserService
	notes  NoteService
	view   View
	notify *Notifier
	log    *slog.Logger

	mu         sync.Mutex
	filter     int64
	editTarget int64
}

// New creates a Controller rendering into view.
func New(users UserService, notes NoteService, view View, opts ...Option) *Controller {
	o := &options{
		logger:         slog.Default(),
		notifyInterval: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(o)
	}

	return &Controller{
		users:  users,
		notes:  notes,
		view:   view,
		notify: NewNotifier(view, o.notifyInterval),
		log:    o.logger,
	}
}

// Notifier returns the notification component shared by both panels.
func (c *Controller) Notifier() *Notifier { return c.notify }

// Filter returns the active owner filter, 0 when none is set.
func (c *Controller) Filter() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filter
}

// EditTarget returns the id of the note loaded in the editor, 0 when none.
func (c *Controller) EditTarget() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.editTarget
}

// Load renders both panels, as on first page load.
func (c *Controller) Load(ctx context.Context) {
	c.ListUsers(ctx)
	c.ListNotes(ctx)
}

// Close stops the pending notice timer.
func (c *Controller) Close() {
	c.notify.Stop()
}

// --- User panel ---

// ListUsers fetches every user and renders the list.
func (c *Controller) ListUsers(ctx context.Context) {
	c.view.ShowUsersPlaceholder(UsersLoading)

	users, err := c.users.List(ctx)
	if err != nil {
		c.log.Error("failed to load users", "error", err)
		c.notify.Notify(fmt.Sprintf("Failed to load users: %s", err), SeverityError)
		c.view.ShowUsersPlaceholder(UsersFailed)
		return
	}

	if len(users) == 0 {
		c.view.ShowUsersPlaceholder(UsersEmpty)
		return
	}
	c.view.ShowUsers(users)
}

// CreateUser registers a user. On failure the form is left as it is so the
// input can be corrected, and the error is returned.
func (c *Controller) CreateUser(ctx context.Context, username, email string) error {
	user, err := c.users.Create(ctx, client.CreateUserInput{Username: username, Email: email})
	if err != nil {
		c.log.Error("failed to register user", "username", username, "error", err)
		c.notify.Notify(fmt.Sprintf("Error: %s", err), SeverityError)
		return err
	}

	c.notify.Notify(fmt.Sprintf("User %q registered successfully! ID: %d", user.Username, user.ID), SeveritySuccess)
	c.view.ResetUserForm()
	c.ListUsers(ctx)
	return nil
}

// --- Note panel ---

// ListNotes fetches notes under the active filter and renders them.
func (c *Controller) ListNotes(ctx context.Context) {
	c.listNotes(ctx, c.Filter())
}

func (c *Controller) listNotes(ctx context.Context, ownerID int64) {
	c.view.ShowNotesPlaceholder(NotesLoading)

	notes, err := c.notes.List(ctx, ownerID)
	if err != nil {
		c.log.Error("failed to load notes", "user_id", ownerID, "error", err)
		c.notify.Notify(fmt.Sprintf("Failed to load notes: %s", err), SeverityError)
		c.view.ShowNotesPlaceholder(NotesFailed)
		return
	}

	if len(notes) == 0 {
		c.view.ShowNotesPlaceholder(NotesEmpty)
		return
	}
	c.view.ShowNotes(notes)
}

// CreateNote adds a note and re-lists under the active filter.
func (c *Controller) CreateNote(ctx context.Context, ownerID int64, title, content string) error {
	note, err := c.notes.Create(ctx, client.CreateNoteInput{UserID: ownerID, Title: title, Content: content})
	if err != nil {
		c.log.Error("failed to create note", "user_id", ownerID, "error", err)
		c.notify.Notify(fmt.Sprintf("Error: %s", err), SeverityError)
		return err
	}

	c.notify.Notify(fmt.Sprintf("Note %q created successfully!", note.Title), SeveritySuccess)
	c.view.ResetNoteForm()
	c.ListNotes(ctx)
	return nil
}

// DeleteNote removes a note after confirm approves it. A declined
// confirmation sends nothing and returns nil.
func (c *Controller) DeleteNote(ctx context.Context, id int64, confirm Confirmer) error {
	if confirm == nil || !confirm.Confirm(fmt.Sprintf("Delete note ID: %d?", id)) {
		return nil
	}

	if err := c.notes.Delete(ctx, id); err != nil {
		c.log.Error("failed to delete note", "id", id, "error", err)
		c.notify.Notify(fmt.Sprintf("Error: %s", err), SeverityError)
		return err
	}

	c.notify.Notify("Note deleted successfully", SeveritySuccess)
	c.ListNotes(ctx)
	return nil
}

// BeginEdit loads a note into the editor and makes it the edit target.
// On failure the editor stays closed and the previous target is kept.
func (c *Controller) BeginEdit(ctx context.Context, id int64) error {
	note, err := c.notes.Get(ctx, id)
	if err != nil {
		c.log.Error("failed to load note for edit", "id", id, "error", err)
		c.notify.Notify(fmt.Sprintf("Error: %s", err), SeverityError)
		return err
	}

	c.mu.Lock()
	c.editTarget = note.ID
	c.mu.Unlock()

	c.view.OpenEditor(*note)
	return nil
}

// CommitEdit saves title and content to the edit target. The owner of a
// note is never changed here. On failure the editor stays open.
func (c *Controller) CommitEdit(ctx context.Context, title, content string) error {
	id := c.EditTarget()
	if id == 0 {
		c.notify.Notify(fmt.Sprintf("Error: %s", ErrNoEditSession), SeverityError)
		return ErrNoEditSession
	}

	err := c.notes.Update(ctx, id, client.UpdateNoteInput{Title: title, Content: content})
	if err != nil {
		c.log.Error("failed to update note", "id", id, "error", err)
		c.notify.Notify(fmt.Sprintf("Error: %s", err), SeverityError)
		return err
	}

	c.mu.Lock()
	if c.editTarget == id {
		c.editTarget = 0
	}
	c.mu.Unlock()

	c.notify.Notify("Note updated successfully!", SeveritySuccess)
	c.view.CloseEditor(true)
	c.ListNotes(ctx)
	return nil
}

// CancelEdit closes the editor without sending anything and forgets the
// loaded note.
func (c *Controller) CancelEdit() {
	c.mu.Lock()
	c.editTarget = 0
	c.mu.Unlock()

	c.view.CloseEditor(true)
}

// SetFilter restricts the note list to ownerID and re-lists. A non-positive
// id clears the filter.
func (c *Controller) SetFilter(ctx context.Context, ownerID int64) {
	if ownerID < 0 {
		ownerID = 0
	}

	c.mu.Lock()
	c.filter = ownerID
	c.mu.Unlock()

	c.listNotes(ctx, ownerID)
}

// ClearFilter drops the owner filter and re-lists every note.
func (c *Controller) ClearFilter(ctx context.Context) {
	c.SetFilter(ctx, 0)
}
