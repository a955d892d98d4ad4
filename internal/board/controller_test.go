package board

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notesboard/internal/client"
)

func newTestController(users *fakeUsers, notes *fakeNotes) (*Controller, *fakeView) {
	view := &fakeView{}
	ctrl := New(users, notes, view,
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithNotifyInterval(time.Hour),
	)
	return ctrl, view
}

func TestController_ListUsers(t *testing.T) {
	ctx := context.Background()

	t.Run("Empty", func(t *testing.T) {
		ctrl, view := newTestController(&fakeUsers{}, newFakeNotes())
		defer ctrl.Close()

		ctrl.ListUsers(ctx)
		assert.Equal(t, []string{"users:" + UsersLoading, "users:" + UsersEmpty}, view.eventLog())
	})

	t.Run("Rendered", func(t *testing.T) {
		users := &fakeUsers{users: []client.User{{ID: 1, Username: "alice"}, {ID: 2, Username: "bob"}}}
		ctrl, view := newTestController(users, newFakeNotes())
		defer ctrl.Close()

		ctrl.ListUsers(ctx)
		assert.Equal(t, []string{"users:" + UsersLoading, "users"}, view.eventLog())
		assert.Len(t, view.users, 2)
	})

	t.Run("Failure", func(t *testing.T) {
		ctrl, view := newTestController(&fakeUsers{listErr: errors.New("HTTP error! status: 500")}, newFakeNotes())
		defer ctrl.Close()

		ctrl.ListUsers(ctx)
		assert.Equal(t, []string{"users:" + UsersLoading, "users:" + UsersFailed}, view.eventLog())
		assert.Equal(t, Notice{
			Message:  "Failed to load users: HTTP error! status: 500",
			Severity: SeverityError,
		}, withoutTime(view.lastNotice()))
	})
}

func TestController_CreateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		ctrl, view := newTestController(&fakeUsers{}, newFakeNotes())
		defer ctrl.Close()

		require.NoError(t, ctrl.CreateUser(ctx, "alice", "alice@example.com"))
		assert.Equal(t, `User "alice" registered successfully! ID: 1`, view.lastNotice().Message)
		assert.Equal(t, SeveritySuccess, view.lastNotice().Severity)
		assert.Equal(t, []string{"reset-user-form", "users:" + UsersLoading, "users"}, view.eventLog())
	})

	t.Run("Rejected", func(t *testing.T) {
		ctrl, view := newTestController(&fakeUsers{err: errors.New("Username already exists")}, newFakeNotes())
		defer ctrl.Close()

		err := ctrl.CreateUser(ctx, "alice", "alice@example.com")
		require.Error(t, err)
		assert.Equal(t, "Error: Username already exists", view.lastNotice().Message)
		assert.Equal(t, SeverityError, view.lastNotice().Severity)
		assert.Empty(t, view.eventLog(), "form and list stay untouched")
	})
}

func TestController_Filter(t *testing.T) {
	ctx := context.Background()
	notes := newFakeNotes(
		client.Note{ID: 1, UserID: 1, Title: "a"},
		client.Note{ID: 2, UserID: 2, Title: "b"},
	)
	ctrl, view := newTestController(&fakeUsers{}, notes)
	defer ctrl.Close()

	ctrl.ListNotes(ctx)
	assert.Len(t, view.notes, 2)

	ctrl.SetFilter(ctx, 2)
	assert.Equal(t, int64(2), ctrl.Filter())
	require.Len(t, view.notes, 1)
	assert.Equal(t, "b", view.notes[0].Title)

	// Later refreshes keep the filter.
	ctrl.ListNotes(ctx)
	_, err := ctrl.notes.Create(ctx, client.CreateNoteInput{UserID: 1, Title: "c", Content: "c"})
	require.NoError(t, err)
	ctrl.ListNotes(ctx)

	ctrl.ClearFilter(ctx)
	assert.Equal(t, int64(0), ctrl.Filter())
	assert.Len(t, view.notes, 3)

	ctrl.SetFilter(ctx, -4)
	assert.Equal(t, int64(0), ctrl.Filter())

	assert.Equal(t, []int64{0, 2, 2, 2, 0, 0}, notes.owners())
}

func TestController_FilterWithNoMatches(t *testing.T) {
	ctrl, view := newTestController(&fakeUsers{}, newFakeNotes(client.Note{ID: 1, UserID: 1}))
	defer ctrl.Close()

	ctrl.SetFilter(context.Background(), 9)
	log := view.eventLog()
	assert.Equal(t, "notes:"+NotesEmpty, log[len(log)-1])
}

func TestController_CreateNote(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		notes := newFakeNotes()
		ctrl, view := newTestController(&fakeUsers{}, notes)
		defer ctrl.Close()

		require.NoError(t, ctrl.CreateNote(ctx, 3, "Groceries", "milk"))
		assert.Equal(t, `Note "Groceries" created successfully!`, view.lastNotice().Message)
		assert.Contains(t, view.eventLog(), "reset-note-form")
		require.Len(t, view.notes, 1)
		assert.Equal(t, int64(3), view.notes[0].UserID)
	})

	t.Run("Rejected", func(t *testing.T) {
		notes := newFakeNotes()
		notes.failWrite = errors.New("title is required")
		ctrl, view := newTestController(&fakeUsers{}, notes)
		defer ctrl.Close()

		require.Error(t, ctrl.CreateNote(ctx, 3, "", "milk"))
		assert.Equal(t, "Error: title is required", view.lastNotice().Message)
		assert.NotContains(t, view.eventLog(), "reset-note-form")
	})
}

func TestController_DeleteNote(t *testing.T) {
	ctx := context.Background()

	t.Run("Declined", func(t *testing.T) {
		notes := newFakeNotes(client.Note{ID: 5, UserID: 1})
		ctrl, view := newTestController(&fakeUsers{}, notes)
		defer ctrl.Close()

		var prompt string
		err := ctrl.DeleteNote(ctx, 5, ConfirmFunc(func(p string) bool {
			prompt = p
			return false
		}))
		require.NoError(t, err)
		assert.Equal(t, "Delete note ID: 5?", prompt)
		assert.Empty(t, notes.deleted)
		assert.Empty(t, view.eventLog())
	})

	t.Run("NilConfirmer", func(t *testing.T) {
		notes := newFakeNotes(client.Note{ID: 5, UserID: 1})
		ctrl, _ := newTestController(&fakeUsers{}, notes)
		defer ctrl.Close()

		require.NoError(t, ctrl.DeleteNote(ctx, 5, nil))
		assert.Empty(t, notes.deleted)
	})

	t.Run("Confirmed", func(t *testing.T) {
		notes := newFakeNotes(client.Note{ID: 5, UserID: 1})
		ctrl, view := newTestController(&fakeUsers{}, notes)
		defer ctrl.Close()

		require.NoError(t, ctrl.DeleteNote(ctx, 5, ConfirmFunc(func(string) bool { return true })))
		assert.Equal(t, []int64{5}, notes.deleted)
		assert.Equal(t, "Note deleted successfully", view.lastNotice().Message)
		log := view.eventLog()
		assert.Equal(t, "notes:"+NotesEmpty, log[len(log)-1])
	})

	t.Run("Failed", func(t *testing.T) {
		notes := newFakeNotes(client.Note{ID: 5, UserID: 1})
		notes.failWrite = errors.New("Delete failed")
		ctrl, view := newTestController(&fakeUsers{}, notes)
		defer ctrl.Close()

		require.Error(t, ctrl.DeleteNote(ctx, 5, ConfirmFunc(func(string) bool { return true })))
		assert.Equal(t, "Error: Delete failed", view.lastNotice().Message)
	})
}

func TestController_EditFlow(t *testing.T) {
	ctx := context.Background()
	notes := newFakeNotes(client.Note{ID: 7, UserID: 3, Title: "Old", Content: "Body"})
	ctrl, view := newTestController(&fakeUsers{}, notes)
	defer ctrl.Close()

	require.NoError(t, ctrl.BeginEdit(ctx, 7))
	assert.Equal(t, int64(7), ctrl.EditTarget())
	require.NotNil(t, view.editing)
	assert.Equal(t, "Old", view.editing.Title)

	require.NoError(t, ctrl.CommitEdit(ctx, "New", "Body 2"))
	assert.Equal(t, client.UpdateNoteInput{Title: "New", Content: "Body 2"}, notes.updates[7])
	assert.Equal(t, int64(0), ctrl.EditTarget())
	assert.Equal(t, "Note updated successfully!", view.lastNotice().Message)
	assert.Equal(t, []bool{true}, view.editorClear)
	require.Len(t, view.notes, 1)
	assert.Equal(t, int64(3), view.notes[0].UserID, "owner is untouched")
	assert.Equal(t, "New", view.notes[0].Title)
}

func TestController_BeginEditFailureKeepsTarget(t *testing.T) {
	ctx := context.Background()
	notes := newFakeNotes(client.Note{ID: 7, UserID: 3, Title: "Old", Content: "Body"})
	ctrl, view := newTestController(&fakeUsers{}, notes)
	defer ctrl.Close()

	require.NoError(t, ctrl.BeginEdit(ctx, 7))

	notes.failGet = errors.New("Failed to fetch note")
	require.Error(t, ctrl.BeginEdit(ctx, 8))
	assert.Equal(t, int64(7), ctrl.EditTarget())
	assert.Equal(t, "Error: Failed to fetch note", view.lastNotice().Message)
	assert.Equal(t, int64(7), view.editing.ID)
}

func TestController_CommitWithoutTarget(t *testing.T) {
	notes := newFakeNotes()
	ctrl, view := newTestController(&fakeUsers{}, notes)
	defer ctrl.Close()

	err := ctrl.CommitEdit(context.Background(), "t", "c")
	assert.ErrorIs(t, err, ErrNoEditSession)
	assert.Empty(t, notes.updates)
	assert.Equal(t, SeverityError, view.lastNotice().Severity)
}

func TestController_CommitFailureKeepsEditorOpen(t *testing.T) {
	ctx := context.Background()
	notes := newFakeNotes(client.Note{ID: 7, UserID: 3, Title: "Old", Content: "Body"})
	ctrl, view := newTestController(&fakeUsers{}, notes)
	defer ctrl.Close()

	require.NoError(t, ctrl.BeginEdit(ctx, 7))
	notes.failWrite = errors.New("Update failed")

	require.Error(t, ctrl.CommitEdit(ctx, "New", ""))
	assert.Equal(t, int64(7), ctrl.EditTarget())
	assert.Empty(t, view.editorClear)
	assert.Equal(t, "Error: Update failed", view.lastNotice().Message)
}

func TestController_CancelEdit(t *testing.T) {
	ctx := context.Background()
	notes := newFakeNotes(client.Note{ID: 7, UserID: 3, Title: "Old", Content: "Body"})
	ctrl, view := newTestController(&fakeUsers{}, notes)
	defer ctrl.Close()

	require.NoError(t, ctrl.BeginEdit(ctx, 7))
	ctrl.CancelEdit()

	assert.Equal(t, int64(0), ctrl.EditTarget())
	assert.Nil(t, view.editing)
	assert.Empty(t, notes.updates)
	assert.ErrorIs(t, ctrl.CommitEdit(ctx, "x", "y"), ErrNoEditSession)
}

func TestController_Load(t *testing.T) {
	users := &fakeUsers{users: []client.User{{ID: 1, Username: "alice"}}}
	ctrl, view := newTestController(users, newFakeNotes())
	defer ctrl.Close()

	ctrl.Load(context.Background())
	assert.Equal(t, []string{
		"users:" + UsersLoading, "users",
		"notes:" + NotesLoading, "notes:" + NotesEmpty,
	}, view.eventLog())
}

func withoutTime(n Notice) Notice {
	n.ShownAt = time.Time{}
	return n
}
