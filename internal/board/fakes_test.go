package board

import (
	"context"
	"errors"
	"sync"

	"notesboard/internal/client"
)

type fakeView struct {
	mu          sync.Mutex
	events      []string
	users       []client.User
	notes       []client.Note
	notices     []Notice
	hides       int
	editing     *client.Note
	editorClear []bool
}

func (v *fakeView) record(e string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.events = append(v.events, e)
}

func (v *fakeView) ShowUsers(users []client.User) {
	v.mu.Lock()
	v.users = users
	v.mu.Unlock()
	v.record("users")
}

func (v *fakeView) ShowUsersPlaceholder(text string) { v.record("users:" + text) }

func (v *fakeView) ShowNotes(notes []client.Note) {
	v.mu.Lock()
	v.notes = notes
	v.mu.Unlock()
	v.record("notes")
}

func (v *fakeView) ShowNotesPlaceholder(text string) { v.record("notes:" + text) }
func (v *fakeView) ResetUserForm()                   { v.record("reset-user-form") }
func (v *fakeView) ResetNoteForm()                   { v.record("reset-note-form") }

func (v *fakeView) OpenEditor(note client.Note) {
	v.mu.Lock()
	v.editing = &note
	v.mu.Unlock()
	v.record("open-editor")
}

func (v *fakeView) CloseEditor(clear bool) {
	v.mu.Lock()
	v.editorClear = append(v.editorClear, clear)
	if clear {
		v.editing = nil
	}
	v.mu.Unlock()
	v.record("close-editor")
}

func (v *fakeView) ShowNotice(n Notice) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.notices = append(v.notices, n)
}

func (v *fakeView) HideNotice() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.hides++
}

func (v *fakeView) lastNotice() Notice {
	v.mu.Lock()
	defer v.mu.Unlock()
	if len(v.notices) == 0 {
		return Notice{}
	}
	return v.notices[len(v.notices)-1]
}

func (v *fakeView) hideCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.hides
}

func (v *fakeView) eventLog() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]string(nil), v.events...)
}

type fakeUsers struct {
	mu      sync.Mutex
	users   []client.User
	listErr error
	err     error
}

func (f *fakeUsers) List(ctx context.Context) ([]client.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]client.User(nil), f.users...), nil
}

func (f *fakeUsers) Create(ctx context.Context, input client.CreateUserInput) (*client.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	u := client.User{ID: int64(len(f.users) + 1), Username: input.Username, Email: input.Email}
	f.users = append(f.users, u)
	return &u, nil
}

type fakeNotes struct {
	mu        sync.Mutex
	notes     []client.Note
	nextID    int64
	listCalls []int64
	deleted   []int64
	updates   map[int64]client.UpdateNoteInput
	failGet   error
	failWrite error
}

func newFakeNotes(notes ...client.Note) *fakeNotes {
	f := &fakeNotes{updates: map[int64]client.UpdateNoteInput{}, nextID: 1}
	for _, n := range notes {
		f.notes = append(f.notes, n)
		if n.ID >= f.nextID {
			f.nextID = n.ID + 1
		}
	}
	return f
}

func (f *fakeNotes) List(ctx context.Context, ownerID int64) ([]client.Note, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls = append(f.listCalls, ownerID)

	out := []client.Note{}
	for _, n := range f.notes {
		if ownerID == 0 || n.UserID == ownerID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeNotes) Get(ctx context.Context, id int64) (*client.Note, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failGet != nil {
		return nil, f.failGet
	}
	for _, n := range f.notes {
		if n.ID == id {
			cp := n
			return &cp, nil
		}
	}
	return nil, errors.New("Failed to fetch note")
}

func (f *fakeNotes) Create(ctx context.Context, input client.CreateNoteInput) (*client.Note, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWrite != nil {
		return nil, f.failWrite
	}
	n := client.Note{ID: f.nextID, UserID: input.UserID, Title: input.Title, Content: input.Content}
	f.nextID++
	f.notes = append(f.notes, n)
	return &n, nil
}

func (f *fakeNotes) Update(ctx context.Context, id int64, input client.UpdateNoteInput) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWrite != nil {
		return f.failWrite
	}
	f.updates[id] = input
	for i := range f.notes {
		if f.notes[i].ID == id {
			f.notes[i].Title = input.Title
			f.notes[i].Content = input.Content
		}
	}
	return nil
}

func (f *fakeNotes) Delete(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWrite != nil {
		return f.failWrite
	}
	f.deleted = append(f.deleted, id)
	for i := range f.notes {
		if f.notes[i].ID == id {
			f.notes = append(f.notes[:i], f.notes[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakeNotes) owners() []int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int64(nil), f.listCalls...)
}

func (v *fakeView) shownNotes() []client.Note {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]client.Note(nil), v.notes...)
}
