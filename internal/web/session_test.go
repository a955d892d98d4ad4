package web

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notesboard/internal/board"
	"notesboard/internal/client"
	"notesboard/views/components"
)

func newTestSessions(ttl time.Duration) *Sessions {
	factory := func(screen *Screen) *board.Controller {
		return board.New(client.NewUsersClient("http://127.0.0.1:0"), client.NewNotesClient("http://127.0.0.1:0"), screen)
	}
	return NewSessions(factory, ttl, 15*time.Second, 5*time.Second, quietLogger())
}

func TestSessions_GetSetsCookie(t *testing.T) {
	s := newTestSessions(time.Hour)

	rec := httptest.NewRecorder()
	first := s.Get(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, sessionCookie, cookies[0].Name)
	assert.Equal(t, first.ID, cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	again := s.Get(rec, req)
	assert.Same(t, first, again)
	assert.Empty(t, rec.Result().Cookies())

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookie, Value: "unknown"})
	other := s.Get(httptest.NewRecorder(), req)
	assert.NotEqual(t, first.ID, other.ID)
	assert.Equal(t, 2, s.Len())
}

func TestSessions_Sweep(t *testing.T) {
	s := newTestSessions(time.Minute)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	s.Get(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	now = now.Add(30 * time.Second)
	s.Get(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	now = now.Add(45 * time.Second)
	assert.Equal(t, 1, s.Sweep())
	assert.Equal(t, 1, s.Len())

	now = now.Add(time.Hour)
	assert.Equal(t, 1, s.Sweep())
	assert.Equal(t, 0, s.Len())
}

func TestScreen_NoticeExpiresInSnapshot(t *testing.T) {
	screen := NewScreen(15*time.Second, 5*time.Second)

	screen.ShowNotice(board.Notice{Message: "fresh", Severity: board.SeveritySuccess, ShownAt: time.Now()})
	v := screen.Snapshot()
	assert.True(t, v.Notice.Visible)
	assert.Equal(t, "success", v.Notice.Severity)
	assert.LessOrEqual(t, v.Notice.HideAfterMS, int64(5000))
	assert.Equal(t, int64(15000), v.PollMS)

	screen.ShowNotice(board.Notice{Message: "stale", Severity: board.SeverityInfo, ShownAt: time.Now().Add(-time.Minute)})
	assert.False(t, screen.Snapshot().Notice.Visible)

	screen.ShowNotice(board.Notice{Message: "fresh", ShownAt: time.Now()})
	screen.HideNotice()
	assert.False(t, screen.Snapshot().Notice.Visible)
}

func TestScreen_EditorState(t *testing.T) {
	screen := NewScreen(15*time.Second, 5*time.Second)

	screen.OpenEditor(client.Note{ID: 3, Title: "t", Content: "c"})
	assert.Equal(t, "t", screen.Snapshot().Editor.Title)

	screen.KeepEditorValues("t2", "c2")
	screen.CloseEditor(false)
	e := screen.Snapshot().Editor
	assert.False(t, e.Open)
	assert.Equal(t, "t2", e.Title)

	screen.CloseEditor(true)
	assert.Equal(t, "", screen.Snapshot().Editor.Title)
}

func TestScreen_SubSecondPollInterval(t *testing.T) {
	v := NewScreen(500*time.Millisecond, 5*time.Second).Snapshot()
	assert.Equal(t, int64(500), v.PollMS)

	var buf bytes.Buffer
	require.NoError(t, components.NoteList(v.Notes, v.NotesPlaceholder, v.PollMS, false).Render(context.Background(), &buf))
	assert.Contains(t, buf.String(), `hx-trigger="every 500ms"`)
}

func TestSessions_LookupDoesNotStart(t *testing.T) {
	s := newTestSessions(time.Hour)

	_, ok := s.Lookup(httptest.NewRequest(http.MethodGet, "/fragments/notes", nil))
	assert.False(t, ok)

	req := httptest.NewRequest(http.MethodGet, "/fragments/notes", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookie, Value: "unknown"})
	_, ok = s.Lookup(req)
	assert.False(t, ok)
	assert.Equal(t, 0, s.Len())

	rec := httptest.NewRecorder()
	started := s.Get(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	req = httptest.NewRequest(http.MethodGet, "/fragments/notes", nil)
	req.AddCookie(rec.Result().Cookies()[0])
	found, ok := s.Lookup(req)
	require.True(t, ok)
	assert.Same(t, started, found)
}
