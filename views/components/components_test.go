package components

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notesboard/views/models"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

func TestNoteCard_EscapesText(t *testing.T) {
	updated := time.Date(2024, 2, 3, 4, 5, 6, 0, time.UTC)
	html := render(t, NoteCard(models.NoteView{
		ID:        9,
		UserID:    2,
		Title:     `<script>alert("x")</script>`,
		Content:   "plain <b>text</b>",
		UpdatedAt: &updated,
	}))

	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "&lt;script&gt;")
	assert.Contains(t, html, "plain &lt;b&gt;text&lt;/b&gt;")
	assert.Contains(t, html, "User ID: 2 | Note ID: 9")
	assert.Contains(t, html, `hx-delete="/fragments/notes/9"`)
	assert.Contains(t, html, `hx-get="/fragments/notes/9/edit"`)
	assert.Contains(t, html, "Updated: ")
}

func TestNoteList_PlaceholderAndPolling(t *testing.T) {
	html := render(t, NoteList(nil, "No notes found.", 15000, true))
	assert.Contains(t, html, "<p>No notes found.</p>")
	assert.Contains(t, html, `hx-trigger="every 15000ms"`)
	assert.Contains(t, html, `hx-swap-oob="true"`)

	html = render(t, NoteList(nil, "", 750, false))
	assert.Contains(t, html, `hx-trigger="every 750ms"`)
	assert.NotContains(t, html, "hx-swap-oob")
}

func TestUserList(t *testing.T) {
	created := time.Date(2024, 2, 3, 4, 5, 6, 0, time.UTC)
	html := render(t, UserList([]models.UserView{{ID: 1, Username: "alice", Email: "a@b.co", CreatedAt: created}}, "No users found."))
	assert.Contains(t, html, "<h3>alice (ID: 1)</h3>")
	assert.Contains(t, html, "<p>Email: a@b.co</p>")
	assert.NotContains(t, html, "No users found.")

	html = render(t, UserList(nil, "No users found."))
	assert.Contains(t, html, "<p>No users found.</p>")
}

func TestNoticeBox(t *testing.T) {
	html := render(t, NoticeBox(models.NoticeView{Visible: true, Message: "Saved", Severity: "success", HideAfterMS: 4200}, false))
	assert.Contains(t, html, `class="message-box success"`)
	assert.Contains(t, html, `data-hide-after="4200"`)
	assert.NotContains(t, html, "display: none")

	html = render(t, NoticeBox(models.NoticeView{}, true))
	assert.Contains(t, html, `style="display: none"`)
}

func TestEditModal(t *testing.T) {
	html := render(t, EditModal(models.EditorView{Open: true, NoteID: 4, Title: `a "quoted" title`, Content: "body"}, false))
	assert.Contains(t, html, `value="a &#34;quoted&#34; title"`)
	assert.Contains(t, html, ">body</textarea>")
	assert.NotContains(t, html, "display: none")
}
