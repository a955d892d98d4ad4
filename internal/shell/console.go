package shell

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"

	"notesboard/internal/board"
	"notesboard/internal/client"
)

const timeLayout = "2006-01-02 15:04"

var (
	faint = color.New(color.Faint).SprintFunc()
	bold  = color.New(color.Bold).SprintFunc()
	cyan  = color.New(color.FgCyan).SprintFunc()

	severityColors = map[board.Severity]*color.Color{
		board.SeverityInfo:    color.New(color.FgBlue),
		board.SeveritySuccess: color.New(color.FgGreen),
		board.SeverityError:   color.New(color.FgRed, color.Bold),
	}
)

// Console renders the board as text.
type Console struct {
	mu  sync.Mutex
	out io.Writer
	md  *glamour.TermRenderer

	editing *client.Note
}

var _ board.View = (*Console)(nil)

// NewConsole writes to out. Note content goes through glamour when a
// renderer can be built, and is printed raw otherwise.
func NewConsole(out io.Writer, markdown bool) *Console {
	c := &Console{out: out}
	if markdown {
		md, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(80),
		)
		if err == nil {
			c.md = md
		}
	}
	return c
}

func (c *Console) printf(format string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, format, args...)
}

func (c *Console) ShowUsers(users []client.User) {
	var sb strings.Builder
	sb.WriteString(bold("Users") + "\n")
	for _, u := range users {
		sb.WriteString(fmt.Sprintf("  %s %s\n", bold(u.Username), faint(fmt.Sprintf("(ID: %d)", u.ID))))
		sb.WriteString(fmt.Sprintf("      Email: %s\n", u.Email))
		sb.WriteString(fmt.Sprintf("      %s\n", faint("Created: "+u.CreatedAt.Local().Format(timeLayout))))
	}
	c.printf("%s", sb.String())
}

// ShowUsersPlaceholder skips the loading text; a terminal shows the
// result line soon enough.
func (c *Console) ShowUsersPlaceholder(text string) {
	if text == board.UsersLoading {
		return
	}
	c.printf("%s %s\n", bold("Users"), faint(text))
}

func (c *Console) ShowNotes(notes []client.Note) {
	var sb strings.Builder
	sb.WriteString(bold("Notes") + "\n")
	for _, n := range notes {
		sb.WriteString(fmt.Sprintf("  %s\n", bold(n.Title)))
		sb.WriteString(fmt.Sprintf("      %s\n", cyan(fmt.Sprintf("User ID: %d | Note ID: %d", n.UserID, n.ID))))
		sb.WriteString(indent(c.renderContent(n.Content), "      "))
		sb.WriteString(fmt.Sprintf("      %s\n", faint("Created: "+n.CreatedAt.Local().Format(timeLayout))))
		if n.UpdatedAt != nil {
			sb.WriteString(fmt.Sprintf("      %s\n", faint("Updated: "+n.UpdatedAt.Local().Format(timeLayout))))
		}
	}
	c.printf("%s", sb.String())
}

func (c *Console) ShowNotesPlaceholder(text string) {
	if text == board.NotesLoading {
		return
	}
	c.printf("%s %s\n", bold("Notes"), faint(text))
}

func (c *Console) ResetUserForm() {}

func (c *Console) ResetNoteForm() {}

func (c *Console) OpenEditor(note client.Note) {
	c.mu.Lock()
	c.editing = &note
	c.mu.Unlock()

	c.printf("%s %d\n  Title:   %s\n  Content: %s\n%s\n",
		bold("Editing note"), note.ID, note.Title, note.Content,
		faint(`Use: save "<title>" "<content>"  or  cancel`))
}

func (c *Console) CloseEditor(clear bool) {
	c.mu.Lock()
	wasOpen := c.editing != nil
	if clear {
		c.editing = nil
	}
	c.mu.Unlock()

	if wasOpen {
		c.printf("%s\n", faint("Editor closed."))
	}
}

// Editing returns the note loaded in the editor, if any.
func (c *Console) Editing() (client.Note, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.editing == nil {
		return client.Note{}, false
	}
	return *c.editing, true
}

func (c *Console) ShowNotice(n board.Notice) {
	col, ok := severityColors[n.Severity]
	if !ok {
		col = severityColors[board.SeverityInfo]
	}
	c.printf("%s\n", col.Sprint(n.Message))
}

// HideNotice does nothing: printed lines stay in the scrollback.
func (c *Console) HideNotice() {}

func (c *Console) renderContent(content string) string {
	if c.md == nil {
		return content + "\n"
	}
	out, err := c.md.Render(content)
	if err != nil {
		return content + "\n"
	}
	return strings.TrimLeft(out, "\n")
}

func indent(s, prefix string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n") + "\n"
}
