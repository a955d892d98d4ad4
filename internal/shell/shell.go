package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"notesboard/internal/board"
)

// ErrExit is returned by Execute when the user asks to leave.
var ErrExit = errors.New("exit requested")

const helpText = `Commands:
  users                                  list users
  adduser <username> <email>             register a user
  notes                                  list notes (active filter applies)
  addnote <user-id> "<title>" "<content>" create a note
  filter <user-id>                       only show notes of one user
  clear                                  remove the filter
  edit <note-id>                         load a note into the editor
  save "<title>" "<content>"             save the note being edited
  cancel                                 close the editor
  rm <note-id>                           delete a note (asks first)
  help                                   show this text
  exit                                   leave the shell
`

// Shell reads commands and turns them into board actions.
type Shell struct {
	ctrl    *board.Controller
	out     io.Writer
	rl      *readline.Instance
	confirm board.Confirmer
}

// New creates a shell reading from rl. Confirmation prompts are read from
// the same instance.
func New(ctrl *board.Controller, rl *readline.Instance) *Shell {
	s := &Shell{ctrl: ctrl, out: rl.Stdout(), rl: rl}
	s.confirm = board.ConfirmFunc(s.ask)
	return s
}

// Run reads lines until EOF or exit. Ctrl-C only prints a hint.
func (s *Shell) Run(ctx context.Context) error {
	for {
		line, err := s.rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			fmt.Fprintln(s.out, "Use 'exit' or 'quit' to exit the program.")
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		args := ParseArgs(line)
		if len(args) == 0 {
			continue
		}
		if err := s.Execute(ctx, args); errors.Is(err, ErrExit) {
			return nil
		} else if err != nil {
			fmt.Fprintln(s.out, "Error:", err)
		}
	}
}

// Execute runs one command. Board failures are reported through notices,
// so only usage errors are returned.
func (s *Shell) Execute(ctx context.Context, args []string) error {
	cmd, rest := strings.ToLower(args[0]), args[1:]

	switch cmd {
	case "help", "?":
		fmt.Fprint(s.out, helpText)
	case "exit", "quit":
		return ErrExit
	case "users":
		s.ctrl.ListUsers(ctx)
	case "adduser":
		if len(rest) != 2 {
			return errors.New("usage: adduser <username> <email>")
		}
		_ = s.ctrl.CreateUser(ctx, rest[0], rest[1])
	case "notes":
		s.ctrl.ListNotes(ctx)
	case "addnote":
		if len(rest) != 3 {
			return errors.New(`usage: addnote <user-id> "<title>" "<content>"`)
		}
		owner, err := parseID(rest[0])
		if err != nil {
			return err
		}
		_ = s.ctrl.CreateNote(ctx, owner, rest[1], rest[2])
	case "filter":
		if len(rest) != 1 {
			return errors.New("usage: filter <user-id>")
		}
		owner, err := parseID(rest[0])
		if err != nil {
			return err
		}
		s.ctrl.SetFilter(ctx, owner)
	case "clear":
		s.ctrl.ClearFilter(ctx)
	case "edit":
		if len(rest) != 1 {
			return errors.New("usage: edit <note-id>")
		}
		id, err := parseID(rest[0])
		if err != nil {
			return err
		}
		_ = s.ctrl.BeginEdit(ctx, id)
	case "save":
		if len(rest) != 2 {
			return errors.New(`usage: save "<title>" "<content>"`)
		}
		_ = s.ctrl.CommitEdit(ctx, rest[0], rest[1])
	case "cancel":
		s.ctrl.CancelEdit()
	case "rm", "delete":
		if len(rest) != 1 {
			return errors.New("usage: rm <note-id>")
		}
		id, err := parseID(rest[0])
		if err != nil {
			return err
		}
		_ = s.ctrl.DeleteNote(ctx, id, s.confirm)
	default:
		return fmt.Errorf("unknown command %q, type 'help'", cmd)
	}
	return nil
}

// ask reads a y/N answer with a temporary prompt.
func (s *Shell) ask(prompt string) bool {
	old := s.rl.Config.Prompt
	s.rl.SetPrompt(prompt + " [y/N] ")
	defer s.rl.SetPrompt(old)

	answer, err := s.rl.Readline()
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%q is not a valid id", s)
	}
	return id, nil
}

// ParseArgs splits a command line on spaces, keeping double-quoted text together.
func ParseArgs(input string) []string {
	var args []string
	var current strings.Builder
	inQuotes := false
	quoted := false

	flush := func() {
		if current.Len() > 0 || quoted {
			args = append(args, current.String())
			current.Reset()
		}
		quoted = false
	}

	for _, char := range input {
		switch {
		case char == '"':
			inQuotes = !inQuotes
			quoted = true
		case (char == ' ' || char == '\t') && !inQuotes:
			flush()
		default:
			current.WriteRune(char)
		}
	}
	flush()
	return args
}
