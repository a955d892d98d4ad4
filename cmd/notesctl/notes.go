package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"notesboard/internal/board"
	"notesboard/internal/client"
)

var notesCmd = &cobra.Command{
	Use:   "notes",
	Short: "List, create, edit and delete notes",
}

var notesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes",
	Long:  `List all notes, or only those of one user with --user.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		owner, _ := cmd.Flags().GetInt64("user")
		if owner < 0 {
			owner = 0
		}

		notes, err := notesAPI.List(cmd.Context(), owner)
		if err != nil {
			return fmt.Errorf("failed to load notes: %w", err)
		}

		console := newConsole()
		if len(notes) == 0 {
			console.ShowNotesPlaceholder(board.NotesEmpty)
			return nil
		}
		console.ShowNotes(notes)
		return nil
	},
}

var notesShowCmd = &cobra.Command{
	Use:   "show <note-id>",
	Short: "Show a single note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		note, err := notesAPI.Get(cmd.Context(), id)
		if err != nil {
			return err
		}
		newConsole().ShowNotes([]client.Note{*note})
		return nil
	},
}

var notesCreateCmd = &cobra.Command{
	Use:   "create <user-id> <title> <content>",
	Short: "Create a note",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		owner, err := parseID(args[0])
		if err != nil {
			return fmt.Errorf("User ID must be a number")
		}
		note, err := notesAPI.Create(cmd.Context(), client.CreateNoteInput{
			UserID:  owner,
			Title:   args[1],
			Content: args[2],
		})
		if err != nil {
			return err
		}

		newConsole().ShowNotice(board.Notice{
			Message:  fmt.Sprintf("Note %q created successfully!", note.Title),
			Severity: board.SeveritySuccess,
		})
		return nil
	},
}

var notesEditCmd = &cobra.Command{
	Use:   "edit <note-id>",
	Short: "Change the title and/or content of a note",
	Long:  `Fields that are not given keep their current value.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		current, err := notesAPI.Get(cmd.Context(), id)
		if err != nil {
			return err
		}

		input := client.UpdateNoteInput{Title: current.Title, Content: current.Content}
		if cmd.Flags().Changed("title") {
			input.Title, _ = cmd.Flags().GetString("title")
		}
		if cmd.Flags().Changed("content") {
			input.Content, _ = cmd.Flags().GetString("content")
		}

		if err := notesAPI.Update(cmd.Context(), id, input); err != nil {
			return err
		}

		newConsole().ShowNotice(board.Notice{Message: "Note updated successfully!", Severity: board.SeveritySuccess})
		return nil
	},
}

var notesRmCmd = &cobra.Command{
	Use:   "rm <note-id>",
	Short: "Delete a note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		force, _ := cmd.Flags().GetBool("force")

		if !force {
			fmt.Printf("Delete note ID: %d? [y/N] ", id)
			reader := bufio.NewReader(os.Stdin)
			response, _ := reader.ReadString('\n')
			response = strings.TrimSpace(strings.ToLower(response))
			if response != "y" && response != "yes" {
				fmt.Println("Cancelled.")
				return nil
			}
		}

		if err := notesAPI.Delete(cmd.Context(), id); err != nil {
			return err
		}

		newConsole().ShowNotice(board.Notice{Message: "Note deleted successfully", Severity: board.SeveritySuccess})
		return nil
	},
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%q is not a valid id", s)
	}
	return id, nil
}

func init() {
	notesListCmd.Flags().Int64P("user", "u", 0, "only show notes of this user ID")
	notesEditCmd.Flags().StringP("title", "t", "", "new title")
	notesEditCmd.Flags().StringP("content", "m", "", "new content")
	notesRmCmd.Flags().BoolP("force", "f", false, "skip confirmation")

	notesCmd.AddCommand(notesListCmd, notesShowCmd, notesCreateCmd, notesEditCmd, notesRmCmd)
	rootCmd.AddCommand(notesCmd)
}
