package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"notesboard/internal/board"
	"notesboard/internal/client"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "List or register users",
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List users",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		users, err := usersAPI.List(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to load users: %w", err)
		}

		console := newConsole()
		if len(users) == 0 {
			console.ShowUsersPlaceholder(board.UsersEmpty)
			return nil
		}
		console.ShowUsers(users)
		return nil
	},
}

var usersCreateCmd = &cobra.Command{
	Use:   "create <username> <email>",
	Short: "Register a user",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := usersAPI.Create(cmd.Context(), client.CreateUserInput{
			Username: args[0],
			Email:    args[1],
		})
		if err != nil {
			return err
		}

		newConsole().ShowNotice(board.Notice{
			Message:  fmt.Sprintf("User %q registered successfully! ID: %d", user.Username, user.ID),
			Severity: board.SeveritySuccess,
		})
		return nil
	},
}

func init() {
	usersCmd.AddCommand(usersListCmd, usersCreateCmd)
	rootCmd.AddCommand(usersCmd)
}
