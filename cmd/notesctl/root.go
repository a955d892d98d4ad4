package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"notesboard/internal/client"
	"notesboard/internal/config"
	"notesboard/internal/shell"
)

var (
	configPath string
	plain      bool

	cfg      config.Config
	logger   *slog.Logger
	usersAPI *client.UsersClient
	notesAPI *client.NotesClient
)

var rootCmd = &cobra.Command{
	Use:   "notesctl",
	Short: "Command-line client for the notes board",
	Long: `notesctl talks to the users and notes services.
Use the subcommands for one-shot operations or "notesctl shell" for an
interactive board that refreshes the note list in the background.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		// Logs go to stderr so they do not mix with command output.
		level := slog.LevelWarn
		if cfg.LogLevel == "debug" {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

		usersAPI = client.NewUsersClient(cfg.UsersBaseURL,
			client.WithTimeout(cfg.RequestTimeout),
			client.WithLogger(logger.With("service", "users")),
		)
		notesAPI = client.NewNotesClient(cfg.NotesBaseURL,
			client.WithTimeout(cfg.RequestTimeout),
			client.WithLogger(logger.With("service", "notes")),
		)
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file")
	rootCmd.PersistentFlags().BoolVar(&plain, "plain", false, "disable markdown rendering of note content")
	rootCmd.SilenceErrors = true
}

func newConsole() *shell.Console {
	return shell.NewConsole(os.Stdout, !plain)
}
