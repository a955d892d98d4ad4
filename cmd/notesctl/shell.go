package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"notesboard/internal/board"
	"notesboard/internal/shell"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start an interactive board",
	Long: `Start an interactive session. The note list is refreshed in the
background every poll interval; type "help" for the commands.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		historyFile := ""
		if home, err := os.UserHomeDir(); err == nil {
			historyFile = filepath.Join(home, ".notesctl_history")
		}

		rl, err := readline.NewEx(&readline.Config{
			Prompt:          "notes> ",
			HistoryFile:     historyFile,
			InterruptPrompt: "^C",
			EOFPrompt:       "exit",
		})
		if err != nil {
			return fmt.Errorf("failed to start readline: %w", err)
		}
		defer rl.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM)
		defer stop()

		console := shell.NewConsole(rl.Stdout(), !plain)
		ctrl := board.New(usersAPI, notesAPI, console,
			board.WithLogger(logger),
			board.WithNotifyInterval(cfg.NotifyTimeout),
		)
		defer ctrl.Close()

		fmt.Fprintln(rl.Stdout(), "Notes board. Type 'help' for commands.")
		ctrl.Load(ctx)

		pollCtx, cancelPoll := context.WithCancel(ctx)
		defer cancelPoll()
		go board.NewPoller(ctrl, cfg.PollInterval).Run(pollCtx)

		return shell.New(ctrl, rl).Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(shellCmd)
}
