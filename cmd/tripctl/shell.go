package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/pkordes/tripcanvas/internal/shell"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Plan trips interactively",
	Long:  "Open a readline prompt over the planner. Type 'help' for commands; ids may be shortened to a unique prefix.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		svc, closeStore, err := openPlanner(ctx, cmd)
		if err != nil {
			return err
		}
		defer closeStore()

		history, _ := cmd.Flags().GetString("history")
		rl, err := readline.NewEx(&readline.Config{
			Prompt:          "> ",
			HistoryFile:     history,
			InterruptPrompt: "^C",
			EOFPrompt:       "exit",
		})
		if err != nil {
			return fmt.Errorf("failed to initialize readline: %w", err)
		}
		defer rl.Close()

		out := rl.Stdout()
		fmt.Fprintln(out, "Welcome to TripCanvas! Use 'help' for the list of commands.")
		return shell.New(svc, out).Run(ctx, rl)
	},
}

func init() {
	history := ""
	if home, err := os.UserHomeDir(); err == nil {
		history = filepath.Join(home, ".tripctl_history")
	}
	shellCmd.Flags().String("history", history, "readline history file (empty disables history)")
	rootCmd.AddCommand(shellCmd)
}
