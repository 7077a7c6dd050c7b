package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tangkap-seru/internal/core"
	"github.com/vovakirdan/tangkap-seru/internal/instruction"
)

var flagYes bool

var resetCmd = &cobra.Command{
	Use:   "reset <timed|untimed>",
	Short: "Clear one mode's leaderboard",
	Long: `Remove every entry of the given mode. Other modes and the saved
player name are kept. Requires --yes.

Examples:
  tangkap reset untimed --yes`,
	Args: cobra.ExactArgs(1),
	RunE: runReset,
}

func init() {
	resetCmd.Flags().BoolVar(&flagYes, "yes", false, "Confirm the reset")
}

func runReset(cmd *cobra.Command, args []string) error {
	mode, err := modeArgs(args, core.ModeTimed)
	if err != nil {
		return err
	}
	if !flagYes {
		return fmt.Errorf("refusing to clear the %s leaderboard without --yes", mode)
	}

	s, err := openSession(false)
	if err != nil {
		return err
	}
	defer s.close()

	n := len(s.board.Entries(mode))
	s.board.Reset(mode)
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %s (%d entries removed)\n",
		mode.Title(), instruction.LocaleFor(s.game.Display.Locale).BoardReset, n)
	return nil
}
