package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tangkap-seru/internal/core"
	"github.com/vovakirdan/tangkap-seru/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play [timed|untimed]",
	Short: "Play a mode directly",
	Long: `Start a round in the given mode (default: timed).

Controls:
  Click          - Catch an object
  Left/Right     - Select an object
  Space          - Catch the selected object
  N/Enter        - Next level (after a level is complete)
  E/Esc          - End the round
  R              - Play again (after the round is over)
  Ctrl+S         - Save a screenshot
  Q/Ctrl+C       - Quit

Examples:
  tangkap play
  tangkap play untimed
  tangkap play timed --config ./my-rules.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	mode, err := modeArgs(args, core.ModeTimed)
	if err != nil {
		return err
	}

	s, err := openSession(true)
	if err != nil {
		return err
	}
	defer s.close()

	width, height := terminalSize()
	return tui.Run(tui.Options{
		Runtime: s.runtime(mode, width, height),
		Game:    s.game,
		Board:   s.board,
		Logger:  s.logger,
	})
}

// runMenu loops between the mode menu, the scoreboard and play sessions.
func runMenu(_ *cobra.Command, _ []string) error {
	s, err := openSession(true)
	if err != nil {
		return err
	}
	defer s.close()

	width, height := terminalSize()
	cfg := s.runtime(core.ModeTimed, width, height)

	for {
		menuResult, err := tui.RunMenu(s.board, cfg)
		if err != nil {
			return err
		}
		cfg = menuResult.Config

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsScoreboard {
			goBack, err := tui.RunScoreboard(s.board, cfg)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
			if goBack {
				continue
			}
			return nil
		}

		// New seed for every round unless one was pinned
		round := cfg
		if flagSeed == 0 {
			round.Seed = time.Now().UnixNano()
		}
		if err := tui.Run(tui.Options{Runtime: round, Game: s.game, Board: s.board, Logger: s.logger}); err != nil {
			fmt.Fprintf(os.Stderr, "Error running round: %v\n", err)
		}
	}
}

func terminalSize() (width, height int) {
	width, height = 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return width, height
}
