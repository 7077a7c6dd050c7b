package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tangkap-seru/internal/core"
	"github.com/vovakirdan/tangkap-seru/internal/leaderboard"
	"github.com/vovakirdan/tangkap-seru/internal/sim"
	"github.com/vovakirdan/tangkap-seru/internal/storage"
)

var (
	flagSimMode     string
	flagSimName     string
	flagSimAccuracy float64
	flagSimReaction time.Duration
	flagSimLimit    time.Duration
	flagSimRecord   bool
	flagSimVerbose  bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a round headlessly with an auto-player",
	Long: `Play a round on a virtual clock with a seeded auto-player and print
the outcome. Nothing is saved unless --record is given.

Examples:
  tangkap simulate
  tangkap simulate --mode untimed --limit 2m --accuracy 0.5
  tangkap simulate --seed 42 --name Rina --record`,
	Args: cobra.NoArgs,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().StringVar(&flagSimMode, "mode", "timed", "Mode: timed or untimed")
	simulateCmd.Flags().StringVar(&flagSimName, "name", "Robot", "Player name")
	simulateCmd.Flags().Float64Var(&flagSimAccuracy, "accuracy", 0.9, "Chance of catching a matching object (0..1)")
	simulateCmd.Flags().DurationVar(&flagSimReaction, "reaction", 400*time.Millisecond, "Time between catch attempts")
	simulateCmd.Flags().DurationVar(&flagSimLimit, "limit", 10*time.Minute, "Virtual time limit")
	simulateCmd.Flags().BoolVar(&flagSimRecord, "record", false, "Record the result on the leaderboard")
	simulateCmd.Flags().BoolVarP(&flagSimVerbose, "verbose", "v", false, "Log round events")
}

func runSimulate(cmd *cobra.Command, _ []string) error {
	mode, err := core.ParseMode(flagSimMode)
	if err != nil {
		return err
	}

	s, err := openSession(false)
	if err != nil {
		return err
	}
	defer s.close()
	if flagSimVerbose {
		s.logger.SetLevel(log.DebugLevel)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	opts := sim.Options{
		Mode:     mode,
		Config:   s.game,
		Seed:     seed,
		Name:     flagSimName,
		Accuracy: flagSimAccuracy,
		Reaction: flagSimReaction,
		Limit:    flagSimLimit,
		Logger:   s.logger,
	}
	board := s.board
	if !flagSimRecord {
		// Keep the real leaderboard untouched
		board = leaderboard.Open(leaderboard.Options{Backend: storage.NewMemory(), Logger: s.logger})
	}
	opts.Recorder = board

	res, err := sim.Run(opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s  seed %d\n", mode.Title(), seed)
	fmt.Fprintf(out, "  Score:     %d\n", res.State.Score)
	fmt.Fprintf(out, "  Level:     %d (%d completed)\n", res.State.Level, res.Levels)
	fmt.Fprintf(out, "  Catches:   %d/%d correct\n", res.Correct, res.Attempts)
	fmt.Fprintf(out, "  Duration:  %v\n", res.Elapsed)
	if flagSimRecord && res.Recorded {
		fmt.Fprintf(out, "  Recorded:  rank #%d on the %s leaderboard\n", board.Rank(mode, res.Entry.ID), mode)
	} else if flagSimRecord {
		fmt.Fprintln(os.Stderr, "result was not recorded")
	}
	return nil
}
