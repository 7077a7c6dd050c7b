package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tangkap-seru/internal/core"
	"github.com/vovakirdan/tangkap-seru/internal/leaderboard"
	"github.com/vovakirdan/tangkap-seru/internal/storage"
)

var (
	flagLimit   int
	flagRecords bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [timed|untimed]",
	Short: "Show the leaderboard",
	Long: `Display the top entries of one mode, or of every mode when none is given.

Examples:
  tangkap scores
  tangkap scores timed --limit 3
  tangkap scores --store gdata
  tangkap scores --records`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 0, "Entries per mode (default from config)")
	scoresCmd.Flags().BoolVar(&flagRecords, "records", false, "Also list the raw stored documents (sqlite store only)")
}

func runScores(cmd *cobra.Command, args []string) error {
	modes := core.Modes
	if len(args) > 0 {
		mode, err := modeArgs(args, "")
		if err != nil {
			return err
		}
		modes = []core.Mode{mode}
	}

	s, err := openSession(false)
	if err != nil {
		return err
	}
	defer s.close()

	limit := flagLimit
	if limit <= 0 {
		limit = s.game.Display.LeaderboardSize
	}

	out := cmd.OutOrStdout()
	for i, mode := range modes {
		if i > 0 {
			fmt.Fprintln(out)
		}
		printBoard(cmd, mode, s.board.TopEntries(mode, limit), s.board.Summarize(mode))
	}

	if flagRecords {
		return printRecords(cmd, s.backend)
	}
	return nil
}

func printRecords(cmd *cobra.Command, backend storage.Backend) error {
	db, ok := backend.(*storage.SQLite)
	if !ok {
		return fmt.Errorf("--records needs the sqlite store")
	}
	records, err := db.Records()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "\nStored documents:")
	for _, r := range records {
		fmt.Fprintf(out, "  %-32s  %6d bytes  %s\n", r.Key, r.Size, r.UpdatedAt.Format("2006-01-02 15:04:05"))
	}
	return nil
}

func printBoard(cmd *cobra.Command, mode core.Mode, entries []leaderboard.Entry, sum leaderboard.Summary) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Leaderboard - %s\n\n", mode.Title())

	if len(entries) == 0 {
		fmt.Fprintln(out, "No scores recorded yet.")
		fmt.Fprintf(out, "\nPlay 'tangkap play %s' to set the first score!\n", mode)
		return
	}

	fmt.Fprintf(out, "  %-4s  %-16s  %-6s  %-5s  %s\n", "Rank", "Name", "Score", "Level", "Date")
	fmt.Fprintf(out, "  %-4s  %-16s  %-6s  %-5s  %s\n", "----", "----", "-----", "-----", "----")
	for i, e := range entries {
		date := time.UnixMilli(e.CreatedAt).Format("2006-01-02 15:04")
		fmt.Fprintf(out, "  %-4d  %-16s  %-6d  %-5d  %s\n", i+1, e.Name, e.Score, e.Level, date)
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Best: %d by %s (level %d)  Rounds: %d  Average: %.1f  Highest level: %d\n",
		sum.Best.Score, sum.Best.Name, sum.Best.Level, sum.Entries, sum.AverageScore, sum.HighestLevel)
}
