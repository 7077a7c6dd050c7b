// tangkap is a terminal "catch the falling objects" game: follow the
// instruction, catch the matching objects before they hit the bottom.
//
// Usage:
//
//	tangkap                  - Start the mode menu
//	tangkap play [mode]      - Play a mode directly (timed or untimed)
//	tangkap scores [mode]    - Show the leaderboard
//	tangkap reset <mode>     - Clear a mode's leaderboard
//	tangkap simulate         - Run a round headlessly with an auto-player
//
// Global flags:
//
//	--seed <value>    - Set RNG seed for reproducible rounds
//	--store <kind>    - Leaderboard storage: sqlite, gdata or memory
//	--db <path>       - SQLite database path (default: ~/.tangkap/tangkap.db)
//	--config <path>   - Custom game rules YAML
//	--locale <code>   - Message language: id or en
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagSeed   int64
	flagStore  string
	flagDBPath string
	flagConfig string
	flagLocale string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tangkap",
	Short: "Tangkap Seru - catch the right falling objects",
	Long: `Tangkap Seru is a terminal minigame. Each level tells you what to
catch (red fruit, even numbers, vowels, ...). Catch the matching objects
before they leave the field; ten correct catches complete a level.

Timed mode gives every level a shrinking countdown and records your
result on the leaderboard. Untimed mode is endless practice.

Examples:
  tangkap
  tangkap play timed
  tangkap play untimed --locale en
  tangkap scores
  tangkap simulate --mode timed --accuracy 0.8 --seed 7`,
	SilenceUsage: true,
	RunE:         runMenu,
}

func init() {
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagStore, "store", "sqlite", "Leaderboard storage: sqlite, gdata, memory")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.tangkap/tangkap.db", "Path to SQLite database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game rules YAML")
	rootCmd.PersistentFlags().StringVar(&flagLocale, "locale", "", "Message language: id, en (default from config)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(simulateCmd)
}
