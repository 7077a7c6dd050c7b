package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tangkap-seru/internal/config"
	"github.com/vovakirdan/tangkap-seru/internal/core"
	"github.com/vovakirdan/tangkap-seru/internal/leaderboard"
	"github.com/vovakirdan/tangkap-seru/internal/storage"
)

// session bundles what every command needs: rules, logger and leaderboard.
type session struct {
	game    config.GameConfig
	logger  *log.Logger
	board   *leaderboard.Store
	backend storage.Backend
	logFile io.Closer
}

// newLogger writes to stderr for headless commands.
func newLogger(w io.Writer) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "tangkap",
	})
}

// openLogFile opens ~/.tangkap/tangkap.log so the alt screen stays clean.
func openLogFile() (*os.File, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	dir := filepath.Join(home, ".tangkap")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(filepath.Join(dir, "tangkap.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
}

// openSession loads the rules and the leaderboard. tui selects file
// logging. A storage backend that cannot be opened degrades to memory.
func openSession(tui bool) (*session, error) {
	s := &session{logger: newLogger(os.Stderr)}
	if tui {
		if f, err := openLogFile(); err == nil {
			s.logger = newLogger(f)
			s.logFile = f
		} else {
			s.logger = log.New(io.Discard)
		}
	}

	game, err := config.LoadGame(flagConfig)
	if err != nil {
		s.close()
		return nil, err
	}
	if flagLocale != "" {
		game.Display.Locale = flagLocale
	}
	s.game = game

	backend, err := storage.OpenBackend(storage.Options{
		Kind:    storage.Kind(flagStore),
		DBPath:  flagDBPath,
		AppName: storage.DefaultAppName,
	})
	if err != nil {
		s.logger.Warn("could not open leaderboard storage, scores will not be saved", "store", flagStore, "error", err)
		backend = storage.NewMemory()
	}
	s.backend = backend
	s.board = leaderboard.Open(leaderboard.Options{Backend: backend, Logger: s.logger})
	return s, nil
}

func (s *session) close() {
	if s.backend != nil {
		if err := s.backend.Close(); err != nil {
			s.logger.Warn("closing storage", "error", err)
		}
	}
	if s.logFile != nil {
		s.logFile.Close()
	}
}

func (s *session) runtime(mode core.Mode, width, height int) core.RuntimeConfig {
	return core.RuntimeConfig{
		Mode:    mode,
		ScreenW: width,
		ScreenH: height,
		Seed:    flagSeed,
		Locale:  s.game.Display.Locale,
	}
}

// modeArgs parses an optional mode argument.
func modeArgs(args []string, fallback core.Mode) (core.Mode, error) {
	if len(args) == 0 {
		return fallback, nil
	}
	mode, err := core.ParseMode(args[0])
	if err != nil {
		return "", fmt.Errorf("%w; run 'tangkap --help'", err)
	}
	return mode, nil
}
