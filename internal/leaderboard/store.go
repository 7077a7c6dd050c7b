// Package leaderboard keeps the per-mode ranked results and the device's
// last-used player name.
//
// The whole table lives in one JSON document under LeaderboardKey; every
// change re-sorts the affected mode and writes the document back. Stored
// data that cannot be read is treated as empty, and a failed write leaves
// the store working from memory.
package leaderboard

import (
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tangkap-seru/internal/core"
	"github.com/vovakirdan/tangkap-seru/internal/event"
	"github.com/vovakirdan/tangkap-seru/internal/storage"
)

// Storage keys of the two persisted records.
const (
	LeaderboardKey = "tangkap-seru-leaderboard"
	PlayerNameKey  = "tangkap-seru-last-player-name"
)

// Options configures a Store.
type Options struct {
	Backend  storage.Backend  // nil: memory only
	Logger   *log.Logger      // nil: logs are discarded
	Notifier event.Notifier   // nil: events are dropped
	Now      func() time.Time // nil: time.Now
	NewID    func() string    // nil: random UUIDs
}

// Store is the leaderboard of every mode plus the player name cache.
// It is not safe for concurrent use.
type Store struct {
	backend storage.Backend
	logger  *log.Logger
	notify  event.Notifier
	now     func() time.Time
	newID   func() string

	doc         []byte
	tables      map[core.Mode][]Entry
	lastCreated int64
	savedName   string
}

// Summary aggregates one mode's table.
type Summary struct {
	Mode         core.Mode
	Entries      int
	Best         Entry // Zero when Entries == 0
	HighestLevel int
	AverageScore float64
}

// Open loads the stored table and player name from opts.Backend.
func Open(opts Options) *Store {
	if opts.Backend == nil {
		opts.Backend = storage.NewMemory()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Notifier == nil {
		opts.Notifier = event.Discard
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}

	s := &Store{
		backend: opts.Backend,
		logger:  opts.Logger,
		notify:  opts.Notifier,
		now:     opts.Now,
		newID:   opts.NewID,
	}
	s.load()
	return s
}

func (s *Store) load() {
	data, ok, err := s.backend.Load(LeaderboardKey)
	if err != nil {
		s.logger.Warn("leaderboard unreadable, starting empty", "error", err)
	}
	if ok && err == nil {
		s.doc = data
	}
	s.tables = decodeTable(s.doc)
	for _, entries := range s.tables {
		for _, e := range entries {
			if e.CreatedAt > s.lastCreated {
				s.lastCreated = e.CreatedAt
			}
		}
	}

	name, ok, err := s.backend.Load(PlayerNameKey)
	if err != nil {
		s.logger.Warn("player name unreadable", "error", err)
		return
	}
	if ok && utf8.Valid(name) {
		s.savedName = strings.TrimSpace(string(name))
	}
}

// AddEntry records a result for mode and returns the stored entry.
func (s *Store) AddEntry(mode core.Mode, sub Submission) Entry {
	created := s.now().UnixMilli()
	if created <= s.lastCreated {
		created = s.lastCreated + 1
	}
	s.lastCreated = created

	entry := Entry{
		ID:        s.newID(),
		Name:      strings.TrimSpace(sub.Name),
		Score:     max(sub.Score, 0),
		Level:     max(sub.Level, 1),
		CreatedAt: created,
	}

	next := append(append([]Entry(nil), s.tables[mode]...), entry)
	Sort(next)
	s.tables[mode] = next
	s.persist(mode)

	if stored, ok := s.find(mode, entry.ID); ok {
		entry = stored
	}
	s.logger.Info("entry added", "mode", mode, "player", entry.Name, "score", entry.Score, "level", entry.Level)
	return entry
}

// Reset clears mode's table and leaves every other mode untouched.
func (s *Store) Reset(mode core.Mode) {
	s.tables[mode] = []Entry{}
	s.persist(mode)
	s.logger.Info("leaderboard reset", "mode", mode)
	s.notify.Emit(event.Event{Kind: event.KindLeaderboardReset, Mode: mode})
}

// TopEntries returns the first n ranked entries of mode.
// A non-positive n returns every entry.
func (s *Store) TopEntries(mode core.Mode, n int) []Entry {
	entries := s.tables[mode]
	if n <= 0 || n > len(entries) {
		n = len(entries)
	}
	out := make([]Entry, n)
	copy(out, entries[:n])
	return out
}

// Entries returns every ranked entry of mode.
func (s *Store) Entries(mode core.Mode) []Entry {
	return s.TopEntries(mode, 0)
}

// Rank returns the 1-based position of id in mode, or 0 when absent.
func (s *Store) Rank(mode core.Mode, id string) int {
	for i, e := range s.tables[mode] {
		if e.ID == id {
			return i + 1
		}
	}
	return 0
}

// Best returns the top entry of mode.
func (s *Store) Best(mode core.Mode) (Entry, bool) {
	entries := s.tables[mode]
	if len(entries) == 0 {
		return Entry{}, false
	}
	return entries[0], true
}

// Summarize aggregates mode's table.
func (s *Store) Summarize(mode core.Mode) Summary {
	entries := s.tables[mode]
	sum := Summary{Mode: mode, Entries: len(entries)}
	if len(entries) == 0 {
		return sum
	}
	sum.Best = entries[0]
	total := 0
	for _, e := range entries {
		total += e.Score
		sum.HighestLevel = max(sum.HighestLevel, e.Level)
	}
	sum.AverageScore = float64(total) / float64(len(entries))
	return sum
}

// SavedName returns the last player name stored on this device.
func (s *Store) SavedName() string {
	return s.savedName
}

// StoreName remembers name as the device's last player name.
func (s *Store) StoreName(name string) {
	name = strings.TrimSpace(name)
	s.savedName = name
	if err := s.backend.Save(PlayerNameKey, []byte(name)); err != nil {
		s.logger.Warn("cannot persist player name", "error", err)
	}
}

func (s *Store) find(mode core.Mode, id string) (Entry, bool) {
	for _, e := range s.tables[mode] {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// persist writes mode's array into the document. The in-memory table is
// authoritative whether or not the write succeeds.
func (s *Store) persist(mode core.Mode) {
	doc, err := encodeMode(s.doc, mode, s.tables[mode])
	if err != nil {
		s.logger.Warn("cannot encode leaderboard", "mode", mode, "error", err)
		return
	}
	s.doc = doc
	if err := s.backend.Save(LeaderboardKey, doc); err != nil {
		s.logger.Warn("cannot persist leaderboard, keeping it in memory", "mode", mode, "error", err)
	}
}
