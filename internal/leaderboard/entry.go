package leaderboard

import "sort"

// Entry is one recorded round result. Entries are immutable once created.
type Entry struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Score     int    `json:"score"`
	Level     int    `json:"level"`
	CreatedAt int64  `json:"createdAt"` // Unix milliseconds
}

// Submission is the part of an entry supplied by the round.
type Submission struct {
	Name  string
	Score int
	Level int
}

// Less reports whether a ranks above b: higher score first, then higher
// level, then the earlier entry.
func Less(a, b Entry) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	if a.Level != b.Level {
		return a.Level > b.Level
	}
	return a.CreatedAt < b.CreatedAt
}

// Sort orders entries by rank. Entries with identical keys keep their
// relative order.
func Sort(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return Less(entries[i], entries[j])
	})
}
