package leaderboard

import (
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/vovakirdan/tangkap-seru/internal/core"
)

// decodeTable reads every mode's entries from a stored document.
// Anything that is not a JSON object yields an empty table; inside a valid
// document, entries with a missing or mistyped field are skipped along with
// duplicate ids.
func decodeTable(data []byte) map[core.Mode][]Entry {
	table := make(map[core.Mode][]Entry, len(core.Modes))
	if len(data) == 0 || !gjson.ValidBytes(data) || !gjson.ParseBytes(data).IsObject() {
		return table
	}

	seen := make(map[string]bool)
	for _, mode := range core.Modes {
		res := gjson.GetBytes(data, string(mode))
		if !res.IsArray() {
			continue
		}
		var entries []Entry
		res.ForEach(func(_, v gjson.Result) bool {
			e, ok := decodeEntry(v)
			if ok && !seen[e.ID] {
				seen[e.ID] = true
				entries = append(entries, e)
			}
			return true
		})
		Sort(entries)
		table[mode] = entries
	}
	return table
}

func decodeEntry(v gjson.Result) (Entry, bool) {
	if !v.IsObject() {
		return Entry{}, false
	}
	id, name := v.Get("id"), v.Get("name")
	score, level, created := v.Get("score"), v.Get("level"), v.Get("createdAt")
	if id.Type != gjson.String || id.Str == "" || name.Type != gjson.String {
		return Entry{}, false
	}
	if score.Type != gjson.Number || level.Type != gjson.Number || created.Type != gjson.Number {
		return Entry{}, false
	}

	e := Entry{
		ID:        id.Str,
		Name:      name.Str,
		Score:     int(score.Int()),
		Level:     int(level.Int()),
		CreatedAt: created.Int(),
	}
	if e.Score < 0 || e.Level < 1 {
		return Entry{}, false
	}
	return e, true
}

// encodeMode replaces one mode's array in doc, keeping every other key.
func encodeMode(doc []byte, mode core.Mode, entries []Entry) ([]byte, error) {
	if len(doc) == 0 || !gjson.ValidBytes(doc) || !gjson.ParseBytes(doc).IsObject() {
		doc = []byte("{}")
	}
	if entries == nil {
		entries = []Entry{}
	}
	return sjson.SetBytes(doc, string(mode), entries)
}
