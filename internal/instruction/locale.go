package instruction

import (
	"fmt"

	"github.com/vovakirdan/tangkap-seru/internal/catalog"
)

// Locale holds every player-facing sentence of the round core.
type Locale struct {
	Code string

	catch   string                    // Wraps the target phrase
	family  map[catalog.Family]string // Target phrase per family, %s = class name
	classes map[string]string         // Classification display names

	Correct        string // %d = reward
	Incorrect      string
	LevelComplete  string
	TimeUp         string
	RoundOver      string
	EntryRecorded  string // %d = rank
	BoardReset     string
	NameTooShort   string // %d = minimum length
	AwaitingName   string
	NextLevelHint  string
	GameOverHeader string

	// HUD and screen labels
	LevelLabel string
	ScoreLabel string
	TimeLabel  string
	NameLabel  string
	BoardTitle string
	EmptyBoard string
}

var locales = map[string]*Locale{
	"id": {
		Code:  "id",
		catch: "Tangkap %s!",
		family: map[catalog.Family]string{
			catalog.Fruit:  "buah berwarna %s",
			catalog.Number: "angka %s",
			catalog.Letter: "huruf %s",
			catalog.Shape:  "lingkaran %s",
		},
		classes: map[string]string{
			catalog.Red:       "merah",
			catalog.Yellow:    "kuning",
			catalog.Orange:    "oranye",
			catalog.Purple:    "ungu",
			catalog.Green:     "hijau",
			catalog.Blue:      "biru",
			catalog.Even:      "genap",
			catalog.Odd:       "ganjil",
			catalog.Vowel:     "vokal",
			catalog.Consonant: "konsonan",
		},
		Correct:        "Benar! +%d",
		Incorrect:      "Salah!",
		LevelComplete:  "Level selesai!",
		TimeUp:         "Waktu habis!",
		RoundOver:      "Permainan selesai!",
		EntryRecorded:  "Skor tersimpan di peringkat #%d",
		BoardReset:     "Papan skor direset",
		NameTooShort:   "Nama minimal %d karakter",
		AwaitingName:   "Masukkan nama untuk mulai",
		NextLevelHint:  "Level selanjutnya",
		GameOverHeader: "Permainan Selesai!",
		LevelLabel:     "Level",
		ScoreLabel:     "Skor",
		TimeLabel:      "Waktu",
		NameLabel:      "Nama",
		BoardTitle:     "Papan Skor",
		EmptyBoard:     "Belum ada skor.",
	},
	"en": {
		Code:  "en",
		catch: "Catch %s!",
		family: map[catalog.Family]string{
			catalog.Fruit:  "%s fruit",
			catalog.Number: "%s numbers",
			catalog.Letter: "%s letters",
			catalog.Shape:  "%s circles",
		},
		classes: map[string]string{
			catalog.Red:       "red",
			catalog.Yellow:    "yellow",
			catalog.Orange:    "orange",
			catalog.Purple:    "purple",
			catalog.Green:     "green",
			catalog.Blue:      "blue",
			catalog.Even:      "even",
			catalog.Odd:       "odd",
			catalog.Vowel:     "vowel",
			catalog.Consonant: "consonant",
		},
		Correct:        "Correct! +%d",
		Incorrect:      "Wrong!",
		LevelComplete:  "Level complete!",
		TimeUp:         "Time's up!",
		RoundOver:      "Game over!",
		EntryRecorded:  "Score saved at rank #%d",
		BoardReset:     "Leaderboard reset",
		NameTooShort:   "Name needs at least %d characters",
		AwaitingName:   "Enter a name to start",
		NextLevelHint:  "Next level",
		GameOverHeader: "Game Over!",
		LevelLabel:     "Level",
		ScoreLabel:     "Score",
		TimeLabel:      "Time",
		NameLabel:      "Name",
		BoardTitle:     "Leaderboard",
		EmptyBoard:     "No scores yet.",
	},
}

// LocaleFor returns the locale for code, falling back to Indonesian.
func LocaleFor(code string) *Locale {
	if l, ok := locales[code]; ok {
		return l
	}
	return locales["id"]
}

// ClassName returns the display name of a classification.
func (l *Locale) ClassName(class string) string {
	if s, ok := l.classes[class]; ok {
		return s
	}
	return class
}

// Sentence renders the instruction for a family/target pair.
func (l *Locale) Sentence(f catalog.Family, target string) string {
	phrase, ok := l.family[f]
	if !ok {
		phrase = "%s"
	}
	return fmt.Sprintf(l.catch, fmt.Sprintf(phrase, l.ClassName(target)))
}
