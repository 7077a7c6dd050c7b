// Package catalog holds the static object families that fall down the play
// field. Every item carries the classification the round matches against.
package catalog

import "fmt"

// Family identifies one kind of falling object.
type Family string

const (
	Fruit  Family = "fruit"
	Number Family = "number"
	Letter Family = "letter"
	Shape  Family = "shape"
)

// Families lists the families in unlock order: level 1 only sees the first,
// level 4 and above see all of them.
var Families = []Family{Fruit, Number, Letter, Shape}

// Classification values shared by the families.
const (
	Red       = "red"
	Yellow    = "yellow"
	Orange    = "orange"
	Purple    = "purple"
	Green     = "green"
	Blue      = "blue"
	Even      = "even"
	Odd       = "odd"
	Vowel     = "vowel"
	Consonant = "consonant"
)

// Item is one immutable catalog entry.
type Item struct {
	Glyph          string // What the player sees
	Value          string // Semantic name of the item
	Classification string // What instructions match on
}

var fruits = []Item{
	{Glyph: "🍎", Value: "apel", Classification: Red},
	{Glyph: "🍌", Value: "pisang", Classification: Yellow},
	{Glyph: "🍊", Value: "jeruk", Classification: Orange},
	{Glyph: "🍇", Value: "anggur", Classification: Purple},
	{Glyph: "🍓", Value: "stroberi", Classification: Red},
	{Glyph: "🍉", Value: "semangka", Classification: Red},
	{Glyph: "🥝", Value: "kiwi", Classification: Green},
	{Glyph: "🍑", Value: "persik", Classification: Orange},
}

var shapes = []Item{
	{Glyph: "🔴", Value: "lingkaran", Classification: Red},
	{Glyph: "🔵", Value: "lingkaran", Classification: Blue},
	{Glyph: "🟢", Value: "lingkaran", Classification: Green},
	{Glyph: "🟡", Value: "lingkaran", Classification: Yellow},
	{Glyph: "🟣", Value: "lingkaran", Classification: Purple},
	{Glyph: "🟠", Value: "lingkaran", Classification: Orange},
}

var (
	numbers = buildNumbers()
	letters = buildLetters()
)

func buildNumbers() []Item {
	items := make([]Item, 0, 10)
	for i := 0; i < 10; i++ {
		class := Odd
		if i%2 == 0 {
			class = Even
		}
		s := fmt.Sprint(i)
		items = append(items, Item{Glyph: s, Value: s, Classification: class})
	}
	return items
}

func buildLetters() []Item {
	items := make([]Item, 0, 26)
	for r := 'A'; r <= 'Z'; r++ {
		s := string(r)
		items = append(items, Item{Glyph: s, Value: s, Classification: letterClass(r)})
	}
	return items
}

func letterClass(r rune) string {
	switch r {
	case 'A', 'E', 'I', 'O', 'U':
		return Vowel
	}
	return Consonant
}

// classifications per family, in the order instructions draw from.
var classifications = map[Family][]string{
	Fruit:  {Red, Yellow, Orange, Purple, Green},
	Number: {Even, Odd},
	Letter: {Vowel, Consonant},
	Shape:  {Red, Blue, Green, Yellow, Purple, Orange},
}

// ItemsFor returns the family's items in catalog order.
// The returned slice is shared and must not be modified.
func ItemsFor(f Family) []Item {
	switch f {
	case Fruit:
		return fruits
	case Number:
		return numbers
	case Letter:
		return letters
	case Shape:
		return shapes
	default:
		return nil
	}
}

// Classifications returns the target values an instruction may pick for f.
func Classifications(f Family) []string {
	return classifications[f]
}

// Matching returns the items of f whose classification equals target.
func Matching(f Family, target string) []Item {
	var out []Item
	for _, it := range ItemsFor(f) {
		if it.Classification == target {
			out = append(out, it)
		}
	}
	return out
}

// Unlocked returns the families available at the given level.
func Unlocked(level int) []Family {
	n := level
	if n < 1 {
		n = 1
	}
	if n > len(Families) {
		n = len(Families)
	}
	return Families[:n]
}

// ParseFamily converts a string into a Family.
func ParseFamily(s string) (Family, error) {
	for _, f := range Families {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("catalog: unknown family %q", s)
}
