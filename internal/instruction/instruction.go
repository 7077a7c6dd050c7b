// Package instruction draws the per-level target: which family falls and
// which classification the player has to catch.
package instruction

import (
	"math/rand"

	"github.com/vovakirdan/tangkap-seru/internal/catalog"
)

// Instruction is the target of one level.
type Instruction struct {
	Family catalog.Family
	Target string // Classification value to match
	Text   string // Localized sentence naming the target
}

// Generator draws instructions from a seeded source.
type Generator struct {
	rng    *rand.Rand
	locale *Locale
}

// NewGenerator creates a generator; locale falls back to Indonesian.
func NewGenerator(rng *rand.Rand, locale string) *Generator {
	return &Generator{rng: rng, locale: LocaleFor(locale)}
}

// Locale returns the generator's locale.
func (g *Generator) Locale() *Locale {
	return g.locale
}

// PickFamily chooses uniformly among the families unlocked at level.
func (g *Generator) PickFamily(level int) catalog.Family {
	unlocked := catalog.Unlocked(level)
	return unlocked[g.rng.Intn(len(unlocked))]
}

// Generate picks a target classification for f uniformly and renders it.
// The draw does not depend on level yet.
func (g *Generator) Generate(f catalog.Family, level int) Instruction {
	classes := catalog.Classifications(f)
	target := classes[g.rng.Intn(len(classes))]
	return Instruction{
		Family: f,
		Target: target,
		Text:   g.locale.Sentence(f, target),
	}
}

// Next draws a family for the level and an instruction for it.
func (g *Generator) Next(level int) Instruction {
	return g.Generate(g.PickFamily(level), level)
}
