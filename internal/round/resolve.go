package round

import "github.com/vovakirdan/tangkap-seru/internal/spawn"

// Verdict is the outcome of catching an object.
type Verdict int

const (
	Incorrect Verdict = iota
	Correct
)

// String returns the verdict name.
func (v Verdict) String() string {
	if v == Correct {
		return "correct"
	}
	return "incorrect"
}

// Resolve compares a caught object against the level target.
func Resolve(o spawn.Object, target string) Verdict {
	if o.Matches(target) {
		return Correct
	}
	return Incorrect
}
