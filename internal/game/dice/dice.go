// Package dice provides the randomness abstraction shared by the enemy
// generator, the turn resolver and the enemy policy.
package dice

// Source is the randomness provider for every random decision in a match.
//
// Implementations MUST be safe for concurrent use.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}

// Percent reports whether a roll on [0, 100) lands under pct.
//
// Precondition: src must be non-nil.
// Postcondition: Always draws exactly one value; pct <= 0 never passes, pct >= 100 always passes.
func Percent(src Source, pct int) bool {
	return src.Intn(100) < pct
}

// Chance reports whether an event with probability p fires.
// The probability is resolved in thousandths.
//
// Precondition: src must be non-nil.
// Postcondition: p <= 0 returns false without drawing; otherwise exactly one value is drawn.
func Chance(src Source, p float64) bool {
	if p <= 0 {
		return false
	}
	return src.Intn(1000) < int(p*1000+0.5)
}

// Between returns a uniformly distributed int in [lo, hi] inclusive.
//
// Precondition: lo <= hi.
func Between(src Source, lo, hi int) int {
	if lo > hi {
		panic("dice: Between precondition violated: lo must be <= hi")
	}
	return lo + src.Intn(hi-lo+1)
}
