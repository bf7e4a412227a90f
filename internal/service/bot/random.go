package bot

import "lukechampine.com/frand"

// RandomSource is the randomness the agents draw on. *frand.RNG and
// *math/rand/v2.Rand both satisfy it, so tests can pass a seeded source.
type RandomSource interface {
	Float64() float64
	IntN(n int) int
}

// NewRandomSource returns a fast CSPRNG-backed source.
func NewRandomSource() RandomSource {
	return frandSource{frand.New()}
}

type frandSource struct {
	rng *frand.RNG
}

func (f frandSource) Float64() float64 { return f.rng.Float64() }
func (f frandSource) IntN(n int) int   { return f.rng.Intn(n) }

// tieBreaker decides whether a root move scoring the same as the incumbent
// replaces it.
type tieBreaker interface {
	replace() bool
	// exact reports whether ties must be compared on exact scores, which
	// forbids narrowing the window between root moves.
	exact() bool
}

// stableTieBreak keeps the first best move in move order.
type stableTieBreak struct{}

func (stableTieBreak) replace() bool { return false }
func (stableTieBreak) exact() bool   { return false }

// coinTieBreak flips a fair coin between incumbent and challenger. Every
// tied move can win, earlier ones with diminishing probability.
type coinTieBreak struct {
	src RandomSource
}

func (c coinTieBreak) replace() bool { return c.src.Float64() < 0.5 }
func (coinTieBreak) exact() bool     { return true }
