// Package shuffle randomizes card order and seating on top of a dice roller.
package shuffle

import (
	"github.com/KirkDiggler/rpg-toolkit/dice"
)

// Shuffler permutes n elements through swap, the same contract as
// math/rand.Shuffle.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// DiceShuffler runs a Fisher-Yates shuffle where each pick is a die roll
type DiceShuffler struct {
	roller dice.Roller
}

// New creates a shuffler that draws randomness from roller
func New(roller dice.Roller) *DiceShuffler {
	return &DiceShuffler{roller: roller}
}

// Default returns a shuffler backed by the toolkit's default roller
func Default() *DiceShuffler {
	return New(dice.DefaultRoller)
}

// Shuffle permutes n elements
func (s *DiceShuffler) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		// a d(i+1) roll picks an index in [0, i]
		roll, err := s.roller.Roll(i + 1)
		if err != nil {
			continue
		}
		if j := roll - 1; j != i {
			swap(i, j)
		}
	}
}
