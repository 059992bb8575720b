package jackpot

import "math/rand/v2"

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }
