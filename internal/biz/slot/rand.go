package slot

import (
	"math/rand/v2"
	"sync"
)

// Rand 随机源，*rand.Rand 可直接满足
type Rand interface {
	IntN(n int) int
}

// globalRand 使用 math/rand/v2 的全局源，并发安全
type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// DefaultRand 默认随机源
var DefaultRand Rand = globalRand{}

// lockedRand 给非并发安全的源加锁
type lockedRand struct {
	mu  sync.Mutex
	src Rand
}

// Locked 包装一个非并发安全的随机源（如 rand.New(rand.NewPCG(...))）
func Locked(src Rand) Rand {
	return &lockedRand{src: src}
}

func (r *lockedRand) IntN(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.src.IntN(n)
}

// Draw 每个位置独立均匀抽取
func Draw(r Rand) Outcome {
	var o Outcome
	for i := range o {
		o[i] = Symbols[r.IntN(len(Symbols))]
	}
	return o
}
