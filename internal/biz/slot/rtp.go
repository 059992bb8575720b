package slot

import (
	"context"
	"math/rand/v2"
	"runtime"
	"sync"
)

// TheoreticalRTP 穷举所有结果得到的理论返还率（返还/下注）
func TheoreticalRTP() float64 {
	n := len(Symbols)
	var total int
	var o Outcome
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			for k := 0; k < n; k++ {
				o = Outcome{Symbols[i], Symbols[j], Symbols[k]}
				total += Multiplier(o)
			}
		}
	}
	return float64(total) / float64(n*n*n)
}

// SimStats 模拟统计
type SimStats struct {
	Rounds   int64
	TotalBet int64
	TotalWin int64
	Hits     int64 // 有赢分的局数
	Triples  map[Symbol]int64
	MaxWin   int64
}

// RTP 实际返还率
func (s SimStats) RTP() float64 {
	if s.TotalBet == 0 {
		return 0
	}
	return float64(s.TotalWin) / float64(s.TotalBet)
}

// HitRate 中奖率
func (s SimStats) HitRate() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return float64(s.Hits) / float64(s.Rounds)
}

func (s *SimStats) merge(o SimStats) {
	s.Rounds += o.Rounds
	s.TotalBet += o.TotalBet
	s.TotalWin += o.TotalWin
	s.Hits += o.Hits
	if o.MaxWin > s.MaxWin {
		s.MaxWin = o.MaxWin
	}
	for k, v := range o.Triples {
		s.Triples[k] += v
	}
}

// Simulate 不走动画直接抽取最终结果，按 workers 分片并行统计。
// 同一 seed 与 workers 的结果可复现；ctx 取消时返回已完成部分。
func Simulate(ctx context.Context, rounds int64, bet int64, workers int, seed uint64) SimStats {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if int64(workers) > rounds {
		workers = int(max(rounds, 1))
	}

	parts := make([]SimStats, workers)
	var wg sync.WaitGroup
	per := rounds / int64(workers)
	for w := 0; w < workers; w++ {
		n := per
		if w == workers-1 {
			n = rounds - per*int64(workers-1)
		}
		wg.Add(1)
		go func(w int, n int64) {
			defer wg.Done()
			rng := rand.New(rand.NewPCG(seed, uint64(w)))
			parts[w] = simulateWorker(ctx, rng, n, bet)
		}(w, n)
	}
	wg.Wait()

	total := SimStats{Triples: make(map[Symbol]int64)}
	for _, p := range parts {
		total.merge(p)
	}
	return total
}

func simulateWorker(ctx context.Context, rng Rand, rounds, bet int64) SimStats {
	local := SimStats{Triples: make(map[Symbol]int64)}
	const checkEvery = 4096
	for i := int64(0); i < rounds; i++ {
		if i%checkEvery == 0 && ctx.Err() != nil {
			break
		}
		o := Draw(rng)
		win := Payout(o, bet)
		local.Rounds++
		local.TotalBet += bet
		if win > 0 {
			local.TotalWin += win
			local.Hits++
			if win > local.MaxWin {
				local.MaxWin = win
			}
			if o[0] == o[1] && o[1] == o[2] {
				local.Triples[o[0]]++
			}
		}
	}
	return local
}
