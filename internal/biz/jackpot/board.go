package jackpot

import (
	"context"
	"fmt"
	"sync"
	"time"

	"royalslots/pkg/xgo"

	"github.com/go-kratos/kratos/v2/log"
)

// Tier 奖池档位
type Tier string

const (
	Mega  Tier = "Mega"
	Super Tier = "Super"
	Mini  Tier = "Mini"
)

// Tiers 展示顺序
var Tiers = []Tier{Mega, Super, Mini}

// 初始金额与增长规则：每个周期 +[growthBase, growthBase+growthSpread)
const (
	DefaultInterval = 2 * time.Second
	growthBase      = 50
	growthSpread    = 100
)

var seeds = map[Tier]int64{
	Mega:  15847362,
	Super: 3245128,
	Mini:  524789,
}

var icons = map[Tier]string{
	Mega:  "Crown",
	Super: "Trophy",
	Mini:  "Star",
}

// Valid 是否为已知档位
func (t Tier) Valid() bool {
	_, ok := seeds[t]
	return ok
}

// Title 如 "Mega Jackpot"
func (t Tier) Title() string {
	return string(t) + " Jackpot"
}

// Icon 展示用图标名
func (t Tier) Icon() string {
	return icons[t]
}

// Rand 随机源
type Rand interface {
	IntN(n int) int
}

// Store 奖池持久化
type Store interface {
	LoadJackpots(ctx context.Context) (map[string]int64, error)
	SaveJackpots(ctx context.Context, amounts map[string]int64) error
}

// Entry 奖池快照中的一项
type Entry struct {
	Tier   Tier
	Title  string
	Icon   string
	Amount int64
}

// Board 模拟的累进奖池
type Board struct {
	mu      sync.RWMutex
	amounts map[Tier]int64

	rng      Rand
	interval time.Duration
	store    Store
	onChange func(Tier, int64)
	log      *log.Helper
}

// Option 奖池选项
type Option func(*Board)

func WithRand(r Rand) Option {
	return func(b *Board) {
		if r != nil {
			b.rng = r
		}
	}
}

func WithInterval(d time.Duration) Option {
	return func(b *Board) {
		if d > 0 {
			b.interval = d
		}
	}
}

// WithStore 启动时恢复、每次增长后保存
func WithStore(s Store) Option {
	return func(b *Board) {
		b.store = s
	}
}

// WithOnChange 金额变化回调，用于指标
func WithOnChange(fn func(Tier, int64)) Option {
	return func(b *Board) {
		b.onChange = fn
	}
}

// NewBoard 创建奖池，金额为初始值
func NewBoard(logger log.Logger, opts ...Option) *Board {
	b := &Board{
		amounts:  make(map[Tier]int64, len(seeds)),
		rng:      globalRand{},
		interval: DefaultInterval,
		log:      log.NewHelper(logger),
	}
	for t, v := range seeds {
		b.amounts[t] = v
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Amount 某档位当前金额
func (b *Board) Amount(t Tier) int64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.amounts[t]
}

// Snapshot 按展示顺序返回所有档位
func (b *Board) Snapshot() []Entry {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]Entry, 0, len(Tiers))
	for _, t := range Tiers {
		out = append(out, Entry{Tier: t, Title: t.Title(), Icon: t.Icon(), Amount: b.amounts[t]})
	}
	return out
}

// Restore 从存储恢复，只接受比初始值大的金额
func (b *Board) Restore(ctx context.Context) error {
	if b.store == nil {
		return nil
	}
	saved, err := b.store.LoadJackpots(ctx)
	if err != nil {
		return fmt.Errorf("load jackpots: %w", err)
	}
	b.mu.Lock()
	for k, v := range saved {
		t := Tier(k)
		if t.Valid() && v > b.amounts[t] {
			b.amounts[t] = v
		}
	}
	b.mu.Unlock()
	return nil
}

// Grow 所有档位各自增长一次
func (b *Board) Grow() map[Tier]int64 {
	b.mu.Lock()
	changed := make(map[Tier]int64, len(b.amounts))
	for _, t := range Tiers {
		b.amounts[t] += int64(growthBase + b.rng.IntN(growthSpread))
		changed[t] = b.amounts[t]
	}
	b.mu.Unlock()

	if b.onChange != nil {
		for t, v := range changed {
			b.onChange(t, v)
		}
	}
	return changed
}

// Run 按周期增长直到 ctx 取消
func (b *Board) Run(ctx context.Context) {
	defer xgo.RecoverFromError(nil)
	b.log.Infof("jackpot board started, interval=%v", b.interval)

	if err := b.Restore(ctx); err != nil {
		b.log.Warnf("restore jackpots failed, using seeds: %v", err)
	}

	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			b.save(context.Background())
			b.log.Info("closing jackpot board")
			return
		case <-ticker.C:
			b.Grow()
			b.save(ctx)
		}
	}
}

func (b *Board) save(ctx context.Context) {
	if b.store == nil {
		return
	}
	b.mu.RLock()
	amounts := make(map[string]int64, len(b.amounts))
	for t, v := range b.amounts {
		amounts[string(t)] = v
	}
	b.mu.RUnlock()

	if err := b.store.SaveJackpots(ctx, amounts); err != nil {
		b.log.Warnf("save jackpots failed: %v", err)
	}
}
