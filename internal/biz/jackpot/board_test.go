package jackpot

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/go-kratos/kratos/v2/log"
)

type fixedRand int

func (r fixedRand) IntN(n int) int { return int(r) % n }

type memStore struct {
	mu      sync.Mutex
	saved   map[string]int64
	loadErr error
	saves   int
}

func (s *memStore) LoadJackpots(context.Context) (map[string]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	out := make(map[string]int64, len(s.saved))
	for k, v := range s.saved {
		out[k] = v
	}
	return out, nil
}

func (s *memStore) SaveJackpots(_ context.Context, amounts map[string]int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saved = amounts
	s.saves++
	return nil
}

func TestSnapshotSeeds(t *testing.T) {
	b := NewBoard(log.DefaultLogger)
	snap := b.Snapshot()
	want := []int64{15847362, 3245128, 524789}
	if len(snap) != len(want) {
		t.Fatalf("snapshot size = %d", len(snap))
	}
	for i, e := range snap {
		if e.Amount != want[i] {
			t.Errorf("%s = %d, want %d", e.Tier, e.Amount, want[i])
		}
	}
	if snap[0].Title != "Mega Jackpot" || snap[0].Icon != "Crown" {
		t.Errorf("mega entry = %+v", snap[0])
	}
}

func TestGrowRange(t *testing.T) {
	for _, r := range []int{0, 37, 99} {
		b := NewBoard(log.DefaultLogger, WithRand(fixedRand(r)))
		before := b.Amount(Mini)
		b.Grow()
		if got := b.Amount(Mini) - before; got != int64(50+r) {
			t.Errorf("rand=%d: growth = %d, want %d", r, got, 50+r)
		}
	}
}

func TestRestore(t *testing.T) {
	store := &memStore{saved: map[string]int64{
		"Mega":    20000000,
		"Mini":    1,
		"Unknown": 99,
	}}
	b := NewBoard(log.DefaultLogger, WithStore(store))
	if err := b.Restore(context.Background()); err != nil {
		t.Fatal(err)
	}
	if b.Amount(Mega) != 20000000 {
		t.Errorf("mega not restored: %d", b.Amount(Mega))
	}
	if b.Amount(Mini) != 524789 {
		t.Errorf("mini went below seed: %d", b.Amount(Mini))
	}

	store.loadErr = errors.New("redis down")
	if err := b.Restore(context.Background()); err == nil {
		t.Errorf("expected load error")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	store := &memStore{}
	var mu sync.Mutex
	changes := 0
	b := NewBoard(log.DefaultLogger,
		WithRand(fixedRand(0)),
		WithInterval(5*time.Millisecond),
		WithStore(store),
		WithOnChange(func(Tier, int64) {
			mu.Lock()
			changes++
			mu.Unlock()
		}),
	)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		b.Run(ctx)
		close(done)
	}()
	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop")
	}
	frozen := b.Amount(Mega)
	time.Sleep(20 * time.Millisecond)
	if b.Amount(Mega) != frozen {
		t.Errorf("board grew after cancel")
	}
	if frozen <= 15847362 {
		t.Errorf("board never grew")
	}

	mu.Lock()
	defer mu.Unlock()
	if changes == 0 || changes%len(Tiers) != 0 {
		t.Errorf("changes = %d", changes)
	}
	if store.saved["Mega"] != frozen {
		t.Errorf("final save = %d, want %d", store.saved["Mega"], frozen)
	}
}
