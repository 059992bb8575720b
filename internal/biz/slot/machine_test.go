package slot

import (
	"context"
	"sync"
	"testing"
	"time"
)

// scriptedRand 按顺序返回预设值，耗尽后返回 0
type scriptedRand struct {
	mu  sync.Mutex
	seq []int
	i   int
}

func (r *scriptedRand) IntN(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.i >= len(r.seq) {
		return 0
	}
	v := r.seq[r.i]
	r.i++
	return v % n
}

func symbolIndex(s Symbol) int {
	for i, v := range Symbols {
		if v == s {
			return i
		}
	}
	return -1
}

// spinDraws 构造一次转动需要的随机序列：ticks 帧动画 + 最终结果
func spinDraws(ticks int, final Outcome) []int {
	seq := make([]int, 0, ticks*Reels+Reels)
	for i := 0; i < ticks*Reels; i++ {
		seq = append(seq, (i*5+1)%len(Symbols))
	}
	for _, s := range final {
		seq = append(seq, symbolIndex(s))
	}
	return seq
}

const testTicks = 3

func newTestMachine(balance, bet int64, final Outcome, opts ...Option) *Machine {
	all := append([]Option{
		WithBalance(balance, bet),
		WithTicks(time.Millisecond, testTicks),
		WithRand(&scriptedRand{seq: spinDraws(testTicks, final)}),
	}, opts...)
	return NewMachine(all...)
}

func spinAndWait(t *testing.T, m *Machine) State {
	t.Helper()
	if !m.Spin() {
		t.Fatalf("spin rejected: %+v", m.Snapshot())
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := m.Wait(ctx); err != nil {
		t.Fatalf("wait: %v", err)
	}
	return m.Snapshot()
}

func TestSpinScenarios(t *testing.T) {
	cases := []struct {
		name        string
		balance     int64
		bet         int64
		final       Outcome
		wantWin     int64
		wantBalance int64
	}{
		{"777", 10000, 100, Outcome{Seven, Seven, Seven}, 10000, 19900},
		{"前两个钻石", 1000, 100, Outcome{Diamond, Diamond, Bell}, 200, 1100},
		{"不中", 500, 100, Outcome{Crown, Money, Bell}, 0, 400},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			m := newTestMachine(c.balance, c.bet, c.final)
			defer m.Close()

			s := spinAndWait(t, m)
			if s.Spinning {
				t.Fatalf("still spinning after settle")
			}
			if s.Outcome != c.final {
				t.Errorf("outcome = %v, want %v", s.Outcome, c.final)
			}
			if s.LastWin != c.wantWin {
				t.Errorf("last win = %d, want %d", s.LastWin, c.wantWin)
			}
			if s.CumulativeWin != c.wantWin {
				t.Errorf("cumulative win = %d, want %d", s.CumulativeWin, c.wantWin)
			}
			if s.Balance != c.wantBalance {
				t.Errorf("balance = %d, want %d", s.Balance, c.wantBalance)
			}
			if s.Frame != testTicks || s.Spins != 1 {
				t.Errorf("frame=%d spins=%d, want %d/1", s.Frame, s.Spins, testTicks)
			}
		})
	}
}

// 余额守恒：balance_after = balance_before - bet + win
func TestBalanceConservation(t *testing.T) {
	finals := []Outcome{
		{Seven, Seven, Seven},
		{Bell, Bell, Bell},
		{Star, Star, Crown},
		{Crown, Star, Star},
		{Crown, Diamond, Bell},
	}
	for _, bet := range []int64{10, 100, 550, 1000} {
		for _, f := range finals {
			m := newTestMachine(5000, bet, f)
			before := m.Snapshot().Balance
			s := spinAndWait(t, m)
			if want := before - bet + Payout(f, bet); s.Balance != want {
				t.Errorf("bet=%d final=%v: balance=%d, want %d", bet, f, s.Balance, want)
			}
			m.Close()
		}
	}
}

func TestSpinWhileSpinningIsNoop(t *testing.T) {
	m := NewMachine(WithTicks(20*time.Millisecond, 5))
	defer m.Close()

	if !m.Spin() {
		t.Fatalf("first spin rejected")
	}
	before := m.Snapshot()
	if m.Spin() {
		t.Fatalf("second spin accepted while spinning")
	}
	after := m.Snapshot()
	if after.Balance != before.Balance || after.Spins != before.Spins || !after.Spinning {
		t.Errorf("state changed by rejected spin: before=%+v after=%+v", before, after)
	}
}

func TestSpinUnderfundedIsNoop(t *testing.T) {
	m := NewMachine(WithBalance(50, 100))
	defer m.Close()

	before := m.Snapshot()
	if m.Spin() {
		t.Fatalf("spin accepted with balance < bet")
	}
	if after := m.Snapshot(); after != before {
		t.Errorf("state changed: before=%+v after=%+v", before, after)
	}
}

func TestSpinDeductsImmediately(t *testing.T) {
	m := NewMachine(WithBalance(1000, 100), WithTicks(20*time.Millisecond, 5))
	defer m.Close()

	m.Spin()
	s := m.Snapshot()
	if !s.Spinning || s.Balance != 900 || s.LastWin != 0 || s.Stake != 100 {
		t.Errorf("after trigger: %+v", s)
	}
}

func TestChangeBetClamp(t *testing.T) {
	cases := []struct {
		name  string
		bet   int64
		delta int64
		want  int64
		ok    bool
	}{
		{"上限", MaxBet, BetStep, MaxBet, false},
		{"下限", MinBet, -BetStep, MinBet, false},
		{"加注", 100, BetStep, 110, true},
		{"减注", 100, -BetStep, 90, true},
		{"非步长", 100, 5, 100, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			m := NewMachine(WithBalance(DefaultBalance, c.bet))
			defer m.Close()
			if ok := m.ChangeBet(c.delta); ok != c.ok {
				t.Errorf("ChangeBet ok = %v, want %v", ok, c.ok)
			}
			if got := m.Snapshot().Bet; got != c.want {
				t.Errorf("bet = %d, want %d", got, c.want)
			}
		})
	}
}

func TestStakeLockedForSettlement(t *testing.T) {
	m := NewMachine(
		WithBalance(10000, 100),
		WithTicks(5*time.Millisecond, testTicks),
		WithRand(&scriptedRand{seq: spinDraws(testTicks, Outcome{Seven, Seven, Seven})}),
	)
	defer m.Close()

	m.Spin()
	m.ChangeBet(BetStep)
	if err := m.Wait(context.Background()); err != nil {
		t.Fatal(err)
	}
	s := m.Snapshot()
	if s.LastWin != 10000 {
		t.Errorf("win = %d, want stake-based 10000", s.LastWin)
	}
	if s.Bet != 110 {
		t.Errorf("bet = %d, want 110", s.Bet)
	}
}

func TestCallbacks(t *testing.T) {
	var (
		mu     sync.Mutex
		frames []int
		got    Result
	)
	final := Outcome{Bell, Star, Star}
	m := newTestMachine(1000, 100, final,
		WithOnTick(func(s State) {
			mu.Lock()
			frames = append(frames, s.Frame)
			mu.Unlock()
		}),
		WithOnSettle(func(r Result) {
			mu.Lock()
			got = r
			mu.Unlock()
		}),
	)
	defer m.Close()
	spinAndWait(t, m)

	mu.Lock()
	defer mu.Unlock()
	if len(frames) != testTicks {
		t.Errorf("tick callbacks = %d, want %d", len(frames), testTicks)
	}
	if got.Outcome != final || got.Win != 200 || got.Stake != 100 || got.State.Balance != 1100 {
		t.Errorf("settle result = %+v", got)
	}
}

func TestCloseStopsSpin(t *testing.T) {
	settled := make(chan struct{}, 1)
	m := NewMachine(
		WithBalance(1000, 100),
		WithTicks(10*time.Millisecond, DefaultTicks),
		WithOnSettle(func(Result) { settled <- struct{}{} }),
	)
	m.Spin()
	time.Sleep(25 * time.Millisecond)
	m.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := m.Wait(ctx); err != nil {
		t.Fatalf("wait after close: %v", err)
	}
	frozen := m.Snapshot()
	time.Sleep(50 * time.Millisecond)
	if after := m.Snapshot(); after != frozen {
		t.Errorf("state changed after close: %+v -> %+v", frozen, after)
	}
	select {
	case <-settled:
		t.Errorf("settled after close")
	default:
	}
	if m.Spin() || m.ChangeBet(BetStep) {
		t.Errorf("operations accepted after close")
	}
}

func TestSubmitFallback(t *testing.T) {
	m := newTestMachine(1000, 100, Outcome{Crown, Money, Bell},
		WithSubmit(func(func()) error { return context.Canceled }),
	)
	defer m.Close()
	if s := spinAndWait(t, m); s.Balance != 900 {
		t.Errorf("balance = %d, want 900", s.Balance)
	}
}

// 默认节奏：20 帧、每帧 100ms，第一帧不早于一个间隔
func TestDefaultCadence(t *testing.T) {
	if testing.Short() {
		t.Skip("default cadence takes 2s")
	}
	var (
		mu         sync.Mutex
		frames     int
		firstFrame time.Duration
		got        Result
	)
	start := time.Now()
	m := NewMachine(
		WithRand(&scriptedRand{seq: spinDraws(DefaultTicks, Outcome{Crown, Money, Bell})}),
		WithOnTick(func(State) {
			mu.Lock()
			if frames == 0 {
				firstFrame = time.Since(start)
			}
			frames++
			mu.Unlock()
		}),
		WithOnSettle(func(r Result) {
			mu.Lock()
			got = r
			mu.Unlock()
		}),
	)
	defer m.Close()

	if !m.Spin() {
		t.Fatalf("spin rejected")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := m.Wait(ctx); err != nil {
		t.Fatalf("wait: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if frames != DefaultTicks {
		t.Errorf("frames = %d, want %d", frames, DefaultTicks)
	}
	if s := m.Snapshot(); s.Frame != DefaultTicks || s.Outcome != (Outcome{Crown, Money, Bell}) {
		t.Errorf("state = %+v", s)
	}
	if firstFrame < DefaultTickInterval-10*time.Millisecond {
		t.Errorf("first frame after %v, want >= %v", firstFrame, DefaultTickInterval)
	}
	want := time.Duration(DefaultTicks) * DefaultTickInterval
	if got.Duration < want-50*time.Millisecond {
		t.Errorf("spin took %v, want >= %v", got.Duration, want)
	}
	t.Logf("first frame %v, total %v", firstFrame, got.Duration)
}

func TestChangeBetIdleWhileSpinning(t *testing.T) {
	m := NewMachine(WithBalance(1000, 100), WithTicks(20*time.Millisecond, 5))
	defer m.Close()

	m.Spin()
	if m.ChangeBetIdle(BetStep) {
		t.Errorf("bet change accepted while spinning")
	}
	if err := m.Wait(context.Background()); err != nil {
		t.Fatal(err)
	}
	if !m.ChangeBetIdle(BetStep) || m.Snapshot().Bet != 110 {
		t.Errorf("idle bet change rejected: %+v", m.Snapshot())
	}
}

func TestTickCallbackPanic(t *testing.T) {
	m := newTestMachine(1000, 100, Outcome{Diamond, Diamond, Bell},
		WithOnTick(func(State) { panic("tick") }),
	)
	defer m.Close()

	s := spinAndWait(t, m)
	if s.Spinning || s.Balance != 1100 || s.Spins != 1 {
		t.Fatalf("after panicking tick callback: %+v", s)
	}
	if !m.Spin() {
		t.Errorf("machine stuck after callback panic")
	}
}

// panicRand 前 n 次正常，之后 panic
type panicRand struct {
	mu sync.Mutex
	n  int
}

func (r *panicRand) IntN(int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.n <= 0 {
		panic("rand exhausted")
	}
	r.n--
	return 0
}

func TestSpinAbortRefunds(t *testing.T) {
	m := NewMachine(
		WithBalance(1000, 100),
		WithTicks(time.Millisecond, testTicks),
		WithRand(&panicRand{n: Reels}),
	)
	defer m.Close()

	s := spinAndWait(t, m)
	if s.Spinning || s.Balance != 1000 || s.Spins != 0 {
		t.Fatalf("after aborted spin: %+v", s)
	}
	if !m.Spin() {
		t.Errorf("machine stuck after abort")
	}
}
