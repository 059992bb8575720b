package slot

import (
	"context"
	"sync"
	"time"

	"royalslots/pkg/xgo"

	"github.com/go-kratos/kratos/v2/log"
)

// 动画节奏：每 100ms 刷新一次，共 20 次
const (
	DefaultTickInterval = 100 * time.Millisecond
	DefaultTicks        = 20
)

// Result 一次结算的结果
type Result struct {
	Outcome  Outcome
	Stake    int64
	Win      int64
	State    State
	Duration time.Duration
}

// SubmitFunc 调度转动任务，如 ants.Pool.Submit
type SubmitFunc func(task func()) error

func goSubmit(task func()) error {
	go task()
	return nil
}

// Option 机器选项
type Option func(*Machine)

// WithRand 注入随机源
func WithRand(r Rand) Option {
	return func(m *Machine) {
		if r != nil {
			m.rng = r
		}
	}
}

// WithBalance 初始余额与下注
func WithBalance(balance, bet int64) Option {
	return func(m *Machine) {
		m.state = NewState(balance, bet)
	}
}

// WithTicks 动画间隔与次数
func WithTicks(interval time.Duration, ticks int) Option {
	return func(m *Machine) {
		if interval > 0 {
			m.interval = interval
		}
		if ticks >= 0 {
			m.ticks = ticks
		}
	}
}

// WithSubmit 转动任务的执行方式，默认直接起 goroutine
func WithSubmit(fn SubmitFunc) Option {
	return func(m *Machine) {
		if fn != nil {
			m.submit = fn
		}
	}
}

// WithOnTick 每帧回调（锁外执行）
func WithOnTick(fn func(State)) Option {
	return func(m *Machine) {
		m.onTick = fn
	}
}

// WithOnSettle 结算回调（锁外执行）
func WithOnSettle(fn func(Result)) Option {
	return func(m *Machine) {
		m.onSettle = fn
	}
}

// WithLogger 日志
func WithLogger(logger log.Logger) Option {
	return func(m *Machine) {
		if logger != nil {
			m.log = log.NewHelper(logger)
		}
	}
}

// Machine 单台老虎机。spinning 标志串行化转动，mu 只保护跨 goroutine 读写。
type Machine struct {
	mu     sync.RWMutex
	state  State
	closed bool
	done   chan struct{} // 当前转动结束时关闭

	ctx    context.Context
	cancel context.CancelFunc

	rng      Rand
	interval time.Duration
	ticks    int
	submit   SubmitFunc
	onTick   func(State)
	onSettle func(Result)
	log      *log.Helper
}

// NewMachine 创建机器，默认余额 10000、下注 100
func NewMachine(opts ...Option) *Machine {
	idle := make(chan struct{})
	close(idle)

	ctx, cancel := context.WithCancel(context.Background())
	m := &Machine{
		state:    NewState(DefaultBalance, DefaultBet),
		done:     idle,
		ctx:      ctx,
		cancel:   cancel,
		rng:      DefaultRand,
		interval: DefaultTickInterval,
		ticks:    DefaultTicks,
		submit:   goSubmit,
		log:      log.NewHelper(log.GetLogger()),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Snapshot 当前状态副本
func (m *Machine) Snapshot() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Closed 是否已拆除
func (m *Machine) Closed() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.closed
}

// Spin 开始一次转动；转动中或余额不足时直接忽略并返回 false
func (m *Machine) Spin() bool {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return false
	}
	next, ok := m.state.begin()
	if !ok {
		m.mu.Unlock()
		return false
	}
	m.state = next
	done := make(chan struct{})
	m.done = done
	m.mu.Unlock()

	task := func() { m.run(done) }
	if err := m.submit(task); err != nil {
		m.log.Warnf("submit spin task failed, fallback to goroutine: %v", err)
		go task()
	}
	return true
}

// ChangeBet 调整下注，越界忽略。转动中是否允许由调用方决定。
func (m *Machine) ChangeBet(delta int64) bool {
	return m.changeBet(delta, false)
}

// ChangeBetIdle 同 ChangeBet，但转动中忽略；判断与修改在同一把锁内
func (m *Machine) ChangeBetIdle(delta int64) bool {
	return m.changeBet(delta, true)
}

func (m *Machine) changeBet(delta int64, idleOnly bool) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed || (idleOnly && m.state.Spinning) {
		return false
	}
	next, ok := m.state.withBetDelta(delta)
	if ok {
		m.state = next
	}
	return ok
}

// Wait 等待当前转动结束（结算或被拆除）
func (m *Machine) Wait(ctx context.Context) error {
	m.mu.RLock()
	done := m.done
	m.mu.RUnlock()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close 拆除机器：停止进行中的定时任务，之后不再修改状态
func (m *Machine) Close() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	m.mu.Unlock()
	m.cancel()
}

// run 固定次数的帧回调，之后一次结算回调
func (m *Machine) run(done chan struct{}) {
	defer close(done)
	defer xgo.RecoverFromError(func(any) { m.abort() })

	start := time.Now()
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for i := 0; i < m.ticks; i++ {
		select {
		case <-m.ctx.Done():
			return
		case <-ticker.C:
		}

		frame := Draw(m.rng)
		m.mu.Lock()
		if m.closed {
			m.mu.Unlock()
			return
		}
		m.state = m.state.tick(frame)
		snap := m.state
		m.mu.Unlock()

		if m.onTick != nil {
			m.call(func() { m.onTick(snap) })
		}
	}

	final := Draw(m.rng)
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	stake := m.state.Stake
	next, win := m.state.settle(final)
	m.state = next
	m.mu.Unlock()

	if m.onSettle != nil {
		res := Result{
			Outcome:  final,
			Stake:    stake,
			Win:      win,
			State:    next,
			Duration: time.Since(start),
		}
		m.call(func() { m.onSettle(res) })
	}
}

// call 回调 panic 不影响转动流程
func (m *Machine) call(fn func()) {
	defer xgo.RecoverFromError(nil)
	fn()
}

// abort 转动任务异常退出：退回本轮下注，回到 IDLE。已拆除的机器不再修改。
func (m *Machine) abort() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed || !m.state.Spinning {
		return
	}
	m.state = m.state.abort()
	m.log.Errorf("spin aborted, stake %d refunded", m.state.Stake)
}
