package biz

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"royalslots/internal/biz/game"
	"royalslots/internal/biz/game/base"
	"royalslots/internal/biz/jackpot"
	"royalslots/internal/biz/metrics"
	"royalslots/internal/biz/session"
	"royalslots/internal/biz/slot"
	"royalslots/internal/conf"
	"royalslots/internal/notify"

	"github.com/go-kratos/kratos/v2/log"
)

// 业务常量
const (
	cleanupTimeout          = time.Minute
	defaultIdleTTL          = 30 * time.Minute
	defaultCleanupInterval  = time.Minute
	defaultBigWinMultiplier = 50
)

// DataRepo 数据层接口：会话ID/在线标记/账本/奖池/导出
type DataRepo interface {
	NextSessionID(ctx context.Context, gameID int64) (string, error)
	MarkSessionActive(ctx context.Context, sessionID string, gameID int64, ttl time.Duration) error
	ClearSession(ctx context.Context, sessionID string) error
	CleanSessionKeys(ctx context.Context) error
	SaveRound(ctx context.Context, r *Round) error
	ListRounds(ctx context.Context, sessionID string) ([]*Round, error)
	GetRoundAmounts(ctx context.Context, gameID int64) (bet, win, count int64, err error)
	LoadJackpots(ctx context.Context) (map[string]int64, error)
	SaveJackpots(ctx context.Context, amounts map[string]int64) error
	UploadBytes(ctx context.Context, bucket, key, contentType string, data []byte) (string, error)
}

// UseCase 编排层：通过 DataRepo + 领域池（Game/Session/Jackpot）编排业务
type UseCase struct {
	ctx    context.Context
	cancel context.CancelFunc

	repo     DataRepo
	log      *log.Helper
	c        *conf.Slot
	gamePool *game.Pool
	sessions *session.Pool
	board    *jackpot.Board
	notify   notify.Notifier
	rng      slot.Rand
}

// NewUseCase 创建 UseCase 并启动后台循环（奖池、空闲清理、指标）
func NewUseCase(repo DataRepo, logger log.Logger, c *conf.Slot, n notify.Notifier) (*UseCase, func(), error) {
	uc, err := newUseCase(repo, logger, c, n, newRand(c))
	if err != nil {
		return nil, nil, err
	}

	// 启动时清理上次进程残留的在线标记
	uc.cleanOnStartup()
	uc.start()

	cleanup := func() {
		uc.log.Info("closing sessions")
		uc.cancel()
		uc.sessions.Close()
	}
	return uc, cleanup, nil
}

// newRand 配置了种子时使用可复现的 PCG 源
func newRand(c *conf.Slot) slot.Rand {
	if c == nil || c.Seed == 0 {
		return slot.DefaultRand
	}
	return slot.Locked(rand.New(rand.NewPCG(c.Seed, c.Seed)))
}

func newUseCase(repo DataRepo, logger log.Logger, c *conf.Slot, n notify.Notifier, rng slot.Rand) (*UseCase, error) {
	if c == nil {
		c = &conf.Slot{}
	}
	if n == nil {
		n = notify.Noop{}
	}
	sessions, err := session.NewPool(int(c.WorkerPool), logger)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithCancel(context.Background())
	uc := &UseCase{
		ctx:      ctx,
		cancel:   cancel,
		repo:     repo,
		log:      log.NewHelper(logger),
		c:        c,
		gamePool: game.NewPool(),
		sessions: sessions,
		notify:   n,
		rng:      rng,
	}
	uc.board = jackpot.NewBoard(logger,
		jackpot.WithInterval(c.JackpotInterval.Or(jackpot.DefaultInterval)),
		jackpot.WithStore(repo),
		jackpot.WithOnChange(func(t jackpot.Tier, v int64) { metrics.SetJackpot(string(t), v) }),
	)
	return uc, nil
}

func (uc *UseCase) start() {
	go uc.board.Run(uc.ctx)
	go uc.sessions.StartAutoCleanup(uc.ctx,
		uc.c.SessionIdleTtl.Or(defaultIdleTTL),
		uc.c.CleanupInterval.Or(defaultCleanupInterval),
		uc.onEvicted,
	)

	ids := make([]int64, 0)
	for _, g := range uc.gamePool.List() {
		ids = append(ids, g.GameID())
	}
	go metrics.ReportRoundMetrics(uc.ctx, uc.log.Logger(), uc.repo, ids, uc.sessions.Len)
}

// cleanOnStartup 启动时清理 Redis 会话标记
func (uc *UseCase) cleanOnStartup() {
	ctx, cancel := context.WithTimeout(context.Background(), cleanupTimeout)
	defer cancel()

	if err := uc.repo.CleanSessionKeys(ctx); err != nil {
		uc.log.Warnf("startup clean session keys: %v", err)
	}
}

// GameInfo 游戏与其档位当前奖池
type GameInfo struct {
	Game    base.IGame
	Jackpot int64
}

// ListGames 返回游戏列表（按 GameID 升序）
func (uc *UseCase) ListGames() []GameInfo {
	all := uc.gamePool.List()
	out := make([]GameInfo, len(all))
	for i, g := range all {
		out[i] = GameInfo{Game: g, Jackpot: uc.board.Amount(g.Tier())}
	}
	return out
}

// GetGame 按 gameID 获取游戏
func (uc *UseCase) GetGame(gameID int64) (base.IGame, bool) {
	return uc.gamePool.Get(gameID)
}

// Jackpots 奖池快照
func (uc *UseCase) Jackpots() []jackpot.Entry {
	return uc.board.Snapshot()
}

// PayTable 三连赔付表与理论返还率
func (uc *UseCase) PayTable() ([]slot.PayLine, float64) {
	return slot.PayTable(), slot.TheoreticalRTP()
}

func (uc *UseCase) newMachine(sessionID string, gameID int64) *slot.Machine {
	balance, bet := uc.c.InitialBalance, uc.c.DefaultBet
	if balance <= 0 {
		balance = slot.DefaultBalance
	}
	if bet <= 0 {
		bet = slot.DefaultBet
	}
	ticks := int(uc.c.Ticks)
	if ticks <= 0 {
		ticks = slot.DefaultTicks
	}
	return slot.NewMachine(
		slot.WithBalance(balance, bet),
		slot.WithTicks(uc.c.TickInterval.Or(slot.DefaultTickInterval), ticks),
		slot.WithRand(uc.rng),
		slot.WithSubmit(uc.sessions.Submit),
		slot.WithOnTick(func(slot.State) { metrics.ObserveFrame(gameID) }),
		slot.WithOnSettle(uc.settleHook(sessionID, gameID)),
		slot.WithLogger(uc.log.Logger()),
	)
}

// idleTTL 在线标记的过期时间
func (uc *UseCase) idleTTL() time.Duration {
	return uc.c.SessionIdleTtl.Or(defaultIdleTTL)
}

// OpenSession 打开一个游戏会话，挂载一台新机器
func (uc *UseCase) OpenSession(ctx context.Context, gameID int64) (*session.Session, error) {
	if _, ok := uc.gamePool.Get(gameID); !ok {
		return nil, errGameNotFound(gameID)
	}
	id, err := uc.repo.NextSessionID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("generate session id failed: %w", err)
	}

	s := session.New(id, gameID, uc.newMachine(id, gameID))
	if !uc.sessions.Add(s) {
		s.Close()
		return nil, fmt.Errorf("duplicate session id %s", id)
	}
	if err := uc.repo.MarkSessionActive(ctx, id, gameID, uc.idleTTL()); err != nil {
		uc.log.Warnf("mark session active failed, session=%s: %v", id, err)
	}
	metrics.SetActiveSessions(uc.sessions.Len())
	uc.log.Infof("session opened: id=%s game=%d", id, gameID)
	return s, nil
}

// GetSession 按 ID 获取会话并刷新活跃时间
func (uc *UseCase) GetSession(id string) (*session.Session, error) {
	s, ok := uc.sessions.Get(id)
	if !ok {
		return nil, errSessionNotFound(id)
	}
	s.Touch()
	return s, nil
}

// ListSessions 所有打开的会话（按创建时间倒序）
func (uc *UseCase) ListSessions() []*session.Session {
	return uc.sessions.List()
}

// Spin 触发一次转动；wait 时阻塞到结算或 ctx 结束。转动中/余额不足时 accepted=false。
func (uc *UseCase) Spin(ctx context.Context, id string, wait bool) (bool, slot.State, error) {
	s, err := uc.GetSession(id)
	if err != nil {
		return false, slot.State{}, err
	}
	m := s.Machine()
	accepted := m.Spin()
	if accepted && wait {
		if err := m.Wait(ctx); err != nil {
			return accepted, m.Snapshot(), err
		}
	}
	if accepted {
		if err := uc.repo.MarkSessionActive(ctx, id, s.GetGameID(), uc.idleTTL()); err != nil {
			uc.log.Warnf("refresh session failed, session=%s: %v", id, err)
		}
	}
	return accepted, m.Snapshot(), nil
}

// ChangeBet 调整下注。delta 只能是 ±BetStep；转动中忽略。
func (uc *UseCase) ChangeBet(ctx context.Context, id string, delta int64) (bool, slot.State, error) {
	if delta != slot.BetStep && delta != -slot.BetStep {
		return false, slot.State{}, errInvalidArgument("delta must be %d or %d", slot.BetStep, -slot.BetStep)
	}
	s, err := uc.GetSession(id)
	if err != nil {
		return false, slot.State{}, err
	}
	m := s.Machine()
	accepted := m.ChangeBetIdle(delta)
	return accepted, m.Snapshot(), nil
}

// CloseSession 拆除会话；开启 export_history 时返回历史记录链接
func (uc *UseCase) CloseSession(ctx context.Context, id string) (slot.State, string, error) {
	s, ok := uc.sessions.Remove(id)
	if !ok {
		return slot.State{}, "", errSessionNotFound(id)
	}
	url := uc.finalize(ctx, s)
	return s.Machine().Snapshot(), url, nil
}

// onEvicted 空闲清理后的收尾
func (uc *UseCase) onEvicted(s *session.Session) {
	uc.log.Infof("session evicted: id=%s idle since %s", s.GetID(), s.GetLastActive().Format(time.DateTime))
	uc.finalize(uc.ctx, s)
}

func (uc *UseCase) finalize(ctx context.Context, s *session.Session) string {
	metrics.SetActiveSessions(uc.sessions.Len())
	if err := uc.repo.ClearSession(ctx, s.GetID()); err != nil {
		uc.log.Warnf("clear session failed, session=%s: %v", s.GetID(), err)
	}
	st := s.Machine().Snapshot()
	uc.log.Infof("session closed: id=%s spins=%d balance=%d cumulative_win=%d", s.GetID(), st.Spins, st.Balance, st.CumulativeWin)

	if !uc.c.ExportHistory || st.Spins == 0 {
		return ""
	}
	url, err := uc.exportHistory(ctx, s.GetID())
	if err != nil {
		uc.log.Warnf("export history failed, session=%s: %v", s.GetID(), err)
		return ""
	}
	return url
}
