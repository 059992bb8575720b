package service

import (
	"context"
	"time"

	v1 "royalslots/api/slot/v1"
	"royalslots/internal/biz"
	"royalslots/internal/biz/session"
	"royalslots/internal/biz/slot"
	"royalslots/pkg/xgo"

	"github.com/go-kratos/kratos/v2/log"
)

// SlotService 老虎机 HTTP 服务，挂载/拆除每个会话的引擎
type SlotService struct {
	uc  *biz.UseCase
	log *log.Helper
}

var _ v1.SlotServiceHTTPServer = (*SlotService)(nil)

// NewSlotService new a slot service.
func NewSlotService(uc *biz.UseCase, logger log.Logger) *SlotService {
	return &SlotService{
		uc:  uc,
		log: log.NewHelper(logger),
	}
}

// ListGames 游戏列表及当前奖池
func (s *SlotService) ListGames(ctx context.Context, in *v1.ListGamesRequest) (*v1.ListGamesReply, error) {
	all := s.uc.ListGames()
	games := make([]*v1.Game, len(all))
	for i, info := range all {
		g := info.Game
		games[i] = &v1.Game{
			GameId:      g.GameID(),
			Name:        g.Name(),
			Icon:        g.Icon(),
			Category:    string(g.Tier()),
			Hot:         g.Hot(),
			Jackpot:     info.Jackpot,
			JackpotText: xgo.FormatMoney(info.Jackpot),
		}
	}
	return &v1.ListGamesReply{Games: games, Total: int32(len(games))}, nil
}

// ListJackpots 奖池
func (s *SlotService) ListJackpots(ctx context.Context, in *v1.ListJackpotsRequest) (*v1.ListJackpotsReply, error) {
	entries := s.uc.Jackpots()
	out := make([]*v1.Jackpot, len(entries))
	for i, e := range entries {
		out[i] = &v1.Jackpot{
			Tier:       string(e.Tier),
			Title:      e.Title,
			Icon:       e.Icon,
			Amount:     e.Amount,
			AmountText: xgo.FormatMoney(e.Amount),
		}
	}
	return &v1.ListJackpotsReply{Jackpots: out}, nil
}

// GetPayTable 赔付表
func (s *SlotService) GetPayTable(ctx context.Context, in *v1.GetPayTableRequest) (*v1.GetPayTableReply, error) {
	lines, rtp := s.uc.PayTable()
	out := make([]*v1.PayLine, len(lines))
	for i, l := range lines {
		out[i] = &v1.PayLine{Symbol: string(l.Symbol), Multiplier: int32(l.Multiplier)}
	}
	symbols := make([]string, len(slot.Symbols))
	for i, sym := range slot.Symbols {
		symbols[i] = string(sym)
	}
	return &v1.GetPayTableReply{
		Lines:          out,
		PairMultiplier: slot.PairMultiplier,
		TheoreticalRtp: rtp,
		Symbols:        symbols,
	}, nil
}

// OpenSession 打开会话
func (s *SlotService) OpenSession(ctx context.Context, in *v1.OpenSessionRequest) (*v1.SessionReply, error) {
	sess, err := s.uc.OpenSession(ctx, in.GameId)
	if err != nil {
		s.log.Errorf("OpenSession failed, game=%d: %v", in.GameId, err)
		return nil, err
	}
	return &v1.SessionReply{Session: buildState(sess, sess.Machine().Snapshot())}, nil
}

// ListSessions 打开的会话
func (s *SlotService) ListSessions(ctx context.Context, in *v1.ListSessionsRequest) (*v1.ListSessionsReply, error) {
	all := s.uc.ListSessions()
	out := make([]*v1.SessionState, len(all))
	for i, sess := range all {
		out[i] = buildState(sess, sess.Machine().Snapshot())
	}
	return &v1.ListSessionsReply{Sessions: out, Total: int32(len(out))}, nil
}

// GetSession 状态快照，转动中 reels 为当前动画帧
func (s *SlotService) GetSession(ctx context.Context, in *v1.GetSessionRequest) (*v1.SessionReply, error) {
	sess, err := s.uc.GetSession(in.SessionId)
	if err != nil {
		return nil, err
	}
	return &v1.SessionReply{Session: buildState(sess, sess.Machine().Snapshot())}, nil
}

// Spin 转动
func (s *SlotService) Spin(ctx context.Context, in *v1.SpinRequest) (*v1.SpinReply, error) {
	accepted, st, err := s.uc.Spin(ctx, in.SessionId, in.Wait)
	if err != nil {
		return nil, err
	}
	sess, err := s.uc.GetSession(in.SessionId)
	if err != nil {
		return nil, err
	}
	return &v1.SpinReply{Accepted: accepted, Session: buildState(sess, st)}, nil
}

// ChangeBet 调整下注
func (s *SlotService) ChangeBet(ctx context.Context, in *v1.ChangeBetRequest) (*v1.ChangeBetReply, error) {
	accepted, st, err := s.uc.ChangeBet(ctx, in.SessionId, in.Delta)
	if err != nil {
		return nil, err
	}
	sess, err := s.uc.GetSession(in.SessionId)
	if err != nil {
		return nil, err
	}
	return &v1.ChangeBetReply{Accepted: accepted, Session: buildState(sess, st)}, nil
}

// CloseSession 关闭会话
func (s *SlotService) CloseSession(ctx context.Context, in *v1.CloseSessionRequest) (*v1.CloseSessionReply, error) {
	sess, err := s.uc.GetSession(in.SessionId)
	if err != nil {
		return nil, err
	}
	st, url, err := s.uc.CloseSession(ctx, in.SessionId)
	if err != nil {
		return nil, err
	}
	return &v1.CloseSessionReply{Session: buildState(sess, st), HistoryUrl: url}, nil
}

func buildState(sess *session.Session, st slot.State) *v1.SessionState {
	return &v1.SessionState{
		SessionId:         sess.GetID(),
		GameId:            sess.GetGameID(),
		Balance:           st.Balance,
		BalanceText:       xgo.FormatMoney(st.Balance),
		Bet:               st.Bet,
		BetText:           xgo.FormatMoney(st.Bet),
		Reels:             st.Outcome.Strings(),
		LastWin:           st.LastWin,
		LastWinText:       xgo.FormatMoney(st.LastWin),
		CumulativeWin:     st.CumulativeWin,
		CumulativeWinText: xgo.FormatMoney(st.CumulativeWin),
		Spinning:          st.Spinning,
		CanSpin:           st.CanSpin(),
		Frame:             int32(st.Frame),
		Spins:             st.Spins,
		MinBet:            slot.MinBet,
		MaxBet:            slot.MaxBet,
		BetStep:           slot.BetStep,
		CreatedAt:         sess.GetCreatedAt().Format(time.DateTime),
	}
}
