package data

import (
	"context"
	"fmt"
	"strings"
	"time"

	"royalslots/internal/biz"
)

const reelSep = ","

// Round 账本实体
type Round struct {
	ID        int64     `xorm:"pk autoincr 'id'"`
	SessionID string    `xorm:"varchar(64) index 'session_id'"`
	GameID    int64     `xorm:"index 'game_id'"`
	Round     int64     `xorm:"'round'"`
	Bet       int64     `xorm:"'bet'"`
	Win       int64     `xorm:"'win'"`
	Balance   int64     `xorm:"'balance'"`
	Reels     string    `xorm:"varchar(64) 'reels'"`
	CreatedAt time.Time `xorm:"'created_at'"`
}

func (m *Round) TableName() string {
	return "slot_round"
}

func toEntity(r *biz.Round) *Round {
	return &Round{
		SessionID: r.SessionID,
		GameID:    r.GameID,
		Round:     r.Round,
		Bet:       r.Bet,
		Win:       r.Win,
		Balance:   r.Balance,
		Reels:     strings.Join(r.Reels, reelSep),
		CreatedAt: r.CreatedAt,
	}
}

func (m *Round) toBiz() *biz.Round {
	var reels []string
	if m.Reels != "" {
		reels = strings.Split(m.Reels, reelSep)
	}
	return &biz.Round{
		SessionID: m.SessionID,
		GameID:    m.GameID,
		Round:     m.Round,
		Bet:       m.Bet,
		Win:       m.Win,
		Balance:   m.Balance,
		Reels:     reels,
		CreatedAt: m.CreatedAt,
	}
}

// SaveRound 写入一局
func (r *dataRepo) SaveRound(ctx context.Context, round *biz.Round) error {
	if round == nil {
		return nil
	}
	if _, err := r.data.db.Context(ctx).Insert(toEntity(round)); err != nil {
		return fmt.Errorf("insert round: %w", err)
	}
	return nil
}

// ListRounds 会话的全部记录，按局号升序
func (r *dataRepo) ListRounds(ctx context.Context, sessionID string) ([]*biz.Round, error) {
	var rows []*Round
	err := r.data.db.Context(ctx).
		Where("session_id = ?", sessionID).
		Asc("round").
		Find(&rows)
	if err != nil {
		return nil, fmt.Errorf("query rounds: %w", err)
	}
	out := make([]*biz.Round, len(rows))
	for i, row := range rows {
		out[i] = row.toBiz()
	}
	return out, nil
}

// GetRoundAmounts 某游戏的总下注/总赢/局数
func (r *dataRepo) GetRoundAmounts(ctx context.Context, gameID int64) (bet, win, count int64, err error) {
	var result struct {
		TotalBet   int64 `xorm:"total_bet"`
		TotalWin   int64 `xorm:"total_win"`
		RoundCount int64 `xorm:"round_count"`
	}
	_, err = r.data.db.Context(ctx).SQL(`
		SELECT
			COALESCE(SUM(bet), 0) AS total_bet,
			COALESCE(SUM(win), 0) AS total_win,
			COUNT(*) AS round_count
		FROM slot_round
		WHERE game_id = ?
	`, gameID).Get(&result)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("query round amounts: %w", err)
	}
	return result.TotalBet, result.TotalWin, result.RoundCount, nil
}
