package biz

import (
	"context"
	"fmt"
	"time"

	"royalslots/internal/biz/chart"
	"royalslots/internal/biz/metrics"
	"royalslots/internal/biz/slot"
	"royalslots/internal/notify"
	"royalslots/pkg/xgo"
)

const (
	ledgerTimeout = 5 * time.Second
	exportTimeout = 30 * time.Second
)

// Round 一局结算记录
type Round struct {
	SessionID string    `json:"session_id"`
	GameID    int64     `json:"game_id"`
	Round     int64     `json:"round"`
	Bet       int64     `json:"bet"`
	Win       int64     `json:"win"`
	Balance   int64     `json:"balance"`
	Reels     []string  `json:"reels"`
	CreatedAt time.Time `json:"created_at"`
}

// settleHook 结算后的副作用：账本、指标、大奖通知。失败只记日志，不回滚已结算的局。
func (uc *UseCase) settleHook(sessionID string, gameID int64) func(slot.Result) {
	return func(res slot.Result) {
		big := uc.isBigWin(res)
		metrics.ObserveSpin(gameID, res.Stake, res.Win, res.Duration, big)

		round := &Round{
			SessionID: sessionID,
			GameID:    gameID,
			Round:     res.State.Spins,
			Bet:       res.Stake,
			Win:       res.Win,
			Balance:   res.State.Balance,
			Reels:     res.Outcome.Strings(),
			CreatedAt: time.Now(),
		}
		ctx, cancel := context.WithTimeout(uc.ctx, ledgerTimeout)
		if err := uc.repo.SaveRound(ctx, round); err != nil {
			uc.log.Errorf("save round failed, round=%s: %v", xgo.ToJSON(round), err)
		}
		cancel()

		if big {
			go uc.notifyBigWin(round)
		}
	}
}

func (uc *UseCase) isBigWin(res slot.Result) bool {
	m := uc.c.BigWinMultiplier
	if m <= 0 {
		m = defaultBigWinMultiplier
	}
	return res.Stake > 0 && res.Win >= m*res.Stake
}

func (uc *UseCase) notifyBigWin(r *Round) {
	defer xgo.RecoverFromError(nil)

	name := ""
	if g, ok := uc.gamePool.Get(r.GameID); ok {
		name = g.Name()
	}
	msg := notify.BuildBigWinMessage(&notify.BigWin{
		SessionID:  r.SessionID,
		GameName:   name,
		Reels:      r.Reels,
		Bet:        r.Bet,
		Win:        r.Win,
		Balance:    r.Balance,
		Multiplier: r.Win / r.Bet,
		BetText:    xgo.FormatMoney(r.Bet),
		WinText:    xgo.FormatMoney(r.Win),
	})
	ctx, cancel := context.WithTimeout(uc.ctx, 10*time.Second)
	defer cancel()
	if err := uc.notify.Send(ctx, msg); err != nil {
		uc.log.Warnf("big win notify failed, session=%s: %v", r.SessionID, err)
	}
}

// exportHistory 会话关闭时把账本记录上传到 S3，返回下载链接
func (uc *UseCase) exportHistory(ctx context.Context, sessionID string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, exportTimeout)
	defer cancel()

	rounds, err := uc.repo.ListRounds(ctx, sessionID)
	if err != nil {
		return "", fmt.Errorf("list rounds: %w", err)
	}
	if len(rounds) == 0 {
		return "", nil
	}
	body, err := xgo.MarshalIndent(rounds)
	if err != nil {
		return "", fmt.Errorf("marshal rounds: %w", err)
	}
	prefix := fmt.Sprintf("sessions/%s/%s", time.Now().Format("20060102"), sessionID)
	url, err := uc.repo.UploadBytes(ctx, "", prefix+".json", "application/json", body)
	if err != nil {
		return "", fmt.Errorf("upload history: %w", err)
	}

	// 余额曲线，失败不影响历史导出
	if err := uc.exportChart(ctx, prefix+".html", rounds); err != nil {
		uc.log.Warnf("export chart failed, session=%s: %v", sessionID, err)
	}
	return url, nil
}

func (uc *UseCase) exportChart(ctx context.Context, key string, rounds []*Round) error {
	pts := make([]chart.Point, 0, len(rounds))
	for _, r := range rounds {
		pts = append(pts, chart.Point{
			Round:   r.Round,
			Balance: r.Balance,
			Win:     r.Win,
			Time:    r.CreatedAt.Format(time.DateTime),
		})
	}
	name := ""
	if g, ok := uc.gamePool.Get(rounds[0].GameID); ok {
		name = g.Name()
	}
	html, err := chart.Generate(pts, rounds[0].SessionID, name)
	if err != nil {
		return err
	}
	_, err = uc.repo.UploadBytes(ctx, "", key, "text/html; charset=utf-8", []byte(html))
	return err
}
