package metrics

import (
	"context"
	"time"

	"royalslots/pkg/xgo"

	"github.com/go-kratos/kratos/v2/log"
)

// RoundLoader 读取账本汇总
type RoundLoader interface {
	GetRoundAmounts(ctx context.Context, gameID int64) (bet, win, count int64, err error)
}

// ReportRoundMetrics 周期性按账本刷新 RTP 与局数，ctx 取消后退出
func ReportRoundMetrics(ctx context.Context, logger log.Logger, repo RoundLoader, gameIDs []int64, sessions func() int) {
	helper := log.NewHelper(logger)
	ticker := time.NewTicker(reportInterval)
	defer ticker.Stop()

	reportOnce(ctx, helper, repo, gameIDs, sessions)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			reportOnce(ctx, helper, repo, gameIDs, sessions)
		}
	}
}

func reportOnce(ctx context.Context, helper *log.Helper, repo RoundLoader, gameIDs []int64, sessions func() int) {
	if sessions != nil {
		SetActiveSessions(sessions())
	}
	if repo == nil {
		return
	}
	for _, id := range gameIDs {
		bet, win, count, err := repo.GetRoundAmounts(ctx, id)
		if err != nil {
			helper.Warnf("load round amounts failed, game=%d: %v", id, err)
			continue
		}
		g := gameLabel(id)
		rtpPct.WithLabelValues(g).Set(xgo.Pct(win, bet))
		roundCount.WithLabelValues(g).Set(float64(count))
	}
}
