package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	labelGameID    = "game_id"
	labelTier      = "tier"
	reportInterval = 10 * time.Second
)

// 指标名规范：royalslots_<name>，按 game_id 区分

var (
	spins    = newCounter("royalslots_spins_total", "结算局数")
	totalBet = newCounter("royalslots_bet_total", "累计下注")
	totalWin = newCounter("royalslots_win_total", "累计赢分")
	bigWins  = newCounter("royalslots_big_wins_total", "大奖次数")
	frames   = newCounter("royalslots_frames_total", "动画帧数")

	rtpPct     = newGauge("royalslots_rtp_pct", "RTP %（账本口径）", labelGameID)
	roundCount = newGauge("royalslots_round_count", "账本局数", labelGameID)
	jackpot    = newGauge("royalslots_jackpot_amount", "奖池金额", labelTier)

	activeSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "royalslots_active_sessions",
		Help: "打开的会话数",
	})

	spinDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "royalslots_spin_duration_seconds",
		Help:    "一次转动从开始到结算的耗时",
		Buckets: []float64{0.5, 1, 1.5, 2, 2.5, 3, 5},
	}, []string{labelGameID})
)

func newCounter(name, help string) *prometheus.CounterVec {
	return promauto.NewCounterVec(prometheus.CounterOpts{Name: name, Help: help}, []string{labelGameID})
}

func newGauge(name, help, label string) *prometheus.GaugeVec {
	return promauto.NewGaugeVec(prometheus.GaugeOpts{Name: name, Help: help}, []string{label})
}

func gameLabel(gameID int64) string {
	if gameID <= 0 {
		return "unknown"
	}
	return strconv.FormatInt(gameID, 10)
}

// ObserveSpin 记录一次结算
func ObserveSpin(gameID, bet, win int64, d time.Duration, big bool) {
	g := gameLabel(gameID)
	spins.WithLabelValues(g).Inc()
	totalBet.WithLabelValues(g).Add(float64(bet))
	totalWin.WithLabelValues(g).Add(float64(win))
	spinDuration.WithLabelValues(g).Observe(d.Seconds())
	if big {
		bigWins.WithLabelValues(g).Inc()
	}
}

// ObserveFrame 记录一帧动画
func ObserveFrame(gameID int64) {
	frames.WithLabelValues(gameLabel(gameID)).Inc()
}

// SetActiveSessions 当前会话数
func SetActiveSessions(n int) {
	activeSessions.Set(float64(n))
}

// SetJackpot 奖池金额
func SetJackpot(tier string, amount int64) {
	jackpot.WithLabelValues(tier).Set(float64(amount))
}
