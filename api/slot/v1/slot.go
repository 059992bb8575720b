package v1

import (
	"github.com/go-kratos/kratos/v2/errors"
)

// 下注调整步长，与引擎保持一致
const betStep = 10

type Game struct {
	GameId      int64  `json:"game_id"`
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Category    string `json:"category"`
	Hot         bool   `json:"hot"`
	Jackpot     int64  `json:"jackpot"`
	JackpotText string `json:"jackpot_text"`
}

type ListGamesRequest struct{}

type ListGamesReply struct {
	Games []*Game `json:"games"`
	Total int32   `json:"total"`
}

type Jackpot struct {
	Tier       string `json:"tier"`
	Title      string `json:"title"`
	Icon       string `json:"icon"`
	Amount     int64  `json:"amount"`
	AmountText string `json:"amount_text"`
}

type ListJackpotsRequest struct{}

type ListJackpotsReply struct {
	Jackpots []*Jackpot `json:"jackpots"`
}

type PayLine struct {
	Symbol     string `json:"symbol"`
	Multiplier int32  `json:"multiplier"`
}

type GetPayTableRequest struct{}

type GetPayTableReply struct {
	Lines          []*PayLine `json:"lines"`
	PairMultiplier int32      `json:"pair_multiplier"`
	TheoreticalRtp float64    `json:"theoretical_rtp"`
	Symbols        []string   `json:"symbols"`
}

// SessionState 会话状态快照，*_text 为本地化金额
type SessionState struct {
	SessionId         string   `json:"session_id"`
	GameId            int64    `json:"game_id"`
	Balance           int64    `json:"balance"`
	BalanceText       string   `json:"balance_text"`
	Bet               int64    `json:"bet"`
	BetText           string   `json:"bet_text"`
	Reels             []string `json:"reels"`
	LastWin           int64    `json:"last_win"`
	LastWinText       string   `json:"last_win_text"`
	CumulativeWin     int64    `json:"cumulative_win"`
	CumulativeWinText string   `json:"cumulative_win_text"`
	Spinning          bool     `json:"spinning"`
	CanSpin           bool     `json:"can_spin"`
	Frame             int32    `json:"frame"`
	Spins             int64    `json:"spins"`
	MinBet            int64    `json:"min_bet"`
	MaxBet            int64    `json:"max_bet"`
	BetStep           int64    `json:"bet_step"`
	CreatedAt         string   `json:"created_at"`
}

type OpenSessionRequest struct {
	GameId int64 `json:"game_id"`
}

func (x *OpenSessionRequest) Validate() error {
	if x.GameId <= 0 {
		return errors.BadRequest("INVALID_ARGUMENT", "game_id must be positive")
	}
	return nil
}

type SessionReply struct {
	Session *SessionState `json:"session"`
}

type GetSessionRequest struct {
	SessionId string `json:"session_id"`
}

func (x *GetSessionRequest) Validate() error {
	return validateSessionID(x.SessionId)
}

type ListSessionsRequest struct{}

type ListSessionsReply struct {
	Sessions []*SessionState `json:"sessions"`
	Total    int32           `json:"total"`
}

type SpinRequest struct {
	SessionId string `json:"session_id"`
	Wait      bool   `json:"wait"`
}

func (x *SpinRequest) Validate() error {
	return validateSessionID(x.SessionId)
}

type SpinReply struct {
	Accepted bool          `json:"accepted"`
	Session  *SessionState `json:"session"`
}

type ChangeBetRequest struct {
	SessionId string `json:"session_id"`
	Delta     int64  `json:"delta"`
}

func (x *ChangeBetRequest) Validate() error {
	if err := validateSessionID(x.SessionId); err != nil {
		return err
	}
	if x.Delta != betStep && x.Delta != -betStep {
		return errors.BadRequest("INVALID_ARGUMENT", "delta must be 10 or -10")
	}
	return nil
}

type ChangeBetReply struct {
	Accepted bool          `json:"accepted"`
	Session  *SessionState `json:"session"`
}

type CloseSessionRequest struct {
	SessionId string `json:"session_id"`
}

func (x *CloseSessionRequest) Validate() error {
	return validateSessionID(x.SessionId)
}

type CloseSessionReply struct {
	Session    *SessionState `json:"session"`
	HistoryUrl string        `json:"history_url,omitempty"`
}

func validateSessionID(id string) error {
	if id == "" {
		return errors.BadRequest("INVALID_ARGUMENT", "session_id is required")
	}
	return nil
}
