package slot

// 会话默认值与下注边界
const (
	DefaultBalance int64 = 10000
	DefaultBet     int64 = 100
	MinBet         int64 = 10
	MaxBet         int64 = 1000
	BetStep        int64 = 10
)

// State 一台机器的会话状态，只通过下面的转换函数修改
type State struct {
	Balance       int64
	Bet           int64
	Stake         int64   // 本轮锁定的下注额，结算按它计算
	Outcome       Outcome // 转动中为动画帧，结算后为最终结果
	LastWin       int64
	CumulativeWin int64
	Spinning      bool
	Frame         int
	Spins         int64
}

// NewState 初始状态，bet 不合法时回退到 DefaultBet
func NewState(balance, bet int64) State {
	if balance < 0 {
		balance = 0
	}
	if !validBet(bet) {
		bet = DefaultBet
	}
	return State{Balance: balance, Bet: bet}
}

func validBet(bet int64) bool {
	return bet >= MinBet && bet <= MaxBet && bet%BetStep == 0
}

// CanSpin 是否满足开转条件
func (s State) CanSpin() bool {
	return !s.Spinning && s.Balance >= s.Bet
}

// begin IDLE -> SPINNING：扣注、清空上次赢额
func (s State) begin() (State, bool) {
	if !s.CanSpin() {
		return s, false
	}
	s.Spinning = true
	s.Balance -= s.Bet
	s.Stake = s.Bet
	s.LastWin = 0
	s.Frame = 0
	return s, true
}

// tick SPINNING -> SPINNING：只刷新显示
func (s State) tick(o Outcome) State {
	s.Outcome = o
	s.Frame++
	return s
}

// settle SPINNING -> IDLE：按锁定的下注额派彩
func (s State) settle(final Outcome) (State, int64) {
	win := Payout(final, s.Stake)
	s.Outcome = final
	s.LastWin = win
	if win > 0 {
		s.Balance += win
		s.CumulativeWin += win
	}
	s.Spinning = false
	s.Spins++
	return s, win
}

// abort SPINNING -> IDLE：未结算，退回锁定的下注
func (s State) abort() State {
	s.Balance += s.Stake
	s.Spinning = false
	return s
}

// withBetDelta 超出边界时不变
func (s State) withBetDelta(delta int64) (State, bool) {
	next := s.Bet + delta
	if delta == 0 || !validBet(next) {
		return s, false
	}
	s.Bet = next
	return s, true
}
