package slot

// PairMultiplier 相邻两个相同（0-1 或 1-2）的倍数
const PairMultiplier = 2

// tripleMultipliers 三连倍数表
var tripleMultipliers = map[Symbol]int{
	Seven:   100,
	Crown:   50,
	Diamond: 30,
	Money:   20,
	Bandit:  15,
	Star:    10,
	Clover:  8,
	Bell:    5,
}

// PayLine 赔付表中的一行
type PayLine struct {
	Symbol     Symbol
	Multiplier int
}

// PayTable 按倍数从高到低返回三连赔付表
func PayTable() []PayLine {
	out := make([]PayLine, 0, len(tripleMultipliers))
	for _, s := range []Symbol{Seven, Crown, Diamond, Money, Bandit, Star, Clover, Bell} {
		out = append(out, PayLine{Symbol: s, Multiplier: tripleMultipliers[s]})
	}
	return out
}

// Multiplier 结果对应的倍数；三连优先于相邻对
func Multiplier(o Outcome) int {
	if o.IsEmpty() {
		return 0
	}
	if o[0] == o[1] && o[1] == o[2] {
		return tripleMultipliers[o[0]]
	}
	if o[0] == o[1] || o[1] == o[2] {
		return PairMultiplier
	}
	return 0
}

// Payout 结果 o 在下注 bet 时的赢取金额
func Payout(o Outcome, bet int64) int64 {
	return int64(Multiplier(o)) * bet
}
