package slot

// Symbol 图标，按字面值比较
type Symbol string

const (
	Crown   Symbol = "👑"
	Diamond Symbol = "💎"
	Bandit  Symbol = "🎰"
	Money   Symbol = "💰"
	Star    Symbol = "⭐"
	Clover  Symbol = "🍀"
	Bell    Symbol = "🔔"
	Seven   Symbol = "7️⃣"
)

// Symbols 固定字母表，抽取时按下标均匀选择
var Symbols = [...]Symbol{Crown, Diamond, Bandit, Money, Star, Clover, Bell, Seven}

// Reels 每次转动的转轴数
const Reels = 3

// Outcome 三个转轴的结果，零值表示尚未转动
type Outcome [Reels]Symbol

// IsEmpty 是否为空结果
func (o Outcome) IsEmpty() bool {
	return o == Outcome{}
}

// Strings 便于序列化
func (o Outcome) Strings() []string {
	if o.IsEmpty() {
		return nil
	}
	out := make([]string, Reels)
	for i, s := range o {
		out[i] = string(s)
	}
	return out
}

// Valid 是否所有位置都属于字母表
func (s Symbol) Valid() bool {
	for _, v := range Symbols {
		if v == s {
			return true
		}
	}
	return false
}
