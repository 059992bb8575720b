package slot

import "testing"

func TestPayout(t *testing.T) {
	cases := []struct {
		name string
		o    Outcome
		bet  int64
		want int64
	}{
		{"三个7", Outcome{Seven, Seven, Seven}, 100, 10000},
		{"三个皇冠", Outcome{Crown, Crown, Crown}, 100, 5000},
		{"三个钻石", Outcome{Diamond, Diamond, Diamond}, 10, 300},
		{"三个钱袋", Outcome{Money, Money, Money}, 10, 200},
		{"三个老虎机", Outcome{Bandit, Bandit, Bandit}, 10, 150},
		{"三个星星", Outcome{Star, Star, Star}, 10, 100},
		{"三个四叶草", Outcome{Clover, Clover, Clover}, 10, 80},
		{"三个铃铛", Outcome{Bell, Bell, Bell}, 1000, 5000},
		{"前两个相同", Outcome{Diamond, Diamond, Bell}, 100, 200},
		{"后两个相同", Outcome{Bell, Star, Star}, 100, 200},
		{"首尾相同不算", Outcome{Star, Bell, Star}, 100, 0},
		{"全不同", Outcome{Crown, Money, Bell}, 100, 0},
		{"空结果", Outcome{}, 100, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Payout(c.o, c.bet); got != c.want {
				t.Errorf("Payout(%v, %d) = %d, want %d", c.o, c.bet, got, c.want)
			}
		})
	}
}

// 三连必须先于对子判断，否则 777 只会拿到 x2
func TestTriplePrecedesPair(t *testing.T) {
	for _, s := range Symbols {
		if m := Multiplier(Outcome{s, s, s}); m <= PairMultiplier {
			t.Errorf("triple %s multiplier = %d, want > %d", s, m, PairMultiplier)
		}
	}
}

func TestPayTableOrder(t *testing.T) {
	pt := PayTable()
	if len(pt) != len(Symbols) {
		t.Fatalf("pay table size = %d, want %d", len(pt), len(Symbols))
	}
	for i := 1; i < len(pt); i++ {
		if pt[i].Multiplier > pt[i-1].Multiplier {
			t.Errorf("pay table not descending at %d: %v", i, pt)
		}
	}
	if pt[0].Symbol != Seven || pt[0].Multiplier != 100 {
		t.Errorf("top line = %+v, want 7️⃣ x100", pt[0])
	}
}

func TestDrawUsesAlphabet(t *testing.T) {
	r := &scriptedRand{seq: []int{0, 7, 3}}
	o := Draw(r)
	if o != (Outcome{Crown, Seven, Money}) {
		t.Fatalf("Draw = %v", o)
	}
	for _, s := range Draw(DefaultRand) {
		if !s.Valid() {
			t.Errorf("symbol %q not in alphabet", s)
		}
	}
}
