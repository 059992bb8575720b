package game

import (
	"testing"

	"royalslots/internal/biz/jackpot"
)

func TestPool(t *testing.T) {
	p := NewPool()
	list := p.List()
	if len(list) != 6 {
		t.Fatalf("games = %d, want 6", len(list))
	}
	for i := 1; i < len(list); i++ {
		if list[i-1].GameID() >= list[i].GameID() {
			t.Errorf("list not ordered by id at %d", i)
		}
	}
	for _, g := range list {
		if !g.Tier().Valid() {
			t.Errorf("game %d has unknown tier %q", g.GameID(), g.Tier())
		}
	}

	g, ok := p.Get(4)
	if !ok || g.Name() != "Lucky Seven" || g.Tier() != jackpot.Mega || !g.Hot() {
		t.Errorf("Get(4) = %+v, %v", g, ok)
	}
	if _, ok := p.Get(99); ok {
		t.Errorf("Get(99) found")
	}
	if n := len(p.Hot()); n != 3 {
		t.Errorf("hot games = %d, want 3", n)
	}
}
