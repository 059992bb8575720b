package game

import (
	"sort"
	"sync"

	"royalslots/internal/biz/game/base"
)

type Pool struct {
	mu   sync.RWMutex
	byID map[int64]base.IGame
	list []base.IGame
}

func NewPool() *Pool {
	p := &Pool{
		byID: make(map[int64]base.IGame),
		list: make([]base.IGame, 0, len(gameInstances)),
	}
	for _, g := range gameInstances {
		p.byID[g.GameID()] = g
		p.list = append(p.list, g)
	}
	sort.Slice(p.list, func(i, j int) bool {
		return p.list[i].GameID() < p.list[j].GameID()
	})
	return p
}

func (p *Pool) Get(gameID int64) (base.IGame, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	g, ok := p.byID[gameID]
	return g, ok
}

func (p *Pool) List() []base.IGame {
	p.mu.RLock()
	defer p.mu.RUnlock()
	cpy := append([]base.IGame{}, p.list...)
	return cpy
}

// Hot 标记为热门的游戏
func (p *Pool) Hot() []base.IGame {
	p.mu.RLock()
	defer p.mu.RUnlock()
	var out []base.IGame
	for _, g := range p.list {
		if g.Hot() {
			out = append(out, g)
		}
	}
	return out
}
