package base

import "royalslots/internal/biz/jackpot"

// IGame 游戏接口，目录中的每个游戏都要实现
type IGame interface {
	GameID() int64
	Name() string
	Icon() string
	Tier() jackpot.Tier
	Hot() bool
}

// Default 基础游戏实现
type Default struct {
	gameID int64
	name   string
	icon   string
	tier   jackpot.Tier
	hot    bool
}

// NewBaseGame 创建基础游戏实例
func NewBaseGame(gameID int64, name, icon string, tier jackpot.Tier, hot bool) *Default {
	return &Default{
		gameID: gameID,
		name:   name,
		icon:   icon,
		tier:   tier,
		hot:    hot,
	}
}

func (g *Default) GameID() int64 {
	return g.gameID
}

func (g *Default) Name() string {
	return g.name
}

func (g *Default) Icon() string {
	return g.icon
}

func (g *Default) Tier() jackpot.Tier {
	return g.tier
}

func (g *Default) Hot() bool {
	return g.hot
}
