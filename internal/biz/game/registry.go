package game

import (
	"royalslots/internal/biz/game/base"
	"royalslots/internal/biz/jackpot"
)

var gameInstances = []base.IGame{
	base.NewBaseGame(1, "Royal Fortune", "👑", jackpot.Mega, true),
	base.NewBaseGame(2, "Diamond Rush", "💎", jackpot.Super, true),
	base.NewBaseGame(3, "Golden Empire", "🏛️", jackpot.Mini, false),
	base.NewBaseGame(4, "Lucky Seven", "🎰", jackpot.Mega, true),
	base.NewBaseGame(5, "Treasure Vault", "💰", jackpot.Super, false),
	base.NewBaseGame(6, "Pharaoh Gold", "📜", jackpot.Mini, false),
}
