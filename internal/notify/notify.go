package notify

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// Field 卡片中的一个键值字段
type Field struct {
	Name  string
	Value string
}

// Message 通知消息。Content 为 Markdown 正文，Fields 按两列排版，Color 为卡片头颜色。
type Message struct {
	Title   string
	Content string
	Fields  []Field
	Color   string
}

// Notifier 通知发送接口
type Notifier interface {
	Send(ctx context.Context, msg *Message) error
}

// Noop 未配置 webhook 时使用
type Noop struct{}

func (Noop) Send(context.Context, *Message) error { return nil }

// BigWin 大奖通知内容
type BigWin struct {
	SessionID  string
	GameName   string
	Reels      []string
	Bet        int64
	Win        int64
	Balance    int64
	Multiplier int64
	BetText    string
	WinText    string
}

// 倍数达到 jackpotMultiplier 时卡片用红色
const jackpotMultiplier = 100

// BuildBigWinMessage 大奖卡片：转轴结果为正文，其余为字段
func BuildBigWinMessage(w *BigWin) *Message {
	if w == nil {
		return &Message{Title: "大奖"}
	}
	bet, win := w.BetText, w.WinText
	if bet == "" {
		bet = strconv.FormatInt(w.Bet, 10)
	}
	if win == "" {
		win = strconv.FormatInt(w.Win, 10)
	}
	color := "orange"
	if w.Multiplier >= jackpotMultiplier {
		color = "red"
	}
	return &Message{
		Title:   fmt.Sprintf("大奖 x%d", w.Multiplier),
		Content: fmt.Sprintf("**%s**", strings.Join(w.Reels, " ")),
		Fields: []Field{
			{Name: "会话", Value: w.SessionID},
			{Name: "游戏", Value: w.GameName},
			{Name: "下注", Value: bet},
			{Name: "赢分", Value: fmt.Sprintf("%s (x%d)", win, w.Multiplier)},
			{Name: "余额", Value: strconv.FormatInt(w.Balance, 10)},
		},
		Color: color,
	}
}
