package xgo

import (
	"sync"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Money 按地区把整数金额渲染成货币文本，如 "10 000 ₽"（分组与符号前均为不换行空格）
type Money struct {
	printer *message.Printer
	unit    currency.Unit
}

var (
	defaultMoney     *Money
	defaultMoneyOnce sync.Once
)

// NewMoney locale 如 "ru-RU"，code 为 ISO 4217 代码；非法值回退到 ru-RU / RUB
func NewMoney(locale, code string) *Money {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.Russian
	}
	unit, err := currency.ParseISO(code)
	if err != nil {
		unit = currency.RUB
	}
	return &Money{printer: message.NewPrinter(tag), unit: unit}
}

// Format 整数金额，无小数位
func (m *Money) Format(amount int64) string {
	return m.printer.Sprintf("%d\u00a0%v", amount, currency.NarrowSymbol(m.unit))
}

// FormatMoney 使用默认 ru-RU / RUB 格式
func FormatMoney(amount int64) string {
	defaultMoneyOnce.Do(func() {
		defaultMoney = NewMoney("ru-RU", "RUB")
	})
	return defaultMoney.Format(amount)
}
