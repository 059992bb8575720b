package notify

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"royalslots/internal/conf"

	jsoniter "github.com/json-iterator/go"
)

func TestNewFeishuDisabled(t *testing.T) {
	for _, c := range []*conf.Notify{
		nil,
		{Enabled: false, WebhookUrl: "http://x"},
		{Enabled: true, WebhookUrl: "  "},
	} {
		if _, ok := NewFeishu(c).(Noop); !ok {
			t.Errorf("NewFeishu(%+v) should be Noop", c)
		}
	}
}

func TestFeishuSend(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = jsoniter.Unmarshal(body, &got)
		_, _ = w.Write([]byte(`{"code":0,"msg":"ok"}`))
	}))
	defer srv.Close()

	n := NewFeishu(&conf.Notify{Enabled: true, WebhookUrl: srv.URL, SigningSecret: "s", Prefix: "[dev]"})
	msg := BuildBigWinMessage(&BigWin{SessionID: "20261017-1-1", GameName: "Royal Fortune",
		Reels: []string{"7️⃣", "7️⃣", "7️⃣"}, Bet: 100, Win: 10000, Balance: 19900, Multiplier: 100})
	if err := n.Send(context.Background(), msg); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if got["sign"] == nil || got["timestamp"] == nil {
		t.Errorf("missing signature: %v", got)
	}
	card, _ := got["card"].(map[string]any)
	header, _ := card["header"].(map[string]any)
	title, _ := header["title"].(map[string]any)
	if s, _ := title["content"].(string); s != "[dev] 大奖 x100" {
		t.Errorf("title = %q", s)
	}
	if c, _ := header["template"].(string); c != "red" {
		t.Errorf("template = %q, want red", c)
	}
	elements, _ := card["elements"].([]any)
	if len(elements) != 2 {
		t.Fatalf("elements = %v", elements)
	}
	block, _ := elements[1].(map[string]any)
	fields, _ := block["fields"].([]any)
	if len(fields) != 5 {
		t.Errorf("fields = %d, want 5", len(fields))
	}
}

func TestFeishuCardPlainMessage(t *testing.T) {
	f := &Feishu{}
	card := f.card(&Message{Title: "t"})
	elements, _ := card["elements"].([]map[string]any)
	if len(elements) != 1 {
		t.Fatalf("elements = %v", elements)
	}
	if text, _ := elements[0]["text"].(map[string]string); text["content"] != "t" {
		t.Errorf("text = %v", text)
	}
}

func TestFeishuSendError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"code":19021,"msg":"sign match fail"}`))
	}))
	defer srv.Close()

	n := NewFeishu(&conf.Notify{Enabled: true, WebhookUrl: srv.URL})
	if err := n.Send(context.Background(), &Message{Title: "t"}); err == nil {
		t.Errorf("expected error")
	}
}

func TestBuildBigWinMessage(t *testing.T) {
	msg := BuildBigWinMessage(&BigWin{SessionID: "s1", Reels: []string{"👑", "👑", "👑"}, Bet: 10, Win: 500, Multiplier: 50, WinText: "500 ₽"})
	if !strings.Contains(msg.Content, "👑 👑 👑") {
		t.Errorf("content = %s", msg.Content)
	}
	if msg.Color != "orange" {
		t.Errorf("color = %s, want orange below x%d", msg.Color, jackpotMultiplier)
	}
	got := map[string]string{}
	for _, f := range msg.Fields {
		got[f.Name] = f.Value
	}
	if got["赢分"] != "500 ₽ (x50)" || got["下注"] != "10" || got["会话"] != "s1" {
		t.Errorf("fields = %v", got)
	}
	if BuildBigWinMessage(nil).Title == "" {
		t.Errorf("nil message without title")
	}
}
