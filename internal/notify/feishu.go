package notify

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"royalslots/internal/conf"

	"github.com/google/wire"
	jsoniter "github.com/json-iterator/go"
)

var ProviderSet = wire.NewSet(NewFeishu)

// Feishu 飞书自定义机器人，消息以交互卡片发送
type Feishu struct {
	WebhookURL    string
	SigningSecret string
	Prefix        string
	Client        *http.Client
}

func NewFeishu(c *conf.Notify) Notifier {
	if c == nil || !c.Enabled || strings.TrimSpace(c.GetWebhookUrl()) == "" {
		return Noop{}
	}
	return &Feishu{
		WebhookURL:    strings.TrimSpace(c.GetWebhookUrl()),
		SigningSecret: strings.TrimSpace(c.GetSigningSecret()),
		Prefix:        strings.TrimSpace(c.GetPrefix()),
		Client:        &http.Client{Timeout: 10 * time.Second},
	}
}

func (f *Feishu) Send(ctx context.Context, msg *Message) error {
	if f.WebhookURL == "" || msg == nil {
		return nil
	}

	payload := map[string]any{
		"msg_type": "interactive",
		"card":     f.card(msg),
	}
	if f.SigningSecret != "" {
		ts := strconv.FormatInt(time.Now().Unix(), 10)
		payload["timestamp"] = ts
		payload["sign"] = f.sign(ts)
	}

	body, _ := jsoniter.Marshal(payload)
	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, f.WebhookURL, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	client := f.Client
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("feishu: status %d", resp.StatusCode)
	}
	var r struct {
		Code int    `json:"code"`
		Msg  string `json:"msg"`
	}
	_ = jsoniter.NewDecoder(resp.Body).Decode(&r)
	if r.Code != 0 {
		return fmt.Errorf("feishu: code=%d msg=%s", r.Code, r.Msg)
	}
	return nil
}

// card 卡片：标题头、Markdown 正文、两列字段块
func (f *Feishu) card(msg *Message) map[string]any {
	title := msg.Title
	if title == "" {
		title = "通知"
	}
	if p := strings.TrimSpace(f.Prefix); p != "" {
		title = p + " " + title
	}
	color := msg.Color
	if color == "" {
		color = "blue"
	}

	content := msg.Content
	if content == "" && len(msg.Fields) == 0 {
		content = msg.Title
	}
	elements := make([]map[string]any, 0, 2)
	if content != "" {
		elements = append(elements, map[string]any{"tag": "div", "text": larkMD(content)})
	}
	if len(msg.Fields) > 0 {
		fields := make([]map[string]any, 0, len(msg.Fields))
		for _, fd := range msg.Fields {
			fields = append(fields, map[string]any{
				"is_short": true,
				"text":     larkMD(fmt.Sprintf("**%s**\n%s", fd.Name, fd.Value)),
			})
		}
		elements = append(elements, map[string]any{"tag": "div", "fields": fields})
	}

	return map[string]any{
		"config":   map[string]bool{"wide_screen_mode": true},
		"header":   map[string]any{"title": map[string]string{"tag": "plain_text", "content": title}, "template": color},
		"elements": elements,
	}
}

func larkMD(s string) map[string]string {
	return map[string]string{"tag": "lark_md", "content": s}
}

// sign 飞书加签，HMAC-SHA256(key=timestamp+\n+secret, message="")
func (f *Feishu) sign(ts string) string {
	key := ts + "\n" + f.SigningSecret
	h := hmac.New(sha256.New, []byte(key))
	h.Write(nil)
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}
