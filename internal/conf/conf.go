package conf

import (
	"fmt"
	"strconv"
	"time"

	jsoniter "github.com/json-iterator/go"
)

// Bootstrap 配置根节点，对应 configs/config.yaml
type Bootstrap struct {
	Server *Server `json:"server"`
	Data   *Data   `json:"data"`
	Slot   *Slot   `json:"slot"`
	Notify *Notify `json:"notify"`
	Log    *Log    `json:"log"`
}

type Server struct {
	Http *Server_HTTP `json:"http"`
}

type Server_HTTP struct {
	Network string   `json:"network"`
	Addr    string   `json:"addr"`
	Timeout Duration `json:"timeout"`
}

type Data struct {
	Redis    *Data_Redis    `json:"redis"`
	Database *Data_Database `json:"database"`
	S3       *Data_S3       `json:"s3"`
}

type Data_Redis struct {
	Addr         []string `json:"addr"`
	Password     string   `json:"password"`
	Db           int32    `json:"db"`
	ReadTimeout  Duration `json:"read_timeout"`
	WriteTimeout Duration `json:"write_timeout"`
}

type Data_Database struct {
	Driver       string `json:"driver"`
	Source       string `json:"source"`
	MaxIdleConns int32  `json:"max_idle_conns"`
	MaxOpenConns int32  `json:"max_open_conns"`
}

type Data_S3 struct {
	Region          string `json:"region"`
	Bucket          string `json:"bucket"`
	Endpoint        string `json:"endpoint"`
	AccessKeyId     string `json:"access_key_id"`
	SecretAccessKey string `json:"secret_access_key"`
}

// Slot 会话与引擎参数
type Slot struct {
	InitialBalance   int64    `json:"initial_balance"`
	DefaultBet       int64    `json:"default_bet"`
	TickInterval     Duration `json:"tick_interval"`
	Ticks            int32    `json:"ticks"`
	WorkerPool       int32    `json:"worker_pool"`
	SessionIdleTtl   Duration `json:"session_idle_ttl"`
	CleanupInterval  Duration `json:"cleanup_interval"`
	JackpotInterval  Duration `json:"jackpot_interval"`
	BigWinMultiplier int64    `json:"big_win_multiplier"`
	ExportHistory    bool     `json:"export_history"`
	Seed             uint64   `json:"seed"` // 非 0 时使用固定种子，便于复现
}

type Notify struct {
	Enabled       bool   `json:"enabled"`
	WebhookUrl    string `json:"webhook_url"`
	SigningSecret string `json:"signing_secret"`
	Prefix        string `json:"prefix"`
}

type Log struct {
	Mode  string `json:"mode"`
	Level string `json:"level"`
	App   string `json:"app"`
	Dir   string `json:"dir"`
	File  bool   `json:"file"`
}

func (x *Server) GetHttp() *Server_HTTP {
	if x != nil {
		return x.Http
	}
	return nil
}

func (x *Data) GetRedis() *Data_Redis {
	if x != nil {
		return x.Redis
	}
	return nil
}

func (x *Data) GetDatabase() *Data_Database {
	if x != nil {
		return x.Database
	}
	return nil
}

func (x *Data) GetS3() *Data_S3 {
	if x != nil {
		return x.S3
	}
	return nil
}

func (x *Notify) GetWebhookUrl() string {
	if x != nil {
		return x.WebhookUrl
	}
	return ""
}

func (x *Notify) GetSigningSecret() string {
	if x != nil {
		return x.SigningSecret
	}
	return ""
}

func (x *Notify) GetPrefix() string {
	if x != nil {
		return x.Prefix
	}
	return ""
}

// Duration 支持 "100ms"、"2s" 形式，也接受纳秒整数
type Duration time.Duration

func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Or d 为 0 时返回 def
func (d Duration) Or(def time.Duration) time.Duration {
	if d <= 0 {
		return def
	}
	return time.Duration(d)
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return jsoniter.Marshal(time.Duration(d).String())
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := jsoniter.Unmarshal(b, &s); err != nil {
		n, nerr := strconv.ParseInt(string(b), 10, 64)
		if nerr != nil {
			return fmt.Errorf("invalid duration %s", b)
		}
		*d = Duration(n)
		return nil
	}
	if s == "" {
		*d = 0
		return nil
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(v)
	return nil
}
