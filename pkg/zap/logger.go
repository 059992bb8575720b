package zap

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const timeFmt = "2006/01/02 15:04:05.000"

const (
	Dev Mode = iota
	Prod
)

type Mode int32

// ParseMode 解析配置中的 mode 字符串，未知值按 Dev 处理
func ParseMode(s string) Mode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "prod", "production", "1":
		return Prod
	default:
		return Dev
	}
}

type Config struct {
	Mode  Mode
	Level string
	App   string
	Dir   string
	File  bool
}

// Logger is a kratos log.Logger backed by zap.
type Logger struct {
	log    *zap.Logger
	msgKey string
	masked map[string]struct{}
}

var _ log.Logger = (*Logger)(nil)

// Option is logger option.
type Option func(*Logger)

// WithMessageKey with message key.
func WithMessageKey(key string) Option {
	return func(l *Logger) {
		l.msgKey = key
	}
}

// WithMasked 指定需要脱敏的字段名
func WithMasked(keys ...string) Option {
	return func(l *Logger) {
		for _, k := range keys {
			l.masked[strings.ToLower(k)] = struct{}{}
		}
	}
}

// Log implements log.Logger
func (l *Logger) Log(level log.Level, keyvals ...interface{}) error {
	if len(keyvals) == 0 {
		return nil
	}
	if len(keyvals)%2 != 0 {
		keyvals = append(keyvals, "!MISSING-VALUE")
	}

	var msg string
	fields := make([]zap.Field, 0, len(keyvals)/2)
	for i := 0; i < len(keyvals); i += 2 {
		key := fmt.Sprint(keyvals[i])
		if key == l.msgKey {
			msg = fmt.Sprint(keyvals[i+1])
			continue
		}
		if _, ok := l.masked[strings.ToLower(key)]; ok {
			fields = append(fields, zap.String(key, "***"))
			continue
		}
		fields = append(fields, zap.Any(key, keyvals[i+1]))
	}
	if msg == "" {
		msg = "no message"
	}

	switch level {
	case log.LevelDebug:
		l.log.Debug(msg, fields...)
	case log.LevelWarn:
		l.log.Warn(msg, fields...)
	case log.LevelError:
		l.log.Error(msg, fields...)
	case log.LevelFatal:
		l.log.Fatal(msg, fields...)
	default:
		l.log.Info(msg, fields...)
	}
	return nil
}

// Sync flushes any buffered log entries.
func (l *Logger) Sync() error {
	return l.log.Sync()
}

// NewLogger wraps an existing zap logger.
func NewLogger(zapLogger *zap.Logger, opts ...Option) *Logger {
	l := &Logger{
		log:    zapLogger,
		msgKey: log.DefaultMessageKey,
		masked: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// NewLoggerWithConfig creates a new logger from config with options.
func NewLoggerWithConfig(cfg *Config, opts ...Option) *Logger {
	return NewLogger(NewZapLogger(cfg), opts...)
}

// NewZapLogger 控制台始终输出；Prod 或 File=true 时额外写滚动文件（全量 + error）
func NewZapLogger(cfg *Config) *zap.Logger {
	if cfg == nil {
		_, _ = fmt.Fprintln(os.Stderr, "logger: nil config, using development defaults")
		cfg = &Config{Mode: Dev, Level: "debug"}
	}
	app := cfg.App
	if app == "" {
		app = "royalslots"
	}
	lv := zap.NewAtomicLevel()
	if err := lv.UnmarshalText([]byte(cfg.Level)); err != nil {
		lv.SetLevel(zap.DebugLevel)
		_, _ = fmt.Fprintf(os.Stderr, "logger: invalid log level %q, defaulting to DEBUG\n", cfg.Level)
	}

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig(true)), zapcore.Lock(os.Stdout), lv),
	}
	if cfg.File || cfg.Mode == Prod {
		base := filepath.Join(cfg.Dir, app)
		cores = append(cores,
			rollingCore(base+".log", lv),
			rollingCore(base+"_error.log", zap.ErrorLevel),
		)
	}
	return zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddCallerSkip(2))
}

func rollingCore(file string, lv zapcore.LevelEnabler) zapcore.Core {
	w := &lumberjack.Logger{
		Filename:   file,
		MaxSize:    100,
		MaxBackups: 7,
		MaxAge:     10,
		Compress:   true,
	}
	return zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig(false)), zapcore.AddSync(w), lv)
}

func encoderConfig(color bool) zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString("[" + t.Format(timeFmt) + "]")
	}
	cfg.EncodeCaller = zapcore.ShortCallerEncoder
	cfg.ConsoleSeparator = " "
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	if color {
		cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	return cfg
}
