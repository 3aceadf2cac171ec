package logger

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options 日志输出配置
type Options struct {
	Dir        string
	Filename   string
	Level      string // 为空时 debug 模式取 debug，其余取 info
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
	Echo       bool // 文件输出时把 warn 及以上同步打到 stderr
}

func (o Options) withDefaults() Options {
	if o.MaxSizeMB <= 0 {
		o.MaxSizeMB = 100
	}
	if o.MaxBackups <= 0 {
		o.MaxBackups = 7
	}
	if o.MaxAgeDays <= 0 {
		o.MaxAgeDays = 30
	}
	o.Filename = strings.TrimSpace(o.Filename)
	if o.Filename == "" {
		o.Filename = "storefront.log"
	}
	return o
}

// L 全局日志实例，Init 之前为 nil
var L *zap.Logger

var active atomic.Pointer[zap.Logger]

var bootstrap = zap.New(
	zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig()), zapcore.Lock(os.Stdout), zap.InfoLevel),
	zap.AddCaller(), zap.AddCallerSkip(1),
)

// Init 构建并替换全局日志
func Init(mode string, options Options) *zap.Logger {
	L = New(mode, options)
	active.Store(L)
	zap.ReplaceGlobals(L)
	return L
}

// New 创建日志实例
// debug 模式仅输出控制台；其他模式写滚动文件，文件不可用时改写 stdout
func New(mode string, options Options) *zap.Logger {
	debug := strings.EqualFold(strings.TrimSpace(mode), "debug")
	level := levelFor(options.Level, debug)

	var core zapcore.Core
	if debug {
		core = zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig()), zapcore.Lock(os.Stdout), level)
	} else {
		core = fileCore(options.withDefaults(), level)
	}
	return zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
}

func fileCore(options Options, level zap.AtomicLevel) zapcore.Core {
	jsonEncoder := zapcore.NewJSONEncoder(encoderConfig())
	path, err := prepareLogFile(options.Dir, options.Filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "log file unavailable, writing to stdout: %v\n", err)
		return zapcore.NewCore(jsonEncoder, zapcore.Lock(os.Stdout), level)
	}

	rotating := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    options.MaxSizeMB,
		MaxBackups: options.MaxBackups,
		MaxAge:     options.MaxAgeDays,
		Compress:   options.Compress,
	}
	core := zapcore.NewCore(jsonEncoder, zapcore.AddSync(rotating), level)
	if !options.Echo {
		return core
	}
	warnings := zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return l >= zapcore.WarnLevel && level.Enabled(l)
	})
	return zapcore.NewTee(core, zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig()), zapcore.Lock(os.Stderr), warnings))
}

func encoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "time"
	cfg.MessageKey = "message"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeDuration = zapcore.MillisDurationEncoder
	cfg.EncodeLevel = zapcore.LowercaseLevelEncoder
	cfg.EncodeCaller = zapcore.ShortCallerEncoder
	return cfg
}

func levelFor(raw string, debug bool) zap.AtomicLevel {
	if parsed, err := zapcore.ParseLevel(strings.TrimSpace(raw)); err == nil && strings.TrimSpace(raw) != "" {
		return zap.NewAtomicLevelAt(parsed)
	}
	if debug {
		return zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return zap.NewAtomicLevelAt(zap.InfoLevel)
}

// prepareLogFile 创建日志目录并确认文件可追加写入
// dir 为空时使用工作目录下的 logs/
func prepareLogFile(dir, filename string) (string, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("resolve workdir failed: %w", err)
		}
		dir = filepath.Join(wd, "logs")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create log dir failed: %w", err)
	}

	path := filepath.Join(dir, filename)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("open log file failed: %w", err)
	}
	return path, f.Close()
}

// Sync 刷新缓冲日志
func Sync() {
	_ = Z().Sync()
}

// StdLogger 桥接标准库 log，供启动阶段的致命错误输出
func StdLogger() *log.Logger {
	return zap.NewStdLog(Z())
}

// Z 当前日志实例，未初始化时返回控制台日志
func Z() *zap.Logger {
	if current := active.Load(); current != nil {
		return current
	}
	return bootstrap
}

// S 当前 SugaredLogger
func S() *zap.SugaredLogger { return Z().Sugar() }

// SW 携带键值字段的 SugaredLogger
func SW(kv ...interface{}) *zap.SugaredLogger {
	if len(kv) == 0 {
		return S()
	}
	return S().With(kv...)
}

func Debugw(message string, kv ...interface{}) { S().Debugw(message, kv...) }

func Infow(message string, kv ...interface{}) { S().Infow(message, kv...) }

func Warnw(message string, kv ...interface{}) { S().Warnw(message, kv...) }

func Errorw(message string, kv ...interface{}) { S().Errorw(message, kv...) }
