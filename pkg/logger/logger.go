package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Options 日志初始化选项
type Options struct {
	Level     string // debug | info | warn | error
	Output    string // console | file | both
	Format    string // text | json
	FilePath  string
	AddSource bool
}

var (
	mu       sync.RWMutex
	levelVar = new(slog.LevelVar)
	current  = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: levelVar}))
	logFile  *os.File
)

// Init 根据选项初始化全局日志
func Init(opts Options) error {
	level, err := parseLevel(opts.Level)
	if err != nil {
		return err
	}

	writer, file, err := openWriter(opts)
	if err != nil {
		return err
	}

	handlerOpts := &slog.HandlerOptions{
		Level:       levelVar,
		AddSource:   opts.AddSource,
		ReplaceAttr: sanitizeAttr,
	}

	var handler slog.Handler
	if strings.EqualFold(opts.Format, "json") {
		handler = slog.NewJSONHandler(writer, handlerOpts)
	} else {
		handler = slog.NewTextHandler(writer, handlerOpts)
	}

	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		logFile.Close()
	}
	logFile = file
	levelVar.Set(level)
	current = slog.New(handler)
	return nil
}

// SetLevel 动态调整日志级别
func SetLevel(level string) error {
	l, err := parseLevel(level)
	if err != nil {
		return err
	}
	levelVar.Set(l)
	return nil
}

// L 返回当前的slog实例
func L() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

func Debug(msg string, args ...any) { L().Debug(msg, args...) }

func Info(msg string, args ...any) { L().Info(msg, args...) }

func Warn(msg string, args ...any) { L().Warn(msg, args...) }

func Error(msg string, args ...any) { L().Error(msg, args...) }

func parseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level: %s", level)
	}
}

func openWriter(opts Options) (io.Writer, *os.File, error) {
	output := strings.ToLower(opts.Output)
	if output == "" || output == "console" {
		return os.Stdout, nil, nil
	}

	if opts.FilePath == "" {
		return nil, nil, fmt.Errorf("log file path is required for output %q", opts.Output)
	}
	if err := os.MkdirAll(filepath.Dir(opts.FilePath), 0755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	file, err := os.OpenFile(opts.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	switch output {
	case "file":
		return file, file, nil
	case "both":
		return io.MultiWriter(os.Stdout, file), file, nil
	default:
		file.Close()
		return nil, nil, fmt.Errorf("unknown log output: %s", opts.Output)
	}
}

// sanitizeAttr 对敏感字段脱敏，非字符串值整体屏蔽
func sanitizeAttr(_ []string, a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup || !IsSensitiveKey(a.Key) {
		return a
	}
	return slog.Any(a.Key, SanitizeValue(a.Key, a.Value.Any()))
}
