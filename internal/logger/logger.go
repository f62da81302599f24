// Package logger 基于 logrus 的全局日志
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

var log = logrus.New()

// Options 日志配置
type Options struct {
	Level  string // trace/debug/info/warn/error
	Format string // text / json
	File   string // 非空时同时写入滚动日志文件
}

// Configure 按配置初始化日志；非法级别回落到 info
func Configure(opts Options) {
	if strings.EqualFold(opts.Format, "json") {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	var out io.Writer = os.Stdout
	if opts.File != "" {
		out = io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		})
	}
	log.SetOutput(out)

	log.SetLevel(logrus.InfoLevel)
	if opts.Level == "" {
		return
	}
	level, err := logrus.ParseLevel(strings.ToLower(opts.Level))
	if err != nil {
		log.Warnf("Invalid log level '%s', defaulting to 'info'", opts.Level)
		return
	}
	log.SetLevel(level)
}

// SetOutput 替换输出（测试用）
func SetOutput(w io.Writer) {
	log.SetOutput(w)
}

// L 返回底层 logger，用于 gin 等需要 io.Writer 的场景
func L() *logrus.Logger {
	return log
}

// WithField 携带单个字段
func WithField(key string, value interface{}) *logrus.Entry {
	return log.WithField(key, value)
}

// WithFields 携带多个字段
func WithFields(fields logrus.Fields) *logrus.Entry {
	return log.WithFields(fields)
}

func Debugf(format string, args ...interface{}) {
	log.Debugf(format, args...)
}

func Infof(format string, args ...interface{}) {
	log.Infof(format, args...)
}

func Warnf(format string, args ...interface{}) {
	log.Warnf(format, args...)
}

func Errorf(format string, args ...interface{}) {
	log.Errorf(format, args...)
}
