package logger

import (
	"fmt"

	"github.com/Leopold1975/projects_control/internal/pkg/config"
	"github.com/natefinch/lumberjack"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Logger interface {
	Debugf(template string, args ...interface{})
	Info(args ...interface{})
	Infof(template string, args ...interface{})
	Warnf(template string, args ...interface{})
	Error(args ...interface{})
	Errorf(template string, args ...interface{})
	With(args ...interface{}) Logger
	Sync() error
}

type ZapLogger struct {
	*zap.SugaredLogger
}

func New(cfg config.Logger) (ZapLogger, error) {
	level := zap.NewAtomicLevel()

	if cfg.Level != "" {
		if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
			return ZapLogger{}, fmt.Errorf("parse level error: %w", err)
		}
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Level = level
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zcfg.DisableStacktrace = true

	if len(cfg.Output) != 0 {
		zcfg.OutputPaths = cfg.Output
	}

	if len(cfg.ErrOutput) != 0 {
		zcfg.ErrorOutputPaths = cfg.ErrOutput
	}

	var opts []zap.Option

	if cfg.File.Path != "" {
		rotated := zapcore.NewCore(
			zapcore.NewJSONEncoder(zcfg.EncoderConfig),
			zapcore.AddSync(&lumberjack.Logger{ //nolint:exhaustruct
				Filename:   cfg.File.Path,
				MaxSize:    cfg.File.MaxSize,
				MaxBackups: cfg.File.MaxBackups,
				MaxAge:     cfg.File.MaxAge,
				Compress:   true,
			}),
			level,
		)

		opts = append(opts, zap.WrapCore(func(c zapcore.Core) zapcore.Core {
			return zapcore.NewTee(c, rotated)
		}))
	}

	l, err := zcfg.Build(opts...)
	if err != nil {
		return ZapLogger{}, fmt.Errorf("build logger error: %w", err)
	}

	return ZapLogger{l.Sugar()}, nil
}

// NewNop returns a logger that discards everything. Used in tests.
func NewNop() ZapLogger {
	return ZapLogger{zap.NewNop().Sugar()}
}

func (l ZapLogger) With(args ...interface{}) Logger {
	return ZapLogger{l.SugaredLogger.With(args...)}
}
