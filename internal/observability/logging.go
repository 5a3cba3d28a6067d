// Package observability provides structured logging for the duel simulator.
package observability

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cory-johannsen/robotduel/internal/config"
)

// LoggerName is the root name every duel logger carries.
const LoggerName = "duel"

// Option adjusts how NewLogger builds its logger.
type Option func(*options)

type options struct {
	sink io.Writer
}

// WithSink sends log output to w instead of stderr.
func WithSink(w io.Writer) Option {
	return func(o *options) { o.sink = w }
}

// NewLogger builds the duel logger for cfg. Output goes to stderr unless a
// sink is given, since stdout carries the console board.
//
// Precondition: cfg.Level is one of "debug", "info", "warn", "error".
// Precondition: cfg.Format is "json" or "console".
// Postcondition: Returns a logger named LoggerName or a non-nil error.
func NewLogger(cfg config.LoggingConfig, opts ...Option) (*zap.Logger, error) {
	o := options{sink: os.Stderr}
	for _, opt := range opts {
		opt(&o)
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level %q: %w", cfg.Level, err)
	}
	enc, err := encoderFor(cfg.Format)
	if err != nil {
		return nil, err
	}

	core := zapcore.NewCore(enc, zapcore.Lock(zapcore.AddSync(o.sink)), level)
	zopts := []zap.Option{zap.AddCaller()}
	if level == zapcore.DebugLevel {
		zopts = append(zopts, zap.AddStacktrace(zapcore.ErrorLevel))
	}
	return zap.New(core, zopts...).Named(LoggerName), nil
}

func encoderFor(format string) (zapcore.Encoder, error) {
	switch format {
	case "json":
		ec := zap.NewProductionEncoderConfig()
		ec.EncodeTime = zapcore.ISO8601TimeEncoder
		return zapcore.NewJSONEncoder(ec), nil
	case "console":
		ec := zap.NewDevelopmentEncoderConfig()
		ec.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
		ec.EncodeLevel = zapcore.CapitalLevelEncoder
		return zapcore.NewConsoleEncoder(ec), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}
