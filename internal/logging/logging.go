// Package logging builds the process-wide zap logger. Every entry is one JSON object per line.
package logging

import (
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const projectName = "notehub"

// New returns a JSON logger writing to stdout at the given level ("debug", "info", "warn", "error").
// Unknown levels fall back to info.
func New(level string, opts ...Option) *zap.Logger {
	return NewWithWriter(os.Stdout, level, opts...)
}

// Option customizes the encoder.
type Option func(*zapcore.EncoderConfig)

// WithLocation renders timestamps in loc.
func WithLocation(loc *time.Location) Option {
	return func(cfg *zapcore.EncoderConfig) {
		if loc == nil {
			return
		}
		cfg.EncodeTime = func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
			zapcore.ISO8601TimeEncoder(t.In(loc), enc)
		}
	}
}

// NewWithWriter is New with an explicit destination, used by tests to capture output.
func NewWithWriter(w io.Writer, level string, opts ...Option) *zap.Logger {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	cfg := encoderConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(cfg),
		zapcore.AddSync(w),
		lvl,
	)
	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
}

func encoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "ts"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeCaller = func(caller zapcore.EntryCaller, enc zapcore.PrimitiveArrayEncoder) {
		if i := strings.Index(caller.File, projectName); i != -1 {
			enc.AppendString(caller.File[i:] + ":" + strconv.Itoa(caller.Line))
			return
		}
		enc.AppendString(caller.TrimmedPath())
	}
	return cfg
}
