// Package logger builds the zap logger used by the command line.
package logger

import (
	"io"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

type Config struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	// DisableCaller drops the caller annotation, mostly for stable output in tests.
	DisableCaller bool `mapstructure:"disable_caller"`
}

// New returns a logger writing to w.
func New(c Config, w io.Writer) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if c.Level != "" {
		if err := level.UnmarshalText([]byte(strings.ToLower(c.Level))); err != nil {
			return nil, errors.WithMessagef(err, "log level %q", c.Level)
		}
	}

	callerKey := "C"
	if c.DisableCaller {
		callerKey = zapcore.OmitKey
	}
	encConfig := zapcore.EncoderConfig{
		TimeKey:        "T",
		LevelKey:       "L",
		NameKey:        "N",
		CallerKey:      callerKey,
		MessageKey:     "M",
		StacktraceKey:  "S",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.TimeEncoderOfLayout("2006-01-02T15:04:05.000Z07:00"),
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
		EncodeName:     zapcore.FullNameEncoder,
	}

	var enc zapcore.Encoder
	switch c.Format {
	case FormatJSON:
		enc = zapcore.NewJSONEncoder(encConfig)
	case FormatConsole, "":
		enc = zapcore.NewConsoleEncoder(encConfig)
	default:
		return nil, errors.Errorf("unknown log format %q", c.Format)
	}

	atom := zap.NewAtomicLevelAt(level)
	core := zapcore.NewCore(enc, zapcore.AddSync(w), atom)

	var opts []zap.Option
	if !c.DisableCaller {
		opts = append(opts, zap.AddCaller())
	}
	return zap.New(core, opts...), nil
}
