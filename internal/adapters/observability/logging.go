package observability

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

type LogOptions struct {
	Env   string // dev|development switches to the console writer
	Level string
	File  string // optional rotated log file
}

// NewLogger returns a zerolog Logger writing JSON to stdout, or a
// human-friendly console in dev. When File is set every event is also
// appended to a size-rotated file.
func NewLogger(o LogOptions) zerolog.Logger {
	var out io.Writer = os.Stdout
	if o.Env == "dev" || o.Env == "development" {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}
	if o.File != "" {
		out = zerolog.MultiLevelWriter(out, &lumberjack.Logger{
			Filename:   o.File,
			MaxSize:    50, // MB
			MaxBackups: 5,
			MaxAge:     14, // days
			Compress:   true,
		})
	}

	lvl, err := zerolog.ParseLevel(o.Level)
	if err != nil || o.Level == "" {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger()
}
