package sysutil

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LoggerOptions controls how the global zerolog logger is built.
type LoggerOptions struct {
	Level   string
	Pretty  bool   // human readable console output instead of JSON
	File    string // optional rolling JSON log file
	Service string
	Stdout  io.Writer // defaults to os.Stdout
}

// SetupLogger installs the global logger and returns a close func for any
// file sink it opened. Console output stays JSON unless Pretty is set; the
// file sink always receives JSON.
func SetupLogger(opts LoggerOptions) func() error {
	SetLogLevel(opts.Level)

	var console io.Writer = os.Stdout
	if opts.Stdout != nil {
		console = opts.Stdout
	}
	if opts.Pretty {
		console = zerolog.ConsoleWriter{Out: console, TimeFormat: time.RFC3339}
	}

	out := console
	closeFn := func() error { return nil }
	if opts.File != "" {
		lj := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    15, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		}
		out = zerolog.MultiLevelWriter(console, lj)
		closeFn = lj.Close
	}

	ctx := zerolog.New(out).With().Timestamp()
	if opts.Service != "" {
		ctx = ctx.Str("service", opts.Service)
	}
	log.Logger = ctx.Logger()
	zerolog.DefaultContextLogger = &log.Logger
	return closeFn
}
