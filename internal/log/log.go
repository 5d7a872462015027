// Package log builds the CLI logger. Commands attach the logger to their
// context; library code picks it up with zerolog.Ctx and never constructs
// its own.
package log

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

type params struct {
	verbose bool
	writer  io.Writer
	version string
	sha     string
}

type Option func(params *params)

// WithVerbose enables verbose logging (sets log level to Debug).
func WithVerbose(verbose bool) Option {
	return func(params *params) {
		params.verbose = verbose
	}
}

// WithWriter sets the output writer for logs.
// If w is nil, logs are discarded.
func WithWriter(w io.Writer) Option {
	return func(params *params) {
		params.writer = w
	}
}

// WithBuildInfo stamps every log entry with the build version and short SHA.
func WithBuildInfo(version, sha string) Option {
	return func(params *params) {
		params.version = version
		params.sha = sha
	}
}

// New creates the CLI logger. By default logs are discarded and use Info
// level; pass WithWriter to surface them.
//
// Example:
//
//	logger := log.New(
//	    log.WithWriter(os.Stderr),
//	    log.WithVerbose(true),
//	    log.WithBuildInfo("1.2.0", "abc1234"),
//	)
func New(opts ...Option) zerolog.Logger {
	var params params
	for _, opt := range opts {
		if opt == nil {
			continue
		}

		opt(&params)
	}

	if params.writer == nil {
		return zerolog.Nop()
	}

	writer := zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
		w.Out = params.writer
		w.TimeFormat = time.RFC3339
		w.PartsExclude = []string{"time", "level"}
	})

	level := zerolog.InfoLevel
	if params.verbose {
		level = zerolog.DebugLevel
	}

	logCtx := zerolog.New(writer).Level(level).With().Timestamp()
	if params.version != "" {
		logCtx = logCtx.Str("build.version", params.version).Str("build.sha", params.sha)
	}

	return logCtx.Logger()
}
