// Package logging builds the zap loggers used by the commands and the batch
// runner. Output goes to the console and, optionally, to a rotated file.
package logging

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options configures New.
type Options struct {
	// Development selects the colored console encoder at debug level.
	// Otherwise both outputs use JSON at info level.
	Development bool

	// File is the log file path. Empty disables file output.
	File string

	// Console receives console output. Defaults to os.Stderr.
	Console io.Writer

	// Rotation overrides the file rotation settings.
	Rotation FileWriterConfig
}

// New returns a logger teeing console and file output.
//
//	logger, err := logging.New(logging.Options{Development: true, File: "render.log"})
//	if err != nil {
//		return err
//	}
//	defer logger.Sync()
func New(opts Options) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if opts.Development {
		level = zapcore.DebugLevel
	}

	console := opts.Console
	if console == nil {
		console = os.Stderr
	}

	var consoleEncoder zapcore.Encoder
	if opts.Development {
		consoleEncoder = zapcore.NewConsoleEncoder(NewConsoleEncoderConfig())
	} else {
		consoleEncoder = zapcore.NewJSONEncoder(NewEncoderConfig())
	}
	cores := []zapcore.Core{
		zapcore.NewCore(consoleEncoder, zapcore.AddSync(console), level),
	}

	if opts.File != "" {
		if err := ensureDir(opts.File); err != nil {
			return nil, err
		}
		fileCore := zapcore.NewCore(
			zapcore.NewJSONEncoder(NewEncoderConfig()),
			NewFileWriter(opts.File, opts.Rotation),
			level,
		)
		cores = append(cores, fileCore)
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller()), nil
}

// Nop returns a logger that discards everything. Used by tests and by
// library callers that pass no logger.
func Nop() *zap.Logger {
	return zap.NewNop()
}
