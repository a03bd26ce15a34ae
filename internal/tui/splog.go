// Package tui provides terminal output, logging and interactive prompts.
package tui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/lmittmann/tint"
	"gopkg.in/natefinch/lumberjack.v2"
)

// simpleHandler is a custom slog handler that writes messages without timestamps or level prefixes
type simpleHandler struct {
	writer io.Writer
}

func (h *simpleHandler) Enabled(_ context.Context, level slog.Level) bool {
	// Debug goes to the tint handler, never to stdout
	return level > slog.LevelDebug
}

func (h *simpleHandler) Handle(_ context.Context, record slog.Record) error {
	_, err := fmt.Fprintln(h.writer, record.Message)
	return err
}

func (h *simpleHandler) WithAttrs(_ []slog.Attr) slog.Handler {
	return h
}

func (h *simpleHandler) WithGroup(_ string) slog.Handler {
	return h
}

// LogRotation holds lumberjack rotation settings
type LogRotation struct {
	MaxSize    int // megabytes
	MaxBackups int
	MaxAge     int // days
}

// createLumberjackLogger creates a rotating file writer; zero values keep the defaults
func createLumberjackLogger(logFilePath string, rotation LogRotation) *lumberjack.Logger {
	config := &lumberjack.Logger{
		Filename:   logFilePath,
		MaxSize:    10,
		MaxBackups: 5,
		MaxAge:     30,
		Compress:   false,
	}
	if rotation.MaxSize > 0 {
		config.MaxSize = rotation.MaxSize
	}
	if rotation.MaxBackups > 0 {
		config.MaxBackups = rotation.MaxBackups
	}
	if rotation.MaxAge > 0 {
		config.MaxAge = rotation.MaxAge
	}
	return config
}

// multiHandler fans out log records to multiple handlers
type multiHandler struct {
	handlers []slog.Handler
}

func (h *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *multiHandler) Handle(ctx context.Context, record slog.Record) error {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, record.Level) {
			if err := handler.Handle(ctx, record.Clone()); err != nil {
				return err
			}
		}
	}
	return nil
}

func (h *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newHandlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		newHandlers[i] = handler.WithAttrs(attrs)
	}
	return &multiHandler{handlers: newHandlers}
}

func (h *multiHandler) WithGroup(name string) slog.Handler {
	newHandlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		newHandlers[i] = handler.WithGroup(name)
	}
	return &multiHandler{handlers: newHandlers}
}

// SplogOptions configures NewSplogWithOptions
type SplogOptions struct {
	// Out receives user-facing messages; defaults to stdout
	Out io.Writer
	// Err receives debug records when Debug is set; defaults to stderr
	Err io.Writer
	// Debug enables the colorized debug handler
	Debug bool
	// Verbose promotes Verbose lines to info level
	Verbose bool
	// LogFile enables rotating file logging at this path
	LogFile  string
	Rotation LogRotation
}

// Splog provides structured logging and output
type Splog struct {
	logger    *slog.Logger
	writer    io.Writer
	logWriter io.WriteCloser
	verbose   bool
}

// NewSplog creates a new splog instance with console-only logging
func NewSplog() *Splog {
	splog, _ := NewSplogWithOptions(SplogOptions{Debug: os.Getenv("DEBUG") != ""})
	return splog
}

// NewSplogWithOptions creates a splog writing to the console and, optionally,
// a rotating log file. Failing to open the log file is not fatal: the
// returned Splog still works and the error is reported alongside it.
func NewSplogWithOptions(opts SplogOptions) (*Splog, error) {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Err == nil {
		opts.Err = os.Stderr
	}

	splog := &Splog{
		writer:  opts.Out,
		verbose: opts.Verbose,
	}

	handlers := []slog.Handler{&simpleHandler{writer: opts.Out}}

	if opts.Debug {
		handlers = append(handlers, &debugOnlyHandler{tint.NewHandler(opts.Err, &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.Kitchen,
			NoColor:    !isTerminalWriter(opts.Err),
		})})
	}

	var fileErr error
	if opts.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(opts.LogFile), 0750); err != nil {
			fileErr = fmt.Errorf("failed to create log directory: %w", err)
		} else {
			lumberjackLogger := createLumberjackLogger(opts.LogFile, opts.Rotation)
			splog.logWriter = lumberjackLogger

			handlers = append(handlers, slog.NewTextHandler(lumberjackLogger, &slog.HandlerOptions{
				Level: slog.LevelDebug, // Always log everything to file
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					if a.Key == slog.TimeKey {
						return slog.Attr{Key: a.Key, Value: slog.StringValue(a.Value.Time().Format("2006-01-02 15:04:05.000"))}
					}
					return a
				},
			}))
		}
	}

	splog.logger = slog.New(&multiHandler{handlers: handlers})
	return splog, fileErr
}

// debugOnlyHandler passes through debug records only, so the console
// handler stays the single writer of user-facing messages
type debugOnlyHandler struct {
	slog.Handler
}

func (h *debugOnlyHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return level == slog.LevelDebug && h.Handler.Enabled(ctx, level)
}

func (h *debugOnlyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &debugOnlyHandler{h.Handler.WithAttrs(attrs)}
}

func (h *debugOnlyHandler) WithGroup(name string) slog.Handler {
	return &debugOnlyHandler{h.Handler.WithGroup(name)}
}

// Logger exposes the underlying slog logger
func (s *Splog) Logger() *slog.Logger {
	return s.logger
}

func (s *Splog) logMessage(level slog.Level, msg string) {
	s.logger.Log(context.Background(), level, msg)
}

func format(prefix, f string, args []any) string {
	if len(args) == 0 {
		return prefix + f
	}
	return fmt.Sprintf(prefix+f, args...)
}

// Info writes an info message
// nolint // format string validation is handled internally via fmt.Sprintf
func (s *Splog) Info(f string, args ...any) {
	s.logMessage(slog.LevelInfo, format("", f, args))
}

// Page writes raw content to the output
func (s *Splog) Page(content string) {
	_, _ = fmt.Fprint(s.writer, content)
}

// Newline writes a newline
func (s *Splog) Newline() {
	_, _ = fmt.Fprintln(s.writer)
}

// Warn writes a warning message
// nolint // format string validation is handled internally via fmt.Sprintf
func (s *Splog) Warn(f string, args ...any) {
	s.logMessage(slog.LevelWarn, format("⚠️  ", f, args))
}

// Error writes an error message
// nolint // format string validation is handled internally via fmt.Sprintf
func (s *Splog) Error(f string, args ...any) {
	s.logMessage(slog.LevelError, format("❌ ", f, args))
}

// Debug writes a debug message
// nolint // format string validation is handled internally via fmt.Sprintf
func (s *Splog) Debug(f string, args ...any) {
	s.logMessage(slog.LevelDebug, format("", f, args))
}

// Tip writes a tip message
// nolint // format string validation is handled internally via fmt.Sprintf
func (s *Splog) Tip(f string, args ...any) {
	s.logMessage(slog.LevelInfo, format("💡 ", f, args))
}

// Verbose writes a "[zyra]" narrative line: shown with --verbose, debug otherwise
// nolint // format string validation is handled internally via fmt.Sprintf
func (s *Splog) Verbose(f string, args ...any) {
	if s.verbose {
		s.logMessage(slog.LevelInfo, format("[zyra] ", f, args))
		return
	}
	s.logMessage(slog.LevelDebug, format("[zyra] ", f, args))
}

// Close closes the log file if one was opened
func (s *Splog) Close() error {
	if s.logWriter != nil {
		return s.logWriter.Close()
	}
	return nil
}
