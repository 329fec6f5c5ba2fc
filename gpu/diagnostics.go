// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"context"
	"log/slog"
	"unicode/utf8"
)

// LogLevel is the severity of a device log message.
type LogLevel int32

const (
	LogLevelError LogLevel = iota
	LogLevelWarn
	LogLevelInfo
	LogLevelDebug
	LogLevelTrace
)

// ErrorKind is the kind of an uncaptured device error.
type ErrorKind int32

const (
	ErrorValidation ErrorKind = iota
	ErrorOutOfMemory
	ErrorInternal
	ErrorUnknown
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorValidation:
		return "validation"
	case ErrorOutOfMemory:
		return "out-of-memory"
	case ErrorInternal:
		return "internal"
	}
	return "unknown"
}

// Diagnostics receives device level messages. It is installed
// on the device by the [Driver] right after device creation.
type Diagnostics interface {
	Log(level LogLevel, message string)
	UncapturedError(kind ErrorKind, message string)
	DeviceLost(reason, message string, intentional bool)
}

// MaxMessageLen is the maximum number of bytes of a device
// message that are forwarded to the log.
const MaxMessageLen = 4096

// SlogLevel maps a device log level to a [slog.Level]:
// error to error, warning to warn, and everything else to info.
func SlogLevel(level LogLevel) slog.Level {
	switch level {
	case LogLevelError:
		return slog.LevelError
	case LogLevelWarn:
		return slog.LevelWarn
	}
	return slog.LevelInfo
}

// Router is the [Diagnostics] implementation that forwards device
// messages to a structured logger. It never panics and never blocks
// beyond the log handler write; logging failures are ignored.
type Router struct {
	logger *slog.Logger

	// OnLost is called for unintentional device loss.
	OnLost func(reason, message string)
}

// NewRouter returns a new router logging to the given logger,
// or to [slog.Default] if it is nil.
func NewRouter(logger *slog.Logger) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{logger: logger}
}

// Log forwards a device log message.
func (r *Router) Log(level LogLevel, message string) {
	r.emit(SlogLevel(level), message)
}

// UncapturedError forwards an uncaptured device error at error level.
func (r *Router) UncapturedError(kind ErrorKind, message string) {
	r.emit(slog.LevelError, message, slog.String("kind", kind.String()))
}

// DeviceLost forwards a device loss. Intentional loss (the device
// being destroyed on release) is logged at info level; any other
// loss is logged at error level and reported to OnLost.
func (r *Router) DeviceLost(reason, message string, intentional bool) {
	if intentional {
		r.emit(slog.LevelInfo, "device destroyed", slog.String("reason", reason))
		return
	}
	r.emit(slog.LevelError, "device lost: "+message, slog.String("reason", reason))
	if r.OnLost != nil {
		r.OnLost(reason, message)
	}
}

func (r *Router) emit(level slog.Level, message string, attrs ...slog.Attr) {
	defer func() { recover() }()
	message = truncate(message, MaxMessageLen)
	ctx := context.Background()
	if !r.logger.Enabled(ctx, level) {
		return
	}
	r.logger.LogAttrs(ctx, level, message, append(attrs, slog.String("source", "device"))...)
}

// truncate returns s cut to at most n bytes, on a rune boundary.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
