// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package logx provides the default structured logger setup
// for gpuboot programs, with colored level names on terminals.
package logx

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/muesli/termenv"
)

// UserLevel is the verbosity [slog.Level] that the user has selected
// for what logging and printing messages should be shown. Messages at
// levels at or above this level will be shown. It should typically
// be set through the config to the value of the user's log level.
// The default value is determined by the build tags: debug builds
// use [slog.LevelDebug], release builds use [slog.LevelWarn], and
// all others use [slog.LevelInfo].
var UserLevel = defaultUserLevel

// UseColor is whether to use color in log messages.
// It is on by default and is disabled automatically
// when the output is not a terminal.
var UseColor = true

// levelColors are the ANSI colors used for each level name.
var levelColors = map[slog.Level]string{
	slog.LevelDebug: "8",
	slog.LevelInfo:  "4",
	slog.LevelWarn:  "3",
	slog.LevelError: "1",
}

// NewHandler returns a new text [slog.Handler] writing to the given
// writer, filtering at [UserLevel] and coloring level names with
// termenv when color is enabled and supported by the writer.
func NewHandler(w io.Writer) slog.Handler {
	out := termenv.NewOutput(w)
	color := UseColor && out.Profile != termenv.Ascii
	opts := &slog.HandlerOptions{
		Level: levelVar{},
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if !color || len(groups) > 0 || a.Key != slog.LevelKey {
				return a
			}
			lvl, ok := a.Value.Any().(slog.Level)
			if !ok {
				return a
			}
			return slog.String(a.Key, ApplyColor(out, lvl, lvl.String()))
		},
	}
	return slog.NewTextHandler(w, opts)
}

// ApplyColor returns the given string colored for the given level
// using the given termenv output.
func ApplyColor(out *termenv.Output, level slog.Level, str string) string {
	c, ok := levelColors[level]
	if !ok {
		return str
	}
	return out.String(str).Foreground(out.Color(c)).Bold().String()
}

// SetDefaultLogger sets the default [slog] logger to one
// based on [NewHandler] writing to [os.Stderr].
func SetDefaultLogger() {
	slog.SetDefault(slog.New(NewHandler(os.Stderr)))
}

// ParseLevel returns the [slog.Level] for the given
// case-insensitive name (debug, info, warn, error).
func ParseLevel(name string) (slog.Level, error) {
	var lvl slog.Level
	err := lvl.UnmarshalText([]byte(strings.ToUpper(strings.TrimSpace(name))))
	if err != nil {
		return 0, fmt.Errorf("logx: unknown log level %q", name)
	}
	return lvl, nil
}

// levelVar is a [slog.Leveler] that always reports
// the current value of [UserLevel].
type levelVar struct{}

func (levelVar) Level() slog.Level { return UserLevel }
