// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"cogentcore.org/gpuboot/base/errors"
	"github.com/stretchr/testify/assert"
)

func newTestRouter() (*Router, *bytes.Buffer) {
	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return NewRouter(l), &buf
}

func TestSlogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelError, SlogLevel(LogLevelError))
	assert.Equal(t, slog.LevelWarn, SlogLevel(LogLevelWarn))
	assert.Equal(t, slog.LevelInfo, SlogLevel(LogLevelInfo))
	assert.Equal(t, slog.LevelInfo, SlogLevel(LogLevelDebug))
	assert.Equal(t, slog.LevelInfo, SlogLevel(LogLevelTrace))
	assert.Equal(t, slog.LevelInfo, SlogLevel(LogLevel(99)))
}

func TestRouterLog(t *testing.T) {
	r, buf := newTestRouter()
	r.Log(LogLevelError, "bad pipeline")
	r.Log(LogLevelWarn, "slow path")
	r.Log(LogLevelTrace, "details")
	out := buf.String()
	assert.Contains(t, out, `level=ERROR msg="bad pipeline"`)
	assert.Contains(t, out, `level=WARN msg="slow path"`)
	assert.Contains(t, out, `level=INFO msg=details`)
	assert.Contains(t, out, "source=device")
}

func TestRouterUncapturedError(t *testing.T) {
	r, buf := newTestRouter()
	r.UncapturedError(ErrorValidation, "binding mismatch")
	assert.Contains(t, buf.String(), "level=ERROR")
	assert.Contains(t, buf.String(), "kind=validation")
}

func TestRouterDeviceLost(t *testing.T) {
	r, buf := newTestRouter()
	var lost []string
	r.OnLost = func(reason, message string) { lost = append(lost, reason+":"+message) }

	r.DeviceLost("destroyed", "", true)
	assert.Empty(t, lost)
	assert.Contains(t, buf.String(), "level=INFO")

	r.DeviceLost("unknown", "reset", false)
	assert.Equal(t, []string{"unknown:reset"}, lost)
	assert.Contains(t, buf.String(), "level=ERROR")
}

func TestRouterTruncates(t *testing.T) {
	r, buf := newTestRouter()
	r.Log(LogLevelInfo, strings.Repeat("x", MaxMessageLen*2))
	assert.Less(t, buf.Len(), MaxMessageLen+200)

	buf.Reset()
	r.Log(LogLevelInfo, strings.Repeat("a", MaxMessageLen-1)+"é")
	assert.NotContains(t, buf.String(), "\ufffd")
	assert.NotContains(t, buf.String(), `\x`)
	assert.Contains(t, buf.String(), strings.Repeat("a", MaxMessageLen-1))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 3))
	assert.Equal(t, "ab", truncate("abc", 2))
	assert.Equal(t, "a", truncate("aé", 2))
	assert.Equal(t, "aé", truncate("aéb", 3))
	assert.Equal(t, "", truncate("é", 1))
}

type panicHandler struct{}

func (panicHandler) Enabled(context.Context, slog.Level) bool  { return true }
func (panicHandler) Handle(context.Context, slog.Record) error { panic("sink exploded") }
func (h panicHandler) WithAttrs([]slog.Attr) slog.Handler      { return h }
func (h panicHandler) WithGroup(string) slog.Handler           { return h }

type errHandler struct{ panicHandler }

func (errHandler) Handle(context.Context, slog.Record) error { return errors.New("disk full") }

func TestRouterIgnoresSinkFailures(t *testing.T) {
	r := NewRouter(slog.New(panicHandler{}))
	assert.NotPanics(t, func() { r.Log(LogLevelError, "x") })
	r = NewRouter(slog.New(errHandler{}))
	assert.NotPanics(t, func() { r.UncapturedError(ErrorInternal, "y") })
}

func TestRouterDefaultLogger(t *testing.T) {
	assert.NotNil(t, NewRouter(nil).logger)
}
