// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package app

import (
	"slices"
	"testing"

	"cogentcore.org/gpuboot/base/errors"
	"cogentcore.org/gpuboot/config"
	"cogentcore.org/gpuboot/gpu"
	"cogentcore.org/gpuboot/gpu/gputest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder is a demo that records its hooks in the driver trace.
type recorder struct {
	drv       *gputest.Driver
	initErr   error
	loopErr   error
	failAfter int
	loops     int
	lostAt    int
	sawState  []gpu.State
}

func (r *recorder) OnInit(cx *gpu.Context) error {
	r.drv.Record("OnInit")
	r.sawState = append(r.sawState, cx.State())
	return r.initErr
}

func (r *recorder) OnLoop(cx *gpu.Context) error {
	r.drv.Record("OnLoop")
	r.loops++
	if r.lostAt > 0 && r.loops == r.lostAt {
		r.drv.DeviceDescriptor.Lost("unknown", "gone", false)
	}
	if r.loopErr != nil && r.loops >= r.failAfter {
		return r.loopErr
	}
	return nil
}

func (r *recorder) OnTerminal(cx *gpu.Context) {
	r.drv.Record("OnTerminal")
	r.sawState = append(r.sawState, cx.State())
}

func newApp(closeAfter int) (*App, *gputest.Driver, *recorder, *int) {
	drv := gputest.NewDriver(closeAfter)
	cfg := config.Default()
	a := New(cfg, drv)
	code := -1
	a.Exit = func(c int) { code = c }
	return a, drv, &recorder{drv: drv}, &code
}

func hooks(trace []string) []string {
	var hs []string
	for _, s := range trace {
		if s == "OnInit" || s == "OnLoop" || s == "OnTerminal" {
			hs = append(hs, s)
		}
	}
	return hs
}

func TestRun(t *testing.T) {
	a, drv, demo, code := newApp(3)
	a.Run(demo)
	assert.Equal(t, -1, *code)
	assert.Equal(t, []string{"OnInit", "OnLoop", "OnLoop", "OnLoop", "OnTerminal"}, hooks(drv.Trace()))
	assert.Equal(t, 3, a.Frames)
	assert.Equal(t, []gpu.State{gpu.Running, gpu.Running}, demo.sawState)
	assert.Equal(t, gpu.TornDown, a.Context.State())

	trace := drv.Trace()
	assert.Equal(t, []string{"window", "instance", "surface", "adapter", "device", "diagnostics", "queue", "swapchain", "OnInit", "poll", "OnLoop"}, trace[:11])
	// OnTerminal runs before anything is released
	term := slices.Index(trace, "OnTerminal")
	assert.Equal(t, "remove-diagnostics", trace[term+1])
	assert.Equal(t, "terminate", trace[len(trace)-1])
	assert.Equal(t, 1, drv.Count("release:device"))
}

func TestRunClosedWindow(t *testing.T) {
	a, drv, demo, code := newApp(0)
	a.Run(demo)
	assert.Equal(t, -1, *code)
	assert.Equal(t, []string{"OnInit", "OnTerminal"}, hooks(drv.Trace()))
	assert.Zero(t, drv.Count("poll"))
}

func TestRunAdapterFailure(t *testing.T) {
	a, drv, demo, code := newApp(3)
	drv.AdapterStatus = gpu.AdapterUnavailable
	a.Run(demo)
	assert.Equal(t, ExitFailure, *code)
	assert.Zero(t, drv.Count("device"))
	assert.Empty(t, hooks(drv.Trace()))
	assert.Equal(t, 1, drv.Count("release:instance"))
}

func TestRunStepFailures(t *testing.T) {
	for _, step := range []string{"window", "instance", "surface", "device", "queue", "swapchain"} {
		t.Run(step, func(t *testing.T) {
			a, drv, demo, code := newApp(3)
			drv.Fail = map[string]bool{step: true}
			a.Run(demo)
			assert.Equal(t, ExitFailure, *code)
			assert.Empty(t, hooks(drv.Trace()))
			assert.Zero(t, drv.Count("poll"))
			assert.Equal(t, 1, drv.Count("terminate"))
		})
	}
}

func TestRunInitError(t *testing.T) {
	a, drv, demo, code := newApp(3)
	demo.initErr = errors.New("no shader")
	a.Run(demo)
	assert.Equal(t, ExitFailure, *code)
	assert.Equal(t, []string{"OnInit", "OnTerminal"}, hooks(drv.Trace()))
	assert.Equal(t, 1, drv.Count("terminate"))
}

func TestRunLoopError(t *testing.T) {
	a, drv, demo, code := newApp(10)
	demo.loopErr = errors.New("frame failed")
	demo.failAfter = 2
	a.Run(demo)
	assert.Equal(t, ExitFailure, *code)
	assert.Equal(t, []string{"OnInit", "OnLoop", "OnLoop", "OnTerminal"}, hooks(drv.Trace()))
	assert.Equal(t, 1, a.Frames)
}

func TestRunDeviceLost(t *testing.T) {
	a, drv, demo, code := newApp(10)
	demo.lostAt = 2
	a.Run(demo)
	assert.Equal(t, ExitFailure, *code)
	assert.Equal(t, []string{"OnInit", "OnLoop", "OnLoop", "OnTerminal"}, hooks(drv.Trace()))
	require.Error(t, a.Context.Lost())
	assert.ErrorIs(t, a.Context.Lost(), gpu.ErrDeviceLost)
}

func TestRunUsesConfig(t *testing.T) {
	a, drv, demo, _ := newApp(1)
	a.Config.Title = "Configured"
	a.Config.PresentMode = "fifo"
	a.Run(demo)
	assert.Equal(t, "Configured", drv.Window.Title)
	assert.Equal(t, gpu.PresentModeFifo, drv.SwapchainConfig.PresentMode)
}

func TestNewCopiesConfig(t *testing.T) {
	cfg := config.Default()
	a := New(cfg, gputest.NewDriver(1))
	cfg.Title = "Changed"
	assert.Equal(t, "gpuboot", a.Config.Title)
}
