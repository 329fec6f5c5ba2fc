// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"
	"image"
	"log/slog"
	"sync/atomic"

	"github.com/google/uuid"
)

// Options are the construction time options of a [Context].
type Options struct {
	// Title is the window title.
	Title string

	// Width and Height are the window and swapchain size in pixels.
	Width, Height int

	PowerPreference      PowerPreference
	ForceFallbackAdapter bool

	// PresentMode defaults to [PresentModeMailbox].
	PresentMode PresentMode

	// Logger receives lifecycle and device messages;
	// [slog.Default] is used if it is nil.
	Logger *slog.Logger
}

// Context owns the window and all GPU handles of a running application:
// instance, surface, adapter, device, queue and swapchain. It is created
// with [NewContext], filled by [Context.Acquire] in a fixed order, and
// released by [Context.Release] in reverse order. Collaborators borrow
// the handles through the accessor methods and must not retain them
// after release.
type Context struct {
	// ID identifies this context in log messages.
	ID string

	opts   Options
	driver Driver
	logger *slog.Logger
	router *Router

	state atomic.Int32
	lost  atomic.Pointer[error]

	// platform is set once the window step is attempted,
	// so that the platform is terminated even if it fails.
	platform bool

	window    Window
	instance  Instance
	surface   Surface
	adapter   Adapter
	device    Device
	queue     Queue
	swapchain Swapchain
}

// NewContext returns a new uninitialized context using the given driver.
func NewContext(drv Driver, opts Options) *Context {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	cx := &Context{ID: uuid.NewString(), opts: opts, driver: drv}
	cx.logger = opts.Logger.With("context", cx.ID)
	cx.router = NewRouter(cx.logger)
	cx.router.OnLost = cx.setLost
	return cx
}

// State returns the current lifecycle state.
func (cx *Context) State() State { return State(cx.state.Load()) }

func (cx *Context) setState(s State) {
	cx.state.Store(int32(s))
	cx.logger.Debug("gpu: context state", "state", s)
}

// Acquire acquires the window and all GPU handles in order:
// window, instance, surface, adapter, device, queue, swapchain.
// It stops at the first failure and returns a [*StepError];
// handles acquired so far are kept until [Context.Release].
func (cx *Context) Acquire() error {
	if cx.State() != Uninitialized {
		return fmt.Errorf("%w: acquire from %s", ErrBadState, cx.State())
	}
	steps := []func() (any, error){
		StepWindow: func() (any, error) {
			cx.platform = true
			w, err := cx.driver.CreateWindow(cx.opts.Title, cx.opts.Width, cx.opts.Height)
			cx.window = w
			return w, err
		},
		StepInstance: func() (any, error) {
			in, err := cx.driver.CreateInstance()
			cx.instance = in
			return in, err
		},
		StepSurface: func() (any, error) {
			sf, err := cx.driver.CreateSurface(cx.instance, cx.window)
			cx.surface = sf
			return sf, err
		},
		StepAdapter: func() (any, error) {
			ad, err := RequestAdapter(cx.driver, cx.instance, AdapterOptions{
				CompatibleSurface:    cx.surface,
				PowerPreference:      cx.opts.PowerPreference,
				ForceFallbackAdapter: cx.opts.ForceFallbackAdapter,
			})
			cx.adapter = ad
			return ad, err
		},
		StepDevice: func() (any, error) {
			dv, err := cx.driver.CreateDevice(cx.adapter, DeviceDescriptor{
				Label: "gpuboot device " + cx.ID,
				Lost:  cx.router.DeviceLost,
			})
			cx.device = dv
			if err == nil && !isNil(dv) {
				cx.driver.InstallDiagnostics(dv, cx.router)
			}
			return dv, err
		},
		StepQueue: func() (any, error) {
			q, err := cx.driver.Queue(cx.device)
			cx.queue = q
			return q, err
		},
		StepSwapchain: func() (any, error) {
			sc, err := cx.driver.CreateSwapchain(cx.device, cx.adapter, cx.surface, SwapchainConfig{
				Format:      FormatBGRA8Unorm,
				PresentMode: cx.opts.PresentMode,
				Width:       cx.opts.Width,
				Height:      cx.opts.Height,
			})
			cx.swapchain = sc
			return sc, err
		},
	}
	for i, fn := range steps {
		step := Step(i)
		h, err := fn()
		if err == nil && isNil(h) {
			err = ErrInvalidHandle
		}
		if err != nil {
			return &StepError{Step: step, Err: err}
		}
		cx.setState(stepStates[step])
	}
	info := cx.adapter.Info()
	cx.logger.Info("gpu: context acquired", "adapter", info.Name, "backend", info.Backend,
		"width", cx.opts.Width, "height", cx.opts.Height)
	return nil
}

// isNil returns whether the interface value h holds no handle.
// Typed nil pointers stored in an interface count as nil.
func isNil(h any) bool {
	if h == nil {
		return true
	}
	if n, ok := h.(interface{ IsNil() bool }); ok {
		return n.IsNil()
	}
	return false
}

// Start moves a fully acquired context to the Running state.
func (cx *Context) Start() error {
	if cx.State() != SwapchainReady {
		return fmt.Errorf("%w: start from %s", ErrBadState, cx.State())
	}
	cx.setState(Running)
	return nil
}

// Release releases all handles in reverse acquisition order: swapchain,
// queue, device, adapter, surface and instance, then destroys the window
// and terminates the platform. It is safe to call more than once and
// after a failed [Context.Acquire]; each handle is released at most once.
func (cx *Context) Release() {
	if State(cx.state.Swap(int32(TornDown))) == TornDown {
		return
	}
	if cx.device != nil {
		cx.driver.RemoveDiagnostics(cx.device)
	}
	release := func(r Releaser) {
		if r != nil {
			r.Release()
		}
	}
	release(cx.swapchain)
	cx.swapchain = nil
	release(cx.queue)
	cx.queue = nil
	release(cx.device)
	cx.device = nil
	release(cx.adapter)
	cx.adapter = nil
	release(cx.surface)
	cx.surface = nil
	release(cx.instance)
	cx.instance = nil
	if cx.window != nil {
		cx.window.Destroy()
		cx.window = nil
	}
	if cx.platform {
		cx.platform = false
		cx.driver.Terminate()
	}
	cx.logger.Info("gpu: context released")
}

// setLost records an unintentional device loss.
func (cx *Context) setLost(reason, message string) {
	err := fmt.Errorf("%w: %s: %s", ErrDeviceLost, reason, message)
	cx.lost.CompareAndSwap(nil, &err)
}

// Lost returns a non-nil error wrapping [ErrDeviceLost]
// once the device has been lost.
func (cx *Context) Lost() error {
	if p := cx.lost.Load(); p != nil {
		return *p
	}
	return nil
}

// Diagnostics returns the router receiving the device messages.
func (cx *Context) Diagnostics() *Router { return cx.router }

// Logger returns the logger of this context.
func (cx *Context) Logger() *slog.Logger { return cx.logger }

// Size returns the swapchain size.
func (cx *Context) Size() image.Point { return image.Pt(cx.opts.Width, cx.opts.Height) }

// Limits returns the device limits.
func (cx *Context) Limits() Limits {
	if cx.device == nil {
		return Limits{}
	}
	return cx.device.Limits()
}

func (cx *Context) Window() Window       { return cx.window }
func (cx *Context) Instance() Instance   { return cx.instance }
func (cx *Context) Surface() Surface     { return cx.surface }
func (cx *Context) Adapter() Adapter     { return cx.adapter }
func (cx *Context) Device() Device       { return cx.device }
func (cx *Context) Queue() Queue         { return cx.queue }
func (cx *Context) Swapchain() Swapchain { return cx.swapchain }
