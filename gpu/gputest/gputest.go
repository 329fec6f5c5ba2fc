// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gputest provides a fake [gpu.Driver] that records every
// call it receives, for testing code built on [gpu.Context]
// without a GPU or a display.
package gputest

import (
	"fmt"
	"slices"
	"sync"

	"cogentcore.org/gpuboot/base/errors"
	"cogentcore.org/gpuboot/gpu"
)

// ErrInjected is returned by steps configured to fail with Fail.
var ErrInjected = errors.New("gputest: injected failure")

// Driver is a fake [gpu.Driver]. Every call is appended to the trace
// as a short name: "window", "instance", "surface", "adapter",
// "device", "diagnostics", "queue", "swapchain", and for teardown
// "release:<handle>", "destroy:window", "remove-diagnostics" and
// "terminate".
type Driver struct {
	// Fail makes the named step return ErrInjected.
	Fail map[string]bool

	// NilHandle makes the named step return a nil handle with no error.
	NilHandle map[string]bool

	// AdapterStatus is reported by the adapter callback.
	AdapterStatus gpu.AdapterStatus

	// AsyncAdapter resolves the adapter request from another goroutine.
	AsyncAdapter bool

	// CloseAfter makes the window report ShouldClose after this many
	// PollEvents calls.
	CloseAfter int

	// Limits are reported by the adapter and device.
	Limits gpu.Limits

	// Diagnostics is the sink installed on the device.
	Diagnostics gpu.Diagnostics

	// DeviceDescriptor is the last descriptor passed to CreateDevice.
	DeviceDescriptor gpu.DeviceDescriptor

	// SwapchainConfig is the last config passed to CreateSwapchain.
	SwapchainConfig gpu.SwapchainConfig

	// Window is the window that was created.
	Window *Window

	mu    sync.Mutex
	trace []string
}

// NewDriver returns a new fake driver whose window closes after
// closeAfter polls and whose limits use a 256 byte uniform alignment.
func NewDriver(closeAfter int) *Driver {
	return &Driver{
		CloseAfter: closeAfter,
		Limits: gpu.Limits{
			MinUniformBufferOffsetAlignment: 256,
			MinStorageBufferOffsetAlignment: 256,
			MaxUniformBufferBindingSize:     65536,
			MaxBindGroups:                   4,
		},
	}
}

// Record appends the given entry to the trace.
func (d *Driver) Record(s string) {
	d.mu.Lock()
	d.trace = append(d.trace, s)
	d.mu.Unlock()
}

// Trace returns a copy of the recorded calls.
func (d *Driver) Trace() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return slices.Clone(d.trace)
}

// Count returns the number of times the given entry was recorded.
func (d *Driver) Count(s string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := 0
	for _, t := range d.trace {
		if t == s {
			n++
		}
	}
	return n
}

func (d *Driver) step(name string) error {
	d.Record(name)
	if d.Fail[name] {
		return fmt.Errorf("%s: %w", name, ErrInjected)
	}
	return nil
}

func (d *Driver) CreateWindow(title string, width, height int) (gpu.Window, error) {
	if err := d.step("window"); err != nil {
		return nil, err
	}
	if d.NilHandle["window"] {
		return nil, nil
	}
	d.Window = &Window{Title: title, Width: width, Height: height, driver: d}
	return d.Window, nil
}

func (d *Driver) CreateInstance() (gpu.Instance, error) {
	if err := d.step("instance"); err != nil {
		return nil, err
	}
	if d.NilHandle["instance"] {
		return nil, nil
	}
	return &Handle{Name: "instance", driver: d}, nil
}

func (d *Driver) CreateSurface(inst gpu.Instance, win gpu.Window) (gpu.Surface, error) {
	if err := d.step("surface"); err != nil {
		return nil, err
	}
	if d.NilHandle["surface"] {
		return nil, nil
	}
	return &Handle{Name: "surface", driver: d}, nil
}

func (d *Driver) RequestAdapter(inst gpu.Instance, opts gpu.AdapterOptions, cb gpu.AdapterCallback) {
	d.Record("adapter")
	status := d.AdapterStatus
	if d.Fail["adapter"] {
		status = gpu.AdapterUnavailable
	}
	var ad gpu.Adapter
	if status == gpu.AdapterSuccess && !d.NilHandle["adapter"] {
		ad = &Adapter{Handle: Handle{Name: "adapter", driver: d}, limits: d.Limits}
	}
	if d.AsyncAdapter {
		go cb(status, ad, "fake adapter")
		return
	}
	cb(status, ad, "fake adapter")
}

func (d *Driver) CreateDevice(adapter gpu.Adapter, desc gpu.DeviceDescriptor) (gpu.Device, error) {
	d.DeviceDescriptor = desc
	if err := d.step("device"); err != nil {
		return nil, err
	}
	if d.NilHandle["device"] {
		return nil, nil
	}
	return &Device{Handle: Handle{Name: "device", driver: d}, limits: d.Limits}, nil
}

func (d *Driver) InstallDiagnostics(dev gpu.Device, sink gpu.Diagnostics) {
	d.Record("diagnostics")
	d.Diagnostics = sink
}

func (d *Driver) RemoveDiagnostics(dev gpu.Device) {
	d.Record("remove-diagnostics")
	d.Diagnostics = nil
}

func (d *Driver) Queue(dev gpu.Device) (gpu.Queue, error) {
	if err := d.step("queue"); err != nil {
		return nil, err
	}
	if d.NilHandle["queue"] {
		return nil, nil
	}
	return &Handle{Name: "queue", driver: d}, nil
}

func (d *Driver) CreateSwapchain(dev gpu.Device, adapter gpu.Adapter, surface gpu.Surface, cfg gpu.SwapchainConfig) (gpu.Swapchain, error) {
	d.SwapchainConfig = cfg
	if err := d.step("swapchain"); err != nil {
		return nil, err
	}
	if d.NilHandle["swapchain"] {
		return nil, nil
	}
	return &Swapchain{Handle: Handle{Name: "swapchain", driver: d}, config: cfg}, nil
}

func (d *Driver) Terminate() { d.Record("terminate") }

// Handle is a fake GPU handle that records its release.
type Handle struct {
	Name     string
	Released int
	driver   *Driver
}

func (h *Handle) Release() {
	h.Released++
	h.driver.Record("release:" + h.Name)
}

// Adapter is a fake [gpu.Adapter].
type Adapter struct {
	Handle
	limits gpu.Limits
}

func (a *Adapter) Info() gpu.AdapterInfo {
	return gpu.AdapterInfo{Name: "fake", Vendor: "gputest", Driver: "fake", Backend: "null", AdapterType: "cpu"}
}

func (a *Adapter) Limits() gpu.Limits { return a.limits }

// Device is a fake [gpu.Device].
type Device struct {
	Handle
	limits gpu.Limits
}

func (d *Device) Limits() gpu.Limits { return d.limits }

// Swapchain is a fake [gpu.Swapchain].
type Swapchain struct {
	Handle
	config gpu.SwapchainConfig
}

func (s *Swapchain) Config() gpu.SwapchainConfig { return s.config }

// Window is a fake [gpu.Window].
type Window struct {
	Title         string
	Width, Height int
	Polls         int
	Destroyed     int
	driver        *Driver
}

func (w *Window) ShouldClose() bool { return w.Polls >= w.driver.CloseAfter }

func (w *Window) PollEvents() {
	w.Polls++
	w.driver.Record("poll")
}

func (w *Window) Destroy() {
	w.Destroyed++
	w.driver.Record("destroy:window")
}
