// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package wgpudriver implements [gpu.Driver] with WebGPU
// (wgpu-native through github.com/cogentcore/webgpu) and GLFW
// windows, and provides the per-frame helpers used on top of a
// running [gpu.Context]: frames, render pipelines, uniform buffers
// and depth textures.
package wgpudriver

import (
	"log/slog"
	"slices"

	"cogentcore.org/gpuboot/base/errors"
	"cogentcore.org/gpuboot/gpu"
	"github.com/cogentcore/webgpu/wgpu"
)

// Driver is the WebGPU [gpu.Driver].
type Driver struct {
	// LogLevel is the wgpu-native log level enabled while
	// diagnostics are installed.
	LogLevel wgpu.LogLevel

	// Logger is used for driver messages that are not device
	// diagnostics, such as present mode fallback.
	Logger *slog.Logger
}

// New returns a new driver logging wgpu-native warnings and errors.
func New() *Driver {
	return &Driver{LogLevel: wgpu.LogLevelWarn, Logger: slog.Default()}
}

func (d *Driver) logger() *slog.Logger {
	if d.Logger == nil {
		return slog.Default()
	}
	return d.Logger
}

func (d *Driver) CreateInstance() (gpu.Instance, error) {
	inst := wgpu.CreateInstance(nil)
	if inst == nil {
		return nil, errors.New("wgpudriver: no WebGPU instance")
	}
	return &Instance{Instance: inst}, nil
}

// RequestAdapter requests the adapter synchronously and reports
// the result through the callback before returning.
func (d *Driver) RequestAdapter(inst gpu.Instance, opts gpu.AdapterOptions, cb gpu.AdapterCallback) {
	in, ok := inst.(*Instance)
	if !ok || in.IsNil() {
		cb(gpu.AdapterError, nil, "invalid instance")
		return
	}
	ro := &wgpu.RequestAdapterOptions{
		PowerPreference:      PowerPreference(opts.PowerPreference),
		ForceFallbackAdapter: opts.ForceFallbackAdapter,
	}
	if sf, ok := opts.CompatibleSurface.(*Surface); ok && !sf.IsNil() {
		ro.CompatibleSurface = sf.Surface
	}
	a, err := in.RequestAdapter(ro)
	if err != nil {
		cb(gpu.AdapterUnavailable, nil, err.Error())
		return
	}
	if a == nil {
		cb(gpu.AdapterUnavailable, nil, "no adapter found")
		return
	}
	cb(gpu.AdapterSuccess, &Adapter{Adapter: a}, "")
}

func (d *Driver) CreateDevice(adapter gpu.Adapter, desc gpu.DeviceDescriptor) (gpu.Device, error) {
	a, ok := adapter.(*Adapter)
	if !ok || a.IsNil() {
		return nil, gpu.ErrInvalidHandle
	}
	dv := &Device{}
	wd, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: desc.Label,
		DeviceLostCallback: func(reason wgpu.DeviceLostReason, message string) {
			if desc.Lost == nil {
				return
			}
			intentional := reason == wgpu.DeviceLostReasonDestroyed || dv.releasing.Load()
			desc.Lost(reason.String(), message, intentional)
		},
	})
	if err != nil {
		return nil, err
	}
	if wd == nil {
		return nil, nil
	}
	dv.Device = wd
	return dv, nil
}

func (d *Driver) InstallDiagnostics(dev gpu.Device, sink gpu.Diagnostics) {
	installSink(sink, d.LogLevel)
}

func (d *Driver) RemoveDiagnostics(dev gpu.Device) {
	removeSink()
}

func (d *Driver) Queue(dev gpu.Device) (gpu.Queue, error) {
	dv, ok := dev.(*Device)
	if !ok || dv.IsNil() {
		return nil, gpu.ErrInvalidHandle
	}
	q := dv.GetQueue()
	if q == nil {
		return nil, nil
	}
	return &Queue{Queue: q}, nil
}

// CreateSwapchain configures the surface for the device. The format
// must be supported by the surface; an unsupported present mode falls
// back to fifo, which every surface supports, with a warning.
func (d *Driver) CreateSwapchain(dev gpu.Device, adapter gpu.Adapter, surface gpu.Surface, cfg gpu.SwapchainConfig) (gpu.Swapchain, error) {
	dv, ok1 := dev.(*Device)
	a, ok2 := adapter.(*Adapter)
	sf, ok3 := surface.(*Surface)
	if !ok1 || !ok2 || !ok3 || dv.IsNil() || a.IsNil() || sf.IsNil() {
		return nil, gpu.ErrInvalidHandle
	}
	caps := sf.GetCapabilities(a.Adapter)
	format := TextureFormat(cfg.Format)
	if !slices.Contains(caps.Formats, format) {
		return nil, errors.Errorf("wgpudriver: surface does not support format %s", cfg.Format)
	}
	mode, ok := choosePresentMode(PresentMode(cfg.PresentMode), caps.PresentModes)
	if !ok {
		d.logger().Warn("wgpudriver: present mode not supported, using fifo", "requested", cfg.PresentMode)
		cfg.PresentMode = gpu.PresentModeFifo
	}
	var alpha wgpu.CompositeAlphaMode
	if len(caps.AlphaModes) > 0 {
		alpha = caps.AlphaModes[0]
	}
	sf.Configure(a.Adapter, dv.Device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      format,
		Width:       uint32(cfg.Width),
		Height:      uint32(cfg.Height),
		PresentMode: mode,
		AlphaMode:   alpha,
	})
	return &Swapchain{Surface: sf.Surface, Format: format, config: cfg}, nil
}

// choosePresentMode returns want if it is supported, and otherwise fifo
// and false.
func choosePresentMode(want wgpu.PresentMode, supported []wgpu.PresentMode) (wgpu.PresentMode, bool) {
	if slices.Contains(supported, want) {
		return want, true
	}
	return wgpu.PresentModeFifo, false
}
