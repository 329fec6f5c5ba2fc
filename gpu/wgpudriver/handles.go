// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wgpudriver

import (
	"image"
	"sync/atomic"

	"cogentcore.org/gpuboot/gpu"
	"github.com/cogentcore/webgpu/wgpu"
)

// Instance is a [gpu.Instance] holding a WebGPU instance.
type Instance struct {
	*wgpu.Instance
}

func (in *Instance) IsNil() bool { return in == nil || in.Instance == nil }

func (in *Instance) Release() {
	if in.IsNil() {
		return
	}
	in.Instance.Release()
	in.Instance = nil
}

// Surface is a [gpu.Surface] holding a WebGPU surface.
type Surface struct {
	*wgpu.Surface
}

func (sf *Surface) IsNil() bool { return sf == nil || sf.Surface == nil }

func (sf *Surface) Release() {
	if sf.IsNil() {
		return
	}
	sf.Surface.Release()
	sf.Surface = nil
}

// Adapter is a [gpu.Adapter] holding a WebGPU adapter.
type Adapter struct {
	*wgpu.Adapter
}

func (a *Adapter) IsNil() bool { return a == nil || a.Adapter == nil }

func (a *Adapter) Release() {
	if a.IsNil() {
		return
	}
	a.Adapter.Release()
	a.Adapter = nil
}

func (a *Adapter) Info() gpu.AdapterInfo {
	info := a.GetInfo()
	return gpu.AdapterInfo{
		Name:        info.Name,
		Vendor:      info.VendorName,
		Driver:      info.DriverDescription,
		Backend:     info.BackendType.String(),
		AdapterType: info.AdapterType.String(),
	}
}

func (a *Adapter) Limits() gpu.Limits { return limits(a.GetLimits().Limits) }

// Device is a [gpu.Device] holding a WebGPU device.
type Device struct {
	*wgpu.Device

	// releasing is set before the device is released, so that the
	// resulting loss is reported as intentional.
	releasing atomic.Bool
}

func (dv *Device) IsNil() bool { return dv == nil || dv.Device == nil }

func (dv *Device) Release() {
	if dv.IsNil() {
		return
	}
	dv.releasing.Store(true)
	dv.Device.Release()
	dv.Device = nil
}

func (dv *Device) Limits() gpu.Limits { return limits(dv.GetLimits().Limits) }

// Queue is a [gpu.Queue] holding a WebGPU queue.
type Queue struct {
	*wgpu.Queue
}

func (q *Queue) IsNil() bool { return q == nil || q.Queue == nil }

func (q *Queue) Release() {
	if q.IsNil() {
		return
	}
	q.Queue.Release()
	q.Queue = nil
}

// Swapchain is the [gpu.Swapchain] of a configured surface.
// The surface itself is owned and released by the [Surface].
type Swapchain struct {
	// Surface is the configured surface, nil after release.
	Surface *wgpu.Surface

	// Format is the configured texture format.
	Format wgpu.TextureFormat

	config gpu.SwapchainConfig
}

func (sc *Swapchain) IsNil() bool { return sc == nil || sc.Surface == nil }

func (sc *Swapchain) Release() {
	if sc.IsNil() {
		return
	}
	sc.Surface = nil
}

func (sc *Swapchain) Config() gpu.SwapchainConfig { return sc.config }

func limits(l wgpu.Limits) gpu.Limits {
	return gpu.Limits{
		MinUniformBufferOffsetAlignment: l.MinUniformBufferOffsetAlignment,
		MinStorageBufferOffsetAlignment: l.MinStorageBufferOffsetAlignment,
		MaxUniformBufferBindingSize:     l.MaxUniformBufferBindingSize,
		MaxBindGroups:                   l.MaxBindGroups,
	}
}

// Handles are the raw WebGPU handles of a running context, borrowed
// for building pipelines, bind groups and buffers. They must not be
// used after the context is released.
type Handles struct {
	Instance *wgpu.Instance
	Surface  *wgpu.Surface
	Adapter  *wgpu.Adapter
	Device   *wgpu.Device
	Queue    *wgpu.Queue

	// Format is the swapchain texture format.
	Format wgpu.TextureFormat

	// Size is the swapchain size.
	Size image.Point
}

// HandlesOf returns the raw handles of the given context, which must
// have been acquired with a [Driver].
func HandlesOf(cx *gpu.Context) (*Handles, error) {
	in, ok1 := cx.Instance().(*Instance)
	sf, ok2 := cx.Surface().(*Surface)
	a, ok3 := cx.Adapter().(*Adapter)
	dv, ok4 := cx.Device().(*Device)
	q, ok5 := cx.Queue().(*Queue)
	sc, ok6 := cx.Swapchain().(*Swapchain)
	if !(ok1 && ok2 && ok3 && ok4 && ok5 && ok6) || dv.IsNil() || q.IsNil() || sc.IsNil() {
		return nil, gpu.ErrNotRunning
	}
	return &Handles{
		Instance: in.Instance,
		Surface:  sf.Surface,
		Adapter:  a.Adapter,
		Device:   dv.Device,
		Queue:    q.Queue,
		Format:   sc.Format,
		Size:     cx.Size(),
	}, nil
}
