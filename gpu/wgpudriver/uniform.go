// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wgpudriver

import (
	"cogentcore.org/gpuboot/base/errors"
	"cogentcore.org/gpuboot/gpu"
	"github.com/cogentcore/webgpu/wgpu"
)

// UniformBuffer is one uniform buffer holding several regions laid out
// with [gpu.LayoutRegions] for the device minimum uniform offset
// alignment. The layout is fixed; only the bytes of each region are
// written per frame.
type UniformBuffer struct {
	// Name is the buffer label.
	Name string

	// Regions is the layout of the buffer.
	Regions gpu.Regions

	// Buffer is the device buffer, nil after release.
	Buffer *wgpu.Buffer

	cx    *gpu.Context
	queue *wgpu.Queue
}

// NewUniformBuffer lays out the requested regions and creates the buffer.
func NewUniformBuffer(cx *gpu.Context, name string, reqs ...gpu.RegionRequest) (*UniformBuffer, error) {
	h, err := HandlesOf(cx)
	if err != nil {
		return nil, err
	}
	minAlign := uint64(cx.Limits().MinUniformBufferOffsetAlignment)
	if minAlign == 0 {
		minAlign = 256
	}
	regs, err := gpu.LayoutRegions(reqs, minAlign)
	if err != nil {
		return nil, errors.Log(err)
	}
	buf, err := h.Device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: name,
		Size:  regs.Size,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if errors.Log(ReportError(cx, err)) != nil {
		return nil, err
	}
	cx.Logger().Debug("wgpudriver: uniform buffer", "name", name, "regions", regs.Regions, "size", regs.Size)
	return &UniformBuffer{Name: name, Regions: regs, Buffer: buf, cx: cx, queue: h.Queue}, nil
}

// Write writes data at the offset of region i. The data must fit
// in the region.
func (ub *UniformBuffer) Write(i int, data []byte) error {
	if ub.Buffer == nil {
		return gpu.ErrNotRunning
	}
	if i < 0 || i >= ub.Regions.Len() {
		return errors.Errorf("wgpudriver: %s: region %d out of range", ub.Name, i)
	}
	rg := ub.Regions.At(i)
	if uint64(len(data)) > rg.Size {
		return errors.Errorf("wgpudriver: %s: %d bytes do not fit region %d %s", ub.Name, len(data), i, rg)
	}
	return ReportError(ub.cx, ub.queue.WriteBuffer(ub.Buffer, rg.Offset, data))
}

// Entry returns the bind group entry for region i at the given binding.
func (ub *UniformBuffer) Entry(binding uint32, i int) wgpu.BindGroupEntry {
	rg := ub.Regions.At(i)
	return wgpu.BindGroupEntry{
		Binding: binding,
		Buffer:  ub.Buffer,
		Offset:  rg.Offset,
		Size:    rg.Size,
	}
}

// Release releases the buffer.
func (ub *UniformBuffer) Release() {
	if ub.Buffer == nil {
		return
	}
	ub.Buffer.Release()
	ub.Buffer = nil
}
