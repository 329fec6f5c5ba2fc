// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wgpudriver

import (
	"cogentcore.org/gpuboot/base/errors"
	"cogentcore.org/gpuboot/gpu"
	"github.com/cogentcore/webgpu/wgpu"
)

// ErrSubmitted is returned when a frame is submitted twice.
var ErrSubmitted = errors.New("wgpudriver: frame already submitted")

// Frame holds the resources of one loop iteration: the acquired
// surface texture, its view and the command encoder. It is consumed
// by one [Frame.Submit] and must be released with [Frame.Release] at
// the end of the iteration; Release is safe to call more than once.
// Only one frame is in flight at a time.
type Frame struct {
	// Handles are the raw handles of the context.
	Handles *Handles

	// View is the view of the current surface texture,
	// the color attachment of render passes.
	View *wgpu.TextureView

	// Encoder records the commands of this frame.
	Encoder *wgpu.CommandEncoder

	cx        *gpu.Context
	texture   *wgpu.Texture
	submitted bool
}

// BeginFrame acquires the current surface texture and a command
// encoder for a running context.
func BeginFrame(cx *gpu.Context) (*Frame, error) {
	if cx.State() != gpu.Running {
		return nil, gpu.ErrNotRunning
	}
	if err := cx.Lost(); err != nil {
		return nil, err
	}
	h, err := HandlesOf(cx)
	if err != nil {
		return nil, err
	}
	fr := &Frame{Handles: h, cx: cx}
	fr.texture, err = h.Surface.GetCurrentTexture()
	if err != nil {
		return nil, ReportError(cx, err)
	}
	fr.View, err = fr.texture.CreateView(nil)
	if err != nil {
		fr.Release()
		return nil, ReportError(cx, err)
	}
	fr.Encoder, err = h.Device.CreateCommandEncoder(nil)
	if err != nil {
		fr.Release()
		return nil, ReportError(cx, err)
	}
	return fr, nil
}

// ClearPass returns a render pass descriptor that clears the frame
// to the given color. If depth is non-nil it is cleared to 1 and
// used as the depth attachment.
func (fr *Frame) ClearPass(clear wgpu.Color, depth *wgpu.TextureView) *wgpu.RenderPassDescriptor {
	rpd := &wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       fr.View,
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: clear,
		}},
	}
	if depth != nil {
		rpd.DepthStencilAttachment = &wgpu.RenderPassDepthStencilAttachment{
			View:            depth,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpStore,
			DepthClearValue: 1,
		}
	}
	return rpd
}

// BeginRenderPass starts a render pass that clears the frame.
// Call End on the pass before [Frame.Submit].
func (fr *Frame) BeginRenderPass(clear wgpu.Color, depth *wgpu.TextureView) *wgpu.RenderPassEncoder {
	return fr.Encoder.BeginRenderPass(fr.ClearPass(clear, depth))
}

// Submit releases the given ended render passes, finishes the
// encoder and submits the commands to the queue.
func (fr *Frame) Submit(passes ...*wgpu.RenderPassEncoder) error {
	if fr.submitted {
		return ErrSubmitted
	}
	fr.submitted = true
	for _, rp := range passes {
		rp.Release() // must happen before Finish
	}
	cmd, err := fr.Encoder.Finish(nil)
	if err != nil {
		return ReportError(fr.cx, err)
	}
	fr.Handles.Queue.Submit(cmd)
	cmd.Release()
	return nil
}

// Present shows the submitted frame.
func (fr *Frame) Present() {
	fr.Handles.Surface.Present()
}

// Release releases the encoder, view and texture of the frame.
func (fr *Frame) Release() {
	if fr.Encoder != nil {
		fr.Encoder.Release()
		fr.Encoder = nil
	}
	if fr.View != nil {
		fr.View.Release()
		fr.View = nil
	}
	if fr.texture != nil {
		fr.texture.Release()
		fr.texture = nil
	}
}

// Render runs one frame: it begins the frame, calls draw with a render
// pass that clears to the given color, then submits and presents.
func Render(cx *gpu.Context, clear wgpu.Color, depth *wgpu.TextureView, draw func(fr *Frame, rp *wgpu.RenderPassEncoder) error) error {
	fr, err := BeginFrame(cx)
	if err != nil {
		return err
	}
	defer fr.Release()
	rp := fr.BeginRenderPass(clear, depth)
	if draw != nil {
		if err := draw(fr, rp); err != nil {
			rp.End()
			rp.Release()
			return err
		}
	}
	rp.End()
	if err := fr.Submit(rp); err != nil {
		return err
	}
	fr.Present()
	return nil
}
