// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wgpudriver

import (
	"image"

	"cogentcore.org/gpuboot/base/errors"
	"cogentcore.org/gpuboot/gpu"
	"github.com/cogentcore/webgpu/wgpu"
)

// DepthFormat is the format of depth textures.
const DepthFormat = wgpu.TextureFormatDepth24Plus

// DepthTexture is a depth attachment matching the swapchain size.
type DepthTexture struct {
	// Size is the texture size.
	Size image.Point

	texture *wgpu.Texture
	view    *wgpu.TextureView
}

// NewDepthTexture creates a depth texture of the swapchain size.
func NewDepthTexture(cx *gpu.Context) (*DepthTexture, error) {
	h, err := HandlesOf(cx)
	if err != nil {
		return nil, err
	}
	dt := &DepthTexture{Size: h.Size}
	t, err := h.Device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "depth",
		Size: wgpu.Extent3D{
			Width:              uint32(h.Size.X),
			Height:             uint32(h.Size.Y),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        DepthFormat,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if errors.Log(ReportError(cx, err)) != nil {
		return nil, err
	}
	dt.texture = t
	vw, err := t.CreateView(nil)
	if errors.Log(ReportError(cx, err)) != nil {
		dt.Release()
		return nil, err
	}
	dt.view = vw
	return dt, nil
}

// View returns the view to use as the depth attachment.
func (dt *DepthTexture) View() *wgpu.TextureView { return dt.view }

// Release destroys the view and the texture.
func (dt *DepthTexture) Release() {
	if dt.view != nil {
		dt.view.Release()
		dt.view = nil
	}
	if dt.texture != nil {
		dt.texture.Release()
		dt.texture = nil
	}
}
