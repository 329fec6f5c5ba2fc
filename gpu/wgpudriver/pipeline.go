// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wgpudriver

import (
	"cogentcore.org/gpuboot/base/errors"
	"cogentcore.org/gpuboot/gpu"
	"github.com/cogentcore/webgpu/wgpu"
)

// PipelineConfig configures a render pipeline drawing triangle lists
// to the swapchain.
type PipelineConfig struct {
	// Label names the pipeline and its layout.
	Label string

	// Code is the WGSL source with both entry points.
	Code string

	// VertexEntry and FragmentEntry default to vs_main and fs_main.
	VertexEntry, FragmentEntry string

	// BindGroupLayouts are the layouts of the bind groups, by group index.
	BindGroupLayouts []*wgpu.BindGroupLayout

	// VertexBuffers are the layouts of the vertex buffers, by slot.
	VertexBuffers []wgpu.VertexBufferLayout

	// Depth enables depth testing and writing against a [DepthTexture].
	Depth bool
}

// Pipeline is a render pipeline with its layout.
type Pipeline struct {
	Pipeline *wgpu.RenderPipeline
	Layout   *wgpu.PipelineLayout
}

// NewPipeline compiles the shader and creates the pipeline. The shader
// module is released once the pipeline is created.
func NewPipeline(cx *gpu.Context, cfg PipelineConfig) (*Pipeline, error) {
	h, err := HandlesOf(cx)
	if err != nil {
		return nil, err
	}
	if cfg.VertexEntry == "" {
		cfg.VertexEntry = "vs_main"
	}
	if cfg.FragmentEntry == "" {
		cfg.FragmentEntry = "fs_main"
	}
	sh, err := h.Device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: cfg.Label,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: cfg.Code,
		},
	})
	if errors.Log(ReportError(cx, err)) != nil {
		return nil, err
	}
	defer sh.Release()

	pl := &Pipeline{}
	pl.Layout, err = h.Device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            cfg.Label,
		BindGroupLayouts: cfg.BindGroupLayouts,
	})
	if errors.Log(ReportError(cx, err)) != nil {
		return nil, err
	}
	pd := &wgpu.RenderPipelineDescriptor{
		Label:  cfg.Label,
		Layout: pl.Layout,
		Vertex: wgpu.VertexState{
			Module:     sh,
			EntryPoint: cfg.VertexEntry,
			Buffers:    cfg.VertexBuffers,
		},
		Fragment: &wgpu.FragmentState{
			Module:     sh,
			EntryPoint: cfg.FragmentEntry,
			Targets: []wgpu.ColorTargetState{{
				Format:    h.Format,
				Blend:     &wgpu.BlendStateReplace,
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	}
	if cfg.Depth {
		pd.DepthStencil = &wgpu.DepthStencilState{
			Format:            DepthFormat,
			DepthWriteEnabled: true,
			DepthCompare:      wgpu.CompareFunctionLess,
			StencilFront: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
			StencilBack: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
		}
	}
	pl.Pipeline, err = h.Device.CreateRenderPipeline(pd)
	if errors.Log(ReportError(cx, err)) != nil {
		pl.Release()
		return nil, err
	}
	return pl, nil
}

// Release releases the pipeline and its layout.
func (pl *Pipeline) Release() {
	if pl.Pipeline != nil {
		pl.Pipeline.Release()
		pl.Pipeline = nil
	}
	if pl.Layout != nil {
		pl.Layout.Release()
		pl.Layout = nil
	}
}

// UniformLayout creates a bind group layout with one uniform buffer
// binding per given shader stage visibility, at bindings 0, 1, ...
func UniformLayout(cx *gpu.Context, label string, visibility ...wgpu.ShaderStage) (*wgpu.BindGroupLayout, error) {
	h, err := HandlesOf(cx)
	if err != nil {
		return nil, err
	}
	entries := make([]wgpu.BindGroupLayoutEntry, len(visibility))
	for i, vis := range visibility {
		entries[i] = wgpu.BindGroupLayoutEntry{
			Binding:    uint32(i),
			Visibility: vis,
			Buffer: wgpu.BufferBindingLayout{
				Type: wgpu.BufferBindingTypeUniform,
			},
		}
	}
	bgl, err := h.Device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label:   label,
		Entries: entries,
	})
	return bgl, errors.Log(ReportError(cx, err))
}

// VertexBuffer creates a vertex buffer holding the given data.
func VertexBuffer(cx *gpu.Context, label string, data []byte) (*wgpu.Buffer, error) {
	h, err := HandlesOf(cx)
	if err != nil {
		return nil, err
	}
	buf, err := h.Device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
	})
	if errors.Log(ReportError(cx, err)) != nil {
		return nil, err
	}
	if err := h.Queue.WriteBuffer(buf, 0, data); err != nil {
		buf.Release()
		return nil, ReportError(cx, err)
	}
	return buf, nil
}

// BindGroup creates a bind group over the given uniform buffer
// regions, with region regions[i] at binding i.
func (ub *UniformBuffer) BindGroup(layout *wgpu.BindGroupLayout, regions ...int) (*wgpu.BindGroup, error) {
	h, err := HandlesOf(ub.cx)
	if err != nil {
		return nil, err
	}
	entries := make([]wgpu.BindGroupEntry, len(regions))
	for b, i := range regions {
		entries[b] = ub.Entry(uint32(b), i)
	}
	bg, err := h.Device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:   ub.Name,
		Layout:  layout,
		Entries: entries,
	})
	return bg, ReportError(ub.cx, err)
}
