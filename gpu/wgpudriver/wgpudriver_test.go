// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wgpudriver

import (
	"bytes"
	"log/slog"
	"testing"

	"cogentcore.org/gpuboot/gpu"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormats(t *testing.T) {
	assert.Equal(t, wgpu.TextureFormatBGRA8Unorm, TextureFormat(gpu.FormatBGRA8Unorm))
	assert.Equal(t, wgpu.TextureFormatBGRA8UnormSrgb, TextureFormat(gpu.FormatBGRA8UnormSrgb))
	assert.Equal(t, wgpu.TextureFormatRGBA8Unorm, TextureFormat(gpu.FormatRGBA8Unorm))

	assert.Equal(t, wgpu.PresentModeMailbox, PresentMode(gpu.PresentModeMailbox))
	assert.Equal(t, wgpu.PresentModeFifo, PresentMode(gpu.PresentModeFifo))
	assert.Equal(t, wgpu.PresentModeImmediate, PresentMode(gpu.PresentModeImmediate))

	assert.Equal(t, wgpu.PowerPreferenceHighPerformance, PowerPreference(gpu.PowerPreferenceHighPerformance))
	assert.Equal(t, wgpu.PowerPreferenceUndefined, PowerPreference(gpu.PowerPreferenceUndefined))
}

func TestLogLevel(t *testing.T) {
	assert.Equal(t, gpu.LogLevelError, LogLevel(wgpu.LogLevelError))
	assert.Equal(t, gpu.LogLevelWarn, LogLevel(wgpu.LogLevelWarn))
	assert.Equal(t, gpu.LogLevelInfo, LogLevel(wgpu.LogLevelInfo))
	assert.Equal(t, gpu.LogLevelDebug, LogLevel(wgpu.LogLevelDebug))
	assert.Equal(t, gpu.LogLevelTrace, LogLevel(wgpu.LogLevelTrace))
}

func TestErrorKind(t *testing.T) {
	assert.Equal(t, gpu.ErrorValidation, ErrorKind(wgpu.ErrorTypeValidation))
	assert.Equal(t, gpu.ErrorOutOfMemory, ErrorKind(wgpu.ErrorTypeOutOfMemory))
	assert.Equal(t, gpu.ErrorInternal, ErrorKind(wgpu.ErrorTypeInternal))
}

func TestLogSink(t *testing.T) {
	var buf bytes.Buffer
	r := gpu.NewRouter(slog.New(slog.NewTextHandler(&buf, nil)))
	installSink(r, wgpu.LogLevelWarn)
	logMessage(wgpu.LogLevelError, "shader compile failed")
	logMessage(wgpu.LogLevelWarn, "slow path")
	assert.Contains(t, buf.String(), "level=ERROR")
	assert.Contains(t, buf.String(), "shader compile failed")
	assert.Contains(t, buf.String(), "slow path")

	removeSink()
	buf.Reset()
	logMessage(wgpu.LogLevelError, "after release")
	assert.Empty(t, buf.String())
}

func TestChoosePresentMode(t *testing.T) {
	m, ok := choosePresentMode(wgpu.PresentModeMailbox, []wgpu.PresentMode{wgpu.PresentModeFifo, wgpu.PresentModeMailbox})
	assert.True(t, ok)
	assert.Equal(t, wgpu.PresentModeMailbox, m)

	m, ok = choosePresentMode(wgpu.PresentModeMailbox, []wgpu.PresentMode{wgpu.PresentModeFifo})
	assert.False(t, ok)
	assert.Equal(t, wgpu.PresentModeFifo, m)
}

func TestNilHandles(t *testing.T) {
	var in *Instance
	assert.True(t, in.IsNil())
	assert.NotPanics(t, in.Release)
	dv := &Device{}
	assert.True(t, dv.IsNil())
	assert.NotPanics(t, dv.Release)
	sc := &Swapchain{}
	assert.NotPanics(t, sc.Release)
	fr := &Frame{}
	assert.NotPanics(t, fr.Release)
	assert.NotPanics(t, fr.Release)
	ub := &UniformBuffer{}
	assert.ErrorIs(t, ub.Write(0, nil), gpu.ErrNotRunning)
}

func TestHandlesNotRunning(t *testing.T) {
	cx := gpu.NewContext(New(), gpu.Options{Title: "test", Width: 64, Height: 64})
	_, err := HandlesOf(cx)
	assert.ErrorIs(t, err, gpu.ErrNotRunning)
	_, err = BeginFrame(cx)
	assert.ErrorIs(t, err, gpu.ErrNotRunning)
	_, err = NewPipeline(cx, PipelineConfig{Code: "x"})
	assert.ErrorIs(t, err, gpu.ErrNotRunning)
	_, err = UniformLayout(cx, "u", wgpu.ShaderStageVertex)
	assert.ErrorIs(t, err, gpu.ErrNotRunning)
	_, err = VertexBuffer(cx, "v", make([]byte, 8))
	assert.ErrorIs(t, err, gpu.ErrNotRunning)
}

func TestContext(t *testing.T) {
	t.Skip("Need software GPU on CI")
	cx := gpu.NewContext(New(), gpu.Options{Title: "test", Width: 320, Height: 240})
	defer cx.Release()
	require.NoError(t, cx.Acquire())
	require.NoError(t, cx.Start())
	assert.NotZero(t, cx.Limits().MinUniformBufferOffsetAlignment)

	ub, err := NewUniformBuffer(cx, "test",
		gpu.RegionRequest{Size: 64}, gpu.RegionRequest{Size: 16})
	require.NoError(t, err)
	defer ub.Release()
	assert.NoError(t, ub.Write(1, make([]byte, 16)))
	assert.Error(t, ub.Write(1, make([]byte, 512)))

	dt, err := NewDepthTexture(cx)
	require.NoError(t, err)
	defer dt.Release()

	assert.NoError(t, Render(cx, wgpu.Color{R: 1, A: 1}, dt.View(), nil))

	bgl, err := UniformLayout(cx, "test", wgpu.ShaderStageVertex, wgpu.ShaderStageFragment)
	require.NoError(t, err)
	defer bgl.Release()
	bg, err := ub.BindGroup(bgl, 0, 1)
	require.NoError(t, err)
	defer bg.Release()

	pl, err := NewPipeline(cx, PipelineConfig{
		Label:            "test",
		Code:             testShader,
		BindGroupLayouts: []*wgpu.BindGroupLayout{bgl},
		Depth:            true,
	})
	require.NoError(t, err)
	defer pl.Release()
	assert.NoError(t, Render(cx, wgpu.Color{A: 1}, dt.View(), func(fr *Frame, rp *wgpu.RenderPassEncoder) error {
		rp.SetPipeline(pl.Pipeline)
		rp.SetBindGroup(0, bg, nil)
		rp.Draw(3, 1, 0, 0)
		return nil
	}))
}

const testShader = `
@group(0) @binding(0) var<uniform> transform: mat4x4<f32>;
@group(0) @binding(1) var<uniform> color: vec4<f32>;

@vertex
fn vs_main(@builtin(vertex_index) i: u32) -> @builtin(position) vec4<f32> {
	return transform * vec4<f32>(f32(i32(i) - 1), f32(i32(i & 1u) * 2 - 1), 0.0, 1.0);
}

@fragment
fn fs_main() -> @location(0) vec4<f32> {
	return color;
}
`
