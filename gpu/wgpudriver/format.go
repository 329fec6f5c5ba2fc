// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wgpudriver

import (
	"cogentcore.org/gpuboot/gpu"
	"github.com/cogentcore/webgpu/wgpu"
)

// TextureFormat returns the WebGPU texture format for the given format.
func TextureFormat(f gpu.Format) wgpu.TextureFormat {
	switch f {
	case gpu.FormatBGRA8UnormSrgb:
		return wgpu.TextureFormatBGRA8UnormSrgb
	case gpu.FormatRGBA8Unorm:
		return wgpu.TextureFormatRGBA8Unorm
	}
	return wgpu.TextureFormatBGRA8Unorm
}

// PresentMode returns the WebGPU present mode for the given mode.
func PresentMode(p gpu.PresentMode) wgpu.PresentMode {
	switch p {
	case gpu.PresentModeFifo:
		return wgpu.PresentModeFifo
	case gpu.PresentModeImmediate:
		return wgpu.PresentModeImmediate
	}
	return wgpu.PresentModeMailbox
}

// PowerPreference returns the WebGPU power preference.
func PowerPreference(p gpu.PowerPreference) wgpu.PowerPreference {
	switch p {
	case gpu.PowerPreferenceLowPower:
		return wgpu.PowerPreferenceLowPower
	case gpu.PowerPreferenceHighPerformance:
		return wgpu.PowerPreferenceHighPerformance
	}
	return wgpu.PowerPreferenceUndefined
}

// LogLevel returns the device log level for a wgpu-native log level.
func LogLevel(level wgpu.LogLevel) gpu.LogLevel {
	switch level {
	case wgpu.LogLevelError:
		return gpu.LogLevelError
	case wgpu.LogLevelWarn:
		return gpu.LogLevelWarn
	case wgpu.LogLevelInfo:
		return gpu.LogLevelInfo
	case wgpu.LogLevelDebug:
		return gpu.LogLevelDebug
	}
	return gpu.LogLevelTrace
}

// ErrorKind returns the kind of a WebGPU error type.
func ErrorKind(t wgpu.ErrorType) gpu.ErrorKind {
	switch t {
	case wgpu.ErrorTypeValidation:
		return gpu.ErrorValidation
	case wgpu.ErrorTypeOutOfMemory:
		return gpu.ErrorOutOfMemory
	case wgpu.ErrorTypeInternal:
		return gpu.ErrorInternal
	}
	return gpu.ErrorUnknown
}
