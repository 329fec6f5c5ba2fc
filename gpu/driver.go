// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

// Driver is the platform and graphics API used by a [Context] to
// acquire its handles. The real implementation is in the wgpudriver
// package (WebGPU via wgpu-native, windows via GLFW); tests use fakes.
// All methods are called from the main thread, in acquisition order.
type Driver interface {
	// CreateWindow initializes the windowing platform and opens a
	// fixed-size window with no client graphics API.
	CreateWindow(title string, width, height int) (Window, error)

	// CreateInstance creates the graphics API instance.
	CreateInstance() (Instance, error)

	// CreateSurface creates a presentable surface for the window.
	CreateSurface(inst Instance, win Window) (Surface, error)

	// RequestAdapter issues one adapter request. The driver must call
	// the callback exactly once, from any goroutine.
	RequestAdapter(inst Instance, opts AdapterOptions, cb AdapterCallback)

	// CreateDevice creates the logical device on the adapter.
	CreateDevice(adapter Adapter, desc DeviceDescriptor) (Device, error)

	// InstallDiagnostics routes the device log and error callbacks to
	// the given sink. It is called right after device creation.
	InstallDiagnostics(dev Device, sink Diagnostics)

	// RemoveDiagnostics stops routing device callbacks.
	RemoveDiagnostics(dev Device)

	// Queue returns the command queue of the device.
	Queue(dev Device) (Queue, error)

	// CreateSwapchain configures the surface for presentation.
	CreateSwapchain(dev Device, adapter Adapter, surface Surface, cfg SwapchainConfig) (Swapchain, error)

	// Terminate shuts the windowing platform down. It is called
	// once, after the window has been destroyed, and also when
	// CreateWindow failed.
	Terminate()
}

// Window is a platform window.
type Window interface {
	// ShouldClose returns whether the user requested the window to close.
	ShouldClose() bool

	// PollEvents processes pending platform events.
	PollEvents()

	// Destroy destroys the window.
	Destroy()
}

// Releaser is implemented by all owned GPU handles.
type Releaser interface {
	Release()
}

// Instance is a graphics API instance.
type Instance interface{ Releaser }

// Surface is a presentable surface for a window.
type Surface interface{ Releaser }

// Adapter is a physical GPU, with its properties and limits.
type Adapter interface {
	Releaser
	Info() AdapterInfo
	Limits() Limits
}

// Device is a logical device.
type Device interface {
	Releaser
	Limits() Limits
}

// Queue is the command queue of a device.
type Queue interface{ Releaser }

// Swapchain is the configured set of presentable textures.
type Swapchain interface {
	Releaser
	Config() SwapchainConfig
}

// PowerPreference is the adapter power preference.
type PowerPreference int32

const (
	PowerPreferenceUndefined PowerPreference = iota
	PowerPreferenceLowPower
	PowerPreferenceHighPerformance
)

func (p PowerPreference) String() string {
	switch p {
	case PowerPreferenceLowPower:
		return "low-power"
	case PowerPreferenceHighPerformance:
		return "high-performance"
	}
	return "undefined"
}

// AdapterOptions are the options for an adapter request.
type AdapterOptions struct {
	// CompatibleSurface is the surface that the adapter must
	// be able to present to.
	CompatibleSurface Surface

	PowerPreference PowerPreference

	// ForceFallbackAdapter requests a software fallback adapter.
	ForceFallbackAdapter bool
}

// AdapterInfo describes an adapter.
type AdapterInfo struct {
	Name        string
	Vendor      string
	Driver      string
	Backend     string
	AdapterType string
}

// Limits are the device limits relevant to this package.
type Limits struct {
	// MinUniformBufferOffsetAlignment is the required alignment of
	// the offset of a bound uniform buffer range.
	MinUniformBufferOffsetAlignment uint32

	// MinStorageBufferOffsetAlignment is the same for storage buffers.
	MinStorageBufferOffsetAlignment uint32

	MaxUniformBufferBindingSize uint64
	MaxBindGroups               uint32
}

// DeviceDescriptor describes the device to create.
type DeviceDescriptor struct {
	Label string

	// Lost is called when the device is lost, including when it is
	// destroyed on release (intentional is then true).
	Lost func(reason, message string, intentional bool)
}

// Format is a presentation texture format.
type Format int32

const (
	FormatBGRA8Unorm Format = iota
	FormatBGRA8UnormSrgb
	FormatRGBA8Unorm
)

func (f Format) String() string {
	switch f {
	case FormatBGRA8UnormSrgb:
		return "bgra8unorm-srgb"
	case FormatRGBA8Unorm:
		return "rgba8unorm"
	}
	return "bgra8unorm"
}

// PresentMode is the swapchain presentation mode.
type PresentMode int32

const (
	// PresentModeMailbox is low latency without tearing.
	PresentModeMailbox PresentMode = iota
	PresentModeFifo
	PresentModeImmediate
)

func (p PresentMode) String() string {
	switch p {
	case PresentModeFifo:
		return "fifo"
	case PresentModeImmediate:
		return "immediate"
	}
	return "mailbox"
}

// SwapchainConfig is the presentation configuration. The usage
// is always render attachment.
type SwapchainConfig struct {
	Format      Format
	PresentMode PresentMode
	Width       int
	Height      int
}
