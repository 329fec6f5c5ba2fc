// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !offscreen && ((darwin && !ios) || windows || (linux && !android) || dragonfly || openbsd)

package wgpudriver

import (
	"cogentcore.org/gpuboot/base/errors"
	"cogentcore.org/gpuboot/gpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// note: this file contains the glfw dependencies, for desktop platform builds.
// IMPORTANT: all of these must be called on the main initial thread!

// Window is a [gpu.Window] holding a GLFW window.
type Window struct {
	*glfw.Window
}

func (w *Window) IsNil() bool { return w == nil || w.Window == nil }

func (w *Window) PollEvents() { glfw.PollEvents() }

func (w *Window) Destroy() {
	if w.IsNil() {
		return
	}
	w.Window.Destroy()
	w.Window = nil
}

// CreateWindow initializes GLFW and opens a fixed-size window
// with no client API, for WebGPU presentation.
func (d *Driver) CreateWindow(title string, width, height int) (gpu.Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, errors.Log(err)
	}
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Resizable, glfw.False)
	w, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		return nil, errors.Log(err)
	}
	return &Window{Window: w}, nil
}

// CreateSurface creates the WebGPU surface of the GLFW window.
func (d *Driver) CreateSurface(inst gpu.Instance, win gpu.Window) (gpu.Surface, error) {
	in, ok1 := inst.(*Instance)
	w, ok2 := win.(*Window)
	if !ok1 || !ok2 || in.IsNil() || w.IsNil() {
		return nil, gpu.ErrInvalidHandle
	}
	sf := in.CreateSurface(wgpuglfw.GetSurfaceDescriptor(w.Window))
	if sf == nil {
		return nil, nil
	}
	return &Surface{Surface: sf}, nil
}

// Terminate shuts GLFW down; call as the last thing before quitting.
func (d *Driver) Terminate() {
	glfw.Terminate()
}
