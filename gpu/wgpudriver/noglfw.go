// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build offscreen || !((darwin && !ios) || windows || (linux && !android) || dragonfly || openbsd)

package wgpudriver

import (
	"cogentcore.org/gpuboot/base/errors"
	"cogentcore.org/gpuboot/gpu"
)

// ErrNoWindow is returned on platforms without GLFW windows.
var ErrNoWindow = errors.New("wgpudriver: windows are not supported on this platform")

func (d *Driver) CreateWindow(title string, width, height int) (gpu.Window, error) {
	return nil, ErrNoWindow
}

func (d *Driver) CreateSurface(inst gpu.Instance, win gpu.Window) (gpu.Surface, error) {
	return nil, ErrNoWindow
}

func (d *Driver) Terminate() {}
