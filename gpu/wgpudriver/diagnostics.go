// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wgpudriver

import (
	"sync"
	"sync/atomic"

	"cogentcore.org/gpuboot/base/errors"
	"cogentcore.org/gpuboot/gpu"
	"github.com/cogentcore/webgpu/wgpu"
)

// the wgpu-native log callback is process wide, so the current sink
// is too; it is swapped atomically because the callback may run on
// driver threads.
var (
	sink        atomic.Pointer[sinkHolder]
	logCallback sync.Once
)

type sinkHolder struct {
	gpu.Diagnostics
}

func installSink(d gpu.Diagnostics, level wgpu.LogLevel) {
	sink.Store(&sinkHolder{d})
	logCallback.Do(setLogCallback)
	wgpu.SetLogLevel(level)
}

func removeSink() {
	wgpu.SetLogLevel(wgpu.LogLevelOff)
	sink.Store(nil)
}

// logMessage forwards one wgpu-native log message to the current sink.
func logMessage(level wgpu.LogLevel, msg string) {
	if s := sink.Load(); s != nil {
		s.Log(LogLevel(level), msg)
	}
}

// ReportError forwards a WebGPU error returned by a device call to the
// diagnostics of the context as an uncaptured error, and returns it.
// Errors that are not WebGPU errors are returned unchanged.
func ReportError(cx *gpu.Context, err error) error {
	if err == nil {
		return nil
	}
	var we *wgpu.Error
	if errors.As(err, &we) {
		cx.Diagnostics().UncapturedError(ErrorKind(we.Type), we.Message)
	}
	return err
}
