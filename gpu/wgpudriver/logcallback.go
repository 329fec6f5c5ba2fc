// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !js

package wgpudriver

/*
typedef void (*gpubootLogCallbackFn)(int level, char const *message, void *userdata);

// from wgpu.h of wgpu-native, linked through the wgpu package;
// WGPULogLevel is a 32-bit enum.
void wgpuSetLogCallback(gpubootLogCallbackFn callback, void *userdata);

void gpubootLogCallback_cgo(int level, char const *message, void *userdata);
*/
import "C"

import (
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"
)

//export gpubootLogCallback
func gpubootLogCallback(level C.int, message *C.char, userdata unsafe.Pointer) {
	logMessage(wgpu.LogLevel(level), C.GoString(message))
}

// setLogCallback replaces the stderr logger installed by the wgpu
// package with one forwarding to the current sink.
func setLogCallback() {
	C.wgpuSetLogCallback(C.gpubootLogCallbackFn(C.gpubootLogCallback_cgo), nil)
}
