// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

// State is the lifecycle state of a [Context].
// Acquisition moves through the states strictly in order.
type State int32

const (
	Uninitialized State = iota
	InstanceReady
	SurfaceReady
	AdapterResolved
	DeviceReady
	QueueReady
	SwapchainReady
	Running
	TornDown
)

var stateNames = [...]string{
	Uninitialized:   "Uninitialized",
	InstanceReady:   "InstanceReady",
	SurfaceReady:    "SurfaceReady",
	AdapterResolved: "AdapterResolved",
	DeviceReady:     "DeviceReady",
	QueueReady:      "QueueReady",
	SwapchainReady:  "SwapchainReady",
	Running:         "Running",
	TornDown:        "TornDown",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "State(?)"
	}
	return stateNames[s]
}

// Step is one acquisition step of a [Context].
type Step int32

const (
	StepWindow Step = iota
	StepInstance
	StepSurface
	StepAdapter
	StepDevice
	StepQueue
	StepSwapchain
)

var stepNames = [...]string{
	StepWindow:    "window",
	StepInstance:  "instance",
	StepSurface:   "surface",
	StepAdapter:   "adapter",
	StepDevice:    "device",
	StepQueue:     "queue",
	StepSwapchain: "swapchain",
}

func (s Step) String() string {
	if s < 0 || int(s) >= len(stepNames) {
		return "step(?)"
	}
	return stepNames[s]
}

// stepStates is the state reached after each step succeeds.
// The window has no state of its own: it precedes the instance.
var stepStates = [...]State{
	StepWindow:    Uninitialized,
	StepInstance:  InstanceReady,
	StepSurface:   SurfaceReady,
	StepAdapter:   AdapterResolved,
	StepDevice:    DeviceReady,
	StepQueue:     QueueReady,
	StepSwapchain: SwapchainReady,
}
