// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"

	"cogentcore.org/gpuboot/base/errors"
)

var (
	// ErrAdapterRequest is returned when the adapter request
	// resolves with a failure status.
	ErrAdapterRequest = errors.New("gpu: adapter request failed")

	// ErrRequestPending is returned when an adapter request is issued
	// while another one is still outstanding.
	ErrRequestPending = errors.New("gpu: adapter request already pending")

	// ErrInvalidHandle is returned when a driver returns a nil handle
	// without an error.
	ErrInvalidHandle = errors.New("gpu: invalid handle")

	// ErrDeviceLost is returned once the device has been lost.
	ErrDeviceLost = errors.New("gpu: device lost")

	// ErrNotRunning is returned by operations that need a fully
	// acquired context.
	ErrNotRunning = errors.New("gpu: context not running")

	// ErrBadState is returned when a lifecycle transition is
	// attempted from the wrong state.
	ErrBadState = errors.New("gpu: invalid lifecycle state")

	// ErrZeroAlignment is returned when an alignment of 0 is given.
	ErrZeroAlignment = errors.New("gpu: alignment must be > 0")

	// ErrEmptyRegion is returned when a zero-size region is requested.
	ErrEmptyRegion = errors.New("gpu: region size must be > 0")
)

// StepError records the acquisition step that failed.
type StepError struct {
	Step Step
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("gpu: %s acquisition failed: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }
