// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// AdapterStatus is the status reported by an adapter request callback.
type AdapterStatus int32

const (
	AdapterSuccess AdapterStatus = iota
	AdapterUnavailable
	AdapterError
	AdapterUnknown
)

func (s AdapterStatus) String() string {
	switch s {
	case AdapterSuccess:
		return "success"
	case AdapterUnavailable:
		return "unavailable"
	case AdapterError:
		return "error"
	}
	return "unknown"
}

// AdapterCallback receives the result of an adapter request.
type AdapterCallback func(status AdapterStatus, adapter Adapter, message string)

// RequestState is the state of an [AdapterRequest].
type RequestState int32

const (
	RequestPending RequestState = iota
	RequestResolved
	RequestFailed
)

func (s RequestState) String() string {
	switch s {
	case RequestResolved:
		return "resolved"
	case RequestFailed:
		return "failed"
	}
	return "pending"
}

// AdapterRequest is one outstanding adapter negotiation.
// It is resolved by exactly one callback; later callbacks are ignored.
// [AdapterRequest.Wait] blocks until it is resolved, with no timeout.
type AdapterRequest struct {
	state   atomic.Int32
	adapter Adapter
	message string
	once    sync.Once
	done    chan struct{}
}

// NewAdapterRequest returns a new pending request.
func NewAdapterRequest() *AdapterRequest {
	return &AdapterRequest{done: make(chan struct{})}
}

// State returns the current state of the request.
func (rq *AdapterRequest) State() RequestState {
	return RequestState(rq.state.Load())
}

// Resolve is the [AdapterCallback] for this request.
func (rq *AdapterRequest) Resolve(status AdapterStatus, adapter Adapter, message string) {
	rq.once.Do(func() {
		switch {
		case status != AdapterSuccess:
			rq.message = fmt.Sprintf("status %s: %s", status, message)
			rq.state.Store(int32(RequestFailed))
		case adapter == nil:
			rq.message = "no adapter returned"
			rq.state.Store(int32(RequestFailed))
		default:
			rq.adapter = adapter
			rq.state.Store(int32(RequestResolved))
		}
		close(rq.done)
	})
}

// Wait blocks until the request is resolved and returns the adapter,
// or an error wrapping [ErrAdapterRequest].
func (rq *AdapterRequest) Wait() (Adapter, error) {
	<-rq.done
	if rq.State() == RequestFailed {
		return nil, fmt.Errorf("%w: %s", ErrAdapterRequest, rq.message)
	}
	return rq.adapter, nil
}

// adapterOutstanding enforces at most one outstanding request per process.
var adapterOutstanding atomic.Bool

// RequestAdapter issues an adapter request through the driver and
// waits for its single callback. The wait has no timeout: if the
// driver never calls back, RequestAdapter blocks forever.
func RequestAdapter(drv Driver, inst Instance, opts AdapterOptions) (Adapter, error) {
	if !adapterOutstanding.CompareAndSwap(false, true) {
		return nil, ErrRequestPending
	}
	defer adapterOutstanding.Store(false)

	rq := NewAdapterRequest()
	drv.RequestAdapter(inst, opts, rq.Resolve)
	return rq.Wait()
}
