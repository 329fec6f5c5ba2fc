// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package app provides the application shell of a gpuboot program:
// it acquires a [gpu.Context], runs the frame loop calling the hooks
// of a [Demo], and tears everything down in order.
package app

import (
	"log/slog"
	"os"
	"time"

	"cogentcore.org/gpuboot/base/errors"
	"cogentcore.org/gpuboot/base/logx"
	"cogentcore.org/gpuboot/config"
	"cogentcore.org/gpuboot/gpu"
)

// ExitFailure is the process exit code for all fatal failures.
const ExitFailure = 1

// Demo is the set of hooks an application provides.
// The context passed to the hooks is fully acquired; its handles
// are borrowed and must not be retained after OnTerminal.
type Demo interface {
	// OnInit is called once, after the context is acquired.
	OnInit(cx *gpu.Context) error

	// OnLoop is called once per loop iteration, after events
	// are polled. An error ends the loop.
	OnLoop(cx *gpu.Context) error

	// OnTerminal is called once, before any context handle is
	// released. It must release what OnInit created and cope with
	// a partial OnInit.
	OnTerminal(cx *gpu.Context)
}

// App runs a [Demo] on a [gpu.Context].
type App struct {
	// Config is the application configuration.
	Config *config.Config

	// Context is the graphics context, created by [App.Init].
	Context *gpu.Context

	// Exit is called with [ExitFailure] on any fatal failure.
	// It defaults to [os.Exit].
	Exit func(code int)

	// Frames is the number of completed loop iterations.
	Frames int

	driver gpu.Driver
	logger *slog.Logger
}

// New returns a new app using a copy of the given config and the
// given driver.
func New(cfg *config.Config, drv gpu.Driver) *App {
	return &App{Config: cfg.Clone(), Exit: os.Exit, driver: drv, logger: slog.Default()}
}

// Main sets up logging, reads the config for the given title and
// size, and runs the demo with the given driver.
func Main(title string, width, height int, drv gpu.Driver, demo Demo) {
	logx.SetDefaultLogger()
	cfg, err := config.New(title, width, height)
	if err != nil {
		slog.Error("app: invalid config", "err", err)
		os.Exit(ExitFailure)
	}
	logx.UserLevel = cfg.Level()
	New(cfg, drv).Run(demo)
}

// Run runs the demo: [App.Init], [App.Loop] and [App.Terminate].
// If acquisition fails, the failure is logged and the app exits
// without running the loop or the demo hooks. If OnInit or the loop
// fail, or the device is lost, the app is terminated before exiting.
func (a *App) Run(demo Demo) {
	if err := a.Init(); err != nil {
		a.logger.Error("app: init failed", "step", stepOf(err), "err", err)
		a.Context.Release()
		a.Exit(ExitFailure)
		return
	}
	err := demo.OnInit(a.Context)
	if err == nil {
		err = a.Loop(demo)
	} else {
		a.logger.Error("app: OnInit failed", "err", err)
	}
	if err != nil && a.Context.Lost() == nil {
		a.logger.Error("app: loop ended", "frames", a.Frames, "err", err)
	}
	a.Terminate(demo)
	if err != nil {
		a.Exit(ExitFailure)
	}
}

// Init creates and acquires the context and starts it.
func (a *App) Init() error {
	a.Context = gpu.NewContext(a.driver, a.Config.Options(a.logger))
	if err := a.Context.Acquire(); err != nil {
		return err
	}
	return a.Context.Start()
}

// Loop polls events and calls OnLoop until the window is closed,
// OnLoop fails or the device is lost. The loop is not throttled.
func (a *App) Loop(demo Demo) error {
	cx := a.Context
	win := cx.Window()
	frames := 0
	start := time.Now()
	for !win.ShouldClose() {
		win.PollEvents()
		if err := cx.Lost(); err != nil {
			return err
		}
		if err := demo.OnLoop(cx); err != nil {
			return err
		}
		a.Frames++
		frames++
		if dur := time.Since(start); dur > 10*time.Second {
			a.logger.Debug("app: frame rate", "fps", float64(frames)/dur.Seconds())
			frames = 0
			start = time.Now()
		}
	}
	return cx.Lost()
}

// Terminate calls OnTerminal and then releases the context.
func (a *App) Terminate(demo Demo) {
	demo.OnTerminal(a.Context)
	a.Context.Release()
}

func stepOf(err error) string {
	var se *gpu.StepError
	if errors.As(err, &se) {
		return se.Step.String()
	}
	return ""
}
