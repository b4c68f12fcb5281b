// Loader Manager
// Copyright (c) 2026 The Loader Manager Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of Loader Manager.
//
// Loader Manager is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Loader Manager is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Loader Manager.  If not, see <http://www.gnu.org/licenses/>.

// Package command runs external programs behind an interface so launches
// can be asserted in tests without spawning anything.
package command

import (
	"context"
	"errors"
	"os"
	"os/exec"
)

type StartOptions struct {
	// HideWindow prevents a console window from appearing (Windows-only).
	HideWindow bool
}

// Process is a running child started with Spawn.
type Process interface {
	// Done is closed once the process has exited for any reason.
	Done() <-chan struct{}
	// Kill stops the process. Killing an exited process is not an error.
	Kill() error
}

type Executor interface {
	// Start starts a command without waiting for it to complete. The
	// command outlives ctx once started; ctx only gates the launch.
	Start(ctx context.Context, name string, args ...string) error

	// StartWithOptions starts a command with platform-specific options.
	StartWithOptions(ctx context.Context, opts StartOptions, name string, args ...string) error

	// Spawn starts a command and returns a handle that reports when it exits.
	Spawn(ctx context.Context, name string, args ...string) (Process, error)
}

type RealExecutor struct{}

//nolint:wrapcheck // callers add the context
func (*RealExecutor) Start(ctx context.Context, name string, args ...string) error {
	launchCtx, err := detached(ctx)
	if err != nil {
		return err
	}
	cmd := exec.CommandContext(launchCtx, name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	// reap in the background so fire-and-forget launches don't leave zombies
	go func() {
		_ = cmd.Wait()
	}()
	return nil
}

// detached returns a context for fire-and-forget launches. Openers like
// xdg-open hand off to another process and must not be killed when the
// caller's context is cancelled right after the call returns.
func detached(ctx context.Context) (context.Context, error) {
	if err := ctx.Err(); err != nil {
		return nil, err //nolint:wrapcheck // context errors are sentinel values
	}
	return context.WithoutCancel(ctx), nil
}

func (*RealExecutor) Spawn(ctx context.Context, name string, args ...string) (Process, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	if err := cmd.Start(); err != nil {
		return nil, err //nolint:wrapcheck // callers add the context
	}
	p := &execProcess{cmd: cmd, done: make(chan struct{})}
	go func() {
		_ = cmd.Wait()
		close(p.done)
	}()
	return p, nil
}

type execProcess struct {
	cmd  *exec.Cmd
	done chan struct{}
}

func (p *execProcess) Done() <-chan struct{} {
	return p.done
}

func (p *execProcess) Kill() error {
	err := p.cmd.Process.Kill()
	if err != nil && !errors.Is(err, os.ErrProcessDone) {
		return err //nolint:wrapcheck // callers add the context
	}
	return nil
}
