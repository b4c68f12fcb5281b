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

package mocks

import (
	"context"
	"sync"

	"github.com/loadermanager/loader-manager/pkg/helpers/command"
	"github.com/stretchr/testify/mock"
)

// MockCommandExecutor is a testify mock for command.Executor.
// It allows testing code that executes system commands without actually running them.
type MockCommandExecutor struct {
	mock.Mock
}

// Start mocks a fire-and-forget command launch.
//
// Example:
//
//	mockCmd := &MockCommandExecutor{}
//	mockCmd.On("Start", mock.Anything, "xdg-open", []string{"https://example.com"}).Return(nil)
func (m *MockCommandExecutor) Start(ctx context.Context, name string, args ...string) error {
	called := m.Called(ctx, name, args)
	//nolint:wrapcheck // Mock returns are already wrapped by caller
	return called.Error(0)
}

func (m *MockCommandExecutor) StartWithOptions(
	ctx context.Context,
	opts command.StartOptions,
	name string,
	args ...string,
) error {
	called := m.Called(ctx, opts, name, args)
	//nolint:wrapcheck // Mock returns are already wrapped by caller
	return called.Error(0)
}

// Spawn mocks starting a tracked process. Return a *FakeProcess to control
// when the process "exits".
func (m *MockCommandExecutor) Spawn(ctx context.Context, name string, args ...string) (command.Process, error) {
	called := m.Called(ctx, name, args)
	if err := called.Error(1); err != nil {
		return nil, err //nolint:wrapcheck // Mock returns are already wrapped by caller
	}
	proc, ok := called.Get(0).(command.Process)
	if !ok {
		return nil, nil
	}
	return proc, nil
}

// FakeProcess is a command.Process whose exit is triggered by the test.
type FakeProcess struct {
	done   chan struct{}
	once   sync.Once
	mu     sync.Mutex
	killed bool
}

func NewFakeProcess() *FakeProcess {
	return &FakeProcess{done: make(chan struct{})}
}

func (p *FakeProcess) Done() <-chan struct{} {
	return p.done
}

// Exit simulates the process finishing on its own.
func (p *FakeProcess) Exit() {
	p.once.Do(func() {
		close(p.done)
	})
}

func (p *FakeProcess) Kill() error {
	p.mu.Lock()
	p.killed = true
	p.mu.Unlock()
	p.Exit()
	return nil
}

// Killed reports whether Kill was called.
func (p *FakeProcess) Killed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.killed
}
