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
	"fmt"

	"github.com/loadermanager/loader-manager/pkg/platforms"
	"github.com/stretchr/testify/mock"
)

// MockPlatform is a mock implementation of the Platform interface using testify/mock
type MockPlatform struct {
	mock.Mock
	openedURIs []string
}

func (m *MockPlatform) ID() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockPlatform) Settings() platforms.Settings {
	args := m.Called()
	if s, ok := args.Get(0).(platforms.Settings); ok {
		return s
	}
	return platforms.Settings{}
}

func (m *MockPlatform) OpenURI(ctx context.Context, uri string) error {
	args := m.Called(ctx, uri)
	if err := args.Error(0); err != nil {
		return fmt.Errorf("mock platform open uri failed: %w", err)
	}
	m.openedURIs = append(m.openedURIs, uri)
	return nil
}

// OpenedURIs returns every URI passed to a successful OpenURI call.
func (m *MockPlatform) OpenedURIs() []string {
	return m.openedURIs
}

func NewMockPlatform() *MockPlatform {
	return &MockPlatform{
		openedURIs: make([]string, 0),
	}
}

// SetupBasicMock configures the mock with typical default values. Settings
// point every directory at root so tests can use a temp dir or MemMapFs path.
func (m *MockPlatform) SetupBasicMock(root string) {
	m.On("ID").Return("mock-platform")
	m.On("Settings").Return(platforms.Settings{
		DataDir:   root + "/data",
		ConfigDir: root + "/config",
		TempDir:   root + "/tmp",
	})
	m.On("OpenURI", mock.Anything, mock.AnythingOfType("string")).Return(nil).Maybe()
}
