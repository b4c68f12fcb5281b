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

package linux

import (
	"context"
	"errors"
	"testing"

	"github.com/loadermanager/loader-manager/pkg/config"
	"github.com/loadermanager/loader-manager/pkg/platforms"
	"github.com/loadermanager/loader-manager/pkg/testing/helpers"
	"github.com/loadermanager/loader-manager/pkg/testing/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestOpenURI(t *testing.T) {
	t.Parallel()

	cmd := helpers.NewMockCommandExecutor()
	pl := NewPlatformWithExecutor(cmd)

	require.NoError(t, pl.OpenURI(context.Background(), config.DefaultLaunchURI))
	cmd.AssertCalled(t, "Start", mock.Anything, "xdg-open", []string{config.DefaultLaunchURI})
}

func TestOpenURI_Errors(t *testing.T) {
	t.Parallel()

	cmd := &mocks.MockCommandExecutor{}
	cmd.On("Start", mock.Anything, "xdg-open", mock.Anything).Return(errors.New("not found"))
	pl := NewPlatformWithExecutor(cmd)

	require.ErrorIs(t, pl.OpenURI(context.Background(), ""), platforms.ErrEmptyURI)
	cmd.AssertNotCalled(t, "Start", mock.Anything, mock.Anything, mock.Anything)

	err := pl.OpenURI(context.Background(), "steam://run/1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open steam://run/1")
}

func TestIDAndSettings(t *testing.T) {
	t.Parallel()

	pl := NewPlatform()
	assert.Equal(t, platforms.PlatformIDLinux, pl.ID())
	assert.Contains(t, pl.Settings().ConfigDir, config.AppName)
}
