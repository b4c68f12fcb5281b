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

package windows

import (
	"context"
	"testing"

	"github.com/loadermanager/loader-manager/pkg/config"
	"github.com/loadermanager/loader-manager/pkg/helpers/command"
	"github.com/loadermanager/loader-manager/pkg/platforms"
	"github.com/loadermanager/loader-manager/pkg/testing/helpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestOpenURI_HidesWindow(t *testing.T) {
	t.Parallel()

	cmd := helpers.NewMockCommandExecutor()
	pl := NewPlatformWithExecutor(cmd)

	require.NoError(t, pl.OpenURI(context.Background(), config.DefaultLaunchURI))
	cmd.AssertCalled(t, "StartWithOptions",
		mock.Anything,
		command.StartOptions{HideWindow: true},
		"rundll32",
		[]string{"url.dll,FileProtocolHandler", config.DefaultLaunchURI},
	)

	require.ErrorIs(t, pl.OpenURI(context.Background(), ""), platforms.ErrEmptyURI)
	assert.Equal(t, platforms.PlatformIDWindows, pl.ID())
}
