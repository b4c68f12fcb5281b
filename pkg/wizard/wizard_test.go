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

package wizard

import (
	"path/filepath"
	"testing"

	"github.com/loadermanager/loader-manager/pkg/config"
	testhelpers "github.com/loadermanager/loader-manager/pkg/testing/helpers"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "awaiting game path", AwaitingGamePath.String())
	assert.Equal(t, "awaiting base path", AwaitingBasePath.String())
	assert.Equal(t, "complete", Complete.String())
	assert.Equal(t, "State(9)", State(9).String())
}

func TestCurrentState(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		setup    func(t *testing.T, h *testhelpers.FSHelper, l testhelpers.Layout, cfg *config.Instance)
		expected State
	}{
		{
			name:     "empty config",
			setup:    func(*testing.T, *testhelpers.FSHelper, testhelpers.Layout, *config.Instance) {},
			expected: AwaitingGamePath,
		},
		{
			name: "game only",
			setup: func(t *testing.T, _ *testhelpers.FSHelper, l testhelpers.Layout, cfg *config.Instance) {
				require.NoError(t, cfg.SetGamePath(l.Game))
			},
			expected: AwaitingBasePath,
		},
		{
			name: "fully configured",
			setup: func(t *testing.T, _ *testhelpers.FSHelper, l testhelpers.Layout, cfg *config.Instance) {
				require.NoError(t, cfg.SetGamePath(l.Game))
				require.NoError(t, cfg.SetBaseLayout(config.BaseLayout{
					BaseDir: l.Base, LoaderPath: l.Loader, BackupDir: l.Backup,
				}))
			},
			expected: Complete,
		},
		{
			name: "loader folder removed after setup",
			setup: func(t *testing.T, h *testhelpers.FSHelper, l testhelpers.Layout, cfg *config.Instance) {
				require.NoError(t, cfg.SetGamePath(l.Game))
				require.NoError(t, cfg.SetBaseLayout(config.BaseLayout{
					BaseDir: l.Base, LoaderPath: l.Loader, BackupDir: l.Backup,
				}))
				require.NoError(t, h.CleanupDir(l.Loader))
			},
			expected: AwaitingBasePath,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := testhelpers.NewMemoryFS()
			l, err := h.SetupInstallation("/root", false)
			require.NoError(t, err)
			cfg, err := h.NewTestConfig("/cfg")
			require.NoError(t, err)

			tt.setup(t, h, l, cfg)
			assert.Equal(t, tt.expected, CurrentState(h.Fs, cfg))
		})
	}
}

func TestValidateGameFolder(t *testing.T) {
	t.Parallel()

	h := testhelpers.NewMemoryFS()
	l, err := h.SetupInstallation("/root", false)
	require.NoError(t, err)
	subdir := filepath.FromSlash(config.DefaultTargetSubdir)

	require.NoError(t, ValidateGameFolder(h.Fs, l.Game, subdir))
	require.ErrorIs(t, ValidateGameFolder(h.Fs, "/missing", subdir), ErrInvalidGameFolder)
	require.ErrorIs(t, ValidateGameFolder(h.Fs, l.Base, subdir), ErrInvalidGameFolder)

	require.NoError(t, h.WriteFile("/root/file.txt", []byte("x")))
	require.ErrorIs(t, ValidateGameFolder(h.Fs, "/root/file.txt", subdir), ErrInvalidGameFolder)
}

func TestInspectBaseFolder(t *testing.T) {
	t.Parallel()

	t.Run("without_fabio", func(t *testing.T) {
		t.Parallel()
		h := testhelpers.NewMemoryFS()
		l, err := h.SetupInstallation("/root", false)
		require.NoError(t, err)

		layout, err := InspectBaseFolder(h.Fs, l.Base)
		require.NoError(t, err)
		assert.Equal(t, config.BaseLayout{
			BaseDir:    l.Base,
			LoaderPath: l.Loader,
			BackupDir:  l.Backup,
		}, layout)
	})

	t.Run("capitalised_fabio", func(t *testing.T) {
		t.Parallel()
		h := testhelpers.NewMemoryFS()
		l, err := h.SetupInstallation("/root", true)
		require.NoError(t, err)

		layout, err := InspectBaseFolder(h.Fs, l.Base)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(l.Base, "Fabio"), layout.FabioPath)
	})

	t.Run("lowercase_fabio", func(t *testing.T) {
		t.Parallel()
		h := testhelpers.NewMemoryFS()
		l, err := h.SetupInstallation("/root", false)
		require.NoError(t, err)
		require.NoError(t, h.Fs.MkdirAll(filepath.Join(l.Base, "fabio"), 0o755))

		layout, err := InspectBaseFolder(h.Fs, l.Base)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(l.Base, "fabio"), layout.FabioPath)
	})

	t.Run("missing_backup", func(t *testing.T) {
		t.Parallel()
		h := testhelpers.NewMemoryFS()
		l, err := h.SetupInstallation("/root", false)
		require.NoError(t, err)
		require.NoError(t, h.CleanupDir(l.Backup))

		_, err = InspectBaseFolder(h.Fs, l.Base)
		require.ErrorIs(t, err, ErrInvalidBaseFolder)
		assert.Contains(t, err.Error(), "missing backup folder")
	})
}

func TestWizard_EmptyConfigRejectsBaseWithoutLoader(t *testing.T) {
	t.Parallel()

	h := testhelpers.NewMemoryFS()
	require.NoError(t, h.WriteFile("/cfg/config.json", []byte("{}")))
	require.NoError(t, h.CreateDirectoryStructure("/root", map[string]any{
		"base": map[string]any{
			"backup": nil,
		},
	}))

	cfg, err := h.NewTestConfig("/cfg")
	require.NoError(t, err)
	w := New(h.Fs, cfg)
	assert.Equal(t, AwaitingGamePath, w.State())

	err = w.SetBaseDir("/root/base")
	require.ErrorIs(t, err, ErrInvalidBaseFolder)

	data, err := h.ReadFile("/cfg/config.json")
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))
	assert.Equal(t, config.Values{}, cfg.Snapshot())
}

func TestWizard_FullFlow(t *testing.T) {
	t.Parallel()

	h := testhelpers.NewMemoryFS()
	l, err := h.SetupInstallation("/root", true)
	require.NoError(t, err)
	cfg, err := h.NewTestConfig("/cfg")
	require.NoError(t, err)
	w := New(h.Fs, cfg)

	require.ErrorIs(t, w.SetGamePath(l.Base), ErrInvalidGameFolder)
	assert.Empty(t, cfg.GamePath())
	assert.Equal(t, AwaitingGamePath, w.State())

	require.NoError(t, w.SetGamePath(l.Game+"/"))
	assert.Equal(t, l.Game, cfg.GamePath())
	assert.Equal(t, AwaitingBasePath, w.State())

	require.NoError(t, w.SetBaseDir(l.Base))
	assert.Equal(t, Complete, w.State())
	assert.Equal(t, l.Loader, cfg.LoaderPath())
	assert.Equal(t, l.Backup, cfg.BackupDir())
	assert.Equal(t, l.Fabio, cfg.FabioPath())

	// a rejected change from the settings page does not regress the state
	require.ErrorIs(t, w.SetBaseDir("/nowhere"), ErrInvalidBaseFolder)
	assert.Equal(t, Complete, w.State())
	assert.Equal(t, l.Base, cfg.BaseDir())
}

func TestWizard_RebaseClearsFabio(t *testing.T) {
	t.Parallel()

	h := testhelpers.NewMemoryFS()
	l, err := h.SetupInstallation("/root", true)
	require.NoError(t, err)
	cfg, err := h.NewConfiguredConfig("/cfg", l, true)
	require.NoError(t, err)
	require.NoError(t, h.CreateDirectoryStructure("/other", map[string]any{
		"loader": nil,
		"backup": nil,
	}))

	w := New(h.Fs, cfg)
	require.NoError(t, w.SetBaseDir("/other"))
	assert.Empty(t, cfg.FabioPath())

	raw, err := afero.ReadFile(h.Fs, cfg.Path())
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "fabio_path")
}
