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

package swapper

import (
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/loadermanager/loader-manager/pkg/config"
	testhelpers "github.com/loadermanager/loader-manager/pkg/testing/helpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, time.March, 14, 9, 26, 53, 0, time.Local)

type fixture struct {
	h     *testhelpers.FSHelper
	l     testhelpers.Layout
	cfg   *config.Instance
	clock *clockwork.FakeClock
	s     *Swapper
}

func newFixture(t *testing.T, withFabio bool) *fixture {
	t.Helper()
	h := testhelpers.NewMemoryFS()
	l, err := h.SetupInstallation("/root", withFabio)
	require.NoError(t, err)
	cfg, err := h.NewConfiguredConfig("/cfg", l, withFabio)
	require.NoError(t, err)
	clock := clockwork.NewFakeClockAt(t0)
	return &fixture{
		h:     h,
		l:     l,
		cfg:   cfg,
		clock: clock,
		s:     New(h.Fs, cfg, clock),
	}
}

func (f *fixture) snapshot(t *testing.T, root string) map[string]string {
	t.Helper()
	snap, err := f.h.Snapshot(root)
	require.NoError(t, err)
	return snap
}

func TestSetupIncompleteRefusesDestructiveOperations(t *testing.T) {
	t.Parallel()

	h := testhelpers.NewMemoryFS()
	l, err := h.SetupInstallation("/root", true)
	require.NoError(t, err)
	require.NoError(t, h.WriteFile(filepath.Join(l.Target, "keep.pak"), []byte("game")))
	cfg, err := h.NewTestConfig("/cfg")
	require.NoError(t, err)
	require.NoError(t, cfg.SetGamePath(l.Game))
	s := New(h.Fs, cfg, clockwork.NewFakeClockAt(t0))

	_, err = s.MakeBackup()
	require.ErrorIs(t, err, ErrSetupIncomplete)
	require.ErrorIs(t, s.CopyFolder(l.Loader), ErrSetupIncomplete)
	_, err = s.LoadLoader()
	require.ErrorIs(t, err, ErrSetupIncomplete)
	_, err = s.FabioMode()
	require.ErrorIs(t, err, ErrSetupIncomplete)
	_, err = s.Sync()
	require.ErrorIs(t, err, ErrSetupIncomplete)
	require.ErrorIs(t, s.ResetToDefault(), ErrSetupIncomplete)
	require.ErrorIs(t, s.LoadBackup(l.Loader), ErrSetupIncomplete)

	assert.True(t, h.FileExists(filepath.Join(l.Target, "keep.pak")))
}

func TestTargetPathFollowsConfig(t *testing.T) {
	t.Parallel()

	f := newFixture(t, false)
	assert.Equal(t, f.l.Target, f.s.TargetPath())

	require.NoError(t, f.cfg.SetGamePath("/elsewhere"))
	assert.Equal(t,
		filepath.Join("/elsewhere", filepath.FromSlash(config.DefaultTargetSubdir)),
		f.s.TargetPath())
}

func TestMakeBackup(t *testing.T) {
	t.Parallel()

	f := newFixture(t, false)
	require.NoError(t, f.h.CreateDirectoryStructure(f.l.Target, map[string]any{
		"a.pak": "alpha",
		"sub": map[string]any{
			"b.sig": []byte{0x00, 0x01, 0x02},
		},
	}))

	backup, err := f.s.MakeBackup()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(f.l.Backup, "backup_20260314_092653"), backup)
	assert.Equal(t, f.snapshot(t, f.l.Target), f.snapshot(t, backup))

	// a second backup in the same second doesn't merge into the first
	second, err := f.s.MakeBackup()
	require.NoError(t, err)
	assert.Equal(t, backup+"_2", second)

	f.clock.Advance(time.Hour)
	third, err := f.s.MakeBackup()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(f.l.Backup, "backup_20260314_102653"), third)
}

func TestMakeBackup_PreservesModTime(t *testing.T) {
	t.Parallel()

	f := newFixture(t, false)
	src := filepath.Join(f.l.Target, "a.pak")
	require.NoError(t, f.h.WriteFileAt(src, []byte("alpha"), t0.Add(-48*time.Hour)))

	backup, err := f.s.MakeBackup()
	require.NoError(t, err)

	info, err := f.h.Fs.Stat(filepath.Join(backup, "a.pak"))
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(t0.Add(-48*time.Hour)))
}

func TestMakeBackup_MissingTargetWarns(t *testing.T) {
	t.Parallel()

	f := newFixture(t, false)
	require.NoError(t, f.h.CleanupDir(f.l.Target))

	backup, err := f.s.MakeBackup()
	require.NoError(t, err)
	assert.Empty(t, backup)

	entries, err := f.h.ListFiles(f.l.Backup)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestMakeBackup_RejectsBackupInsideTarget(t *testing.T) {
	t.Parallel()

	f := newFixture(t, false)
	inside := filepath.Join(f.l.Target, "backup")
	require.NoError(t, f.h.Fs.MkdirAll(inside, 0o755))
	require.NoError(t, f.cfg.SetBaseLayout(config.BaseLayout{
		BaseDir: f.l.Base, LoaderPath: f.l.Loader, BackupDir: inside,
	}))

	_, err := f.s.MakeBackup()
	require.ErrorIs(t, err, ErrOverlappingPaths)
}

func TestCopyFolder_ReplacesTarget(t *testing.T) {
	t.Parallel()

	f := newFixture(t, false)
	require.NoError(t, f.h.CreateDirectoryStructure(f.l.Target, map[string]any{
		"old.pak": "old",
		"stale":   map[string]any{"x.txt": "x"},
	}))
	require.NoError(t, f.h.CreateDirectoryStructure(f.l.Loader, map[string]any{
		"new.pak": "new",
		"nested":  map[string]any{"deep": map[string]any{"y.txt": "y"}},
	}))

	require.NoError(t, f.s.CopyFolder(f.l.Loader))

	assert.Equal(t, map[string]string{
		"new.pak":           "new",
		"nested/deep/y.txt": "y",
	}, f.snapshot(t, f.l.Target))
	assert.False(t, f.h.FileExists(filepath.Join(f.l.Target, "stale")))
}

func TestCopyFolder_MissingSourceLeavesEmptyTarget(t *testing.T) {
	t.Parallel()

	f := newFixture(t, false)
	require.NoError(t, f.h.WriteFile(filepath.Join(f.l.Target, "old.pak"), []byte("old")))

	require.NoError(t, f.s.CopyFolder("/root/does-not-exist"))

	entries, err := f.h.ListFiles(f.l.Target)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCopyFolder_RejectsOverlap(t *testing.T) {
	t.Parallel()

	f := newFixture(t, false)
	require.ErrorIs(t, f.s.CopyFolder(f.l.Target), ErrOverlappingPaths)
	require.ErrorIs(t, f.s.CopyFolder(f.l.Game), ErrOverlappingPaths)
}

func TestCopyFolder_CaseOnlyDifferenceIsNotOverlap(t *testing.T) {
	t.Parallel()
	if runtime.GOOS != "linux" {
		t.Skip("paths differing only by case are the same folder here")
	}

	f := newFixture(t, false)
	source := filepath.Join(filepath.Dir(f.l.Target), strings.ToUpper(filepath.Base(f.l.Target)))
	require.NoError(t, f.h.WriteFile(filepath.Join(source, "mod.pak"), []byte("mod")))

	require.NoError(t, f.s.CopyFolder(source))
	assert.Equal(t, map[string]string{"mod.pak": "mod"}, f.snapshot(t, f.l.Target))
}

func TestLoadLoader(t *testing.T) {
	t.Parallel()

	f := newFixture(t, false)
	require.NoError(t, f.h.WriteFile(filepath.Join(f.l.Target, "vanilla.pak"), []byte("vanilla")))
	require.NoError(t, f.h.WriteFile(filepath.Join(f.l.Loader, "loader.pak"), []byte("loader")))

	backup, err := f.s.LoadLoader()
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"vanilla.pak": "vanilla"}, f.snapshot(t, backup))
	assert.Equal(t, map[string]string{"loader.pak": "loader"}, f.snapshot(t, f.l.Target))
}

func TestFabioMode(t *testing.T) {
	t.Parallel()

	t.Run("not_configured", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t, false)
		require.NoError(t, f.h.WriteFile(filepath.Join(f.l.Target, "vanilla.pak"), []byte("v")))

		_, err := f.s.FabioMode()
		require.ErrorIs(t, err, ErrFabioNotConfigured)
		assert.Equal(t, map[string]string{"vanilla.pak": "v"}, f.snapshot(t, f.l.Target))

		entries, err := f.h.ListFiles(f.l.Backup)
		require.NoError(t, err)
		assert.Empty(t, entries, "no backup is taken when fabio is missing")
	})

	t.Run("configured", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t, true)
		require.NoError(t, f.h.WriteFile(filepath.Join(f.l.Fabio, "fabio.pak"), []byte("fabio")))

		backup, err := f.s.FabioMode()
		require.NoError(t, err)
		assert.NotEmpty(t, backup)
		assert.Equal(t, map[string]string{"fabio.pak": "fabio"}, f.snapshot(t, f.l.Target))
	})
}

func TestSync_CopiesOnlyNewFiles(t *testing.T) {
	t.Parallel()

	f := newFixture(t, false)
	require.NoError(t, f.h.WriteFileAt(filepath.Join(f.l.Target, "a.txt"), []byte("a"), t0))
	require.NoError(t, f.h.WriteFileAt(filepath.Join(f.l.Target, "b.txt"), []byte("b"), t0))
	require.NoError(t, f.h.WriteFileAt(filepath.Join(f.l.Loader, "a.txt"), []byte("a"), t0))

	res, err := f.s.Sync()
	require.NoError(t, err)
	assert.Equal(t, 1, res.Count())
	assert.Equal(t, []string{"b.txt"}, res.Copied)

	res, err = f.s.Sync()
	require.NoError(t, err)
	assert.Equal(t, 0, res.Count())
}

func TestSync_ModTimeOrdering(t *testing.T) {
	t.Parallel()

	f := newFixture(t, false)
	require.NoError(t, f.h.WriteFileAt(filepath.Join(f.l.Target, "newer.txt"), []byte("target"), t0))
	require.NoError(t, f.h.WriteFileAt(filepath.Join(f.l.Loader, "newer.txt"), []byte("loader"), t0.Add(-time.Second)))
	require.NoError(t, f.h.WriteFileAt(filepath.Join(f.l.Target, "older.txt"), []byte("target"), t0.Add(-time.Hour)))
	require.NoError(t, f.h.WriteFileAt(filepath.Join(f.l.Loader, "older.txt"), []byte("loader"), t0))
	require.NoError(t, f.h.WriteFileAt(filepath.Join(f.l.Loader, "extra.txt"), []byte("extra"), t0))

	res, err := f.s.Sync()
	require.NoError(t, err)
	assert.Equal(t, []string{"newer.txt"}, res.Copied)

	assert.Equal(t, map[string]string{
		"newer.txt": "target",
		"older.txt": "loader",
		"extra.txt": "extra",
	}, f.snapshot(t, f.l.Loader))

	info, err := f.h.Fs.Stat(filepath.Join(f.l.Loader, "newer.txt"))
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(t0), "mtime is preserved on copy")
}

func TestSync_NestedPathsAndMissingTarget(t *testing.T) {
	t.Parallel()

	f := newFixture(t, false)
	require.NoError(t, f.h.WriteFile(filepath.Join(f.l.Target, "one", "two", "c.txt"), []byte("c")))

	res, err := f.s.Sync()
	require.NoError(t, err)
	assert.Equal(t, []string{"one/two/c.txt"}, res.Copied)
	assert.True(t, f.h.FileExists(filepath.Join(f.l.Loader, "one", "two", "c.txt")))

	require.NoError(t, f.h.CleanupDir(f.l.Target))
	res, err = f.s.Sync()
	require.NoError(t, err)
	assert.Equal(t, 0, res.Count())
}

func TestResetToDefault(t *testing.T) {
	t.Parallel()

	f := newFixture(t, false)
	require.NoError(t, f.h.WriteFile(filepath.Join(f.l.Target, "x.pak"), []byte("x")))

	require.NoError(t, f.s.ResetToDefault())
	assert.False(t, f.h.FileExists(f.l.Target))

	entries, err := f.h.ListFiles(f.l.Backup)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCheckBackup(t *testing.T) {
	t.Parallel()

	f := newFixture(t, false)
	empty := filepath.Join(f.l.Backup, "backup_empty")
	require.NoError(t, f.h.Fs.MkdirAll(empty, 0o755))
	require.NoError(t, f.h.WriteFile(filepath.Join(f.l.Root, "file.txt"), []byte("x")))

	require.ErrorIs(t, f.s.CheckBackup(""), ErrInvalidBackup)
	require.ErrorIs(t, f.s.CheckBackup(empty), ErrInvalidBackup)
	require.ErrorIs(t, f.s.CheckBackup("/nope"), ErrInvalidBackup)
	require.ErrorIs(t, f.s.CheckBackup(filepath.Join(f.l.Root, "file.txt")), ErrInvalidBackup)
}

func TestLoadBackup(t *testing.T) {
	t.Parallel()

	f := newFixture(t, false)
	require.NoError(t, f.h.WriteFile(filepath.Join(f.l.Target, "vanilla.pak"), []byte("vanilla")))
	backup, err := f.s.MakeBackup()
	require.NoError(t, err)

	_, err = f.s.LoadLoader()
	require.NoError(t, err)

	empty := filepath.Join(f.l.Backup, "backup_empty")
	require.NoError(t, f.h.Fs.MkdirAll(empty, 0o755))
	require.ErrorIs(t, f.s.LoadBackup(empty), ErrInvalidBackup)

	require.NoError(t, f.s.LoadBackup(backup))
	assert.Equal(t, map[string]string{"vanilla.pak": "vanilla"}, f.snapshot(t, f.l.Target))
}

func TestListBackups(t *testing.T) {
	t.Parallel()

	f := newFixture(t, false)
	require.NoError(t, f.h.WriteFile(filepath.Join(f.l.Target, "x.pak"), []byte("x")))

	first, err := f.s.MakeBackup()
	require.NoError(t, err)
	f.clock.Advance(24 * time.Hour)
	second, err := f.s.MakeBackup()
	require.NoError(t, err)
	require.NoError(t, f.h.Fs.MkdirAll(filepath.Join(f.l.Backup, "not-a-backup"), 0o755))
	require.NoError(t, f.h.WriteFile(filepath.Join(f.l.Backup, "backup_file.txt"), []byte("x")))

	backups, err := f.s.ListBackups()
	require.NoError(t, err)
	require.Len(t, backups, 2)
	assert.Equal(t, second, backups[0].Path)
	assert.Equal(t, first, backups[1].Path)
	assert.Equal(t, "backup_20260315_092653", backups[0].Name)
}
