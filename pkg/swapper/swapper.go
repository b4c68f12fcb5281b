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

// Package swapper swaps loader content in and out of the game installation,
// takes timestamped backups of it and syncs changes back to the loader
// folder.
package swapper

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/loadermanager/loader-manager/pkg/config"
	"github.com/loadermanager/loader-manager/pkg/helpers"
	"github.com/loadermanager/loader-manager/pkg/wizard"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

const (
	BackupPrefix = "backup_"
	// BackupTimeLayout is the timestamp format used in backup folder names.
	BackupTimeLayout = "20060102_150405"
)

type Swapper struct {
	fs    afero.Fs
	cfg   *config.Instance
	clock clockwork.Clock
}

func New(fs afero.Fs, cfg *config.Instance, clock clockwork.Clock) *Swapper {
	return &Swapper{
		fs:    fs,
		cfg:   cfg,
		clock: clock,
	}
}

// TargetPath returns the folder inside the game installation that swaps
// operate on. It is resolved from the config on every call.
func (s *Swapper) TargetPath() string {
	return s.cfg.TargetPath()
}

func (s *Swapper) ready() error {
	if state := wizard.CurrentState(s.fs, s.cfg); state != wizard.Complete {
		return fmt.Errorf("%w: %s", ErrSetupIncomplete, state)
	}
	return nil
}

func overlaps(a, b string) bool {
	return helpers.PathHasPrefix(a, b) || helpers.PathHasPrefix(b, a)
}

// MakeBackup copies the current target into a new backup_<timestamp>
// folder and returns its path. If there is no target yet, it logs a warning
// and returns an empty path with no error.
func (s *Swapper) MakeBackup() (string, error) {
	if err := s.ready(); err != nil {
		return "", err
	}

	target := s.TargetPath()
	ok, err := exists(s.fs, target)
	if err != nil {
		return "", fmt.Errorf("backup: %w", err)
	}
	if !ok {
		log.Warn().Msgf("target folder not found, skipping backup: %s", target)
		return "", nil
	}

	backupDir := s.cfg.BackupDir()
	if overlaps(backupDir, target) {
		return "", fmt.Errorf("backup: %w: %s and %s", ErrOverlappingPaths, backupDir, target)
	}

	dst, err := s.nextBackupPath(backupDir)
	if err != nil {
		return "", fmt.Errorf("backup: %w", err)
	}
	if err := copyTree(s.fs, target, dst); err != nil {
		return "", fmt.Errorf("backup: %w", err)
	}

	log.Info().Msgf("backup created: %s", dst)
	return dst, nil
}

// nextBackupPath names a backup after the current time. Two backups in the
// same second get a numeric suffix instead of merging.
func (s *Swapper) nextBackupPath(backupDir string) (string, error) {
	name := BackupPrefix + s.clock.Now().Format(BackupTimeLayout)
	path := filepath.Join(backupDir, name)
	for i := 2; ; i++ {
		ok, err := exists(s.fs, path)
		if err != nil {
			return "", err
		}
		if !ok {
			return path, nil
		}
		path = filepath.Join(backupDir, fmt.Sprintf("%s_%d", name, i))
	}
}

// CopyFolder replaces the target with a copy of source. Removing the old
// target is best-effort. A missing or empty source leaves an empty target.
func (s *Swapper) CopyFolder(source string) error {
	if err := s.ready(); err != nil {
		return err
	}

	target := s.TargetPath()
	if overlaps(source, target) {
		return fmt.Errorf("copy: %w: %s and %s", ErrOverlappingPaths, source, target)
	}

	if err := s.fs.RemoveAll(target); err != nil {
		log.Warn().Err(err).Msgf("failed to fully remove target: %s", target)
	}
	if err := s.fs.MkdirAll(target, 0o755); err != nil {
		return fmt.Errorf("copy: failed to create target %s: %w", target, err)
	}

	ok, err := exists(s.fs, source)
	if err != nil {
		return fmt.Errorf("copy: %w", err)
	}
	if !ok {
		log.Warn().Msgf("source folder not found, target left empty: %s", source)
		return nil
	}

	if err := copyTree(s.fs, source, target); err != nil {
		return fmt.Errorf("copy: %w", err)
	}

	log.Info().Msgf("copied %s to %s", source, target)
	return nil
}

func (s *Swapper) swapIn(source string) (string, error) {
	backup, err := s.MakeBackup()
	if err != nil {
		return "", err
	}
	if err := s.CopyFolder(source); err != nil {
		return backup, err
	}
	return backup, nil
}

// LoadLoader backs up the target and replaces it with the loader folder.
// It returns the backup path, which is empty if there was nothing to back
// up.
func (s *Swapper) LoadLoader() (string, error) {
	if err := s.ready(); err != nil {
		return "", err
	}
	loader := s.cfg.LoaderPath()
	if loader == "" {
		return "", ErrLoaderNotConfigured
	}
	backup, err := s.swapIn(loader)
	if err != nil {
		return backup, fmt.Errorf("load loader: %w", err)
	}
	log.Info().Msg("loader loaded")
	return backup, nil
}

// FabioMode backs up the target and replaces it with the fabio folder.
func (s *Swapper) FabioMode() (string, error) {
	if err := s.ready(); err != nil {
		return "", err
	}
	fabio := s.cfg.FabioPath()
	if fabio == "" {
		return "", ErrFabioNotConfigured
	}
	backup, err := s.swapIn(fabio)
	if err != nil {
		return backup, fmt.Errorf("fabio mode: %w", err)
	}
	log.Info().Msg("fabio mode enabled")
	return backup, nil
}

// ResetToDefault deletes the target folder. It takes no backup, callers
// must confirm with the user first.
func (s *Swapper) ResetToDefault() error {
	if err := s.ready(); err != nil {
		return err
	}
	target := s.TargetPath()
	if err := s.fs.RemoveAll(target); err != nil {
		return fmt.Errorf("reset: failed to remove %s: %w", target, err)
	}
	log.Info().Msgf("target reset: %s", target)
	return nil
}

// CheckBackup verifies dir can be loaded as a backup: it must be an
// existing, non-empty directory.
func (s *Swapper) CheckBackup(dir string) error {
	if dir == "" {
		return fmt.Errorf("%w: no folder selected", ErrInvalidBackup)
	}
	ok, err := afero.IsDir(s.fs, dir)
	if err != nil || !ok {
		return fmt.Errorf("%w: %s is not a directory", ErrInvalidBackup, dir)
	}
	empty, err := afero.IsEmpty(s.fs, dir)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidBackup, err)
	}
	if empty {
		return fmt.Errorf("%w: %s is empty", ErrInvalidBackup, dir)
	}
	return nil
}

// LoadBackup replaces the target with the contents of dir. Callers must
// confirm with the user first.
func (s *Swapper) LoadBackup(dir string) error {
	if err := s.ready(); err != nil {
		return err
	}
	if err := s.CheckBackup(dir); err != nil {
		return err
	}
	if err := s.CopyFolder(dir); err != nil {
		return fmt.Errorf("load backup: %w", err)
	}
	log.Info().Msgf("backup loaded: %s", dir)
	return nil
}

type Backup struct {
	Created time.Time
	Name    string
	Path    string
}

// ListBackups returns the backup_* folders in the backup directory, newest
// first. The creation time comes from the folder name, or the folder's
// modification time if the name has no valid timestamp.
func (s *Swapper) ListBackups() ([]Backup, error) {
	backupDir := s.cfg.BackupDir()
	if backupDir == "" {
		return nil, ErrSetupIncomplete
	}

	entries, err := afero.ReadDir(s.fs, backupDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Backup{}, nil
		}
		return nil, fmt.Errorf("list backups: %w", err)
	}

	backups := make([]Backup, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() || !strings.HasPrefix(e.Name(), BackupPrefix) {
			continue
		}
		created := e.ModTime()
		stamp := strings.TrimPrefix(e.Name(), BackupPrefix)
		if len(stamp) >= len(BackupTimeLayout) {
			t, err := time.ParseInLocation(BackupTimeLayout, stamp[:len(BackupTimeLayout)], time.Local)
			if err == nil {
				created = t
			}
		}
		backups = append(backups, Backup{
			Name:    e.Name(),
			Path:    filepath.Join(backupDir, e.Name()),
			Created: created,
		})
	}

	sort.SliceStable(backups, func(i, j int) bool {
		if backups[i].Created.Equal(backups[j].Created) {
			return backups[i].Name > backups[j].Name
		}
		return backups[i].Created.After(backups[j].Created)
	})
	return backups, nil
}
