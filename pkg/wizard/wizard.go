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

// Package wizard decides whether first-run setup is complete and validates
// the folders chosen during setup before they are stored.
package wizard

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/loadermanager/loader-manager/pkg/config"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

var (
	ErrInvalidGameFolder = errors.New("invalid game folder")
	ErrInvalidBaseFolder = errors.New("invalid base folder")
)

const (
	LoaderDirName = "loader"
	BackupDirName = "backup"
)

// FabioDirNames are checked in order when looking for the optional fabio
// folder.
var FabioDirNames = []string{"Fabio", "fabio"}

type State int

const (
	AwaitingGamePath State = iota
	AwaitingBasePath
	Complete
)

func (s State) String() string {
	switch s {
	case AwaitingGamePath:
		return "awaiting game path"
	case AwaitingBasePath:
		return "awaiting base path"
	case Complete:
		return "complete"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

func isDir(fs afero.Fs, path string) bool {
	if path == "" {
		return false
	}
	ok, err := afero.IsDir(fs, path)
	return err == nil && ok
}

// CurrentState derives the setup state from the stored configuration. The
// base folder is re-checked on disk so a moved or deleted loader or backup
// folder sends the user back to the base step.
func CurrentState(fs afero.Fs, cfg *config.Instance) State {
	if cfg.GamePath() == "" {
		return AwaitingGamePath
	}
	if cfg.BaseDir() == "" || !isDir(fs, cfg.LoaderPath()) || !isDir(fs, cfg.BackupDir()) {
		return AwaitingBasePath
	}
	return Complete
}

// ValidateGameFolder checks that dir is a game installation containing the
// target subdirectory.
func ValidateGameFolder(fs afero.Fs, dir, targetSubdir string) error {
	if !isDir(fs, dir) {
		return fmt.Errorf("%w: %s is not a directory", ErrInvalidGameFolder, dir)
	}
	target := filepath.Join(dir, targetSubdir)
	if !isDir(fs, target) {
		return fmt.Errorf("%w: %s not found", ErrInvalidGameFolder, target)
	}
	return nil
}

// InspectBaseFolder checks that dir holds the loader and backup folders and
// returns the derived layout, including the fabio folder when present.
func InspectBaseFolder(fs afero.Fs, dir string) (config.BaseLayout, error) {
	if !isDir(fs, dir) {
		return config.BaseLayout{}, fmt.Errorf("%w: %s is not a directory", ErrInvalidBaseFolder, dir)
	}

	layout := config.BaseLayout{
		BaseDir:    dir,
		LoaderPath: filepath.Join(dir, LoaderDirName),
		BackupDir:  filepath.Join(dir, BackupDirName),
	}
	for _, p := range []string{layout.LoaderPath, layout.BackupDir} {
		if !isDir(fs, p) {
			return config.BaseLayout{}, fmt.Errorf(
				"%w: missing %s folder in %s", ErrInvalidBaseFolder, filepath.Base(p), dir,
			)
		}
	}

	for _, name := range FabioDirNames {
		p := filepath.Join(dir, name)
		if isDir(fs, p) {
			layout.FabioPath = p
			break
		}
	}

	return layout, nil
}

// Wizard walks the user through choosing the game and base folders.
type Wizard struct {
	fs  afero.Fs
	cfg *config.Instance
}

func New(fs afero.Fs, cfg *config.Instance) *Wizard {
	return &Wizard{fs: fs, cfg: cfg}
}

func (w *Wizard) State() State {
	return CurrentState(w.fs, w.cfg)
}

// SetGamePath validates and stores the game folder. A rejected folder
// leaves the configuration unchanged.
func (w *Wizard) SetGamePath(dir string) error {
	dir = filepath.Clean(dir)
	if err := ValidateGameFolder(w.fs, dir, w.cfg.TargetSubdir()); err != nil {
		log.Warn().Err(err).Msg("game folder rejected")
		return err
	}
	if err := w.cfg.SetGamePath(dir); err != nil {
		return fmt.Errorf("failed to save game path: %w", err)
	}
	log.Info().Msgf("game folder set: %s", dir)
	return nil
}

// SetBaseDir validates and stores the base folder along with its loader,
// backup and fabio paths. A rejected folder leaves the configuration
// unchanged.
func (w *Wizard) SetBaseDir(dir string) error {
	layout, err := InspectBaseFolder(w.fs, filepath.Clean(dir))
	if err != nil {
		log.Warn().Err(err).Msg("base folder rejected")
		return err
	}
	if err := w.cfg.SetBaseLayout(layout); err != nil {
		return fmt.Errorf("failed to save base folder: %w", err)
	}
	if layout.FabioPath != "" {
		log.Info().Msgf("base folder set: %s (fabio: %s)", layout.BaseDir, layout.FabioPath)
	} else {
		log.Info().Msgf("base folder set: %s", layout.BaseDir)
	}
	return nil
}
