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

package helpers

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/loadermanager/loader-manager/pkg/config"
	"github.com/spf13/afero"
)

// FSHelper provides utilities for filesystem mocking in tests
type FSHelper struct {
	Fs afero.Fs
}

// NewMemoryFS creates a new in-memory filesystem for testing
func NewMemoryFS() *FSHelper {
	return &FSHelper{
		Fs: afero.NewMemMapFs(),
	}
}

// NewOSFS creates a filesystem helper using the real filesystem (for integration tests)
func NewOSFS() *FSHelper {
	return &FSHelper{
		Fs: afero.NewOsFs(),
	}
}

// CreateDirectoryStructure creates a directory tree. String and []byte
// values are files, nested maps are directories and nil is an empty
// directory.
func (h *FSHelper) CreateDirectoryStructure(basePath string, structure map[string]any) error {
	for name, content := range structure {
		fullPath := filepath.Join(basePath, name)

		switch v := content.(type) {
		case string:
			if err := h.WriteFile(fullPath, []byte(v)); err != nil {
				return err
			}
		case []byte:
			if err := h.WriteFile(fullPath, v); err != nil {
				return err
			}
		case map[string]any:
			if err := h.Fs.MkdirAll(fullPath, 0o755); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", fullPath, err)
			}
			if err := h.CreateDirectoryStructure(fullPath, v); err != nil {
				return err
			}
		case nil:
			if err := h.Fs.MkdirAll(fullPath, 0o755); err != nil {
				return fmt.Errorf("failed to create empty directory %s: %w", fullPath, err)
			}
		}
	}
	return nil
}

// FileExists checks if a file or directory exists
func (h *FSHelper) FileExists(path string) bool {
	exists, err := afero.Exists(h.Fs, path)
	if err != nil {
		return false
	}
	return exists
}

// ReadFile reads a file and returns its content
func (h *FSHelper) ReadFile(path string) ([]byte, error) {
	data, err := afero.ReadFile(h.Fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return data, nil
}

// WriteFile writes content to a file, creating parent directories.
func (h *FSHelper) WriteFile(path string, content []byte) error {
	if err := h.Fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for file %s: %w", path, err)
	}
	if err := afero.WriteFile(h.Fs, path, content, 0o644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}
	return nil
}

// WriteFileAt writes a file and sets its modification time.
func (h *FSHelper) WriteFileAt(path string, content []byte, mtime time.Time) error {
	if err := h.WriteFile(path, content); err != nil {
		return err
	}
	return h.Touch(path, mtime)
}

// Touch sets the access and modification time of an existing file.
func (h *FSHelper) Touch(path string, mtime time.Time) error {
	if err := h.Fs.Chtimes(path, mtime, mtime); err != nil {
		return fmt.Errorf("failed to set times on %s: %w", path, err)
	}
	return nil
}

// ListFiles lists the entry names of a directory
func (h *FSHelper) ListFiles(path string) ([]string, error) {
	files, err := afero.ReadDir(h.Fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", path, err)
	}

	fileNames := make([]string, len(files))
	for i, file := range files {
		fileNames[i] = file.Name()
	}

	return fileNames, nil
}

// Snapshot returns every regular file under root keyed by its slash
// separated relative path, with its contents. A missing root is an empty
// snapshot.
func (h *FSHelper) Snapshot(root string) (map[string]string, error) {
	files := make(map[string]string)
	if !h.FileExists(root) {
		return files, nil
	}
	err := afero.Walk(h.Fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return fmt.Errorf("failed to get relative path: %w", err)
		}
		data, err := afero.ReadFile(h.Fs, path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		files[filepath.ToSlash(rel)] = string(data)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}
	return files, nil
}

// CleanupDir removes all contents from a directory
func (h *FSHelper) CleanupDir(path string) error {
	if err := h.Fs.RemoveAll(path); err != nil {
		return fmt.Errorf("failed to remove directory %s: %w", path, err)
	}
	return nil
}

// Layout holds the paths of a complete test installation.
type Layout struct {
	Root   string
	Game   string
	Target string
	Base   string
	Loader string
	Backup string
	Fabio  string
}

// NewLayout returns the standard paths under root. Nothing is created.
func NewLayout(root string) Layout {
	game := filepath.Join(root, "games", "fortnite")
	base := filepath.Join(root, "base")
	return Layout{
		Root:   root,
		Game:   game,
		Target: filepath.Join(game, filepath.FromSlash(config.DefaultTargetSubdir)),
		Base:   base,
		Loader: filepath.Join(base, "loader"),
		Backup: filepath.Join(base, "backup"),
		Fabio:  filepath.Join(base, "Fabio"),
	}
}

// SetupInstallation creates the game target folder and the base folder with
// loader and backup subfolders. The fabio folder is only created when
// withFabio is set.
func (h *FSHelper) SetupInstallation(root string, withFabio bool) (Layout, error) {
	l := NewLayout(root)
	dirs := []string{l.Target, l.Loader, l.Backup}
	if withFabio {
		dirs = append(dirs, l.Fabio)
	}
	for _, dir := range dirs {
		if err := h.Fs.MkdirAll(dir, 0o755); err != nil {
			return l, fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	return l, nil
}

// NewTestConfig opens a config instance on the helper's filesystem in dir.
func (h *FSHelper) NewTestConfig(dir string) (*config.Instance, error) {
	cfg, err := config.NewConfig(h.Fs, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to create test config: %w", err)
	}
	return cfg, nil
}

// NewConfiguredConfig opens a config instance with the layout's paths
// already stored, so setup is complete.
func (h *FSHelper) NewConfiguredConfig(dir string, l Layout, withFabio bool) (*config.Instance, error) {
	cfg, err := h.NewTestConfig(dir)
	if err != nil {
		return nil, err
	}
	if err := cfg.SetGamePath(l.Game); err != nil {
		return nil, fmt.Errorf("failed to set game path: %w", err)
	}
	layout := config.BaseLayout{
		BaseDir:    l.Base,
		LoaderPath: l.Loader,
		BackupDir:  l.Backup,
	}
	if withFabio {
		layout.FabioPath = l.Fabio
	}
	if err := cfg.SetBaseLayout(layout); err != nil {
		return nil, fmt.Errorf("failed to set base layout: %w", err)
	}
	return cfg, nil
}
