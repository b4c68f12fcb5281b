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
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// copyFile copies a single regular file, overwriting dst, and carries over
// the permission bits and modification time.
func copyFile(fs afero.Fs, src, dst string, info os.FileInfo) error {
	in, err := fs.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer func() {
		if closeErr := in.Close(); closeErr != nil {
			log.Debug().Err(closeErr).Msgf("failed to close %s", src)
		}
	}()

	if err := fs.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", dst, err)
	}

	out, err := fs.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fmt.Errorf("failed to copy %s: %w", src, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", dst, err)
	}

	mtime := info.ModTime()
	if err := fs.Chtimes(dst, mtime, mtime); err != nil {
		return fmt.Errorf("failed to set times on %s: %w", dst, err)
	}
	return nil
}

// walkTree calls fn for root and everything below it, parents before
// children. Symlinks are resolved, including root itself, so fn only sees
// the info of what a link points to. Symlinked directories below root are
// not descended into, which keeps link cycles from recursing forever.
func walkTree(fs afero.Fs, root string, fn func(path string, info os.FileInfo) error) error {
	info, err := fs.Stat(root)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", root)
	}
	return walkDir(fs, root, info, fn)
}

func walkDir(fs afero.Fs, dir string, info os.FileInfo, fn func(string, os.FileInfo) error) error {
	if err := fn(dir, info); err != nil {
		return err
	}

	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		return fmt.Errorf("failed to read directory %s: %w", dir, err)
	}
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if entry.Mode()&os.ModeSymlink != 0 {
			resolved, err := fs.Stat(path)
			if err != nil {
				log.Debug().Err(err).Msgf("skipping broken symlink: %s", path)
				continue
			}
			if resolved.IsDir() {
				log.Debug().Msgf("skipping symlinked directory: %s", path)
				continue
			}
			entry = resolved
		}

		if entry.IsDir() {
			if err := walkDir(fs, path, entry, fn); err != nil {
				return err
			}
			continue
		}
		if err := fn(path, entry); err != nil {
			return err
		}
	}
	return nil
}

// copyTree recursively copies the directory src into dst, creating dst if
// needed. Directories and regular files are copied, symlinks to files are
// copied as the file they point to.
func copyTree(fs afero.Fs, src, dst string) error {
	err := walkTree(fs, src, func(path string, info os.FileInfo) error {
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return fmt.Errorf("failed to get relative path: %w", err)
		}
		target := filepath.Join(dst, rel)

		switch {
		case info.IsDir():
			if err := fs.MkdirAll(target, info.Mode().Perm()|0o700); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", target, err)
			}
			return nil
		case info.Mode().IsRegular():
			return copyFile(fs, path, target, info)
		default:
			log.Debug().Msgf("skipping non-regular file: %s", path)
			return nil
		}
	})
	if err != nil {
		return fmt.Errorf("failed to copy %s to %s: %w", src, dst, err)
	}
	return nil
}

func exists(fs afero.Fs, path string) (bool, error) {
	_, err := fs.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("failed to stat %s: %w", path, err)
}
