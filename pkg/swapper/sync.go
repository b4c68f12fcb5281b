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
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// SyncResult lists the files copied by Sync, as slash separated paths
// relative to the target.
type SyncResult struct {
	Copied []string
}

func (r SyncResult) Count() int {
	return len(r.Copied)
}

// needsCopy reports whether src should overwrite dst: dst is missing or its
// modification time is strictly older.
func needsCopy(fs afero.Fs, src os.FileInfo, dst string) (bool, error) {
	dstInfo, err := fs.Stat(dst)
	if os.IsNotExist(err) {
		return true, nil
	} else if err != nil {
		return false, fmt.Errorf("failed to stat %s: %w", dst, err)
	}
	return src.ModTime().After(dstInfo.ModTime()), nil
}

// Sync copies files that changed in the target back into the loader
// folder. It never deletes anything from the loader folder.
func (s *Swapper) Sync() (SyncResult, error) {
	result := SyncResult{Copied: []string{}}
	if err := s.ready(); err != nil {
		return result, err
	}

	loader := s.cfg.LoaderPath()
	if loader == "" {
		return result, ErrLoaderNotConfigured
	}

	target := s.TargetPath()
	ok, err := exists(s.fs, target)
	if err != nil {
		return result, fmt.Errorf("sync: %w", err)
	}
	if !ok {
		log.Warn().Msgf("target folder not found, nothing to sync: %s", target)
		return result, nil
	}
	if overlaps(loader, target) {
		return result, fmt.Errorf("sync: %w: %s and %s", ErrOverlappingPaths, loader, target)
	}

	err = walkTree(s.fs, target, func(path string, info os.FileInfo) error {
		if !info.Mode().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(target, path)
		if err != nil {
			return fmt.Errorf("failed to get relative path: %w", err)
		}
		dst := filepath.Join(loader, rel)

		copyNeeded, err := needsCopy(s.fs, info, dst)
		if err != nil {
			return err
		}
		if !copyNeeded {
			return nil
		}

		if err := copyFile(s.fs, path, dst, info); err != nil {
			return err
		}
		relSlash := filepath.ToSlash(rel)
		result.Copied = append(result.Copied, relSlash)
		log.Info().Msgf("copied: %s", relSlash)
		return nil
	})
	if err != nil {
		return result, fmt.Errorf("sync: %w", err)
	}

	log.Info().Msgf("sync complete, %d files copied", result.Count())
	return result, nil
}
