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

package tui

import (
	"errors"

	"github.com/nixinwang/dialog"
)

// BrowseFunc opens a folder picker and returns the chosen path. An empty
// path with no error means the user cancelled.
type BrowseFunc func(title string) (string, error)

// NativeBrowse shows the operating system's folder picker. It blocks until
// the dialog closes, so call it off the UI goroutine.
func NativeBrowse(title string) (string, error) {
	path, err := dialog.Directory().Title(title).Browse()
	if errors.Is(err, dialog.ErrCancelled) {
		return "", nil
	}
	if err != nil {
		return "", err //nolint:wrapcheck // shown to the user as is
	}
	return path, nil
}
