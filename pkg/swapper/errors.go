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

import "errors"

var (
	ErrSetupIncomplete     = errors.New("setup is not complete")
	ErrLoaderNotConfigured = errors.New("loader folder is not configured")
	ErrFabioNotConfigured  = errors.New("fabio folder is not configured")
	ErrInvalidBackup       = errors.New("invalid backup folder")
	ErrOverlappingPaths    = errors.New("source and target folders overlap")
)
