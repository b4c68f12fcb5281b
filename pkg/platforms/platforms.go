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

package platforms

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/loadermanager/loader-manager/pkg/config"
)

var (
	ErrEmptyURI = errors.New("no uri given")
)

const (
	PlatformIDLinux   = "linux"
	PlatformIDMac     = "mac"
	PlatformIDWindows = "windows"
)

type Settings struct {
	// DataDir is the root folder for files kept between runs, such as the
	// default video folder. Access it through helpers.DataDir.
	DataDir string
	// ConfigDir is where the config file lives unless the portable user
	// folder exists. Access it through helpers.ConfigDir.
	ConfigDir string
	// TempDir holds the rotating log file. Expect it to be deleted.
	TempDir string
}

// Platform is the OS specific surface the manager needs: where its files
// live and how to hand a URI to the desktop.
type Platform interface {
	// ID returns the unique ID of this platform.
	ID() string
	// Settings returns the directories used by this platform.
	Settings() Settings
	// OpenURI passes a URI (for example a game client launch link) to the
	// operating system's default handler without waiting for it.
	OpenURI(ctx context.Context, uri string) error
}

// DesktopSettings returns the XDG based directory layout shared by all
// desktop platforms.
func DesktopSettings() Settings {
	return Settings{
		DataDir:   filepath.Join(xdg.DataHome, config.AppName),
		ConfigDir: filepath.Join(xdg.ConfigHome, config.AppName),
		TempDir:   filepath.Join(os.TempDir(), config.AppName),
	}
}
