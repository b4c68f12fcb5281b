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

package config

var AppVersion = "DEVELOPMENT"

const (
	AppName  = "loader-manager"
	LogFile  = "loader-manager.log"
	CfgFile  = "config.json"
	UserDir  = "user"
	BaseName = "Loader Manager"
)

const (
	// DefaultTargetSubdir is the folder inside the game installation that
	// loader content replaces. Slash separated; converted per platform.
	DefaultTargetSubdir = "FortniteGame/Content/Paks/7f3c9a1e0b5d4e28"
	DefaultLaunchURI    = "com.epicgames.launcher://apps/Fortnite?action=launch&silent=true"
	DefaultVideoDir     = "videos"
	DefaultVideoPlayer  = "vlc --play-and-exit"
)
