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

// Package windows implements the Windows desktop platform.
package windows

import (
	"context"
	"fmt"

	"github.com/loadermanager/loader-manager/pkg/helpers/command"
	"github.com/loadermanager/loader-manager/pkg/platforms"
)

type Platform struct {
	cmd command.Executor
}

func NewPlatform() *Platform {
	return &Platform{cmd: &command.RealExecutor{}}
}

func NewPlatformWithExecutor(cmd command.Executor) *Platform {
	return &Platform{cmd: cmd}
}

func (*Platform) ID() string {
	return platforms.PlatformIDWindows
}

func (*Platform) Settings() platforms.Settings {
	return platforms.DesktopSettings()
}

// OpenURI uses the URL protocol handler directly rather than "cmd /c start",
// since cmd treats the & in launcher query strings as a command separator.
func (p *Platform) OpenURI(ctx context.Context, uri string) error {
	if uri == "" {
		return fmt.Errorf("open uri: %w", platforms.ErrEmptyURI)
	}
	opts := command.StartOptions{HideWindow: true}
	err := p.cmd.StartWithOptions(ctx, opts, "rundll32", "url.dll,FileProtocolHandler", uri)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", uri, err)
	}
	return nil
}
