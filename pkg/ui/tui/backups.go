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
	"github.com/rivo/tview"
)

// showBackups lists the snapshots in the backup folder, newest first, plus
// an entry for loading any other folder.
func (u *UI) showBackups() {
	if !u.ready() {
		return
	}

	backups, err := u.swapper.ListBackups()
	if err != nil {
		u.reportError("list backups", err)
		return
	}

	list := tview.NewList()
	list.SetTitle(" Load backup ").SetTitleAlign(tview.AlignCenter)
	list.SetSecondaryTextColor(CurrentTheme().SecondaryTextColor)

	for _, b := range backups {
		path := b.Path
		list.AddItem(b.Name, b.Created.Format("2006-01-02 15:04:05"), 0, func() {
			u.confirmLoadBackup(path)
		})
	}
	list.AddItem("Other folder...", "Choose any folder to load.", 0, u.promptBackupFolder)
	list.AddItem("Back", "", 0, u.showMain)
	list.SetDoneFunc(u.showMain)

	pageDefaults(PageBackups, u.pages, list)
}

func (u *UI) promptBackupFolder() {
	var picked string
	u.folderPrompt(
		PageBackupFolder,
		"Load backup from folder",
		"Choose a folder to copy into the target folder. It must not be empty.",
		u.cfg.BackupDir(),
		func(dir string) error {
			if err := u.swapper.CheckBackup(dir); err != nil {
				return err //nolint:wrapcheck // shown as is
			}
			picked = dir
			return nil
		},
		func() {
			u.pages.RemovePage(PageBackupFolder)
			u.confirmLoadBackup(picked)
		},
		func() {
			u.pages.RemovePage(PageBackupFolder)
			u.showBackups()
		},
	)
}

func (u *UI) confirmLoadBackup(dir string) {
	if err := u.swapper.CheckBackup(dir); err != nil {
		u.reportError("load backup", err)
		return
	}
	u.confirm(
		"Load backup "+dir+"?\nThe target folder will be replaced.",
		func() {
			u.run("load backup", func() (string, error) {
				return "Backup loaded.", u.swapper.LoadBackup(dir)
			})
		},
	)
}
