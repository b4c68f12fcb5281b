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
	"fmt"

	"github.com/rivo/tview"
)

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func (u *UI) showSettings() {
	if !u.ready() {
		return
	}

	settings := tview.NewFlex()
	settings.SetTitle(" Settings ").SetTitleAlign(tview.AlignCenter)

	statusText := tview.NewTextView().SetDynamicColors(true).SetText(
		u.statusText() + fmt.Sprintf(
			"\n\n[::b]Theme:[::-]  %s\n[::b]Debug:[::-]  %s\n[::b]Config:[::-] %s",
			CurrentTheme().DisplayName,
			onOff(u.cfg.DebugLogging()),
			tview.Escape(u.cfg.Path()),
		),
	)
	settings.AddItem(statusText, 0, 1, false)
	settings.AddItem(tview.NewBox(), 1, 1, false)

	back := func() {
		u.pages.RemovePage(PageSettingsFolder)
		u.showSettings()
	}

	gameButton := tview.NewButton("Game folder").SetSelectedFunc(func() {
		u.folderPrompt(
			PageSettingsFolder,
			"Choose game folder",
			"The folder must contain "+u.cfg.TargetSubdir()+".",
			u.cfg.GamePath(),
			u.wizard.SetGamePath,
			back,
			back,
		)
	})
	baseButton := tview.NewButton("Base folder").SetSelectedFunc(func() {
		u.folderPrompt(
			PageSettingsFolder,
			"Choose base folder",
			"The folder must contain loader and backup folders.",
			u.cfg.BaseDir(),
			u.wizard.SetBaseDir,
			back,
			back,
		)
	})
	themeButton := tview.NewButton("Toggle theme").SetSelectedFunc(u.toggleTheme)
	debugButton := tview.NewButton("Debug logging: " + onOff(u.cfg.DebugLogging())).
		SetSelectedFunc(u.toggleDebug)
	backButton := tview.NewButton("Back").SetSelectedFunc(u.showMain)

	buttons := []*tview.Button{gameButton, baseButton, themeButton, debugButton, backButton}
	setupButtonNavigation(u.app, u.showMain, buttons...)
	settings.AddItem(buttonColumn(buttons...), 24, 1, true)

	pageDefaults(PageSettings, u.pages, settings)
}

// toggleTheme switches palettes and rebuilds the page, since tview only
// styles primitives when they are created.
func (u *UI) toggleTheme() {
	theme, err := u.cfg.ToggleTheme()
	if err != nil {
		u.reportError("toggle theme", err)
		return
	}
	SetCurrentTheme(theme)
	u.logs.ApplyTheme(CurrentTheme())
	u.showSettings()
}

func (u *UI) toggleDebug() {
	if err := u.cfg.SetDebugLogging(!u.cfg.DebugLogging()); err != nil {
		u.reportError("debug logging", err)
		return
	}
	u.showSettings()
}
