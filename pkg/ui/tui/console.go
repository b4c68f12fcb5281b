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

func (u *UI) showConsole() {
	console := tview.NewFlex().SetDirection(tview.FlexRow)
	console.SetTitle(" Console ").SetTitleAlign(tview.AlignCenter)

	clearButton := tview.NewButton("Clear").SetSelectedFunc(func() {
		u.logs.Clear()
	})
	backButton := tview.NewButton("Back").SetSelectedFunc(u.showMain)
	setupButtonNavigation(u.app, u.showMain, clearButton, backButton)

	buttonRow := tview.NewFlex().
		AddItem(tview.NewBox(), 0, 1, false).
		AddItem(clearButton, 9, 1, false).
		AddItem(tview.NewBox(), 2, 1, false).
		AddItem(backButton, 8, 1, true).
		AddItem(tview.NewBox(), 0, 1, false)

	console.AddItem(u.logs, 0, 1, false)
	console.AddItem(buttonRow, 1, 1, true)

	pageDefaults(PageConsole, u.pages, console)
}
