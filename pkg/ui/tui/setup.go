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

	"github.com/loadermanager/loader-manager/pkg/wizard"
	"github.com/rivo/tview"
)

// folderPrompt shows a page asking for a folder, typed in or picked with
// the native dialog. submit validates and stores the choice; the page stays
// up with an error modal if it fails.
func (u *UI) folderPrompt(
	page string,
	title string,
	help string,
	initial string,
	submit func(dir string) error,
	done func(),
	cancel func(),
) {
	helpText := tview.NewTextView().SetWrap(true).SetText(help)

	form := tview.NewForm()
	form.AddInputField("Folder", initial, 0, nil, nil)
	field, ok := form.GetFormItemByLabel("Folder").(*tview.InputField)
	if !ok {
		return
	}

	form.AddButton("Browse", func() {
		go func() {
			dir, err := u.browse(title)
			u.app.QueueUpdateDraw(func() {
				if err != nil {
					u.reportError("browse", err)
					return
				}
				if dir != "" {
					field.SetText(dir)
				}
			})
		}()
	})
	form.AddButton("OK", func() {
		if err := submit(field.GetText()); err != nil {
			u.reportError(title, err)
			return
		}
		done()
	})
	form.AddButton("Cancel", cancel)
	form.SetCancelFunc(cancel)
	form.SetButtonsAlign(tview.AlignCenter)

	frame := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(helpText, 3, 1, false).
		AddItem(form, 0, 1, true)
	frame.SetBorder(true).
		SetTitle(" " + title + " ").
		SetTitleAlign(tview.AlignCenter)

	u.pages.AddAndSwitchToPage(page, CenterWidget(76, 12, frame), true)
}

// showWizard walks through whichever setup step is outstanding and opens
// the main page once setup is complete. Cancelling exits.
func (u *UI) showWizard() {
	switch u.wizard.State() {
	case wizard.AwaitingGamePath:
		u.folderPrompt(
			PageWizard,
			"Select game folder",
			fmt.Sprintf("Choose the game installation folder. It must contain %s.", u.cfg.TargetSubdir()),
			u.cfg.GamePath(),
			u.wizard.SetGamePath,
			u.showWizard,
			u.Stop,
		)
	case wizard.AwaitingBasePath:
		u.folderPrompt(
			PageWizard,
			"Select base folder",
			"Choose the base folder. It must contain loader and backup folders; a Fabio folder is used if present.",
			u.cfg.BaseDir(),
			u.wizard.SetBaseDir,
			u.showWizard,
			u.Stop,
		)
	case wizard.Complete:
		u.pages.RemovePage(PageWizard)
		u.showMain()
	}
}
