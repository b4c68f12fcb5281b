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
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

func CenterWidget(width, height int, p tview.Primitive) tview.Primitive {
	return tview.NewFlex().
		AddItem(nil, 0, 1, false).
		AddItem(tview.NewFlex().
			SetDirection(tview.FlexRow).
			AddItem(nil, 0, 1, false).
			AddItem(p, height, 1, true).
			AddItem(nil, 0, 1, false), width, 1, true).
		AddItem(nil, 0, 1, false)
}

func pageDefaults[S PrimitiveWithSetBorder](name string, pages *tview.Pages, widget S) tview.Primitive {
	widget.SetBorder(true)
	pages.AddAndSwitchToPage(name, widget, true)
	return widget
}

type PrimitiveWithSetBorder interface {
	tview.Primitive
	SetBorder(arg bool) *tview.Box
}

func genericModal(
	message string,
	title string,
	buttons []string,
	action func(buttonIndex int, buttonLabel string),
) *tview.Modal {
	modal := tview.NewModal()
	modal.SetTitle(title).
		SetBorder(true).
		SetTitleAlign(tview.AlignCenter)
	modal.SetText(message)
	if len(buttons) > 0 {
		modal.AddButtons(buttons).
			SetDoneFunc(action)
	}
	return modal
}

// setupButtonNavigation lets arrow keys move between a column of buttons,
// wrapping at both ends. Escape runs onEscape.
func setupButtonNavigation(
	app *tview.Application,
	onEscape func(),
	buttons ...*tview.Button,
) {
	for i, button := range buttons {
		prevIndex := (i - 1 + len(buttons)) % len(buttons)
		nextIndex := (i + 1) % len(buttons)

		button.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
			k := event.Key()
			switch k { //nolint:exhaustive
			case tcell.KeyUp, tcell.KeyLeft, tcell.KeyBacktab:
				app.SetFocus(buttons[prevIndex])
				return nil
			case tcell.KeyDown, tcell.KeyRight, tcell.KeyTab:
				app.SetFocus(buttons[nextIndex])
				return nil
			case tcell.KeyEscape:
				if onEscape != nil {
					onEscape()
				}
				return nil
			}
			return event
		})
	}
}

// buttonColumn stacks buttons vertically with a blank row between each.
func buttonColumn(buttons ...*tview.Button) *tview.Flex {
	col := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(tview.NewBox(), 0, 1, false)
	for i, b := range buttons {
		col.AddItem(b, 1, 1, i == 0)
		col.AddItem(tview.NewBox(), 1, 1, false)
	}
	col.AddItem(tview.NewBox(), 0, 1, false)
	return col
}
