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
	"context"

	"github.com/rivo/tview"
)

const logPanelMaxLines = 1000

// LogPanel mirrors log output inside the UI. It is an io.Writer, so it can be
// handed to the logger before the application exists.
type LogPanel struct {
	*tview.TextView
	dirty chan struct{}
}

func NewLogPanel() *LogPanel {
	tv := tview.NewTextView().
		SetScrollable(true).
		SetWrap(true).
		SetMaxLines(logPanelMaxLines)
	tv.SetBorder(true).SetTitle(" Log ")
	return &LogPanel{
		TextView: tv,
		dirty:    make(chan struct{}, 1),
	}
}

// Write appends p to the panel. It never blocks on the UI.
func (lp *LogPanel) Write(p []byte) (int, error) {
	n, err := lp.TextView.Write(p)
	if err != nil {
		return n, err //nolint:wrapcheck // io.Writer passthrough
	}
	select {
	case lp.dirty <- struct{}{}:
	default:
	}
	return n, nil
}

// Run redraws app whenever new lines arrive, until ctx is cancelled.
func (lp *LogPanel) Run(ctx context.Context, app *tview.Application) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-lp.dirty:
			app.QueueUpdateDraw(func() {
				lp.ScrollToEnd()
			})
		}
	}
}

// ApplyTheme recolors the panel, which outlives page rebuilds.
func (lp *LogPanel) ApplyTheme(t *Theme) {
	lp.SetBackgroundColor(t.PrimitiveBackgroundColor)
	lp.SetTextColor(t.PrimaryTextColor)
	lp.SetBorderColor(t.BorderColor)
	lp.SetTitleColor(t.TitleColor)
}
