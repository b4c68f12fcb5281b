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
	"path/filepath"

	"github.com/loadermanager/loader-manager/pkg/videos"
	"github.com/rivo/tview"
	"github.com/rs/zerolog/log"
)

// scanVideos reloads the playlist from the video folder. Safe to call from
// any goroutine.
func (u *UI) scanVideos() {
	files, err := videos.Scan(u.fs, u.cfg.VideoDir())
	if err != nil {
		log.Warn().Err(err).Msg("failed to scan video folder")
		return
	}
	u.player.SetPlaylist(files)
}

func videoStatusText(s videos.Status) string {
	if s.Total == 0 {
		return "No videos found."
	}
	state := "Stopped"
	if s.Playing {
		state = "Playing"
	}
	return fmt.Sprintf("%s %d/%d: %s", state, s.Index+1, s.Total, tview.Escape(s.Title()))
}

// refreshVideos redraws the video page from the player state, if the page
// has been built.
func (u *UI) refreshVideos() {
	if u.videoList == nil || u.videoStatus == nil {
		return
	}
	playlist := u.player.Playlist()
	s := u.player.Status()

	u.videoList.Clear()
	for _, file := range playlist {
		u.videoList.AddItem(filepath.Base(file), "", 0, nil)
	}
	if s.Total > 0 {
		u.videoList.SetCurrentItem(s.Index)
	}
	u.videoStatus.SetText(videoStatusText(s))
}

func (u *UI) videoAction(action string, fn func() error) func() {
	return func() {
		if err := fn(); err != nil {
			u.reportError(action, err)
		}
	}
}

func (u *UI) showVideos() {
	page := tview.NewFlex()
	page.SetTitle(" Videos ").SetTitleAlign(tview.AlignCenter)

	u.videoList = tview.NewList().ShowSecondaryText(false)
	u.videoList.SetBorder(true).SetTitle(" " + tview.Escape(u.cfg.VideoDir()) + " ")
	u.videoStatus = tview.NewTextView().SetDynamicColors(true)

	left := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(u.videoList, 0, 1, false).
		AddItem(u.videoStatus, 1, 1, false)
	page.AddItem(left, 0, 1, false)
	page.AddItem(tview.NewBox(), 1, 1, false)

	back := func() {
		u.videoList = nil
		u.videoStatus = nil
		u.showMain()
	}

	buttons := []*tview.Button{
		tview.NewButton("Play/Pause").SetSelectedFunc(u.videoAction("play video", func() error {
			return u.player.TogglePlay(u.ctx)
		})),
		tview.NewButton("Next").SetSelectedFunc(u.videoAction("next video", func() error {
			return u.player.Next(u.ctx)
		})),
		tview.NewButton("Stop").SetSelectedFunc(u.videoAction("stop video", u.player.Stop)),
		tview.NewButton("Reload").SetSelectedFunc(func() {
			u.scanVideos()
			u.refreshVideos()
		}),
		tview.NewButton("Back").SetSelectedFunc(back),
	}
	setupButtonNavigation(u.app, back, buttons...)
	page.AddItem(buttonColumn(buttons...), 16, 1, true)

	pageDefaults(PageVideos, u.pages, page)
	u.refreshVideos()
}
