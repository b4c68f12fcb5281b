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
	"errors"
	"fmt"
	"strings"

	"github.com/jonboulle/clockwork"
	"github.com/loadermanager/loader-manager/pkg/config"
	"github.com/loadermanager/loader-manager/pkg/helpers/command"
	"github.com/loadermanager/loader-manager/pkg/platforms"
	"github.com/loadermanager/loader-manager/pkg/swapper"
	"github.com/loadermanager/loader-manager/pkg/videos"
	"github.com/loadermanager/loader-manager/pkg/wizard"
	"github.com/rivo/tview"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
)

const (
	PageWizard         = "wizard"
	PageMain           = "main"
	PageSettings       = "settings"
	PageSettingsFolder = "settings_folder"
	PageBackups        = "backups"
	PageBackupFolder   = "backups_folder"
	PageConsole        = "console"
	PageVideos         = "videos"
	PageModal          = "modal"
)

// Options replaces the real dependencies of the UI. Zero values fall back
// to the OS filesystem, the real clock, real processes, the native folder
// picker and a fresh log panel.
type Options struct {
	App    *tview.Application
	Fs     afero.Fs
	Clock  clockwork.Clock
	Cmd    command.Executor
	Browse BrowseFunc
	Logs   *LogPanel
}

// UI is the interactive front end. All fields are only touched from the
// tview event goroutine, except where noted.
type UI struct {
	//nolint:containedctx // lives as long as the application
	ctx         context.Context
	cancel      context.CancelFunc
	app         *tview.Application
	pages       *tview.Pages
	cfg         *config.Instance
	pl          platforms.Platform
	fs          afero.Fs
	clock       clockwork.Clock
	swapper     *swapper.Swapper
	wizard      *wizard.Wizard
	player      *videos.Player
	browse      BrowseFunc
	logs        *LogPanel
	videoList   *tview.List
	videoStatus *tview.TextView
}

// BuildMain creates the application and shows the main page, or the setup
// wizard if setup isn't complete.
func BuildMain(cfg *config.Instance, pl platforms.Platform, opts Options) *UI {
	if opts.App == nil {
		opts.App = tview.NewApplication()
	}
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.Cmd == nil {
		opts.Cmd = &command.RealExecutor{}
	}
	if opts.Browse == nil {
		opts.Browse = NativeBrowse
	}
	if opts.Logs == nil {
		opts.Logs = NewLogPanel()
	}

	if !SetCurrentTheme(cfg.Theme()) {
		ApplyTheme(&ThemeDark)
	}
	opts.Logs.ApplyTheme(CurrentTheme())

	ctx, cancel := context.WithCancel(context.Background())
	u := &UI{
		ctx:     ctx,
		cancel:  cancel,
		app:     opts.App,
		pages:   tview.NewPages(),
		cfg:     cfg,
		pl:      pl,
		fs:      opts.Fs,
		clock:   opts.Clock,
		swapper: swapper.New(opts.Fs, cfg, opts.Clock),
		wizard:  wizard.New(opts.Fs, cfg),
		browse:  opts.Browse,
		logs:    opts.Logs,
	}
	u.player = videos.NewPlayer(opts.Cmd, opts.Clock, cfg.VideoPlayer(), func(videos.Status) {
		go u.app.QueueUpdateDraw(u.refreshVideos)
	})
	u.scanVideos()

	u.app.SetRoot(u.pages, true)
	u.showMain()
	return u
}

// Root is the primitive the application draws.
func (u *UI) Root() tview.Primitive {
	return u.pages
}

// Run starts the background workers and blocks until the user exits.
func (u *UI) Run() error {
	// the log panel is not waited for, a redraw queued after the app exits
	// never completes
	go u.logs.Run(u.ctx, u.app)

	workers, ctx := errgroup.WithContext(u.ctx)
	workers.Go(func() error {
		u.player.Run(ctx)
		return nil
	})

	w, err := videos.NewWatcher(u.cfg.VideoDir(), u.clock, func() {
		u.scanVideos()
		u.app.QueueUpdateDraw(u.refreshVideos)
	})
	if err != nil {
		log.Debug().Err(err).Msg("video folder not watched")
	} else {
		workers.Go(func() error {
			w.Run(ctx)
			return nil
		})
	}

	err = u.app.Run()
	u.cancel()
	_ = workers.Wait()
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

// Stop closes the application and cancels the background workers.
func (u *UI) Stop() {
	u.cancel()
	u.app.Stop()
}

// ready sends the user to the wizard and returns false if setup isn't
// complete.
func (u *UI) ready() bool {
	if u.wizard.State() == wizard.Complete {
		return true
	}
	u.showWizard()
	return false
}

func (u *UI) showModal(message, title string, buttons []string, done func(label string)) {
	modal := genericModal(message, title, buttons, func(_ int, label string) {
		u.pages.RemovePage(PageModal)
		if done != nil {
			done(label)
		}
	})
	u.pages.AddPage(PageModal, modal, true, true)
	u.app.SetFocus(modal)
}

func (u *UI) confirm(message string, yes func()) {
	u.showModal(message, "Confirm", []string{"Yes", "No"}, func(label string) {
		if label == "Yes" {
			yes()
		}
	})
}

// reportError is the single place UI actions send failures. The error is
// logged and shown; an incomplete setup sends the user back to the wizard.
func (u *UI) reportError(action string, err error) {
	log.Error().Err(err).Msgf("%s failed", action)
	if errors.Is(err, swapper.ErrSetupIncomplete) {
		u.showModal("Setup is not complete. Choose your folders first.", "Setup", []string{"OK"},
			func(string) { u.showWizard() })
		return
	}
	u.showModal(err.Error(), "Error", []string{"OK"}, nil)
}

// run performs a user action and reports its outcome.
func (u *UI) run(action string, fn func() (string, error)) {
	msg, err := fn()
	if err != nil {
		u.reportError(action, err)
		return
	}
	log.Info().Msgf("%s: %s", action, strings.ReplaceAll(msg, "\n", " "))
	u.showModal(msg, "Done", []string{"OK"}, func(string) { u.showMain() })
}

func withBackup(msg, backup string) string {
	if backup == "" {
		return msg
	}
	return msg + "\nBackup: " + backup
}

func (u *UI) statusText() string {
	fabio := u.cfg.FabioPath()
	if fabio == "" {
		fabio = "not found"
	}
	return fmt.Sprintf(
		"[::b]Game:[::-]   %s\n[::b]Target:[::-] %s\n[::b]Base:[::-]   %s\n"+
			"[::b]Loader:[::-] %s\n[::b]Backup:[::-] %s\n[::b]Fabio:[::-]  %s",
		tview.Escape(u.cfg.GamePath()),
		tview.Escape(u.swapper.TargetPath()),
		tview.Escape(u.cfg.BaseDir()),
		tview.Escape(u.cfg.LoaderPath()),
		tview.Escape(u.cfg.BackupDir()),
		tview.Escape(fabio),
	)
}

func (u *UI) showMain() {
	if !u.ready() {
		return
	}

	main := tview.NewFlex()
	main.SetTitle(config.BaseName + " v" + config.AppVersion + " (" + u.pl.ID() + ")").
		SetTitleAlign(tview.AlignCenter)

	statusText := tview.NewTextView().SetDynamicColors(true).SetText(u.statusText())
	helpText := tview.NewTextView()

	displayCol := tview.NewFlex().SetDirection(tview.FlexRow)
	displayCol.AddItem(statusText, 6, 1, false)
	displayCol.AddItem(u.logs, 0, 1, false)
	displayCol.AddItem(helpText, 1, 1, false)
	main.AddItem(displayCol, 0, 1, false)
	main.AddItem(tview.NewBox(), 1, 1, false)

	button := func(label, help string, fn func()) *tview.Button {
		b := tview.NewButton(label).SetSelectedFunc(fn)
		b.SetFocusFunc(func() {
			helpText.SetText(help)
		})
		return b
	}

	buttons := []*tview.Button{
		button("Load loader", "Back up the target folder and copy the loader into it.", func() {
			u.run("load loader", func() (string, error) {
				backup, err := u.swapper.LoadLoader()
				return withBackup("Loader loaded.", backup), err
			})
		}),
		button("Sync", "Copy new and changed files from the target folder to the loader.", func() {
			u.run("sync", func() (string, error) {
				res, err := u.swapper.Sync()
				return fmt.Sprintf("Sync complete, %d files copied.", res.Count()), err
			})
		}),
		button("Load backup", "Replace the target folder with a backup.", u.showBackups),
		button("Reset to default", "Delete the target folder.", u.confirmReset),
		button("Fabio mode", "Back up the target folder and copy the Fabio folder into it.", func() {
			u.run("fabio mode", func() (string, error) {
				backup, err := u.swapper.FabioMode()
				return withBackup("Fabio mode enabled.", backup), err
			})
		}),
		button("Launch game", "Start the game through its launcher.", func() {
			u.run("launch game", func() (string, error) {
				if err := u.pl.OpenURI(u.ctx, u.cfg.LaunchURI()); err != nil {
					return "", fmt.Errorf("launch game: %w", err)
				}
				return "Game launched.", nil
			})
		}),
		button("Videos", "Play videos from the video folder.", u.showVideos),
		button("Console", "Show the full log.", u.showConsole),
		button("Settings", "Change folders, theme and logging.", u.showSettings),
		button("Exit", "Exit "+config.BaseName+".", u.Stop),
	}
	setupButtonNavigation(u.app, u.Stop, buttons...)
	main.AddItem(buttonColumn(buttons...), 20, 1, true)

	pageDefaults(PageMain, u.pages, main)
}

func (u *UI) confirmReset() {
	if !u.ready() {
		return
	}
	u.confirm(
		"Delete "+u.swapper.TargetPath()+"?\nNo backup is made.",
		func() {
			u.run("reset to default", func() (string, error) {
				return "Target folder deleted.", u.swapper.ResetToDefault()
			})
		},
	)
}
