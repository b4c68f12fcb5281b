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
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/loadermanager/loader-manager/pkg/helpers/syncutil"
	"github.com/rivo/tview"
	"github.com/stretchr/testify/require"
)

// TestScreen is a SimulationScreen with key injection and text lookup.
type TestScreen struct {
	tcell.SimulationScreen
}

func NewTestScreen(t *testing.T, width, height int) *TestScreen {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, sim.Init(), "failed to initialize simulation screen")
	sim.SetSize(width, height)
	return &TestScreen{SimulationScreen: sim}
}

func (s *TestScreen) InjectEnter() {
	s.InjectKey(tcell.KeyEnter, 0, tcell.ModNone)
}

func (s *TestScreen) InjectEscape() {
	s.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)
}

func (s *TestScreen) InjectTab() {
	s.InjectKey(tcell.KeyTab, 0, tcell.ModNone)
}

func (s *TestScreen) InjectArrowDown() {
	s.InjectKey(tcell.KeyDown, 0, tcell.ModNone)
}

// InjectString types str one rune at a time.
func (s *TestScreen) InjectString(str string) {
	for _, r := range str {
		s.InjectKey(tcell.KeyRune, r, tcell.ModNone)
	}
}

// Text returns the screen contents, one line per row.
func (s *TestScreen) Text() string {
	cells, width, height := s.GetContents()
	var sb strings.Builder
	for y := range height {
		for x := range width {
			cell := cells[y*width+x]
			if len(cell.Runes) > 0 {
				sb.WriteRune(cell.Runes[0])
			} else {
				sb.WriteRune(' ')
			}
		}
		sb.WriteRune('\n')
	}
	return sb.String()
}

func (s *TestScreen) ContainsText(text string) bool {
	return strings.Contains(s.Text(), text)
}

// DumpScreen formats the screen for failure messages.
func (s *TestScreen) DumpScreen() string {
	return "screen:\n" + s.Text()
}

// TestAppRunner runs a tview application on a simulation screen in the
// background.
type TestAppRunner struct {
	app     *tview.Application
	screen  *TestScreen
	stopMu  syncutil.Mutex
	stopped bool
}

func NewTestAppRunner(t *testing.T, width, height int) *TestAppRunner {
	t.Helper()
	screen := NewTestScreen(t, width, height)
	app := tview.NewApplication()
	app.SetScreen(screen.SimulationScreen)
	return &TestAppRunner{
		app:    app,
		screen: screen,
	}
}

// Start runs the app with root until Stop is called.
func (r *TestAppRunner) Start(root tview.Primitive) {
	r.app.SetRoot(root, true)
	go func() {
		_ = r.app.Run()
		r.stopMu.Lock()
		r.stopped = true
		r.stopMu.Unlock()
	}()
	time.Sleep(20 * time.Millisecond)
}

// Stop ends the app. Stopping also finalizes the screen.
func (r *TestAppRunner) Stop() {
	r.stopMu.Lock()
	wasStopped := r.stopped
	r.stopped = true
	r.stopMu.Unlock()

	if !wasStopped {
		r.app.Stop()
		time.Sleep(20 * time.Millisecond)
	}
}

func (r *TestAppRunner) Screen() *TestScreen {
	return r.screen
}

func (r *TestAppRunner) App() *tview.Application {
	return r.app
}

// QueueUpdateDraw runs f on the event goroutine and returns once it has
// run.
func (r *TestAppRunner) QueueUpdateDraw(f func()) {
	r.app.QueueUpdateDraw(f)
}

// WaitForText redraws until text is on screen or timeout passes.
func (r *TestAppRunner) WaitForText(text string, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		r.app.Draw()
		if r.screen.ContainsText(text) {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return false
}
