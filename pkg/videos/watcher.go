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

package videos

import (
	"context"
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// WatchDebounce groups bursts of file events, like a large copy, into one
// rescan.
const WatchDebounce = time.Second

// Watcher calls onChange after videos are added to, removed from or renamed
// in a folder.
type Watcher struct {
	fsw      *fsnotify.Watcher
	clock    clockwork.Clock
	onChange func()
}

// NewWatcher starts watching dir, which must exist.
func NewWatcher(dir string, clock clockwork.Clock, onChange func()) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	return &Watcher{
		fsw:      fsw,
		clock:    clock,
		onChange: onChange,
	}, nil
}

func relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return false
	}
	return IsVideo(ev.Name)
}

// Run handles events until ctx is cancelled, then closes the watcher.
func (w *Watcher) Run(ctx context.Context) {
	var pending clockwork.Timer
	defer func() {
		if pending != nil {
			pending.Stop()
		}
		if err := w.fsw.Close(); err != nil {
			log.Debug().Err(err).Msg("error closing video watcher")
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !relevant(ev) {
				continue
			}
			log.Debug().Msgf("video folder changed: %s", ev)
			if pending != nil {
				pending.Stop()
			}
			pending = w.clock.AfterFunc(WatchDebounce, w.onChange)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.Warn().Err(err).Msg("video watcher error")
		}
	}
}
