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
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/loadermanager/loader-manager/pkg/helpers/command"
	"github.com/loadermanager/loader-manager/pkg/helpers/syncutil"
	"github.com/rs/zerolog/log"
)

// PollInterval is how often the running player process is checked for
// having finished.
const PollInterval = 500 * time.Millisecond

var (
	ErrEmptyPlaylist = errors.New("no videos found")
	ErrNoPlayer      = errors.New("no video player configured")
)

type Status struct {
	Current string
	Index   int
	Total   int
	Playing bool
}

// Title is the file name of the current video, or empty.
func (s Status) Title() string {
	if s.Current == "" {
		return ""
	}
	return filepath.Base(s.Current)
}

// Player plays a playlist through an external command, one process per
// video. When a video ends by itself the next one starts, wrapping around
// at the end of the list.
type Player struct {
	cmd       command.Executor
	clock     clockwork.Clock
	onChange  func(Status)
	proc      command.Process
	playerCmd []string
	playlist  []string
	index     int
	mu        syncutil.Mutex
}

// NewPlayer creates a player. playerCmd is the program and its arguments;
// the video path is appended. onChange, if set, is called after every state
// change and must not call back into the player.
func NewPlayer(
	cmd command.Executor,
	clock clockwork.Clock,
	playerCmd []string,
	onChange func(Status),
) *Player {
	return &Player{
		cmd:       cmd,
		clock:     clock,
		playerCmd: playerCmd,
		onChange:  onChange,
		playlist:  []string{},
	}
}

func (p *Player) statusLocked() Status {
	s := Status{
		Index:   p.index,
		Total:   len(p.playlist),
		Playing: p.proc != nil,
	}
	if p.index < len(p.playlist) {
		s.Current = p.playlist[p.index]
	}
	return s
}

func (p *Player) Status() Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.statusLocked()
}

// Playlist returns a copy of the current playlist.
func (p *Player) Playlist() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.playlist)
}

func (p *Player) notify(s Status) {
	if p.onChange != nil {
		p.onChange(s)
	}
}

// SetPlaylist replaces the playlist. The current video keeps its position
// if it is still in the new list, otherwise playback restarts from the
// first entry on the next Play.
func (p *Player) SetPlaylist(files []string) {
	p.mu.Lock()
	current := ""
	if p.index < len(p.playlist) {
		current = p.playlist[p.index]
	}
	p.playlist = slices.Clone(files)
	p.index = 0
	if i := slices.Index(p.playlist, current); i >= 0 {
		p.index = i
	}
	s := p.statusLocked()
	p.mu.Unlock()
	p.notify(s)
}

func (p *Player) startLocked(ctx context.Context) error {
	if len(p.playlist) == 0 {
		return ErrEmptyPlaylist
	}
	if len(p.playerCmd) == 0 {
		return ErrNoPlayer
	}
	if p.index >= len(p.playlist) {
		p.index = 0
	}

	file := p.playlist[p.index]
	args := append(slices.Clone(p.playerCmd[1:]), file)
	proc, err := p.cmd.Spawn(ctx, p.playerCmd[0], args...)
	if err != nil {
		return fmt.Errorf("failed to start %s: %w", p.playerCmd[0], err)
	}
	p.proc = proc
	log.Info().Msgf("playing video: %s", filepath.Base(file))
	return nil
}

func (p *Player) stopLocked() error {
	if p.proc == nil {
		return nil
	}
	proc := p.proc
	p.proc = nil
	if err := proc.Kill(); err != nil {
		return fmt.Errorf("failed to stop video player: %w", err)
	}
	return nil
}

// Play starts the current video if nothing is playing.
func (p *Player) Play(ctx context.Context) error {
	p.mu.Lock()
	if p.proc != nil {
		p.mu.Unlock()
		return nil
	}
	err := p.startLocked(ctx)
	s := p.statusLocked()
	p.mu.Unlock()
	p.notify(s)
	return err
}

// TogglePlay stops a playing video or starts the current one. A stopped
// video restarts from the beginning, since the external player cannot be
// paused.
func (p *Player) TogglePlay(ctx context.Context) error {
	p.mu.Lock()
	var err error
	if p.proc != nil {
		err = p.stopLocked()
	} else {
		err = p.startLocked(ctx)
	}
	s := p.statusLocked()
	p.mu.Unlock()
	p.notify(s)
	return err
}

// Next skips to the following video, wrapping to the first, and plays it.
func (p *Player) Next(ctx context.Context) error {
	p.mu.Lock()
	if len(p.playlist) == 0 {
		p.mu.Unlock()
		return ErrEmptyPlaylist
	}
	err := p.stopLocked()
	p.index = (p.index + 1) % len(p.playlist)
	if startErr := p.startLocked(ctx); startErr != nil {
		err = errors.Join(err, startErr)
	}
	s := p.statusLocked()
	p.mu.Unlock()
	p.notify(s)
	return err
}

// Stop ends playback and keeps the current position.
func (p *Player) Stop() error {
	p.mu.Lock()
	err := p.stopLocked()
	s := p.statusLocked()
	p.mu.Unlock()
	p.notify(s)
	return err
}

// poll checks whether the running video ended by itself and, if so, starts
// the next one.
func (p *Player) poll(ctx context.Context) {
	p.mu.Lock()
	if p.proc == nil {
		p.mu.Unlock()
		return
	}
	select {
	case <-p.proc.Done():
	default:
		p.mu.Unlock()
		return
	}

	p.proc = nil
	if len(p.playlist) > 0 {
		p.index = (p.index + 1) % len(p.playlist)
		if err := p.startLocked(ctx); err != nil {
			log.Error().Err(err).Msg("failed to play next video")
		}
	}
	s := p.statusLocked()
	p.mu.Unlock()
	p.notify(s)
}

// Run polls the player until ctx is cancelled, then stops playback.
func (p *Player) Run(ctx context.Context) {
	ticker := p.clock.NewTicker(PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if err := p.Stop(); err != nil {
				log.Warn().Err(err).Msg("error stopping video player")
			}
			return
		case <-ticker.Chan():
			p.poll(ctx)
		}
	}
}
