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

package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jonboulle/clockwork"
	"github.com/loadermanager/loader-manager/pkg/config"
	"github.com/loadermanager/loader-manager/pkg/platforms"
	"github.com/loadermanager/loader-manager/pkg/swapper"
	"github.com/loadermanager/loader-manager/pkg/wizard"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

var ErrMultipleActions = errors.New("only one action can be run at a time")

// Env is what command line actions run against.
type Env struct {
	Platform platforms.Platform
	Config   *config.Instance
	Fs       afero.Fs
	Clock    clockwork.Clock
	In       io.Reader
	Out      io.Writer
}

func NewEnv(pl platforms.Platform, cfg *config.Instance) *Env {
	return &Env{
		Platform: pl,
		Config:   cfg,
		Fs:       afero.NewOsFs(),
		Clock:    clockwork.NewRealClock(),
		In:       os.Stdin,
		Out:      os.Stdout,
	}
}

func (e *Env) printf(format string, a ...any) {
	_, _ = fmt.Fprintf(e.Out, format, a...)
}

// HasAction reports whether any flag asks for work that replaces the UI.
func (f *Flags) HasAction() bool {
	return len(f.actions()) > 0 || *f.SetGame != "" || *f.SetBase != ""
}

func (f *Flags) actions() []string {
	var names []string
	for _, name := range []string{
		"backup", "load-loader", "fabio", "sync", "reset",
		"load-backup", "list-backups", "launch",
	} {
		if f.isFlagPassed(name) {
			names = append(names, name)
		}
	}
	return names
}

// confirm asks a yes/no question on the terminal. Anything but y or yes is
// a no.
func (f *Flags) confirm(env *Env, question string) bool {
	if *f.Yes {
		return true
	}
	env.printf("%s [y/N] ", question)
	line, err := bufio.NewReader(env.In).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

// Post actions all remaining flags that require the environment to be set
// up. It returns true if an action ran, in which case the UI should not be
// started. Errors are logged here and returned for the caller to report.
func (f *Flags) Post(ctx context.Context, env *Env) (bool, error) {
	if !f.HasAction() {
		return false, nil
	}
	err := f.post(ctx, env)
	if err != nil {
		log.Error().Err(err).Msg("command failed")
		if errors.Is(err, swapper.ErrSetupIncomplete) {
			err = fmt.Errorf("%w (run without flags to open setup, or use -set-game and -set-base)", err)
		}
	}
	return true, err
}

func (f *Flags) post(ctx context.Context, env *Env) error {
	actions := f.actions()
	if len(actions) > 1 {
		return fmt.Errorf("%w: %s", ErrMultipleActions, strings.Join(actions, ", "))
	}

	w := wizard.New(env.Fs, env.Config)
	if *f.SetGame != "" {
		if err := w.SetGamePath(*f.SetGame); err != nil {
			return fmt.Errorf("set game folder: %w", err)
		}
		env.printf("Game folder set: %s\n", env.Config.GamePath())
	}
	if *f.SetBase != "" {
		if err := w.SetBaseDir(*f.SetBase); err != nil {
			return fmt.Errorf("set base folder: %w", err)
		}
		env.printf("Base folder set: %s\n", env.Config.BaseDir())
		if env.Config.FabioPath() != "" {
			env.printf("Fabio folder found: %s\n", env.Config.FabioPath())
		}
	}
	if len(actions) == 0 {
		return nil
	}

	s := swapper.New(env.Fs, env.Config, env.Clock)
	switch actions[0] {
	case "backup":
		path, err := s.MakeBackup()
		if err != nil {
			return err
		}
		if path == "" {
			env.printf("Nothing to back up, target folder not found: %s\n", s.TargetPath())
			return nil
		}
		env.printf("Backup created: %s\n", path)
	case "load-loader":
		backup, err := s.LoadLoader()
		if err != nil {
			return err
		}
		printBackup(env, backup)
		env.printf("Loader loaded into %s\n", s.TargetPath())
	case "fabio":
		backup, err := s.FabioMode()
		if err != nil {
			return err
		}
		printBackup(env, backup)
		env.printf("Fabio mode enabled\n")
	case "sync":
		res, err := s.Sync()
		if err != nil {
			return err
		}
		for _, p := range res.Copied {
			env.printf("Copied: %s\n", p)
		}
		env.printf("Sync complete, %d files copied\n", res.Count())
	case "reset":
		if err := wizardReady(env); err != nil {
			return err
		}
		if !f.confirm(env, fmt.Sprintf("Delete %s?", s.TargetPath())) {
			env.printf("Cancelled\n")
			return nil
		}
		if err := s.ResetToDefault(); err != nil {
			return err
		}
		env.printf("Target folder deleted\n")
	case "load-backup":
		if err := wizardReady(env); err != nil {
			return err
		}
		dir := *f.LoadBackup
		if err := s.CheckBackup(dir); err != nil {
			return err
		}
		if !f.confirm(env, "Load backup "+dir+"?") {
			env.printf("Cancelled\n")
			return nil
		}
		if err := s.LoadBackup(dir); err != nil {
			return err
		}
		env.printf("Backup loaded: %s\n", dir)
	case "list-backups":
		backups, err := s.ListBackups()
		if err != nil {
			return err
		}
		if len(backups) == 0 {
			env.printf("No backups found\n")
		}
		for _, b := range backups {
			env.printf("%s\t%s\n", b.Created.Format("2006-01-02 15:04:05"), b.Path)
		}
	case "launch":
		if err := env.Platform.OpenURI(ctx, env.Config.LaunchURI()); err != nil {
			return fmt.Errorf("launch game: %w", err)
		}
		env.printf("Game launched\n")
	}
	return nil
}

// wizardReady refuses early so the user isn't asked to confirm something
// that can't run.
func wizardReady(env *Env) error {
	if state := wizard.CurrentState(env.Fs, env.Config); state != wizard.Complete {
		return fmt.Errorf("%w: %s", swapper.ErrSetupIncomplete, state)
	}
	return nil
}

func printBackup(env *Env, path string) {
	if path != "" {
		env.printf("Backup created: %s\n", path)
	}
}
