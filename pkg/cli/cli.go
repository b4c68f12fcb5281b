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
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/loadermanager/loader-manager/internal/telemetry"
	"github.com/loadermanager/loader-manager/pkg/config"
	"github.com/loadermanager/loader-manager/pkg/helpers"
	"github.com/loadermanager/loader-manager/pkg/platforms"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

type Flags struct {
	set         *flag.FlagSet
	Version     *bool
	Backup      *bool
	LoadLoader  *bool
	Fabio       *bool
	Sync        *bool
	Reset       *bool
	LoadBackup  *string
	ListBackups *bool
	Launch      *bool
	SetGame     *string
	SetBase     *string
	Yes         *bool
}

// SetupFlags defines all common CLI flags between platforms on fs, which is
// normally flag.CommandLine.
func SetupFlags(fs *flag.FlagSet) *Flags {
	return &Flags{
		set: fs,
		Version: fs.Bool(
			"version",
			false,
			"print version and exit",
		),
		Backup: fs.Bool(
			"backup",
			false,
			"back up the game target folder",
		),
		LoadLoader: fs.Bool(
			"load-loader",
			false,
			"back up the target and replace it with the loader folder",
		),
		Fabio: fs.Bool(
			"fabio",
			false,
			"back up the target and replace it with the fabio folder",
		),
		Sync: fs.Bool(
			"sync",
			false,
			"copy files changed in the target back into the loader folder",
		),
		Reset: fs.Bool(
			"reset",
			false,
			"delete the target folder",
		),
		LoadBackup: fs.String(
			"load-backup",
			"",
			"replace the target with the contents of a backup folder",
		),
		ListBackups: fs.Bool(
			"list-backups",
			false,
			"list existing backups, newest first",
		),
		Launch: fs.Bool(
			"launch",
			false,
			"launch the game",
		),
		SetGame: fs.String(
			"set-game",
			"",
			"set the game installation folder",
		),
		SetBase: fs.String(
			"set-base",
			"",
			"set the base folder holding loader and backup",
		),
		Yes: fs.Bool(
			"yes",
			false,
			"answer yes to confirmation prompts",
		),
	}
}

func (f *Flags) isFlagPassed(name string) bool {
	found := false
	f.set.Visit(func(fl *flag.Flag) {
		if fl.Name == name {
			found = true
		}
	})
	return found
}

// Parse parses args without acting on any of them.
func (f *Flags) Parse(args []string) error {
	if err := f.set.Parse(args); err != nil {
		return fmt.Errorf("failed to parse flags: %w", err)
	}
	return nil
}

// Pre runs flag parsing and actions any immediate flags that don't
// require environment setup. Add any custom flags before running this.
func (f *Flags) Pre(pl platforms.Platform) {
	if err := f.Parse(os.Args[1:]); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	if *f.Version {
		_, _ = fmt.Printf("%s v%s (%s)\n", config.BaseName, config.AppVersion, pl.ID())
		os.Exit(0)
	}
}

// Setup initializes the user config and logging. Returns a user config object.
func Setup(pl platforms.Platform, writers []io.Writer) (*config.Instance, error) {
	err := helpers.EnsureDirectories(pl)
	if err != nil {
		return nil, fmt.Errorf("error creating directories: %w", err)
	}

	err = helpers.InitLogging(pl, writers)
	if err != nil {
		return nil, fmt.Errorf("error initializing logging: %w", err)
	}

	cfg, err := config.NewConfig(afero.NewOsFs(), helpers.ConfigDir(pl))
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}
	log.Info().Msgf("%s v%s (%s), config: %s", config.BaseName, config.AppVersion, pl.ID(), cfg.Path())

	if cfg.DebugLogging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	if err := telemetry.Setup(cfg, pl.ID()); err != nil {
		log.Warn().Err(err).Msg("failed to initialize error reporting")
	}

	return cfg, nil
}
