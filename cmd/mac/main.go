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

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/loadermanager/loader-manager/internal/telemetry"
	"github.com/loadermanager/loader-manager/pkg/cli"
	"github.com/loadermanager/loader-manager/pkg/helpers"
	"github.com/loadermanager/loader-manager/pkg/platforms/mac"
	"github.com/loadermanager/loader-manager/pkg/ui/tui"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := run(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func run() error {
	pl := mac.NewPlatform()
	flags := cli.SetupFlags(flag.CommandLine)
	flags.Pre(pl)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if flags.HasAction() {
		cfg, err := cli.Setup(pl, []io.Writer{helpers.ConsoleWriter(os.Stderr, true)})
		if err != nil {
			return err //nolint:wrapcheck // already describes the failed step
		}
		defer telemetry.Close()

		_, err = flags.Post(ctx, cli.NewEnv(pl, cfg))
		return err //nolint:wrapcheck // logged and explained by Post
	}

	// default to showing the TUI, with log lines mirrored into its panel
	logs := tui.NewLogPanel()
	cfg, err := cli.Setup(pl, []io.Writer{helpers.ConsoleWriter(logs, false)})
	if err != nil {
		return err //nolint:wrapcheck // already describes the failed step
	}
	defer telemetry.Close()

	ui := tui.BuildMain(cfg, pl, tui.Options{Logs: logs})
	go func() {
		<-ctx.Done()
		ui.Stop()
	}()

	if err := ui.Run(); err != nil {
		log.Error().Err(err).Msg("error running UI")
		return fmt.Errorf("error running UI: %w", err)
	}
	return nil
}
