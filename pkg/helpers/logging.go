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

package helpers

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/loadermanager/loader-manager/pkg/config"
	"github.com/loadermanager/loader-manager/pkg/platforms"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// ConsoleTimeFormat matches the timestamp prefix shown in the log panel.
const ConsoleTimeFormat = "[15:04:05]"

var logWriter io.Writer = os.Stderr

// LogWriter returns the writer set up by InitLogging, for integrations that
// need to re-wrap the global logger.
func LogWriter() io.Writer {
	return logWriter
}

// LogFilePath returns where the rotating log file is written.
func LogFilePath(pl platforms.Platform) string {
	return filepath.Join(pl.Settings().TempDir, config.LogFile)
}

// InitLogging sends the global logger to the rotating log file plus any
// extra writers (stderr in CLI mode, the log panel in the TUI).
func InitLogging(pl platforms.Platform, writers []io.Writer) error {
	err := os.MkdirAll(pl.Settings().TempDir, 0o750)
	if err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	logWriters := []io.Writer{&lumberjack.Logger{
		Filename:   LogFilePath(pl),
		MaxSize:    1,
		MaxBackups: 2,
	}}

	if len(writers) > 0 {
		logWriters = append(logWriters, writers...)
	}

	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack

	logWriter = io.MultiWriter(logWriters...)
	log.Logger = log.Output(logWriter).
		With().Timestamp().Caller().Logger()

	return nil
}

// ConsoleWriter formats log events as "[HH:MM:SS] LVL message" lines for a
// terminal or the TUI log panel.
func ConsoleWriter(out io.Writer, color bool) io.Writer {
	return zerolog.ConsoleWriter{
		Out:          out,
		NoColor:      !color,
		TimeFormat:   ConsoleTimeFormat,
		PartsExclude: []string{zerolog.CallerFieldName},
	}
}
