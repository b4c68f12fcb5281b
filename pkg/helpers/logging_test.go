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
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/loadermanager/loader-manager/pkg/config"
	"github.com/loadermanager/loader-manager/pkg/testing/mocks"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsoleWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := zerolog.New(ConsoleWriter(&buf, false)).With().Timestamp().Caller().Logger()
	logger.Info().Msg("backup created")

	line := buf.String()
	assert.Regexp(t, `^\[\d{2}:\d{2}:\d{2}\] INF backup created`, line)
	assert.NotContains(t, line, "logging_test.go", "caller is left out of console lines")
}

// Not parallel: InitLogging replaces the global logger.
func TestInitLogging(t *testing.T) {
	root := t.TempDir()
	pl := mocks.NewMockPlatform()
	pl.SetupBasicMock(root)

	var extra bytes.Buffer
	require.NoError(t, InitLogging(pl, []io.Writer{&extra}))
	t.Cleanup(func() {
		_ = InitLogging(pl, nil)
	})

	logger := zerolog.New(LogWriter())
	logger.Warn().Msg("sync finished")

	assert.Contains(t, extra.String(), "sync finished")
	logPath := filepath.Join(root, "tmp", config.LogFile)
	assert.Equal(t, logPath, LogFilePath(pl))
	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "sync finished")
}
