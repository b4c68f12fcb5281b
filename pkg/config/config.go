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

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/loadermanager/loader-manager/pkg/helpers/syncutil"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

const (
	CfgEnv    = "LOADERMGR_CFG"
	ThemeDark = "dark"
	// ThemeLight is the alternative palette toggled from the settings page.
	ThemeLight = "light"
)

// Values is the persisted configuration. Every path key is optional; an
// empty value means "not configured" and is never written back to disk.
type Values struct {
	GamePath     string `json:"game_path,omitempty" toml:"game_path,omitempty"`
	BaseDir      string `json:"base_dir,omitempty" toml:"base_dir,omitempty"`
	LoaderPath   string `json:"loader_path,omitempty" toml:"loader_path,omitempty"`
	BackupDir    string `json:"backup_dir,omitempty" toml:"backup_dir,omitempty"`
	FabioPath    string `json:"fabio_path,omitempty" toml:"fabio_path,omitempty"`
	Theme        string `json:"theme,omitempty" toml:"theme,omitempty" validate:"omitempty,oneof=dark light"`
	TargetSubdir string `json:"target_subdir,omitempty" toml:"target_subdir,omitempty"`
	LaunchURI    string `json:"launch_uri,omitempty" toml:"launch_uri,omitempty" validate:"omitempty,uri"`
	VideoDir     string `json:"video_dir,omitempty" toml:"video_dir,omitempty"`
	VideoPlayer  string `json:"video_player,omitempty" toml:"video_player,omitempty"`
	SentryDSN    string `json:"sentry_dsn,omitempty" toml:"sentry_dsn,omitempty" validate:"omitempty,url"`
	DeviceID     string `json:"device_id,omitempty" toml:"device_id,omitempty" validate:"omitempty,uuid"`
	DebugLogging bool   `json:"debug_logging,omitempty" toml:"debug_logging,omitempty"`
}

// Instance owns the configuration file. Setters persist immediately, so a
// value read back after a successful Set is always what is on disk.
type Instance struct {
	fs      afero.Fs
	cfgPath string
	vals    Values
	mu      syncutil.RWMutex
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the value constraints declared on Values.
func Validate(vals *Values) error {
	if err := validate.Struct(vals); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// NewConfig opens the config file in configDir, or the file named by the
// LOADERMGR_CFG environment variable. A missing file is not created until
// the first setter runs.
func NewConfig(fs afero.Fs, configDir string) (*Instance, error) {
	cfgPath := os.Getenv(CfgEnv)
	log.Debug().Msgf("env config path: %s", cfgPath)

	if cfgPath == "" {
		cfgPath = filepath.Join(configDir, CfgFile)
	}

	cfg := Instance{
		fs:      fs,
		cfgPath: cfgPath,
	}

	err := fs.MkdirAll(filepath.Dir(cfgPath), 0o750)
	if err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	err = cfg.Load()
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// Load replaces the in-memory values with the file contents. A missing file
// loads as empty. An unreadable or malformed file is logged and also loads
// as empty; the next save rewrites it.
func (c *Instance) Load() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cfgPath == "" {
		return errors.New("config path not set")
	}

	data, err := afero.ReadFile(c.fs, c.cfgPath)
	if errors.Is(err, os.ErrNotExist) {
		log.Info().Msgf("no config file at %s, starting empty", c.cfgPath)
		c.vals = Values{}
		return nil
	} else if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var newVals Values
	if isTOML(c.cfgPath) {
		err = toml.Unmarshal(data, &newVals)
	} else {
		err = json.Unmarshal(data, &newVals)
	}
	if err != nil {
		log.Warn().Err(err).Msgf("ignoring unreadable config file: %s", c.cfgPath)
		c.vals = Values{}
		return nil
	}

	if err := Validate(&newVals); err != nil {
		log.Warn().Err(err).Msg("config contains invalid values, dropping them")
		newVals = dropInvalid(newVals)
	}

	c.vals = newVals
	return nil
}

// dropInvalid clears the optional fields that fail validation so one bad
// key doesn't discard the whole file.
//
//nolint:gocritic // values copied on purpose
func dropInvalid(vals Values) Values {
	var verrs validator.ValidationErrors
	if err := validate.Struct(&vals); !errors.As(err, &verrs) {
		return vals
	}
	for _, fe := range verrs {
		switch fe.StructField() {
		case "Theme":
			vals.Theme = ""
		case "LaunchURI":
			vals.LaunchURI = ""
		case "SentryDSN":
			vals.SentryDSN = ""
		case "DeviceID":
			vals.DeviceID = ""
		}
	}
	return vals
}

// Save writes the whole configuration to disk.
func (c *Instance) Save() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.saveLocked()
}

func (c *Instance) saveLocked() error {
	if c.cfgPath == "" {
		return errors.New("config path not set")
	}

	var data []byte
	var err error
	if isTOML(c.cfgPath) {
		data, err = toml.Marshal(&c.vals)
	} else {
		data, err = json.MarshalIndent(&c.vals, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := afero.WriteFile(c.fs, c.cfgPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// update applies fn to a copy of the values, validates and persists it. The
// in-memory values only change when the write succeeds.
func (c *Instance) update(fn func(v *Values)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	prev := c.vals
	next := c.vals
	fn(&next)
	if err := Validate(&next); err != nil {
		return err
	}

	c.vals = next
	if err := c.saveLocked(); err != nil {
		c.vals = prev
		return err
	}
	return nil
}

// Path returns the location of the config file.
func (c *Instance) Path() string {
	return c.cfgPath
}

// Snapshot returns a copy of the current values.
func (c *Instance) Snapshot() Values {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals
}

func (c *Instance) GamePath() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.GamePath
}

func (c *Instance) SetGamePath(path string) error {
	return c.update(func(v *Values) {
		v.GamePath = path
	})
}

func (c *Instance) BaseDir() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.BaseDir
}

func (c *Instance) LoaderPath() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.LoaderPath
}

func (c *Instance) BackupDir() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.BackupDir
}

func (c *Instance) FabioPath() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.FabioPath
}

// BaseLayout is the set of paths derived from a base directory selection.
type BaseLayout struct {
	BaseDir    string
	LoaderPath string
	BackupDir  string
	// FabioPath is empty when the base directory has no fabio folder.
	FabioPath string
}

// SetBaseLayout stores a base directory together with its derived loader,
// backup and fabio paths in a single save.
func (c *Instance) SetBaseLayout(layout BaseLayout) error {
	return c.update(func(v *Values) {
		v.BaseDir = layout.BaseDir
		v.LoaderPath = layout.LoaderPath
		v.BackupDir = layout.BackupDir
		v.FabioPath = layout.FabioPath
	})
}

// TargetSubdir returns the path, relative to the game folder, that swaps
// are applied to.
func (c *Instance) TargetSubdir() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.vals.TargetSubdir != "" {
		return filepath.FromSlash(c.vals.TargetSubdir)
	}
	return filepath.FromSlash(DefaultTargetSubdir)
}

// TargetPath returns the directory inside the game installation that loader
// content is copied into, or an empty string if no game folder is set.
func (c *Instance) TargetPath() string {
	game := c.GamePath()
	if game == "" {
		return ""
	}
	return filepath.Join(game, c.TargetSubdir())
}

func (c *Instance) Theme() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.vals.Theme == "" {
		return ThemeDark
	}
	return c.vals.Theme
}

func (c *Instance) SetTheme(theme string) error {
	return c.update(func(v *Values) {
		v.Theme = strings.ToLower(theme)
	})
}

// ToggleTheme flips between the dark and light palettes and returns the new
// theme.
func (c *Instance) ToggleTheme() (string, error) {
	next := ThemeLight
	if c.Theme() == ThemeLight {
		next = ThemeDark
	}
	if err := c.SetTheme(next); err != nil {
		return c.Theme(), err
	}
	return next, nil
}

func (c *Instance) LaunchURI() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.vals.LaunchURI == "" {
		return DefaultLaunchURI
	}
	return c.vals.LaunchURI
}

// VideoDir returns the folder scanned by the video panel. Relative values
// resolve against the config file's directory.
func (c *Instance) VideoDir() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	dir := c.vals.VideoDir
	if dir == "" {
		dir = DefaultVideoDir
	}
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(filepath.Dir(c.cfgPath), dir)
}

// VideoPlayer returns the player command split into program and arguments.
func (c *Instance) VideoPlayer() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	player := strings.TrimSpace(c.vals.VideoPlayer)
	if player == "" {
		player = DefaultVideoPlayer
	}
	return strings.Fields(player)
}

func (c *Instance) SentryDSN() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.SentryDSN
}

func (c *Instance) DeviceID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.DeviceID
}

func (c *Instance) SetDeviceID(id string) error {
	return c.update(func(v *Values) {
		v.DeviceID = id
	})
}

func (c *Instance) DebugLogging() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.DebugLogging
}

func (c *Instance) SetDebugLogging(enabled bool) error {
	err := c.update(func(v *Values) {
		v.DebugLogging = enabled
	})
	if err != nil {
		return err
	}
	if enabled {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	return nil
}
