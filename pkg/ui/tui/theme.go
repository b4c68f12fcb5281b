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
	"github.com/gdamore/tcell/v2"
	"github.com/loadermanager/loader-manager/pkg/config"
	"github.com/loadermanager/loader-manager/pkg/helpers/syncutil"
	"github.com/rivo/tview"
)

// Theme defines all colors used in the TUI.
type Theme struct {
	Name                     string
	DisplayName              string
	AccentColorName          string
	ErrorColorName           string
	SuccessColorName         string
	PrimitiveBackgroundColor tcell.Color
	ContrastBackgroundColor  tcell.Color
	BorderColor              tcell.Color
	TitleColor               tcell.Color
	PrimaryTextColor         tcell.Color
	SecondaryTextColor       tcell.Color
	InverseTextColor         tcell.Color
	FieldBackgroundColor     tcell.Color
}

// ThemeDark matches the original dark grey window with blurple accents.
var ThemeDark = Theme{
	Name:        config.ThemeDark,
	DisplayName: "Dark",

	PrimitiveBackgroundColor: tcell.NewHexColor(0x2F3136),
	ContrastBackgroundColor:  tcell.NewHexColor(0x5865F2),
	BorderColor:              tcell.NewHexColor(0x5865F2),
	TitleColor:               tcell.ColorWhite,
	PrimaryTextColor:         tcell.ColorWhite,
	SecondaryTextColor:       tcell.NewHexColor(0xB9BBBE),
	InverseTextColor:         tcell.NewHexColor(0x2F3136),
	FieldBackgroundColor:     tcell.NewHexColor(0x40444B),

	AccentColorName:  "#5865f2",
	ErrorColorName:   "#ed4245",
	SuccessColorName: "#3ba55d",
}

var ThemeLight = Theme{
	Name:        config.ThemeLight,
	DisplayName: "Light",

	PrimitiveBackgroundColor: tcell.NewHexColor(0xF2F3F5),
	ContrastBackgroundColor:  tcell.NewHexColor(0x5865F2),
	BorderColor:              tcell.NewHexColor(0x4752C4),
	TitleColor:               tcell.NewHexColor(0x060607),
	PrimaryTextColor:         tcell.NewHexColor(0x060607),
	SecondaryTextColor:       tcell.NewHexColor(0x4F5660),
	InverseTextColor:         tcell.ColorWhite,
	FieldBackgroundColor:     tcell.NewHexColor(0xE3E5E8),

	AccentColorName:  "#4752c4",
	ErrorColorName:   "#d83c3e",
	SuccessColorName: "#2d7d46",
}

// AvailableThemes maps the config theme value to its palette.
var AvailableThemes = map[string]*Theme{
	config.ThemeDark:  &ThemeDark,
	config.ThemeLight: &ThemeLight,
}

var (
	currentTheme = &ThemeDark
	themeMu      syncutil.RWMutex
)

// CurrentTheme returns the currently active theme.
func CurrentTheme() *Theme {
	themeMu.RLock()
	defer themeMu.RUnlock()
	return currentTheme
}

// SetCurrentTheme sets the current theme by name.
// Returns false if the theme name is not found.
func SetCurrentTheme(name string) bool {
	theme, ok := AvailableThemes[name]
	if !ok {
		return false
	}
	themeMu.Lock()
	currentTheme = theme
	themeMu.Unlock()
	ApplyTheme(theme)
	return true
}

// ApplyTheme applies the given theme to tview's global styles. Only
// primitives created afterwards pick it up.
func ApplyTheme(theme *Theme) {
	tview.Styles.PrimitiveBackgroundColor = theme.PrimitiveBackgroundColor
	tview.Styles.ContrastBackgroundColor = theme.ContrastBackgroundColor
	tview.Styles.MoreContrastBackgroundColor = theme.FieldBackgroundColor
	tview.Styles.BorderColor = theme.BorderColor
	tview.Styles.TitleColor = theme.TitleColor
	tview.Styles.PrimaryTextColor = theme.PrimaryTextColor
	tview.Styles.SecondaryTextColor = theme.SecondaryTextColor
	tview.Styles.TertiaryTextColor = theme.SecondaryTextColor
	tview.Styles.InverseTextColor = theme.InverseTextColor
	tview.Styles.ContrastSecondaryTextColor = theme.SecondaryTextColor
}
