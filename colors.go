// Copyright 2025 Naren Yellavula
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type TerminalMode int

const (
	TerminalModeUnknown TerminalMode = iota
	TerminalModeLight
	TerminalModeDark
)

type ColorScheme struct {
	Prompt lipgloss.Color
	Result lipgloss.Color
	Error  lipgloss.Color
	Muted  lipgloss.Color
}

// detectTerminalMode guesses the background from COLORFGBG, TERM_THEME and
// THEME, in that order.
func detectTerminalMode(getenv func(string) string) TerminalMode {
	// COLORFGBG format is typically "foreground;background"
	if colorScheme := getenv("COLORFGBG"); colorScheme != "" {
		parts := strings.Split(colorScheme, ";")
		if len(parts) >= 2 {
			switch parts[len(parts)-1] {
			case "0", "8", "16":
				return TerminalModeDark
			case "7", "15", "255":
				return TerminalModeLight
			}
		}
	}

	for _, name := range []string{"TERM_THEME", "THEME"} {
		theme := strings.ToLower(getenv(name))
		if strings.Contains(theme, "dark") {
			return TerminalModeDark
		} else if strings.Contains(theme, "light") {
			return TerminalModeLight
		}
	}

	return TerminalModeDark
}

func colorSchemeFor(mode TerminalMode) ColorScheme {
	if mode == TerminalModeLight {
		return ColorScheme{
			Prompt: lipgloss.Color("5"), // Dark Magenta
			Result: lipgloss.Color("4"), // Dark Blue for better contrast on white
			Error:  lipgloss.Color("1"),
			Muted:  lipgloss.Color("240"),
		}
	}
	return ColorScheme{
		Prompt: lipgloss.Color("205"),
		Result: lipgloss.Color("39"), // Bright cyan/blue
		Error:  lipgloss.Color("9"),
		Muted:  lipgloss.Color("245"),
	}
}

func currentColorScheme() ColorScheme {
	return colorSchemeFor(detectTerminalMode(os.Getenv))
}
