// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: theme/palette.go
// Summary: Defines standard color palettes for the theme subsystem.
// Usage: Used by the theme engine to resolve named color references (e.g. "@blue").

package theme

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/gdamore/tcell/v2"
)

// Palette represents a collection of named colors.
type Palette map[string]tcell.Color

// PaletteConfig is the JSON structure for a palette file.
type PaletteConfig map[string]string

// builtinPalettes holds the default palettes shipped with the binary, keyed
// by name. "mocha" is the Catppuccin Mocha palette StandardSemantics is
// written against.
var builtinPalettes = map[string]PaletteConfig{
	"mocha": {
		"rosewater": "#f5e0dc",
		"mauve":     "#cba6f7",
		"lavender":  "#b4befe",
		"red":       "#f38ba8",
		"green":     "#a6e3a1",
		"yellow":    "#f9e2af",
		"base":      "#1e1e2e",
		"mantle":    "#181825",
		"crust":     "#11111b",
		"text":      "#cdd6f4",
		"subtext1":  "#bac2de",
		"overlay0":  "#6c7086",
		"surface0":  "#313244",
		"surface2":  "#585b70",
	},
}

// CurrentPalette holds the currently active palette.
var (
	CurrentPalette = make(Palette)
	paletteMu      sync.RWMutex
)

// LoadPalette loads a palette by name.
// It searches in the user config directory first, then falls back to the
// built-in defaults compiled into the binary.
func LoadPalette(name string) error {
	// 1. Try loading from user config dir
	configDir, err := os.UserConfigDir()
	var data []byte

	if err == nil {
		path := filepath.Join(configDir, "spatialnav", "palettes", name+".json")
		if d, err := os.ReadFile(path); err == nil {
			data = d
		}
	}

	// 2. Fall back to a built-in palette
	if data == nil {
		cfg, ok := builtinPalettes[name]
		if !ok {
			return fmt.Errorf("palette '%s' not found", name)
		}
		return applyPalette(cfg)
	}

	var cfg PaletteConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return err
	}
	return applyPalette(cfg)
}

func applyPalette(cfg PaletteConfig) error {
	newPalette := make(Palette, len(cfg))
	for name, hex := range cfg {
		newPalette[name] = HexColor(hex).ToTcell()
	}

	paletteMu.Lock()
	CurrentPalette = newPalette
	paletteMu.Unlock()
	return nil
}

// ResolveColorName looks up a color name in the current palette.
// Returns tcell.ColorDefault if not found.
func ResolveColorName(name string) tcell.Color {
	paletteMu.RLock()
	defer paletteMu.RUnlock()
	if c, ok := CurrentPalette[name]; ok {
		return c
	}
	return tcell.ColorDefault
}
