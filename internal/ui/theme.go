// Package ui provides the CycloDisc desktop adapter: the parameter form,
// live status readout, disc preview and the admin dialogs.
//
// This file defines a custom compact Fyne theme for a dense layout.

package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// CycloDiscTheme wraps the default Fyne theme with compact sizing overrides
// so the whole parameter form fits next to the preview.
type CycloDiscTheme struct {
	base    fyne.Theme
	variant fyne.ThemeVariant
	system  bool
}

// NewCycloDiscTheme creates a theme that follows the system variant.
func NewCycloDiscTheme() *CycloDiscTheme {
	return &CycloDiscTheme{
		base:   theme.DefaultTheme(),
		system: true,
	}
}

// NewCycloDiscThemeWithVariant creates a theme pinned to a light/dark variant.
func NewCycloDiscThemeWithVariant(variant fyne.ThemeVariant) *CycloDiscTheme {
	return &CycloDiscTheme{
		base:    theme.DefaultTheme(),
		variant: variant,
	}
}

// themeForName maps the config value "light", "dark" or "system".
func themeForName(name string) *CycloDiscTheme {
	switch name {
	case "light":
		return NewCycloDiscThemeWithVariant(theme.VariantLight)
	case "dark":
		return NewCycloDiscThemeWithVariant(theme.VariantDark)
	default:
		return NewCycloDiscTheme()
	}
}

// Color delegates to the base theme with the pinned variant, if any.
func (t *CycloDiscTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	if t.system {
		return t.base.Color(name, variant)
	}
	return t.base.Color(name, t.variant)
}

// Font delegates to the base theme.
func (t *CycloDiscTheme) Font(style fyne.TextStyle) fyne.Resource {
	return t.base.Font(style)
}

// Icon delegates to the base theme.
func (t *CycloDiscTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.base.Icon(name)
}

// Size returns compact sizing overrides.
func (t *CycloDiscTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameText:
		return 12
	case theme.SizeNameCaptionText:
		return 9
	case theme.SizeNameHeadingText:
		return 20
	case theme.SizeNameSubHeadingText:
		return 15
	case theme.SizeNamePadding:
		return 3
	case theme.SizeNameInnerPadding:
		return 6
	case theme.SizeNameInlineIcon:
		return 16
	default:
		return t.base.Size(name)
	}
}
