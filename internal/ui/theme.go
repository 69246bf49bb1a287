package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

var (
	colorBackground = color.NRGBA{R: 0x12, G: 0x12, B: 0x12, A: 0xff}
	colorPanel      = color.NRGBA{R: 0x1e, G: 0x1e, B: 0x28, A: 0xff}
	colorButton     = color.NRGBA{R: 0x3a, G: 0x3a, B: 0x3a, A: 0xff}
	colorHover      = color.NRGBA{R: 0x4a, G: 0x4a, B: 0x4a, A: 0xff}
	colorExit       = color.NRGBA{R: 0x3a, G: 0x1a, B: 0x1a, A: 0xff}
	colorText       = color.NRGBA{R: 0xe0, G: 0xe0, B: 0xe0, A: 0xff}
	colorMuted      = color.NRGBA{R: 0xa0, G: 0xa0, B: 0xa0, A: 0xff}
)

// questTheme is the default Fyne theme locked to the dark variant with the
// TheQuest palette on top.
type questTheme struct {
	fyne.Theme
}

func newQuestTheme() fyne.Theme {
	return &questTheme{Theme: theme.DefaultTheme()}
}

func (t *questTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNameBackground:
		return colorBackground
	case theme.ColorNameInputBackground, theme.ColorNameMenuBackground, theme.ColorNameOverlayBackground:
		return colorPanel
	case theme.ColorNameButton:
		return colorButton
	case theme.ColorNameHover:
		return colorHover
	case theme.ColorNameForeground:
		return colorText
	case theme.ColorNamePlaceHolder:
		return colorMuted
	}
	return t.Theme.Color(name, theme.VariantDark)
}
