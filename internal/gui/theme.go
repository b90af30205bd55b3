package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/appengine-ltd/wildlands/internal/game"
)

// Field-log palette.
var (
	colorBG      = rl.NewColor(0x14, 0x1A, 0x1F, 255)
	colorPanel   = rl.NewColor(0x1C, 0x23, 0x29, 255)
	colorBorder  = rl.NewColor(0x2E, 0x3A, 0x40, 255)
	colorText    = rl.NewColor(0xE8, 0xE2, 0xD8, 255)
	colorDim     = rl.NewColor(0xA6, 0xAD, 0xB1, 255)
	colorMuted   = rl.NewColor(0x7D, 0x85, 0x8A, 255)
	colorAccent  = rl.NewColor(0xD4, 0x6A, 0x1E, 255)
	colorForest  = rl.NewColor(0x2F, 0x5D, 0x42, 255)
	colorWarn    = rl.NewColor(0xC1, 0x8B, 0x2F, 255)
	colorDanger  = rl.NewColor(0xB8, 0x4A, 0x3A, 255)
	colorSuccess = rl.NewColor(60, 236, 136, 230)
)

var (
	groundColors = map[game.Weather]rl.Color{
		game.WeatherSunny: rl.NewColor(0x4A, 0x6B, 0x3A, 255),
		game.WeatherRainy: rl.NewColor(0x3A, 0x52, 0x34, 255),
		game.WeatherSnowy: rl.NewColor(0xC8, 0xCF, 0xD4, 255),
	}
	treeColor      = rl.NewColor(0x2F, 0x5D, 0x42, 255)
	pineColor      = rl.NewColor(0x1F, 0x45, 0x33, 255)
	rockColor      = rl.NewColor(0x80, 0x84, 0x88, 255)
	bushColor      = rl.NewColor(0x5C, 0x8A, 0x3C, 255)
	fireColor      = rl.NewColor(0xF2, 0x8C, 0x28, 255)
	ashColor       = rl.NewColor(0x55, 0x50, 0x4A, 255)
	shelterColor   = rl.NewColor(0x8B, 0x5E, 0x3C, 255)
	arrowColor     = rl.NewColor(0xE0, 0xC8, 0x9A, 255)
	bloodColor     = rl.NewColor(0x9E, 0x1B, 0x1B, 200)
	dropColor      = rl.NewColor(0xE8, 0xC5, 0x47, 255)
	playerColor    = rl.NewColor(0xE8, 0xE2, 0xD8, 255)
	torchGlowColor = rl.NewColor(0xFF, 0xC8, 0x6A, 60)
)

var speciesColors = map[game.Species]rl.Color{
	game.SpeciesDeer:      rl.NewColor(0x9C, 0x6B, 0x3E, 255),
	game.SpeciesRabbit:    rl.NewColor(0xD9, 0xD2, 0xC5, 255),
	game.SpeciesBird:      rl.NewColor(0x3B, 0x3B, 0x45, 255),
	game.SpeciesPartridge: rl.NewColor(0xA8, 0x7F, 0x52, 255),
}

func severityColor(s game.Severity) rl.Color {
	switch s {
	case game.SeveritySuccess:
		return colorSuccess
	case game.SeverityWarning:
		return colorWarn
	default:
		return colorText
	}
}

func drawPanel(rect rl.Rectangle, title string) {
	rl.DrawRectangleRounded(rect, 0.04, 8, rl.Fade(colorPanel, 0.9))
	rl.DrawRectangleRoundedLinesEx(rect, 0.04, 8, 2, colorBorder)
	if title != "" {
		drawText(title, int32(rect.X)+12, int32(rect.Y)+8, typeScale.Header, colorAccent)
	}
}

func drawStatBar(rect rl.Rectangle, label string, value float64) {
	v := clampInt(int(value+0.5), 0, 100)
	fillWidth := (rect.Width - 2) * float32(v) / 100
	drawText(fmt.Sprintf("%s %d", label, v), int32(rect.X)+2, int32(rect.Y)-18, typeScale.Small, colorText)
	rl.DrawRectangleRec(rect, rl.NewColor(8, 16, 12, 255))
	if fillWidth > 0 {
		fill := rl.NewRectangle(rect.X+1, rect.Y+1, fillWidth, rect.Height-2)
		rl.DrawRectangleRec(fill, barColor(v))
	}
	rl.DrawRectangleLinesEx(rect, 1.4, rl.Fade(colorBorder, 0.75))
}

func barColor(value int) rl.Color {
	switch {
	case value >= 70:
		return colorSuccess
	case value >= 40:
		return rl.NewColor(255, 190, 92, 235)
	default:
		return rl.NewColor(242, 84, 84, 230)
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
