package gui

import (
	"fmt"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/appengine-ltd/wildlands/internal/console"
	"github.com/appengine-ltd/wildlands/internal/game"
)

const hudPad = 16

func (ui *gameUI) drawHUD() {
	v := ui.view
	top := rl.NewRectangle(hudPad, hudPad, 430, 150)
	drawPanel(top, "")

	period := "day"
	if v.IsNight() {
		period = "night"
	}
	header := fmt.Sprintf("Day %d  %s (%s)  %s", v.Day, console.Clock(v.GameTime), period, v.Weather)
	drawText(header, int32(top.X)+12, int32(top.Y)+10, typeScale.Header, colorAccent)

	barW := (top.Width - 24 - 20) / 3
	barY := top.Y + 64
	drawStatBar(rl.NewRectangle(top.X+12, barY, barW, 14), "Health", v.Vitals.Health)
	drawStatBar(rl.NewRectangle(top.X+12+(barW+10), barY, barW, 14), "Hunger", v.Vitals.Hunger)
	drawStatBar(rl.NewRectangle(top.X+12+(barW+10)*2, barY, barW, 14), "Thirst", v.Vitals.Thirst)

	status := fmt.Sprintf("%.1f°C", v.Vitals.Temperature)
	if v.IsResting {
		status += "  resting"
	}
	if v.TorchLit {
		status += fmt.Sprintf("  torch %.0f%%", v.TorchFuel*100)
	}
	drawText(status, int32(top.X)+12, int32(barY)+24, typeScale.Body, colorText)
	drawText(inventoryLine(v, ui.sim.Capacity()), int32(top.X)+12, int32(barY)+50, typeScale.Small, colorDim)

	ui.drawNotifications(v)
	ui.drawLog()
	ui.drawPrompt()
	drawPhaseOverlay(ui.width, ui.height, v.Phase)
}

func (ui *gameUI) drawNotifications(v game.View) {
	x := ui.width - hudPad - 360
	y := int32(hudPad)
	for _, n := range v.Notifications {
		rect := rl.NewRectangle(float32(x), float32(y), 360, 28)
		rl.DrawRectangleRounded(rect, 0.3, 6, rl.Fade(colorPanel, 0.85))
		drawText(n.Message, x+10, y+6, typeScale.Small, severityColor(n.Severity))
		y += 34
	}
}

func (ui *gameUI) drawLog() {
	lineH := typeScale.Small + 6
	y := ui.height - hudPad - 70 - int32(len(ui.messages))*lineH
	for _, line := range ui.messages {
		for _, wrapped := range wrapText(line, typeScale.Small, 560) {
			drawText(wrapped, hudPad, y, typeScale.Small, colorText)
			y += lineH
		}
	}
}

func (ui *gameUI) drawPrompt() {
	bottom := rl.NewRectangle(hudPad, float32(ui.height-hudPad-56), float32(ui.width-hudPad*2), 56)
	drawPanel(bottom, "")
	if ui.consoleOpen {
		drawText("> "+ui.input+"_", int32(bottom.X)+12, int32(bottom.Y)+16, typeScale.Body, colorAccent)
		return
	}
	hint := "WASD move  click shoot  E use  F torch  G campfire  B tent  Shift+B upgrade  1-5 craft  Q eat  X drink  Enter command  Esc pause"
	if label := ui.near.label(); label != "" {
		hint = label + "   |   " + hint
	}
	drawText(hint, int32(bottom.X)+12, int32(bottom.Y)+18, typeScale.Small, colorDim)
}

func drawPhaseOverlay(width, height int32, phase game.Phase) {
	var title, sub string
	switch phase {
	case game.PhasePaused:
		title, sub = "PAUSED", "Esc to resume"
	case game.PhaseSleeping:
		title, sub = "SLEEPING", "..."
	case game.PhaseDead:
		title, sub = "YOU DIED", "R to start over, or load from the command line"
	default:
		return
	}
	rl.DrawRectangle(0, 0, width, height, rl.Fade(rl.Black, 0.55))
	tw := measureText(title, typeScale.Title)
	drawText(title, (width-tw)/2, height/2-40, typeScale.Title, colorText)
	sw := measureText(sub, typeScale.Body)
	drawText(sub, (width-sw)/2, height/2, typeScale.Body, colorDim)
}

func inventoryLine(v game.View, capacity int) string {
	ids := v.Inventory.SortedIDs()
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, fmt.Sprintf("%s %d", strings.ReplaceAll(id, "_", " "), v.Inventory.Count(id)))
	}
	return fmt.Sprintf("Pack %d/%d: %s", v.Inventory.Units(), capacity, strings.Join(parts, ", "))
}
