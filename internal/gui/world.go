package gui

import (
	"math"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/appengine-ltd/wildlands/internal/game"
)

// camera maps the X/Z ground plane onto the screen, centred on the player.
// Zoom is pixels per world unit; screen-down is +Z (south).
type camera struct {
	Center game.Vec3
	Zoom   float32
	Width  int32
	Height int32
}

func (c camera) toScreen(p game.Vec3) rl.Vector2 {
	return rl.Vector2{
		X: float32(c.Width)/2 + float32(p.X-c.Center.X)*c.Zoom,
		Y: float32(c.Height)/2 + float32(p.Z-c.Center.Z)*c.Zoom,
	}
}

func (c camera) toWorld(s rl.Vector2) game.Vec3 {
	if c.Zoom == 0 {
		return c.Center
	}
	return game.Vec3{
		X: c.Center.X + float64((s.X-float32(c.Width)/2)/c.Zoom),
		Z: c.Center.Z + float64((s.Y-float32(c.Height)/2)/c.Zoom),
	}
}

func (c camera) scale(units float64) float32 {
	return float32(units) * c.Zoom
}

const bloodFade = 1500 * time.Millisecond

func drawWorld(cam camera, v game.View, aim game.Vec3) {
	ground, ok := groundColors[v.Weather]
	if !ok {
		ground = groundColors[game.WeatherSunny]
	}
	rl.DrawRectangle(0, 0, cam.Width, cam.Height, ground)
	drawWorldEdge(cam)

	now := time.Now()
	for _, b := range v.BloodEffects {
		age := now.Sub(b.SpawnedAt)
		alpha := float32(1) - float32(age)/float32(bloodFade)
		if alpha > 0 {
			rl.DrawCircleV(cam.toScreen(b.Position), cam.scale(0.6), rl.Fade(bloodColor, alpha))
		}
	}
	for _, r := range v.Resources.Bushes {
		drawResource(cam, r, bushColor, 0.7)
	}
	for _, r := range v.Resources.Rocks {
		drawResource(cam, r, rockColor, 0.8)
	}
	for _, d := range v.DroppedItems {
		rl.DrawCircleV(cam.toScreen(d.Position), cam.scale(0.3), dropColor)
	}
	for _, sh := range v.Shelters {
		size := cam.scale(1.2 + 0.6*float64(sh.Level))
		at := cam.toScreen(sh.Position)
		rl.DrawRectangleV(rl.Vector2{X: at.X - size/2, Y: at.Y - size/2}, rl.Vector2{X: size, Y: size}, shelterColor)
		drawText(sh.Level.String(), int32(at.X-size/2), int32(at.Y+size/2)+2, typeScale.Small, colorText)
	}
	for _, p := range v.PlacedItems {
		drawPlaced(cam, p)
	}
	for _, a := range v.Wildlife {
		clr, ok := speciesColors[a.Species]
		if !ok {
			clr = colorMuted
		}
		radius := 0.5
		if a.Species == game.SpeciesDeer {
			radius = 0.9
		}
		rl.DrawCircleV(cam.toScreen(a.Position), cam.scale(radius), clr)
	}
	for _, r := range v.Resources.Trees {
		clr := treeColor
		if r.Variant == game.TreePine {
			clr = pineColor
		}
		scale := r.Variation.Scale
		if scale <= 0 {
			scale = 1
		}
		drawResource(cam, r, clr, 1.4*scale)
	}
	for _, p := range v.Projectiles {
		drawArrow(cam, p)
	}
	drawPlayer(cam, v, aim)
	if v.IsNight() {
		rl.DrawRectangle(0, 0, cam.Width, cam.Height, rl.Fade(rl.Black, 0.45))
		if v.TorchLit {
			rl.DrawCircleV(cam.toScreen(v.PlayerPosition), cam.scale(6), torchGlowColor)
		}
	}
}

func drawWorldEdge(cam camera) {
	tl := cam.toScreen(game.Vec3{X: -worldEdge, Z: -worldEdge})
	br := cam.toScreen(game.Vec3{X: worldEdge, Z: worldEdge})
	rl.DrawRectangleLinesEx(rl.NewRectangle(tl.X, tl.Y, br.X-tl.X, br.Y-tl.Y), 2, rl.Fade(colorBorder, 0.8))
}

// drawResource shades the node by how much durability is left.
func drawResource(cam camera, r game.Resource, clr rl.Color, radius float64) {
	at := cam.toScreen(r.Position)
	rl.DrawCircleV(at, cam.scale(radius), clr)
	if r.Durability < 100 {
		frac := float32(math.Max(0, r.Durability) / 100)
		rl.DrawRing(at, cam.scale(radius)+1, cam.scale(radius)+3, -90, -90+360*frac, 24, colorWarn)
	}
}

func drawPlaced(cam camera, p game.PlacedItem) {
	at := cam.toScreen(p.Position)
	switch p.Kind {
	case game.PlacedCampfire:
		if !p.Active {
			rl.DrawCircleV(at, cam.scale(0.7), ashColor)
			return
		}
		glow := float32(0.15 + 0.25*p.Fuel/math.Max(1, p.MaxFuel))
		rl.DrawCircleV(at, cam.scale(4), rl.Fade(fireColor, glow))
		rl.DrawCircleV(at, cam.scale(0.7), fireColor)
	case game.PlacedTorchStick:
		rl.DrawCircleV(at, cam.scale(0.25), arrowColor)
		rl.DrawCircleV(at, cam.scale(2.5), rl.Fade(fireColor, 0.2))
	}
}

func drawArrow(cam camera, p game.Projectile) {
	yaw := p.Rotation.Y
	dir := game.Vec3{X: math.Sin(yaw), Z: math.Cos(yaw)}
	tip := p.Position
	tail := tip.Sub(dir.Scale(0.8))
	clr := arrowColor
	if p.Stuck {
		clr = rl.Fade(arrowColor, 0.7)
	}
	rl.DrawLineEx(cam.toScreen(tail), cam.toScreen(tip), 2, clr)
}

func drawPlayer(cam camera, v game.View, aim game.Vec3) {
	at := cam.toScreen(v.PlayerPosition)
	if v.Phase == game.PhaseRunning {
		rl.DrawLineEx(at, cam.toScreen(aim), 1, rl.Fade(colorText, 0.25))
	}
	clr := playerColor
	if v.Phase == game.PhaseDead {
		clr = colorDanger
	}
	rl.DrawCircleV(at, cam.scale(0.6), clr)
	rl.DrawCircleLines(int32(at.X), int32(at.Y), cam.scale(0.6), colorBG)
}
