package gui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/appengine-ltd/wildlands/internal/console"
	"github.com/appengine-ltd/wildlands/internal/game"
	"github.com/appengine-ltd/wildlands/internal/platform/logger"
)

type AppConfig struct {
	Version   string
	Commit    string
	BuildDate string

	Sim     *game.Simulation
	Console *console.Console
	Logger  *logger.Logger
}

type App struct {
	cfg AppConfig
}

func NewApp(cfg AppConfig) *App {
	return &App{cfg: cfg}
}

// Run opens the window and blocks until it is closed. The simulation keeps
// being ticked by whoever owns it; the window only renders and feeds input.
func (a *App) Run() error {
	if a.cfg.Sim == nil {
		return errors.New("gui: no simulation")
	}
	ui := newGameUI(a.cfg)
	return ui.Run()
}

const (
	maxLogLines = 8
	maxInputLen = 120
	defaultZoom = 12
	minZoom     = 4
	maxZoom     = 40
	placeReach  = 2.0
	queueSize   = 16
)

type gameUI struct {
	cfg AppConfig
	sim *game.Simulation
	log *logger.Logger

	width  int32
	height int32
	cam    camera
	view   game.View
	aim    game.Vec3
	near   interaction

	consoleOpen bool
	input       string
	messages    []string
	commands    *commandQueue

	lastTick time.Time
	quit     bool
}

func newGameUI(cfg AppConfig) *gameUI {
	ui := &gameUI{
		cfg:    cfg,
		sim:    cfg.Sim,
		log:    cfg.Logger,
		width:  1366,
		height: 768,
		cam:    camera{Zoom: defaultZoom},
	}
	if cfg.Console != nil {
		ui.commands = newCommandQueue(queueSize)
	}
	ui.lastTick = time.Now()
	return ui
}

func (ui *gameUI) Run() error {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(ui.width, ui.height, "wildlands "+ui.cfg.Version)
	rl.SetExitKey(0)
	rl.SetTargetFPS(60)
	initTypography()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if ui.commands != nil {
		go ui.commands.Run(ctx, ui.cfg.Console)
	}

	for !ui.quit && !rl.WindowShouldClose() {
		now := time.Now()
		delta := now.Sub(ui.lastTick)
		if delta < 0 {
			delta = 0
		}
		ui.lastTick = now

		ui.width = int32(rl.GetScreenWidth())
		ui.height = int32(rl.GetScreenHeight())

		ui.update(delta)

		rl.BeginDrawing()
		rl.ClearBackground(colorBG)
		ui.draw()
		rl.EndDrawing()
	}

	shutdownTypography()
	rl.CloseWindow()
	return nil
}

func (ui *gameUI) update(delta time.Duration) {
	dt := delta.Seconds()
	ui.pollCommands()
	ui.view = ui.sim.View()
	ui.cam.Center = ui.view.PlayerPosition
	ui.cam.Width, ui.cam.Height = ui.width, ui.height
	ui.aim = ui.cam.toWorld(rl.GetMousePosition())
	ui.near = chooseInteraction(ui.view, ui.sim.Tuning())

	ui.stepArrows(dt)

	if ui.consoleOpen {
		ui.updateConsole()
		return
	}
	if HotkeysEnabled(ui) {
		ui.updateHotkeys()
	}
	if ui.view.Phase == game.PhaseRunning {
		if dir := movementInput(); dir != (game.Vec3{}) {
			ui.sim.SetPlayerPosition(stepPlayer(ui.view.PlayerPosition, dir, dt))
		}
		if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
			ui.shoot()
		}
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		ui.cam.Zoom = max(minZoom, min(maxZoom, ui.cam.Zoom+wheel*2))
	}
}

func (ui *gameUI) updateHotkeys() {
	switch {
	case rl.IsKeyPressed(rl.KeyEnter), rl.IsKeyPressed(rl.KeyT):
		if ui.commands != nil {
			ui.consoleOpen = true
			ui.input = ""
		}
	case rl.IsKeyPressed(rl.KeyEscape):
		ui.sim.SetPaused(ui.view.Phase == game.PhaseRunning)
	case rl.IsKeyPressed(rl.KeyR) && ui.view.Phase == game.PhaseDead:
		ui.sim.Reset()
		ui.appendMessage("A new run begins.")
	case rl.IsKeyPressed(rl.KeyE):
		ui.interact()
	case rl.IsKeyPressed(rl.KeyF):
		ui.sim.SetTorchLit(!ui.view.TorchLit)
	case rl.IsKeyPressed(rl.KeyG):
		ui.sim.DeployCampfire(ui.placementPoint())
	case rl.IsKeyPressed(rl.KeyB) && !shiftDown():
		ui.sim.BuildShelter(ui.placementPoint())
	case rl.IsKeyPressed(rl.KeyB) && shiftDown():
		if sh, d, ok := ui.view.NearestShelter(ui.view.PlayerPosition); ok && d <= ui.sim.Tuning().ShelterRadius {
			ui.sim.UpgradeShelter(sh.ID)
		}
	case rl.IsKeyPressed(rl.KeyQ):
		ui.enqueue("eat")
	case rl.IsKeyPressed(rl.KeyX):
		ui.enqueue("drink")
	}

	recipes := game.Recipes()
	for i, key := range craftHotkeys {
		if i < len(recipes) && rl.IsKeyPressed(key) {
			ui.sim.Craft(recipes[i].ID)
		}
	}
}

func (ui *gameUI) updateConsole() {
	captureTextInput(&ui.input, maxInputLen)
	if rl.IsKeyPressed(rl.KeyEscape) {
		ui.consoleOpen = false
		return
	}
	if rl.IsKeyPressed(rl.KeyEnter) {
		line := strings.TrimSpace(ui.input)
		ui.consoleOpen = false
		ui.input = ""
		if line != "" {
			ui.appendMessage("> " + line)
			ui.enqueue(line)
		}
	}
}

func (ui *gameUI) enqueue(line string) {
	if !ui.commands.Enqueue(line) {
		ui.log.Warnf("gui command dropped: %q", line)
		ui.appendMessage("Busy, try again.")
	}
}

func (ui *gameUI) pollCommands() {
	for {
		res, ok := ui.commands.Poll()
		if !ok {
			return
		}
		for _, line := range strings.Split(res.Message, "\n") {
			if strings.TrimSpace(line) != "" {
				ui.appendMessage(line)
			}
		}
	}
}

func (ui *gameUI) appendMessage(message string) {
	ui.messages = append(ui.messages, message)
	if len(ui.messages) > maxLogLines {
		ui.messages = ui.messages[len(ui.messages)-maxLogLines:]
	}
}

func (ui *gameUI) interact() {
	switch ui.near.Kind {
	case interactHarvest:
		ui.sim.Harvest(ui.near.Resource, ui.near.TargetID)
	case interactCampfire:
		ui.sim.CookBest()
	case interactShelter:
		if hasCookable(ui.view) {
			ui.sim.CookBest()
			return
		}
		ui.sim.Sleep()
	}
}

func (ui *gameUI) shoot() {
	from := ui.view.PlayerPosition.Add(game.Vec3{Y: eyeHeight})
	vel := aimVelocity(from, ui.aim, arrowSpeed)
	ui.sim.ShootArrow(from, vel, arrowRotation(vel))
}

// stepArrows owns flight: the simulation only stores where arrows are.
func (ui *gameUI) stepArrows(dt float64) {
	if dt <= 0 || ui.view.Phase != game.PhaseRunning {
		return
	}
	for _, p := range ui.view.Projectiles {
		if p.Stuck {
			continue
		}
		step := stepArrow(ui.view, p, dt)
		switch step.Outcome {
		case flightAnimal:
			if ui.sim.ArrowHit(p.ID, step.Position, step.Rotation, step.TargetID) {
				ui.appendMessage(fmt.Sprintf("Clean kill (%s).", step.TargetID))
			}
		case flightTree:
			ui.sim.StickArrow(p.ID, step.Position, step.Rotation, step.TargetID)
		case flightGround:
			ui.sim.StickArrow(p.ID, step.Position, step.Rotation, "")
		default:
			ui.sim.MoveProjectile(p.ID, step.Position, step.Velocity, step.Rotation)
		}
	}
}

// placementPoint is a short step from the player toward the cursor.
func (ui *gameUI) placementPoint() game.Vec3 {
	pos := ui.view.PlayerPosition
	dir := game.HeadingTo(pos, ui.aim)
	if dir == (game.Vec3{}) {
		dir = game.Vec3{Z: -1}
	}
	return game.Vec3{X: pos.X + dir.X*placeReach, Z: pos.Z + dir.Z*placeReach}
}

func (ui *gameUI) draw() {
	drawWorld(ui.cam, ui.view, ui.aim)
	ui.drawHUD()
}
