package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/appengine-ltd/wildlands/internal/game"
)

// craftHotkeys maps the number row onto the recipe list.
var craftHotkeys = []int32{rl.KeyOne, rl.KeyTwo, rl.KeyThree, rl.KeyFour, rl.KeyFive}

// HotkeysEnabled is false while the command line has focus.
func HotkeysEnabled(uiState *gameUI) bool {
	if uiState == nil {
		return true
	}
	return !uiState.consoleOpen
}

// movementInput reads WASD (and arrows) as a planar direction. North is -Z.
func movementInput() game.Vec3 {
	var dir game.Vec3
	if rl.IsKeyDown(rl.KeyW) || rl.IsKeyDown(rl.KeyUp) {
		dir.Z--
	}
	if rl.IsKeyDown(rl.KeyS) || rl.IsKeyDown(rl.KeyDown) {
		dir.Z++
	}
	if rl.IsKeyDown(rl.KeyA) || rl.IsKeyDown(rl.KeyLeft) {
		dir.X--
	}
	if rl.IsKeyDown(rl.KeyD) || rl.IsKeyDown(rl.KeyRight) {
		dir.X++
	}
	return dir
}

func shiftDown() bool {
	return rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift)
}
