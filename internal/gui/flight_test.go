package gui

import (
	"math"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/appengine-ltd/wildlands/internal/game"
)

func emptyView() game.View {
	return game.View{PlayerPosition: game.Vec3{Y: 2}}
}

func TestStepArrowAppliesGravity(t *testing.T) {
	p := game.Projectile{ID: "a", Position: game.Vec3{Y: 10}, Velocity: game.Vec3{Z: 20}}
	step := stepArrow(emptyView(), p, 0.1)
	if step.Outcome != flightAir {
		t.Fatalf("expected arrow still flying, got %v", step.Outcome)
	}
	if math.Abs(step.Velocity.Y+0.98) > 1e-9 {
		t.Fatalf("expected vy -0.98, got %.4f", step.Velocity.Y)
	}
	if math.Abs(step.Position.Z-2) > 1e-9 || step.Position.Y >= 10 {
		t.Fatalf("unexpected position %+v", step.Position)
	}
}

func TestStepArrowHitsGround(t *testing.T) {
	p := game.Projectile{ID: "a", Position: game.Vec3{Y: 0.05}, Velocity: game.Vec3{X: 5, Y: -5}}
	step := stepArrow(emptyView(), p, 0.1)
	if step.Outcome != flightGround || step.Position.Y != 0 {
		t.Fatalf("expected ground impact at y=0, got %+v", step)
	}
}

func TestStepArrowPrefersAnimalOverTree(t *testing.T) {
	v := emptyView()
	v.Wildlife = []game.Animal{{ID: "deer-1", Species: game.SpeciesDeer, Position: game.Vec3{X: 0, Z: 5}}}
	v.Resources.Trees = []game.Resource{{ID: "tree-1", Position: game.Vec3{X: 0, Z: 5}, Durability: 100}}
	p := game.Projectile{ID: "a", Position: game.Vec3{Y: 0.5, Z: 4}, Velocity: game.Vec3{Z: 10}}

	step := stepArrow(v, p, 0.1)
	if step.Outcome != flightAnimal || step.TargetID != "deer-1" {
		t.Fatalf("expected deer hit, got %+v", step)
	}

	v.Wildlife = nil
	step = stepArrow(v, p, 0.1)
	if step.Outcome != flightTree || step.TargetID != "tree-1" {
		t.Fatalf("expected tree hit, got %+v", step)
	}
}

func TestStepArrowClearsTreeTops(t *testing.T) {
	v := emptyView()
	v.Resources.Trees = []game.Resource{{ID: "tree-1", Position: game.Vec3{Z: 5}, Variation: game.Variation{Height: 3}}}
	p := game.Projectile{ID: "a", Position: game.Vec3{Y: 6, Z: 4}, Velocity: game.Vec3{Z: 10}}
	if step := stepArrow(v, p, 0.1); step.Outcome != flightAir {
		t.Fatalf("expected arrow to pass over a short tree, got %v", step.Outcome)
	}
}

func TestAimVelocityLandsNearTarget(t *testing.T) {
	from := game.Vec3{Y: 1.5}
	target := game.Vec3{X: 12, Z: -16}
	vel := aimVelocity(from, target, arrowSpeed)

	p := game.Projectile{ID: "a", Position: from, Velocity: vel}
	v := emptyView()
	for i := 0; i < 500; i++ {
		step := stepArrow(v, p, 0.01)
		if step.Outcome == flightGround {
			if d := step.Position.PlanarDistance(target); d > 0.5 {
				t.Fatalf("expected landing within 0.5 of target, got %.2f", d)
			}
			return
		}
		p.Position, p.Velocity = step.Position, step.Velocity
	}
	t.Fatalf("arrow never landed")
}

func TestArrowRotationFollowsVelocity(t *testing.T) {
	rot := arrowRotation(game.Vec3{X: 1})
	if math.Abs(rot.Y-math.Pi/2) > 1e-9 || rot.X != 0 {
		t.Fatalf("expected yaw pi/2 and no pitch, got %+v", rot)
	}
	if rot := arrowRotation(game.Vec3{Y: -1, Z: 1}); rot.X <= 0 {
		t.Fatalf("expected nose-down pitch to be positive, got %.3f", rot.X)
	}
}

func TestStepPlayerNormalisesAndClamps(t *testing.T) {
	next := stepPlayer(game.Vec3{Y: 2}, game.Vec3{X: 1, Z: 1}, 1)
	if d := next.PlanarDistance(game.Vec3{}); math.Abs(d-moveSpeed) > 1e-9 {
		t.Fatalf("expected diagonal step of %.1f, got %.4f", moveSpeed, d)
	}
	if next.Y != 2 {
		t.Fatalf("expected height kept")
	}
	edge := stepPlayer(game.Vec3{X: 99}, game.Vec3{X: 1}, 1)
	if edge.X != worldEdge {
		t.Fatalf("expected clamp at %v, got %.2f", worldEdge, edge.X)
	}
	if still := stepPlayer(game.Vec3{X: 3}, game.Vec3{}, 1); still.X != 3 {
		t.Fatalf("expected no movement without input")
	}
}

func TestCameraRoundTrip(t *testing.T) {
	cam := camera{Center: game.Vec3{X: 10, Z: -4}, Zoom: 12, Width: 800, Height: 600}
	at := cam.toScreen(game.Vec3{X: 12, Z: -1})
	if at.X != 424 || at.Y != 336 {
		t.Fatalf("unexpected screen point %+v", at)
	}
	back := cam.toWorld(rl.Vector2{X: 424, Y: 336})
	if math.Abs(back.X-12) > 1e-4 || math.Abs(back.Z+1) > 1e-4 {
		t.Fatalf("unexpected world point %+v", back)
	}
}
