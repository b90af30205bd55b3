package gui

import (
	"math"

	"github.com/appengine-ltd/wildlands/internal/game"
)

const (
	gravity         = 9.8
	arrowSpeed      = 28.0
	maxLoft         = 12.0
	animalHitRadius = 1.0
	animalHitHeight = 0.5
	treeHitRadius   = 0.6
	defaultTreeTall = 4.0
	moveSpeed       = 6.0
	worldEdge       = 100.0
	eyeHeight       = 1.5
)

type flightOutcome int

const (
	flightAir flightOutcome = iota
	flightGround
	flightTree
	flightAnimal
)

type flightStep struct {
	Outcome  flightOutcome
	Position game.Vec3
	Velocity game.Vec3
	Rotation game.Vec3
	TargetID string
}

// stepArrow integrates one flying arrow over dt and reports the first thing
// it runs into. Animals are checked before trees, trees before the ground.
func stepArrow(v game.View, p game.Projectile, dt float64) flightStep {
	vel := p.Velocity.Add(game.Vec3{Y: -gravity * dt})
	pos := p.Position.Add(vel.Scale(dt))
	step := flightStep{Outcome: flightAir, Position: pos, Velocity: vel, Rotation: arrowRotation(vel)}

	for _, a := range v.Wildlife {
		if pos.Distance(a.Position.Add(game.Vec3{Y: animalHitHeight})) <= animalHitRadius {
			step.Outcome, step.TargetID = flightAnimal, a.ID
			return step
		}
	}
	for _, tree := range v.Resources.Trees {
		if pos.PlanarDistance(tree.Position) <= treeHitRadius && pos.Y <= treeHeight(tree) {
			step.Outcome, step.TargetID = flightTree, tree.ID
			return step
		}
	}
	if pos.Y <= 0 {
		step.Outcome = flightGround
		step.Position.Y = 0
	}
	return step
}

func treeHeight(r game.Resource) float64 {
	h := r.Variation.Height
	if h <= 0 {
		h = defaultTreeTall
	}
	if r.Variation.Scale > 0 {
		h *= r.Variation.Scale
	}
	return h
}

// arrowRotation points the shaft along its velocity: yaw in Y, pitch in X.
func arrowRotation(vel game.Vec3) game.Vec3 {
	return game.Vec3{
		X: -math.Atan2(vel.Y, math.Hypot(vel.X, vel.Z)),
		Y: math.Atan2(vel.X, vel.Z),
	}
}

// aimVelocity lobs an arrow from from so that it comes down on target.
func aimVelocity(from, target game.Vec3, speed float64) game.Vec3 {
	dir := game.Vec3{X: target.X - from.X, Z: target.Z - from.Z}
	dist := math.Hypot(dir.X, dir.Z)
	if dist < 1e-6 {
		return game.Vec3{Y: -speed}
	}
	flight := dist / speed
	vy := (target.Y-from.Y)/flight + 0.5*gravity*flight
	vy = math.Max(-maxLoft, math.Min(maxLoft, vy))
	return game.Vec3{X: dir.X / dist * speed, Y: vy, Z: dir.Z / dist * speed}
}

// stepPlayer walks pos along the planar direction dir for dt seconds,
// keeping the player inside the world.
func stepPlayer(pos, dir game.Vec3, dt float64) game.Vec3 {
	n := math.Hypot(dir.X, dir.Z)
	if n == 0 || dt <= 0 {
		return pos
	}
	next := game.Vec3{
		X: pos.X + dir.X/n*moveSpeed*dt,
		Y: pos.Y,
		Z: pos.Z + dir.Z/n*moveSpeed*dt,
	}
	next.X = math.Max(-worldEdge, math.Min(worldEdge, next.X))
	next.Z = math.Max(-worldEdge, math.Min(worldEdge, next.Z))
	return next
}
