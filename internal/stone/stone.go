// Package stone provides the draggable stone entity shared by every mode.
package stone

import (
	"math"

	"github.com/google/uuid"

	"github.com/talgya/stone-garden/internal/geom"
)

// Kind discriminates regular stones from gravity wells in the sandbox.
type Kind uint8

const (
	KindRegular Kind = iota
	KindGravityWell
)

const (
	// MinMass is the floor applied to every stone's mass.
	MinMass = 0.1
	// DefaultMass is used when a caller does not care about weight.
	DefaultMass = 1.0

	// easeRate is the base follow speed toward the target position, in
	// fraction-per-second for a stone of mass 1.
	easeRate = 10.0

	// baseRadius scales the mass→radius curve.
	baseRadius = 18.0
)

// Stone is the one first-class simulated object. Modes own their stones
// exclusively; a stone is never shared between two mode instances.
type Stone struct {
	ID string

	Pos    geom.Vec
	Target geom.Vec
	Vel    geom.Vec

	Mass   float64
	Radius float64

	Color ColorID
	// Label is an optional small integer: piece count in the gravity
	// sandbox, pattern value elsewhere. Zero means unlabeled.
	Label int
	Kind  Kind

	Dragging bool
	Locked   bool

	// Structure back-references, set by the structures mode. Zero
	// StructureID means the stone is loose.
	StructureID    int
	StructureIndex int
}

// New creates a regular stone at (x, y) with the given mass. Mass is clamped
// to MinMass and the radius is derived from it.
func New(x, y, mass float64) *Stone {
	if mass < MinMass {
		mass = MinMass
	}
	return &Stone{
		ID:     uuid.NewString(),
		Pos:    geom.V(x, y),
		Target: geom.V(x, y),
		Mass:   mass,
		Radius: RadiusForMass(mass),
		Color:  colorForMass(mass),
	}
}

// NewGravityWell creates a gravity-well stone at (x, y).
func NewGravityWell(x, y, mass float64) *Stone {
	s := New(x, y, mass)
	s.Kind = KindGravityWell
	s.Color = ColorWell
	return s
}

// RadiusForMass maps mass to a draw/collision radius. Sqrt keeps heavy
// stones from dwarfing the canvas.
func RadiusForMass(mass float64) float64 {
	if mass < MinMass {
		mass = MinMass
	}
	return baseRadius * math.Sqrt(mass)
}

// DragFactor is the inverse-mass coefficient that makes heavy stones feel
// sluggish when following the pointer or a programmed target.
func (s *Stone) DragFactor() float64 {
	return 1.0 / s.Mass
}

// Step advances the stone one frame: eased follow toward Target at a rate
// inversely proportional to mass, plus plain velocity integration when a
// mode has given the stone a velocity. The ease fraction is clamped so the
// position converges monotonically and never overshoots.
func (s *Stone) Step(dt float64) {
	t := geom.Clamp(easeRate*s.DragFactor()*dt, 0, 1)
	s.Pos = s.Pos.Lerp(s.Target, t)

	if s.Vel.X != 0 || s.Vel.Y != 0 {
		s.Pos = s.Pos.Add(s.Vel.Scale(dt))
		s.Target = s.Pos
	}
}

// StartDrag begins a drag session. Locked stones refuse and report false;
// the caller must not enter a dragging state in that case.
func (s *Stone) StartDrag() bool {
	if s.Locked {
		return false
	}
	s.Dragging = true
	return true
}

// StopDrag always succeeds.
func (s *Stone) StopDrag() {
	s.Dragging = false
}

// SetPosition snaps both the current and target position. Used while a
// stone is under the pointer so it never lags behind it.
func (s *Stone) SetPosition(x, y float64) {
	s.Pos = geom.V(x, y)
	s.Target = s.Pos
}

// SetTarget changes only the eased destination, for programmatic
// move-to-slot animations.
func (s *Stone) SetTarget(x, y float64) {
	s.Target = geom.V(x, y)
}

// Contains reports whether the point lies inside the stone's circle.
func (s *Stone) Contains(x, y float64) bool {
	return s.Pos.DistanceSq(geom.V(x, y)) <= s.Radius*s.Radius
}

// ClearStructure detaches the stone from any structure it belongs to.
func (s *Stone) ClearStructure() {
	s.StructureID = 0
	s.StructureIndex = 0
}
