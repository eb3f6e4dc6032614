// Drop physics: gravity, landing resolution, bounce/rest, wobble transfer,
// the center-of-mass stability check, and the topple cascade.

package stack

import (
	"math"

	"github.com/talgya/stone-garden/internal/geom"
)

const (
	gravity = 1100.0 // px/s²

	// restSpeed is the residual impact speed below which a stone settles.
	restSpeed = 70.0

	// Restitution grows with impact speed: fast hits bounce harder.
	restitutionBase = 0.18
	restitutionGain = 0.00055

	scatterSpeed = 26.0

	// wobbleRadius is how far a landing shakes already-stacked neighbors.
	wobbleRadius = 110.0
	wobbleFreq   = 11.0
	wobbleDecay  = 2.6
	wobbleScale  = 0.045

	toppleImpulseBase     = 90.0
	toppleImpulsePerLevel = 55.0
	toppleUpward          = 160.0
)

func (m *Mode) stepFalling(dt float64) {
	for _, s := range m.stones {
		b := m.bodies[s]
		if b.state != stateFalling || s.Dragging {
			continue
		}
		s.Vel.Y += gravity * dt
	}
	// Landing is tested after StepAll has integrated positions, next
	// frame's entry point being resolveLandings via Update order below.
	m.resolveLandings(dt)
}

// resolveLandings tests every falling stone against the platform top and
// against the top surface of each stacked stone with overlapping footprint.
func (m *Mode) resolveLandings(dt float64) {
	half := platformWidth / 2
	for _, s := range m.stones {
		b := m.bodies[s]
		if b.state != stateFalling || s.Dragging {
			continue
		}

		// Predict this frame's travel so contact resolves before Step
		// moves the stone through the surface.
		next := s.Pos.Add(s.Vel.Scale(dt))

		// Platform contact.
		onPlatform := next.X > m.platform.X-half && next.X < m.platform.X+half
		if onPlatform && next.Y+s.Radius >= m.platform.Y {
			s.SetPosition(next.X, m.platform.Y-s.Radius)
			m.settleOrBounce(b, geom.V(0, -1))
			continue
		}

		// Stacked-stone contact: the topmost overlapping stone is the
		// support.
		var support *body
		for _, t := range m.stacked {
			if t == b {
				continue
			}
			if next.Distance(t.s.Pos) >= s.Radius+t.s.Radius {
				continue
			}
			if support == nil || t.s.Pos.Y < support.s.Pos.Y {
				support = t
			}
		}
		if support != nil {
			// Push out of penetration along the collision normal, not a
			// hard vertical snap, so glancing landings resolve sideways.
			delta := next.Sub(support.s.Pos)
			dist := delta.Len()
			if dist < 1e-9 {
				continue // coincident centers: skip this frame
			}
			minDist := s.Radius + support.s.Radius
			normal := delta.Scale(1 / dist)
			s.SetPosition(
				support.s.Pos.X+normal.X*minDist,
				support.s.Pos.Y+normal.Y*minDist,
			)
			m.settleOrBounce(b, normal)
			continue
		}

		// Fell past everything: gone once offscreen.
		if s.Pos.Y-s.Radius > m.cfg.Height {
			m.removeBody(b)
		}
	}
}

// settleOrBounce resolves residual impact speed on contact: above the rest
// threshold the stone bounces with speed-dependent restitution and a small
// random scatter; below it the stone stacks and shakes its neighbors.
func (m *Mode) settleOrBounce(b *body, normal geom.Vec) {
	s := b.s
	speed := -s.Vel.Dot(normal) // approach speed along the contact normal
	if speed < 0 {
		speed = 0
	}

	if speed > restSpeed {
		e := restitutionBase + restitutionGain*speed
		// Reflect along the normal.
		vn := s.Vel.Dot(normal)
		s.Vel = s.Vel.Sub(normal.Scale((1 + e) * vn))
		s.Vel.X += (m.cfg.Rand.Float64()*2 - 1) * scatterSpeed
		return
	}

	s.Vel = geom.Vec{}
	b.state = stateStacked
	b.baseX = s.Pos.X
	b.wobbleAmp = 0
	m.stacked = append(m.stacked, b)

	// Residual-speed-proportional wobble to stacked neighbors.
	if speed > 0 {
		for _, t := range m.stacked {
			if t == b {
				continue
			}
			if t.s.Pos.Distance(s.Pos) < wobbleRadius {
				t.wobbleAmp += speed * wobbleScale
				t.wobbleT = 0
			}
		}
	}

	m.checkStability()
}

// stepStacked advances the decaying lateral wobble. Purely visual but
// observable state.
func (m *Mode) stepStacked(dt float64) {
	for _, b := range m.stacked {
		if b.s.Dragging {
			continue
		}
		if b.wobbleAmp < 0.05 {
			b.wobbleAmp = 0
			continue
		}
		b.wobbleT += dt
		b.wobbleAmp *= math.Exp(-wobbleDecay * dt)
		x := b.baseX + b.wobbleAmp*math.Sin(b.wobbleT*wobbleFreq)
		b.s.SetPosition(x, b.s.Pos.Y)
	}
}

func (m *Mode) stepToppling(dt float64) {
	for _, s := range m.stones {
		b := m.bodies[s]
		if b.state != stateToppling {
			continue
		}
		s.Vel.Y += gravity * dt
		b.angle += b.spin * dt

		if s.Pos.X < -s.Radius || s.Pos.X > m.cfg.Width+s.Radius ||
			s.Pos.Y < -s.Radius || s.Pos.Y-s.Radius > m.cfg.Height {
			m.removeBody(b)
		}
	}
}

// StackCentroidOffset is the mass-weighted horizontal centroid offset of
// the stacked stones from the platform center.
func (m *Mode) StackCentroidOffset() float64 {
	var mass, moment float64
	for _, b := range m.stacked {
		mass += b.s.Mass
		moment += b.s.Mass * b.s.Pos.X
	}
	if mass == 0 {
		return 0
	}
	return moment/mass - m.platform.X
}

// Stable reports whether a centroid offset keeps the stack standing for a
// given platform half-width. Monotonic in the offset by construction.
func Stable(offset, halfBase float64) bool {
	return math.Abs(offset) <= StabilityTolerance*halfBase
}

// checkStability topples the entire stack when the weighted centroid
// leaves the tolerance band. Runs after every landing and every lift-out.
func (m *Mode) checkStability() {
	if len(m.stacked) == 0 {
		return
	}
	offset := m.StackCentroidOffset()
	if Stable(offset, platformWidth/2) {
		return
	}

	dir := 1.0
	if offset < 0 {
		dir = -1
	}
	for i, b := range m.stacked {
		// Higher stones get proportionally more, a lever-arm
		// approximation of the real fall.
		lateral := toppleImpulseBase + toppleImpulsePerLevel*float64(i)
		b.state = stateToppling
		b.s.Vel = geom.V(dir*lateral, -toppleUpward)
		b.spin = (m.cfg.Rand.Float64()*6 - 3) * dir
		b.wobbleAmp = 0
	}
	m.stacked = m.stacked[:0]
}

func (m *Mode) removeBody(b *body) {
	m.unstack(b)
	delete(m.bodies, b.s)
	for i, s := range m.stones {
		if s == b.s {
			m.stones = append(m.stones[:i], m.stones[i+1:]...)
			break
		}
	}
}
