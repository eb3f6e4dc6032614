// Gravity sandbox physics: inverse-square wells, damped free bodies on a
// toroidal screen, elastic collisions with breaking and absorption.

package explore

import (
	"math"

	"github.com/talgya/stone-garden/internal/geom"
	"github.com/talgya/stone-garden/internal/mode"
	"github.com/talgya/stone-garden/internal/stone"
)

const (
	// GravityConst scales well attraction.
	GravityConst = 9000.0

	// minForceDist guards the inverse-square singularity: no force is
	// applied inside this radius.
	minForceDist = 12.0

	// velocityDamping is applied once per frame as simulated drag.
	velocityDamping = 0.992

	// BreakSpeed is the relative impact speed above which a labeled stone
	// shatters. Deliberately independent of either stone's mass.
	BreakSpeed = 220.0

	// breakExplosionSpeed is the outward component given to each piece.
	breakExplosionSpeed = 110.0

	// restitution for stone-stone impacts below the break threshold.
	collisionRestitution = 0.85

	// wellCoreFraction of a well's radius absorbs overlapping stones.
	wellCoreFraction = 0.65

	// wellMaxRadius caps well growth as it feeds.
	wellMaxRadius = 64.0
)

// applyGravity accelerates every non-dragged regular stone toward each
// well and damps velocities.
func (m *Mode) applyGravity(dt float64) {
	for _, s := range m.stones {
		if s.Kind != stone.KindRegular || s.Dragging {
			continue
		}

		for _, w := range m.stones {
			if w.Kind != stone.KindGravityWell {
				continue
			}
			delta := w.Pos.Sub(s.Pos)
			dist := delta.Len()
			if dist < minForceDist {
				continue
			}
			// F = G * m1 * m2 / d²; a = F / m1.
			force := GravityConst * w.Mass * s.Mass / (dist * dist)
			accel := delta.Scale(force / s.Mass / dist)
			s.Vel = s.Vel.Add(accel.Scale(dt))
		}

		s.Vel = s.Vel.Scale(velocityDamping)
	}
}

// resolveCollisions handles pairwise regular-stone impacts: break when fast
// and labeled, otherwise elastic exchange along the collision normal with
// mass-weighted de-penetration.
func (m *Mode) resolveCollisions() {
	broken := make(map[*stone.Stone]bool)
	var pieces []*stone.Stone

	for i := 0; i < len(m.stones); i++ {
		a := m.stones[i]
		if a.Kind != stone.KindRegular || broken[a] {
			continue
		}
		for j := i + 1; j < len(m.stones); j++ {
			b := m.stones[j]
			if b.Kind != stone.KindRegular || broken[b] {
				continue
			}

			delta := b.Pos.Sub(a.Pos)
			dist := delta.Len()
			minDist := a.Radius + b.Radius
			if dist >= minDist || dist < 1e-9 {
				// Coincident centers: skip this pair this frame rather
				// than divide by zero.
				continue
			}

			normal := delta.Scale(1 / dist)
			relVel := b.Vel.Sub(a.Vel)
			approach := -relVel.Dot(normal)
			if approach > BreakSpeed && (a.Label >= 2 || b.Label >= 2) {
				if a.Label >= 2 {
					broken[a] = true
					pieces = append(pieces, m.shatter(a)...)
				}
				if b.Label >= 2 {
					broken[b] = true
					pieces = append(pieces, m.shatter(b)...)
				}
				if broken[a] {
					break
				}
				continue
			}

			m.bounce(a, b, normal, dist, minDist, relVel)
		}
	}

	for s := range broken {
		m.stones = mode.Remove(m.stones, s)
	}
	m.stones = append(m.stones, pieces...)
}

// bounce applies the elastic impulse and pushes the pair out of
// penetration, heavier stone displacing less.
func (m *Mode) bounce(a, b *stone.Stone, normal geom.Vec, dist, minDist float64, relVel geom.Vec) {
	velAlongNormal := relVel.Dot(normal)
	if velAlongNormal < 0 {
		invA := 1.0 / a.Mass
		invB := 1.0 / b.Mass
		j := -(1 + collisionRestitution) * velAlongNormal / (invA + invB)
		impulse := normal.Scale(j)
		if !a.Dragging {
			a.Vel = a.Vel.Sub(impulse.Scale(invA))
		}
		if !b.Dragging {
			b.Vel = b.Vel.Add(impulse.Scale(invB))
		}
	}

	penetration := minDist - dist
	total := a.Mass + b.Mass
	if !a.Dragging {
		a.SetPosition(a.Pos.X-normal.X*penetration*(b.Mass/total), a.Pos.Y-normal.Y*penetration*(b.Mass/total))
	}
	if !b.Dragging {
		b.SetPosition(b.Pos.X+normal.X*penetration*(a.Mass/total), b.Pos.Y+normal.Y*penetration*(a.Mass/total))
	}
}

// shatter replaces a labeled stone with Label pieces arranged in a ring,
// mass conserved exactly. Pieces carry no label, so they cannot break
// again.
func (m *Mode) shatter(s *stone.Stone) []*stone.Stone {
	n := s.Label
	pieces := make([]*stone.Stone, 0, n)
	pieceMass := s.Mass / float64(n)

	for i := 0; i < n; i++ {
		ang := 2 * math.Pi * float64(i) / float64(n)
		out := geom.V(math.Cos(ang), math.Sin(ang))
		p := stone.New(s.Pos.X+out.X*s.Radius, s.Pos.Y+out.Y*s.Radius, pieceMass)
		p.Mass = pieceMass // below MinMass is fine for pieces of tiny parents
		p.Color = s.Color
		p.Vel = s.Vel.Add(out.Scale(breakExplosionSpeed))
		pieces = append(pieces, p)
	}
	return pieces
}

// absorbIntoWells feeds overlapping regular stones to any well core.
func (m *Mode) absorbIntoWells() {
	absorbed := make(map[*stone.Stone]bool)
	for _, w := range m.stones {
		if w.Kind != stone.KindGravityWell {
			continue
		}
		core := w.Radius * wellCoreFraction
		for _, s := range m.stones {
			if s.Kind != stone.KindRegular || s.Dragging || absorbed[s] {
				continue
			}
			if w.Pos.Distance(s.Pos) < core {
				w.Mass += s.Mass
				w.Radius = math.Min(stone.RadiusForMass(w.Mass), wellMaxRadius)
				absorbed[s] = true
			}
		}
	}
	for s := range absorbed {
		m.stones = mode.Remove(m.stones, s)
	}
}

// wrapEdges teleports stones that leave one screen edge to the opposite
// edge. Toroidal on purpose: bouncing walls visually trap stones in
// corners.
func (m *Mode) wrapEdges() {
	w, h := m.cfg.Width, m.cfg.Height
	for _, s := range m.stones {
		if s.Kind != stone.KindRegular || s.Dragging {
			continue
		}
		x, y := s.Pos.X, s.Pos.Y
		switch {
		case x < -s.Radius:
			x = w + s.Radius
		case x > w+s.Radius:
			x = -s.Radius
		}
		switch {
		case y < -s.Radius:
			y = h + s.Radius
		case y > h+s.Radius:
			y = -s.Radius
		}
		if x != s.Pos.X || y != s.Pos.Y {
			s.SetPosition(x, y)
		}
	}
}
