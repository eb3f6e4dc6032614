// Neighbor color reactions. Observable, but never stability-affecting:
// same-color touches glow, complementary touches spark, same-family
// touches glow faintly, and stacked stones drift toward the blended tint
// of their neighborhood.

package stack

import (
	"image/color"

	"github.com/talgya/stone-garden/internal/stone"
)

const (
	touchSlop     = 4.0
	glowDecay     = 1.6
	sparkDuration = 0.3
	blendRadius   = 120.0
	blendWeight   = 0.35 // how far a stone's tint drifts toward neighbors
	blendRate     = 1.2  // per second
)

func (m *Mode) updateReactions(dt float64) {
	for _, b := range m.bodies {
		b.glow -= glowDecay * dt * b.glow
		if b.glow < 0.02 {
			b.glow = 0
		}
		if b.sparkT > 0 {
			b.sparkT -= dt
		}
	}

	// Touching stacked pairs.
	for i := 0; i < len(m.stacked); i++ {
		a := m.stacked[i]
		for j := i + 1; j < len(m.stacked); j++ {
			c := m.stacked[j]
			if a.s.Pos.Distance(c.s.Pos) > a.s.Radius+c.s.Radius+touchSlop {
				continue
			}
			switch {
			case a.s.Color == c.s.Color:
				a.glow, c.glow = 1, 1
			case stone.Complementary(a.s.Color, c.s.Color):
				a.sparkT, c.sparkT = sparkDuration, sparkDuration
			case a.s.Color.Category() == c.s.Color.Category():
				if a.glow < 0.4 {
					a.glow = 0.4
				}
				if c.glow < 0.4 {
					c.glow = 0.4
				}
			}
		}
	}

	m.blendTints(dt)
}

// blendTints eases each stacked stone's draw tint toward a
// proximity-weighted average of its neighbors' palette colors.
func (m *Mode) blendTints(dt float64) {
	for _, b := range m.stacked {
		var wr, wg, wb, wsum float64
		for _, o := range m.stacked {
			if o == b {
				continue
			}
			d := b.s.Pos.Distance(o.s.Pos)
			if d > blendRadius {
				continue
			}
			w := 1 - d/blendRadius
			c := o.s.Color.RGBA()
			wr += w * float64(c.R)
			wg += w * float64(c.G)
			wb += w * float64(c.B)
			wsum += w
		}

		own := b.s.Color.RGBA()
		target := own
		if wsum > 0 {
			target = color.RGBA{
				R: mix(own.R, wr/wsum, blendWeight),
				G: mix(own.G, wg/wsum, blendWeight),
				B: mix(own.B, wb/wsum, blendWeight),
				A: 0xff,
			}
		}

		t := blendRate * dt
		if t > 1 {
			t = 1
		}
		b.blend = color.RGBA{
			R: lerpByte(b.blend.R, target.R, t),
			G: lerpByte(b.blend.G, target.G, t),
			B: lerpByte(b.blend.B, target.B, t),
			A: 0xff,
		}
	}
}

func mix(own uint8, avg, w float64) uint8 {
	v := float64(own)*(1-w) + avg*w
	if v > 255 {
		v = 255
	}
	return uint8(v)
}

func lerpByte(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t)
}
