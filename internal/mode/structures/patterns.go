package structures

import "github.com/talgya/stone-garden/internal/geom"

// MaxValue is the largest number a pattern exists for.
const MaxValue = 20

const (
	// unit is the grid spacing between adjacent pattern slots.
	unit = 44.0

	// RecognizeThreshold is the per-slot tolerance when matching stones
	// against canonical offsets.
	RecognizeThreshold = 26.0

	// avgErrorFraction tightens recognition: beyond the per-slot check,
	// the mean error must stay under this fraction of the threshold.
	avgErrorFraction = 0.6

	// MergeDistance is how close two intact structure centroids must be
	// before they combine.
	MergeDistance = 90.0
)

// patterns holds centroid-centered slot offsets indexed by value.
var patterns [MaxValue + 1][]geom.Vec

func init() {
	u := unit

	// Dice and domino motifs for 1 through 10.
	patterns[1] = recenter([]geom.Vec{{X: 0, Y: 0}})
	patterns[2] = recenter([]geom.Vec{
		{X: -u / 2, Y: 0}, {X: u / 2, Y: 0},
	})
	patterns[3] = recenter([]geom.Vec{
		{X: -u, Y: u}, {X: 0, Y: 0}, {X: u, Y: -u},
	})
	patterns[4] = recenter(grid(u, []int{-1, 1}, []int{-1, 1}, 0.5))
	patterns[5] = recenter(append(
		grid(u, []int{-1, 1}, []int{-1, 1}, 1.0),
		geom.Vec{X: 0, Y: 0},
	))
	patterns[6] = recenter(grid(u, []int{-1, 1}, []int{-2, 0, 2}, 0.5))
	patterns[7] = recenter(append(
		grid(u, []int{-1, 1}, []int{-1, 0, 1}, 1.0),
		geom.Vec{X: 0, Y: 0},
	))
	patterns[8] = recenter(grid(u, []int{-1, 1}, []int{-3, -1, 1, 3}, 0.5))
	patterns[9] = recenter(grid(u, []int{-1, 0, 1}, []int{-1, 0, 1}, 1.0))
	patterns[10] = tenBlock(geom.Vec{})

	// 11 through 20 compose a ten-block above the remainder's pattern,
	// separated by a vertical gap. Base-10 on purpose. The gap is wider
	// than the in-pattern spacing but still inside the cluster threshold
	// so the whole arrangement flood-fills as one group.
	for v := 11; v <= MaxValue; v++ {
		rem := v - 10
		top := patterns[rem][0].Y
		for _, off := range patterns[rem] {
			if off.Y < top {
				top = off.Y
			}
		}
		shift := 0.5*u + 1.2*u - top // ten-block bottom row to remainder top row
		p := tenBlock(geom.Vec{})
		for _, off := range patterns[rem] {
			p = append(p, off.Add(geom.V(0, shift)))
		}
		patterns[v] = recenter(p)
	}
}

// Offsets returns a copy of the canonical slot offsets for value, or nil
// when no pattern exists.
func Offsets(value int) []geom.Vec {
	if value < 1 || value > MaxValue {
		return nil
	}
	out := make([]geom.Vec, len(patterns[value]))
	copy(out, patterns[value])
	return out
}

// grid builds offsets at every (x, y) combination scaled by u*scale.
func grid(u float64, xs, ys []int, scale float64) []geom.Vec {
	var out []geom.Vec
	for _, y := range ys {
		for _, x := range xs {
			out = append(out, geom.V(float64(x)*u*scale, float64(y)*u*scale))
		}
	}
	return out
}

// tenBlock is the 2x5 block, five wide and two tall, centered on base.
func tenBlock(base geom.Vec) []geom.Vec {
	var out []geom.Vec
	for _, y := range []float64{-0.5, 0.5} {
		for x := -2; x <= 2; x++ {
			out = append(out, base.Add(geom.V(float64(x)*unit, y*unit)))
		}
	}
	return out
}

// recenter shifts offsets so their centroid is the origin. Keeps the
// hand-written tables honest.
func recenter(offs []geom.Vec) []geom.Vec {
	var c geom.Vec
	for _, o := range offs {
		c = c.Add(o)
	}
	c = c.Scale(1 / float64(len(offs)))
	for i := range offs {
		offs[i] = offs[i].Sub(c)
	}
	return offs
}
