// Package geom provides the 2D vector math shared by every mode engine.
package geom

import "math"

// Vec is a 2D vector in canvas space (x right, y down).
type Vec struct {
	X, Y float64
}

func V(x, y float64) Vec {
	return Vec{X: x, Y: y}
}

func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vec) Sub(o Vec) Vec {
	return Vec{X: v.X - o.X, Y: v.Y - o.Y}
}

func (v Vec) Scale(f float64) Vec {
	return Vec{X: v.X * f, Y: v.Y * f}
}

func (v Vec) Dot(o Vec) float64 {
	return v.X*o.X + v.Y*o.Y
}

func (v Vec) Len() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

func (v Vec) LenSq() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Normalize returns the unit vector, or the zero vector when v has no length.
func (v Vec) Normalize() Vec {
	l := v.Len()
	if l == 0 {
		return Vec{}
	}
	inv := 1.0 / l
	return Vec{X: v.X * inv, Y: v.Y * inv}
}

func (v Vec) Distance(o Vec) float64 {
	return v.Sub(o).Len()
}

func (v Vec) DistanceSq(o Vec) float64 {
	return v.Sub(o).LenSq()
}

// Lerp moves v toward o by fraction t (t clamped to [0,1]).
func (v Vec) Lerp(o Vec, t float64) Vec {
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return Vec{X: v.X + (o.X-v.X)*t, Y: v.Y + (o.Y-v.Y)*t}
}

// Clamp limits x to [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
