package geom

import (
	"math"
	"testing"
)

func TestNormalizeZeroVector(t *testing.T) {
	z := Vec{}.Normalize()
	if z.X != 0 || z.Y != 0 {
		t.Errorf("expected zero vector, got %+v", z)
	}
}

func TestNormalizeUnitLength(t *testing.T) {
	tests := []struct {
		name string
		v    Vec
	}{
		{"axis", V(5, 0)},
		{"diagonal", V(3, 4)},
		{"negative", V(-7, 2)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := tt.v.Normalize()
			if math.Abs(n.Len()-1.0) > 1e-12 {
				t.Errorf("Normalize(%+v).Len() = %v, want 1", tt.v, n.Len())
			}
		})
	}
}

func TestLerpClamps(t *testing.T) {
	a, b := V(0, 0), V(10, 10)
	if got := a.Lerp(b, 2.0); got != b {
		t.Errorf("Lerp with t>1 = %+v, want %+v", got, b)
	}
	if got := a.Lerp(b, -1.0); got != a {
		t.Errorf("Lerp with t<0 = %+v, want %+v", got, a)
	}
	mid := a.Lerp(b, 0.5)
	if mid.X != 5 || mid.Y != 5 {
		t.Errorf("Lerp midpoint = %+v, want (5,5)", mid)
	}
}

func TestClamp(t *testing.T) {
	if Clamp(5, 0, 1) != 1 {
		t.Error("Clamp above range")
	}
	if Clamp(-5, 0, 1) != 0 {
		t.Error("Clamp below range")
	}
	if Clamp(0.3, 0, 1) != 0.3 {
		t.Error("Clamp inside range")
	}
}
