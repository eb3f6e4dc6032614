package stone

import (
	"math"
	"testing"
)

func TestMassClampedToMinimum(t *testing.T) {
	s := New(0, 0, 0.001)
	if s.Mass != MinMass {
		t.Errorf("mass = %v, want %v", s.Mass, MinMass)
	}
}

// Eased motion must converge to the target monotonically with no overshoot,
// and heavier stones must converge strictly slower.
func TestStepConvergesMonotonically(t *testing.T) {
	tests := []struct {
		name string
		mass float64
	}{
		{"light", 0.5},
		{"unit", 1.0},
		{"heavy", 4.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(0, 0, tt.mass)
			s.SetTarget(100, 0)

			prev := math.Abs(s.Target.X - s.Pos.X)
			for i := 0; i < 300; i++ {
				s.Step(1.0 / 60.0)
				d := math.Abs(s.Target.X - s.Pos.X)
				if d > prev+1e-9 {
					t.Fatalf("step %d: distance grew from %v to %v", i, prev, d)
				}
				if s.Pos.X > s.Target.X+1e-9 {
					t.Fatalf("step %d: overshot target, pos=%v", i, s.Pos.X)
				}
				prev = d
			}
			if prev > 1.0 {
				t.Errorf("did not converge, remaining distance %v", prev)
			}
		})
	}
}

func TestHeavierStoneFollowsSlower(t *testing.T) {
	light := New(0, 0, 0.5)
	heavy := New(0, 0, 3.0)
	light.SetTarget(100, 0)
	heavy.SetTarget(100, 0)

	for i := 0; i < 10; i++ {
		light.Step(1.0 / 60.0)
		heavy.Step(1.0 / 60.0)
	}
	if heavy.Pos.X >= light.Pos.X {
		t.Errorf("heavy stone (%v) not slower than light stone (%v)", heavy.Pos.X, light.Pos.X)
	}
}

func TestStartDragLocked(t *testing.T) {
	s := New(0, 0, 1)
	s.Locked = true
	if s.StartDrag() {
		t.Error("StartDrag succeeded on a locked stone")
	}
	if s.Dragging {
		t.Error("locked stone entered dragging state")
	}

	s.Locked = false
	if !s.StartDrag() {
		t.Error("StartDrag failed on an unlocked stone")
	}
	s.StopDrag()
	if s.Dragging {
		t.Error("StopDrag left dragging state set")
	}
}

func TestSetPositionSnapsTarget(t *testing.T) {
	s := New(0, 0, 1)
	s.SetTarget(50, 50)
	s.SetPosition(10, 20)
	if s.Target != s.Pos {
		t.Errorf("SetPosition left target at %+v, pos %+v", s.Target, s.Pos)
	}
}

func TestContains(t *testing.T) {
	s := New(100, 100, 1)
	if !s.Contains(100, 100) {
		t.Error("center not contained")
	}
	if !s.Contains(100+s.Radius-0.1, 100) {
		t.Error("point just inside edge not contained")
	}
	if s.Contains(100+s.Radius+1, 100) {
		t.Error("point outside contained")
	}
}

func TestComplementaryPairs(t *testing.T) {
	if !Complementary(ColorRed, ColorGreen) || !Complementary(ColorGreen, ColorRed) {
		t.Error("red/green should be complementary both ways")
	}
	if Complementary(ColorRed, ColorBlue) {
		t.Error("red/blue should not be complementary")
	}
	if Complementary(ColorWell, ColorWell) {
		t.Error("well color has no complement")
	}
}

func TestCategories(t *testing.T) {
	if ColorRed.Category() != CategoryWarm {
		t.Error("red should be warm")
	}
	if ColorBlue.Category() != CategoryCool {
		t.Error("blue should be cool")
	}
	if ColorWell.Category() != CategoryNone {
		t.Error("well color has no category")
	}
}
