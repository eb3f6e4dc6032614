package structures

import (
	"math"
	"math/rand"
	"testing"

	"github.com/talgya/stone-garden/internal/geom"
	"github.com/talgya/stone-garden/internal/mode"
	"github.com/talgya/stone-garden/internal/stone"
)

func newTestMode() *Mode {
	return New(mode.Config{Width: 1000, Height: 800, Rand: rand.New(rand.NewSource(7))})
}

// placePattern drops stones at value's canonical offsets around center,
// in shuffled order, each nudged by jitter.
func (m *Mode) placePattern(value int, center geom.Vec, jitter geom.Vec, rng *rand.Rand) []*stone.Stone {
	offs := Offsets(value)
	order := rng.Perm(len(offs))
	placed := make([]*stone.Stone, len(offs))
	for _, i := range order {
		p := center.Add(offs[i]).Add(jitter)
		s := stone.New(p.X, p.Y, stoneMass)
		m.stones = append(m.stones, s)
		placed[i] = s
	}
	return placed
}

func TestOffsetsCenteredAndSized(t *testing.T) {
	for v := 1; v <= MaxValue; v++ {
		offs := Offsets(v)
		if len(offs) != v {
			t.Fatalf("value %d has %d offsets", v, len(offs))
		}
		var c geom.Vec
		for _, o := range offs {
			c = c.Add(o)
		}
		if c.Len() > 1e-9*float64(v) {
			t.Errorf("value %d offsets not centroid-centered: %v", v, c)
		}
	}
	if Offsets(0) != nil || Offsets(MaxValue+1) != nil {
		t.Error("out-of-range values must have no pattern")
	}
}

// Each composed pattern must flood-fill as a single cluster, or stones
// placed exactly on it would never be gathered for recognition.
func TestPatternsClusterWhole(t *testing.T) {
	for v := 1; v <= MaxValue; v++ {
		var stones []*stone.Stone
		for _, o := range Offsets(v) {
			stones = append(stones, stone.New(o.X, o.Y, stoneMass))
		}
		got := mode.Clusters(stones, ClusterThreshold)
		if len(got) != 1 {
			t.Errorf("value %d pattern splits into %d clusters", v, len(got))
		}
	}
}

func TestRecognitionRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for v := 1; v <= MaxValue; v++ {
		m := newTestMode()
		center := geom.V(300+rng.Float64()*400, 250+rng.Float64()*300)
		m.placePattern(v, center, geom.Vec{}, rng)

		m.OnPointerUp(center.X, center.Y, nil)

		if len(m.structures) != 1 {
			t.Fatalf("value %d: %d structures recognized", v, len(m.structures))
		}
		st := m.structures[0]
		if st.Value != v || !st.Intact {
			t.Errorf("value %d recognized as %d (intact %v)", v, st.Value, st.Intact)
		}
		offs := Offsets(v)
		c := st.Centroid()
		for i, s := range st.Members {
			if d := s.Pos.Distance(c.Add(offs[i])); d > 1e-9 {
				t.Errorf("value %d slot %d off by %v after exact placement", v, i, d)
			}
		}
	}
}

func TestRecognitionSurvivesSmallPerturbation(t *testing.T) {
	m := newTestMode()
	center := geom.V(480, 360)
	offs := Offsets(9)
	for i, off := range offs {
		a := float64(i) * 0.7
		jit := geom.V(math.Cos(a), math.Sin(a)).Scale(8) // well under threshold
		p := center.Add(off).Add(jit)
		m.stones = append(m.stones, stone.New(p.X, p.Y, stoneMass))
	}

	m.OnPointerUp(center.X, center.Y, nil)

	if len(m.structures) != 1 || m.structures[0].Value != 9 {
		t.Fatal("perturbed nine not recognized")
	}
}

func TestRecognitionRejectsOneOutlier(t *testing.T) {
	m := newTestMode()
	center := geom.V(480, 360)
	offs := Offsets(5)
	for i, off := range offs {
		p := center.Add(off)
		if i == len(offs)-1 { // the center stone of the quincunx
			p = p.Add(geom.V(60, 0))
		}
		m.stones = append(m.stones, stone.New(p.X, p.Y, stoneMass))
	}

	m.OnPointerUp(center.X, center.Y, nil)

	for _, st := range m.structures {
		if st.Value == 5 {
			t.Fatal("outlier cluster recognized as five")
		}
	}
}

// Scenario: five loose stones near the canonical five land in any order
// and snap onto the exact offsets.
func TestFivePromotionSnapsToSlots(t *testing.T) {
	rng := rand.New(rand.NewSource(17))
	m := newTestMode()
	center := geom.V(510, 340)
	placed := m.placePattern(5, center, geom.V(5, -4), rng)

	m.OnPointerUp(center.X, center.Y, nil)

	if len(m.structures) != 1 || m.structures[0].Value != 5 {
		t.Fatal("five not recognized")
	}
	st := m.structures[0]
	for i, s := range st.Members {
		if s != placed[i] {
			t.Fatalf("slot %d claimed by the wrong stone", i)
		}
	}

	for i := 0; i < 240; i++ {
		m.Update(1.0 / 60.0)
	}
	offs := Offsets(5)
	c := st.Centroid()
	for i, s := range st.Members {
		if d := s.Pos.Distance(c.Add(offs[i])); d > 1.0 {
			t.Errorf("slot %d settled %v away from canonical offset", i, d)
		}
	}
	if !st.checkIntact() {
		t.Error("settled five not intact")
	}
}

func TestMergeAddsValues(t *testing.T) {
	m := newTestMode()
	m.buildStructure(2, geom.V(400, 300))
	m.buildStructure(3, geom.V(460, 300))

	m.mergeStructures()

	if len(m.structures) != 1 {
		t.Fatalf("merge left %d structures", len(m.structures))
	}
	st := m.structures[0]
	if st.Value != 5 || !st.Intact {
		t.Errorf("merged value = %d (intact %v), want 5", st.Value, st.Intact)
	}
	if len(m.stones) != 5 {
		t.Errorf("stone count = %d after merge, want 5", len(m.stones))
	}
}

func TestMergeDeclinesPastTwenty(t *testing.T) {
	m := newTestMode()
	m.buildStructure(15, geom.V(400, 300))
	m.buildStructure(6, geom.V(460, 300))

	m.mergeStructures()

	if len(m.structures) != 2 {
		t.Fatal("merge past the largest pattern must decline")
	}
}

func TestDistantStructuresDoNotMerge(t *testing.T) {
	m := newTestMode()
	m.buildStructure(2, geom.V(200, 300))
	m.buildStructure(3, geom.V(700, 300))

	m.mergeStructures()

	if len(m.structures) != 2 {
		t.Fatal("distant structures merged")
	}
}

// yank drags a member far within the time threshold.
func (m *Mode) yank(s *stone.Stone) {
	m.OnPointerDown(s.Pos.X, s.Pos.Y)
	m.OnPointerMove(s.Pos.X+extractDist+30, s.Pos.Y, s)
}

func TestExtractDowngradesToRemainder(t *testing.T) {
	m := newTestMode()
	st := m.buildStructure(2, geom.V(400, 300))
	out := st.Members[0]

	m.yank(out)

	if out.StructureID != 0 {
		t.Error("extracted stone still tagged")
	}
	if len(m.structures) != 1 || m.structures[0].Value != 1 {
		t.Fatal("remainder of a two did not re-form as a one")
	}
}

func TestExtractDissolvesUnmatchedRemainder(t *testing.T) {
	m := newTestMode()
	st := m.buildStructure(5, geom.V(400, 300))
	out := st.Members[len(st.Members)-1] // center of the quincunx

	m.yank(out)

	// The four corners sit far wider than the canonical four; the old
	// value must not survive.
	for _, s := range m.structures {
		if s.Value >= 5 {
			t.Fatal("remainder silently kept the old value")
		}
		if s.Value == 4 {
			t.Fatal("wide corners matched the canonical four")
		}
	}
	loose := 0
	for _, s := range m.stones {
		if s.StructureID == 0 {
			loose++
		}
	}
	if loose != 5 {
		t.Errorf("loose count = %d, want all 5", loose)
	}
}

func TestSlowDragMovesWholeStructure(t *testing.T) {
	m := newTestMode()
	st := m.buildStructure(7, geom.V(400, 300))
	grab := st.Members[0]
	start := make([]geom.Vec, len(st.Members))
	for i, s := range st.Members {
		start[i] = s.Pos
	}

	m.OnPointerDown(grab.Pos.X, grab.Pos.Y)
	// Hold still past the yank window, then move far.
	for i := 0; i < 30; i++ {
		m.Update(1.0 / 60.0)
	}
	m.OnPointerMove(grab.Pos.X+200, grab.Pos.Y+80, grab)
	m.OnPointerUp(grab.Pos.X, grab.Pos.Y, grab)

	if len(m.structures) != 1 || m.structures[0] != st {
		t.Fatal("rigid move broke the structure")
	}
	if !st.Intact {
		t.Error("rigid move lost intactness")
	}
	for i, s := range st.Members {
		d := s.Pos.Sub(start[i])
		if math.Abs(d.X-200) > 1e-9 || math.Abs(d.Y-80) > 1e-9 {
			t.Errorf("member %d moved by %v, want (200, 80)", i, d)
		}
	}
}

func TestEmptyStructureCollected(t *testing.T) {
	m := newTestMode()
	st := m.buildStructure(3, geom.V(400, 300))
	st.Members = nil

	m.Update(1.0 / 60.0)

	if len(m.structures) != 0 {
		t.Error("empty structure survived the frame")
	}
}

func TestStateReportsValues(t *testing.T) {
	m := newTestMode()
	m.buildStructure(4, geom.V(300, 300))
	m.buildStructure(6, geom.V(700, 300))

	st, ok := m.State().(mode.StructuresState)
	if !ok {
		t.Fatal("State() is not StructuresState")
	}
	if len(st.Structures) != 2 {
		t.Fatalf("state lists %d structures", len(st.Structures))
	}
	if st.Structures[0].Value != 4 || st.Structures[1].Value != 6 {
		t.Error("state values wrong")
	}
}

func TestLoadSetupBuildsConfiguration(t *testing.T) {
	m := newTestMode()
	m.LoadSetup(mode.Setup{
		Structures: []mode.SetupStructure{{Value: 3, X: 300, Y: 250}},
		Loose:      []mode.SetupStone{{X: 700, Y: 500, Mass: 1}},
	})

	if len(m.structures) != 1 || m.structures[0].Value != 3 {
		t.Fatal("setup structure missing")
	}
	if len(m.stones) != 4 {
		t.Errorf("stone count = %d, want 4", len(m.stones))
	}
}
