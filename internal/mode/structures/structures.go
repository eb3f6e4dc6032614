// Package structures implements the Number Structures mode: loose stones
// arranged close to a canonical 1-20 number pattern snap into a rigid
// structure, intact structures add together when pushed close, and single
// stones can be yanked back out.
package structures

import (
	"image/color"
	"strconv"

	"github.com/talgya/stone-garden/internal/geom"
	"github.com/talgya/stone-garden/internal/mode"
	"github.com/talgya/stone-garden/internal/render"
	"github.com/talgya/stone-garden/internal/stone"
)

const (
	// ClusterThreshold is the flood-fill distance used when gathering
	// loose stones for recognition.
	ClusterThreshold = 70.0

	// A fast yank extracts one stone; a slower drag moves the whole
	// structure. Both limits apply to the first touched stone.
	extractDist = 40.0
	extractTime = 0.3

	initialStones = 9
	stoneMass     = 1.0
)

// Structure is a recognized arrangement of stones matching the canonical
// pattern for its value. Members are ordered by canonical slot.
type Structure struct {
	ID      int
	Value   int
	Members []*stone.Stone
	Intact  bool
}

// Centroid is the live centroid of the member stones.
func (st *Structure) Centroid() geom.Vec {
	var c geom.Vec
	for _, s := range st.Members {
		c = c.Add(s.Pos)
	}
	return c.Scale(1 / float64(len(st.Members)))
}

// checkIntact reports whether every member sits within the recognition
// threshold of its slot, measured from the live centroid. The structure
// may translate freely; only internal deformation breaks it.
func (st *Structure) checkIntact() bool {
	offs := Offsets(st.Value)
	if offs == nil || len(st.Members) != len(offs) {
		return false
	}
	c := st.Centroid()
	for i, s := range st.Members {
		if s.Pos.Distance(c.Add(offs[i])) > RecognizeThreshold {
			return false
		}
	}
	return true
}

// Mode is the Number Structures engine.
type Mode struct {
	cfg mode.Config

	stones     []*stone.Stone
	structures []*Structure
	nextID     int

	// Gesture state for the grab-one-member disambiguation.
	grabbed    *stone.Stone
	grabStruct *Structure
	grabStart  geom.Vec
	grabTime   float64
	extracting bool
}

// New creates an uninitialized Number Structures mode.
func New(cfg mode.Config) *Mode {
	return &Mode{cfg: cfg}
}

func (m *Mode) Kind() mode.Kind { return mode.KindStructures }

func (m *Mode) Init() {
	m.nextID = 0
	cx, cy := m.cfg.Width/2, m.cfg.Height/2
	for i := 0; i < initialStones; i++ {
		x := cx + (m.cfg.Rand.Float64()*2-1)*m.cfg.Width*0.35
		y := cy + (m.cfg.Rand.Float64()*2-1)*m.cfg.Height*0.3
		s := stone.New(x, y, stoneMass)
		s.Color = stone.ColorBlue
		m.stones = append(m.stones, s)
	}
}

func (m *Mode) Cleanup() {
	for _, s := range m.stones {
		s.StopDrag()
	}
	m.stones = nil
	m.structures = nil
	m.grabbed = nil
	m.grabStruct = nil
	m.extracting = false
}

func (m *Mode) Update(dt float64) {
	dt = mode.ClampDelta(dt)

	if m.grabbed != nil && !m.extracting {
		m.grabTime += dt
	}

	// Refresh intactness and collect garbage.
	kept := m.structures[:0]
	for _, st := range m.structures {
		if len(st.Members) == 0 {
			continue
		}
		st.Intact = st.checkIntact()
		kept = append(kept, st)
	}
	m.structures = kept

	mode.StepAll(m.stones, dt)
}

func (m *Mode) OnPointerDown(x, y float64) *stone.Stone {
	s := mode.TopmostAt(m.stones, x, y)
	if s == nil || !s.StartDrag() {
		return nil
	}

	m.grabbed = s
	m.grabStart = geom.V(x, y)
	m.grabTime = 0
	m.extracting = false
	m.grabStruct = nil
	if st := m.structureOf(s); st != nil && st.Intact {
		m.grabStruct = st
	}

	m.stones = mode.BringToTop(m.stones, s)
	return s
}

func (m *Mode) OnPointerMove(x, y float64, dragged *stone.Stone) {
	if dragged == nil {
		return
	}

	if m.grabStruct != nil && !m.extracting {
		p := geom.V(x, y)
		if p.Distance(m.grabStart) > extractDist && m.grabTime < extractTime {
			m.extract(dragged)
		} else {
			// Rigid whole-structure move.
			delta := p.Sub(dragged.Pos)
			for _, member := range m.grabStruct.Members {
				member.SetPosition(member.Pos.X+delta.X, member.Pos.Y+delta.Y)
			}
			return
		}
	}
	dragged.SetPosition(x, y)
}

func (m *Mode) OnPointerUp(x, y float64, dragged *stone.Stone) {
	if dragged != nil {
		dragged.StopDrag()
	}
	m.grabbed = nil
	m.grabStruct = nil
	m.extracting = false

	m.recognizeLoose()
	m.mergeStructures()
}

// extract pulls the grabbed stone out of its structure and tries to
// re-recognize the remainder in place. A remainder that no longer matches
// any pattern dissolves back into loose stones.
func (m *Mode) extract(s *stone.Stone) {
	st := m.grabStruct
	m.extracting = true
	m.grabStruct = nil

	s.ClearStructure()
	rest := make([]*stone.Stone, 0, len(st.Members)-1)
	for _, member := range st.Members {
		if member != s {
			rest = append(rest, member)
		}
	}
	m.removeStructure(st)

	if len(rest) == 0 {
		return
	}
	if got := m.tryRecognize(rest); got == nil {
		for _, member := range rest {
			member.ClearStructure()
		}
	}
}

// recognizeLoose flood-fill clusters the loose stones and promotes any
// cluster matching a canonical pattern.
func (m *Mode) recognizeLoose() {
	var loose []*stone.Stone
	for _, s := range m.stones {
		if s.StructureID == 0 {
			loose = append(loose, s)
		}
	}
	// Singletons promote too: a lone stone is a one, which makes
	// merge-by-proximity behave as addition from the ground up.
	for _, cluster := range mode.Clusters(loose, ClusterThreshold) {
		m.tryRecognize(cluster)
	}
}

// tryRecognize greedily assigns cluster stones to the canonical slots of
// the same cardinality, both normalized to their centroids. Every slot
// must find a stone within the threshold, and the mean error must clear
// the tighter average bound. On success members ease onto exact slots.
func (m *Mode) tryRecognize(cluster []*stone.Stone) *Structure {
	offs := Offsets(len(cluster))
	if offs == nil {
		return nil
	}

	var c geom.Vec
	for _, s := range cluster {
		c = c.Add(s.Pos)
	}
	c = c.Scale(1 / float64(len(cluster)))

	claimed := make([]bool, len(cluster))
	members := make([]*stone.Stone, len(offs))
	total := 0.0
	for i, off := range offs {
		slot := c.Add(off)
		best, bestDist := -1, RecognizeThreshold
		for j, s := range cluster {
			if claimed[j] {
				continue
			}
			if d := s.Pos.Distance(slot); d <= bestDist {
				best, bestDist = j, d
			}
		}
		if best < 0 {
			return nil
		}
		claimed[best] = true
		members[i] = cluster[best]
		total += bestDist
	}
	if total/float64(len(offs)) > avgErrorFraction*RecognizeThreshold {
		return nil
	}

	m.nextID++
	st := &Structure{ID: m.nextID, Value: len(offs), Members: members, Intact: true}
	for i, s := range members {
		s.StructureID = st.ID
		s.StructureIndex = i
		s.SetTarget(c.X+offs[i].X, c.Y+offs[i].Y)
	}
	m.structures = append(m.structures, st)
	return st
}

// mergeStructures combines intact pairs whose centroids sit within the
// merge distance. Both donors are destroyed and a fresh structure of the
// summed value blooms at the midpoint. Sums past the largest pattern are
// declined.
func (m *Mode) mergeStructures() {
	for {
		var a, b *Structure
	search:
		for i := 0; i < len(m.structures); i++ {
			for j := i + 1; j < len(m.structures); j++ {
				x, y := m.structures[i], m.structures[j]
				if !x.Intact || !y.Intact {
					continue
				}
				if x.Value+y.Value > MaxValue {
					continue
				}
				if x.Centroid().Distance(y.Centroid()) < MergeDistance {
					a, b = x, y
					break search
				}
			}
		}
		if a == nil {
			return
		}
		m.merge(a, b)
	}
}

func (m *Mode) merge(a, b *Structure) {
	mid := a.Centroid().Add(b.Centroid()).Scale(0.5)
	value := a.Value + b.Value

	for _, st := range []*Structure{a, b} {
		for _, s := range st.Members {
			m.stones = mode.Remove(m.stones, s)
		}
		m.removeStructure(st)
	}

	offs := Offsets(value)
	m.nextID++
	st := &Structure{ID: m.nextID, Value: value, Members: make([]*stone.Stone, len(offs)), Intact: true}
	for i, off := range offs {
		s := stone.New(mid.X, mid.Y, stoneMass)
		s.Color = stone.ColorBlue
		s.StructureID = st.ID
		s.StructureIndex = i
		s.SetTarget(mid.X+off.X, mid.Y+off.Y)
		st.Members[i] = s
		m.stones = append(m.stones, s)
	}
	m.structures = append(m.structures, st)
}

func (m *Mode) structureOf(s *stone.Stone) *Structure {
	if s.StructureID == 0 {
		return nil
	}
	for _, st := range m.structures {
		if st.ID == s.StructureID {
			return st
		}
	}
	return nil
}

func (m *Mode) removeStructure(st *Structure) {
	for i, x := range m.structures {
		if x == st {
			m.structures = append(m.structures[:i], m.structures[i+1:]...)
			break
		}
	}
	st.Members = nil
}

// LoadSetup replaces the scatter with a challenge's initial configuration.
func (m *Mode) LoadSetup(setup mode.Setup) {
	m.stones = nil
	m.structures = nil
	for _, sc := range setup.Structures {
		m.buildStructure(sc.Value, geom.V(sc.X, sc.Y))
	}
	for _, ls := range setup.Loose {
		mass := ls.Mass
		if mass == 0 {
			mass = stoneMass
		}
		s := stone.New(ls.X, ls.Y, mass)
		s.Color = stone.ColorBlue
		s.Label = ls.Label
		m.stones = append(m.stones, s)
	}
}

func (m *Mode) buildStructure(value int, at geom.Vec) *Structure {
	offs := Offsets(value)
	if offs == nil {
		return nil
	}
	m.nextID++
	st := &Structure{ID: m.nextID, Value: value, Members: make([]*stone.Stone, len(offs)), Intact: true}
	for i, off := range offs {
		s := stone.New(at.X+off.X, at.Y+off.Y, stoneMass)
		s.Color = stone.ColorBlue
		s.StructureID = st.ID
		s.StructureIndex = i
		st.Members[i] = s
		m.stones = append(m.stones, s)
	}
	m.structures = append(m.structures, st)
	return st
}

func (m *Mode) State() mode.State {
	st := mode.StructuresState{}
	for _, s := range m.structures {
		st.Structures = append(st.Structures, mode.StructureInfo{
			Value:  s.Value,
			Intact: s.Intact,
		})
	}
	return st
}

func (m *Mode) Render(ctx *render.Context) {
	for _, st := range m.structures {
		c := st.Centroid()
		if st.Intact {
			halo := stone.ColorWell.RGBA()
			halo.A = 30
			ctx.FillCircle(c.X, c.Y, structureHaloRadius(st.Value), halo)
		}
		ctx.TextCentered(strconv.Itoa(st.Value), c.X, c.Y-structureHaloRadius(st.Value)-12, color.RGBA{R: 0x2e, G: 0x2a, B: 0x3a, A: 0xff})
	}
	for _, s := range m.stones {
		ctx.Stone(s)
	}
}

// structureHaloRadius is a loose visual bound around a pattern.
func structureHaloRadius(value int) float64 {
	maxLen := 0.0
	for _, off := range Offsets(value) {
		if l := off.Len(); l > maxLen {
			maxLen = l
		}
	}
	return maxLen + unit*0.7
}
