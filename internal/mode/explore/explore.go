// Package explore implements the Free Explore mode: loose stones, proximity
// grouping, a creation pool, and an optional gravity sandbox.
package explore

import (
	"image/color"
	"strconv"

	"github.com/talgya/stone-garden/internal/geom"
	"github.com/talgya/stone-garden/internal/mode"
	"github.com/talgya/stone-garden/internal/render"
	"github.com/talgya/stone-garden/internal/stone"
)

const (
	// GroupThreshold is the flood-fill distance for proximity groups.
	GroupThreshold = 80.0

	// Double-tap window for spawning a gravity well from the pool.
	doubleTapTime = 0.35
	doubleTapDist = 30.0

	initialStones = 6
)

type rect struct {
	x, y, w, h float64
}

func (r rect) contains(x, y float64) bool {
	return x >= r.x && x <= r.x+r.w && y >= r.y && y <= r.y+r.h
}

// Mode is the Free Explore engine.
type Mode struct {
	cfg    mode.Config
	stones []*stone.Stone
	groups [][]*stone.Stone

	// Gravity sandbox.
	running     bool
	centralWell *stone.Stone

	// Double-tap tracking, driven by the frame clock.
	clock       float64
	lastTapAt   float64
	lastTapPos  geom.Vec
	lastSpawned *stone.Stone

	pool     rect
	runBtn   rect
	resetBtn rect
}

// New creates an uninitialized Free Explore mode.
func New(cfg mode.Config) *Mode {
	return &Mode{cfg: cfg}
}

func (m *Mode) Kind() mode.Kind { return mode.KindFreeExplore }

func (m *Mode) Init() {
	m.pool = rect{x: 16, y: m.cfg.Height - 120, w: 170, h: 104}
	m.runBtn = rect{x: m.cfg.Width - 180, y: 52, w: 76, h: 30}
	m.resetBtn = rect{x: m.cfg.Width - 96, y: 52, w: 76, h: 30}
	m.lastTapAt = -doubleTapTime
	m.scatter()
}

// scatter places the initial loose stones and the central well.
func (m *Mode) scatter() {
	m.stones = m.stones[:0]
	m.groups = nil
	m.lastSpawned = nil
	m.running = false

	m.centralWell = stone.NewGravityWell(m.cfg.Width/2, m.cfg.Height/2, 6)
	m.centralWell.Locked = true
	m.stones = append(m.stones, m.centralWell)

	for i := 0; i < initialStones; i++ {
		mass := 0.5 + m.cfg.Rand.Float64()*2.0
		x := m.cfg.Width*0.2 + m.cfg.Rand.Float64()*m.cfg.Width*0.6
		y := m.cfg.Height*0.2 + m.cfg.Rand.Float64()*m.cfg.Height*0.5
		s := stone.New(x, y, mass)
		s.Label = 2 + m.cfg.Rand.Intn(3)
		m.stones = append(m.stones, s)
	}
}

func (m *Mode) Update(dt float64) {
	dt = mode.ClampDelta(dt)
	m.clock += dt

	if m.running {
		m.applyGravity(dt)
	}
	mode.StepAll(m.stones, dt)
	if m.running {
		m.resolveCollisions()
		m.absorbIntoWells()
		m.wrapEdges()
	}
}

func (m *Mode) Cleanup() {
	for _, s := range m.stones {
		s.StopDrag()
	}
	m.stones = nil
	m.groups = nil
	m.centralWell = nil
	m.lastSpawned = nil
	m.running = false
}

func (m *Mode) OnPointerDown(x, y float64) *stone.Stone {
	switch {
	case m.runBtn.contains(x, y):
		m.toggleRunning()
		return nil
	case m.resetBtn.contains(x, y):
		m.scatter()
		return nil
	}

	// The pool wins over hit-testing so a freshly spawned stone does not
	// capture the second tap of a double tap.
	if m.pool.contains(x, y) {
		m.spawnFromPool(x, y)
		return nil
	}

	if s := mode.TopmostAt(m.stones, x, y); s != nil {
		if !s.StartDrag() {
			return nil
		}
		m.stones = mode.BringToTop(m.stones, s)
		s.SetPosition(x, y)
		return s
	}
	return nil
}

func (m *Mode) OnPointerMove(x, y float64, dragged *stone.Stone) {
	if dragged == nil {
		return
	}
	dragged.SetPosition(x, y)
	dragged.Vel = geom.Vec{}
}

func (m *Mode) OnPointerUp(x, y float64, dragged *stone.Stone) {
	if dragged != nil {
		dragged.StopDrag()
	}
	m.regroup()
}

// spawnFromPool creates a stone at the tap point and eases it up out of the
// pool. A second tap within the double-tap window replaces that stone with
// a gravity well.
func (m *Mode) spawnFromPool(x, y float64) {
	tap := geom.V(x, y)
	isDouble := m.clock-m.lastTapAt < doubleTapTime && m.lastTapPos.Distance(tap) < doubleTapDist
	m.lastTapAt = m.clock
	m.lastTapPos = tap

	if isDouble {
		if m.lastSpawned != nil {
			m.stones = mode.Remove(m.stones, m.lastSpawned)
		}
		w := stone.NewGravityWell(x, y, 3)
		w.SetTarget(x, m.pool.y-w.Radius-12)
		m.stones = append(m.stones, w)
		m.lastSpawned = nil
		return
	}

	mass := 0.4 + m.cfg.Rand.Float64()*2.4
	s := stone.New(x, y, mass)
	if m.cfg.Rand.Float64() < 0.5 {
		s.Label = 2 + m.cfg.Rand.Intn(3)
	}
	s.SetTarget(x, m.pool.y-s.Radius-12)
	m.stones = append(m.stones, s)
	m.lastSpawned = s
}

// regroup recomputes proximity groups from scratch. Singletons are not
// groups.
func (m *Mode) regroup() {
	var loose []*stone.Stone
	for _, s := range m.stones {
		if s.Kind == stone.KindRegular {
			loose = append(loose, s)
		}
	}
	m.groups = m.groups[:0]
	for _, c := range mode.Clusters(loose, GroupThreshold) {
		if len(c) >= 2 {
			m.groups = append(m.groups, c)
		}
	}
}

func (m *Mode) State() mode.State {
	groups := make([][]*stone.Stone, len(m.groups))
	copy(groups, m.groups)
	return mode.ExploreState{Groups: groups}
}

func (m *Mode) toggleRunning() {
	m.running = !m.running
	if !m.running {
		// Freeze, not pause: drifting stones while "paused" read as a bug
		// to a child.
		for _, s := range m.stones {
			s.Vel = geom.Vec{}
		}
	}
}

func (m *Mode) Render(ctx *render.Context) {
	// Group halos under the stones.
	halo := color.RGBA{R: 0x5f, G: 0xb5, B: 0x6b, A: 0x50}
	for _, g := range m.groups {
		var c geom.Vec
		for _, s := range g {
			c = c.Add(s.Pos)
		}
		c = c.Scale(1 / float64(len(g)))
		r := 0.0
		for _, s := range g {
			if d := c.Distance(s.Pos) + s.Radius; d > r {
				r = d
			}
		}
		ctx.FillCircle(c.X, c.Y, r+8, halo)
		ctx.TextCentered(strconv.Itoa(len(g)), c.X, c.Y-r-14, color.RGBA{R: 0x2e, G: 0x2a, B: 0x3a, A: 0xff})
	}

	// Creation pool.
	ctx.FillRect(m.pool.x, m.pool.y, m.pool.w, m.pool.h, color.RGBA{R: 0xd8, G: 0xcc, B: 0xb4, A: 0xaa})
	ctx.StrokeRect(m.pool.x, m.pool.y, m.pool.w, m.pool.h, 2, color.RGBA{R: 0x9a, G: 0x8c, B: 0x6e, A: 0xff})
	ctx.Text("tap for a stone", m.pool.x+10, m.pool.y+18, color.RGBA{R: 0x6b, G: 0x5f, B: 0x49, A: 0xff})
	ctx.Text("tap twice for a well", m.pool.x+10, m.pool.y+34, color.RGBA{R: 0x6b, G: 0x5f, B: 0x49, A: 0xff})

	m.renderButton(ctx, m.runBtn, runLabel(m.running), m.running)
	m.renderButton(ctx, m.resetBtn, "reset", false)

	for _, s := range m.stones {
		ctx.Stone(s)
	}
}

func runLabel(running bool) string {
	if running {
		return "pause"
	}
	return "run"
}

func (m *Mode) renderButton(ctx *render.Context, r rect, label string, active bool) {
	fill := color.RGBA{R: 0xd8, G: 0xcc, B: 0xb4, A: 0xff}
	if active {
		fill = color.RGBA{R: 0xb5, G: 0xd0, B: 0xa0, A: 0xff}
	}
	ctx.FillRect(r.x, r.y, r.w, r.h, fill)
	ctx.StrokeRect(r.x, r.y, r.w, r.h, 2, color.RGBA{R: 0x9a, G: 0x8c, B: 0x6e, A: 0xff})
	ctx.TextCentered(label, r.x+r.w/2, r.y+r.h/2+4, color.RGBA{R: 0x2e, G: 0x2a, B: 0x3a, A: 0xff})
}
