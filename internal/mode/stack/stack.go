// Package stack implements the Stack Balance mode: drop stones onto a
// platform, keep the tower's center of mass over the base, watch it topple
// when you don't.
package stack

import (
	"image/color"
	"math"

	"github.com/talgya/stone-garden/internal/geom"
	"github.com/talgya/stone-garden/internal/mode"
	"github.com/talgya/stone-garden/internal/render"
	"github.com/talgya/stone-garden/internal/stone"
)

// bodyState is the per-stone state machine.
type bodyState uint8

const (
	stateAvailable bodyState = iota // in tray
	stateFalling                    // dropped, under gravity
	stateStacked                    // landed, stable
	stateToppling                   // ejected from an unstable stack
)

const (
	platformWidth = 230.0
	trayCount     = 7

	// StabilityTolerance is the allowed centroid offset as a fraction of
	// the platform half-width.
	StabilityTolerance = 0.45
)

// body pairs a stone with the stack-mode state the shared entity does not
// carry: FSM state, wobble spring, topple spin, and color-reaction levels.
type body struct {
	s     *stone.Stone
	state bodyState

	// Lateral wobble around the resting x, decaying.
	wobbleAmp float64
	wobbleT   float64
	baseX     float64

	// Topple rotation, draw-only.
	spin  float64
	angle float64

	// Color reactions.
	glow   float64
	sparkT float64
	blend  color.RGBA
}

// Mode is the Stack Balance engine.
type Mode struct {
	cfg mode.Config

	stones []*stone.Stone // draw/z-order collection
	bodies map[*stone.Stone]*body
	// stacked keeps landing order, bottom of the pile first.
	stacked []*body

	platform geom.Vec // center of the platform top edge

	traySlot map[*stone.Stone]int
}

// New creates an uninitialized Stack Balance mode.
func New(cfg mode.Config) *Mode {
	return &Mode{cfg: cfg}
}

func (m *Mode) Kind() mode.Kind { return mode.KindStack }

func (m *Mode) Init() {
	m.platform = geom.V(m.cfg.Width/2, m.cfg.Height-160)
	m.bodies = make(map[*stone.Stone]*body)
	m.traySlot = make(map[*stone.Stone]int)

	for i := 0; i < trayCount; i++ {
		mass := 0.6 + m.cfg.Rand.Float64()*1.8
		s := stone.New(0, 0, mass)
		s.Color = stone.ColorID(m.cfg.Rand.Intn(6))
		m.traySlot[s] = i
		slot := m.trayPos(i)
		s.SetPosition(slot.X, slot.Y)
		m.stones = append(m.stones, s)
		m.bodies[s] = &body{s: s, state: stateAvailable, blend: s.Color.RGBA()}
	}
}

func (m *Mode) Cleanup() {
	for _, s := range m.stones {
		s.StopDrag()
	}
	m.stones = nil
	m.bodies = nil
	m.stacked = nil
	m.traySlot = nil
}

func (m *Mode) trayPos(i int) geom.Vec {
	return geom.V(70+float64(i)*64, m.cfg.Height-60)
}

func (m *Mode) Update(dt float64) {
	dt = mode.ClampDelta(dt)

	m.stepFalling(dt)
	m.stepStacked(dt)
	m.stepToppling(dt)
	m.updateReactions(dt)

	mode.StepAll(m.stones, dt)
}

func (m *Mode) OnPointerDown(x, y float64) *stone.Stone {
	s := mode.TopmostAt(m.stones, x, y)
	if s == nil {
		return nil
	}
	b := m.bodies[s]
	if b.state == stateToppling {
		// Toppling stones are lost; no re-entry.
		return nil
	}
	if !s.StartDrag() {
		return nil
	}

	if b.state == stateStacked {
		m.unstack(b)
		// Removing a stone can destabilize or restabilize the rest.
		m.checkStability()
	}
	b.state = stateAvailable
	b.wobbleAmp = 0
	s.Vel = geom.Vec{}
	m.stones = mode.BringToTop(m.stones, s)
	s.SetPosition(x, y)
	return s
}

func (m *Mode) OnPointerMove(x, y float64, dragged *stone.Stone) {
	if dragged != nil {
		dragged.SetPosition(x, y)
	}
}

func (m *Mode) OnPointerUp(x, y float64, dragged *stone.Stone) {
	if dragged == nil {
		return
	}
	dragged.StopDrag()
	b := m.bodies[dragged]

	if y > m.cfg.Height-110 {
		// Released over the tray: back to its slot.
		b.state = stateAvailable
		slot := m.trayPos(m.traySlot[dragged])
		dragged.SetTarget(slot.X, slot.Y)
		return
	}

	b.state = stateFalling
	dragged.Vel = geom.Vec{}
}

func (m *Mode) unstack(b *body) {
	for i, cur := range m.stacked {
		if cur == b {
			m.stacked = append(m.stacked[:i], m.stacked[i+1:]...)
			return
		}
	}
}

func (m *Mode) State() mode.State {
	stacked := make([]*stone.Stone, len(m.stacked))
	for i, b := range m.stacked {
		stacked[i] = b.s
	}
	unplaced := 0
	for _, b := range m.bodies {
		if b.state == stateAvailable && !b.s.Dragging {
			unplaced++
		}
	}
	return mode.StackState{Stacked: stacked, Unplaced: unplaced}
}

func (m *Mode) Render(ctx *render.Context) {
	wood := color.RGBA{R: 0x8a, G: 0x6a, B: 0x46, A: 0xff}
	half := platformWidth / 2

	// Platform and pedestal.
	ctx.FillRect(m.platform.X-half, m.platform.Y, platformWidth, 14, wood)
	ctx.FillRect(m.platform.X-24, m.platform.Y+14, 48, 90, color.RGBA{R: 0x5c, G: 0x45, B: 0x2c, A: 0xff})

	// Tray line.
	ctx.Line(30, m.cfg.Height-30, m.cfg.Width-30, m.cfg.Height-30, 3, color.RGBA{R: 0x9a, G: 0x8c, B: 0x6e, A: 0xff})

	for _, s := range m.stones {
		b := m.bodies[s]
		ctx.FillCircle(s.Pos.X, s.Pos.Y, s.Radius, b.blend)
		rim := color.RGBA{R: b.blend.R / 2, G: b.blend.G / 2, B: b.blend.B / 2, A: 0xff}
		ctx.StrokeCircle(s.Pos.X, s.Pos.Y, s.Radius, 2, rim)
		if b.state == stateToppling {
			// A chord shows the spin.
			dx := math.Cos(b.angle) * s.Radius * 0.8
			dy := math.Sin(b.angle) * s.Radius * 0.8
			ctx.Line(s.Pos.X-dx, s.Pos.Y-dy, s.Pos.X+dx, s.Pos.Y+dy, 2, rim)
		}
		if b.glow > 0 {
			ctx.Glow(s, b.glow, color.RGBA{R: 0xff, G: 0xf0, B: 0x9a})
		}
		if b.sparkT > 0 {
			ctx.StrokeCircle(s.Pos.X, s.Pos.Y, s.Radius+8+(0.3-b.sparkT)*40, 2,
				color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: uint8(b.sparkT / 0.3 * 220)})
		}
	}
}
