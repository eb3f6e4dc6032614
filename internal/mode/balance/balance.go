// Package balance implements the Balance Scale mode: two pans on a tilting
// beam, free-play weighing, and the predict-then-reveal guess game.
package balance

import (
	"image/color"
	"math"
	"strconv"

	"github.com/talgya/stone-garden/internal/geom"
	"github.com/talgya/stone-garden/internal/mode"
	"github.com/talgya/stone-garden/internal/render"
	"github.com/talgya/stone-garden/internal/stone"
)

const (
	// halfBeam is the lever arm applied to every stone on a side. The
	// model is deliberately simplified: cluster position inside the pan
	// does not change the arm.
	halfBeam = 180.0

	// torqueGain converts a torque difference into a target tilt.
	torqueGain = 0.0012

	// maxTilt clamps the beam angle, radians.
	maxTilt = 0.32

	// angleEaseRate is the single-pole smoothing rate toward the target
	// angle, per second. Critically damped on purpose: a spring would
	// oscillate and never settle "balanced".
	angleEaseRate = 3.5

	// balanceEpsilon is the settled-angle threshold for "balanced".
	balanceEpsilon = 0.015

	// panSnapRadius captures a released stone into a pan.
	panSnapRadius = 78.0

	panDrop       = 56.0
	panRadius     = 60.0
	trayStones    = 6
	panRingRadius = 26.0
)

// Mode is the Balance Scale engine.
type Mode struct {
	cfg    mode.Config
	stones []*stone.Stone

	left  []*stone.Stone
	right []*stone.Stone

	pivot       geom.Vec
	angle       float64
	targetAngle float64

	traySlot map[*stone.Stone]int

	game gameState

	quizBtn rect
}

type rect struct {
	x, y, w, h float64
}

func (r rect) contains(x, y float64) bool {
	return x >= r.x && x <= r.x+r.w && y >= r.y && y <= r.y+r.h
}

// New creates an uninitialized Balance Scale mode.
func New(cfg mode.Config) *Mode {
	return &Mode{cfg: cfg}
}

func (m *Mode) Kind() mode.Kind { return mode.KindBalance }

func (m *Mode) Init() {
	m.pivot = geom.V(m.cfg.Width/2, m.cfg.Height*0.42)
	m.quizBtn = rect{x: m.cfg.Width - 170, y: 52, w: 150, h: 30}
	m.targetAngle = 0
	m.game.reset()
	m.game.layout(m.cfg.Width, m.cfg.Height)
	m.restoreFreePlay()
}

func (m *Mode) Cleanup() {
	for _, s := range m.stones {
		s.StopDrag()
	}
	m.stones = nil
	m.left = nil
	m.right = nil
	m.traySlot = nil
	m.game.reset()
}

func (m *Mode) trayPos(i int) geom.Vec {
	return geom.V(80+float64(i)*72, m.cfg.Height-70)
}

// panCenter returns a pan's screen position derived from the beam angle.
// side is -1 for left, +1 for right.
func (m *Mode) panCenter(side float64) geom.Vec {
	return geom.V(
		m.pivot.X+side*halfBeam*math.Cos(m.angle),
		m.pivot.Y+side*halfBeam*math.Sin(m.angle)+panDrop,
	)
}

// sideTorque treats every stone on a side as lever-armed at the full
// half-beam width.
func sideTorque(stones []*stone.Stone) float64 {
	var mass float64
	for _, s := range stones {
		mass += s.Mass
	}
	return mass * halfBeam
}

// targetTilt maps the torque difference to a clamped beam angle.
func targetTilt(leftTorque, rightTorque float64) float64 {
	return geom.Clamp(torqueGain*(rightTorque-leftTorque), -maxTilt, maxTilt)
}

// Balanced is true only when the beam has settled level and the scale is
// actually loaded; an empty scale is never balanced.
func (m *Mode) Balanced() bool {
	if len(m.left)+len(m.right) == 0 {
		return false
	}
	return math.Abs(m.angle) < balanceEpsilon
}

func (m *Mode) Update(dt float64) {
	dt = mode.ClampDelta(dt)

	if m.game.frozen() {
		m.targetAngle = 0
	} else {
		m.targetAngle = targetTilt(sideTorque(m.left), sideTorque(m.right))
	}
	m.angle += (m.targetAngle - m.angle) * geom.Clamp(angleEaseRate*dt, 0, 1)

	m.layoutPans()
	mode.StepAll(m.stones, dt)

	if next := m.game.tick(dt); next {
		m.newPuzzle()
	}
}

// layoutPans retargets every panned stone onto its slot: centered for a
// single stone, a small ring for more.
func (m *Mode) layoutPans() {
	for side, pan := range map[float64][]*stone.Stone{-1: m.left, 1: m.right} {
		c := m.panCenter(side)
		n := len(pan)
		for i, s := range pan {
			if s.Dragging {
				continue
			}
			if n == 1 {
				s.SetTarget(c.X, c.Y-s.Radius*0.4)
				continue
			}
			ang := 2 * math.Pi * float64(i) / float64(n)
			s.SetTarget(c.X+panRingRadius*math.Cos(ang), c.Y-8+panRingRadius*math.Sin(ang)*0.6)
		}
	}
}

func (m *Mode) OnPointerDown(x, y float64) *stone.Stone {
	if m.quizBtn.contains(x, y) {
		m.toggleQuiz()
		return nil
	}
	if btn, ok := m.game.hitGuess(x, y); ok {
		if m.game.state == stateWaiting {
			m.game.guess(btn, m.answer())
		}
		return nil
	}
	if m.game.state == stateWaiting {
		// Physics frozen while a puzzle is posed; stones stay put.
		return nil
	}

	s := mode.TopmostAt(m.stones, x, y)
	if s == nil || !s.StartDrag() {
		return nil
	}
	m.stones = mode.BringToTop(m.stones, s)
	m.left = mode.Remove(m.left, s)
	m.right = mode.Remove(m.right, s)
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

	p := geom.V(x, y)
	switch {
	case p.Distance(m.panCenter(-1)) < panSnapRadius:
		m.left = append(m.left, dragged)
	case p.Distance(m.panCenter(1)) < panSnapRadius:
		m.right = append(m.right, dragged)
	default:
		slot := m.trayPos(m.traySlot[dragged])
		dragged.SetTarget(slot.X, slot.Y)
	}
}

func (m *Mode) State() mode.State {
	unplaced := len(m.stones) - len(m.left) - len(m.right)
	return mode.BalanceState{
		Left:     append([]*stone.Stone(nil), m.left...),
		Right:    append([]*stone.Stone(nil), m.right...),
		Balanced: m.Balanced(),
		Unplaced: unplaced,
	}
}

func (m *Mode) Render(ctx *render.Context) {
	wood := color.RGBA{R: 0x8a, G: 0x6a, B: 0x46, A: 0xff}
	dark := color.RGBA{R: 0x5c, G: 0x45, B: 0x2c, A: 0xff}

	// Fulcrum and beam.
	ctx.Line(m.pivot.X, m.pivot.Y, m.pivot.X-28, m.pivot.Y+90, 8, dark)
	ctx.Line(m.pivot.X, m.pivot.Y, m.pivot.X+28, m.pivot.Y+90, 8, dark)
	lEnd := m.panCenter(-1).Sub(geom.V(0, panDrop))
	rEnd := m.panCenter(1).Sub(geom.V(0, panDrop))
	ctx.Line(lEnd.X, lEnd.Y, rEnd.X, rEnd.Y, 10, wood)

	// Pans hang from the beam ends.
	for _, side := range []float64{-1, 1} {
		c := m.panCenter(side)
		top := c.Sub(geom.V(0, panDrop))
		ctx.Line(top.X, top.Y, c.X-panRadius*0.8, c.Y, 2, dark)
		ctx.Line(top.X, top.Y, c.X+panRadius*0.8, c.Y, 2, dark)
		ctx.Line(c.X-panRadius, c.Y, c.X+panRadius, c.Y, 6, wood)
	}

	// Tray line.
	ctx.Line(40, m.cfg.Height-40, m.cfg.Width-40, m.cfg.Height-40, 3, color.RGBA{R: 0x9a, G: 0x8c, B: 0x6e, A: 0xff})

	for _, s := range m.stones {
		ctx.Stone(s)
	}

	if m.game.enabled && m.game.state != stateRevealed {
		// Totals stay hidden until reveal.
	} else if len(m.left)+len(m.right) > 0 {
		lt, rt := sideTorque(m.left)/halfBeam, sideTorque(m.right)/halfBeam
		ctx.TextCentered(strconv.FormatFloat(lt, 'f', -1, 64), m.panCenter(-1).X, m.panCenter(-1).Y+30, dark)
		ctx.TextCentered(strconv.FormatFloat(rt, 'f', -1, 64), m.panCenter(1).X, m.panCenter(1).Y+30, dark)
	}

	if m.Balanced() {
		ctx.TextCentered("balanced!", m.pivot.X, m.pivot.Y-60, color.RGBA{R: 0x3a, G: 0x7d, B: 0x44, A: 0xff})
	}

	m.renderQuiz(ctx)
}

func (m *Mode) answer() guess {
	lt, rt := sideTorque(m.left), sideTorque(m.right)
	switch {
	case lt > rt:
		return guessLeft
	case rt > lt:
		return guessRight
	default:
		return guessBalanced
	}
}
