// Guess game: pose a hidden-weights puzzle, freeze the beam, take one of
// three predictions, then reveal. Only this mode auto-advances puzzles.

package balance

import (
	"image/color"

	"github.com/talgya/stone-garden/internal/render"
	"github.com/talgya/stone-garden/internal/stone"
)

type guess uint8

const (
	guessLeft guess = iota
	guessBalanced
	guessRight
)

func (g guess) String() string {
	switch g {
	case guessLeft:
		return "left"
	case guessRight:
		return "right"
	default:
		return "balanced"
	}
}

type quizState uint8

const (
	stateIdle quizState = iota
	stateWaiting
	stateRevealed
)

const (
	feedbackSeconds = 2.5
	maxDifficulty   = 5
)

// gameState models the guess game's transient state with explicit countdown
// fields advanced by the frame update; no timers, no goroutines.
type gameState struct {
	enabled    bool
	state      quizState
	picked     guess
	correct    bool
	feedback   float64
	difficulty int
	btns       [3]rect
}

func (g *gameState) reset() {
	*g = gameState{btns: g.btns, difficulty: 1}
}

func (g *gameState) layout(w, h float64) {
	bw, bh := 110.0, 34.0
	y := h - 130
	for i := range g.btns {
		g.btns[i] = rect{x: w/2 + float64(i-1)*(bw+14) - bw/2, y: y, w: bw, h: bh}
	}
}

// frozen reports whether beam physics is held at neutral.
func (g *gameState) frozen() bool {
	return g.enabled && g.state == stateWaiting
}

// tick advances the feedback countdown; true means the feedback expired and
// the mode should pose a new puzzle.
func (g *gameState) tick(dt float64) bool {
	if !g.enabled || g.state != stateRevealed {
		return false
	}
	g.feedback -= dt
	if g.feedback <= 0 {
		g.feedback = 0
		return true
	}
	return false
}

func (g *gameState) hitGuess(x, y float64) (guess, bool) {
	if !g.enabled || g.state != stateWaiting {
		return 0, false
	}
	for i, b := range g.btns {
		if b.contains(x, y) {
			return guess(i), true
		}
	}
	return 0, false
}

func (g *gameState) guess(picked, answer guess) {
	g.picked = picked
	g.correct = picked == answer
	g.state = stateRevealed
	g.feedback = feedbackSeconds
	if g.correct && g.difficulty < maxDifficulty {
		g.difficulty++
	}
}

func (m *Mode) toggleQuiz() {
	if m.game.enabled {
		m.game.reset()
		m.restoreFreePlay()
		return
	}
	m.game.enabled = true
	m.game.difficulty = 1
	m.game.layout(m.cfg.Width, m.cfg.Height)
	m.newPuzzle()
}

// restoreFreePlay puts the tray stones back for unstructured weighing.
func (m *Mode) restoreFreePlay() {
	m.stones = nil
	m.left = nil
	m.right = nil
	m.traySlot = make(map[*stone.Stone]int)
	m.angle = 0
	for i := 0; i < trayStones; i++ {
		mass := float64(1 + m.cfg.Rand.Intn(4))
		s := stone.New(0, 0, mass)
		s.Label = int(mass)
		m.traySlot[s] = i
		slot := m.trayPos(i)
		s.SetPosition(slot.X, slot.Y)
		m.stones = append(m.stones, s)
	}
}

// newPuzzle builds a difficulty-scaled random puzzle with stones
// pre-assigned to sides, freezes the beam at neutral, and hides totals.
func (m *Mode) newPuzzle() {
	m.stones = nil
	m.left = nil
	m.right = nil
	m.traySlot = make(map[*stone.Stone]int)

	d := m.game.difficulty
	count := 2 + m.cfg.Rand.Intn(d+1)
	if count < 2 {
		count = 2
	}

	for i := 0; i < count; i++ {
		mass := float64(1 + m.cfg.Rand.Intn(2+d))
		s := stone.New(0, 0, mass)
		s.Locked = true
		// First two stones seed one side each so neither pan is empty.
		toLeft := i%2 == 0
		if i >= 2 {
			toLeft = m.cfg.Rand.Float64() < 0.5
		}
		if toLeft {
			m.left = append(m.left, s)
		} else {
			m.right = append(m.right, s)
		}
		m.stones = append(m.stones, s)
	}

	// Place stones directly onto their pans.
	m.angle = 0
	m.layoutPans()
	for _, s := range m.stones {
		s.SetPosition(s.Target.X, s.Target.Y)
	}

	m.game.state = stateWaiting
	m.game.feedback = 0
}

func (m *Mode) renderQuiz(ctx *render.Context) {
	dark := color.RGBA{R: 0x2e, G: 0x2a, B: 0x3a, A: 0xff}
	fill := color.RGBA{R: 0xd8, G: 0xcc, B: 0xb4, A: 0xff}
	edge := color.RGBA{R: 0x9a, G: 0x8c, B: 0x6e, A: 0xff}

	label := "guess game"
	if m.game.enabled {
		label = "free play"
	}
	ctx.FillRect(m.quizBtn.x, m.quizBtn.y, m.quizBtn.w, m.quizBtn.h, fill)
	ctx.StrokeRect(m.quizBtn.x, m.quizBtn.y, m.quizBtn.w, m.quizBtn.h, 2, edge)
	ctx.TextCentered(label, m.quizBtn.x+m.quizBtn.w/2, m.quizBtn.y+m.quizBtn.h/2+4, dark)

	if !m.game.enabled {
		return
	}

	switch m.game.state {
	case stateWaiting:
		ctx.TextCentered("which side is heavier?", m.cfg.Width/2, m.game.btns[0].y-16, dark)
		names := [3]string{"left", "balanced", "right"}
		for i, b := range m.game.btns {
			ctx.FillRect(b.x, b.y, b.w, b.h, fill)
			ctx.StrokeRect(b.x, b.y, b.w, b.h, 2, edge)
			ctx.TextCentered(names[i], b.x+b.w/2, b.y+b.h/2+4, dark)
		}
	case stateRevealed:
		msg := "not quite, it was " + m.answer().String()
		col := color.RGBA{R: 0xb5, G: 0x4a, B: 0x42, A: 0xff}
		if m.game.correct {
			msg = "right! it was " + m.answer().String()
			col = color.RGBA{R: 0x3a, G: 0x7d, B: 0x44, A: 0xff}
		}
		ctx.TextCentered(msg, m.cfg.Width/2, m.game.btns[0].y, col)
	}
}
