// Package app owns the window loop: it drives the active mode with
// measured frame deltas, forwards pointer events, evaluates the current
// challenge after every release, and records completions.
package app

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/talgya/stone-garden/internal/challenge"
	"github.com/talgya/stone-garden/internal/mode"
	"github.com/talgya/stone-garden/internal/mode/balance"
	"github.com/talgya/stone-garden/internal/mode/explore"
	"github.com/talgya/stone-garden/internal/mode/stack"
	"github.com/talgya/stone-garden/internal/mode/structures"
	"github.com/talgya/stone-garden/internal/progress"
	"github.com/talgya/stone-garden/internal/render"
	"github.com/talgya/stone-garden/internal/stone"
)

// Config carries the window and storage settings.
type Config struct {
	Width  int
	Height int
	Seed   int64
	DB     *progress.DB
}

// Game implements ebiten.Game over the four modes.
type Game struct {
	cfg Config

	modes  map[mode.Kind]mode.Mode
	order  []mode.Kind
	active mode.Mode

	dragged *stone.Stone
	last    time.Time

	db        *progress.DB
	completed map[string]bool
	current   *challenge.Challenge // nil once a mode's challenges run out
	hint      hintBubble
	banner    banner
	switcher  switcher

	ctx *render.Context
}

// New builds the game with all four modes registered and Free Explore
// active.
func New(cfg Config) (*Game, error) {
	mcfg := mode.Config{
		Width:  float64(cfg.Width),
		Height: float64(cfg.Height),
		Rand:   rand.New(rand.NewSource(cfg.Seed)),
	}

	g := &Game{
		cfg: cfg,
		modes: map[mode.Kind]mode.Mode{
			mode.KindFreeExplore: explore.New(mcfg),
			mode.KindBalance:     balance.New(mcfg),
			mode.KindStack:       stack.New(mcfg),
			mode.KindStructures:  structures.New(mcfg),
		},
		order: []mode.Kind{
			mode.KindFreeExplore, mode.KindBalance,
			mode.KindStack, mode.KindStructures,
		},
		db:        cfg.DB,
		completed: map[string]bool{},
	}
	g.switcher = newSwitcher(g.order, float64(cfg.Width))
	g.hint.reset()

	if g.db != nil {
		done, err := g.db.Completed()
		if err != nil {
			return nil, fmt.Errorf("load progress: %w", err)
		}
		g.completed = done
	}

	g.switchTo(mode.KindFreeExplore)
	return g, nil
}

// switchTo tears down the active mode and brings up another, loading the
// next open challenge's setup when the mode supports it.
func (g *Game) switchTo(kind mode.Kind) {
	if g.active != nil {
		g.active.Cleanup()
		g.dragged = nil
	}
	g.active = g.modes[kind]
	g.active.Init()
	g.current = g.nextChallenge(kind)
	g.hint.reset()

	if g.current != nil && g.current.Setup != nil {
		if loader, ok := g.active.(mode.Loader); ok {
			loader.LoadSetup(*g.current.Setup)
		}
	}
	slog.Info("mode switched", "mode", kind)
}

// nextChallenge picks the first uncompleted challenge for a mode.
func (g *Game) nextChallenge(kind mode.Kind) *challenge.Challenge {
	for _, c := range challenge.ForMode(kind) {
		if !g.completed[c.ID] {
			ch := c
			return &ch
		}
	}
	return nil
}

// Update advances one frame: measured clamped delta into the mode, then
// pointer dispatch, then challenge evaluation on release.
func (g *Game) Update() error {
	now := time.Now()
	if g.last.IsZero() {
		g.last = now
	}
	dt := mode.ClampDelta(now.Sub(g.last).Seconds())
	g.last = now

	x, y := ebiten.CursorPosition()
	fx, fy := float64(x), float64(y)

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.pointerDown(fx, fy)
	}
	if g.dragged != nil {
		g.pointerMove(fx, fy)
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		g.pointerUp(fx, fy)
	}

	g.step(dt)
	return nil
}

// step runs the per-frame work that has no ebiten dependency.
func (g *Game) step(dt float64) {
	g.active.Update(dt)
	g.hint.tick(dt)
	g.banner.tick(dt)
}

func (g *Game) pointerDown(x, y float64) {
	g.hint.touch()
	if kind, ok := g.switcher.hit(x, y); ok {
		if g.active == nil || g.active.Kind() != kind {
			g.switchTo(kind)
		}
		return
	}
	g.dragged = g.active.OnPointerDown(x, y)
}

func (g *Game) pointerMove(x, y float64) {
	g.active.OnPointerMove(x, y, g.dragged)
}

func (g *Game) pointerUp(x, y float64) {
	g.hint.touch()
	g.active.OnPointerUp(x, y, g.dragged)
	g.dragged = nil
	g.evaluate()
}

// evaluate checks the current challenge against the mode's state and
// records a win.
func (g *Game) evaluate() {
	c := g.current
	if c == nil {
		return
	}
	if !challenge.Evaluate(c.Goals, g.active.State()) {
		return
	}

	g.completed[c.ID] = true
	if g.db != nil {
		if err := g.db.MarkCompleted(c.ID); err != nil {
			slog.Error("record completion", "id", c.ID, "err", err)
		}
	}
	slog.Info("challenge done", "id", c.ID, "title", c.Title)
	g.banner.show(c.Title + " ✓")
	g.current = g.nextChallenge(g.active.Kind())
}

// Draw renders the background, the active mode, and the periphery.
func (g *Game) Draw(screen *ebiten.Image) {
	if g.ctx == nil {
		g.ctx = render.NewContext(g.cfg.Width, g.cfg.Height, g.cfg.Seed)
	}
	g.ctx.Begin(screen)
	g.ctx.Background()
	g.active.Render(g.ctx)

	g.switcher.render(g.ctx, g.active.Kind())
	if g.current != nil {
		g.renderChallenge(g.ctx)
	}
	g.banner.render(g.ctx, float64(g.cfg.Width))
	g.hint.render(g.ctx, g.hintText(), float64(g.cfg.Width), float64(g.cfg.Height))
}

func (g *Game) hintText() string {
	if g.current == nil {
		return ""
	}
	return g.current.Hint
}

// Layout reports the fixed logical size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}
