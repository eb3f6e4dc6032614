// Package render wraps the ebiten draw primitives the modes use. Modes call
// these helpers and never touch the ebiten image directly, so the drawing
// surface stays swappable.
package render

import (
	"image/color"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/talgya/stone-garden/internal/stone"
)

// Context carries the current frame's draw target plus the prerendered
// canvas backdrop. One Context lives for the whole session; the target is
// swapped in each Draw call.
type Context struct {
	dst        *ebiten.Image
	background *ebiten.Image
	face       font.Face
	width      int
	height     int
}

// NewContext builds a render context for a canvas of the given size,
// generating the backdrop texture once up front.
func NewContext(width, height int, seed int64) *Context {
	return &Context{
		background: backgroundImage(width, height, seed),
		face:       basicfont.Face7x13,
		width:      width,
		height:     height,
	}
}

// Begin points the context at this frame's target image.
func (c *Context) Begin(dst *ebiten.Image) {
	c.dst = dst
}

// Size returns the canvas dimensions.
func (c *Context) Size() (int, int) {
	return c.width, c.height
}

// Background draws the sand-paper backdrop.
func (c *Context) Background() {
	op := &ebiten.DrawImageOptions{}
	c.dst.DrawImage(c.background, op)
}

func (c *Context) FillCircle(x, y, r float64, col color.Color) {
	vector.DrawFilledCircle(c.dst, float32(x), float32(y), float32(r), col, true)
}

func (c *Context) StrokeCircle(x, y, r, width float64, col color.Color) {
	vector.StrokeCircle(c.dst, float32(x), float32(y), float32(r), float32(width), col, true)
}

func (c *Context) Line(x1, y1, x2, y2, width float64, col color.Color) {
	vector.StrokeLine(c.dst, float32(x1), float32(y1), float32(x2), float32(y2), float32(width), col, true)
}

func (c *Context) FillRect(x, y, w, h float64, col color.Color) {
	vector.DrawFilledRect(c.dst, float32(x), float32(y), float32(w), float32(h), col, true)
}

func (c *Context) StrokeRect(x, y, w, h, width float64, col color.Color) {
	vector.StrokeRect(c.dst, float32(x), float32(y), float32(w), float32(h), float32(width), col, true)
}

// Text draws s with its baseline at (x, y).
func (c *Context) Text(s string, x, y float64, col color.Color) {
	text.Draw(c.dst, s, c.face, int(x), int(y), col)
}

// TextCentered draws s centered horizontally on x.
func (c *Context) TextCentered(s string, x, y float64, col color.Color) {
	b := text.BoundString(c.face, s)
	text.Draw(c.dst, s, c.face, int(x)-b.Dx()/2, int(y), col)
}

// Stone draws a stone: body, rim, optional numeric label, and a darker core
// for gravity wells.
func (c *Context) Stone(s *stone.Stone) {
	body := s.Color.RGBA()
	c.FillCircle(s.Pos.X, s.Pos.Y, s.Radius, body)

	rim := color.RGBA{R: body.R / 2, G: body.G / 2, B: body.B / 2, A: 0xff}
	c.StrokeCircle(s.Pos.X, s.Pos.Y, s.Radius, 2, rim)

	if s.Kind == stone.KindGravityWell {
		c.FillCircle(s.Pos.X, s.Pos.Y, s.Radius*0.4, color.RGBA{A: 0xff})
	}
	if s.Label > 0 {
		c.TextCentered(strconv.Itoa(s.Label), s.Pos.X, s.Pos.Y+4, color.White)
	}
}

// Glow draws a soft highlight ring around a stone, alpha-scaled by level
// in [0, 1].
func (c *Context) Glow(s *stone.Stone, level float64, col color.RGBA) {
	if level <= 0 {
		return
	}
	if level > 1 {
		level = 1
	}
	col.A = uint8(level * 160)
	c.StrokeCircle(s.Pos.X, s.Pos.Y, s.Radius+4, 4, col)
}
