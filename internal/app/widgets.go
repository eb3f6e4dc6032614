package app

import (
	"image/color"

	"github.com/talgya/stone-garden/internal/mode"
	"github.com/talgya/stone-garden/internal/render"
)

const (
	// hintDelay is the idle time before the hint bubble appears.
	hintDelay     = 8.0
	bannerSeconds = 2.5

	switcherHeight = 34.0
	switcherPad    = 6.0
)

var (
	inkColor   = color.RGBA{R: 0x2e, G: 0x2a, B: 0x3a, A: 0xff}
	frameColor = color.RGBA{R: 0x9a, G: 0x8c, B: 0x6e, A: 0xff}
	cardColor  = color.RGBA{R: 0xd8, G: 0xcc, B: 0xb4, A: 0xdd}
	pickColor  = color.RGBA{R: 0xb5, G: 0xd0, B: 0xa0, A: 0xff}
	winColor   = color.RGBA{R: 0x3a, G: 0x7d, B: 0x44, A: 0xff}
)

// hintBubble shows the current challenge hint after a stretch of
// inactivity. The countdown is an explicit field advanced by the frame
// update; no timers, no goroutines.
type hintBubble struct {
	remaining float64
}

func (h *hintBubble) reset() { h.remaining = hintDelay }
func (h *hintBubble) touch() { h.remaining = hintDelay }

func (h *hintBubble) visible() bool { return h.remaining <= 0 }

func (h *hintBubble) tick(dt float64) {
	if h.remaining > 0 {
		h.remaining -= dt
	}
}

func (h *hintBubble) render(ctx *render.Context, text string, width, height float64) {
	if !h.visible() || text == "" {
		return
	}
	w := float64(len(text))*7 + 36
	x := (width - w) / 2
	y := height - 96
	ctx.FillRect(x, y, w, 30, cardColor)
	ctx.StrokeRect(x, y, w, 30, 2, frameColor)
	ctx.TextCentered(text, width/2, y+19, inkColor)
}

// banner flashes a short message, for challenge wins.
type banner struct {
	text      string
	remaining float64
}

func (b *banner) show(text string) {
	b.text = text
	b.remaining = bannerSeconds
}

func (b *banner) tick(dt float64) {
	if b.remaining > 0 {
		b.remaining -= dt
	}
}

func (b *banner) render(ctx *render.Context, width float64) {
	if b.remaining <= 0 {
		return
	}
	ctx.TextCentered(b.text, width/2, switcherHeight+40, winColor)
}

// switcher is the strip of mode buttons across the top of the canvas.
type switcher struct {
	kinds []mode.Kind
	w     float64
}

func newSwitcher(kinds []mode.Kind, width float64) switcher {
	return switcher{kinds: kinds, w: width}
}

func (sw *switcher) slot(i int) (x, y, w, h float64) {
	n := float64(len(sw.kinds))
	w = (sw.w - switcherPad*(n+1)) / n
	x = switcherPad + float64(i)*(w+switcherPad)
	return x, switcherPad, w, switcherHeight - 2*switcherPad + 16
}

func (sw *switcher) hit(x, y float64) (mode.Kind, bool) {
	for i, kind := range sw.kinds {
		bx, by, bw, bh := sw.slot(i)
		if x >= bx && x <= bx+bw && y >= by && y <= by+bh {
			return kind, true
		}
	}
	return 0, false
}

func (sw *switcher) render(ctx *render.Context, active mode.Kind) {
	for i, kind := range sw.kinds {
		bx, by, bw, bh := sw.slot(i)
		fill := cardColor
		if kind == active {
			fill = pickColor
		}
		ctx.FillRect(bx, by, bw, bh, fill)
		ctx.StrokeRect(bx, by, bw, bh, 2, frameColor)
		ctx.TextCentered(kind.String(), bx+bw/2, by+bh/2+4, inkColor)
	}
}

func (g *Game) renderChallenge(ctx *render.Context) {
	label := g.current.Title
	ctx.TextCentered(label, float64(g.cfg.Width)/2, switcherHeight+18, inkColor)
}
