// Package mode defines the lifecycle contract every interactive mode
// implements, plus the shared stone-collection helpers and the queryable
// state variants the challenge evaluator consumes.
package mode

import (
	"math/rand"

	"github.com/talgya/stone-garden/internal/render"
	"github.com/talgya/stone-garden/internal/stone"
)

// Kind identifies one of the four interactive experiences.
type Kind uint8

const (
	KindFreeExplore Kind = iota
	KindBalance
	KindStack
	KindStructures
)

func (k Kind) String() string {
	switch k {
	case KindFreeExplore:
		return "explore"
	case KindBalance:
		return "balance"
	case KindStack:
		return "stack"
	case KindStructures:
		return "structures"
	}
	return "unknown"
}

// Config is passed to each mode at construction instead of module-level
// constants. Rand is injected so tests stay deterministic.
type Config struct {
	Width  float64
	Height float64
	Rand   *rand.Rand
}

// MaxDelta caps the per-frame time step before any integration, so a
// stalled frame cannot tunnel stones through each other.
const MaxDelta = 1.0 / 20.0

// ClampDelta limits dt to MaxDelta.
func ClampDelta(dt float64) float64 {
	if dt > MaxDelta {
		return MaxDelta
	}
	if dt < 0 {
		return 0
	}
	return dt
}

// Mode is the four-phase lifecycle plus pointer hooks. The driver owns one
// active instance: Init populates the stone collection, Update advances one
// frame, Render draws background then stones in z-order, Cleanup clears all
// owned collections and must leave no dangling drag state.
//
// OnPointerDown returns the grabbed stone (nil for none) and is the only
// place a drag begins. The driver tracks that reference across the gesture
// and passes it back into OnPointerMove and OnPointerUp.
type Mode interface {
	Kind() Kind
	Init()
	Update(dt float64)
	Render(ctx *render.Context)
	Cleanup()

	OnPointerDown(x, y float64) *stone.Stone
	OnPointerMove(x, y float64, dragged *stone.Stone)
	OnPointerUp(x, y float64, dragged *stone.Stone)

	State() State
}

// Setup is an optional initial configuration a challenge may carry:
// prebuilt structures and loose stones a mode applies at init time.
type Setup struct {
	Structures []SetupStructure
	Loose      []SetupStone
}

type SetupStructure struct {
	Value int
	X, Y  float64
}

type SetupStone struct {
	X, Y  float64
	Mass  float64
	Label int
}

// Loader is implemented by modes that support configuration loading.
type Loader interface {
	LoadSetup(Setup)
}
