package app

import (
	"path/filepath"
	"testing"

	"github.com/talgya/stone-garden/internal/mode"
	"github.com/talgya/stone-garden/internal/progress"
	"github.com/talgya/stone-garden/internal/render"
	"github.com/talgya/stone-garden/internal/stone"
)

func newTestGame(t *testing.T) (*Game, *progress.DB) {
	t.Helper()
	db, err := progress.Open(filepath.Join(t.TempDir(), "progress.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	g, err := New(Config{Width: 960, Height: 640, Seed: 5, DB: db})
	if err != nil {
		t.Fatalf("new game: %v", err)
	}
	return g, db
}

// stubMode reports a canned state so challenge evaluation can be driven
// without staging real interactions.
type stubMode struct {
	kind  mode.Kind
	state mode.State
}

func (s *stubMode) Kind() mode.Kind                            { return s.kind }
func (s *stubMode) Init()                                      {}
func (s *stubMode) Update(float64)                             {}
func (s *stubMode) Render(*render.Context)                     {}
func (s *stubMode) Cleanup()                                   {}
func (s *stubMode) OnPointerDown(x, y float64) *stone.Stone    { return nil }
func (s *stubMode) OnPointerMove(x, y float64, d *stone.Stone) {}
func (s *stubMode) OnPointerUp(x, y float64, d *stone.Stone)   {}
func (s *stubMode) State() mode.State                          { return s.state }

func TestStartsInFreeExplore(t *testing.T) {
	g, _ := newTestGame(t)
	if g.active.Kind() != mode.KindFreeExplore {
		t.Errorf("initial mode = %v", g.active.Kind())
	}
	if g.current == nil || g.current.ID != "explore-first-group" {
		t.Errorf("initial challenge = %+v", g.current)
	}
}

func TestSwitcherChangesMode(t *testing.T) {
	g, _ := newTestGame(t)
	bx, by, bw, bh := g.switcher.slot(2) // stack
	g.pointerDown(bx+bw/2, by+bh/2)

	if g.active.Kind() != mode.KindStack {
		t.Errorf("mode after switch = %v", g.active.Kind())
	}
	if g.current == nil || g.current.ID != "stack-three" {
		t.Errorf("challenge after switch = %+v", g.current)
	}
}

func TestEvaluationRecordsCompletion(t *testing.T) {
	g, db := newTestGame(t)
	pair := []*stone.Stone{stone.New(0, 0, 1), stone.New(10, 0, 1)}
	g.active = &stubMode{
		kind:  mode.KindFreeExplore,
		state: mode.ExploreState{Groups: [][]*stone.Stone{pair}},
	}

	g.evaluate()

	if !g.completed["explore-first-group"] {
		t.Fatal("completion not tracked in memory")
	}
	done, err := db.IsCompleted("explore-first-group")
	if err != nil || !done {
		t.Fatalf("completion not persisted (err %v)", err)
	}
	if g.current == nil || g.current.ID != "explore-two-groups" {
		t.Errorf("did not advance, current = %+v", g.current)
	}
	if g.banner.remaining <= 0 {
		t.Error("no win banner shown")
	}
}

func TestUnmetGoalsDoNotComplete(t *testing.T) {
	g, db := newTestGame(t)
	g.active = &stubMode{kind: mode.KindFreeExplore, state: mode.ExploreState{}}

	g.evaluate()

	if len(g.completed) != 0 {
		t.Error("empty state completed a challenge")
	}
	set, _ := db.Completed()
	if len(set) != 0 {
		t.Error("empty state persisted a completion")
	}
}

func TestCompletedChallengesSkippedOnLoad(t *testing.T) {
	db, err := progress.Open(filepath.Join(t.TempDir(), "progress.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	db.MarkCompleted("explore-first-group")

	g, err := New(Config{Width: 960, Height: 640, Seed: 5, DB: db})
	if err != nil {
		t.Fatalf("new game: %v", err)
	}
	if g.current == nil || g.current.ID != "explore-two-groups" {
		t.Errorf("persisted completion not honored, current = %+v", g.current)
	}
}

func TestChallengeSetupLoadedOnSwitch(t *testing.T) {
	g, db := newTestGame(t)
	db.MarkCompleted("structures-make-five")
	g.completed["structures-make-five"] = true

	g.switchTo(mode.KindStructures)

	if g.current == nil || g.current.ID != "structures-add-to-seven" {
		t.Fatalf("current = %+v", g.current)
	}
	st, ok := g.active.State().(mode.StructuresState)
	if !ok {
		t.Fatal("structures mode state missing")
	}
	if len(st.Structures) != 2 {
		t.Fatalf("setup built %d structures, want 2", len(st.Structures))
	}
	if st.Structures[0].Value != 3 || st.Structures[1].Value != 4 {
		t.Errorf("setup values = %+v", st.Structures)
	}
}

func TestHintAppearsAfterIdle(t *testing.T) {
	g, _ := newTestGame(t)
	if g.hint.visible() {
		t.Fatal("hint visible immediately")
	}
	for i := 0; i < int(hintDelay*60)+5; i++ {
		g.step(1.0 / 60.0)
	}
	if !g.hint.visible() {
		t.Fatal("hint never appeared")
	}

	g.pointerDown(10, 320) // any touch hides it again
	if g.hint.visible() {
		t.Error("touch did not reset the hint countdown")
	}
}

func TestBannerExpires(t *testing.T) {
	g, _ := newTestGame(t)
	g.banner.show("done")
	for i := 0; i < int(bannerSeconds*60)+5; i++ {
		g.banner.tick(1.0 / 60.0)
	}
	if g.banner.remaining > 0 {
		t.Error("banner never expired")
	}
}
