package challenge

import (
	"testing"

	"github.com/talgya/stone-garden/internal/mode"
	"github.com/talgya/stone-garden/internal/stone"
)

func TestEvaluateRejectsEmptyInputs(t *testing.T) {
	if Evaluate(nil, mode.BalanceState{Balanced: true}) {
		t.Error("no goals should never satisfy")
	}
	if Evaluate([]Goal{Balanced{}}, nil) {
		t.Error("nil state should never satisfy")
	}
}

func TestGoalModeMismatchIsFalse(t *testing.T) {
	cases := []struct {
		name  string
		goal  Goal
		state mode.State
	}{
		{"group count vs balance", GroupCount{N: 1}, mode.BalanceState{}},
		{"balanced vs explore", Balanced{}, mode.ExploreState{}},
		{"stack height vs structures", StackHeight{Min: 1}, mode.StructuresState{}},
		{"structure value vs stack", StructureValue{Value: 5}, mode.StackState{}},
		{"all placed vs explore", AllPlaced{}, mode.ExploreState{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if Evaluate([]Goal{tc.goal}, tc.state) {
				t.Error("mismatched state satisfied the goal")
			}
		})
	}
}

func TestGroupCount(t *testing.T) {
	pair := []*stone.Stone{stone.New(0, 0, 1), stone.New(10, 0, 1)}
	st := mode.ExploreState{Groups: [][]*stone.Stone{pair, pair}}
	if !Evaluate([]Goal{GroupCount{N: 2}}, st) {
		t.Error("two groups did not satisfy N=2")
	}
	if Evaluate([]Goal{GroupCount{N: 3}}, st) {
		t.Error("two groups satisfied N=3")
	}
}

func TestBalancedAndAllPlaced(t *testing.T) {
	st := mode.BalanceState{Balanced: true, Unplaced: 2}
	if !Evaluate([]Goal{Balanced{}}, st) {
		t.Error("balanced state rejected")
	}
	if Evaluate([]Goal{Balanced{}, AllPlaced{}}, st) {
		t.Error("stones still in the tray but AllPlaced passed")
	}
	st.Unplaced = 0
	if !Evaluate([]Goal{Balanced{}, AllPlaced{}}, st) {
		t.Error("combined goals rejected a winning state")
	}
}

func TestStackHeightAsMinimum(t *testing.T) {
	stones := []*stone.Stone{stone.New(0, 0, 1), stone.New(0, -36, 1), stone.New(0, -72, 1)}
	st := mode.StackState{Stacked: stones}
	if !Evaluate([]Goal{StackHeight{Min: 3}}, st) {
		t.Error("three stacked rejected for Min=3")
	}
	if !Evaluate([]Goal{StackHeight{Min: 2}}, st) {
		t.Error("minimum is not a ceiling")
	}
	if Evaluate([]Goal{StackHeight{Min: 4}}, st) {
		t.Error("three stacked satisfied Min=4")
	}
}

func TestStructureValueIntactFlag(t *testing.T) {
	st := mode.StructuresState{Structures: []mode.StructureInfo{
		{Value: 5, Intact: false},
		{Value: 7, Intact: true},
	}}
	if !Evaluate([]Goal{StructureValue{Value: 5}}, st) {
		t.Error("value match without intact requirement rejected")
	}
	if Evaluate([]Goal{StructureValue{Value: 5, Intact: true}}, st) {
		t.Error("broken five passed an intact requirement")
	}
	if !Evaluate([]Goal{StructureValue{Value: 7, Intact: true}}, st) {
		t.Error("intact seven rejected")
	}
	if Evaluate([]Goal{StructureValue{Value: 9}}, st) {
		t.Error("absent value satisfied")
	}
}

func TestLibraryWellFormed(t *testing.T) {
	seen := map[string]bool{}
	for _, c := range Library() {
		if c.ID == "" || c.Title == "" || c.Hint == "" {
			t.Errorf("challenge %q missing text", c.ID)
		}
		if seen[c.ID] {
			t.Errorf("duplicate challenge id %q", c.ID)
		}
		seen[c.ID] = true
		if len(c.Goals) == 0 {
			t.Errorf("challenge %q has no goals", c.ID)
		}
	}
	for _, kind := range []mode.Kind{mode.KindFreeExplore, mode.KindBalance, mode.KindStack, mode.KindStructures} {
		if len(ForMode(kind)) == 0 {
			t.Errorf("no challenges for %v", kind)
		}
	}
}
