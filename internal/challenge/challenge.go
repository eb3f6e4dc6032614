// Package challenge holds the declarative goal descriptors, the built-in
// challenge library, and the evaluator that checks a mode's exposed state
// against a challenge's goals. The evaluator is pure and read-only.
package challenge

import "github.com/talgya/stone-garden/internal/mode"

// Goal is a single declarative completion condition.
type Goal interface {
	satisfied(s mode.State) bool
}

// GroupCount wants exactly N proximity groups in Free Explore.
type GroupCount struct {
	N int
}

// Balanced wants the scale level with at least one pan occupied.
type Balanced struct{}

// StackHeight wants at least Min stones standing in the stack.
type StackHeight struct {
	Min int
}

// StructureValue wants a structure of the given value to exist, optionally
// requiring it to be intact.
type StructureValue struct {
	Value  int
	Intact bool
}

// AllPlaced wants no stones left unplaced in the tray.
type AllPlaced struct{}

func (g GroupCount) satisfied(s mode.State) bool {
	es, ok := s.(mode.ExploreState)
	return ok && len(es.Groups) == g.N
}

func (Balanced) satisfied(s mode.State) bool {
	bs, ok := s.(mode.BalanceState)
	return ok && bs.Balanced
}

func (g StackHeight) satisfied(s mode.State) bool {
	ss, ok := s.(mode.StackState)
	return ok && len(ss.Stacked) >= g.Min
}

func (g StructureValue) satisfied(s mode.State) bool {
	st, ok := s.(mode.StructuresState)
	if !ok {
		return false
	}
	for _, info := range st.Structures {
		if info.Value == g.Value && (!g.Intact || info.Intact) {
			return true
		}
	}
	return false
}

func (AllPlaced) satisfied(s mode.State) bool {
	switch v := s.(type) {
	case mode.BalanceState:
		return v.Unplaced == 0
	case mode.StackState:
		return v.Unplaced == 0
	default:
		return false
	}
}

// Evaluate reports whether the state meets every goal. A nil state, an
// empty goal list, or a goal aimed at a different mode's state evaluates
// as not yet satisfied, never as an error.
func Evaluate(goals []Goal, s mode.State) bool {
	if len(goals) == 0 || s == nil {
		return false
	}
	for _, g := range goals {
		if !g.satisfied(s) {
			return false
		}
	}
	return true
}

// Challenge pairs goals with the mode they run in and an optional initial
// configuration applied by modes that support loading.
type Challenge struct {
	ID    string
	Mode  mode.Kind
	Title string
	Hint  string
	Goals []Goal
	Setup *mode.Setup
}
