package mode

import "github.com/talgya/stone-garden/internal/stone"

// State is the narrow queryable view of a mode the challenge evaluator
// reads. Evaluators must treat it as read-only.
type State interface {
	stateKind() Kind
}

// ExploreState exposes the current proximity groups.
type ExploreState struct {
	Groups [][]*stone.Stone
}

// BalanceState exposes pan contents and the settled balance flag.
type BalanceState struct {
	Left     []*stone.Stone
	Right    []*stone.Stone
	Balanced bool
	// Unplaced counts stones still in the tray.
	Unplaced int
}

// StackState exposes the stones currently resting on the stack.
type StackState struct {
	Stacked  []*stone.Stone
	Unplaced int
}

// StructuresState exposes recognized structures by value and intactness.
type StructuresState struct {
	Structures []StructureInfo
}

type StructureInfo struct {
	Value  int
	Intact bool
}

func (ExploreState) stateKind() Kind    { return KindFreeExplore }
func (BalanceState) stateKind() Kind    { return KindBalance }
func (StackState) stateKind() Kind      { return KindStack }
func (StructuresState) stateKind() Kind { return KindStructures }
