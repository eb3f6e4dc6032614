package challenge

import "github.com/talgya/stone-garden/internal/mode"

// Library returns the built-in challenges in presentation order.
func Library() []Challenge {
	return []Challenge{
		{
			ID:    "explore-first-group",
			Mode:  mode.KindFreeExplore,
			Title: "Make a family",
			Hint:  "Drag two stones close together.",
			Goals: []Goal{GroupCount{N: 1}},
		},
		{
			ID:    "explore-two-groups",
			Mode:  mode.KindFreeExplore,
			Title: "Two families",
			Hint:  "Sort the stones into two separate huddles.",
			Goals: []Goal{GroupCount{N: 2}},
		},
		{
			ID:    "balance-level",
			Mode:  mode.KindBalance,
			Title: "Make it level",
			Hint:  "Put stones on both sides until the beam rests flat.",
			Goals: []Goal{Balanced{}},
		},
		{
			ID:    "balance-use-them-all",
			Mode:  mode.KindBalance,
			Title: "Every stone counts",
			Hint:  "Place all the stones and keep the beam level.",
			Goals: []Goal{Balanced{}, AllPlaced{}},
		},
		{
			ID:    "stack-three",
			Mode:  mode.KindStack,
			Title: "Three high",
			Hint:  "Stack three stones without a topple.",
			Goals: []Goal{StackHeight{Min: 3}},
		},
		{
			ID:    "stack-five",
			Mode:  mode.KindStack,
			Title: "A tower of five",
			Hint:  "Keep the pile centered as it grows.",
			Goals: []Goal{StackHeight{Min: 5}},
		},
		{
			ID:    "structures-make-five",
			Mode:  mode.KindStructures,
			Title: "Build a five",
			Hint:  "Arrange five stones like the spots on a die.",
			Goals: []Goal{StructureValue{Value: 5, Intact: true}},
			Setup: &mode.Setup{
				Loose: []mode.SetupStone{
					{X: 300, Y: 250}, {X: 420, Y: 240}, {X: 540, Y: 260},
					{X: 340, Y: 420}, {X: 500, Y: 430},
				},
			},
		},
		{
			ID:    "structures-add-to-seven",
			Mode:  mode.KindStructures,
			Title: "Three and four make...",
			Hint:  "Push the two patterns together.",
			Goals: []Goal{StructureValue{Value: 7, Intact: true}},
			Setup: &mode.Setup{
				Structures: []mode.SetupStructure{
					{Value: 3, X: 260, Y: 320},
					{Value: 4, X: 700, Y: 320},
				},
			},
		},
	}
}

// ForMode filters the library down to one mode's challenges.
func ForMode(kind mode.Kind) []Challenge {
	var out []Challenge
	for _, c := range Library() {
		if c.Mode == kind {
			out = append(out, c)
		}
	}
	return out
}
