package core

import (
	"fmt"
	"sort"
)

// Tier holds the tuning values keyed by board size.
type Tier struct {
	Size             int
	VisibilityRadius int
	ScoutingRadius   int
	InitialTerritory int
	SabotageDivisor  int
	MinSabotage      int
}

// SabotageTarget is the number of sabotage cells a board of this tier wants.
func (t Tier) SabotageTarget() int {
	want := 0
	if t.SabotageDivisor > 0 {
		want = (t.Size * t.Size) / t.SabotageDivisor
	}
	if want < t.MinSabotage {
		want = t.MinSabotage
	}
	return want
}

// TierTable is the set of supported board sizes.
type TierTable []Tier

// DefaultTiers returns the built-in tier table.
func DefaultTiers() TierTable {
	return TierTable{
		{Size: 16, VisibilityRadius: 3, ScoutingRadius: 3, InitialTerritory: 5, SabotageDivisor: 17, MinSabotage: 3},
		{Size: 32, VisibilityRadius: 4, ScoutingRadius: 4, InitialTerritory: 8, SabotageDivisor: 20, MinSabotage: 6},
		{Size: 64, VisibilityRadius: 6, ScoutingRadius: 5, InitialTerritory: 12, SabotageDivisor: 24, MinSabotage: 12},
	}
}

// Validate checks that the table is usable.
func (tt TierTable) Validate() error {
	if len(tt) == 0 {
		return fmt.Errorf("tier table is empty")
	}
	seen := make(map[int]bool, len(tt))
	for i, t := range tt {
		switch {
		case t.Size < 3:
			return fmt.Errorf("tier %d: size must be at least 3, got %d", i, t.Size)
		case seen[t.Size]:
			return fmt.Errorf("tier %d: duplicate size %d", i, t.Size)
		case t.VisibilityRadius < 0 || t.ScoutingRadius < 0:
			return fmt.Errorf("tier %d: radii must be non-negative", i)
		case t.InitialTerritory < 1:
			return fmt.Errorf("tier %d: initial territory must be positive", i)
		case t.SabotageDivisor <= 0:
			return fmt.Errorf("tier %d: sabotage divisor must be positive", i)
		case t.MinSabotage < 0:
			return fmt.Errorf("tier %d: min sabotage must be non-negative", i)
		}
		seen[t.Size] = true
	}
	return nil
}

// Select snaps a requested board size to a supported tier. Requests outside the
// table clamp to the nearest end; requests between two tiers go to the nearer
// one, ties to the smaller.
func (tt TierTable) Select(requested int) Tier {
	if len(tt) == 0 {
		return DefaultTiers().Select(requested)
	}
	sorted := make(TierTable, len(tt))
	copy(sorted, tt)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Size < sorted[j].Size })

	best := sorted[0]
	for _, t := range sorted[1:] {
		if abs(t.Size-requested) < abs(best.Size-requested) {
			best = t
		}
	}
	return best
}

// Sizes lists the supported board sizes in ascending order.
func (tt TierTable) Sizes() []int {
	sizes := make([]int, 0, len(tt))
	for _, t := range tt {
		sizes = append(sizes, t.Size)
	}
	sort.Ints(sizes)
	return sizes
}
