// Package abilities implements the seven purchasable special abilities: their
// costs, the commander discount, and the board effects.
package abilities

import (
	"fmt"
	"strings"

	"github.com/mitchelldurbincs/CellWarfare/internal/game/core"
)

// Kind identifies an ability. The numeric order is the menu order.
type Kind int

const (
	Paratrooper Kind = iota
	ClusterBomb
	AssaultLine
	Commander
	Artillery
	Fortification
	Scouting
	kindCount
)

// NumKinds is the number of abilities.
const NumKinds = int(kindCount)

type kindEntry struct {
	kind        Kind
	name        string
	aliases     []string
	direction   bool
	description string
}

var kindCatalog = []kindEntry{
	{Paratrooper, "Paratrooper", []string{"para"}, false, "claim any cell away from the enemy king"},
	{ClusterBomb, "Cluster Bomb", []string{"clusterbomb", "bomb"}, false, "neutralise the 3x3 area"},
	{AssaultLine, "Assault Line", []string{"assaultline", "assault"}, true, "claim a line of cells"},
	{Commander, "Commander", nil, false, "permanent discount on abilities"},
	{Artillery, "Artillery", []string{"arty"}, false, "neutralise the 5x5 area and destroy forts"},
	{Fortification, "Fortification", []string{"fort"}, true, "fortify two of your cells"},
	{Scouting, "Scouting", []string{"scout"}, false, "reveal the area for this turn"},
}

var kindLookup map[string]Kind

func init() {
	kindLookup = make(map[string]Kind, len(kindCatalog)*2)
	for _, entry := range kindCatalog {
		kindLookup[strings.ToLower(entry.name)] = entry.kind
		for _, alias := range entry.aliases {
			kindLookup[alias] = entry.kind
		}
	}
}

// All lists every ability in menu order.
func All() []Kind {
	out := make([]Kind, 0, NumKinds)
	for _, entry := range kindCatalog {
		out = append(out, entry.kind)
	}
	return out
}

// IsValid reports whether k is a known ability.
func (k Kind) IsValid() bool { return k >= 0 && k < kindCount }

func (k Kind) String() string {
	if !k.IsValid() {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindCatalog[k].name
}

// Description is the one-line menu text for k.
func (k Kind) Description() string {
	if !k.IsValid() {
		return ""
	}
	return kindCatalog[k].description
}

// NeedsDirection reports whether the ability takes a direction argument.
func (k Kind) NeedsDirection() bool {
	return k.IsValid() && kindCatalog[k].direction
}

// FromIndex converts a zero-based menu index into a Kind.
func FromIndex(index int) (Kind, error) {
	k := Kind(index)
	if !k.IsValid() {
		return 0, fmt.Errorf("ability index %d: %w", index, core.ErrUnknownAbility)
	}
	return k, nil
}

// ParseKind looks an ability up by name or alias, case-insensitively.
func ParseKind(name string) (Kind, error) {
	k, ok := kindLookup[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("%q: %w", name, core.ErrUnknownAbility)
	}
	return k, nil
}

// Config holds the tunable numbers of the ability system.
type Config struct {
	Costs                      [NumKinds]int
	DiscountPercent            int
	ParatrooperMinKingDistance int
	ClusterBombRadius          int
	ArtilleryRadius            int
	AssaultLineLength          int
	FortificationLength        int
}

// DefaultConfig returns the standard ability tuning.
func DefaultConfig() Config {
	return Config{
		Costs: [NumKinds]int{
			Paratrooper:   18,
			ClusterBomb:   8,
			AssaultLine:   10,
			Commander:     50,
			Artillery:     20,
			Fortification: 6,
			Scouting:      12,
		},
		DiscountPercent:            35,
		ParatrooperMinKingDistance: 5,
		ClusterBombRadius:          1,
		ArtilleryRadius:            2,
		AssaultLineLength:          3,
		FortificationLength:        2,
	}
}

// Validate checks the config for values that would break the rules.
func (c Config) Validate() error {
	for i, cost := range c.Costs {
		if cost < 0 {
			return fmt.Errorf("%s cost must be non-negative, got %d", Kind(i), cost)
		}
	}
	if c.DiscountPercent < 0 || c.DiscountPercent > 100 {
		return fmt.Errorf("discount must be between 0 and 100, got %d", c.DiscountPercent)
	}
	if c.ClusterBombRadius < 0 || c.ArtilleryRadius < 0 {
		return fmt.Errorf("blast radii must be non-negative")
	}
	if c.AssaultLineLength < 1 || c.FortificationLength < 1 {
		return fmt.Errorf("line lengths must be positive")
	}
	if c.ParatrooperMinKingDistance < 0 {
		return fmt.Errorf("paratrooper king distance must be non-negative")
	}
	return nil
}

// BaseCost returns the undiscounted price of k.
func (c Config) BaseCost(k Kind) int {
	if !k.IsValid() {
		return 0
	}
	return c.Costs[k]
}

// EffectiveCost applies the commander discount: floor(base * (100-discount) / 100).
func EffectiveCost(base int, commanderActive bool, discountPercent int) int {
	if !commanderActive {
		return base
	}
	return base * (100 - discountPercent) / 100
}

// CostFor is the price p would pay for k right now.
func (c Config) CostFor(k Kind, p *core.Player) int {
	return EffectiveCost(c.BaseCost(k), p.CommanderActive, c.DiscountPercent)
}

// CanUse reports why p cannot buy k this turn, or nil.
func (c Config) CanUse(k Kind, p *core.Player) error {
	if !k.IsValid() {
		return core.ErrUnknownAbility
	}
	if p.AbilityUsedThisTurn {
		return core.ErrAbilityAlreadyUsed
	}
	if k == Commander && p.CommanderActive {
		return core.ErrCommanderActive
	}
	if p.Balance() < c.CostFor(k, p) {
		return core.ErrInsufficientScore
	}
	return nil
}

// Entry is one row of the ability menu.
type Entry struct {
	Index          int
	Kind           Kind
	Name           string
	Description    string
	BaseCost       int
	EffectiveCost  int
	NeedsDirection bool
	Affordable     bool
	Usable         bool
	Uses           int
}

// Catalog lists every ability with prices for p. uses is the per-kind usage
// count; it may be nil.
func Catalog(cfg Config, p *core.Player, uses []int) []Entry {
	entries := make([]Entry, 0, NumKinds)
	for _, k := range All() {
		e := Entry{
			Index:          int(k),
			Kind:           k,
			Name:           k.String(),
			Description:    k.Description(),
			BaseCost:       cfg.BaseCost(k),
			EffectiveCost:  cfg.CostFor(k, p),
			NeedsDirection: k.NeedsDirection(),
		}
		e.Affordable = p.Balance() >= e.EffectiveCost
		e.Usable = cfg.CanUse(k, p) == nil
		if int(k) < len(uses) {
			e.Uses = uses[k]
		}
		entries = append(entries, e)
	}
	return entries
}
