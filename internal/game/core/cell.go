package core

import "fmt"

// NumPlayers is fixed: the game is strictly two-player.
const NumPlayers = 2

// Owner identifies who holds a cell. OwnerNone is a neutral cell.
type Owner int

const (
	OwnerNone    Owner = 0
	OwnerPlayer1 Owner = 1
	OwnerPlayer2 Owner = 2
)

// OwnerFor converts a player index (0 or 1) into its Owner value.
func OwnerFor(playerIdx int) Owner {
	if playerIdx < 0 || playerIdx >= NumPlayers {
		return OwnerNone
	}
	return Owner(playerIdx + 1)
}

// PlayerIndex returns 0 or 1 for a player owner and -1 for OwnerNone.
func (o Owner) PlayerIndex() int {
	if o == OwnerNone {
		return -1
	}
	return int(o) - 1
}

// Opponent returns the other player's owner value. OwnerNone has no opponent.
func (o Owner) Opponent() Owner {
	switch o {
	case OwnerPlayer1:
		return OwnerPlayer2
	case OwnerPlayer2:
		return OwnerPlayer1
	default:
		return OwnerNone
	}
}

func (o Owner) String() string {
	switch o {
	case OwnerNone:
		return "none"
	case OwnerPlayer1, OwnerPlayer2:
		return fmt.Sprintf("player%d", int(o))
	default:
		return fmt.Sprintf("Owner(%d)", int(o))
	}
}

// FogState is one player's knowledge of a cell.
type FogState struct {
	Visible       bool
	Explored      bool  // sticky once set
	LastSeenOwner Owner // owner observed the last time the cell was visible
}

// Cell represents a single grid position.
type Cell struct {
	Owner         Owner
	Sabotage      bool
	SabotageValue int
	Available     bool // legal capture target for the player to move
	Fortified     bool
	Fog           [NumPlayers]FogState

	king bool
}

func (c *Cell) IsKing() bool    { return c.king }
func (c *Cell) IsNeutral() bool { return c.Owner == OwnerNone }

// IsEnemyOf reports whether the cell is held by a player other than o.
func (c *Cell) IsEnemyOf(o Owner) bool {
	return c.Owner != OwnerNone && c.Owner != o
}

// IsVisibleTo reports whether the player index currently sees this cell.
func (c *Cell) IsVisibleTo(playerIdx int) bool {
	if playerIdx < 0 || playerIdx >= NumPlayers {
		return false
	}
	return c.Fog[playerIdx].Visible
}

// IsExploredBy reports whether the player index has ever seen this cell.
func (c *Cell) IsExploredBy(playerIdx int) bool {
	if playerIdx < 0 || playerIdx >= NumPlayers {
		return false
	}
	return c.Fog[playerIdx].Explored
}

// Observe marks the cell visible and explored for a player and records the
// live owner.
func (c *Cell) Observe(playerIdx int) {
	if playerIdx < 0 || playerIdx >= NumPlayers {
		return
	}
	c.Fog[playerIdx].Visible = true
	c.Fog[playerIdx].Explored = true
	c.Fog[playerIdx].LastSeenOwner = c.Owner
}

// Explore records the live owner without granting current visibility.
func (c *Cell) Explore(playerIdx int) {
	if playerIdx < 0 || playerIdx >= NumPlayers {
		return
	}
	c.Fog[playerIdx].Explored = true
	c.Fog[playerIdx].LastSeenOwner = c.Owner
}
