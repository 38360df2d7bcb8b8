package core

// Board is a square grid of cells stored row-major.
type Board struct {
	Size int
	T    []Cell // length = Size*Size

	kings  [NumPlayers]Coordinate
	placed [NumPlayers]bool
}

func NewBoard(size int) *Board {
	if size < 1 {
		size = 1
	}
	return &Board{Size: size, T: make([]Cell, size*size)}
}

func (b *Board) Idx(x, y int) int { return y*b.Size + x }

// Coord returns the coordinate of a cell index.
func (b *Board) Coord(idx int) Coordinate { return FromIndex(idx, b.Size) }

// InBounds checks if coordinates are within board boundaries
func (b *Board) InBounds(x, y int) bool {
	return x >= 0 && x < b.Size && y >= 0 && y < b.Size
}

// Contains is InBounds for a Coordinate.
func (b *Board) Contains(c Coordinate) bool { return b.InBounds(c.X, c.Y) }

// IsBorder reports whether c lies on the outer ring of the grid.
func (b *Board) IsBorder(c Coordinate) bool {
	return c.X == 0 || c.Y == 0 || c.X == b.Size-1 || c.Y == b.Size-1
}

// Cell safely returns a cell pointer if the coordinate is valid, nil otherwise
func (b *Board) Cell(c Coordinate) *Cell {
	if !b.Contains(c) {
		return nil
	}
	return &b.T[b.Idx(c.X, c.Y)]
}

// Neighbors4 returns the in-bounds orthogonal neighbors of c.
func (b *Board) Neighbors4(c Coordinate) []Coordinate {
	out := make([]Coordinate, 0, 4)
	for _, n := range c.Neighbors() {
		if b.Contains(n) {
			out = append(out, n)
		}
	}
	return out
}

// Neighbors8 returns the in-bounds cells of the 3x3 ring around c.
func (b *Board) Neighbors8(c Coordinate) []Coordinate {
	out := make([]Coordinate, 0, 8)
	for _, n := range c.Ring() {
		if b.Contains(n) {
			out = append(out, n)
		}
	}
	return out
}

// Owners copies the current ownership of every cell.
func (b *Board) Owners() []Owner {
	owners := make([]Owner, len(b.T))
	for i := range b.T {
		owners[i] = b.T[i].Owner
	}
	return owners
}

// PlaceKing marks c as the king cell of owner and gives it to that owner.
// Each owner gets exactly one king for the lifetime of the board.
func (b *Board) PlaceKing(c Coordinate, owner Owner) error {
	pid := owner.PlayerIndex()
	if pid < 0 || pid >= NumPlayers {
		return ErrInvalidPlayer
	}
	cell := b.Cell(c)
	if cell == nil {
		return ErrInvalidCoordinates
	}
	if b.placed[pid] || cell.king {
		return ErrKingAlreadyPlaced
	}
	cell.king = true
	cell.Owner = owner
	cell.Fortified = false
	cell.Sabotage = false
	cell.SabotageValue = 0
	b.kings[pid] = c
	b.placed[pid] = true
	return nil
}

// KingOf returns the king coordinate of owner and whether it has been placed.
func (b *Board) KingOf(owner Owner) (Coordinate, bool) {
	pid := owner.PlayerIndex()
	if pid < 0 || pid >= NumPlayers {
		return Coordinate{}, false
	}
	return b.kings[pid], b.placed[pid]
}

// SetOwner transfers ownership of c. The king flag is never affected.
func (b *Board) SetOwner(c Coordinate, owner Owner) error {
	cell := b.Cell(c)
	if cell == nil {
		return ErrInvalidCoordinates
	}
	cell.Owner = owner
	return nil
}

// SetFortified toggles the fortification flag. King cells cannot be fortified.
func (b *Board) SetFortified(c Coordinate, fortified bool) error {
	cell := b.Cell(c)
	if cell == nil {
		return ErrInvalidCoordinates
	}
	if cell.king {
		return ErrKingCell
	}
	cell.Fortified = fortified
	return nil
}

// TakeSabotage clears the sabotage bonus on c and returns its value (0 if none).
func (b *Board) TakeSabotage(c Coordinate) int {
	cell := b.Cell(c)
	if cell == nil || !cell.Sabotage {
		return 0
	}
	v := cell.SabotageValue
	cell.Sabotage = false
	cell.SabotageValue = 0
	return v
}

// ClearAvailability resets the per-turn capture targets.
func (b *Board) ClearAvailability() {
	for i := range b.T {
		b.T[i].Available = false
	}
}

// ClearVisibility hides every cell from playerIdx without touching exploration.
func (b *Board) ClearVisibility(playerIdx int) {
	if playerIdx < 0 || playerIdx >= NumPlayers {
		return
	}
	for i := range b.T {
		b.T[i].Fog[playerIdx].Visible = false
	}
}

// CountOwned returns how many cells owner holds.
func (b *Board) CountOwned(owner Owner) int {
	n := 0
	for i := range b.T {
		if b.T[i].Owner == owner {
			n++
		}
	}
	return n
}
