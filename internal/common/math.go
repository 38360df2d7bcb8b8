package common

import "github.com/mitchelldurbincs/CellWarfare/internal/game/core"

// Abs returns the absolute value of an integer
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Min returns the minimum of two integers
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the maximum of two integers
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Clamp limits v to [lo, hi]
func Clamp(v, lo, hi int) int {
	return Max(lo, Min(v, hi))
}

// StepToward returns the direction of one cursor step from 'from' toward 'to',
// moving along the longer axis first. It returns NoDirection when they are equal.
func StepToward(from, to core.Coordinate) core.Direction {
	dx, dy := to.X-from.X, to.Y-from.Y
	switch {
	case dx == 0 && dy == 0:
		return core.NoDirection
	case Abs(dx) >= Abs(dy) && dx > 0:
		return core.Right
	case Abs(dx) >= Abs(dy):
		return core.Left
	case dy > 0:
		return core.Down
	default:
		return core.Up
	}
}

// TileAt maps a pixel position relative to the board's top-left corner to the
// cell under it on a size x size board drawn with tileSize pixel cells.
func TileAt(px, py, tileSize, size int) (core.Coordinate, bool) {
	if tileSize <= 0 || px < 0 || py < 0 {
		return core.Coordinate{}, false
	}
	c := core.NewCoordinate(px/tileSize, py/tileSize)
	return c, c.IsValid(size)
}
