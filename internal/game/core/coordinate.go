package core

import (
	"fmt"
	"strings"
)

// Coordinate represents a position on the game board
type Coordinate struct {
	X, Y int
}

// NewCoordinate creates a new coordinate with the given x and y values
func NewCoordinate(x, y int) Coordinate {
	return Coordinate{X: x, Y: y}
}

// FromIndex creates a coordinate from a board array index using row-major ordering
func FromIndex(idx, width int) Coordinate {
	return Coordinate{
		X: idx % width,
		Y: idx / width,
	}
}

// IsValid checks if the coordinate is within a size x size board
func (c Coordinate) IsValid(size int) bool {
	return c.X >= 0 && c.X < size && c.Y >= 0 && c.Y < size
}

// ToIndex converts the coordinate to a board array index using row-major ordering
func (c Coordinate) ToIndex(width int) int {
	return c.Y*width + c.X
}

// DistanceTo calculates the Manhattan distance to another coordinate
func (c Coordinate) DistanceTo(other Coordinate) int {
	return abs(c.X-other.X) + abs(c.Y-other.Y)
}

// ChebyshevTo calculates the king-move distance to another coordinate
func (c Coordinate) ChebyshevTo(other Coordinate) int {
	dx := abs(c.X - other.X)
	dy := abs(c.Y - other.Y)
	if dx > dy {
		return dx
	}
	return dy
}

// Neighbors returns the four orthogonal neighbors of this coordinate
func (c Coordinate) Neighbors() []Coordinate {
	return []Coordinate{
		{X: c.X, Y: c.Y - 1}, // Up
		{X: c.X + 1, Y: c.Y}, // Right
		{X: c.X, Y: c.Y + 1}, // Down
		{X: c.X - 1, Y: c.Y}, // Left
	}
}

// Ring returns the eight surrounding coordinates, row by row.
func (c Coordinate) Ring() []Coordinate {
	ring := make([]Coordinate, 0, 8)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			ring = append(ring, Coordinate{X: c.X + dx, Y: c.Y + dy})
		}
	}
	return ring
}

// Square returns every coordinate within the given Chebyshev radius that lies
// on a size x size board.
func (c Coordinate) Square(radius, size int) []Coordinate {
	if radius < 0 {
		return nil
	}
	out := make([]Coordinate, 0, (2*radius+1)*(2*radius+1))
	for y := c.Y - radius; y <= c.Y+radius; y++ {
		for x := c.X - radius; x <= c.X+radius; x++ {
			p := Coordinate{X: x, Y: y}
			if p.IsValid(size) {
				out = append(out, p)
			}
		}
	}
	return out
}

// Add returns a new coordinate that is the sum of this coordinate and another
func (c Coordinate) Add(other Coordinate) Coordinate {
	return Coordinate{
		X: c.X + other.X,
		Y: c.Y + other.Y,
	}
}

// String returns a string representation of the coordinate
func (c Coordinate) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Direction represents a cardinal direction
type Direction int

const (
	NoDirection Direction = iota - 1
	Up
	Right
	Down
	Left
)

// DirectionVectors provides coordinate offsets for each direction
var DirectionVectors = map[Direction]Coordinate{
	Up:    {X: 0, Y: -1},
	Right: {X: 1, Y: 0},
	Down:  {X: 0, Y: 1},
	Left:  {X: -1, Y: 0},
}

// IsValid reports whether d is one of the four cardinal directions.
func (d Direction) IsValid() bool {
	_, ok := DirectionVectors[d]
	return ok
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Right:
		return "right"
	case Down:
		return "down"
	case Left:
		return "left"
	case NoDirection:
		return "none"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// ParseDirection decodes keyboard input (WASD or a direction name) into a
// Direction. It is meant to be called once at the input boundary.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "w", "up", "arrowup":
		return Up, nil
	case "d", "right", "arrowright":
		return Right, nil
	case "s", "down", "arrowdown":
		return Down, nil
	case "a", "left", "arrowleft":
		return Left, nil
	default:
		return NoDirection, fmt.Errorf("%q: %w", s, ErrInvalidDirection)
	}
}

// Move returns a new coordinate moved one step in the given direction
func (c Coordinate) Move(direction Direction) Coordinate {
	if offset, ok := DirectionVectors[direction]; ok {
		return c.Add(offset)
	}
	return c
}

// Line returns length coordinates starting at c and stepping in direction.
// Out-of-bounds points are included; callers decide how to treat them.
func (c Coordinate) Line(direction Direction, length int) []Coordinate {
	if length <= 0 || !direction.IsValid() {
		return nil
	}
	line := make([]Coordinate, 0, length)
	p := c
	for i := 0; i < length; i++ {
		line = append(line, p)
		p = p.Move(direction)
	}
	return line
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
