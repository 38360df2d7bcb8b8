package core

// MoveCursor steps the player's cursor one cell in direction, clamped to the
// board. It returns ErrInvalidDirection for anything but the four cardinals.
func MoveCursor(b *Board, p *Player, direction Direction) error {
	if !direction.IsValid() {
		return ErrInvalidDirection
	}
	p.Cursor = p.Cursor.Move(direction)
	ClampCursor(b, p)
	return nil
}

// ClampCursor forces the cursor back onto the board.
func ClampCursor(b *Board, p *Player) {
	p.Cursor.X = clamp(p.Cursor.X, 0, b.Size-1)
	p.Cursor.Y = clamp(p.Cursor.Y, 0, b.Size-1)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
