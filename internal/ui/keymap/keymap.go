// Package keymap turns abstract key presses into engine commands. It holds the
// direction prompt for abilities that need one and has no dependency on the
// windowing library.
package keymap

import (
	"github.com/mitchelldurbincs/CellWarfare/internal/game/abilities"
	"github.com/mitchelldurbincs/CellWarfare/internal/game/core"
)

// Key is a logical key after platform mapping.
type Key int

const (
	KeyNone Key = iota
	KeyUp
	KeyRight
	KeyDown
	KeyLeft
	KeyCapture
	KeyPass
	KeyCancel
	KeyAbility1
	KeyAbility2
	KeyAbility3
	KeyAbility4
	KeyAbility5
	KeyAbility6
	KeyAbility7
)

// AbilityKey returns the key for the zero-based ability index.
func AbilityKey(index int) Key {
	if index < 0 || index >= abilities.NumKinds {
		return KeyNone
	}
	return KeyAbility1 + Key(index)
}

func (k Key) direction() (core.Direction, bool) {
	switch k {
	case KeyUp:
		return core.Up, true
	case KeyRight:
		return core.Right, true
	case KeyDown:
		return core.Down, true
	case KeyLeft:
		return core.Left, true
	}
	return core.NoDirection, false
}

func (k Key) ability() (abilities.Kind, bool) {
	if k < KeyAbility1 || k > KeyAbility7 {
		return 0, false
	}
	kind, err := abilities.FromIndex(int(k - KeyAbility1))
	return kind, err == nil
}

// Mapper converts key presses into commands for the player to move.
type Mapper struct {
	pending    abilities.Kind
	hasPending bool
}

// NewMapper creates a mapper with no pending prompt.
func NewMapper() *Mapper {
	return &Mapper{}
}

// Press handles one key. It returns a command when the key completes one.
// Commands carry no PlayerID; the caller stamps the mover.
func (m *Mapper) Press(k Key) (core.Command, bool) {
	if m.hasPending {
		if dir, ok := k.direction(); ok {
			kind := m.pending
			m.Cancel()
			return core.Command{Type: core.CommandAbility, Ability: int(kind), Direction: dir}, true
		}
		if k == KeyCancel {
			m.Cancel()
			return core.Command{}, false
		}
	}

	if dir, ok := k.direction(); ok {
		return core.Command{Type: core.CommandMoveCursor, Direction: dir}, true
	}
	if kind, ok := k.ability(); ok {
		if kind.NeedsDirection() {
			m.pending, m.hasPending = kind, true
			return core.Command{}, false
		}
		m.Cancel()
		return core.Command{Type: core.CommandAbility, Ability: int(kind), Direction: core.NoDirection}, true
	}

	switch k {
	case KeyCapture:
		m.Cancel()
		return core.Command{Type: core.CommandCapture, Direction: core.NoDirection}, true
	case KeyPass:
		m.Cancel()
		return core.Command{Type: core.CommandPass, Direction: core.NoDirection}, true
	}
	return core.Command{}, false
}

// Pending reports the ability waiting for a direction, if any.
func (m *Mapper) Pending() (abilities.Kind, bool) {
	return m.pending, m.hasPending
}

// Cancel drops any pending direction prompt.
func (m *Mapper) Cancel() {
	m.pending, m.hasPending = 0, false
}
