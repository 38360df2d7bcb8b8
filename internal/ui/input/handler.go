package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/mitchelldurbincs/CellWarfare/internal/common"
	"github.com/mitchelldurbincs/CellWarfare/internal/game/abilities"
	"github.com/mitchelldurbincs/CellWarfare/internal/game/core"
	"github.com/mitchelldurbincs/CellWarfare/internal/ui/keymap"
)

// keyBindings maps physical keys to logical keys. Order matters only for
// keys pressed in the same frame.
var keyBindings = []struct {
	key    ebiten.Key
	action keymap.Key
}{
	{ebiten.KeyW, keymap.KeyUp},
	{ebiten.KeyArrowUp, keymap.KeyUp},
	{ebiten.KeyD, keymap.KeyRight},
	{ebiten.KeyArrowRight, keymap.KeyRight},
	{ebiten.KeyS, keymap.KeyDown},
	{ebiten.KeyArrowDown, keymap.KeyDown},
	{ebiten.KeyA, keymap.KeyLeft},
	{ebiten.KeyArrowLeft, keymap.KeyLeft},
	{ebiten.KeySpace, keymap.KeyCapture},
	{ebiten.KeyEnter, keymap.KeyCapture},
	{ebiten.KeyP, keymap.KeyPass},
	{ebiten.KeyEscape, keymap.KeyCancel},
	{ebiten.KeyDigit1, keymap.KeyAbility1},
	{ebiten.KeyDigit2, keymap.KeyAbility2},
	{ebiten.KeyDigit3, keymap.KeyAbility3},
	{ebiten.KeyDigit4, keymap.KeyAbility4},
	{ebiten.KeyDigit5, keymap.KeyAbility5},
	{ebiten.KeyDigit6, keymap.KeyAbility6},
	{ebiten.KeyDigit7, keymap.KeyAbility7},
	{ebiten.KeyNumpad1, keymap.KeyAbility1},
	{ebiten.KeyNumpad2, keymap.KeyAbility2},
	{ebiten.KeyNumpad3, keymap.KeyAbility3},
	{ebiten.KeyNumpad4, keymap.KeyAbility4},
	{ebiten.KeyNumpad5, keymap.KeyAbility5},
	{ebiten.KeyNumpad6, keymap.KeyAbility6},
	{ebiten.KeyNumpad7, keymap.KeyAbility7},
}

// Handler polls keyboard and mouse once per frame and produces commands for
// the player to move.
type Handler struct {
	mapper *keymap.Mapper

	mouse pointer

	// Board geometry
	tileSize     int
	boardOffsetX int
	boardOffsetY int
	boardSize    int

	// Click-to-walk target
	walkTarget core.Coordinate
	walking    bool

	restart bool
}

// NewHandler creates a handler for a board drawn with tileSize pixel cells.
func NewHandler(tileSize int) *Handler {
	return &Handler{
		mapper:   keymap.NewMapper(),
		tileSize: tileSize,
	}
}

// Update reads this frame's input. cursor is the mover's cursor; it is used to
// step toward a clicked cell one move per frame.
func (h *Handler) Update(cursor core.Coordinate) []core.Command {
	h.mouse = readPointer()
	h.restart = inpututil.IsKeyJustPressed(ebiten.KeyR)

	var cmds []core.Command
	for _, b := range keyBindings {
		if !inpututil.IsKeyJustPressed(b.key) {
			continue
		}
		h.walking = false
		if cmd, ok := h.mapper.Press(b.action); ok {
			cmds = append(cmds, cmd)
		}
	}

	if h.mouse.leftClick {
		if target, ok := h.HoveredTile(); ok {
			h.walkTarget, h.walking = target, true
		}
	}
	if h.mouse.rightClick {
		h.walking = false
		h.mapper.Cancel()
	}

	if h.walking && len(cmds) == 0 {
		dir := common.StepToward(cursor, h.walkTarget)
		if dir == core.NoDirection {
			h.walking = false
		} else {
			cmds = append(cmds, core.Command{Type: core.CommandMoveCursor, Direction: dir})
		}
	}
	return cmds
}

// SetBoard records where the board is drawn and how large its cells are.
func (h *Handler) SetBoard(offsetX, offsetY, size, tileSize int) {
	h.tileSize = tileSize
	h.boardOffsetX = offsetX
	h.boardOffsetY = offsetY
	h.boardSize = size
}

// HoveredTile returns the cell under the mouse, if any.
func (h *Handler) HoveredTile() (core.Coordinate, bool) {
	return common.TileAt(h.mouse.x-h.boardOffsetX, h.mouse.y-h.boardOffsetY, h.tileSize, h.boardSize)
}

// Pending reports the ability waiting for a direction key.
func (h *Handler) Pending() (abilities.Kind, bool) {
	return h.mapper.Pending()
}

// RestartRequested reports whether R was pressed this frame.
func (h *Handler) RestartRequested() bool {
	return h.restart
}

// Reset clears prompts and walking, for example when the turn changes.
func (h *Handler) Reset() {
	h.mapper.Cancel()
	h.walking = false
}
