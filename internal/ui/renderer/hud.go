package renderer

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"

	"github.com/mitchelldurbincs/CellWarfare/internal/common"
	"github.com/mitchelldurbincs/CellWarfare/internal/game"
	"github.com/mitchelldurbincs/CellWarfare/internal/game/abilities"
)

const (
	hudLineHeight = 16
	hudPadding    = 8
	helpLine      = "WASD/arrows move  Space/Enter capture  1-7 abilities  P pass  click walks the cursor"
)

// HUDRenderer draws scores, the ability menu and status lines below the board.
type HUDRenderer struct {
	face    font.Face
	palette common.Palette
}

// NewHUDRenderer creates a HUD renderer.
func NewHUDRenderer(f font.Face, palette common.Palette) *HUDRenderer {
	return &HUDRenderer{face: f, palette: palette}
}

// Prompt is the direction prompt shown while an ability waits for a direction.
type Prompt struct {
	Kind   abilities.Kind
	Active bool
}

// Lines builds the left column of the HUD. It is separate from Draw so the
// text can be checked without a window.
func Lines(snap game.Snapshot, prompt Prompt) []string {
	var lines []string
	if snap.GameOver {
		lines = append(lines, fmt.Sprintf("Player %d wins after %d turns. Press R for a new match.", int(snap.Winner), snap.Turn))
	} else {
		lines = append(lines, fmt.Sprintf("Turn %d: Player %d to move", snap.Turn, int(snap.CurrentPlayer)))
	}

	for _, p := range snap.Players {
		line := fmt.Sprintf("Player %d  score %d  balance %d  abilities %d", int(p.ID), p.Score, p.Balance, p.AbilityUses.Total())
		if p.CommanderActive {
			line += "  [commander]"
		}
		if p.ID == snap.CurrentPlayer && p.AbilityUsedThisTurn {
			line += "  (ability used)"
		}
		lines = append(lines, line)
	}

	if prompt.Active {
		lines = append(lines, fmt.Sprintf("%s: choose a direction (Esc cancels)", prompt.Kind))
	}
	if snap.LastRejection != "" {
		lines = append(lines, "Rejected: "+snap.LastRejection)
	}
	lines = append(lines, helpLine)
	return lines
}

// AbilityLines builds the ability menu column.
func AbilityLines(snap game.Snapshot) []string {
	lines := make([]string, 0, len(snap.Abilities))
	for _, a := range snap.Abilities {
		cost := fmt.Sprintf("%d", a.EffectiveCost)
		if a.EffectiveCost != a.BaseCost {
			cost = fmt.Sprintf("%d (was %d)", a.EffectiveCost, a.BaseCost)
		}
		line := fmt.Sprintf("%d %-13s %s", a.Index+1, a.Name, cost)
		if a.Uses > 0 {
			line += fmt.Sprintf("  x%d", a.Uses)
		}
		lines = append(lines, line)
	}
	return lines
}

// Draw renders the HUD in the band starting at top.
func (h *HUDRenderer) Draw(screen *ebiten.Image, snap game.Snapshot, prompt Prompt, top, width, height int) {
	if h.face == nil || height <= 0 {
		return
	}
	vector.DrawFilledRect(screen, 0, float32(top), float32(width), float32(height), common.Lighten(h.palette.Background, 15), false)

	y := top + hudPadding + hudLineHeight
	for i, line := range Lines(snap, prompt) {
		clr := color.Color(h.palette.Text)
		switch {
		case i == 1 || i == 2:
			clr = h.palette.Players[i-1]
		case len(line) > 9 && line[:9] == "Rejected:":
			clr = h.palette.Sabotage
		}
		text.Draw(screen, line, h.face, hudPadding, y, clr)
		y += hudLineHeight
	}

	x := width/2 + hudPadding
	y = top + hudPadding + hudLineHeight
	for i, line := range AbilityLines(snap) {
		clr := color.Color(h.palette.Text)
		if i < len(snap.Abilities) && !snap.Abilities[i].Usable {
			clr = h.palette.GridLines
		}
		text.Draw(screen, line, h.face, x, y, clr)
		y += hudLineHeight
	}
}
