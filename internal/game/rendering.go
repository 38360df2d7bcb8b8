package game

import (
	"strconv"
	"strings"

	"github.com/mitchelldurbincs/CellWarfare/internal/game/core"
)

// This file contains the text rendering of a snapshot for logs and the
// preview tool.

// ANSI color codes
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorBlue   = "\033[34m"
	ColorYellow = "\033[33m"
	ColorWhite  = "\033[37m"
	ColorGray   = "\033[90m"
)

var playerColors = []string{ColorRed, ColorBlue}

const (
	emptySymbol     = "·"
	kingSymbol      = "♔"
	fortifiedSymbol = "#"
	sabotageSymbol  = "$"
	playerSymbols   = "AB"
)

// Text renders the snapshot without colors.
func (s Snapshot) Text() string {
	return s.Render(false)
}

// Render draws the board from the mover's perspective followed by a status
// block. Each cell is two glyphs and a marker: '<' for the cursor, '+' for a
// capturable cell.
func (s Snapshot) Render(color bool) string {
	var sb strings.Builder
	sb.Grow((s.Size*16+8)*(s.Size+2) + 256)

	sb.WriteString("   ")
	for x := 0; x < s.Size; x++ {
		sb.WriteString(core.IntToStringFixedWidth(x, 3))
	}
	sb.WriteString("\n")

	cursor := s.Mover().Cursor
	for y := 0; y < s.Size; y++ {
		sb.WriteString(core.IntToStringFixedWidth(y, 2))
		sb.WriteString("  ")
		for x := 0; x < s.Size; x++ {
			cv := s.Cells[y*s.Size+x]
			c, glyph := cellGlyph(cv, s.FogOfWar)
			if color && c != "" {
				sb.WriteString(c)
			}
			sb.WriteString(glyph)
			if color && c != "" {
				sb.WriteString(ColorReset)
			}
			switch {
			case cursor.X == x && cursor.Y == y:
				sb.WriteByte('<')
			case cv.Available:
				sb.WriteByte('+')
			default:
				sb.WriteByte(' ')
			}
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(emptySymbol + "=neutral " + kingSymbol + "=king " + fortifiedSymbol + "=fortified " +
		sabotageSymbol + "n=sabotage <=cursor +=capturable A/B=players\n")

	for _, p := range s.Players {
		marker := " "
		if p.ID == s.CurrentPlayer && !s.GameOver {
			marker = ">"
		}
		sb.WriteString(marker)
		sb.WriteString(" Player ")
		sb.WriteString(strconv.Itoa(int(p.ID)))
		sb.WriteString(": score ")
		sb.WriteString(strconv.Itoa(p.Score))
		sb.WriteString(" balance ")
		sb.WriteString(strconv.Itoa(p.Balance))
		if p.CommanderActive {
			sb.WriteString(" [commander]")
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Turn ")
	sb.WriteString(strconv.Itoa(s.Turn))
	sb.WriteString(" (")
	sb.WriteString(s.Phase.String())
	sb.WriteString(")")
	if s.GameOver {
		sb.WriteString(" winner: Player ")
		sb.WriteString(strconv.Itoa(int(s.Winner)))
	}
	sb.WriteString("\n")
	if s.LastRejection != "" {
		sb.WriteString("Rejected: ")
		sb.WriteString(s.LastRejection)
		sb.WriteString("\n")
	}
	return sb.String()
}

// cellGlyph returns the color and the two-character glyph of a cell.
func cellGlyph(cv CellView, fogOfWar bool) (string, string) {
	if fogOfWar && !cv.Explored {
		return "", "  "
	}

	owner := cv.DisplayOwner(fogOfWar)
	remembered := !cv.Shows(fogOfWar)
	colorFor := func(o core.Owner) string {
		if remembered {
			return ColorGray
		}
		return getPlayerColor(o)
	}

	switch {
	case cv.King:
		return colorFor(owner), ownerSymbol(owner) + kingSymbol
	case owner != core.OwnerNone && cv.Fortified:
		return colorFor(owner), ownerSymbol(owner) + fortifiedSymbol
	case owner != core.OwnerNone:
		return colorFor(owner), ownerSymbol(owner) + " "
	case cv.Fortified:
		return ColorWhite, " " + fortifiedSymbol
	case cv.Sabotage && !remembered:
		return ColorYellow, sabotageSymbol + strconv.Itoa(cv.SabotageValue%10)
	default:
		return ColorGray, " " + emptySymbol
	}
}

func ownerSymbol(o core.Owner) string {
	pid := o.PlayerIndex()
	if pid < 0 || pid >= len(playerSymbols) {
		return " "
	}
	return playerSymbols[pid : pid+1]
}

// getPlayerColor returns the color for the given owner
func getPlayerColor(o core.Owner) string {
	pid := o.PlayerIndex()
	if pid < 0 || pid >= len(playerColors) {
		return ColorWhite
	}
	return playerColors[pid]
}
