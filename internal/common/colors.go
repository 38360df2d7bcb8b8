package common

import (
	"image/color"

	"github.com/mitchelldurbincs/CellWarfare/internal/config"
	"github.com/mitchelldurbincs/CellWarfare/internal/game/core"
)

// Palette is the resolved color scheme for the desktop client
type Palette struct {
	Neutral    color.RGBA
	Players    [core.NumPlayers]color.RGBA
	Background color.RGBA
	GridLines  color.RGBA
	Cursor     color.RGBA
	Available  color.RGBA // overlay on capturable cells
	Fortified  color.RGBA
	Sabotage   color.RGBA
	FogOfWar   color.RGBA // overlay on remembered cells
	FogUnknown color.RGBA // fill for unexplored cells
	Text       color.RGBA
}

// Glyph colors
var (
	KingSymbolColor = color.White
	KingTextColor   = color.Black
	HighlightShift  = 30
)

// NewPalette converts the configured RGB triples into a Palette.
func NewPalette(c config.ColorsConfig) Palette {
	return Palette{
		Neutral:    RGB(c.Players.Neutral),
		Players:    [core.NumPlayers]color.RGBA{RGB(c.Players.Player1), RGB(c.Players.Player2)},
		Background: RGB(c.UI.Background),
		GridLines:  RGB(c.UI.GridLines),
		Cursor:     RGB(c.UI.Cursor),
		Available:  RGBA(c.UI.Available),
		Fortified:  RGB(c.UI.Fortified),
		Sabotage:   RGB(c.UI.Sabotage),
		FogOfWar:   RGBA(c.UI.FogOfWar),
		FogUnknown: RGBA(c.UI.FogUnknown),
		Text:       RGB(c.UI.Text),
	}
}

// DefaultPalette is the palette of the loaded configuration.
func DefaultPalette() Palette {
	return NewPalette(config.Get().Colors)
}

// OwnerColor returns the fill for a cell owner.
func (p Palette) OwnerColor(o core.Owner) color.RGBA {
	pid := o.PlayerIndex()
	if pid < 0 || pid >= core.NumPlayers {
		return p.Neutral
	}
	return p.Players[pid]
}

// RGB builds an opaque color from a config triple.
func RGB(v [3]int) color.RGBA {
	return color.RGBA{R: channel(v[0]), G: channel(v[1]), B: channel(v[2]), A: 255}
}

// RGBA builds a color from a config quadruple.
func RGBA(v [4]int) color.RGBA {
	return color.RGBA{R: channel(v[0]), G: channel(v[1]), B: channel(v[2]), A: channel(v[3])}
}

// Lighten returns c with every channel raised by amount, saturating at 255.
func Lighten(c color.RGBA, amount int) color.RGBA {
	return color.RGBA{
		R: channel(int(c.R) + amount),
		G: channel(int(c.G) + amount),
		B: channel(int(c.B) + amount),
		A: c.A,
	}
}

func channel(v int) uint8 {
	return uint8(Clamp(v, 0, 255))
}
