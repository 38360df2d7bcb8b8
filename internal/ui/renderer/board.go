package renderer

import (
	"image/color"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"

	"github.com/mitchelldurbincs/CellWarfare/internal/common"
	"github.com/mitchelldurbincs/CellWarfare/internal/game"
)

// BoardRenderer draws the grid from the mover's snapshot.
type BoardRenderer struct {
	tileSize    int
	defaultFont font.Face
	palette     common.Palette

	offsetX, offsetY int

	// Development switches
	showAllTiles    bool
	showCoordinates bool
}

// NewBoardRenderer returns a renderer ready to use.
func NewBoardRenderer(tileSize int, f font.Face, palette common.Palette) *BoardRenderer {
	return &BoardRenderer{tileSize: tileSize, defaultFont: f, palette: palette}
}

// SetOffset moves the board's top-left corner on screen.
func (br *BoardRenderer) SetOffset(x, y int) {
	br.offsetX, br.offsetY = x, y
}

// SetDebug toggles drawing through fog and the coordinate overlay.
func (br *BoardRenderer) SetDebug(showAllTiles, showCoordinates bool) {
	br.showAllTiles = showAllTiles
	br.showCoordinates = showCoordinates
}

// TileSize returns the cell edge in pixels.
func (br *BoardRenderer) TileSize() int { return br.tileSize }

// Draw renders the board on the supplied Ebiten screen.
func (br *BoardRenderer) Draw(screen *ebiten.Image, snap game.Snapshot) {
	fog := snap.FogOfWar && !br.showAllTiles
	ts := float32(br.tileSize)

	for i, cv := range snap.Cells {
		gridX, gridY := i%snap.Size, i/snap.Size
		x := float32(br.offsetX + gridX*br.tileSize)
		y := float32(br.offsetY + gridY*br.tileSize)

		if fog && !cv.Explored {
			vector.DrawFilledRect(screen, x, y, ts, ts, br.palette.FogUnknown, false)
			vector.StrokeRect(screen, x, y, ts, ts, 1, br.palette.GridLines, false)
			continue
		}

		// Background pass
		owner := cv.DisplayOwner(fog)
		fill := br.palette.OwnerColor(owner)
		vector.DrawFilledRect(screen, x, y, ts, ts, fill, false)

		// king marker
		if cv.King {
			m := ts / 2
			vector.DrawFilledRect(screen, x+(ts-m)/2, y+(ts-m)/2, m, m, common.Lighten(fill, common.HighlightShift), false)
			vector.StrokeRect(screen, x+(ts-m)/2, y+(ts-m)/2, m, m, 1, common.KingSymbolColor, false)
			br.drawCentered(screen, "K", x, y, common.KingTextColor)
		}

		if cv.Fortified {
			vector.StrokeRect(screen, x+3, y+3, ts-6, ts-6, 3, br.palette.Fortified, false)
		}

		if cv.Sabotage && cv.Shows(fog) {
			br.drawCentered(screen, "$"+strconv.Itoa(cv.SabotageValue), x, y, br.palette.Sabotage)
		}

		// Overlays
		if !cv.Shows(fog) {
			vector.DrawFilledRect(screen, x, y, ts, ts, br.palette.FogOfWar, false)
		}
		if cv.Available {
			vector.DrawFilledRect(screen, x, y, ts, ts, br.palette.Available, false)
		}

		vector.StrokeRect(screen, x, y, ts, ts, 1, br.palette.GridLines, false)

		if br.showCoordinates && br.defaultFont != nil {
			text.Draw(screen, strconv.Itoa(gridX)+","+strconv.Itoa(gridY), br.defaultFont,
				int(x)+2, int(y)+br.tileSize-2, br.palette.GridLines)
		}
	}

	// cursor on top of everything
	cursor := snap.Mover().Cursor
	if cursor.IsValid(snap.Size) {
		cx := float32(br.offsetX + cursor.X*br.tileSize)
		cy := float32(br.offsetY + cursor.Y*br.tileSize)
		vector.StrokeRect(screen, cx+1, cy+1, ts-2, ts-2, 3, br.palette.Cursor, false)
	}
}

// drawCentered writes s in the middle of the tile at (x, y).
func (br *BoardRenderer) drawCentered(screen *ebiten.Image, s string, x, y float32, clr color.Color) {
	if br.defaultFont == nil {
		return
	}
	b := text.BoundString(br.defaultFont, s)
	textW := b.Max.X - b.Min.X
	textH := b.Max.Y - b.Min.Y

	tx := int(x) + (br.tileSize-textW)/2
	ty := int(y) + (br.tileSize+textH)/2
	text.Draw(screen, s, br.defaultFont, tx, ty, clr)
}
