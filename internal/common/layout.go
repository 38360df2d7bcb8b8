package common

import "github.com/mitchelldurbincs/CellWarfare/internal/config"

// ScreenLayout is the pixel geometry of one match. It is computed once when
// the match starts so a config reload cannot resize the board mid-match.
type ScreenLayout struct {
	Width, Height int
	HUDHeight     int
	TileSize      int
	OffsetX       int
	OffsetY       int
}

// NewScreenLayout fits a size x size board into the window above the HUD and
// centers it.
func NewScreenLayout(ui config.UIConfig, size int) ScreenLayout {
	l := ScreenLayout{
		Width:     ui.Window.Width,
		Height:    ui.Window.Height,
		HUDHeight: ui.Game.HUDHeight,
	}
	area := l.BoardAreaHeight()
	l.TileSize = FitTileSize(ui.Game.TileSize, size, l.Width, area)
	l.OffsetX = Max(0, (l.Width-l.TileSize*size)/2)
	l.OffsetY = Max(0, (area-l.TileSize*size)/2)
	return l
}

// BoardAreaHeight is the height left for the board above the HUD.
func (l ScreenLayout) BoardAreaHeight() int {
	return Max(0, l.Height-l.HUDHeight)
}

// FitTileSize shrinks the configured tile size until a size x size board fits
// in width x height. It never returns less than 4.
func FitTileSize(configured, size, width, height int) int {
	if size <= 0 {
		return configured
	}
	tile := Min(configured, Min(width/size, height/size))
	return Max(tile, 4)
}
