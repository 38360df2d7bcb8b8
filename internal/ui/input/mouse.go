package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// pointer is the mouse state for one frame.
type pointer struct {
	x, y       int
	leftClick  bool
	rightClick bool
}

// readPointer samples the mouse. Clicks are edge-triggered.
func readPointer() pointer {
	x, y := ebiten.CursorPosition()
	return pointer{
		x:          x,
		y:          y,
		leftClick:  inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		rightClick: inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight),
	}
}
