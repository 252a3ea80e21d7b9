package play

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/bridges"
)

// EbitenSource polls the mouse and touch screen through ebiten. It must be
// polled from the game's Update.
type EbitenSource struct {
	touchIDs []ebiten.TouchID
	touches  []bridges.TouchPoint
}

// Poll implements bridges.FrameSource.
func (s *EbitenSource) Poll() bridges.Frame {
	mx, my := ebiten.CursorPosition()

	s.touchIDs = ebiten.AppendTouchIDs(s.touchIDs[:0])
	s.touches = s.touches[:0]
	for _, id := range s.touchIDs {
		tx, ty := ebiten.TouchPosition(id)
		s.touches = append(s.touches, bridges.TouchPoint{ID: int(id), X: float64(tx), Y: float64(ty)})
	}

	return bridges.Frame{
		MouseX:    float64(mx),
		MouseY:    float64(my),
		MouseDown: ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		Touches:   s.touches,
	}
}
