package play

import (
	"image/color"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// tintDuration is how long a bridge takes to change colour, in seconds.
const tintDuration = 0.25

// tint is a colour that eases towards a target.
type tint struct {
	from, to color.NRGBA
	tween    *gween.Tween
	t        float32
}

func newTint(c color.NRGBA) *tint {
	return &tint{from: c, to: c, t: 1}
}

// set starts easing from the current colour to c.
func (ti *tint) set(c color.NRGBA) {
	if c == ti.to {
		return
	}
	ti.from = ti.current()
	ti.to = c
	ti.t = 0
	ti.tween = gween.New(0, 1, tintDuration, ease.OutQuad)
}

func (ti *tint) update(dt float32) {
	if ti.tween == nil {
		return
	}
	val, done := ti.tween.Update(dt)
	ti.t = val
	if done {
		ti.t = 1
		ti.tween = nil
	}
}

func (ti *tint) current() color.NRGBA {
	lerp := func(a, b uint8) uint8 {
		return uint8(float32(a) + (float32(b)-float32(a))*ti.t + 0.5)
	}
	return color.NRGBA{
		R: lerp(ti.from.R, ti.to.R),
		G: lerp(ti.from.G, ti.to.G),
		B: lerp(ti.from.B, ti.to.B),
		A: lerp(ti.from.A, ti.to.A),
	}
}
