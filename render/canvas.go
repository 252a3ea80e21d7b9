// Package render draws a bridges map, its crossed bridges and the current
// stroke into an image. It backs headless replays and snapshot tests; the
// interactive game draws with ebiten instead.
package render

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/colornames"

	"github.com/phanxgames/bridges"
)

// Palette defines how map features are coloured.
type Palette struct {
	Land          color.Color
	Water         color.Color
	Bridge        color.Color
	BridgeCrossed color.Color
	Path          color.Color
	// PathWidth is the stroke width in map units.
	PathWidth float64
	Text      color.Color
	Severity  map[bridges.Severity]color.Color
}

// DefaultPalette returns the standard colours: green land, blue water and
// translucent brown bridges that turn green once crossed.
func DefaultPalette() Palette {
	return Palette{
		Land:          color.RGBA{0x6e, 0x90, 0x3a, 0xff},
		Water:         color.RGBA{0x68, 0xad, 0xcd, 0xff},
		Bridge:        color.NRGBA{139, 69, 19, 178},
		BridgeCrossed: color.NRGBA{0, 255, 0, 128},
		Path:          color.NRGBA{0, 0, 255, 178},
		PathWidth:     5,
		Text:          colornames.Black,
		Severity: map[bridges.Severity]color.Color{
			bridges.SeverityInfo:    colornames.Steelblue,
			bridges.SeverityWarning: colornames.Darkorange,
			bridges.SeveritySuccess: colornames.Forestgreen,
			bridges.SeverityError:   colornames.Crimson,
		},
	}
}

// Canvas collects the state the game reports and renders it on demand. It
// implements bridges.Renderer and bridges.Presenter.
type Canvas struct {
	Palette Palette
	Width   int
	Height  int

	path    []bridges.Vec2
	crossed map[string]bool
	counter [2]int
	message *bridges.Message
}

// NewCanvas returns a canvas producing width×height images.
func NewCanvas(width, height int) *Canvas {
	return &Canvas{
		Palette: DefaultPalette(),
		Width:   width,
		Height:  height,
		crossed: make(map[string]bool),
	}
}

// DrawPath stores a copy of the stroke.
func (c *Canvas) DrawPath(points []bridges.Vec2) {
	c.path = append(c.path[:0], points...)
}

// SetBridgeCrossed records the visual state of a bridge.
func (c *Canvas) SetBridgeCrossed(id string, crossed bool) {
	c.crossed[id] = crossed
}

// SetCounter records the crossed/total counter.
func (c *Canvas) SetCounter(crossed, total int) {
	c.counter = [2]int{crossed, total}
}

// ShowMessage records the message to print under the map.
func (c *Canvas) ShowMessage(m bridges.Message) {
	c.message = &m
}

// HideMessage clears the message.
func (c *Canvas) HideMessage() {
	c.message = nil
}

// Counter returns the last counter values.
func (c *Canvas) Counter() (crossed, total int) {
	return c.counter[0], c.counter[1]
}

// Message returns the message on display, if any.
func (c *Canvas) Message() (bridges.Message, bool) {
	if c.message == nil {
		return bridges.Message{}, false
	}
	return *c.message, true
}

// Render draws m fitted into the canvas, followed by the stroke, the
// counter and the message.
func (c *Canvas) Render(m *bridges.Map) (image.Image, error) {
	if c.Width <= 0 || c.Height <= 0 {
		return nil, fmt.Errorf("canvas size %dx%d must be positive", c.Width, c.Height)
	}
	mapper := bridges.NewMapper()
	mapper.Layout(m.Bounds(), bridges.Rect{Width: float64(c.Width), Height: float64(c.Height)})
	if !mapper.LaidOut() {
		return nil, fmt.Errorf("map bounds %+v cannot be laid out", m.Bounds())
	}
	view := mapper.Transform()

	dc := gg.NewContext(c.Width, c.Height)
	dc.SetColor(color.White)
	dc.Clear()

	dc.Push()
	dc.Translate(view[4], view[5])
	dc.Scale(view[0], view[3])
	c.drawRegions(dc, m)
	dc.Pop()

	c.drawPath(dc, mapper)
	c.drawOverlayText(dc)
	return dc.Image(), nil
}

// EncodePNG renders m and writes it as PNG.
func (c *Canvas) EncodePNG(m *bridges.Map, w io.Writer) error {
	img, err := c.Render(m)
	if err != nil {
		return err
	}
	dc := gg.NewContextForImage(img)
	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	return nil
}

// SavePNG renders m into a PNG file.
func (c *Canvas) SavePNG(m *bridges.Map, path string) error {
	img, err := c.Render(m)
	if err != nil {
		return err
	}
	if err := gg.SavePNG(path, img); err != nil {
		return fmt.Errorf("saving png %s: %w", path, err)
	}
	return nil
}

// drawRegions paints every visible region of m in paint order.
func (c *Canvas) drawRegions(dc *gg.Context, m *bridges.Map) {
	WalkPaint(m, func(r *bridges.Region, terrain bridges.Terrain) {
		if r.HitShape == nil {
			return
		}
		dc.Push()
		w := r.WorldTransform()
		dc.Translate(w[4], w[5])
		dc.Scale(w[0], w[3])
		if tracePath(dc, r.HitShape) {
			dc.SetColor(c.Palette.RegionColor(r, terrain, c.crossed[r.BridgeID]))
			dc.Fill()
		}
		dc.Pop()
	})
}

// tracePath adds the outline of shape to the current path. Unknown shapes
// are skipped.
func tracePath(dc *gg.Context, shape bridges.HitShape) bool {
	switch s := shape.(type) {
	case bridges.HitRect:
		dc.DrawRectangle(s.X, s.Y, s.Width, s.Height)
	case bridges.HitCircle:
		dc.DrawCircle(s.CenterX, s.CenterY, s.Radius)
	case bridges.HitPolygon:
		if len(s.Points) < 3 {
			return false
		}
		dc.MoveTo(s.Points[0].X, s.Points[0].Y)
		for _, p := range s.Points[1:] {
			dc.LineTo(p.X, p.Y)
		}
		dc.ClosePath()
	default:
		return false
	}
	return true
}

// drawPath strokes the path in screen space so the line width scales with
// the map.
func (c *Canvas) drawPath(dc *gg.Context, mapper *bridges.Mapper) {
	if len(c.path) == 0 {
		return
	}
	scale := math.Abs(mapper.Transform()[0])
	dc.SetColor(c.Palette.Path)
	dc.SetLineWidth(c.Palette.PathWidth * scale)
	dc.SetLineCapRound()
	dc.SetLineJoinRound()

	if len(c.path) == 1 {
		p := mapper.ToScreen(c.path[0])
		dc.DrawPoint(p.X, p.Y, c.Palette.PathWidth*scale/2)
		dc.Fill()
		return
	}
	p := mapper.ToScreen(c.path[0])
	dc.MoveTo(p.X, p.Y)
	for _, pt := range c.path[1:] {
		p = mapper.ToScreen(pt)
		dc.LineTo(p.X, p.Y)
	}
	dc.Stroke()
}

func (c *Canvas) drawOverlayText(dc *gg.Context) {
	if c.counter[1] > 0 {
		dc.SetColor(c.Palette.Text)
		dc.DrawString(fmt.Sprintf("Bridges crossed: %d/%d", c.counter[0], c.counter[1]), 8, 16)
	}
	if c.message != nil {
		col, ok := c.Palette.Severity[c.message.Severity]
		if !ok {
			col = c.Palette.Text
		}
		dc.SetColor(col)
		dc.DrawStringAnchored(c.message.Text, float64(c.Width)/2, float64(c.Height)-12, 0.5, 0.5)
	}
}
