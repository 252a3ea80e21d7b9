package bridges

import (
	"math"
	"testing"

	"pgregory.net/rapid"
)

func TestSegmentIntersectsRect(t *testing.T) {
	r := Rect{X: 10, Y: 10, Width: 10, Height: 10}
	tests := []struct {
		name   string
		p1, p2 Vec2
		want   bool
	}{
		{"outside bounding box", Vec2{0, 0}, Vec2{5, 5}, false},
		{"outside to the right", Vec2{25, 0}, Vec2{25, 30}, false},
		{"both endpoints inside", Vec2{12, 12}, Vec2{18, 18}, true},
		{"straight through", Vec2{0, 15}, Vec2{30, 15}, true},
		{"enters and stops inside", Vec2{0, 15}, Vec2{15, 15}, true},
		{"diagonal through", Vec2{5, 5}, Vec2{25, 25}, true},
		{"ends on left edge", Vec2{0, 15}, Vec2{10, 15}, false},
		{"starts on right edge going away", Vec2{20, 15}, Vec2{30, 15}, false},
		{"grazes top-left corner", Vec2{0, 20}, Vec2{20, 0}, false},
		{"misses corner diagonally", Vec2{0, 19}, Vec2{19, 0}, false},
		{"runs along top edge", Vec2{10, 10}, Vec2{20, 10}, true},
		{"runs partly along bottom edge", Vec2{0, 20}, Vec2{15, 20}, true},
		{"parallel just above", Vec2{0, 9.9}, Vec2{30, 9.9}, false},
		{"non-finite point", Vec2{math.NaN(), 15}, Vec2{15, 15}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SegmentIntersectsRect(tt.p1, tt.p2, r); got != tt.want {
				t.Errorf("SegmentIntersectsRect(%v, %v) = %v, want %v", tt.p1, tt.p2, got, tt.want)
			}
		})
	}
}

func TestSegmentIntersectsRectMalformed(t *testing.T) {
	bad := []Rect{
		{X: 0, Y: 0, Width: -1, Height: 10},
		{X: math.NaN(), Y: 0, Width: 10, Height: 10},
		{X: 0, Y: 0, Width: math.Inf(1), Height: 10},
	}
	for _, r := range bad {
		if SegmentIntersectsRect(Vec2{-5, 5}, Vec2{15, 5}, r) {
			t.Errorf("malformed %v: want no intersection", r)
		}
	}
}

func pointAt(c Vec2, radius, deg float64) Vec2 {
	rad := deg * math.Pi / 180
	return Vec2{c.X + radius*math.Cos(rad), c.Y + radius*math.Sin(rad)}
}

func TestIsOppositeSide(t *testing.T) {
	r := Rect{X: -10, Y: -10, Width: 20, Height: 20}
	c := r.Center()
	tests := []struct {
		name       string
		entry, out float64 // degrees
		want       bool
	}{
		{"10 and 170", 10, 170, true},
		{"10 and 40", 10, 40, false},
		{"straight across", 0, 180, true},
		{"wraps around", -170, 170, false},
		{"right angle is not opposite", 0, 90, false},
		{"just past right angle", 0, 91, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := pointAt(c, 8, tt.entry)
			exit := pointAt(c, 8, tt.out)
			if got := IsOppositeSide(entry, exit, r); got != tt.want {
				t.Errorf("IsOppositeSide(%v°, %v°) = %v, want %v", tt.entry, tt.out, got, tt.want)
			}
		})
	}
}

func TestIsOppositeSideMalformed(t *testing.T) {
	r := Rect{Width: math.NaN(), Height: 10}
	if IsOppositeSide(Vec2{-5, 0}, Vec2{5, 0}, r) {
		t.Error("malformed footprint: want false")
	}
}

func TestAngleBetween(t *testing.T) {
	tests := []struct {
		a0, a1, want float64
	}{
		{0, math.Pi / 2, math.Pi / 2},
		{-math.Pi + 0.1, math.Pi - 0.1, 0.2},
		{math.Pi, -math.Pi, 0},
	}
	for _, tt := range tests {
		assertNear(t, "angleBetween", angleBetween(tt.a0, tt.a1), tt.want)
	}
}

func genRect(t *rapid.T) Rect {
	return Rect{
		X:      rapid.Float64Range(-500, 500).Draw(t, "rx"),
		Y:      rapid.Float64Range(-500, 500).Draw(t, "ry"),
		Width:  rapid.Float64Range(1, 200).Draw(t, "rw"),
		Height: rapid.Float64Range(1, 200).Draw(t, "rh"),
	}
}

func TestPropertySegmentLeftOfRectNeverIntersects(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		r := genRect(t)
		gap1 := rapid.Float64Range(0.001, 300).Draw(t, "gap1")
		gap2 := rapid.Float64Range(0.001, 300).Draw(t, "gap2")
		p1 := Vec2{r.MinX() - gap1, rapid.Float64Range(-1000, 1000).Draw(t, "y1")}
		p2 := Vec2{r.MinX() - gap2, rapid.Float64Range(-1000, 1000).Draw(t, "y2")}
		if SegmentIntersectsRect(p1, p2, r) {
			t.Fatalf("segment %v-%v left of %v reported intersection", p1, p2, r)
		}
	})
}

func TestPropertySegmentInsideRectIntersects(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		r := genRect(t)
		inside := func(label string) Vec2 {
			fx := rapid.Float64Range(0.01, 0.99).Draw(t, label+"x")
			fy := rapid.Float64Range(0.01, 0.99).Draw(t, label+"y")
			return Vec2{r.X + r.Width*fx, r.Y + r.Height*fy}
		}
		p1, p2 := inside("p1"), inside("p2")
		if !SegmentIntersectsRect(p1, p2, r) {
			t.Fatalf("segment %v-%v inside %v reported no intersection", p1, p2, r)
		}
	})
}

func TestPropertyOppositeSideSymmetric(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		r := genRect(t)
		pt := func(label string) Vec2 {
			return Vec2{
				rapid.Float64Range(-1000, 1000).Draw(t, label+"x"),
				rapid.Float64Range(-1000, 1000).Draw(t, label+"y"),
			}
		}
		a, b := pt("a"), pt("b")
		if IsOppositeSide(a, b, r) != IsOppositeSide(b, a, r) {
			t.Fatalf("IsOppositeSide not symmetric for %v, %v", a, b)
		}
	})
}
