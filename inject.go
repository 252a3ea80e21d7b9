package bridges

// InjectPress queues a mouse press at the given screen coordinates.
// The event is consumed on the next Update call.
func (in *Input) InjectPress(x, y float64) {
	in.injectQueue = append(in.injectQueue, Frame{MouseX: x, MouseY: y, MouseDown: true})
}

// InjectMove queues a mouse move at the given screen coordinates with the
// button held down. Use this between InjectPress and InjectRelease.
func (in *Input) InjectMove(x, y float64) {
	in.injectQueue = append(in.injectQueue, Frame{MouseX: x, MouseY: y, MouseDown: true})
}

// InjectRelease queues a mouse release at the given screen coordinates.
func (in *Input) InjectRelease(x, y float64) {
	in.injectQueue = append(in.injectQueue, Frame{MouseX: x, MouseY: y})
}

// InjectTouch queues a raw frame carrying only touches. An empty touches
// slice lifts every finger.
func (in *Input) InjectTouch(touches ...TouchPoint) {
	in.injectQueue = append(in.injectQueue, Frame{Touches: touches})
}

// InjectDrag queues a full drag: press at (fromX, fromY), frames-2 linearly
// interpolated moves ending on (toX, toY), then a release there. Minimum
// frames is 3 (press, move, release).
func (in *Input) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 3 {
		frames = 3
	}
	in.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		in.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	in.InjectRelease(toX, toY)
}

// InjectStroke queues a press on the first point, a move through every
// following point, and a release on the last. Fewer than one point queues
// nothing.
func (in *Input) InjectStroke(points []Vec2) {
	if len(points) == 0 {
		return
	}
	in.InjectPress(points[0].X, points[0].Y)
	for _, p := range points[1:] {
		in.InjectMove(p.X, p.Y)
	}
	last := points[len(points)-1]
	in.InjectRelease(last.X, last.Y)
}

// Drain runs Update until every injected frame has been consumed.
func (in *Input) Drain() {
	for len(in.injectQueue) > 0 {
		in.Update()
	}
}
