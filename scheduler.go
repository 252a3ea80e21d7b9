package bridges

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// delayedTask runs fn once its tween has played through. The tween value
// runs from 0 to 1 and doubles as a progress readout (e.g. for fading the
// violating stroke while the reset is pending).
type delayedTask struct {
	name     string
	tween    *gween.Tween
	progress float32
	fn       func()
}

// scheduler holds frame-driven delayed tasks. There is no global manager and
// no goroutine: the owner calls update(dt) each tick.
type scheduler struct {
	tasks []*delayedTask
}

// after schedules fn to run once d has elapsed in update time. Tasks do not
// cancel each other; fn must re-validate whatever state it mutates.
func (s *scheduler) after(name string, d time.Duration, fn func()) {
	s.tasks = append(s.tasks, &delayedTask{
		name:  name,
		tween: gween.New(0, 1, float32(d.Seconds()), ease.Linear),
		fn:    fn,
	})
}

// update advances every task by dt seconds and runs the finished ones in
// scheduling order. Tasks scheduled by a running fn wait for the next update.
func (s *scheduler) update(dt float32) {
	if len(s.tasks) == 0 {
		return
	}
	var due []*delayedTask
	kept := s.tasks[:0]
	for _, t := range s.tasks {
		val, done := t.tween.Update(dt)
		t.progress = val
		if done {
			due = append(due, t)
			continue
		}
		kept = append(kept, t)
	}
	for i := len(kept); i < len(s.tasks); i++ {
		s.tasks[i] = nil
	}
	s.tasks = kept
	for _, t := range due {
		t.fn()
	}
}

// pending returns the number of tasks not yet run.
func (s *scheduler) pending() int {
	return len(s.tasks)
}

// progress returns the progress of the most recently scheduled pending task
// with the given name.
func (s *scheduler) progress(name string) (float32, bool) {
	for i := len(s.tasks) - 1; i >= 0; i-- {
		if s.tasks[i].name == name {
			return s.tasks[i].progress, true
		}
	}
	return 0, false
}
