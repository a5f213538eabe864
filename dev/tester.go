package dev

import (
	"sync/atomic"
	"time"
)

// Cycle is one completed acquisition: all four edge timestamps in
// microseconds. Sensor 1 sits first along the curtain travel path.
type Cycle struct {
	Rise1, Fall1 uint64
	Rise2, Fall2 uint64
}

// ScheduleFunc fires fn once after delayMS milliseconds, outside interrupt
// context.
type ScheduleFunc func(delayMS uint32, fn func())

// Tester coordinates the two capture channels of a shutter measurement. It
// owns the single live cycle, detects completion and stalls from the main
// poll loop, and re-arms capture.
type Tester struct {
	s1, s2   *channel
	now      Clock
	schedule ScheduleFunc

	ready     atomic.Uint32
	startedAt atomic.Uint64
}

// NewTester wires the two sensor lines. schedule may be nil, in which case
// delayed re-arms go through time.AfterFunc.
func NewTester(a, b EdgeLine, now Clock, schedule ScheduleFunc) *Tester {
	t := &Tester{now: now, schedule: schedule}
	if t.schedule == nil {
		t.schedule = func(delayMS uint32, fn func()) {
			time.AfterFunc(time.Duration(delayMS)*time.Millisecond, fn)
		}
	}
	t.s1 = newChannel(a, now, t.isReady)
	t.s2 = newChannel(b, now, t.isReady)
	return t
}

// Configure registers the interrupt handlers and arms the first cycle.
func (t *Tester) Configure() error {
	if err := t.s1.init(); err != nil {
		return err
	}
	if err := t.s2.init(); err != nil {
		return err
	}
	t.Arm()
	return nil
}

func (t *Tester) isReady() bool {
	return t.ready.Load() != 0
}

// Arm discards whatever the channels hold and starts a fresh cycle. Both
// lines are disabled before any state is touched so an edge latched during
// the reset window cannot write into the new cycle.
func (t *Tester) Arm() {
	t.s1.disarm()
	t.s2.disarm()
	t.ready.Store(0)
	t.startedAt.Store(t.now())
	t.s1.arm()
	t.s2.arm()
}

func (t *Tester) complete() bool {
	return t.s1.complete() && t.s2.complete()
}

// PollCompletion reports a finished cycle exactly once: the first call after
// all four timestamps are set latches ready and returns true, later calls
// return false until the next Arm.
func (t *Tester) PollCompletion() bool {
	if t.isReady() || !t.complete() {
		return false
	}
	t.ready.Store(1)
	return true
}

// PollStall abandons and restarts a cycle that has not collected all four
// edges within timeout of being armed. Returns true when a stalled cycle was
// discarded. A cycle that completed but has not been polled yet is left for
// PollCompletion.
func (t *Tester) PollStall(timeout time.Duration) bool {
	if t.isReady() || t.complete() {
		return false
	}
	if t.now()-t.startedAt.Load() <= uint64(timeout/time.Microsecond) {
		return false
	}
	t.Arm()
	return true
}

// RearmAfter schedules the next cycle so the displayed result stays visible
// for the dwell period. Edges arriving in the meantime are dropped by the
// ready gate.
func (t *Tester) RearmAfter(delayMS uint32) {
	t.schedule(delayMS, t.Arm)
}

// Snapshot returns the current four timestamps. Only meaningful after
// PollCompletion returned true and before the next Arm.
func (t *Tester) Snapshot() Cycle {
	return Cycle{
		Rise1: t.s1.rise.Load(),
		Fall1: t.s1.fall.Load(),
		Rise2: t.s2.rise.Load(),
		Fall2: t.s2.fall.Load(),
	}
}
