package dev

import "sync/atomic"

// Edge identifies a transition of a sensor's digital signal.
type Edge uint8

const (
	Rising  Edge = iota // dark to light
	Falling             // light to dark
)

// Clock returns a monotonic timestamp in microseconds.
type Clock func() uint64

// EdgeLine is a sensor input whose edge detection can be retargeted between
// polarities at runtime.
type EdgeLine interface {
	// Init registers the handler invoked on every delivered edge. The handler
	// runs in interrupt context and must not block.
	Init(handler func(Edge)) error
	// Watch arms detection for exactly one polarity. Replacing the armed
	// polarity must be a single step so no edge is lost or double counted
	// while retargeting from inside the handler.
	Watch(e Edge)
	// Disable stops edge delivery on this line.
	Disable()
}

type captureState uint32

const (
	armedForRise captureState = iota
	armedForFall
	captureDone
)

// channel records one sensor's dark-light-dark transit as a pair of
// microsecond timestamps. Zero is the unset sentinel. The edge handler is the
// only writer of the pair; the main loop only reads.
type channel struct {
	line  EdgeLine
	now   Clock
	gated func() bool // true once the owning cycle latched ready

	state atomic.Uint32
	rise  atomic.Uint64
	fall  atomic.Uint64
}

func newChannel(line EdgeLine, now Clock, gated func() bool) *channel {
	return &channel{line: line, now: now, gated: gated}
}

func (c *channel) init() error {
	return c.line.Init(c.onEdge)
}

// onEdge runs in interrupt context.
func (c *channel) onEdge(e Edge) {
	if c.gated() {
		return
	}
	switch captureState(c.state.Load()) {
	case armedForRise:
		if e != Rising {
			return
		}
		if c.rise.Load() == 0 {
			c.rise.Store(c.now())
		}
		c.state.Store(uint32(armedForFall))
		c.line.Watch(Falling)
	case armedForFall:
		if e != Falling {
			return
		}
		// The timestamp store precedes the disable so a completion check
		// never observes a half-updated pair.
		if c.fall.Load() == 0 {
			c.fall.Store(c.now())
		}
		c.state.Store(uint32(captureDone))
		c.line.Disable()
	default:
		// captureDone: straggling edges are dropped until the next arm.
	}
}

// disarm stops edge delivery and clears both timestamps. Detection is
// disabled first so nothing latched during the reset window can write.
func (c *channel) disarm() {
	c.line.Disable()
	c.rise.Store(0)
	c.fall.Store(0)
	c.state.Store(uint32(armedForRise))
}

func (c *channel) arm() {
	c.state.Store(uint32(armedForRise))
	c.line.Watch(Rising)
}

func (c *channel) complete() bool {
	return c.rise.Load() != 0 && c.fall.Load() != 0
}
