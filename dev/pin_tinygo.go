//go:build tinygo

package dev

import (
	"machine"
	"sync/atomic"
	_ "unsafe"
)

//go:linkname ticks runtime.ticks
func ticks() uint64

//go:linkname ticksToNanoseconds runtime.ticksToNanoseconds
func ticksToNanoseconds(ticks uint64) int64

// Micros returns the monotonic clock in microseconds.
//
//go:inline
func Micros() uint64 {
	return uint64(ticksToNanoseconds(ticks())) / 1000
}

// PinLine adapts a machine.Pin to the EdgeLine interface. The hardware
// interrupt stays registered for both transitions; Watch and Disable select
// the delivered polarity with a single word store, so retargeting from inside
// the handler cannot lose an edge to a reconfiguration window.
type PinLine struct {
	pin     machine.Pin
	lit     bool // pin level while the sensor sees light
	armed   atomic.Uint32
	handler func(Edge)
}

// NewPinLine wraps pin. lit is the level the pin settles at while the sensor
// is illuminated (false for a phototransistor pulling the line low).
func NewPinLine(pin machine.Pin, lit bool) *PinLine {
	return &PinLine{pin: pin, lit: lit}
}

func (p *PinLine) Init(handler func(Edge)) error {
	if handler == nil {
		return ErrNoHandler
	}
	p.handler = handler
	return p.pin.SetInterrupt(machine.PinToggle, p.dispatch)
}

//go:noinline
func (p *PinLine) dispatch(pin machine.Pin) {
	e := Falling
	if pin.Get() == p.lit {
		e = Rising
	}
	if w := p.armed.Load(); w == 0 || Edge(w-1) != e {
		return
	}
	p.handler(e)
}

func (p *PinLine) Watch(e Edge) {
	p.armed.Store(uint32(e) + 1)
}

func (p *PinLine) Disable() {
	p.armed.Store(0)
}

// Lit reports whether the sensor currently sees light.
func (p *PinLine) Lit() bool {
	return p.pin.Get() == p.lit
}
