//go:build tinygo

package dev

import "machine"

// BatteryMonitor reads the supply voltage through a resistor divider on a
// single ADC pin, averaging a few samples per reading.
type BatteryMonitor struct {
	adc     machine.ADC
	scale   float32 // volts per ADC count, divider included
	samples uint8
}

func NewBatteryMonitor(adc machine.ADC, reference, divider float32, samples uint8) *BatteryMonitor {
	if samples == 0 {
		samples = 1
	}
	return &BatteryMonitor{
		adc:     adc,
		scale:   reference * divider / 0xFFFF,
		samples: samples,
	}
}

func (b *BatteryMonitor) Configure() {
	b.adc.Configure(machine.ADCConfig{})
}

// Volts returns the averaged supply voltage.
func (b *BatteryMonitor) Volts() float32 {
	var sum uint32
	for i := uint8(0); i < b.samples; i++ {
		sum += uint32(b.adc.Get())
	}
	return b.scale * float32(sum/uint32(b.samples))
}
