//go:build rp2040

package config

import "machine"

var (
	SenseA = machine.GP20
	SenseB = machine.GP21

	Battery = machine.ADC{Pin: machine.ADC0}

	Button = machine.GP28
	TEST   = machine.GP10
)

const (
	// Phototransistors pull the sense lines low while lit.
	SenseLitLevel = false

	// PCF8574 backpack of the character LCD.
	LCDAddr = 0x27
)
