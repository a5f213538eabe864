//go:build rp2040

package main

import (
	"fmt"
	"machine"
	"time"

	"github.com/jsliepka/shuttermeter/config"
	"github.com/jsliepka/shuttermeter/dev"
	"tinygo.org/x/drivers/hd44780i2c"
)

//go:generate tinygo flash -target=pico

// Sensor and frame geometry. The two spot sensors sit 30mm apart along the
// 36mm travel axis; measured travel is extrapolated to the full frame width.
// Correction coefficients come from calibration against a reference body.
var geometry = dev.Geometry{
	HoleDiameterMM:     1.0,
	HoleSpacingMM:      30.0,
	FrameSpanMM:        36.0,
	TravelCorrection:   1.0,
	ExposureCorrection: 0.6,
	Sensor1Correction:  1.0,
	Sensor2Correction:  1.0,
}

const (
	displayWidth = 16

	// How long a finished reading stays on the display before re-arming.
	dwellMS = 1500

	// A cycle that has not collected all four edges within this window is
	// abandoned and restarted.
	stallTimeout = 8 * time.Second
)

var shots int

func main() {
	machine.InitADC()

	config.SenseA.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	config.SenseB.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	config.Button.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	config.TEST.Configure(machine.PinConfig{Mode: machine.PinOutput})

	machine.I2C0.Configure(machine.I2CConfig{Frequency: 400 * machine.KHz})
	// the delay is needed for display start from a cold reboot, not sure why
	time.Sleep(time.Second)
	display := hd44780i2c.New(machine.I2C0, config.LCDAddr)
	if err := display.Configure(hd44780i2c.Config{Width: displayWidth, Height: 2}); err != nil {
		println("display configure: " + err.Error())
	}
	readout := dev.NewReadout(&display, displayWidth)

	battery := dev.NewBatteryMonitor(config.Battery, 3.3, 2.0, 8)
	battery.Configure()
	splash(&display, battery.Volts())

	lineA := dev.NewPinLine(config.SenseA, config.SenseLitLevel)
	lineB := dev.NewPinLine(config.SenseB, config.SenseLitLevel)
	if lineA.Lit() || lineB.Lit() {
		println("sensor reads light at boot, close the shutter")
	}

	tester := dev.NewTester(lineA, lineB, dev.Micros, nil)
	if err := tester.Configure(); err != nil {
		println("tester configure: " + err.Error())
		return
	}

	machine.Watchdog.Configure(machine.WatchdogConfig{
		TimeoutMillis: 3000,
	})
	machine.Watchdog.Start()

	ticker := time.NewTicker(time.Millisecond * 5)
	for range ticker.C {
		if tester.PollCompletion() {
			handleCycle(tester, readout)
		}
		if tester.PollStall(stallTimeout) {
			println("capture timed out, re-arming")
		}
		if !config.Button.Get() {
			// Manual re-arm, skips the display dwell.
			tester.Arm()
		}
		machine.Watchdog.Update()
	}
}

func handleCycle(tester *dev.Tester, readout *dev.Readout) {
	cycle := tester.Snapshot()
	m, err := geometry.Compute(cycle)
	if err != nil {
		println("discarding cycle: " + err.Error())
		tester.Arm()
		return
	}
	shots++
	config.TEST.High()
	if err := readout.Show(m); err != nil {
		println("display: " + err.Error())
	}
	config.TEST.Low()
	println(fmt.Sprintf("SHOT %d exp %0.1f/%0.1f us travel %0.1f/%0.1f us",
		shots, m.Exposure1US, m.Exposure2US, m.TravelOpenUS, m.TravelCloseUS))
	tester.RearmAfter(dwellMS)
}

func splash(d *hd44780i2c.Device, volts float32) {
	d.ClearDisplay()
	d.SetCursor(0, 0)
	d.Print([]byte("shutter tester"))
	d.SetCursor(0, 1)
	d.Print([]byte(fmt.Sprintf("batt %0.2fV", volts)))
}
