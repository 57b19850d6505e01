//go:build tamago

// Package swcbridge provides hardware bring-up for the SWC bridge adapter
// on an i.MX6UL-class board: clock/watchdog init and the GPIO pin
// assignment backing [github.com/swcbridge/firmware/internal/port.Driver].
//
// Pin numbers below are a reference assignment on GPIO controller 1; a
// board with a different layout only needs to change this file.
package swcbridge

import (
	"github.com/usbarmory/tamago/soc/nxp/gpio"
	"github.com/usbarmory/tamago/soc/nxp/imx6ul"

	"github.com/swcbridge/firmware/internal/port"

	_ "unsafe"
)

// Pin assignments on GPIO1, in the bit order the Port Driver expects.
var (
	dataPins    = [port.DataLines]int{0, 1, 2, 3, 4, 5, 6, 7}
	statusPins  = [port.StatusLines]int{8, 9, 10, 11, 12}
	controlPins = [port.ControlLines]int{13, 14, 15, 16}
	ledPin      = 17
)

// Init performs the lower-level SoC initialization the Go runtime expects
// to have happened before main runs.
//
//go:linkname Init runtime.hwinit
func Init() {
	imx6ul.Init()
}

// NewPortDriver initializes GPIO1 and returns a Port Driver wired to the
// pin assignment above.
func NewPortDriver() (*port.Driver, error) {
	var data [port.DataLines]port.Line
	for i, num := range dataPins {
		pin, err := imx6ul.GPIO1.Init(num)
		if err != nil {
			return nil, err
		}
		data[i] = pin
	}

	var status [port.StatusLines]port.Line
	for i, num := range statusPins {
		pin, err := imx6ul.GPIO1.Init(num)
		if err != nil {
			return nil, err
		}
		status[i] = pin
	}

	var control [port.ControlLines]port.Line
	for i, num := range controlPins {
		pin, err := imx6ul.GPIO1.Init(num)
		if err != nil {
			return nil, err
		}
		control[i] = pin
	}

	led, err := imx6ul.GPIO1.Init(ledPin)
	if err != nil {
		return nil, err
	}

	return port.New(data, status, control, led), nil
}
