package port

import "github.com/swcbridge/firmware/internal/pkg"

// Line counts per group, fixed by the peripheral's physical interface.
const (
	DataLines    = 8
	StatusLines  = 5 // status bits 3..7; bit 7 is BUSY
	ControlLines = 4 // control bits 0..3; bit 0 is STROBE
)

// controlXORMask and busyXORMask undo the peripheral's inverted signal
// polarity. Bit-exact; do not change.
const (
	controlXORMask byte = 0b1011
	busyXORMask    byte = 0x80
)

// statusBitOffset is the low bit of the status nibble the 5 status lines
// occupy in the logical status byte.
const statusBitOffset = 3

// Line is a single GPIO-backed signal: direction control plus level
// read/write, the same vocabulary a bare-metal GPIO pin exposes.
type Line interface {
	Out()
	In()
	High()
	Low()
	Value() bool
}

// Driver is the Port Driver: it owns the data, status, control and LED
// line groups and the logical<->raw polarity translation for control and
// status.
type Driver struct {
	data    [DataLines]Line
	status  [StatusLines]Line
	control [ControlLines]Line
	led     Line

	ledOn bool
}

// New returns a Driver over the given line groups. data, status and
// control must be supplied in bit order (data[0] is D0, status[0] is
// status bit 3, control[0] is control bit 0 / STROBE).
func New(data [DataLines]Line, status [StatusLines]Line, control [ControlLines]Line, led Line) *Driver {
	return &Driver{data: data, status: status, control: control, led: led}
}

// Activate drives the port into its active configuration: data and
// control as outputs at 0, status as inputs with pull-ups enabled, LED
// on. The initial control level is written directly to the raw lines
// rather than through [Driver.WriteControl], matching the peripheral's
// own bring-up sequence.
func (d *Driver) Activate() {
	for _, l := range d.data {
		l.Low()
		l.Out()
	}
	for _, l := range d.status {
		l.High()
		l.In()
	}
	for _, l := range d.control {
		l.Low()
		l.Out()
	}
	d.ledOn = true
	d.led.High()
	d.led.Out()
	pkg.LogDebug(pkg.ComponentPort, "ports activated")
}

// Deactivate reconfigures every line as an input driven low, undriving the
// external bus and disabling the status group's pull-ups, and turns the
// LED off.
func (d *Driver) Deactivate() {
	for _, l := range d.data {
		l.Low()
		l.In()
	}
	for _, l := range d.status {
		l.Low()
		l.In()
	}
	for _, l := range d.control {
		l.Low()
		l.In()
	}
	d.ledOn = false
	d.led.Low()
	d.led.In()
	pkg.LogDebug(pkg.ComponentPort, "ports deactivated")
}

// WriteData drives the 8 data lines to b.
func (d *Driver) WriteData(b byte) {
	for i := 0; i < DataLines; i++ {
		setLine(d.data[i], b&(1<<uint(i)) != 0)
	}
}

// WriteControl drives the 4 control lines to the raw pattern that
// corresponds to logical value b, through the control XOR mask.
func (d *Driver) WriteControl(b byte) {
	raw := (b ^ controlXORMask) & 0x0F
	for i := 0; i < ControlLines; i++ {
		setLine(d.control[i], raw&(1<<uint(i)) != 0)
	}
}

// ReadControl reads the 4 control lines back and undoes the XOR mask.
func (d *Driver) ReadControl() byte {
	var raw byte
	for i := 0; i < ControlLines; i++ {
		if d.control[i].Value() {
			raw |= 1 << uint(i)
		}
	}
	return raw ^ controlXORMask
}

// ReadStatus reads the 5 status lines into bits 3..7 of the logical status
// byte and undoes the BUSY polarity inversion.
func (d *Driver) ReadStatus() byte {
	var raw byte
	for i := 0; i < StatusLines; i++ {
		if d.status[i].Value() {
			raw |= 1 << uint(statusBitOffset+i)
		}
	}
	return raw ^ busyXORMask
}

// FlipLED toggles the LED line.
func (d *Driver) FlipLED() {
	d.ledOn = !d.ledOn
	setLine(d.led, d.ledOn)
}

// InvertStrobe toggles STROBE (control bit 0) and the LED together, the
// atomic unit the handshake engine drives the link with.
func (d *Driver) InvertStrobe() {
	d.WriteControl(d.ReadControl() ^ 0x01)
	d.FlipLED()
}

func setLine(l Line, high bool) {
	if high {
		l.High()
	} else {
		l.Low()
	}
}
