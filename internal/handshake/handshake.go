package handshake

import "github.com/swcbridge/firmware/internal/pkg"

// PollMax bounds wait_busy_bit's busy-wait: the peripheral is declared
// faulted if BUSY has not reached the expected level within this many
// polls.
const PollMax = 65534

// statusInputMask isolates the 4-bit nibble the peripheral returns on a
// receive, status bits 3..6.
const statusInputMask byte = 0x78

// busyBit is status bit 7, already polarity-normalized by the Port Driver.
const busyBit byte = 0x80

// Port is the subset of the Port Driver the handshake engine needs.
type Port interface {
	WriteData(b byte)
	ReadStatus() byte
	InvertStrobe()
}

// Engine is the byte-level half-duplex transport. It owns the fault flag:
// once set by WaitBusyBit exceeding PollMax, every method here becomes a
// no-op until Clear is called.
type Engine struct {
	port    Port
	faulted bool
}

// New returns an Engine driving p.
func New(p Port) *Engine {
	return &Engine{port: p}
}

// Faulted reports whether the fault flag is currently set.
func (e *Engine) Faulted() bool { return e.faulted }

// Clear resets the fault flag. Only the dispatcher calls this, and only
// after reporting the fault to the host.
func (e *Engine) Clear() { e.faulted = false }

// WaitBusyBit polls BUSY until it equals expected, running at least
// pollMin iterations and at most PollMax. It returns false without
// polling if the fault flag is already set, and sets the fault flag if
// PollMax is exhausted without BUSY reaching expected.
func (e *Engine) WaitBusyBit(expected bool, pollMin int) bool {
	if e.faulted {
		return false
	}
	var busy bool
	count := 0
	for {
		busy = e.port.ReadStatus()&busyBit != 0
		count++
		if count >= pollMin && (busy == expected || count >= PollMax) {
			break
		}
	}
	if busy != expected {
		e.faulted = true
		pkg.LogWarn(pkg.ComponentHandshake, "busy-wait exceeded poll bound", "want", expected)
		return false
	}
	return true
}

// SendByte waits for the peripheral to be ready, drives b onto the data
// lines, strobes it in, then waits again so a following ReceiveByte
// observes the peripheral reasserting BUSY before the bus turns around.
func (e *Engine) SendByte(b byte) {
	if e.faulted {
		return
	}
	e.WaitBusyBit(true, 0)
	e.port.WriteData(b)
	e.port.InvertStrobe()
	e.WaitBusyBit(true, 0)
}

// ReceiveByte reads a nibble-serial byte off the status lines: low nibble
// first, then high nibble, each gated by BUSY deasserting and each
// advanced by a strobe toggle.
func (e *Engine) ReceiveByte() byte {
	if e.faulted {
		return 0
	}
	e.WaitBusyBit(false, 3)
	b := (e.port.ReadStatus() & statusInputMask) >> 3
	e.port.InvertStrobe()
	e.WaitBusyBit(false, 3)
	b |= (e.port.ReadStatus() & statusInputMask) << 1
	e.port.InvertStrobe()
	return b
}
