package dispatcher

import (
	"bytes"
	"context"
	"errors"
	"time"

	"github.com/swcbridge/firmware/internal/handshake"
	"github.com/swcbridge/firmware/internal/link"
	"github.com/swcbridge/firmware/internal/packet"
	"github.com/swcbridge/firmware/internal/pkg"
	"github.com/swcbridge/firmware/internal/port"
)

// commandLen is the fixed width of every command token on the wire.
const commandLen = 11

// Port is the subset of the Port Driver the dispatcher drives directly.
type Port interface {
	Activate()
	Deactivate()
}

// Dispatcher runs the command loop: read a token, run the matching
// operation, report status, drain leftover host input, repeat.
type Dispatcher struct {
	port  Port
	hs    *handshake.Engine
	link  link.Link
	sleep func(time.Duration)
}

// New returns a Dispatcher driving p (through a handshake engine owned
// internally) and talking to the host over l.
func New(p *port.Driver, l link.Link) *Dispatcher {
	return &Dispatcher{
		port:  p,
		hs:    handshake.New(p),
		link:  l,
		sleep: time.Sleep,
	}
}

// Run executes the command loop until ctx is cancelled. Cancellation is
// only observed between iterations: once a command token read begins, the
// loop blocks for it the same way the original firmware does, since the
// host is assumed to always complete what it starts.
func (d *Dispatcher) Run(ctx context.Context) error {
	var raw [commandLen]byte
	var args [3]byte
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		readExact(d.link, raw[:])
		d.port.Activate()

		if err := d.dispatch(commandString(raw), args[:]); errors.Is(err, pkg.ErrUnknownCommand) {
			pkg.LogWarn(pkg.ComponentDispatcher, "unknown command", "error", err, "token", commandString(raw))
			report(d.link, "UNKNOWN COMMAND\n")
		}

		d.port.Deactivate()

		if d.hs.Faulted() {
			pkg.LogWarn(pkg.ComponentDispatcher, "handshake fault latched", "error", pkg.ErrFaulted)
			report(d.link, "TIMEOUT\n")
			d.hs.Clear()
		}

		drain(d.link)
	}
}

// dispatch runs the operation named by cmd, reading any trailing argument
// bytes it needs from the link first. args is scratch space reused across
// iterations. It returns [pkg.ErrUnknownCommand] for an unrecognized token.
func (d *Dispatcher) dispatch(cmd string, args []byte) error {
	switch cmd {
	case "WRITE ROM":
		readExact(d.link, args[:3])
		totalBlocks := uint16(args[0])<<8 | uint16(args[1])
		packet.WriteROM(d.hs, d.link, totalBlocks, args[2])
	case "READ SRAM":
		packet.ReadSRAM(d.hs, d.link, d.sleep)
	case "WRITE SRAM":
		readExact(d.link, args[:2])
		totalBytes := uint16(args[0])<<8 | uint16(args[1])
		packet.WriteSRAM(d.hs, d.link, totalBytes)
	default:
		return pkg.ErrUnknownCommand
	}
	return nil
}

func report(l link.Link, msg string) {
	l.SendData([]byte(msg))
	l.Flush()
}

// readExact blocks until buf is completely filled, pumping the link on
// every pass. The host is assumed to always send exactly this many bytes.
func readExact(l link.Link, buf []byte) {
	n := 0
	for n < len(buf) {
		if b, ok := l.ReceiveByte(); ok {
			buf[n] = b
			n++
		}
		l.TaskPump()
	}
}

// drain consumes any bytes the host sent beyond what the last operation
// read, pumping after each one, then pumps once more.
func drain(l link.Link) {
	for {
		_, ok := l.ReceiveByte()
		if !ok {
			break
		}
		l.TaskPump()
	}
	l.TaskPump()
}

// commandString extracts the NUL-terminated command token from raw, the
// same comparison a C strcmp against the 11-byte buffer would perform.
func commandString(raw [commandLen]byte) string {
	raw[commandLen-1] = 0
	if i := bytes.IndexByte(raw[:], 0); i >= 0 {
		return string(raw[:i])
	}
	return string(raw[:])
}
