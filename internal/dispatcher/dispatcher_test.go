package dispatcher

import (
	"context"
	"testing"
	"time"

	"github.com/swcbridge/firmware/internal/handshake"
	"github.com/swcbridge/firmware/internal/link"
)

type fakePort struct {
	activated   int
	deactivated int
}

func (p *fakePort) Activate()   { p.activated++ }
func (p *fakePort) Deactivate() { p.deactivated++ }

// fakeHandshakePort starts with BUSY set and toggles BUSY on every strobe.
// The tests here run no command that drives the handshake engine.
type fakeHandshakePort struct {
	status byte
}

func (p *fakeHandshakePort) WriteData(byte)      {}
func (p *fakeHandshakePort) ReadStatus() byte    { return p.status }
func (p *fakeHandshakePort) InvertStrobe()       { p.status ^= 0x80 }

func newTestDispatcher(l link.Link) (*Dispatcher, *fakePort) {
	fp := &fakePort{}
	hs := handshake.New(&fakeHandshakePort{status: 0x80})
	return &Dispatcher{port: fp, hs: hs, link: l, sleep: func(time.Duration) {}}, fp
}

func TestDispatcherUnknownCommand(t *testing.T) {
	m := link.NewMemory(nil)
	m.Feed([]byte("HELLO\x00\x00\x00\x00\x00\x00"))

	d, fp := newTestDispatcher(m)

	done := make(chan struct{})
	go func() {
		d.Run(context.Background())
		close(done)
	}()

	// Run blocks forever reading the next command; give the single
	// iteration time to execute, then assert on what it produced.
	time.Sleep(20 * time.Millisecond)

	if fp.activated != 1 || fp.deactivated != 1 {
		t.Fatalf("activated=%d deactivated=%d, want 1/1", fp.activated, fp.deactivated)
	}
	sent := string(m.Sent())
	if sent != "UNKNOWN COMMAND\n" {
		t.Fatalf("report = %q, want \"UNKNOWN COMMAND\\n\"", sent)
	}
}

func TestCommandStringTrimsAtNUL(t *testing.T) {
	var raw [commandLen]byte
	copy(raw[:], "WRITE ROM\x00\x00")
	if got := commandString(raw); got != "WRITE ROM" {
		t.Fatalf("commandString() = %q, want \"WRITE ROM\"", got)
	}
}
