package cdcserial

import (
	"context"
	"testing"

	"github.com/swcbridge/firmware/internal/hal"
)

// fakeHAL is a minimal hal.DeviceHAL for exercising Serial's buffering
// logic without a transport.
type fakeHAL struct {
	pending []byte
	sent    []byte
	speed   hal.Speed
}

func (f *fakeHAL) Init(ctx context.Context) error                { return nil }
func (f *fakeHAL) Start() error                                  { return nil }
func (f *fakeHAL) Stop() error                                   { return nil }
func (f *fakeHAL) ConfigureEndpoints([]hal.EndpointConfig) error { return nil }
func (f *fakeHAL) GetSpeed() hal.Speed                           { return f.speed }
func (f *fakeHAL) WaitConnect(context.Context) error             { return nil }

func (f *fakeHAL) Read(ctx context.Context, address uint8, buf []byte) (int, error) {
	if len(f.pending) == 0 {
		return 0, ctx.Err()
	}
	n := copy(buf, f.pending)
	f.pending = f.pending[n:]
	return n, nil
}

func (f *fakeHAL) Write(ctx context.Context, address uint8, data []byte) (int, error) {
	f.sent = append(f.sent, data...)
	return len(data), nil
}

var _ hal.DeviceHAL = (*fakeHAL)(nil)

func TestSerialTaskPumpBuffersBytes(t *testing.T) {
	h := &fakeHAL{pending: []byte{1, 2, 3}}
	s := New(h, 0x81, 0x02)

	s.TaskPump()

	if got := s.BytesReceived(); got != 3 {
		t.Fatalf("BytesReceived() = %d, want 3", got)
	}
	for _, want := range []byte{1, 2, 3} {
		b, ok := s.ReceiveByte()
		if !ok || b != want {
			t.Fatalf("ReceiveByte() = (%#x, %v), want (%#x, true)", b, ok, want)
		}
	}
	if _, ok := s.ReceiveByte(); ok {
		t.Fatal("expected drained ring to report no byte")
	}
}

func TestSerialSendData(t *testing.T) {
	h := &fakeHAL{}
	s := New(h, 0x81, 0x02)

	n, err := s.SendData([]byte{0xAA, 0xBB})
	if err != nil || n != 2 {
		t.Fatalf("SendData() = (%d, %v), want (2, nil)", n, err)
	}
	if len(h.sent) != 2 || h.sent[0] != 0xAA {
		t.Fatalf("hal received %v, want [0xaa 0xbb]", h.sent)
	}
}
