package cdcserial

import (
	"context"
	"time"

	"github.com/swcbridge/firmware/internal/hal"
	"github.com/swcbridge/firmware/internal/link"
	"github.com/swcbridge/firmware/internal/pkg"
)

// bulkAttributes marks an endpoint as bulk transfer, no sync/usage flags.
const bulkAttributes = 0x02

// maxPacketSize is the full-speed bulk endpoint max packet size. The bridge
// never negotiates high speed, so this is fixed rather than read back from
// the HAL.
const maxPacketSize = 64

// pollBudget bounds how long a single TaskPump drain attempt may block
// waiting on the OUT endpoint. It is small enough that TaskPump behaves
// like a poll from the dispatcher's perspective, not a blocking read.
const pollBudget = 200 * time.Microsecond

// Serial is a [link.Link] backed by a USB-CDC data interface's bulk IN/OUT
// endpoint pair.
type Serial struct {
	h                   hal.DeviceHAL
	dataInEP, dataOutEP uint8
	scratch             [maxPacketSize]byte
	rx                  linkRing
}

// New returns a Serial driving the bulk IN endpoint dataInEP and bulk OUT
// endpoint dataOutEP of h. Addresses include the direction bit (e.g. 0x81
// for IN endpoint 1, 0x02 for OUT endpoint 2).
func New(h hal.DeviceHAL, dataInEP, dataOutEP uint8) *Serial {
	return &Serial{h: h, dataInEP: dataInEP, dataOutEP: dataOutEP}
}

// Open initializes the HAL, configures the bulk data endpoints and waits
// for the host to connect.
func (s *Serial) Open(ctx context.Context) error {
	if err := s.h.Init(ctx); err != nil {
		return err
	}
	endpoints := []hal.EndpointConfig{
		{Address: s.dataInEP, Attributes: bulkAttributes, MaxPacketSize: maxPacketSize},
		{Address: s.dataOutEP, Attributes: bulkAttributes, MaxPacketSize: maxPacketSize},
	}
	if err := s.h.ConfigureEndpoints(endpoints); err != nil {
		return err
	}
	if err := s.h.Start(); err != nil {
		return err
	}
	if err := s.h.WaitConnect(ctx); err != nil {
		return err
	}
	pkg.LogInfo(pkg.ComponentLink, "host link connected", "speed", s.h.GetSpeed().String())
	return nil
}

// Close detaches from the bus.
func (s *Serial) Close() error {
	return s.h.Stop()
}

// TaskPump drains whatever the OUT endpoint currently has queued into the
// receive buffer. It never blocks the caller for more than pollBudget.
func (s *Serial) TaskPump() {
	ctx, cancel := context.WithTimeout(context.Background(), pollBudget)
	defer cancel()
	n, err := s.h.Read(ctx, s.dataOutEP, s.scratch[:])
	if err != nil || n == 0 {
		return
	}
	for _, b := range s.scratch[:n] {
		s.rx.put(b)
	}
}

// ReceiveByte implements [link.Link].
func (s *Serial) ReceiveByte() (byte, bool) { return s.rx.get() }

// BytesReceived implements [link.Link].
func (s *Serial) BytesReceived() int { return s.rx.len() }

// SendData implements [link.Link], blocking until the HAL accepts p.
func (s *Serial) SendData(p []byte) (int, error) {
	return s.h.Write(context.Background(), s.dataInEP, p)
}

// Flush implements [link.Link]. The HAL's Write is synchronous, so there is
// nothing queued to wait for.
func (s *Serial) Flush() error { return nil }

var _ link.Link = (*Serial)(nil)
