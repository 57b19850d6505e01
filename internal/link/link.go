package link

import "github.com/swcbridge/firmware/internal/pkg"

// Link is the byte-stream the dispatcher and packet protocol use to talk to
// the host. A Link never blocks the caller waiting on the wire: bytes that
// have arrived are buffered internally by TaskPump and drained with
// ReceiveByte, and SendData hands a full buffer to the transport in one
// call.
type Link interface {
	// ReceiveByte pops the oldest buffered byte. ok is false if nothing is
	// buffered.
	ReceiveByte() (b byte, ok bool)

	// BytesReceived reports how many bytes are currently buffered.
	BytesReceived() int

	// SendData writes p to the host, blocking until the transport accepts
	// it. Returns the number of bytes written.
	SendData(p []byte) (int, error)

	// Flush waits for any buffered outbound data to leave the transport.
	Flush() error

	// TaskPump services the underlying transport once: it drains whatever
	// the transport has ready into the receive buffer and lets any
	// transport-level bookkeeping (enumeration, keepalives) run. Callers
	// on a cooperative scheduler must call this frequently instead of
	// blocking.
	TaskPump()
}

// ringSize is the depth of the receive ring buffer. 8192 matches the
// largest block transfer so a full block can arrive before the dispatcher
// drains it.
const ringSize = 8192

// ring is a fixed-size, non-allocating byte queue holding Memory's
// received bytes until ReceiveByte pops them.
type ring struct {
	buf        [ringSize]byte
	head, tail int
	count      int
}

func (r *ring) put(b byte) {
	if r.count == len(r.buf) {
		pkg.LogWarn(pkg.ComponentLink, "receive ring full, dropping byte")
		r.head = (r.head + 1) % len(r.buf)
		r.count--
	}
	r.buf[r.tail] = b
	r.tail = (r.tail + 1) % len(r.buf)
	r.count++
}

func (r *ring) get() (byte, bool) {
	if r.count == 0 {
		return 0, false
	}
	b := r.buf[r.head]
	r.head = (r.head + 1) % len(r.buf)
	r.count--
	return b, true
}

func (r *ring) len() int { return r.count }

// Memory is an in-process [Link] backed by two byte queues, used to drive
// the dispatcher and packet protocol in tests without a HAL.
type Memory struct {
	rx   ring
	tx   []byte
	pump func()
}

// NewMemory returns a Memory link. pump, if non-nil, is invoked on every
// TaskPump call; tests use it to feed host bytes into the link on demand.
func NewMemory(pump func()) *Memory {
	return &Memory{pump: pump}
}

// Feed injects bytes as if they had just arrived from the host. Tests call
// this from their pump callback or directly before exercising a read.
func (m *Memory) Feed(data []byte) {
	for _, b := range data {
		m.rx.put(b)
	}
}

// Sent returns and clears everything written via SendData so far.
func (m *Memory) Sent() []byte {
	out := m.tx
	m.tx = nil
	return out
}

func (m *Memory) ReceiveByte() (byte, bool) { return m.rx.get() }

func (m *Memory) BytesReceived() int { return m.rx.len() }

func (m *Memory) SendData(p []byte) (int, error) {
	m.tx = append(m.tx, p...)
	return len(p), nil
}

func (m *Memory) Flush() error { return nil }

func (m *Memory) TaskPump() {
	if m.pump != nil {
		m.pump()
	}
}

var _ Link = (*Memory)(nil)
