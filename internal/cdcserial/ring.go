package cdcserial

import "github.com/swcbridge/firmware/internal/pkg"

// ringSize matches the largest block transfer so a full block can arrive
// between dispatcher drains.
const ringSize = 8192

// linkRing is a fixed-size, non-allocating byte queue for bytes pulled off
// the OUT endpoint ahead of ReceiveByte.
type linkRing struct {
	buf        [ringSize]byte
	head, tail int
	count      int
}

func (r *linkRing) put(b byte) {
	if r.count == len(r.buf) {
		pkg.LogWarn(pkg.ComponentLink, "receive ring full, dropping byte")
		r.head = (r.head + 1) % len(r.buf)
		r.count--
	}
	r.buf[r.tail] = b
	r.tail = (r.tail + 1) % len(r.buf)
	r.count++
}

func (r *linkRing) get() (byte, bool) {
	if r.count == 0 {
		return 0, false
	}
	b := r.buf[r.head]
	r.head = (r.head + 1) % len(r.buf)
	r.count--
	return b, true
}

func (r *linkRing) len() int { return r.count }
