package packet

import (
	"github.com/swcbridge/firmware/internal/link"
	"github.com/swcbridge/firmware/internal/pkg"
)

// BlockSize is the only block size the peripheral accepts on the wire.
const BlockSize = 8192

// checksumSeed is the running XOR checksum's starting value for every
// packet and block.
const checksumSeed byte = 0x81

// Handshake is the subset of [github.com/swcbridge/firmware/internal/handshake.Engine]
// the packet protocol needs.
type Handshake interface {
	SendByte(b byte)
	ReceiveByte() byte
	Faulted() bool
}

// SendCommand emits a command packet: preamble, opcode, little-endian
// address and length, then a trailing XOR checksum.
func SendCommand(hs Handshake, op byte, addr, length uint16) {
	addrLo, addrHi := byte(addr), byte(addr>>8)
	lenLo, lenHi := byte(length), byte(length>>8)
	hs.SendByte(0xD5)
	hs.SendByte(0xAA)
	hs.SendByte(0x96)
	hs.SendByte(op)
	hs.SendByte(addrLo)
	hs.SendByte(addrHi)
	hs.SendByte(lenLo)
	hs.SendByte(lenHi)
	hs.SendByte(checksumSeed ^ op ^ addrLo ^ addrHi ^ lenLo ^ lenHi)
}

// SendCommand0 emits a single-byte register write: a command with op=0,
// len=1, followed by the payload byte and its checksum.
func SendCommand0(hs Handshake, addr uint16, b byte) {
	SendCommand(hs, 0, addr, 1)
	hs.SendByte(b)
	hs.SendByte(checksumSeed ^ b)
}

// SendBlock emits a command(op=0, targetAddr, size) then streams size
// payload bytes drawn from l as they arrive, forwarding each to hs and
// maintaining a running checksum, finally emitting the checksum byte.
// The host may not have all size bytes buffered yet; SendBlock pumps the
// link once per outer pass rather than blocking for more bytes.
func SendBlock(hs Handshake, l link.Link, targetAddr uint16, size int) {
	SendCommand(hs, 0, targetAddr, uint16(size))
	checksum := checksumSeed
	n := 0
	for n < size {
		l.TaskPump()
		available := l.BytesReceived()
		for i := 0; i < available && n < size; i++ {
			b, ok := l.ReceiveByte()
			if !ok {
				break
			}
			hs.SendByte(b)
			checksum ^= b
			n++
		}
	}
	hs.SendByte(checksum)
}

// ReceiveBlock emits a command(op=1, targetAddr, len) then reads len bytes
// from hs, forwarding each to the host and maintaining a running checksum.
// It returns true, along with [pkg.ErrChecksum], if the
// peripheral's trailing checksum byte disagrees with the computed one.
func ReceiveBlock(hs Handshake, l link.Link, targetAddr uint16, length int) (mismatch bool, err error) {
	SendCommand(hs, 1, targetAddr, uint16(length))
	checksum := checksumSeed
	for i := 0; i < length; i++ {
		b := hs.ReceiveByte()
		l.SendData([]byte{b})
		checksum ^= b
	}
	if checksum != hs.ReceiveByte() {
		return true, pkg.ErrChecksum
	}
	return false, nil
}
