// Package handshake implements the byte-level half-duplex transport over
// the parallel-port link: [Engine.SendByte] and [Engine.ReceiveByte] built
// on the BUSY/STROBE busy-poll primitive, plus the shared fault flag that
// every Handshake and Packet-layer operation must honor.
//
// Once [Engine.Faulted] is true, every primitive here is a no-op that
// returns immediately; only the command dispatcher clears the flag, after
// reporting it to the host.
package handshake
