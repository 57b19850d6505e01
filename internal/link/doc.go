// Package link defines the byte-stream view of the host connection used by
// the command dispatcher and packet protocol.
//
// Everything above this package sees the host only as a place to pull
// command/data bytes from and push response bytes to; USB enumeration,
// descriptor tables and class-request handling belong to the HAL and are
// not modeled here. [Link] is satisfied by package cdcserial (backed by a
// real or FIFO [github.com/swcbridge/firmware/internal/hal.DeviceHAL]) and
// by [Memory] for unit tests.
package link
