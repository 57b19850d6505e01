// Package cdcserial implements [github.com/swcbridge/firmware/internal/link.Link]
// over a USB-CDC bulk pipe presented by a
// [github.com/swcbridge/firmware/internal/hal.DeviceHAL].
//
// Enumeration, descriptor tables and class-specific control requests are
// the HAL's concern; Serial only moves bytes across the two bulk
// endpoints the CDC data interface exposes once the HAL reports the
// device connected.
package cdcserial
