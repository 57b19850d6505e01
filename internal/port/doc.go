// Package port abstracts the four GPIO line groups the SWC cartridge
// interface exposes: 8-bit data out, 5-bit status in, 4-bit control out and
// a single LED line. [Driver] owns the signal polarity the peripheral
// requires so every other package deals only in logical bytes.
//
// The polarity masks and nibble shifts here are peripheral-facing and must
// stay bit-exact; everything above this package consumes logical signals
// only.
package port
