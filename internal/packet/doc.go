// Package packet implements the framed command/block protocol carried over
// [github.com/swcbridge/firmware/internal/handshake] and the three
// high-level operations built from it: ROM upload, SRAM download, SRAM
// upload.
//
// Every packet is little-endian on the parallel link (address and length
// low byte first) regardless of the big-endian argument encoding the host
// uses on USB. Checksums are a running XOR seeded at 0x81.
package packet
