// Package hal defines the Hardware Abstraction Layer interface between the
// SWC bridge firmware and the USB controller that carries the host's
// CDC-ACM virtual serial link.
//
// The bridge's command dispatcher and packet protocol never touch USB
// silicon directly. Everything they need from "the host computer" is
// expressed through [DeviceHAL] and the narrower byte-stream view built on
// top of it in package cdcserial. Clock/watchdog bring-up, descriptor
// tables, endpoint configuration and GPIO register layout for a given
// board are external collaborators that satisfy this interface; the core
// firmware logic is identical whether the HAL is backed by real silicon or
// the FIFO-based test harness in package fifo.
//
// # Design Principles
//
// The HAL is designed to be:
//
//   - Minimal: only expose operations essential for USB device functionality
//   - Generic: no platform-specific assumptions or details
//   - Flexible: adaptable to a wide range of USB controllers
//
// # Interface Overview
//
// The [DeviceHAL] interface defines the contract for device-side USB
// bulk-transfer operations:
//
//   - Initialization and lifecycle management
//   - Endpoint configuration for the CDC-ACM bulk pipe
//   - Data endpoint Read/Write for the bulk data endpoints
//   - Connection state and speed negotiation
//
// Enumeration and control transfers (SETUP, EP0) are assumed to have
// already happened below this interface; DeviceHAL only carries what the
// host link needs once the device is configured.
//
// # Implementing a HAL
//
// To implement a HAL for a new board:
//
//  1. Create a type that implements all [DeviceHAL] methods
//  2. Handle hardware-specific initialization in Init()
//  3. Implement ConfigureEndpoints for the bulk data endpoints
//  4. Implement Read/Write for the bulk data endpoints
//  5. Track connection state and negotiated speed
//
// # Zero-Allocation Design
//
// HAL implementations should follow zero-allocation patterns where
// feasible:
//
//   - Reuse buffers provided by the caller
//   - Avoid allocations in the hot path (Read/Write operations)
//   - Use fixed-size internal buffers where dynamic allocation would occur
//
// A FIFO-based HAL for host-in-the-loop testing is available in
// [github.com/swcbridge/firmware/internal/hal/fifo].
package hal
