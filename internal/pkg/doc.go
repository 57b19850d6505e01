// Package pkg provides shared utilities for the SWC bridge firmware.
//
// This package contains common functionality used across the HAL, host
// link, port driver, handshake engine, packet protocol and dispatcher,
// including:
//
//   - Structured logging via Go's standard [log/slog] package
//   - Sentinel error types for USB transport and bridge protocol errors
//   - Component identifiers for log filtering
//
// The package is designed to have zero external dependencies, relying
// only on the Go standard library.
//
// # Logging
//
// The logging subsystem wraps [log/slog] with bridge-specific context:
//
//	pkg.SetLogLevel(slog.LevelDebug)
//	pkg.LogInfo(pkg.ComponentDispatcher, "command dispatched", "opcode", op)
//
// # Errors
//
// Common transport and protocol errors are defined as sentinel values:
//
//	if errors.Is(err, pkg.ErrNotConfigured) {
//	    // Handle an operation attempted before the HAL finished init
//	}
//
//	if errors.Is(err, pkg.ErrChecksum) {
//	    // Handle a corrupt packet
//	}
package pkg
