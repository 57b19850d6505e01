// Package dispatcher implements the command loop: read a fixed-width
// command token from the host link, activate the parallel port, run the
// matching [github.com/swcbridge/firmware/internal/packet] operation,
// deactivate the port, report a timeout if the handshake engine faulted,
// and drain any bytes the host sent past what the operation consumed.
package dispatcher
