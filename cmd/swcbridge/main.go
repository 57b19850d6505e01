// Command swcbridge runs the SWC bridge command dispatcher against a
// FIFO-backed host link, for host-in-the-loop testing without real
// parallel-port hardware or USB silicon.
//
// Usage:
//
//	go run . [options] /path/to/bus-dir
//
// The bus directory is shared with a counterpart host process driving the
// named pipes the way a real USB host would drive the CDC-ACM link. The
// parallel-port side is simulated by lines whose status inputs all read
// low, so BUSY always reads as set after the Port Driver's polarity
// inversion. SendByte's waits are met at once, so WRITE ROM and WRITE
// SRAM run end to end; ReceiveByte's waits for BUSY clear are never met,
// so READ SRAM ends in a TIMEOUT report.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/swcbridge/firmware/internal/cdcserial"
	"github.com/swcbridge/firmware/internal/dispatcher"
	"github.com/swcbridge/firmware/internal/hal/fifo"
	"github.com/swcbridge/firmware/internal/pkg"
	"github.com/swcbridge/firmware/internal/port"
)

// simLine is a Line that only remembers the level last driven onto it; it
// stands in for the parallel-port peripheral when none is attached.
type simLine struct{ level bool }

func (l *simLine) Out()        {}
func (l *simLine) In()         {}
func (l *simLine) High()       { l.level = true }
func (l *simLine) Low()        { l.level = false }
func (l *simLine) Value() bool { return l.level }

func simPort() *port.Driver {
	var data [port.DataLines]port.Line
	for i := range data {
		data[i] = &simLine{}
	}
	var status [port.StatusLines]port.Line
	for i := range status {
		// Busy is status bit 7, the last line in the group; it stays low,
		// so ReadStatus (which XORs busy) reports BUSY set on every read.
		status[i] = &simLine{}
	}
	var control [port.ControlLines]port.Line
	for i := range control {
		control[i] = &simLine{}
	}
	return port.New(data, status, control, &simLine{})
}

func main() {
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn, error")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: swcbridge [options] <bus-dir>")
		os.Exit(1)
	}
	busDir := flag.Arg(0)

	switch *logLevel {
	case "debug":
		pkg.SetLogLevel(slog.LevelDebug)
	case "warn":
		pkg.SetLogLevel(slog.LevelWarn)
	case "error":
		pkg.SetLogLevel(slog.LevelError)
	default:
		pkg.SetLogLevel(slog.LevelInfo)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nshutting down...")
		cancel()
	}()

	h := fifo.New(busDir)
	serial := cdcserial.New(h, 0x81, 0x02)

	fmt.Printf("bus directory: %s\n", busDir)
	fmt.Printf("device directory: %s\n", h.DeviceDir())
	fmt.Println("waiting for host connection...")

	if err := serial.Open(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "failed to open host link: %v\n", err)
		os.Exit(1)
	}
	defer serial.Close()

	fmt.Println("host connected, running command dispatcher")

	d := dispatcher.New(simPort(), serial)
	if err := d.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "dispatcher stopped: %v\n", err)
		os.Exit(1)
	}
}
