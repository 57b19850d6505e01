package packet

import (
	"fmt"
	"time"

	"github.com/swcbridge/firmware/internal/link"
	"github.com/swcbridge/firmware/internal/pkg"
)

// Memory window addresses the peripheral exposes its ROM and SRAM banks
// through; fixed by the cartridge hardware.
const (
	romTargetAddr  = 0x8000
	sramTargetAddr = 0x2000
)

// sramBankCount is the number of 8 KiB SRAM banks (SRAM is 4*8 KiB).
const sramBankCount = 4

// sramBlockDelay is the settling time the peripheral needs between SRAM
// bank reads.
const sramBlockDelay = 50 * time.Millisecond

func report(l link.Link, msg string) {
	l.SendData([]byte(msg))
	l.Flush()
}

// WriteROM uploads totalBlocks 8192-byte blocks from the host to ROM, then
// finalizes the transfer and reports "OK\n". It aborts without reporting
// if the fault flag is raised partway through; the dispatcher reports
// TIMEOUT for that case.
func WriteROM(hs Handshake, l link.Link, totalBlocks uint16, emuModeSelect byte) {
	address := uint16(0x200)
	var block uint16
	for block = 0; block < totalBlocks; block++ {
		SendCommand0(hs, 0xC010, byte(block>>9))
		SendCommand(hs, 5, address, 0)
		SendBlock(hs, l, romTargetAddr, BlockSize)
		address++
		if hs.Faulted() {
			return
		}
	}
	if totalBlocks > 0x200 {
		SendCommand0(hs, 0xC010, 1)
	}
	SendCommand(hs, 5, 0, 0)
	SendCommand(hs, 6, 5|(totalBlocks<<8), totalBlocks>>8)
	SendCommand(hs, 6, 1|(uint16(emuModeSelect)<<8), 0)
	report(l, "OK\n")
}

// ReadSRAM downloads the cartridge's 4 SRAM banks to the host, reporting
// an aggregate checksum-error count or success. sleep is injected so
// tests can run without the peripheral's real inter-block settling time;
// production callers pass [time.Sleep].
func ReadSRAM(hs Handshake, l link.Link, sleep func(time.Duration)) {
	SendCommand(hs, 5, 0, 0)
	SendCommand0(hs, 0xE00D, 0)
	SendCommand0(hs, 0xC008, 0)

	address := uint16(0x100)
	var errorCount byte
	for i := 0; i < sramBankCount; i++ {
		SendCommand(hs, 5, address, 0)
		if _, err := ReceiveBlock(hs, l, sramTargetAddr, BlockSize); err != nil {
			pkg.LogWarn(pkg.ComponentPacket, "sram bank checksum mismatch", "bank", i, "error", err)
			errorCount++
		}
		sleep(sramBlockDelay)
		address++
		if hs.Faulted() {
			return
		}
	}
	l.Flush()
	if errorCount > 0 {
		report(l, fmt.Sprintf("*#*#*ERR%d\n", errorCount))
	} else {
		report(l, "*#*#*#*OK\n")
	}
}

// WriteSRAM uploads totalBytes of host data to SRAM in up to
// ceil(totalBytes/BlockSize) blocks, the final one short if totalBytes is
// not a multiple of BlockSize, then reports "OK\n".
func WriteSRAM(hs Handshake, l link.Link, totalBytes uint16) {
	SendCommand(hs, 5, 0, 0)
	SendCommand0(hs, 0xE00D, 0)
	SendCommand0(hs, 0xC008, 0)

	address := uint16(0x100)
	lastBlockSize := int(totalBytes) % BlockSize
	blocks := int(totalBytes) / BlockSize
	if lastBlockSize != 0 {
		blocks++
	}
	blockSize := BlockSize
	for block := 0; block < blocks; block++ {
		if lastBlockSize != 0 && block == blocks-1 {
			blockSize = lastBlockSize
		}
		SendCommand(hs, 5, address, 0)
		SendBlock(hs, l, sramTargetAddr, blockSize)
		address++
		if hs.Faulted() {
			return
		}
	}
	report(l, "OK\n")
}
