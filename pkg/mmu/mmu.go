// Copyright © 2019 mg
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

// Package mmu implements the Apple IIe's central address decoder: it routes
// every CPU access to RAM, ROM, the keyboard latch, the Disk II controller,
// or one of the memory-mapped soft switches (eight video switches at
// $C050-$C057 and sixteen bank-switch addresses at $C080-$C08F) that reshape
// how the rest of the map is seen.
package mmu

import (
	"apple2e/pkg/bus"
	"apple2e/pkg/disk2"
	"apple2e/pkg/keyboard"
	"apple2e/pkg/memory"
)

var (
	_ bus.Device = (*memory.RAM)(nil)
	_ bus.Device = (*memory.ROM)(nil)
	_ bus.Device = (*keyboard.Keyboard)(nil)
	_ bus.Device = (*disk2.Disk2)(nil)
)

// VideoMode selects text vs. graphics display generation.
type VideoMode int

const (
	VideoText VideoMode = iota
	VideoGraphics
)

// ScreenMode selects a full-screen vs. split (text+graphics) display.
type ScreenMode int

const (
	ScreenFull ScreenMode = iota
	ScreenMixed
)

// PageSelect selects which of the two display pages is active.
type PageSelect int

const (
	Page1 PageSelect = iota
	Page2
)

// GraphicsMode selects low- vs. high-resolution graphics.
type GraphicsMode int

const (
	Lores GraphicsMode = iota
	Hires
)

const (
	ioLo  = 0xC000
	ioHi  = 0xC0FF
	diskLo = 0xC0E0
	diskHi = 0xC0EF
)

// MMU is the machine's single composite bus. The CPU, the disassembler, and
// the driver's memory viewer all reach RAM/ROM/devices exclusively through
// it.
type MMU struct {
	ram      *memory.RAM
	rom      *memory.ROM
	keyboard *keyboard.Keyboard
	disk2    *disk2.Disk2

	readBank  memory.Bank
	writeBank memory.Bank

	videoMode    VideoMode
	screenMode   ScreenMode
	pageSelect   PageSelect
	graphicsMode GraphicsMode
}

// New wires an MMU over the given devices. keyboard may be nil (no keyboard
// attached); disk2 may be nil (no disk controller attached).
func New(ram *memory.RAM, rom *memory.ROM, kbd *keyboard.Keyboard, dsk *disk2.Disk2) *MMU {
	return &MMU{ram: ram, rom: rom, keyboard: kbd, disk2: dsk}
}

// SetROM swaps the firmware image in place, for a host reloading a ROM file
// into an already-running machine.
func (m *MMU) SetROM(rom *memory.ROM) { m.rom = rom }

// Read implements cpu6502.Bus: it is side-effecting, exactly as real
// hardware is, for any soft switch or Disk2 address it touches.
func (m *MMU) Read(addr uint16) uint8 {
	switch {
	case addr <= memory.RAMHi:
		return m.ram.ReadBank(m.readBank, addr)
	case m.keyboard != nil && (addr == keyboard.DataAddr || addr == keyboard.StrobeAddr):
		return m.keyboard.Read(addr)
	case addr >= diskLo && addr <= diskHi && m.disk2 != nil:
		return m.disk2.Read(addr)
	case addr >= ioLo && addr <= ioHi:
		return m.touchSoftSwitch(addr)
	case addr >= memory.ROMLo:
		return m.rom.Read(addr - memory.ROMLo)
	default:
		return 0xFF
	}
}

// Write implements cpu6502.Bus. Writes to soft switches and bank-switch
// addresses have the same effect as a read of the same address; writes to
// ROM are dropped.
func (m *MMU) Write(addr uint16, v uint8) {
	switch {
	case addr <= memory.RAMHi:
		m.ram.WriteBank(m.writeBank, addr, v)
	case m.keyboard != nil && (addr == keyboard.DataAddr || addr == keyboard.StrobeAddr):
		m.keyboard.Write(addr, v)
	case addr >= diskLo && addr <= diskHi && m.disk2 != nil:
		m.disk2.Write(addr, v)
	case addr >= ioLo && addr <= ioHi:
		m.touchSoftSwitch(addr)
	case addr >= memory.ROMLo:
		// ROM writes are no-ops.
	}
}

// touchSoftSwitch applies the side effect of accessing addr (if it names a
// recognized soft switch or bank-switch address) and returns the value a CPU
// read of that address would see. Soft switches never fail: an address in
// $C000-$C0FF that names nothing recognized just reads back 0xFF.
func (m *MMU) touchSoftSwitch(addr uint16) uint8 {
	switch addr {
	case 0xC050:
		m.videoMode = VideoGraphics
	case 0xC051:
		m.videoMode = VideoText
	case 0xC052:
		m.screenMode = ScreenFull
	case 0xC053:
		m.screenMode = ScreenMixed
	case 0xC054:
		m.pageSelect = Page1
	case 0xC055:
		m.pageSelect = Page2
	case 0xC056:
		m.graphicsMode = Lores
	case 0xC057:
		m.graphicsMode = Hires
	case 0xC080, 0xC084, 0xC088, 0xC08C:
		m.readBank, m.writeBank = memory.Main, memory.Main
		return 0x00
	case 0xC081, 0xC085, 0xC089, 0xC08D:
		m.readBank, m.writeBank = memory.Aux, memory.Main
		return 0x00
	case 0xC082, 0xC086, 0xC08A, 0xC08E:
		m.readBank, m.writeBank = memory.Main, memory.Aux
		return 0x00
	case 0xC083, 0xC087, 0xC08B, 0xC08F:
		m.readBank, m.writeBank = memory.Aux, memory.Aux
		return 0x00
	}

	switch addr {
	case 0xC050:
		return boolByte(m.videoMode != VideoGraphics)
	case 0xC051:
		return boolByte(m.videoMode != VideoText)
	case 0xC052:
		return boolByte(m.screenMode != ScreenFull)
	case 0xC053:
		return boolByte(m.screenMode == ScreenFull)
	case 0xC054:
		return boolByte(m.pageSelect != Page1)
	case 0xC055:
		return boolByte(m.pageSelect == Page1)
	case 0xC056:
		return boolByte(m.graphicsMode != Lores)
	case 0xC057:
		return boolByte(m.graphicsMode == Lores)
	default:
		return 0xFF
	}
}

func boolByte(b bool) uint8 {
	if b {
		return 0xFF
	}
	return 0x00
}

// Peek reads the raw backing store behind addr without running any
// soft-switch side effect, without touching the Disk2 Q6/Q7 state machine,
// and without acknowledging the keyboard strobe. This is the path the
// driver's ReadMemory and the disassembler use.
func (m *MMU) Peek(addr uint16) uint8 {
	switch {
	case addr <= memory.RAMHi:
		return m.ram.ReadBank(m.readBank, addr)
	case m.keyboard != nil && addr == keyboard.DataAddr:
		return m.keyboard.Peek()
	case addr >= diskLo && addr <= diskHi && m.disk2 != nil:
		return m.disk2.Peek()
	case addr >= ioLo && addr <= ioHi:
		return m.peekSoftSwitch(addr)
	case addr >= memory.ROMLo:
		return m.rom.Read(addr - memory.ROMLo)
	default:
		return 0xFF
	}
}

func (m *MMU) peekSoftSwitch(addr uint16) uint8 {
	switch addr {
	case 0xC050:
		return boolByte(m.videoMode != VideoGraphics)
	case 0xC051:
		return boolByte(m.videoMode != VideoText)
	case 0xC052:
		return boolByte(m.screenMode != ScreenFull)
	case 0xC053:
		return boolByte(m.screenMode == ScreenFull)
	case 0xC054:
		return boolByte(m.pageSelect != Page1)
	case 0xC055:
		return boolByte(m.pageSelect == Page1)
	case 0xC056:
		return boolByte(m.graphicsMode != Lores)
	case 0xC057:
		return boolByte(m.graphicsMode == Lores)
	case 0xC080, 0xC081, 0xC082, 0xC083, 0xC084, 0xC085, 0xC086, 0xC087,
		0xC088, 0xC089, 0xC08A, 0xC08B, 0xC08C, 0xC08D, 0xC08E, 0xC08F:
		return 0x00
	default:
		return 0xFF
	}
}

// Devices returns every attached device as a bus.Device, for tooling (the
// CLI's snapshot command) that wants to report what's wired up without
// reaching into MMU internals. Unattached optional devices (keyboard,
// disk2) are omitted.
func (m *MMU) Devices() []bus.Device {
	devices := []bus.Device{m.ram, m.rom}
	if m.keyboard != nil {
		devices = append(devices, m.keyboard)
	}
	if m.disk2 != nil {
		devices = append(devices, m.disk2)
	}
	return devices
}

// CurrentVideoMode, CurrentScreenMode, CurrentPageSelect and
// CurrentGraphicsMode expose the current
// soft-switch-derived display state, read-only, for a future video renderer.
func (m *MMU) CurrentVideoMode() VideoMode       { return m.videoMode }
func (m *MMU) CurrentScreenMode() ScreenMode     { return m.screenMode }
func (m *MMU) CurrentPageSelect() PageSelect     { return m.pageSelect }
func (m *MMU) CurrentGraphicsMode() GraphicsMode { return m.graphicsMode }
