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

// Package emulator wires the CPU, MMU, keyboard and Disk II controller into
// a single driver and owns the only clock in the system: StepCycles.
package emulator

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"apple2e/internal/corelog"
	"apple2e/pkg/bus"
	"apple2e/pkg/cpu6502"
	"apple2e/pkg/disk2"
	"apple2e/pkg/keyboard"
	"apple2e/pkg/memory"
	"apple2e/pkg/mmu"
)

// ErrNotInitialized is returned by StepCycles when no ROM has been loaded
// and Reset issued yet.
var ErrNotInitialized = errors.New("emulator: driver not initialized, load a ROM and Reset first")

// ErrIOFailure wraps a filesystem error the host hit loading a ROM or disk
// image.
var ErrIOFailure = errors.New("emulator: i/o failure loading image")

// CPUSnapshot is a value copy of the CPU's registers.
type CPUSnapshot = cpu6502.Snapshot

// DiskSnapshot is a value copy of the Disk II controller's visible state,
// both drives included.
type DiskSnapshot struct {
	MotorOn       bool
	SelectedDrive int
	Q6, Q7        bool
	PhaseMask     uint8
	DataLatch     uint8
	Drives        [2]DriveSnapshot
}

// DriveSnapshot is a value copy of one drive bay's media state.
type DriveSnapshot struct {
	HasDisk        bool
	WriteProtected bool
	Filename       string
	CurrentTrack   int
	NibblePos      int
}

// Driver owns every device in the machine and is the sole entry point a
// host (CLI or otherwise) uses to run it. All exported methods are
// goroutine-safe; none may be called reentrantly from inside an
// IllegalOpcodeHook or Logger callback.
type Driver struct {
	mu sync.Mutex

	ram      *memory.RAM
	rom      *memory.ROM
	keyboard *keyboard.Keyboard
	disk2    *disk2.Disk2
	mmu      *mmu.MMU
	cpu      *cpu6502.CPU

	log         *corelog.Facility
	romLoaded   bool
	initialized bool
}

// New returns a Driver with empty RAM, a blank (all-0xFF) ROM, an idle
// keyboard, and two empty disk bays. LoadROM and Reset must both run before
// StepCycles will advance the machine.
func New() *Driver {
	ram := memory.NewRAM()
	rom := memory.NewROM(nil)
	kbd := keyboard.NewKeyboard()
	dsk := disk2.New()
	m := mmu.New(ram, rom, kbd, dsk)

	d := &Driver{
		ram:      ram,
		rom:      rom,
		keyboard: kbd,
		disk2:    dsk,
		mmu:      m,
		log:      corelog.NewFacility(),
	}
	d.cpu = cpu6502.New(m)
	d.cpu.SetIllegalOpcodeHook(func(opcode uint8, pc uint16) {
		d.log.Log(fmt.Sprintf("illegal opcode 0x%02X at 0x%04X", opcode, pc))
	})
	return d
}

// SetLogger installs the Driver's diagnostic sink.
func (d *Driver) SetLogger(l corelog.Logger) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.log.SetLogger(l)
}

// SetLogEnable turns diagnostic logging on or off.
func (d *Driver) SetLogEnable(enable bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.log.SetEnable(enable)
}

// LoadROM replaces the machine's 16KiB firmware image. It does not reset
// the CPU; call Reset afterward to latch the new reset vector.
func (d *Driver) LoadROM(data []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.rom = memory.NewROM(data)
	d.mmu.SetROM(d.rom)
	d.romLoaded = true
	d.log.Log("rom loaded")
	return nil
}

// LoadDisk loads a DOS 3.3 DSK image into drive (0 or 1). data must be
// exactly disk2.ImageSize bytes; ErrInvalidImageSize is returned verbatim
// from pkg/disk2 otherwise.
func (d *Driver) LoadDisk(drive int, data []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	filename := fmt.Sprintf("drive%d.dsk", drive)
	if err := d.disk2.Load(drive, data, filename, false); err != nil {
		return err
	}
	d.log.Log(fmt.Sprintf("disk loaded into drive %d", drive))
	return nil
}

// EjectDisk removes any media from drive (0 or 1).
func (d *Driver) EjectDisk(drive int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.disk2.Eject(drive); err != nil {
		return err
	}
	d.log.Log(fmt.Sprintf("disk ejected from drive %d", drive))
	return nil
}

// PressKey latches ascii on the keyboard, as if the host delivered a key
// event.
func (d *Driver) PressKey(ascii byte) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.keyboard.PressKey(ascii)
}

// Reset issues a CPU reset: PC loads from the reset vector, registers
// return to power-on state, and the driver is marked initialized.
func (d *Driver) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cpu.Reset()
	d.initialized = true
	d.log.Log("reset")
}

// StepCycles runs cpu.Step in a loop until the accumulated cycle count is
// at least n, then advances the Disk II nibble timer by the same total, and
// returns the actual number of cycles executed (which may slightly exceed n
// since instructions are never interrupted mid-execution). ctx is checked
// once before the loop and once per instruction boundary; cancellation
// returns whatever has executed so far. Returns 0 and ErrNotInitialized if
// no ROM/Reset has happened yet.
func (d *Driver) StepCycles(ctx context.Context, n uint64) (uint64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.romLoaded || !d.initialized {
		return 0, ErrNotInitialized
	}

	var executed uint64
	for executed < n {
		select {
		case <-ctx.Done():
			d.disk2.Advance(executed)
			return executed, nil
		default:
		}
		executed += d.cpu.Step()
	}
	d.disk2.Advance(executed)
	return executed, nil
}

// ReadMemory reads addr through the non-side-effecting mmu.Peek path: it
// never triggers a soft switch, never clears the keyboard strobe, and never
// perturbs the Disk II Q6/Q7 state machine. Safe to call from a UI refresh
// loop or a memory-viewer window.
func (d *Driver) ReadMemory(addr uint16) uint8 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.mmu.Peek(addr)
}

// SnapshotCPU returns a value copy of the CPU's registers.
func (d *Driver) SnapshotCPU() CPUSnapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cpu.Snapshot()
}

// SnapshotDisk returns a value copy of the Disk II controller's visible
// state, both drives included.
func (d *Driver) SnapshotDisk() DiskSnapshot {
	d.mu.Lock()
	defer d.mu.Unlock()

	snap := DiskSnapshot{
		MotorOn:       d.disk2.MotorOn(),
		SelectedDrive: d.disk2.SelectedDrive(),
		Q6:            d.disk2.Q6(),
		Q7:            d.disk2.Q7(),
		PhaseMask:     d.disk2.PhaseMask(),
		DataLatch:     d.disk2.DataLatch(),
	}
	for i := 0; i < 2; i++ {
		snap.Drives[i] = DriveSnapshot{
			HasDisk:        d.disk2.HasDisk(i),
			WriteProtected: d.disk2.WriteProtected(i),
			Filename:       d.disk2.Filename(i),
			CurrentTrack:   d.disk2.CurrentTrack(i),
			NibblePos:      d.disk2.NibblePos(i),
		}
	}
	return snap
}

// Devices lists every device wired into the machine's MMU, for a host that
// wants to report what's attached (the CLI's snapshot command does).
func (d *Driver) Devices() []bus.Device {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.mmu.Devices()
}

// Disassemble returns a disassembly window over [start, end] using the
// same non-side-effecting Peek path ReadMemory uses.
func (d *Driver) Disassemble(start, end uint16) *cpu6502.Disassembly {
	d.mu.Lock()
	defer d.mu.Unlock()
	return cpu6502.Disassemble(d.mmu.Peek, start, end)
}
