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

package cpu6502

// Bus is everything the CPU needs from the rest of the machine. In this
// repository it is satisfied by *mmu.MMU; tests may satisfy it with a plain
// byte array.
type Bus interface {
	Read(addr uint16) uint8
	Write(addr uint16, v uint8)
}

// IllegalOpcodeHook is called with the offending opcode and the address it
// was fetched from whenever Step decodes an undocumented opcode. It is the
// diagnostic hook referenced by the error-handling design: the CPU never
// fails, it just reports.
type IllegalOpcodeHook func(opcode uint8, pc uint16)

// Snapshot is a read-only, by-value copy of the CPU's registers, suitable
// for a debugger or CLI to print without holding a reference to live state.
type Snapshot struct {
	PC          uint16
	SP          uint8
	A, X, Y     uint8
	P           uint8
	Cycles      uint64
	Initialized bool
}

// CPU emulates a MOS 6502 from a software perspective. It has no memory of
// its own; all loads and stores go through Bus.
type CPU struct {
	A, X, Y uint8
	SP      uint8
	PC      uint16
	P       uint8

	// Cycles is the running, monotonically increasing total consumed since
	// construction; Reset does not clear it.
	Cycles uint64
	// Initialized is set once Reset has fetched the reset vector.
	Initialized bool

	bus       Bus
	onIllegal IllegalOpcodeHook

	// working state, valid only during Step
	fetched uint8
	temp    uint16
	addrAbs uint16
	addrRel uint16
	opcode  uint8
	cycles  uint8 // this instruction's cycle accumulator
}

// New returns a CPU attached to bus. Call Reset before Step.
func New(bus Bus) *CPU {
	return &CPU{bus: bus}
}

// SetIllegalOpcodeHook installs (or clears, with nil) the diagnostic callback
// invoked when Step decodes an undocumented opcode.
func (cpu *CPU) SetIllegalOpcodeHook(hook IllegalOpcodeHook) {
	cpu.onIllegal = hook
}

// Reset fetches the reset vector from $FFFC/$FFFD, clears A/X/Y, sets SP to
// $FD and P to $24 (I and the unused bit set), and marks the CPU initialized.
func (cpu *CPU) Reset() {
	cpu.PC = cpu.read16(0xFFFC)
	cpu.A, cpu.X, cpu.Y = 0, 0, 0
	cpu.SP = 0xFD
	cpu.P = FlagUnused | FlagInterrupt
	cpu.addrRel, cpu.addrAbs, cpu.fetched = 0, 0, 0
	cpu.Initialized = true
}

// IRQ requests a maskable interrupt. It is a no-op if the interrupt-disable
// flag is set. Otherwise it pushes PC and P (with B cleared), sets I, and
// loads PC from $FFFE/$FFFF.
func (cpu *CPU) IRQ() {
	if cpu.GetFlag(FlagInterrupt) != 0 {
		return
	}
	cpu.pushPC()
	cpu.SetFlag(FlagBreak, false)
	cpu.SetFlag(FlagUnused, true)
	cpu.push(cpu.P)
	cpu.SetFlag(FlagInterrupt, true)
	cpu.PC = cpu.read16(0xFFFE)
	cpu.Cycles += 7
}

// NMI requests a non-maskable interrupt: like IRQ but never masked, and
// loads PC from $FFFA/$FFFB.
func (cpu *CPU) NMI() {
	cpu.pushPC()
	cpu.SetFlag(FlagBreak, false)
	cpu.SetFlag(FlagUnused, true)
	cpu.push(cpu.P)
	cpu.SetFlag(FlagInterrupt, true)
	cpu.PC = cpu.read16(0xFFFA)
	cpu.Cycles += 8
}

// Step fetches, decodes, and fully executes one instruction at PC, and
// returns the number of cycles it consumed (base cycles plus any
// addressing-mode/branch penalties).
func (cpu *CPU) Step() uint64 {
	cpu.opcode = cpu.read(cpu.PC)
	instr := opcodeTable[cpu.opcode]
	cpu.PC++

	cpu.SetFlag(FlagUnused, true)
	cpu.cycles = instr.baseCycles

	if instr.illegal && cpu.onIllegal != nil {
		cpu.onIllegal(cpu.opcode, cpu.PC-1)
	}

	addrCycles := instr.addrMode(cpu)
	execCycles := instr.exec(cpu)
	cpu.cycles += addrCycles & execCycles

	cpu.SetFlag(FlagUnused, true)
	cpu.Cycles += uint64(cpu.cycles)
	return uint64(cpu.cycles)
}

// Snapshot returns a value copy of the CPU's registers.
func (cpu *CPU) Snapshot() Snapshot {
	return Snapshot{
		PC:          cpu.PC,
		SP:          cpu.SP,
		A:           cpu.A,
		X:           cpu.X,
		Y:           cpu.Y,
		P:           cpu.P,
		Cycles:      cpu.Cycles,
		Initialized: cpu.Initialized,
	}
}

func (cpu *CPU) push(v uint8) {
	cpu.write(0x0100+uint16(cpu.SP), v)
	cpu.SP--
}

func (cpu *CPU) pop() uint8 {
	cpu.SP++
	return cpu.read(0x0100 + uint16(cpu.SP))
}

func (cpu *CPU) pushPC() {
	cpu.write(0x0100+uint16(cpu.SP), uint8((cpu.PC>>8)&0x00FF))
	cpu.SP--
	cpu.write(0x0100+uint16(cpu.SP), uint8(cpu.PC&0x00FF))
	cpu.SP--
}

func (cpu *CPU) popPC() {
	cpu.SP++
	cpu.PC = cpu.read16(0x0100 + uint16(cpu.SP))
	cpu.SP++
}

func (cpu *CPU) read(addr uint16) uint8 { return cpu.bus.Read(addr) }

func (cpu *CPU) read16(addr uint16) uint16 {
	lo := uint16(cpu.read(addr))
	hi := uint16(cpu.read(addr + 1))
	return hi<<8 | lo
}

func (cpu *CPU) write(addr uint16, v uint8) { cpu.bus.Write(addr, v) }

// fetch loads the operand addressed by the current instruction's addressing
// mode into cpu.fetched (implied/accumulator modes leave A there instead, so
// they never need a bus read).
func (cpu *CPU) fetch() uint8 {
	if opcodeTable[cpu.opcode].addrModeKind != addrModeIMP {
		cpu.fetched = cpu.read(cpu.addrAbs)
	}
	return cpu.fetched
}
