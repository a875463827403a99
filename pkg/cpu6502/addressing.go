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

// addrModeKind distinguishes implied/accumulator addressing from every other
// mode, since fetch() must not touch the bus for it.
type addrModeKind uint8

const (
	addrModeIMP addrModeKind = iota
	addrModeOther
)

// Addressing modes ===========================================================
// Each opcode in the table names one of these. They prime addrAbs (or addrRel,
// for branches) with where the instruction's operand lives, advance PC past
// the operand bytes, and report whether crossing a page boundary may cost an
// extra cycle (the executor has the final say, via the bitwise AND in Step).

// Implied/accumulator addressing: no operand byte. fetch() will use A
// directly rather than read the bus.
func amIMP(cpu *CPU) uint8 {
	cpu.fetched = cpu.A
	return 0
}

// Immediate: operand is the byte right after the opcode.
func amIMM(cpu *CPU) uint8 {
	cpu.addrAbs = cpu.PC
	cpu.PC++
	return 0
}

// Zero page: one operand byte addresses $0000-$00FF directly.
func amZP0(cpu *CPU) uint8 {
	cpu.addrAbs = uint16(cpu.read(cpu.PC))
	cpu.PC++
	cpu.addrAbs &= 0x00FF
	return 0
}

// Zero page, X: zero-page address plus X, wrapped within page zero.
func amZPX(cpu *CPU) uint8 {
	cpu.addrAbs = uint16(cpu.read(cpu.PC) + cpu.X)
	cpu.PC++
	cpu.addrAbs &= 0x00FF
	return 0
}

// Zero page, Y: as above but offset by Y (used only by LDX/STX family).
func amZPY(cpu *CPU) uint8 {
	cpu.addrAbs = uint16(cpu.read(cpu.PC) + cpu.Y)
	cpu.PC++
	cpu.addrAbs &= 0x00FF
	return 0
}

// Relative: signed 8-bit offset from the instruction after the branch,
// exclusive to branch opcodes. The sign-extension into addrRel's high byte
// lets branch execution do plain 16-bit addition.
func amREL(cpu *CPU) uint8 {
	cpu.addrRel = uint16(cpu.read(cpu.PC))
	cpu.PC++
	if cpu.addrRel&0x80 != 0 {
		cpu.addrRel |= 0xFF00
	}
	return 0
}

// Absolute: full 16-bit address follows the opcode.
func amABS(cpu *CPU) uint8 {
	cpu.addrAbs = cpu.read16(cpu.PC)
	cpu.PC += 2
	return 0
}

// Absolute, X: as above, offset by X; an extra cycle if the offset crosses a
// page boundary.
func amABX(cpu *CPU) uint8 {
	addr := cpu.read16(cpu.PC)
	cpu.PC += 2
	cpu.addrAbs = addr + uint16(cpu.X)
	if cpu.addrAbs&0xFF00 != addr&0xFF00 {
		return 1
	}
	return 0
}

// Absolute, Y: as above, offset by Y.
func amABY(cpu *CPU) uint8 {
	addr := cpu.read16(cpu.PC)
	cpu.PC += 2
	cpu.addrAbs = addr + uint16(cpu.Y)
	if cpu.addrAbs&0xFF00 != addr&0xFF00 {
		return 1
	}
	return 0
}

// Indirect: JMP ($addr) only. Reproduces the famous page-wrap hardware bug:
// if the low byte of the pointer is $FF, the high byte is fetched from the
// start of the same page instead of the next one.
func amIND(cpu *CPU) uint8 {
	ptrLo := uint16(cpu.read(cpu.PC))
	cpu.PC++
	ptrHi := uint16(cpu.read(cpu.PC))
	cpu.PC++
	ptr := ptrHi<<8 | ptrLo

	if ptrLo == 0x00FF {
		cpu.addrAbs = uint16(cpu.read(ptr&0xFF00))<<8 | uint16(cpu.read(ptr))
	} else {
		cpu.addrAbs = uint16(cpu.read(ptr+1))<<8 | uint16(cpu.read(ptr))
	}
	return 0
}

// Indirect, X: the zero-page byte plus X indexes a two-byte pointer in page
// zero; the pointer is the real address.
func amIZX(cpu *CPU) uint8 {
	t := uint16(cpu.read(cpu.PC))
	cpu.PC++
	lo := uint16(cpu.read((t + uint16(cpu.X)) & 0x00FF))
	hi := uint16(cpu.read((t + uint16(cpu.X) + 1) & 0x00FF))
	cpu.addrAbs = hi<<8 | lo
	return 0
}

// Indirect, Y: the zero-page byte indexes a two-byte pointer in page zero;
// Y is added to the pointer afterward. An extra cycle if that addition
// crosses a page boundary.
func amIZY(cpu *CPU) uint8 {
	t := uint16(cpu.read(cpu.PC))
	cpu.PC++
	lo := uint16(cpu.read(t & 0x00FF))
	hi := uint16(cpu.read((t + 1) & 0x00FF))
	cpu.addrAbs = hi<<8 | lo
	cpu.addrAbs += uint16(cpu.Y)
	if cpu.addrAbs&0xFF00 != hi<<8 {
		return 1
	}
	return 0
}
