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

// Package cpu6502 implements the MOS 6502 as used in the Apple IIe: registers,
// flags, the 256-entry opcode table, addressing modes, and decimal-mode
// arithmetic. The CPU holds no memory of its own; every load/store goes
// through the Bus it is attached to.
package cpu6502

const (
	// FlagCarry C - bit 0
	FlagCarry uint8 = 0x01
	// FlagZero Z - bit 1
	FlagZero uint8 = 0x02
	// FlagInterrupt I - bit 2, masks IRQ (not NMI)
	FlagInterrupt uint8 = 0x04
	// FlagDecimal D - bit 3, BCD mode for ADC/SBC
	FlagDecimal uint8 = 0x08
	// FlagBreak B - bit 4, only meaningful in a byte pushed by BRK/PHP
	FlagBreak uint8 = 0x10
	// FlagUnused U - bit 5, always reads as 1
	FlagUnused uint8 = 0x20
	// FlagOverflow V - bit 6
	FlagOverflow uint8 = 0x40
	// FlagNegative N - bit 7
	FlagNegative uint8 = 0x80
)

// GetFlag returns 1 if flag is set in P, 0 otherwise.
func (cpu *CPU) GetFlag(flag uint8) uint8 {
	if cpu.P&flag != 0 {
		return 1
	}
	return 0
}

// SetFlag sets or clears flag in P.
func (cpu *CPU) SetFlag(flag uint8, v bool) {
	if v {
		cpu.P |= flag
	} else {
		cpu.P &^= flag
	}
}
