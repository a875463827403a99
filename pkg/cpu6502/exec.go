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

// Opcodes =====================================================================
// Each of these returns 0 normally, or 1 if it is willing to accept the extra
// cycle an addressing mode may have signaled (a page-crossing load, but not a
// store). Branch opcodes manage cpu.cycles directly instead, since the extra
// cycle there depends on the branch being taken, not on the addressing mode.

// Instruction: Add with Carry
// Function: A = A + M + C
// Flags Out: C, V, N, Z
//
// In decimal mode the 6502 treats A and the operand as two packed BCD
// digits and corrects each nibble after the binary add; the Apple IIe relies
// on this for its BASIC's floating point and for DOS 3.3's checksum math.
func opADC(cpu *CPU) uint8 {
	cpu.fetch()

	if cpu.GetFlag(FlagDecimal) != 0 {
		decimalADC(cpu, cpu.fetched)
		return 1
	}

	cpu.temp = uint16(cpu.A) + uint16(cpu.fetched) + uint16(cpu.GetFlag(FlagCarry))
	cpu.SetFlag(FlagCarry, cpu.temp > 255)
	cpu.SetFlag(FlagZero, cpu.temp&0x00FF == 0)
	overflow := (^(uint16(cpu.A) ^ uint16(cpu.fetched)) & (uint16(cpu.A) ^ cpu.temp)) & 0x0080
	cpu.SetFlag(FlagOverflow, overflow != 0)
	cpu.SetFlag(FlagNegative, cpu.temp&0x80 != 0)
	cpu.A = uint8(cpu.temp & 0x00FF)
	return 1
}

// decimalADC performs packed-BCD addition per the documented 6502 decimal
// algorithm: each nibble is summed independently and corrected (+6) if it
// exceeds 9, with the high-nibble correction also setting carry.
func decimalADC(cpu *CPU, value uint8) {
	carry := uint16(cpu.GetFlag(FlagCarry))
	a := uint16(cpu.A)
	v := uint16(value)

	binResult := a + v + carry
	cpu.SetFlag(FlagZero, binResult&0x00FF == 0)

	low := (a & 0x0F) + (v & 0x0F) + carry
	var halfCarry uint16
	if low > 9 {
		halfCarry = 1
		low = (low + 6) & 0x0F
	}

	high := (a >> 4) + (v >> 4) + halfCarry
	overflow := (^(a ^ v) & (a ^ (high << 4))) & 0x0080
	cpu.SetFlag(FlagOverflow, overflow != 0)
	cpu.SetFlag(FlagNegative, high&0x08 != 0)

	if high > 9 {
		high = (high + 6) & 0x0F
		cpu.SetFlag(FlagCarry, true)
	} else {
		cpu.SetFlag(FlagCarry, false)
	}

	cpu.A = uint8((high<<4)&0xF0) | uint8(low&0x0F)
}

// Instruction: Bitwise Logic AND
// Function: A = A & M
// Flags Out: N, Z
func opAND(cpu *CPU) uint8 {
	cpu.fetch()
	cpu.A &= cpu.fetched
	cpu.SetFlag(FlagZero, cpu.A == 0x00)
	cpu.SetFlag(FlagNegative, cpu.A&0x80 != 0)
	return 1
}

// Instruction: Arithmetic Shift Left
// Function: A = C <- (A << 1) <- 0, or the same against mem[addr]
// Flags Out: N, Z, C
func opASL(cpu *CPU) uint8 {
	cpu.fetch()
	cpu.temp = uint16(cpu.fetched) << 1
	cpu.SetFlag(FlagCarry, cpu.temp&0xFF00 > 0)
	cpu.SetFlag(FlagZero, cpu.temp&0x00FF == 0x00)
	cpu.SetFlag(FlagNegative, cpu.temp&0x80 != 0)

	if opcodeTable[cpu.opcode].addrModeKind == addrModeIMP {
		cpu.A = uint8(cpu.temp & 0x00FF)
	} else {
		cpu.write(cpu.addrAbs, uint8(cpu.temp&0x00FF))
	}
	return 0
}

func branchIf(cpu *CPU, cond bool) uint8 {
	if cond {
		cpu.cycles++
		cpu.addrAbs = cpu.PC + cpu.addrRel
		if cpu.addrAbs&0xFF00 != cpu.PC&0xFF00 {
			cpu.cycles++
		}
		cpu.PC = cpu.addrAbs
	}
	return 0
}

// Instruction: Branch if Carry Clear
func opBCC(cpu *CPU) uint8 { return branchIf(cpu, cpu.GetFlag(FlagCarry) == 0) }

// Instruction: Branch if Carry Set
func opBCS(cpu *CPU) uint8 { return branchIf(cpu, cpu.GetFlag(FlagCarry) == 1) }

// Instruction: Branch if Equal
func opBEQ(cpu *CPU) uint8 { return branchIf(cpu, cpu.GetFlag(FlagZero) == 1) }

// Instruction: Bit Test
// Function: Z = (A & M) == 0, N = M bit 7, V = M bit 6
func opBIT(cpu *CPU) uint8 {
	cpu.fetch()
	cpu.temp = uint16(cpu.A & cpu.fetched)
	cpu.SetFlag(FlagZero, cpu.temp&0x00FF == 0x00)
	cpu.SetFlag(FlagNegative, cpu.fetched&(1<<7) != 0)
	cpu.SetFlag(FlagOverflow, cpu.fetched&(1<<6) != 0)
	return 0
}

// Instruction: Branch if Negative
func opBMI(cpu *CPU) uint8 { return branchIf(cpu, cpu.GetFlag(FlagNegative) == 1) }

// Instruction: Branch if Not Equal
func opBNE(cpu *CPU) uint8 { return branchIf(cpu, cpu.GetFlag(FlagZero) == 0) }

// Instruction: Branch if Positive
func opBPL(cpu *CPU) uint8 { return branchIf(cpu, cpu.GetFlag(FlagNegative) == 0) }

// Instruction: Break
// Function: software interrupt; pushes PC+2 and P (with B set) and loads the
// IRQ/BRK vector at $FFFE/$FFFF.
func opBRK(cpu *CPU) uint8 {
	cpu.SetFlag(FlagInterrupt, true)
	cpu.pushPC()
	cpu.SetFlag(FlagBreak, true)
	cpu.push(cpu.P)
	cpu.SetFlag(FlagBreak, false)
	cpu.PC = cpu.read16(0xFFFE)
	return 0
}

// Instruction: Branch if Overflow Clear
func opBVC(cpu *CPU) uint8 { return branchIf(cpu, cpu.GetFlag(FlagOverflow) == 0) }

// Instruction: Branch if Overflow Set
func opBVS(cpu *CPU) uint8 { return branchIf(cpu, cpu.GetFlag(FlagOverflow) == 1) }

// Instruction: Clear Carry Flag
func opCLC(cpu *CPU) uint8 { cpu.SetFlag(FlagCarry, false); return 0 }

// Instruction: Clear Decimal Flag
func opCLD(cpu *CPU) uint8 { cpu.SetFlag(FlagDecimal, false); return 0 }

// Instruction: Clear Interrupt Disable
func opCLI(cpu *CPU) uint8 { cpu.SetFlag(FlagInterrupt, false); return 0 }

// Instruction: Clear Overflow Flag
func opCLV(cpu *CPU) uint8 { cpu.SetFlag(FlagOverflow, false); return 0 }

// Instruction: Compare Accumulator
// Function: C <- A >= M, Z <- (A - M) == 0
func opCMP(cpu *CPU) uint8 {
	cpu.fetch()
	cpu.temp = uint16(cpu.A) - uint16(cpu.fetched)
	cpu.SetFlag(FlagCarry, cpu.A >= cpu.fetched)
	cpu.SetFlag(FlagZero, cpu.temp&0x00FF == 0x0000)
	cpu.SetFlag(FlagNegative, cpu.temp&0x0080 != 0)
	return 1
}

// Instruction: Compare X Register
func opCPX(cpu *CPU) uint8 {
	cpu.fetch()
	cpu.temp = uint16(cpu.X) - uint16(cpu.fetched)
	cpu.SetFlag(FlagCarry, cpu.X >= cpu.fetched)
	cpu.SetFlag(FlagZero, cpu.temp&0x00FF == 0x0000)
	cpu.SetFlag(FlagNegative, cpu.temp&0x0080 != 0)
	return 0
}

// Instruction: Compare Y Register
func opCPY(cpu *CPU) uint8 {
	cpu.fetch()
	cpu.temp = uint16(cpu.Y) - uint16(cpu.fetched)
	cpu.SetFlag(FlagCarry, cpu.Y >= cpu.fetched)
	cpu.SetFlag(FlagZero, cpu.temp&0x00FF == 0x0000)
	cpu.SetFlag(FlagNegative, cpu.temp&0x0080 != 0)
	return 0
}

// Instruction: Decrement Memory
func opDEC(cpu *CPU) uint8 {
	cpu.fetch()
	cpu.temp = uint16(cpu.fetched - 1)
	cpu.write(cpu.addrAbs, uint8(cpu.temp&0x00FF))
	cpu.SetFlag(FlagZero, cpu.temp&0x00FF == 0x0000)
	cpu.SetFlag(FlagNegative, cpu.temp&0x0080 != 0)
	return 0
}

// Instruction: Decrement X
func opDEX(cpu *CPU) uint8 {
	cpu.X--
	cpu.SetFlag(FlagZero, cpu.X == 0x00)
	cpu.SetFlag(FlagNegative, cpu.X&0x80 != 0)
	return 0
}

// Instruction: Decrement Y
func opDEY(cpu *CPU) uint8 {
	cpu.Y--
	cpu.SetFlag(FlagZero, cpu.Y == 0x00)
	cpu.SetFlag(FlagNegative, cpu.Y&0x80 != 0)
	return 0
}

// Instruction: Bitwise Logic XOR
func opEOR(cpu *CPU) uint8 {
	cpu.fetch()
	cpu.A ^= cpu.fetched
	cpu.SetFlag(FlagZero, cpu.A == 0x00)
	cpu.SetFlag(FlagNegative, cpu.A&0x80 != 0)
	return 1
}

// Instruction: Increment Memory
func opINC(cpu *CPU) uint8 {
	cpu.fetch()
	cpu.temp = uint16(cpu.fetched + 1)
	cpu.write(cpu.addrAbs, uint8(cpu.temp&0x00FF))
	cpu.SetFlag(FlagZero, cpu.temp&0x00FF == 0x0000)
	cpu.SetFlag(FlagNegative, cpu.temp&0x0080 != 0)
	return 0
}

// Instruction: Increment X
func opINX(cpu *CPU) uint8 {
	cpu.X++
	cpu.SetFlag(FlagZero, cpu.X == 0x00)
	cpu.SetFlag(FlagNegative, cpu.X&0x80 != 0)
	return 0
}

// Instruction: Increment Y
func opINY(cpu *CPU) uint8 {
	cpu.Y++
	cpu.SetFlag(FlagZero, cpu.Y == 0x00)
	cpu.SetFlag(FlagNegative, cpu.Y&0x80 != 0)
	return 0
}

// Instruction: Jump
func opJMP(cpu *CPU) uint8 {
	cpu.PC = cpu.addrAbs
	return 0
}

// Instruction: Jump to Subroutine
func opJSR(cpu *CPU) uint8 {
	cpu.PC--
	cpu.pushPC()
	cpu.PC = cpu.addrAbs
	return 0
}

// Instruction: Load Accumulator
func opLDA(cpu *CPU) uint8 {
	cpu.fetch()
	cpu.A = cpu.fetched
	cpu.SetFlag(FlagZero, cpu.A == 0)
	cpu.SetFlag(FlagNegative, cpu.A&0x80 != 0)
	return 1
}

// Instruction: Load X
func opLDX(cpu *CPU) uint8 {
	cpu.fetch()
	cpu.X = cpu.fetched
	cpu.SetFlag(FlagZero, cpu.X == 0)
	cpu.SetFlag(FlagNegative, cpu.X&0x80 != 0)
	return 1
}

// Instruction: Load Y
func opLDY(cpu *CPU) uint8 {
	cpu.fetch()
	cpu.Y = cpu.fetched
	cpu.SetFlag(FlagZero, cpu.Y == 0)
	cpu.SetFlag(FlagNegative, cpu.Y&0x80 != 0)
	return 1
}

// Instruction: Logical Shift Right
func opLSR(cpu *CPU) uint8 {
	cpu.fetch()
	cpu.SetFlag(FlagCarry, cpu.fetched&0x01 != 0)
	cpu.temp = uint16(cpu.fetched >> 1)
	cpu.SetFlag(FlagZero, cpu.temp&0x00FF == 0x0000)
	cpu.SetFlag(FlagNegative, cpu.temp&0x0080 != 0)
	if opcodeTable[cpu.opcode].addrModeKind == addrModeIMP {
		cpu.A = uint8(cpu.temp & 0x00FF)
	} else {
		cpu.write(cpu.addrAbs, uint8(cpu.temp&0x00FF))
	}
	return 0
}

// Instruction: No Operation. Some undocumented NOPs still read an operand
// and therefore pay the page-crossing penalty like a load would.
func opNOP(cpu *CPU) uint8 {
	switch cpu.opcode {
	case 0x1C, 0x3C, 0x5C, 0x7C, 0xDC, 0xFC:
		return 1
	}
	return 0
}

// Instruction: Bitwise Logic OR
func opORA(cpu *CPU) uint8 {
	cpu.fetch()
	cpu.A |= cpu.fetched
	cpu.SetFlag(FlagZero, cpu.A == 0x00)
	cpu.SetFlag(FlagNegative, cpu.A&0x80 != 0)
	return 1
}

// Instruction: Push Accumulator
func opPHA(cpu *CPU) uint8 {
	cpu.push(cpu.A)
	return 0
}

// Instruction: Push Processor Status (with B set)
func opPHP(cpu *CPU) uint8 {
	cpu.SetFlag(FlagBreak, true)
	cpu.SetFlag(FlagUnused, true)
	cpu.push(cpu.P)
	cpu.SetFlag(FlagBreak, false)
	cpu.SetFlag(FlagUnused, false)
	return 0
}

// Instruction: Pull Accumulator
func opPLA(cpu *CPU) uint8 {
	cpu.A = cpu.pop()
	cpu.SetFlag(FlagZero, cpu.A == 0x00)
	cpu.SetFlag(FlagNegative, cpu.A&0x80 != 0)
	return 0
}

// Instruction: Pull Processor Status
func opPLP(cpu *CPU) uint8 {
	cpu.P = cpu.pop()
	cpu.SetFlag(FlagUnused, true)
	return 0
}

// Instruction: Rotate Left
func opROL(cpu *CPU) uint8 {
	cpu.fetch()
	cpu.temp = uint16(cpu.fetched)<<1 | uint16(cpu.GetFlag(FlagCarry))
	cpu.SetFlag(FlagCarry, cpu.temp&0xFF00 != 0)
	cpu.SetFlag(FlagZero, cpu.temp&0x00FF == 0x0000)
	cpu.SetFlag(FlagNegative, cpu.temp&0x0080 != 0)
	if opcodeTable[cpu.opcode].addrModeKind == addrModeIMP {
		cpu.A = uint8(cpu.temp & 0x00FF)
	} else {
		cpu.write(cpu.addrAbs, uint8(cpu.temp&0x00FF))
	}
	return 0
}

// Instruction: Rotate Right
func opROR(cpu *CPU) uint8 {
	cpu.fetch()
	cpu.temp = uint16(cpu.fetched>>1) | uint16(cpu.GetFlag(FlagCarry)<<7)
	cpu.SetFlag(FlagCarry, cpu.fetched&0x01 != 0)
	cpu.SetFlag(FlagZero, cpu.temp&0x00FF == 0x00)
	cpu.SetFlag(FlagNegative, cpu.temp&0x0080 != 0)
	if opcodeTable[cpu.opcode].addrModeKind == addrModeIMP {
		cpu.A = uint8(cpu.temp & 0x00FF)
	} else {
		cpu.write(cpu.addrAbs, uint8(cpu.temp&0x00FF))
	}
	return 0
}

// Instruction: Return from Interrupt
func opRTI(cpu *CPU) uint8 {
	cpu.P = cpu.pop()
	cpu.P &^= FlagBreak
	cpu.P &^= FlagUnused
	cpu.popPC()
	return 0
}

// Instruction: Return from Subroutine
func opRTS(cpu *CPU) uint8 {
	cpu.popPC()
	cpu.PC++
	return 0
}

// Instruction: Subtract with Borrow
// Function: A = A - M - (1 - C)
// Flags Out: C, V, N, Z
func opSBC(cpu *CPU) uint8 {
	cpu.fetch()

	if cpu.GetFlag(FlagDecimal) != 0 {
		decimalSBC(cpu, cpu.fetched)
		return 1
	}

	// Subtraction is addition of the inverted operand; this lets the same
	// carry/overflow math as ADC apply unchanged.
	value := uint16(cpu.fetched) ^ 0x00FF
	cpu.temp = uint16(cpu.A) + value + uint16(cpu.GetFlag(FlagCarry))
	cpu.SetFlag(FlagCarry, cpu.temp&0xFF00 != 0)
	cpu.SetFlag(FlagZero, cpu.temp&0x00FF == 0)
	overflow := (cpu.temp ^ uint16(cpu.A)) & ((cpu.temp ^ value) & 0x0080)
	cpu.SetFlag(FlagOverflow, overflow != 0)
	cpu.SetFlag(FlagNegative, cpu.temp&0x0080 != 0)
	cpu.A = uint8(cpu.temp & 0x00FF)
	return 1
}

// decimalSBC performs packed-BCD subtraction, mirroring decimalADC: the
// binary result decides C/Z/V/N (matching real 6502 behavior), then each
// nibble is corrected (-6) if it underflowed.
func decimalSBC(cpu *CPU, value uint8) {
	carryIn := int32(cpu.GetFlag(FlagCarry))
	a := int32(cpu.A)
	v := int32(value)

	binResult := a - v - (1 - carryIn)
	cpu.SetFlag(FlagCarry, binResult >= 0)
	cpu.SetFlag(FlagZero, uint8(binResult)&0xFF == 0)
	overflow := (uint16(a^v) & uint16(a^binResult)) & 0x80
	cpu.SetFlag(FlagOverflow, overflow != 0)
	cpu.SetFlag(FlagNegative, uint8(binResult)&0x80 != 0)

	low := (a & 0x0F) - (v & 0x0F) - (1 - carryIn)
	high := (a >> 4) - (v >> 4)
	if low < 0 {
		low = (low - 6) & 0x0F
		high--
	}
	if high < 0 {
		high = (high - 6) & 0x0F
	}
	cpu.A = uint8((high<<4)&0xF0) | uint8(low&0x0F)
}

// Instruction: Set Carry Flag
func opSEC(cpu *CPU) uint8 { cpu.SetFlag(FlagCarry, true); return 0 }

// Instruction: Set Decimal Flag
func opSED(cpu *CPU) uint8 { cpu.SetFlag(FlagDecimal, true); return 0 }

// Instruction: Set Interrupt Disable
func opSEI(cpu *CPU) uint8 { cpu.SetFlag(FlagInterrupt, true); return 0 }

// Instruction: Store Accumulator
func opSTA(cpu *CPU) uint8 {
	cpu.write(cpu.addrAbs, cpu.A)
	return 0
}

// Instruction: Store X
func opSTX(cpu *CPU) uint8 {
	cpu.write(cpu.addrAbs, cpu.X)
	return 0
}

// Instruction: Store Y
func opSTY(cpu *CPU) uint8 {
	cpu.write(cpu.addrAbs, cpu.Y)
	return 0
}

// Instruction: Transfer Accumulator to X
func opTAX(cpu *CPU) uint8 {
	cpu.X = cpu.A
	cpu.SetFlag(FlagZero, cpu.X == 0x00)
	cpu.SetFlag(FlagNegative, cpu.X&0x80 != 0)
	return 0
}

// Instruction: Transfer Accumulator to Y
func opTAY(cpu *CPU) uint8 {
	cpu.Y = cpu.A
	cpu.SetFlag(FlagZero, cpu.Y == 0x00)
	cpu.SetFlag(FlagNegative, cpu.Y&0x80 != 0)
	return 0
}

// Instruction: Transfer Stack Pointer to X
func opTSX(cpu *CPU) uint8 {
	cpu.X = cpu.SP
	cpu.SetFlag(FlagZero, cpu.X == 0x00)
	cpu.SetFlag(FlagNegative, cpu.X&0x80 != 0)
	return 0
}

// Instruction: Transfer X to Accumulator
func opTXA(cpu *CPU) uint8 {
	cpu.A = cpu.X
	cpu.SetFlag(FlagZero, cpu.A == 0x00)
	cpu.SetFlag(FlagNegative, cpu.A&0x80 != 0)
	return 0
}

// Instruction: Transfer X to Stack Pointer
func opTXS(cpu *CPU) uint8 {
	cpu.SP = cpu.X
	return 0
}

// Instruction: Transfer Y to Accumulator
func opTYA(cpu *CPU) uint8 {
	cpu.A = cpu.Y
	cpu.SetFlag(FlagZero, cpu.A == 0x00)
	cpu.SetFlag(FlagNegative, cpu.A&0x80 != 0)
	return 0
}

// opXXX captures the undocumented opcodes the table does not route to opNOP.
// Functionally a NOP; Step has already fired the illegal-opcode hook by the
// time this runs.
func opXXX(cpu *CPU) uint8 {
	return 0
}
