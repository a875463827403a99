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

type execFunc func(cpu *CPU) uint8
type addrModeFunc func(cpu *CPU) uint8

// addrModeEntry pairs an addressing-mode function with whether it is the
// implied/accumulator mode (so fetch() can tell without a type switch) and a
// short tag the disassembler uses to format operands.
type addrModeEntry struct {
	fn   addrModeFunc
	kind addrModeKind
	tag  string
}

var (
	modeIMP = addrModeEntry{amIMP, addrModeIMP, "IMP"}
	modeIMM = addrModeEntry{amIMM, addrModeOther, "IMM"}
	modeZP0 = addrModeEntry{amZP0, addrModeOther, "ZP0"}
	modeZPX = addrModeEntry{amZPX, addrModeOther, "ZPX"}
	modeZPY = addrModeEntry{amZPY, addrModeOther, "ZPY"}
	modeREL = addrModeEntry{amREL, addrModeOther, "REL"}
	modeABS = addrModeEntry{amABS, addrModeOther, "ABS"}
	modeABX = addrModeEntry{amABX, addrModeOther, "ABX"}
	modeABY = addrModeEntry{amABY, addrModeOther, "ABY"}
	modeIND = addrModeEntry{amIND, addrModeOther, "IND"}
	modeIZX = addrModeEntry{amIZX, addrModeOther, "IZX"}
	modeIZY = addrModeEntry{amIZY, addrModeOther, "IZY"}
)

// instruction is one row of the 256-entry opcode table: its mnemonic (for
// the disassembler), its executor, its addressing mode, the base cycle
// count, and whether the opcode is undocumented.
type instruction struct {
	name         string
	exec         execFunc
	addrMode     addrModeFunc
	addrModeKind addrModeKind
	addrModeTag  string
	baseCycles   uint8
	illegal      bool
}

func op(name string, fn execFunc, mode addrModeEntry, cycles uint8, illegal bool) instruction {
	return instruction{name: name, exec: fn, addrMode: mode.fn, addrModeKind: mode.kind, addrModeTag: mode.tag, baseCycles: cycles, illegal: illegal}
}

// opcodeTable is indexed directly by opcode byte. Ported from the
// documented MOS 6502 instruction matrix; undocumented opcodes ("???") all
// decode to a no-op executor but still report through the illegal-opcode
// hook and still burn the historically-observed cycle count.
// It is filled in init because several executors read it back through
// fetch, which a package-level initializer may not do.
var opcodeTable [256]instruction

func init() {
	opcodeTable = [256]instruction{
		op("BRK", opBRK, modeIMM, 7, false), op("ORA", opORA, modeIZX, 6, false), op("???", opXXX, modeIMP, 2, true), op("???", opXXX, modeIMP, 8, true), op("???", opNOP, modeIMP, 3, true), op("ORA", opORA, modeZP0, 3, false), op("ASL", opASL, modeZP0, 5, false), op("???", opXXX, modeIMP, 5, true),
		op("PHP", opPHP, modeIMP, 3, false), op("ORA", opORA, modeIMM, 2, false), op("ASL", opASL, modeIMP, 2, false), op("???", opXXX, modeIMP, 2, true), op("???", opNOP, modeIMP, 4, true), op("ORA", opORA, modeABS, 4, false), op("ASL", opASL, modeABS, 6, false), op("???", opXXX, modeIMP, 6, true),
		op("BPL", opBPL, modeREL, 2, false), op("ORA", opORA, modeIZY, 5, false), op("???", opXXX, modeIMP, 2, true), op("???", opXXX, modeIMP, 8, true), op("???", opNOP, modeIMP, 4, true), op("ORA", opORA, modeZPX, 4, false), op("ASL", opASL, modeZPX, 6, false), op("???", opXXX, modeIMP, 6, true),
		op("CLC", opCLC, modeIMP, 2, false), op("ORA", opORA, modeABY, 4, false), op("???", opNOP, modeIMP, 2, true), op("???", opXXX, modeIMP, 7, true), op("???", opNOP, modeIMP, 4, true), op("ORA", opORA, modeABX, 4, false), op("ASL", opASL, modeABX, 7, false), op("???", opXXX, modeIMP, 7, true),
		op("JSR", opJSR, modeABS, 6, false), op("AND", opAND, modeIZX, 6, false), op("???", opXXX, modeIMP, 2, true), op("???", opXXX, modeIMP, 8, true), op("BIT", opBIT, modeZP0, 3, false), op("AND", opAND, modeZP0, 3, false), op("ROL", opROL, modeZP0, 5, false), op("???", opXXX, modeIMP, 5, true),
		op("PLP", opPLP, modeIMP, 4, false), op("AND", opAND, modeIMM, 2, false), op("ROL", opROL, modeIMP, 2, false), op("???", opXXX, modeIMP, 2, true), op("BIT", opBIT, modeABS, 4, false), op("AND", opAND, modeABS, 4, false), op("ROL", opROL, modeABS, 6, false), op("???", opXXX, modeIMP, 6, true),
		op("BMI", opBMI, modeREL, 2, false), op("AND", opAND, modeIZY, 5, false), op("???", opXXX, modeIMP, 2, true), op("???", opXXX, modeIMP, 8, true), op("???", opNOP, modeIMP, 4, true), op("AND", opAND, modeZPX, 4, false), op("ROL", opROL, modeZPX, 6, false), op("???", opXXX, modeIMP, 6, true),
		op("SEC", opSEC, modeIMP, 2, false), op("AND", opAND, modeABY, 4, false), op("???", opNOP, modeIMP, 2, true), op("???", opXXX, modeIMP, 7, true), op("???", opNOP, modeIMP, 4, true), op("AND", opAND, modeABX, 4, false), op("ROL", opROL, modeABX, 7, false), op("???", opXXX, modeIMP, 7, true),
		op("RTI", opRTI, modeIMP, 6, false), op("EOR", opEOR, modeIZX, 6, false), op("???", opXXX, modeIMP, 2, true), op("???", opXXX, modeIMP, 8, true), op("???", opNOP, modeIMP, 3, true), op("EOR", opEOR, modeZP0, 3, false), op("LSR", opLSR, modeZP0, 5, false), op("???", opXXX, modeIMP, 5, true),
		op("PHA", opPHA, modeIMP, 3, false), op("EOR", opEOR, modeIMM, 2, false), op("LSR", opLSR, modeIMP, 2, false), op("???", opXXX, modeIMP, 2, true), op("JMP", opJMP, modeABS, 3, false), op("EOR", opEOR, modeABS, 4, false), op("LSR", opLSR, modeABS, 6, false), op("???", opXXX, modeIMP, 6, true),
		op("BVC", opBVC, modeREL, 2, false), op("EOR", opEOR, modeIZY, 5, false), op("???", opXXX, modeIMP, 2, true), op("???", opXXX, modeIMP, 8, true), op("???", opNOP, modeIMP, 4, true), op("EOR", opEOR, modeZPX, 4, false), op("LSR", opLSR, modeZPX, 6, false), op("???", opXXX, modeIMP, 6, true),
		op("CLI", opCLI, modeIMP, 2, false), op("EOR", opEOR, modeABY, 4, false), op("???", opNOP, modeIMP, 2, true), op("???", opXXX, modeIMP, 7, true), op("???", opNOP, modeIMP, 4, true), op("EOR", opEOR, modeABX, 4, false), op("LSR", opLSR, modeABX, 7, false), op("???", opXXX, modeIMP, 7, true),
		op("RTS", opRTS, modeIMP, 6, false), op("ADC", opADC, modeIZX, 6, false), op("???", opXXX, modeIMP, 2, true), op("???", opXXX, modeIMP, 8, true), op("???", opNOP, modeIMP, 3, true), op("ADC", opADC, modeZP0, 3, false), op("ROR", opROR, modeZP0, 5, false), op("???", opXXX, modeIMP, 5, true),
		op("PLA", opPLA, modeIMP, 4, false), op("ADC", opADC, modeIMM, 2, false), op("ROR", opROR, modeIMP, 2, false), op("???", opXXX, modeIMP, 2, true), op("JMP", opJMP, modeIND, 5, false), op("ADC", opADC, modeABS, 4, false), op("ROR", opROR, modeABS, 6, false), op("???", opXXX, modeIMP, 6, true),
		op("BVS", opBVS, modeREL, 2, false), op("ADC", opADC, modeIZY, 5, false), op("???", opXXX, modeIMP, 2, true), op("???", opXXX, modeIMP, 8, true), op("???", opNOP, modeIMP, 4, true), op("ADC", opADC, modeZPX, 4, false), op("ROR", opROR, modeZPX, 6, false), op("???", opXXX, modeIMP, 6, true),
		op("SEI", opSEI, modeIMP, 2, false), op("ADC", opADC, modeABY, 4, false), op("???", opNOP, modeIMP, 2, true), op("???", opXXX, modeIMP, 7, true), op("???", opNOP, modeIMP, 4, true), op("ADC", opADC, modeABX, 4, false), op("ROR", opROR, modeABX, 7, false), op("???", opXXX, modeIMP, 7, true),
		op("???", opNOP, modeIMP, 2, true), op("STA", opSTA, modeIZX, 6, false), op("???", opNOP, modeIMP, 2, true), op("???", opXXX, modeIMP, 6, true), op("STY", opSTY, modeZP0, 3, false), op("STA", opSTA, modeZP0, 3, false), op("STX", opSTX, modeZP0, 3, false), op("???", opXXX, modeIMP, 3, true),
		op("DEY", opDEY, modeIMP, 2, false), op("???", opNOP, modeIMP, 2, true), op("TXA", opTXA, modeIMP, 2, false), op("???", opXXX, modeIMP, 2, true), op("STY", opSTY, modeABS, 4, false), op("STA", opSTA, modeABS, 4, false), op("STX", opSTX, modeABS, 4, false), op("???", opXXX, modeIMP, 4, true),
		op("BCC", opBCC, modeREL, 2, false), op("STA", opSTA, modeIZY, 6, false), op("???", opXXX, modeIMP, 2, true), op("???", opXXX, modeIMP, 6, true), op("STY", opSTY, modeZPX, 4, false), op("STA", opSTA, modeZPX, 4, false), op("STX", opSTX, modeZPY, 4, false), op("???", opXXX, modeIMP, 4, true),
		op("TYA", opTYA, modeIMP, 2, false), op("STA", opSTA, modeABY, 5, false), op("TXS", opTXS, modeIMP, 2, false), op("???", opXXX, modeIMP, 5, true), op("???", opNOP, modeIMP, 5, true), op("STA", opSTA, modeABX, 5, false), op("???", opXXX, modeIMP, 5, true), op("???", opXXX, modeIMP, 5, true),
		op("LDY", opLDY, modeIMM, 2, false), op("LDA", opLDA, modeIZX, 6, false), op("LDX", opLDX, modeIMM, 2, false), op("???", opXXX, modeIMP, 6, true), op("LDY", opLDY, modeZP0, 3, false), op("LDA", opLDA, modeZP0, 3, false), op("LDX", opLDX, modeZP0, 3, false), op("???", opXXX, modeIMP, 3, true),
		op("TAY", opTAY, modeIMP, 2, false), op("LDA", opLDA, modeIMM, 2, false), op("TAX", opTAX, modeIMP, 2, false), op("???", opXXX, modeIMP, 2, true), op("LDY", opLDY, modeABS, 4, false), op("LDA", opLDA, modeABS, 4, false), op("LDX", opLDX, modeABS, 4, false), op("???", opXXX, modeIMP, 4, true),
		op("BCS", opBCS, modeREL, 2, false), op("LDA", opLDA, modeIZY, 5, false), op("???", opXXX, modeIMP, 2, true), op("???", opXXX, modeIMP, 5, true), op("LDY", opLDY, modeZPX, 4, false), op("LDA", opLDA, modeZPX, 4, false), op("LDX", opLDX, modeZPY, 4, false), op("???", opXXX, modeIMP, 4, true),
		op("CLV", opCLV, modeIMP, 2, false), op("LDA", opLDA, modeABY, 4, false), op("TSX", opTSX, modeIMP, 2, false), op("???", opXXX, modeIMP, 4, true), op("LDY", opLDY, modeABX, 4, false), op("LDA", opLDA, modeABX, 4, false), op("LDX", opLDX, modeABY, 4, false), op("???", opXXX, modeIMP, 4, true),
		op("CPY", opCPY, modeIMM, 2, false), op("CMP", opCMP, modeIZX, 6, false), op("???", opNOP, modeIMP, 2, true), op("???", opXXX, modeIMP, 8, true), op("CPY", opCPY, modeZP0, 3, false), op("CMP", opCMP, modeZP0, 3, false), op("DEC", opDEC, modeZP0, 5, false), op("???", opXXX, modeIMP, 5, true),
		op("INY", opINY, modeIMP, 2, false), op("CMP", opCMP, modeIMM, 2, false), op("DEX", opDEX, modeIMP, 2, false), op("???", opXXX, modeIMP, 2, true), op("CPY", opCPY, modeABS, 4, false), op("CMP", opCMP, modeABS, 4, false), op("DEC", opDEC, modeABS, 6, false), op("???", opXXX, modeIMP, 6, true),
		op("BNE", opBNE, modeREL, 2, false), op("CMP", opCMP, modeIZY, 5, false), op("???", opXXX, modeIMP, 2, true), op("???", opXXX, modeIMP, 8, true), op("???", opNOP, modeIMP, 4, true), op("CMP", opCMP, modeZPX, 4, false), op("DEC", opDEC, modeZPX, 6, false), op("???", opXXX, modeIMP, 6, true),
		op("CLD", opCLD, modeIMP, 2, false), op("CMP", opCMP, modeABY, 4, false), op("NOP", opNOP, modeIMP, 2, false), op("???", opXXX, modeIMP, 7, true), op("???", opNOP, modeIMP, 4, true), op("CMP", opCMP, modeABX, 4, false), op("DEC", opDEC, modeABX, 7, false), op("???", opXXX, modeIMP, 7, true),
		op("CPX", opCPX, modeIMM, 2, false), op("SBC", opSBC, modeIZX, 6, false), op("???", opNOP, modeIMP, 2, true), op("???", opXXX, modeIMP, 8, true), op("CPX", opCPX, modeZP0, 3, false), op("SBC", opSBC, modeZP0, 3, false), op("INC", opINC, modeZP0, 5, false), op("???", opXXX, modeIMP, 5, true),
		op("INX", opINX, modeIMP, 2, false), op("SBC", opSBC, modeIMM, 2, false), op("NOP", opNOP, modeIMP, 2, false), op("???", opXXX, modeIMP, 2, true), op("CPX", opCPX, modeABS, 4, false), op("SBC", opSBC, modeABS, 4, false), op("INC", opINC, modeABS, 6, false), op("???", opXXX, modeIMP, 6, true),
		op("BEQ", opBEQ, modeREL, 2, false), op("SBC", opSBC, modeIZY, 5, false), op("???", opXXX, modeIMP, 2, true), op("???", opXXX, modeIMP, 8, true), op("???", opNOP, modeIMP, 4, true), op("SBC", opSBC, modeZPX, 4, false), op("INC", opINC, modeZPX, 6, false), op("???", opXXX, modeIMP, 6, true),
		op("SED", opSED, modeIMP, 2, false), op("SBC", opSBC, modeABY, 4, false), op("NOP", opNOP, modeIMP, 2, false), op("???", opXXX, modeIMP, 7, true), op("???", opNOP, modeIMP, 4, true), op("SBC", opSBC, modeABX, 4, false), op("INC", opINC, modeABX, 7, false), op("???", opXXX, modeIMP, 7, true),
	}
}
