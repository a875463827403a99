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

import (
	"fmt"
	"strings"
)

// Disassembly is the result of walking a range of addresses: per-address
// mnemonic text, in the order addresses were visited (an instruction can
// span more than one byte, so Index does not necessarily increment by one).
type Disassembly struct {
	Index []uint16
	Lines map[uint16]string
}

// Peek is a non-side-effecting byte read, the same shape as mmu.MMU.Peek.
// Disassemble never touches soft-switch state, since it may run from a
// memory-viewer window while the CPU is mid-instruction.
type Peek func(addr uint16) uint8

// Disassemble walks [start, end] decoding one instruction at a time using
// peek instead of the CPU's own bus, and returns human-readable text for
// each instruction's starting address.
func Disassemble(peek Peek, start, end uint16) *Disassembly {
	d := &Disassembly{Lines: make(map[uint16]string)}
	addr := uint32(start)

	for addr <= uint32(end) {
		lineAddr := uint16(addr)
		d.Index = append(d.Index, lineAddr)

		opcode := peek(uint16(addr))
		addr++
		instr := opcodeTable[opcode]

		sb := &strings.Builder{}
		fmt.Fprintf(sb, "$%04X: %s ", lineAddr, instr.name)

		switch instr.addrModeTag {
		case "IMP":
			sb.WriteString("{IMP}")
		case "IMM":
			v := peek(uint16(addr))
			addr++
			fmt.Fprintf(sb, "#$%02X {IMM}", v)
		case "ZP0":
			lo := peek(uint16(addr))
			addr++
			fmt.Fprintf(sb, "$%02X {ZP0}", lo)
		case "ZPX":
			lo := peek(uint16(addr))
			addr++
			fmt.Fprintf(sb, "$%02X,X {ZPX}", lo)
		case "ZPY":
			lo := peek(uint16(addr))
			addr++
			fmt.Fprintf(sb, "$%02X,Y {ZPY}", lo)
		case "IZX":
			lo := peek(uint16(addr))
			addr++
			fmt.Fprintf(sb, "($%02X,X) {IZX}", lo)
		case "IZY":
			lo := peek(uint16(addr))
			addr++
			fmt.Fprintf(sb, "($%02X),Y {IZY}", lo)
		case "ABS":
			lo := uint16(peek(uint16(addr)))
			addr++
			hi := uint16(peek(uint16(addr)))
			addr++
			fmt.Fprintf(sb, "$%04X {ABS}", hi<<8|lo)
		case "ABX":
			lo := uint16(peek(uint16(addr)))
			addr++
			hi := uint16(peek(uint16(addr)))
			addr++
			fmt.Fprintf(sb, "$%04X,X {ABX}", hi<<8|lo)
		case "ABY":
			lo := uint16(peek(uint16(addr)))
			addr++
			hi := uint16(peek(uint16(addr)))
			addr++
			fmt.Fprintf(sb, "$%04X,Y {ABY}", hi<<8|lo)
		case "IND":
			lo := uint16(peek(uint16(addr)))
			addr++
			hi := uint16(peek(uint16(addr)))
			addr++
			fmt.Fprintf(sb, "($%04X) {IND}", hi<<8|lo)
		case "REL":
			rel := peek(uint16(addr))
			addr++
			target := uint16(addr) + uint16(int8(rel))
			fmt.Fprintf(sb, "$%02X [$%04X] {REL}", rel, target)
		}

		d.Lines[lineAddr] = sb.String()
	}

	return d
}
