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

// Package memory implements the flat-array RAM and ROM bus devices.
package memory

const (
	// BankSize is the size in bytes of each of the main/aux RAM banks.
	BankSize = 64 * 1024
	// RAMLo/RAMHi are the addresses RAM answers for ($0000-$BFFF); the
	// $C000-$FFFF tail is owned by I/O devices and ROM instead.
	RAMLo = 0x0000
	RAMHi = 0xBFFF
)

// Bank selects which physical RAM array a RAM access resolves to.
type Bank int

const (
	Main Bank = iota
	Aux
)

// RAM models the two independently addressable 64KiB banks (main and
// auxiliary) of Apple IIe memory. The MMU pushes the active read/write bank
// selectors in before every access; RAM itself holds no soft-switch state.
type RAM struct {
	main [BankSize]uint8
	aux  [BankSize]uint8
}

// NewRAM returns a RAM with both banks zeroed, matching real hardware
// power-on state.
func NewRAM() *RAM {
	return &RAM{}
}

// ReadBank reads a byte from the given bank without going through the
// device's declared address range checks; used by the MMU once it has
// already decided the access falls in RAM.
func (r *RAM) ReadBank(bank Bank, addr uint16) uint8 {
	if bank == Aux {
		return r.aux[addr]
	}
	return r.main[addr]
}

// WriteBank writes a byte into the given bank.
func (r *RAM) WriteBank(bank Bank, addr uint16, v uint8) {
	if bank == Aux {
		r.aux[addr] = v
	} else {
		r.main[addr] = v
	}
}

// Read implements bus.Device against the main bank, for callers that don't
// care about bank switching (e.g. a plain-RAM test harness).
func (r *RAM) Read(addr uint16) uint8 { return r.main[addr] }

// Write implements bus.Device against the main bank.
func (r *RAM) Write(addr uint16, v uint8) { r.main[addr] = v }

// AddressRange implements bus.Device.
func (r *RAM) AddressRange() (lo, hi uint16) { return RAMLo, RAMHi }

// Name implements bus.Device.
func (r *RAM) Name() string { return "RAM" }
