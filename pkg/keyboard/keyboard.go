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

// Package keyboard implements the Apple IIe's two-address keyboard latch.
package keyboard

const (
	// DataAddr is $C000, the data/strobe read address.
	DataAddr = 0xC000
	// StrobeAddr is $C010, the strobe-clear read/write address.
	StrobeAddr = 0xC010

	strobeBit = 0x80
)

// Keyboard is a single byte latch plus a strobe bit. PressKey sets the
// latch; reading $C000 exposes it with bit 7 signaling "new key available";
// touching $C010 (read or write) clears that bit.
type Keyboard struct {
	latch uint8
}

// NewKeyboard returns a keyboard with an empty latch.
func NewKeyboard() *Keyboard {
	return &Keyboard{}
}

// PressKey latches ascii with bit 7 set, as if the host delivered a key
// event. ascii is expected to be a 7-bit ASCII code; bit 7 of the input is
// ignored.
func (k *Keyboard) PressKey(ascii uint8) {
	k.latch = (ascii & 0x7F) | strobeBit
}

// Read implements bus.Device. addr must be DataAddr or StrobeAddr; any other
// address returns 0xFF (the MMU never routes other addresses here).
func (k *Keyboard) Read(addr uint16) uint8 {
	switch addr {
	case DataAddr:
		return k.latch
	case StrobeAddr:
		v := k.latch
		k.latch &^= strobeBit
		return v
	default:
		return 0xFF
	}
}

// Write implements bus.Device. Only StrobeAddr has an effect: it clears the
// strobe bit exactly as a read of the same address would.
func (k *Keyboard) Write(addr uint16, v uint8) {
	if addr == StrobeAddr {
		k.latch &^= strobeBit
	}
}

// Peek returns the latch byte without clearing the strobe bit, for
// non-side-effecting callers like a memory viewer.
func (k *Keyboard) Peek() uint8 { return k.latch }

// AddressRange implements bus.Device. The keyboard only really answers two
// addresses; the MMU is responsible for routing exactly those two here.
func (k *Keyboard) AddressRange() (lo, hi uint16) { return DataAddr, StrobeAddr }

// Name implements bus.Device.
func (k *Keyboard) Name() string { return "Keyboard" }
