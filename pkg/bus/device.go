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

// Package bus defines the polymorphic device role that every addressable
// component of the machine (RAM, ROM, keyboard, Disk II) implements, and
// that the MMU dispatches across.
package bus

// Device is anything that can be mapped into the 16-bit address space.
// Implementations own their backing storage. The MMU holds each device by
// its concrete type and calls it directly; it hands devices out as this
// interface through MMU.Devices for tooling.
type Device interface {
	// Read returns the byte at addr. addr is relative to the device's own
	// address range unless the device documents otherwise.
	Read(addr uint16) uint8
	// Write stores v at addr. Devices that are read-only (ROM) ignore it.
	Write(addr uint16, v uint8)
	// AddressRange returns the inclusive [lo, hi] range this device owns.
	AddressRange() (lo, hi uint16)
	// Name identifies the device for logging and snapshots.
	Name() string
}

// InRange reports whether addr falls within a device's declared range.
func InRange(d Device, addr uint16) bool {
	lo, hi := d.AddressRange()
	return addr >= lo && addr <= hi
}
