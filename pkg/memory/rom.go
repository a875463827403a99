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

package memory

const (
	// ROMSize is the 16KiB firmware image mapped at $D000-$FFFF.
	ROMSize = 16 * 1024
	ROMLo   = 0xD000
	ROMHi   = 0xFFFF
)

// ROM is the fixed 16KiB firmware image. Writes are silently dropped;
// unprogrammed bytes read back as 0xFF.
type ROM struct {
	data [ROMSize]uint8
}

// NewROM builds a ROM from raw bytes: files shorter than ROMSize are padded
// with 0xFF, longer files are truncated to the first ROMSize bytes.
func NewROM(raw []byte) *ROM {
	r := &ROM{}
	for i := range r.data {
		r.data[i] = 0xFF
	}
	n := len(raw)
	if n > ROMSize {
		n = ROMSize
	}
	copy(r.data[:n], raw[:n])
	return r
}

// Read implements bus.Device. addr is relative to ROMLo.
func (r *ROM) Read(addr uint16) uint8 { return r.data[addr] }

// Write implements bus.Device as a no-op: ROM bytes never mutate after load.
func (r *ROM) Write(addr uint16, v uint8) {}

// AddressRange implements bus.Device.
func (r *ROM) AddressRange() (lo, hi uint16) { return ROMLo, ROMHi }

// Name implements bus.Device.
func (r *ROM) Name() string { return "ROM" }
