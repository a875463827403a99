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

package bus

import "testing"

type fakeDevice struct {
	lo, hi uint16
}

func (f fakeDevice) Read(addr uint16) uint8    { return 0 }
func (f fakeDevice) Write(addr uint16, v uint8) {}
func (f fakeDevice) AddressRange() (lo, hi uint16) { return f.lo, f.hi }
func (f fakeDevice) Name() string { return "fake" }

func TestInRange(t *testing.T) {
	d := fakeDevice{lo: 0xC0E0, hi: 0xC0EF}

	if !InRange(d, 0xC0E0) {
		t.Errorf("InRange(0xC0E0) = false, want true")
	}
	if !InRange(d, 0xC0EF) {
		t.Errorf("InRange(0xC0EF) = false, want true")
	}
	if InRange(d, 0xC0DF) {
		t.Errorf("InRange(0xC0DF) = true, want false")
	}
	if InRange(d, 0xC0F0) {
		t.Errorf("InRange(0xC0F0) = true, want false")
	}
}
