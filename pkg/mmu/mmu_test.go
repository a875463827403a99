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

package mmu

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"apple2e/pkg/disk2"
	"apple2e/pkg/keyboard"
	"apple2e/pkg/memory"
)

func newTestMMU() *MMU {
	ram := memory.NewRAM()
	rom := memory.NewROM(nil)
	kbd := keyboard.NewKeyboard()
	dsk := disk2.New()
	return New(ram, rom, kbd, dsk)
}

func TestRAMReadWriteRoundTrip(t *testing.T) {
	m := newTestMMU()
	m.Write(0x1234, 0x42)
	assert.Equal(t, uint8(0x42), m.Read(0x1234))
}

func TestROMWriteIsNoOp(t *testing.T) {
	rom := memory.NewROM([]byte{0xAB})
	m := New(memory.NewRAM(), rom, nil, nil)
	assert.Equal(t, uint8(0xAB), m.Read(0xD000))
	m.Write(0xD000, 0x00)
	assert.Equal(t, uint8(0xAB), m.Read(0xD000))
}

func TestVideoAndScreenSoftSwitches(t *testing.T) {
	m := newTestMMU()

	assert.Equal(t, uint8(0x00), m.Read(0xC050))
	assert.Equal(t, VideoGraphics, m.CurrentVideoMode())

	assert.Equal(t, uint8(0x00), m.Read(0xC053))
	assert.Equal(t, ScreenMixed, m.CurrentScreenMode())

	assert.Equal(t, uint8(0x00), m.Read(0xC054))
	assert.Equal(t, uint8(0x00), m.Read(0xC055))
	assert.Equal(t, Page2, m.CurrentPageSelect())
}

func TestUnknownSoftSwitchReadsFF(t *testing.T) {
	m := newTestMMU()
	assert.Equal(t, uint8(0xFF), m.Read(0xC0D0))
}

func TestBankSwitchQuads(t *testing.T) {
	m := newTestMMU()

	m.Write(0x0100, 0x11) // seed main bank
	assert.Equal(t, uint8(0x00), m.Read(0xC081))
	assert.Equal(t, memory.Aux, m.readBank)
	assert.Equal(t, memory.Main, m.writeBank)

	m.Write(0x0100, 0x22) // write lands in main bank, read bank still aux
	assert.Equal(t, uint8(0x00), m.Read(0x0100))

	assert.Equal(t, uint8(0x00), m.Read(0xC080))
	assert.Equal(t, memory.Main, m.readBank)
	assert.Equal(t, memory.Main, m.writeBank)
	assert.Equal(t, uint8(0x22), m.Read(0x0100))
}

func TestKeyboardLatchAndStrobe(t *testing.T) {
	kbd := keyboard.NewKeyboard()
	m := New(memory.NewRAM(), memory.NewROM(nil), kbd, nil)

	kbd.PressKey('A')
	v := m.Read(keyboard.DataAddr)
	assert.Equal(t, uint8(0xC1), v)

	m.Read(keyboard.StrobeAddr)
	assert.Equal(t, uint8(0x41), m.Read(keyboard.DataAddr))
}

func TestPeekDoesNotClearKeyboardStrobe(t *testing.T) {
	kbd := keyboard.NewKeyboard()
	m := New(memory.NewRAM(), memory.NewROM(nil), kbd, nil)

	kbd.PressKey('Z')
	before := m.Peek(keyboard.DataAddr)
	after := m.Peek(keyboard.DataAddr)
	assert.Equal(t, before, after)
	assert.NotEqual(t, uint8(0), before&0x80)
}

func TestPeekDoesNotMutateSoftSwitchState(t *testing.T) {
	m := newTestMMU()
	before := m.CurrentVideoMode()
	_ = m.Peek(0xC050)
	assert.Equal(t, before, m.CurrentVideoMode())
}
