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

package emulator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apple2e/pkg/disk2"
)

func romWithResetVector(pc uint16) []byte {
	rom := make([]byte, 16*1024)
	for i := range rom {
		rom[i] = 0xEA // NOP, so StepCycles has somewhere harmless to run
	}
	// The MMU maps image byte 0 to $D000, so $FFFC/$FFFD sit at image
	// offsets $2FFC/$2FFD.
	rom[0xFFFC-0xD000] = byte(pc)
	rom[0xFFFD-0xD000] = byte(pc >> 8)
	return rom
}

func TestStepCyclesBeforeInitReturnsError(t *testing.T) {
	d := New()
	n, err := d.StepCycles(context.Background(), 10)
	assert.ErrorIs(t, err, ErrNotInitialized)
	assert.Equal(t, uint64(0), n)
}

func TestResetLatchesVectorAndAllowsStepping(t *testing.T) {
	d := New()
	require.NoError(t, d.LoadROM(romWithResetVector(0xD000)))
	d.Reset()

	snap := d.SnapshotCPU()
	assert.Equal(t, uint16(0xD000), snap.PC)
	assert.Equal(t, uint8(0xFD), snap.SP)
	assert.True(t, snap.Initialized)

	executed, err := d.StepCycles(context.Background(), 20)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, executed, uint64(20))
}

func TestStepCyclesHonorsCancellation(t *testing.T) {
	d := New()
	require.NoError(t, d.LoadROM(romWithResetVector(0xD000)))
	d.Reset()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	executed, err := d.StepCycles(ctx, 1_000_000)
	require.NoError(t, err)
	assert.Less(t, executed, uint64(1_000_000))
}

func makeImage() []byte {
	data := make([]byte, disk2.ImageSize)
	for i := range data {
		data[i] = byte(i)
	}
	return data
}

func TestLoadAndEjectDisk(t *testing.T) {
	d := New()
	require.NoError(t, d.LoadDisk(0, makeImage()))

	snap := d.SnapshotDisk()
	assert.True(t, snap.Drives[0].HasDisk)

	require.NoError(t, d.EjectDisk(0))
	snap = d.SnapshotDisk()
	assert.False(t, snap.Drives[0].HasDisk)
}

func TestLoadDiskRejectsBadSize(t *testing.T) {
	d := New()
	err := d.LoadDisk(0, []byte{1, 2, 3})
	assert.ErrorIs(t, err, disk2.ErrInvalidImageSize)
}

func TestPressKeyVisibleThroughReadMemory(t *testing.T) {
	d := New()
	require.NoError(t, d.LoadROM(romWithResetVector(0xD000)))
	d.Reset()

	d.PressKey('A')
	assert.Equal(t, uint8(0xC1), d.ReadMemory(0xC000))
	// ReadMemory must not clear the strobe: a second read sees the same byte.
	assert.Equal(t, uint8(0xC1), d.ReadMemory(0xC000))
}

func TestDisassembleUsesNonSideEffectingPath(t *testing.T) {
	d := New()
	require.NoError(t, d.LoadROM(romWithResetVector(0xD000)))
	d.Reset()

	disasm := d.Disassemble(0xD000, 0xD004)
	assert.NotEmpty(t, disasm.Index)
	assert.Contains(t, disasm.Lines[0xD000], "NOP")
}
