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

package disk2

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSixAndTwoRoundTrip(t *testing.T) {
	var sector [256]byte
	for i := range sector {
		sector[i] = byte(i*37 + 11)
	}

	encoded, checksum := sixAndTwoEncode(sector)
	nibbles := append(append([]byte{}, encoded[:]...), checksum)

	decoded, ok := sixAndTwoDecode(nibbles)
	assert.True(t, ok)
	assert.Equal(t, sector, decoded)
}

func TestSixAndTwoDecodeRejectsBadChecksum(t *testing.T) {
	var sector [256]byte
	encoded, checksum := sixAndTwoEncode(sector)
	nibbles := append(append([]byte{}, encoded[:]...), checksum^0xFF)

	_, ok := sixAndTwoDecode(nibbles)
	assert.False(t, ok)
}

func TestFourAndFourRoundTrip(t *testing.T) {
	for _, v := range []byte{0x00, 0x01, 0x7F, 0x80, 0xFE, 0xFF} {
		odd, even := fourAndFourEncode(v)
		assert.Equal(t, v, fourAndFourDecode(odd, even))
	}
}

func makeImage() []byte {
	data := make([]byte, ImageSize)
	for t := 0; t < tracksPerDisk; t++ {
		for s := 0; s < sectorsPerTrack; s++ {
			off := (t*sectorsPerTrack + s) * bytesPerSector
			for b := 0; b < bytesPerSector; b++ {
				data[off+b] = byte(t + s + b)
			}
		}
	}
	return data
}

func TestLoadRejectsWrongSize(t *testing.T) {
	d := New()
	err := d.Load(0, make([]byte, 100), "bad.dsk", false)
	assert.ErrorIs(t, err, ErrInvalidImageSize)
}

func TestLoadRejectsBadDrive(t *testing.T) {
	d := New()
	err := d.Load(2, makeImage(), "x.dsk", false)
	assert.ErrorIs(t, err, ErrInvalidDrive)
}

func TestLoadAndDecodeTrackRoundTrip(t *testing.T) {
	d := New()
	image := makeImage()
	assert.NoError(t, d.Load(0, image, "test.dsk", false))
	assert.True(t, d.HasDisk(0))

	for track := 0; track < tracksPerDisk; track++ {
		nibbles := d.drives[0].tracks[track]
		assert.Len(t, nibbles, trackNibbleLen)

		sectors, err := DecodeTrack(nibbles)
		assert.NoError(t, err)

		for sector := 0; sector < sectorsPerTrack; sector++ {
			off := (track*sectorsPerTrack + sector) * bytesPerSector
			var want [bytesPerSector]byte
			copy(want[:], image[off:off+bytesPerSector])
			assert.Equal(t, want, sectors[sector], "track %d sector %d", track, sector)
		}
	}
}

func TestEjectClearsMedia(t *testing.T) {
	d := New()
	assert.NoError(t, d.Load(0, makeImage(), "test.dsk", true))
	assert.NoError(t, d.Eject(0))
	assert.False(t, d.HasDisk(0))
	assert.Equal(t, "", d.Filename(0))
	assert.False(t, d.WriteProtected(0))
}

func TestStepperMovesOneHalfTrackPerPhaseEdge(t *testing.T) {
	d := New()
	assert.Equal(t, 0, d.CurrentTrack(0))

	// Standard stepper sequence to move inward one half-track: energize
	// phase 1 while phase 0 is still held.
	d.touch(0xC0E1) // phase 0 on
	d.touch(0xC0E3) // phase 1 on -> advances one half-track
	assert.Equal(t, 1, d.drives[0].halfTrack)
}

func TestMotorAdvanceStreamsNibbles(t *testing.T) {
	d := New()
	assert.NoError(t, d.Load(0, makeImage(), "test.dsk", false))

	d.touch(0xC0E9) // motor on
	assert.True(t, d.MotorOn())

	d.Advance(cyclesPerNibble)
	assert.Equal(t, 1, d.drives[0].nibblePos)
}

func TestPeekDoesNotAdvanceStream(t *testing.T) {
	d := New()
	assert.NoError(t, d.Load(0, makeImage(), "test.dsk", false))
	before := d.drives[0].nibblePos
	_ = d.Peek()
	assert.Equal(t, before, d.drives[0].nibblePos)
}
