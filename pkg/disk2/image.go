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

import "errors"

// ImageSize is the expected size of a DOS 3.3 DSK image: 35 tracks of 16
// physical 256-byte sectors.
const ImageSize = tracksPerDisk * sectorsPerTrack * bytesPerSector

// ErrInvalidImageSize is returned by Load when the supplied bytes are not
// exactly ImageSize long.
var ErrInvalidImageSize = errors.New("disk2: image must be exactly 143360 bytes")

// ErrInvalidDrive is returned by Load/Eject for a drive index other than 0
// or 1.
var ErrInvalidDrive = errors.New("disk2: drive must be 0 or 1")

// Load decodes a 143,360-byte DSK image into drive's per-track nibble
// buffers and makes it the active media. filename is cosmetic (telemetry
// only); writeProtected sets the write-protect sense bit a Q6-read will
// report.
func (d *Disk2) Load(driveIndex int, data []byte, filename string, writeProtected bool) error {
	if driveIndex != 0 && driveIndex != 1 {
		return ErrInvalidDrive
	}
	if len(data) != ImageSize {
		return ErrInvalidImageSize
	}

	dr := &d.drives[driveIndex]
	for t := 0; t < tracksPerDisk; t++ {
		var sectors [sectorsPerTrack][bytesPerSector]byte
		for s := 0; s < sectorsPerTrack; s++ {
			off := (t*sectorsPerTrack + s) * bytesPerSector
			copy(sectors[s][:], data[off:off+bytesPerSector])
		}
		dr.tracks[t] = encodeTrack(t, sectors)
	}

	dr.hasDisk = true
	dr.filename = filename
	dr.writeProtected = writeProtected
	dr.nibblePos = 0
	return nil
}

// Eject clears drive's media; the head position (current_track) is left
// unchanged, matching real media-swap behavior.
func (d *Disk2) Eject(driveIndex int) error {
	if driveIndex != 0 && driveIndex != 1 {
		return ErrInvalidDrive
	}
	dr := &d.drives[driveIndex]
	dr.hasDisk = false
	dr.tracks = [tracksPerDisk][]byte{}
	dr.filename = ""
	dr.writeProtected = false
	return nil
}

// gap writes n self-sync bytes. Real hardware's self-sync bytes carry an
// extra timing bit between byte cells; this emulation accepts plain 0xFF,
// which is sufficient for the controller's own read-shift logic.
func gap(out []byte, n int) []byte {
	for i := 0; i < n; i++ {
		out = append(out, 0xFF)
	}
	return out
}

// encodeTrack lays out one physical track exactly as a Disk II drive would
// read it off the media: an initial sync gap, then 16 sectors in the order
// the interleave table lists their physical numbers, each an address field
// (identifying volume/track/physical sector) followed by a data field (the
// 342-nibble 6-and-2 payload of the image sector with that number),
// padded/truncated to exactly trackNibbleLen nibbles.
func encodeTrack(track int, sectorsByPhysical [sectorsPerTrack][bytesPerSector]byte) []byte {
	out := make([]byte, 0, trackNibbleLen+64)
	out = gap(out, 48)

	for logical := 0; logical < sectorsPerTrack; logical++ {
		physical := interleave[logical]
		payload := sectorsByPhysical[physical]

		const volume = 0xFE
		volOdd, volEven := fourAndFourEncode(volume)
		trkOdd, trkEven := fourAndFourEncode(byte(track))
		secOdd, secEven := fourAndFourEncode(byte(physical))
		addrChecksum := byte(volume) ^ byte(track) ^ byte(physical)
		chkOdd, chkEven := fourAndFourEncode(addrChecksum)

		out = append(out, 0xD5, 0xAA, 0x96)
		out = append(out, volOdd, volEven, trkOdd, trkEven, secOdd, secEven, chkOdd, chkEven)
		out = append(out, 0xDE, 0xAA, 0xEB)
		out = gap(out, 5)

		encoded, checksum := sixAndTwoEncode(payload)
		out = append(out, 0xD5, 0xAA, 0xAD)
		out = append(out, encoded[:]...)
		out = append(out, checksum)
		out = append(out, 0xDE, 0xAA, 0xEB)
		out = gap(out, 8)
	}

	if len(out) > trackNibbleLen {
		out = out[:trackNibbleLen]
	}
	out = gap(out, trackNibbleLen-len(out))
	return out
}

// DecodeTrack is the inverse transform: it scans a raw nibble track for
// address/data field pairs and returns the 16 physical sectors it finds,
// indexed by physical sector number. It is used for round-trip testing and
// by the diskdump tool to print sector contents without a second codec.
func DecodeTrack(nibbles []byte) ([sectorsPerTrack][bytesPerSector]byte, error) {
	var sectors [sectorsPerTrack][bytesPerSector]byte
	found := 0
	i := 0

	for i+3 <= len(nibbles) && found < sectorsPerTrack {
		if !matchProlog(nibbles, i, 0xD5, 0xAA, 0x96) {
			i++
			continue
		}
		addrStart := i + 3
		if addrStart+8 > len(nibbles) {
			break
		}
		secOdd, secEven := nibbles[addrStart+4], nibbles[addrStart+5]
		sector := fourAndFourDecode(secOdd, secEven)

		// hunt forward for the data field prologue
		j := addrStart + 8
		for j+3 <= len(nibbles) && !matchProlog(nibbles, j, 0xD5, 0xAA, 0xAD) {
			j++
		}
		if j+3+343 > len(nibbles) {
			break
		}
		dataStart := j + 3
		decoded, ok := sixAndTwoDecode(nibbles[dataStart : dataStart+343])
		if !ok {
			return sectors, errChecksumMismatch
		}
		if int(sector) < sectorsPerTrack {
			sectors[sector] = decoded
			found++
		}
		i = dataStart + 343
	}

	return sectors, nil
}

var errChecksumMismatch = errors.New("disk2: data field checksum mismatch")

func matchProlog(buf []byte, at int, a, b, c byte) bool {
	return at+3 <= len(buf) && buf[at] == a && buf[at+1] == b && buf[at+2] == c
}
