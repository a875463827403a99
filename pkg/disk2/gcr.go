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

// sixAndTwoTable is the standard DOS 3.3 6-and-2 GCR translate table: 64
// six-bit values, each mapped to a disk byte with no more than one leading
// zero bit and never two adjacent zero bits, so the drive's read circuitry
// can recover a clock from the data stream.
var sixAndTwoTable = [64]byte{
	0x96, 0x97, 0x9a, 0x9b, 0x9d, 0x9e, 0x9f, 0xa6,
	0xa7, 0xab, 0xac, 0xad, 0xae, 0xaf, 0xb2, 0xb3,
	0xb4, 0xb5, 0xb6, 0xb7, 0xb9, 0xba, 0xbb, 0xbc,
	0xbd, 0xbe, 0xbf, 0xcb, 0xcd, 0xce, 0xcf, 0xd3,
	0xd6, 0xd7, 0xd9, 0xda, 0xdb, 0xdc, 0xdd, 0xde,
	0xdf, 0xe5, 0xe6, 0xe7, 0xe9, 0xea, 0xeb, 0xec,
	0xed, 0xee, 0xef, 0xf2, 0xf3, 0xf4, 0xf5, 0xf6,
	0xf7, 0xf9, 0xfa, 0xfb, 0xfc, 0xfd, 0xfe, 0xff,
}

// sixAndTwoInverse maps a disk byte back to its six-bit value; entries that
// are not valid GCR bytes stay zero and are rejected by the caller checking
// ok.
var sixAndTwoInverse = func() [256]byte {
	var inv [256]byte
	for v, b := range sixAndTwoTable {
		inv[b] = byte(v)
	}
	return inv
}()

// sixAndTwoEncode packs a 256-byte sector into 342 six-bit symbols (the
// canonical 86-byte auxiliary buffer of low bit-pairs followed by 256 bytes
// of high six bits), XOR-chains each symbol against the one before it, and
// translates the result through sixAndTwoTable. The final chain value,
// translated the same way, is the data field's trailing checksum nibble.
func sixAndTwoEncode(data [256]byte) (encoded [342]byte, checksum byte) {
	var sixBit [342]byte

	var aux [86]byte
	for i := 0; i < 256; i++ {
		group := i / 86
		idx := i % 86
		pair := data[i] & 0x03
		aux[idx] |= pair << uint(group*2)
	}
	copy(sixBit[:86], aux[:])
	for i := 0; i < 256; i++ {
		sixBit[86+i] = data[i] >> 2
	}

	var prev byte
	for i, v := range sixBit {
		encoded[i] = sixAndTwoTable[v^prev]
		prev = v
	}
	return encoded, sixAndTwoTable[prev]
}

// sixAndTwoDecode is the exact inverse of sixAndTwoEncode, including the
// checksum verification: nibbles must be 343 bytes (342 data symbols plus
// the trailing checksum nibble).
func sixAndTwoDecode(nibbles []byte) (data [256]byte, ok bool) {
	if len(nibbles) < 343 {
		return data, false
	}
	for _, b := range nibbles[:343] {
		if sixAndTwoTable[sixAndTwoInverse[b]] != b {
			return data, false
		}
	}

	var sixBit [342]byte
	var prev byte
	for i := 0; i < 342; i++ {
		v := sixAndTwoInverse[nibbles[i]] ^ prev
		sixBit[i] = v
		prev = v
	}
	if sixAndTwoInverse[nibbles[342]] != prev {
		return data, false
	}

	for i := 0; i < 256; i++ {
		data[i] = sixBit[86+i] << 2
	}
	for i := 0; i < 256; i++ {
		group := i / 86
		idx := i % 86
		pair := (sixBit[idx] >> uint(group*2)) & 0x03
		data[i] |= pair
	}
	return data, true
}

// fourAndFourEncode splits b into two "odd-even" nibbles, the disk
// controller's self-clocking encoding for address-field bytes (volume,
// track, sector, checksum).
func fourAndFourEncode(b byte) (odd, even byte) {
	return (b >> 1) | 0xAA, b | 0xAA
}

// fourAndFourDecode is the inverse of fourAndFourEncode.
func fourAndFourDecode(odd, even byte) byte {
	return ((odd & 0x55) << 1) | (even & 0x55)
}
