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

// Package disk2 emulates the Disk II controller card: its $C0E0-$C0EF
// soft-switch interface, its stepper motor and half-track model, its
// Q6/Q7 shift-register state machine, and the GCR nibble stream it reads
// DOS 3.3 DSK images into.
package disk2

const (
	tracksPerDisk    = 35
	sectorsPerTrack  = 16
	bytesPerSector   = 256
	trackNibbleLen   = 6656
	cyclesPerNibble  = 32
	maxHalfTrack     = 69
)

// interleave lists, slot by slot around a track, the physical sector number
// encodeTrack writes in that slot. Image sector s is always written as
// physical sector s; only the order around the track follows this table.
var interleave = [sectorsPerTrack]int{0, 7, 14, 6, 13, 5, 12, 4, 11, 3, 10, 2, 9, 1, 8, 15}

// drive holds one floppy drive's media and mechanical state.
type drive struct {
	hasDisk        bool
	writeProtected bool
	filename       string
	tracks         [tracksPerDisk][]byte
	halfTrack      int
	nibblePos      int
}

func (d *drive) currentTrack() int {
	t := d.halfTrack / 2
	if t > tracksPerDisk-1 {
		t = tracksPerDisk - 1
	}
	return t
}

// Disk2 is the controller shared by both drives: only one drive is
// "selected" and addressable at a time, matching real hardware.
type Disk2 struct {
	drives        [2]drive
	selectedDrive int
	motorOn       bool
	phaseMask     uint8
	q6            bool
	q7            bool
	dataLatch     uint8
	cycleAcc      int
}

// New returns a Disk2 with both drive bays empty.
func New() *Disk2 {
	return &Disk2{}
}

// Read implements cpu6502.Bus (via the MMU): any access to $C0E0-$C0EF
// performs its side effect regardless of read or write, exactly like real
// Disk II hardware.
func (d *Disk2) Read(addr uint16) uint8 {
	d.touch(addr)
	return d.ioValue()
}

// Write implements cpu6502.Bus.
func (d *Disk2) Write(addr uint16, v uint8) {
	d.touch(addr)
}

// Peek returns the data latch without running any soft-switch side effect,
// for the non-side-effecting memory-viewer path.
func (d *Disk2) Peek() uint8 { return d.dataLatch }

// AddressRange implements bus.Device: the controller answers the 16
// soft-switch addresses $C0E0-$C0EF.
func (d *Disk2) AddressRange() (lo, hi uint16) { return 0xC0E0, 0xC0EF }

// Name implements bus.Device.
func (d *Disk2) Name() string { return "Disk2" }

func (d *Disk2) touch(addr uint16) {
	switch addr & 0x0F {
	case 0x0:
		d.setPhase(0, false)
	case 0x1:
		d.setPhase(0, true)
	case 0x2:
		d.setPhase(1, false)
	case 0x3:
		d.setPhase(1, true)
	case 0x4:
		d.setPhase(2, false)
	case 0x5:
		d.setPhase(2, true)
	case 0x6:
		d.setPhase(3, false)
	case 0x7:
		d.setPhase(3, true)
	case 0x8:
		d.motorOn = false
	case 0x9:
		d.motorOn = true
	case 0xA:
		d.selectedDrive = 0
	case 0xB:
		d.selectedDrive = 1
	case 0xC:
		d.q6 = false
	case 0xD:
		d.q6 = true
	case 0xE:
		d.q7 = false
	case 0xF:
		d.q7 = true
	}
}

// ioValue is what a read of $C0E0-$C0EF returns once the side effect above
// has been applied: the data latch in read-shift mode, or a write-protect
// sense bit when Q6/Q7 select that mode.
func (d *Disk2) ioValue() uint8 {
	switch {
	case !d.q6 && !d.q7:
		return d.dataLatch
	case d.q6 && !d.q7:
		if d.drives[d.selectedDrive].writeProtected {
			return 0x80
		}
		return 0x00
	default:
		return 0x00
	}
}

// setPhase toggles one of the four stepper phases and, on a 0->1 edge,
// moves the head exactly one half-track in whichever direction the newly
// energized phase is adjacent to the one already holding position.
func (d *Disk2) setPhase(phase int, on bool) {
	bit := uint8(1) << uint(phase)
	wasOn := d.phaseMask&bit != 0
	if on == wasOn {
		return
	}
	if !on {
		d.phaseMask &^= bit
		return
	}
	d.phaseMask |= bit

	dr := &d.drives[d.selectedDrive]
	nearest := dr.halfTrack % 4
	switch phase {
	case (nearest + 1) % 4:
		if dr.halfTrack < maxHalfTrack {
			dr.halfTrack++
		}
	case (nearest + 3) % 4:
		if dr.halfTrack > 0 {
			dr.halfTrack--
		}
	}
}

// Advance streams nibbles off the current track while the motor is
// spinning and the controller is in read-shift mode (Q6=Q7=false); one
// nibble becomes available roughly every 32 CPU cycles.
func (d *Disk2) Advance(cycles uint64) {
	if !d.motorOn || d.q6 || d.q7 {
		return
	}
	dr := &d.drives[d.selectedDrive]
	if !dr.hasDisk {
		return
	}

	d.cycleAcc += int(cycles)
	track := dr.tracks[dr.currentTrack()]
	for d.cycleAcc >= cyclesPerNibble {
		d.cycleAcc -= cyclesPerNibble
		d.dataLatch = track[dr.nibblePos]
		dr.nibblePos = (dr.nibblePos + 1) % trackNibbleLen
	}
}

// Telemetry, all read-only, for a future UI or the driver's snapshot.
func (d *Disk2) MotorOn() bool          { return d.motorOn }
func (d *Disk2) SelectedDrive() int     { return d.selectedDrive }
func (d *Disk2) Q6() bool               { return d.q6 }
func (d *Disk2) Q7() bool               { return d.q7 }
func (d *Disk2) PhaseMask() uint8       { return d.phaseMask }
func (d *Disk2) DataLatch() uint8       { return d.dataLatch }
func (d *Disk2) HasDisk(dr int) bool    { return d.drives[dr].hasDisk }
func (d *Disk2) CurrentTrack(dr int) int { return d.drives[dr].currentTrack() }
func (d *Disk2) NibblePos(dr int) int   { return d.drives[dr].nibblePos }
func (d *Disk2) Filename(dr int) string { return d.drives[dr].filename }
func (d *Disk2) WriteProtected(dr int) bool { return d.drives[dr].writeProtected }

// TrackNibbles returns the raw nibble stream for drive's track t, for
// tooling (diskdump) that wants to inspect media contents directly rather
// than through the Q6/Q7 shift-register path.
func (d *Disk2) TrackNibbles(dr, t int) []byte { return d.drives[dr].tracks[t] }

// TracksPerDisk, SectorsPerTrack and BytesPerSector expose the package's
// fixed DOS 3.3 geometry constants to callers outside the package.
func TracksPerDisk() int   { return tracksPerDisk }
func SectorsPerTrack() int { return sectorsPerTrack }
func BytesPerSector() int  { return bytesPerSector }
