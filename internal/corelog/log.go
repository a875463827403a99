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

// Package corelog carries a pluggable logger through the emulator driver.
// Unlike the teacher's package-level global, the logger here lives on each
// Driver so that two drivers in the same process never fight over one sink.
package corelog

// Logger is the sink a Driver reports diagnostics to: illegal opcodes, ROM
// load events, disk activity. Implementations must be safe to call from the
// goroutine StepCycles runs on.
type Logger interface {
	Log(msg string)
}

type noopLogger struct{}

func (noopLogger) Log(msg string) {}

// Default is the no-op logger a fresh Driver starts with.
var Default Logger = noopLogger{}

// Facility bundles a logger with an enable flag, the way the teacher's
// package-level SetLogger/SetLogEnable pair gated mgnes's diagnostics.
type Facility struct {
	logger  Logger
	enabled bool
}

// NewFacility returns a Facility with logging off and the no-op logger.
func NewFacility() *Facility {
	return &Facility{logger: Default}
}

// SetLogger installs impl as the log sink. A nil impl reverts to Default.
func (f *Facility) SetLogger(impl Logger) {
	if impl == nil {
		f.logger = Default
		return
	}
	f.logger = impl
}

// SetEnable turns logging on or off without disturbing the installed sink.
func (f *Facility) SetEnable(enable bool) {
	f.enabled = enable
}

// Log forwards msg to the installed sink if logging is enabled.
func (f *Facility) Log(msg string) {
	if !f.enabled {
		return
	}
	f.logger.Log(msg)
}
