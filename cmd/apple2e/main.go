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

package main

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/urfave/cli.v2"

	"apple2e/pkg/emulator"
)

const defaultCycleBudget = 1_000_000

// stderrLogger is the Logger the --trace flag wires up: every diagnostic
// line is prefixed so it is easy to grep out of mixed CLI output.
type stderrLogger struct{}

func (stderrLogger) Log(msg string) {
	fmt.Fprintf(os.Stderr, "[apple2e] %s\n", msg)
}

func main() {
	app := &cli.App{
		Name:    "apple2e",
		Usage:   "Apple IIe emulation core",
		Version: "v0.0.1",
		Commands: []*cli.Command{
			runCommand(),
			snapshotCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "rom", Usage: "ROM image to load", Required: true},
		&cli.StringFlag{Name: "disk1", Usage: "DSK image for drive 1"},
		&cli.StringFlag{Name: "disk2", Usage: "DSK image for drive 2"},
		&cli.Uint64Flag{Name: "cycles", Usage: "cycle budget", Value: defaultCycleBudget},
	}
}

func buildDriver(c *cli.Context, trace bool) (*emulator.Driver, error) {
	d := emulator.New()
	if trace {
		d.SetLogger(stderrLogger{})
		d.SetLogEnable(true)
	}

	rom, err := os.ReadFile(c.String("rom"))
	if err != nil {
		return nil, fmt.Errorf("reading rom: %w", err)
	}
	if err := d.LoadROM(rom); err != nil {
		return nil, fmt.Errorf("loading rom: %w", err)
	}

	if path := c.String("disk1"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading disk1: %w", err)
		}
		if err := d.LoadDisk(0, data); err != nil {
			return nil, fmt.Errorf("loading disk1: %w", err)
		}
	}
	if path := c.String("disk2"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading disk2: %w", err)
		}
		if err := d.LoadDisk(1, data); err != nil {
			return nil, fmt.Errorf("loading disk2: %w", err)
		}
	}

	d.Reset()
	return d, nil
}

func runCommand() *cli.Command {
	flags := append(commonFlags(), &cli.BoolFlag{Name: "trace", Usage: "log illegal opcodes and disk milestones to stderr"})
	return &cli.Command{
		Name:  "run",
		Usage: "run the machine for a cycle budget and print the final register snapshot",
		Flags: flags,
		Action: func(c *cli.Context) error {
			d, err := buildDriver(c, c.Bool("trace"))
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}

			budget := c.Uint64("cycles")
			executed, err := d.StepCycles(context.Background(), budget)
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}

			snap := d.SnapshotCPU()
			fmt.Printf("executed %d cycles\n", executed)
			printCPUSnapshot(snap)
			return nil
		},
	}
}

func snapshotCommand() *cli.Command {
	flags := append(commonFlags(),
		&cli.BoolFlag{Name: "disasm", Usage: "print a disassembly window around PC"},
	)
	return &cli.Command{
		Name:  "snapshot",
		Usage: "run for a cycle budget and print CPU/disk state without resuming",
		Flags: flags,
		Action: func(c *cli.Context) error {
			d, err := buildDriver(c, false)
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}

			budget := c.Uint64("cycles")
			if _, err := d.StepCycles(context.Background(), budget); err != nil {
				return cli.Exit(err.Error(), 1)
			}

			snap := d.SnapshotCPU()
			printCPUSnapshot(snap)
			printDiskSnapshot(d.SnapshotDisk())
			for _, dev := range d.Devices() {
				lo, hi := dev.AddressRange()
				fmt.Printf("device %-9s $%04X-$%04X\n", dev.Name(), lo, hi)
			}

			if c.Bool("disasm") {
				start := snap.PC - 8
				end := snap.PC + 8
				disasm := d.Disassemble(start, end)
				for _, addr := range disasm.Index {
					fmt.Println(disasm.Lines[addr])
				}
			}
			return nil
		},
	}
}

func printCPUSnapshot(snap emulator.CPUSnapshot) {
	fmt.Printf("PC=$%04X SP=$%02X A=$%02X X=$%02X Y=$%02X P=$%02X cycles=%d\n",
		snap.PC, snap.SP, snap.A, snap.X, snap.Y, snap.P, snap.Cycles)
}

func printDiskSnapshot(snap emulator.DiskSnapshot) {
	fmt.Printf("motor=%v drive=%d q6=%v q7=%v\n", snap.MotorOn, snap.SelectedDrive, snap.Q6, snap.Q7)
	for i, dr := range snap.Drives {
		fmt.Printf("  drive %d: disk=%v track=%d nibble=%d file=%q\n",
			i, dr.HasDisk, dr.CurrentTrack, dr.NibblePos, dr.Filename)
	}
}
