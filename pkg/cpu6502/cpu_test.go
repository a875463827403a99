package cpu6502

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// fakeBus is a flat 64KiB array satisfying Bus, for instruction-level tests
// that don't need real soft-switch routing.
type fakeBus struct {
	ram [65536]uint8
}

func (b *fakeBus) Read(addr uint16) uint8     { return b.ram[addr] }
func (b *fakeBus) Write(addr uint16, v uint8) { b.ram[addr] = v }

func newTestCPU(resetVector uint16) (*CPU, *fakeBus) {
	bus := &fakeBus{}
	bus.ram[0xFFFC] = uint8(resetVector & 0x00FF)
	bus.ram[0xFFFD] = uint8(resetVector >> 8)
	cpu := New(bus)
	cpu.Reset()
	return cpu, bus
}

func TestResetVector(t *testing.T) {
	cpu, _ := newTestCPU(0x8000)
	assert.Equal(t, uint16(0x8000), cpu.PC)
	assert.Equal(t, uint8(0xFD), cpu.SP)
	assert.Equal(t, FlagUnused|FlagInterrupt, cpu.P)
	assert.True(t, cpu.Initialized)
}

func TestLDAImmediateSetsZeroFlag(t *testing.T) {
	cpu, bus := newTestCPU(0x8000)
	bus.ram[0x8000] = 0xA9 // LDA #$00
	bus.ram[0x8001] = 0x00

	cpu.Step()

	assert.Equal(t, uint8(0), cpu.A)
	assert.Equal(t, uint8(1), cpu.GetFlag(FlagZero))
	assert.Equal(t, uint8(0), cpu.GetFlag(FlagNegative))
}

func TestADCBinaryCarryAndOverflow(t *testing.T) {
	cpu, bus := newTestCPU(0x8000)
	bus.ram[0x8000] = 0xA9 // LDA #$50
	bus.ram[0x8001] = 0x50
	bus.ram[0x8002] = 0x69 // ADC #$50
	bus.ram[0x8003] = 0x50

	cpu.Step()
	cpu.Step()

	assert.Equal(t, uint8(0xA0), cpu.A)
	assert.Equal(t, uint8(1), cpu.GetFlag(FlagOverflow), "signed 0x50+0x50 overflows into negative")
	assert.Equal(t, uint8(0), cpu.GetFlag(FlagCarry))
}

func TestADCDecimalMode(t *testing.T) {
	cpu, bus := newTestCPU(0x8000)
	bus.ram[0x8000] = 0xF8 // SED
	bus.ram[0x8001] = 0xA9 // LDA #$58
	bus.ram[0x8002] = 0x58
	bus.ram[0x8003] = 0x69 // ADC #$46
	bus.ram[0x8004] = 0x46

	cpu.Step()
	cpu.Step()
	cpu.Step()

	assert.Equal(t, uint8(0x04), cpu.A, "58 + 46 in BCD is 104, wraps to 04 with carry")
	assert.Equal(t, uint8(1), cpu.GetFlag(FlagCarry))
}

func TestSBCDecimalMode(t *testing.T) {
	cpu, bus := newTestCPU(0x8000)
	bus.ram[0x8000] = 0xF8 // SED
	bus.ram[0x8001] = 0x38 // SEC (no borrow in)
	bus.ram[0x8002] = 0xA9 // LDA #$10
	bus.ram[0x8003] = 0x10
	bus.ram[0x8004] = 0xE9 // SBC #$05
	bus.ram[0x8005] = 0x05

	cpu.Step()
	cpu.Step()
	cpu.Step()
	cpu.Step()

	assert.Equal(t, uint8(0x05), cpu.A)
	assert.Equal(t, uint8(1), cpu.GetFlag(FlagCarry), "no borrow out")
}

func TestBranchTakenAddsCycleAndPageCrossAddsAnother(t *testing.T) {
	cpu, bus := newTestCPU(0x80F0)
	bus.ram[0x80F0] = 0x18 // CLC
	bus.ram[0x80F1] = 0x90 // BCC +$20 (crosses into next page from $80F3)
	bus.ram[0x80F2] = 0x20

	cpu.Step()
	cycles := cpu.Step()

	assert.Equal(t, uint16(0x8113), cpu.PC)
	assert.Equal(t, uint64(4), cycles, "base 2 + taken 1 + page-cross 1")
}

func TestIllegalOpcodeHookFires(t *testing.T) {
	cpu, bus := newTestCPU(0x8000)
	bus.ram[0x8000] = 0x02 // undocumented

	var seenOpcode uint8
	var seenPC uint16
	cpu.SetIllegalOpcodeHook(func(opcode uint8, pc uint16) {
		seenOpcode = opcode
		seenPC = pc
	})
	cpu.Step()

	assert.Equal(t, uint8(0x02), seenOpcode)
	assert.Equal(t, uint16(0x8000), seenPC)
}

func TestIRQMaskedByInterruptFlag(t *testing.T) {
	cpu, bus := newTestCPU(0x8000)
	bus.ram[0xFFFE] = 0x00
	bus.ram[0xFFFF] = 0x90
	cpu.SetFlag(FlagInterrupt, true)

	before := cpu.PC
	cpu.IRQ()

	assert.Equal(t, before, cpu.PC, "masked IRQ must not touch PC")
}

func TestNMIAlwaysFires(t *testing.T) {
	cpu, bus := newTestCPU(0x8000)
	bus.ram[0xFFFA] = 0x00
	bus.ram[0xFFFB] = 0x90
	cpu.SetFlag(FlagInterrupt, true)

	cpu.NMI()

	assert.Equal(t, uint16(0x9000), cpu.PC)
}

func TestDisassembleDoesNotMutateBus(t *testing.T) {
	_, bus := newTestCPU(0x8000)
	bus.ram[0x8000] = 0xA9 // LDA #$42
	bus.ram[0x8001] = 0x42

	before := bus.ram
	d := Disassemble(bus.Read, 0x8000, 0x8001)

	assert.Equal(t, before, bus.ram, "disassembly must never write to the bus")
	assert.Contains(t, d.Lines[0x8000], "LDA")
	assert.Contains(t, d.Lines[0x8000], "#$42")
}
