// Package console wires the CPU, memory bus, PPU, timer, interrupt
// controller, joypad and cartridge into the top-level cooperative
// execution loop.
package console

import (
	"fmt"

	"github.com/kestrel-emu/gbcore/internal/boot"
	"github.com/kestrel-emu/gbcore/internal/cartridge"
	"github.com/kestrel-emu/gbcore/internal/cpu"
	"github.com/kestrel-emu/gbcore/internal/interrupts"
	"github.com/kestrel-emu/gbcore/internal/joypad"
	"github.com/kestrel-emu/gbcore/internal/memory"
	"github.com/kestrel-emu/gbcore/internal/ppu"
	"github.com/kestrel-emu/gbcore/internal/timer"
	"github.com/kestrel-emu/gbcore/pkg/log"
)

// ClockSpeed is the DMG's clock rate in Hz.
const ClockSpeed = 4194304

// CyclesPerFrame is the number of T-cycles in one 60Hz video frame.
const CyclesPerFrame = ClockSpeed / 60

// Console is the aggregate machine: every subsystem plus the loop
// that drives them in lockstep.
type Console struct {
	CPU        *cpu.CPU
	Bus        *memory.Bus
	PPU        *ppu.PPU
	Timer      *timer.Controller
	Interrupts *interrupts.Controller
	Joypad     *joypad.State
	Cartridge  cartridge.Cartridge

	// Fingerprint identifies the loaded ROM image for logging and bug
	// reports; it is not derived from the parsed header, so two ROMs
	// with identical headers but different bodies are distinguished.
	Fingerprint uint64

	log     log.Logger
	stopped bool // set via SetStopped by a host front-end implementing real STOP
}

// Option customizes a Console at construction time.
type Option func(*Console)

// WithLogger routes the console's own diagnostics through logger. The
// bus is built before options are applied and keeps the null logger,
// so its unmapped-access debug records do not reach logger.
func WithLogger(logger log.Logger) Option {
	return func(c *Console) { c.log = logger }
}

// WithVideoSink attaches the host presentation surface the PPU
// flushes completed frames to.
func WithVideoSink(sink ppu.VideoSink) Option {
	return func(c *Console) { c.PPU.SetSink(sink) }
}

// SkipBootROM starts execution directly at the cartridge entry point
// instead of running the embedded boot stub, matching what most
// emulator test harnesses expect.
func SkipBootROM() Option {
	return func(c *Console) {
		c.CPU.PC = 0x0100
		c.CPU.SP = 0xFFFE
	}
}

// New constructs a fully wired Console from a raw ROM image.
func New(rom []byte, opts ...Option) (*Console, error) {
	cart, err := cartridge.New(rom)
	if err != nil {
		return nil, fmt.Errorf("console: %w", err)
	}

	c := &Console{Cartridge: cart, Fingerprint: cartridge.Fingerprint(rom), log: log.Null()}
	c.Interrupts = interrupts.New()
	c.Timer = timer.New(c.Interrupts)
	c.Joypad = joypad.New(c.Interrupts)
	c.PPU = ppu.New(c.Interrupts, nil)

	bootROM := boot.Default()
	c.Bus = memory.New(cart, bootROM, c.Interrupts, c.Timer, c.Joypad, c.PPU, c.log)
	c.CPU = cpu.New(c.Bus, c.Interrupts)

	for _, opt := range opts {
		opt(c)
	}
	c.log.Infof("console: loaded %s fingerprint=%016x", cart.Header(), c.Fingerprint)
	return c, nil
}

// Stopped reports whether a host front-end has parked the console
// awaiting joypad input. The CPU itself treats STOP as a NOP; this
// hook exists so a front-end can still honor real STOP semantics by
// routing joypad wake-up through SetStopped(false) itself.
func (c *Console) Stopped() bool { return c.stopped }

// SetStopped lets a host front-end implement real STOP semantics
// without this core imposing them.
func (c *Console) SetStopped(v bool) { c.stopped = v }

// Step runs exactly one CPU instruction and its downstream effects:
// the PPU and Timer observe the cycle count the CPU reports, in that
// order, and interrupt servicing runs last. Returns the cycle count.
func (c *Console) Step() uint8 {
	opcode := c.Bus.Read(c.CPU.PC)
	cycles := c.CPU.Step(opcode)

	c.PPU.Advance(cycles)
	c.Timer.Advance(cycles)
	c.service()

	return cycles
}

// RunFrame steps the console forward by one video frame's worth of
// cycles (CyclesPerFrame), the unit the host's frame-pacing loop
// drives it in.
func (c *Console) RunFrame() {
	var total int
	for total < CyclesPerFrame {
		total += int(c.Step())
	}
}

// service runs the interrupt service cycle: HALT wakes on any
// pending+enabled source even with IME false; dispatch itself only
// runs with IME true, and charges interrupts.DispatchCycles back into
// the PPU/Timer so the extra work isn't free.
func (c *Console) service() {
	pending := c.Interrupts.Pending()
	if pending == 0 {
		return
	}

	if c.CPU.Halted() {
		c.CPU.ClearHalt()
	}

	if !c.CPU.IME {
		return
	}

	c.CPU.IME = false
	vector := c.Interrupts.Vector()
	c.CPU.Dispatch(vector)

	c.PPU.Advance(interrupts.DispatchCycles)
	c.Timer.Advance(interrupts.DispatchCycles)
}
