// Package timer implements the Game Boy's divider and programmable
// timer: a pair of cycle countdowns that reload themselves and, for
// the programmable timer, request an interrupt on overflow.
package timer

import "github.com/kestrel-emu/gbcore/internal/interrupts"

// reload holds the countdown period for each TAC frequency selection.
var reload = [4]int{1024, 16, 64, 256}

// Controller is the timer: DIV increments every 256 cycles regardless
// of TAC; TIMA increments at the TAC-selected frequency while TAC's
// enable bit is set, reloading from TMA and requesting Timer on
// overflow.
type Controller struct {
	div     uint8
	divLeft int

	tima uint8
	tma  uint8
	tac  uint8

	timaLeft int

	irq *interrupts.Controller
}

// New returns a Controller wired to irq for overflow interrupts.
func New(irq *interrupts.Controller) *Controller {
	return &Controller{
		divLeft:  256,
		timaLeft: reload[0],
		irq:      irq,
	}
}

// Advance runs the divider and, if enabled, the programmable timer
// forward by cycles T-cycles.
func (c *Controller) Advance(cycles uint8) {
	c.divLeft -= int(cycles)
	for c.divLeft <= 0 {
		c.div++
		c.divLeft += 256
	}

	if c.tac&0x04 == 0 {
		return
	}

	c.timaLeft -= int(cycles)
	for c.timaLeft <= 0 {
		c.timaLeft += reload[c.tac&0b11]
		c.tima++
		if c.tima == 0 {
			c.tima = c.tma
			c.irq.Request(interrupts.Timer)
		}
	}
}

// ReadDIV returns the divider register.
func (c *Controller) ReadDIV() uint8 { return c.div }

// WriteDIV resets DIV to 0 regardless of the written value. The
// internal countdown toward the next DIV increment is left untouched.
func (c *Controller) WriteDIV(uint8) { c.div = 0 }

// ReadTIMA/WriteTIMA access the programmable counter directly.
func (c *Controller) ReadTIMA() uint8    { return c.tima }
func (c *Controller) WriteTIMA(v uint8)  { c.tima = v }
func (c *Controller) ReadTMA() uint8     { return c.tma }
func (c *Controller) WriteTMA(v uint8)   { c.tma = v }
func (c *Controller) ReadTAC() uint8     { return c.tac | 0xF8 }

// WriteTAC stores the new control byte and reinitializes the TIMA
// countdown to the newly selected frequency's reload value.
func (c *Controller) WriteTAC(v uint8) {
	c.tac = v & 0x07
	c.timaLeft = reload[c.tac&0b11]
}
