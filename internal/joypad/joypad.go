// Package joypad tracks which of the Game Boy's eight buttons are
// currently held, and composes the P1 register value the CPU reads.
package joypad

import (
	"github.com/kestrel-emu/gbcore/internal/interrupts"
	"github.com/kestrel-emu/gbcore/internal/types"
)

// Button identifies one of the eight physical inputs.
type Button uint8

const (
	ButtonA Button = iota
	ButtonB
	ButtonSelect
	ButtonStart
	ButtonRight
	ButtonLeft
	ButtonUp
	ButtonDown
)

// State tracks pressed buttons and the P1 column-select latch. A set
// bit in held means the button is currently pressed; this is the
// inverse of the wire-level encoding (0 = pressed), which Read applies
// at the boundary.
type State struct {
	held      uint8
	colSelect uint8
	irq       *interrupts.Controller
}

// New returns a joypad with no buttons held.
func New(irq *interrupts.Controller) *State {
	return &State{irq: irq}
}

// Press marks button as held and requests a Joypad interrupt, since
// real hardware raises it on any 1->0 transition of a selected line.
func (s *State) Press(b Button) {
	s.held |= 1 << b
	s.irq.Request(interrupts.Joypad)
}

// Release marks button as no longer held.
func (s *State) Release(b Button) {
	s.held &^= 1 << b
}

// Read composes the P1 register: bits 4-5 echo the column select
// latch, bits 0-3 report the selected column's buttons, inverted so
// that 0 means pressed. Bits 6-7 always read back as 1.
func (s *State) Read() uint8 {
	out := uint8(0xC0) | s.colSelect&0x30
	var lines uint8
	if s.colSelect&types.Bit5 == 0 {
		lines |= s.held & 0x0F // action keys: A, B, Select, Start
	}
	if s.colSelect&types.Bit4 == 0 {
		lines |= (s.held >> 4) & 0x0F // direction keys: Right, Left, Up, Down
	}
	out |= ^lines & 0x0F
	return out
}

// Write updates the column-select latch (bits 4-5 only; the rest of
// P1 is read-only from the CPU's perspective).
func (s *State) Write(v uint8) {
	s.colSelect = v & 0x30
}
