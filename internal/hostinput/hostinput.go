// Package hostinput polls SDL2 keyboard events and translates them
// into joypad button transitions using the default key mapping.
package hostinput

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/kestrel-emu/gbcore/internal/joypad"
)

// Event is a single button transition delivered by Poll.
type Event struct {
	Button  joypad.Button
	Pressed bool
}

// keyMapping is the default binding: A->A, S->B, Enter->Select,
// Space->Start, arrows->direction pad.
var keyMapping = map[sdl.Keycode]joypad.Button{
	sdl.K_a:      joypad.ButtonA,
	sdl.K_s:      joypad.ButtonB,
	sdl.K_RETURN: joypad.ButtonSelect,
	sdl.K_SPACE:  joypad.ButtonStart,
	sdl.K_RIGHT:  joypad.ButtonRight,
	sdl.K_LEFT:   joypad.ButtonLeft,
	sdl.K_UP:     joypad.ButtonUp,
	sdl.K_DOWN:   joypad.ButtonDown,
}

// Source polls SDL2's event queue.
type Source struct{}

// New returns an input source. SDL2 video/events must already be
// initialized by the caller (see hostvideo.Sink).
func New() *Source { return &Source{} }

// Poll drains the SDL2 event queue and returns any button transitions
// it produced, plus whether a quit event was seen.
func (s *Source) Poll() (events []Event, quit bool) {
	for e := sdl.PollEvent(); e != nil; e = sdl.PollEvent() {
		switch ev := e.(type) {
		case *sdl.QuitEvent:
			quit = true
		case *sdl.KeyboardEvent:
			button, ok := keyMapping[ev.Keysym.Sym]
			if !ok {
				continue
			}
			switch ev.Type {
			case sdl.KEYDOWN:
				events = append(events, Event{Button: button, Pressed: true})
			case sdl.KEYUP:
				events = append(events, Event{Button: button, Pressed: false})
			}
		}
	}
	return events, quit
}

// Apply feeds a batch of Poll's events into pad.
func Apply(pad *joypad.State, events []Event) {
	for _, e := range events {
		if e.Pressed {
			pad.Press(e.Button)
		} else {
			pad.Release(e.Button)
		}
	}
}
