// Package input polls SDL2 events into a controls.State.
package input

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/sceneview/internal/engine/controls"
)

// Input accumulates SDL events for one frame.
type Input struct {
	state controls.State
}

// New creates an input handler.
func New() *Input {
	return &Input{
		state: controls.State{Keys: make([]controls.Key, 0, 8)},
	}
}

// Update polls all pending SDL events and returns the frame's state.
// The returned pointer is reused by the next call.
func (i *Input) Update() *controls.State {
	i.state.Reset()

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.state.Quit = true

		case *sdl.WindowEvent:
			switch e.Event {
			case sdl.WINDOWEVENT_RESIZED, sdl.WINDOWEVENT_SIZE_CHANGED:
				i.state.Width = int(e.Data1)
				i.state.Height = int(e.Data2)
			case sdl.WINDOWEVENT_FOCUS_LOST:
				// key-up events are not delivered to an unfocused window
				i.state.Down = i.state.Down[:0]
			}

		case *sdl.KeyboardEvent:
			k, ok := translateKey(e.Keysym)
			if !ok {
				continue
			}
			if e.Type == sdl.KEYUP {
				i.state.Release(k)
				continue
			}
			i.state.Keys = append(i.state.Keys, k)
			if e.Repeat == 0 {
				i.state.Press(k)
			}

		case *sdl.MouseMotionEvent:
			i.state.MouseX = int(e.X)
			i.state.MouseY = int(e.Y)

		case *sdl.MouseButtonEvent:
			i.state.MouseX = int(e.X)
			i.state.MouseY = int(e.Y)
			if e.Button == sdl.BUTTON_RIGHT {
				i.state.Pick = i.state.Pick || e.Type == sdl.MOUSEBUTTONDOWN
				continue
			}
			if e.Button != sdl.BUTTON_LEFT {
				continue
			}
			if e.Type == sdl.MOUSEBUTTONDOWN {
				i.state.Pressed = true
				i.state.Held = true
			} else {
				i.state.Held = false
			}

		case *sdl.MouseWheelEvent:
			dy := int(e.Y)
			if e.Direction == sdl.MOUSEWHEEL_FLIPPED {
				dy = -dy
			}
			i.state.Wheel += dy
		}
	}

	return &i.state
}

// translateKey maps an SDL key to a controls.Key. Printable keys map to
// their character; '+' typed with shift arrives as '=' and is kept so.
func translateKey(ks sdl.Keysym) (controls.Key, bool) {
	switch ks.Sym {
	case sdl.K_ESCAPE:
		return controls.KeyEscape, true
	case sdl.K_F12:
		return controls.KeyF12, true
	case sdl.K_KP_PLUS:
		return '+', true
	case sdl.K_KP_MINUS:
		return '-', true
	}
	if ks.Sym >= 0x20 && ks.Sym < 0x7f {
		return controls.Key(ks.Sym), true
	}
	return 0, false
}
