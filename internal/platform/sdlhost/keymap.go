package sdlhost

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/strider/internal/engine/input"
)

// Scancodes are layout independent, so WASD stays in place on AZERTY.
var scancodeKeys = map[sdl.Scancode]input.Key{
	sdl.SCANCODE_W:      input.KeyW,
	sdl.SCANCODE_A:      input.KeyA,
	sdl.SCANCODE_S:      input.KeyS,
	sdl.SCANCODE_D:      input.KeyD,
	sdl.SCANCODE_UP:     input.KeyUp,
	sdl.SCANCODE_DOWN:   input.KeyDown,
	sdl.SCANCODE_LEFT:   input.KeyLeft,
	sdl.SCANCODE_RIGHT:  input.KeyRight,
	sdl.SCANCODE_SPACE:  input.KeySpace,
	sdl.SCANCODE_LSHIFT: input.KeyShiftLeft,
	sdl.SCANCODE_RSHIFT: input.KeyShiftRight,
	sdl.SCANCODE_ESCAPE: input.KeyEscape,
	sdl.SCANCODE_F12:    input.KeyF12,
}

// KeyFromScancode maps an SDL scancode, returning KeyUnknown for unmapped keys.
func KeyFromScancode(sc sdl.Scancode) input.Key {
	if k, ok := scancodeKeys[sc]; ok {
		return k
	}
	return input.KeyUnknown
}
