package viewer

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/heightforge/internal/terrain"
)

// Parameter step sizes per key press.
const (
	scaleStep       = 5.0
	persistenceStep = 0.05
	lacunarityStep  = 0.1
	scaleFactorStep = 10.0
)

// keyHelp is logged at startup. Each letter pair raises and lowers one parameter.
const keyHelp = "Q/A scale  W/S octaves  E/D persistence  R/F lacunarity  T/G factor  N seed  Enter apply  Backspace revert  F12 screenshot  F5 save config  Home frame terrain"

// adjust applies one key press to the draft. It reports whether the key edits
// parameters; the result is clamped to the interactive ranges.
func adjust(p terrain.Params, key sdl.Scancode) (terrain.Params, bool) {
	switch key {
	case sdl.SCANCODE_Q:
		p.Scale += scaleStep
	case sdl.SCANCODE_A:
		p.Scale -= scaleStep
	case sdl.SCANCODE_W:
		p.Octaves++
	case sdl.SCANCODE_S:
		p.Octaves--
	case sdl.SCANCODE_E:
		p.Persistence += persistenceStep
	case sdl.SCANCODE_D:
		p.Persistence -= persistenceStep
	case sdl.SCANCODE_R:
		p.Lacunarity += lacunarityStep
	case sdl.SCANCODE_F:
		p.Lacunarity -= lacunarityStep
	case sdl.SCANCODE_T:
		p.ScaleFactor += scaleFactorStep
	case sdl.SCANCODE_G:
		p.ScaleFactor -= scaleFactorStep
	case sdl.SCANCODE_N:
		p.Seed++
	default:
		return p, false
	}
	return p.Clamp(), true
}
