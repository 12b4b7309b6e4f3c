package pixel

import "image/color"

// MonoModel converts any color to [Mono].
var MonoModel color.Model = color.ModelFunc(monoModel)

var (
	Off = Mono{false}
	On  = Mono{true}
)

// Mono represents a 1-bit monochrome color.
type Mono struct {
	On bool
}

func (c Mono) RGBA() (r, g, b, a uint32) {
	if c.On {
		return 0xffff, 0xffff, 0xffff, 0xffff
	}
	return 0, 0, 0, 0xffff
}

func monoModel(c color.Color) color.Color {
	if _, ok := c.(Mono); ok {
		return c
	}
	r, g, b, a := c.RGBA()
	if a == 0 {
		return Off
	}

	// JFIF luma coefficients, 19595 + 38470 + 7471 equals 65536. Anything at or
	// above half intensity lights the pixel.
	y := (19595*r + 38470*g + 7471*b + 1<<15) >> 16
	return Mono{On: y >= 0x8000}
}
