package pixel

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// ErrOutOfRange is returned for pixel coordinates outside of the image.
var ErrOutOfRange = errors.New("pixel: coordinate out of range")

// PageImage is a 1-bit per pixel monochrome image in page layout.
//
// Pixel (x, y) lives in byte y/8*Stride + x, bit y%8. The Pix slice is allocated once and
// never grows or shrinks.
type PageImage struct {
	// Rect is the image bounding box.
	Rect image.Rectangle

	// Pix are the image pixels.
	Pix []byte

	// Stride is the Pix stride (in bytes) between vertically adjacent pages.
	Stride int
}

// NewPageImage returns an all-off image of w by h pixels.
func NewPageImage(w, h int) *PageImage {
	if w < 0 || h < 0 {
		return &PageImage{}
	}
	pages := (h + 7) / 8 // round up to whole pages
	return &PageImage{
		Rect:   image.Rect(0, 0, w, h),
		Pix:    make([]byte, pages*w),
		Stride: w,
	}
}

func (p *PageImage) Bounds() image.Rectangle {
	return p.Rect
}

func (p *PageImage) ColorModel() color.Model {
	return MonoModel
}

// Pages is the number of 8 pixel tall bands.
func (p *PageImage) Pages() int {
	return (p.Rect.Dy() + 7) / 8
}

// Bytes returns the underlying pixel bytes. The slice aliases the image.
func (p *PageImage) Bytes() []byte {
	return p.Pix
}

func (p *PageImage) offset(x, y int) (pos int, bit byte, err error) {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return 0, 0, fmt.Errorf("%w: (%d,%d) not in %s", ErrOutOfRange, x, y, p.Rect)
	}
	x -= p.Rect.Min.X
	y -= p.Rect.Min.Y
	return y/8*p.Stride + x, byte(1) << uint(y&7), nil
}

// SetPixel turns the pixel at (x, y) on or off.
func (p *PageImage) SetPixel(x, y int, on bool) error {
	pos, bit, err := p.offset(x, y)
	if err != nil {
		return err
	}
	if on {
		p.Pix[pos] |= bit
	} else {
		p.Pix[pos] &^= bit
	}
	return nil
}

// Pixel reports whether the pixel at (x, y) is on.
func (p *PageImage) Pixel(x, y int) (bool, error) {
	pos, bit, err := p.offset(x, y)
	if err != nil {
		return false, err
	}
	return p.Pix[pos]&bit != 0, nil
}

// Toggle inverts the pixel at (x, y).
func (p *PageImage) Toggle(x, y int) error {
	pos, bit, err := p.offset(x, y)
	if err != nil {
		return err
	}
	p.Pix[pos] ^= bit
	return nil
}

func (p *PageImage) At(x, y int) color.Color {
	on, err := p.Pixel(x, y)
	if err != nil {
		return color.Transparent
	}
	return Mono{On: on}
}

// Set the pixel color at (x, y), out of bounds coordinates are ignored.
func (p *PageImage) Set(x, y int, c color.Color) {
	_ = p.SetPixel(x, y, monoModel(c).(Mono).On)
}

// Fill sets all pixels on or off.
func (p *PageImage) Fill(on bool) {
	var value byte
	if on {
		value = 0xff
	}
	for i := range p.Pix {
		p.Pix[i] = value
	}
}

// Clear turns all pixels off.
func (p *PageImage) Clear() {
	p.Fill(false)
}
