// Package ssd1309 drives SSD1309 (and SSD1306 compatible) monochrome OLED dot-matrix
// controllers over I²C or 4-wire SPI.
//
// The driver keeps a full frame in memory in the controller's page layout, every call to
// [Dev.Show] transfers the whole frame.
package ssd1309

import (
	"errors"
	"fmt"
	"image/draw"
	"os"
)

var debug bool

func init() {
	debug = os.Getenv("SSD1309_DEBUG") != ""
}

// Errors
var (
	ErrInvalidArgument = errors.New("ssd1309: invalid argument")
	ErrTransport       = errors.New("ssd1309: transport error")
)

// TransportError is returned when a bus write fails. The controller state kept by the
// driver may no longer match the device.
type TransportError struct {
	// Op is the bus operation that failed.
	Op string

	// Err is the error returned by the bus.
	Err error
}

func (err *TransportError) Error() string {
	return fmt.Sprintf("ssd1309: %s: %v", err.Op, err.Err)
}

func (err *TransportError) Unwrap() error {
	return err.Err
}

func (err *TransportError) Is(target error) bool {
	return target == ErrTransport
}

// Display is a monochrome OLED display.
type Display interface {
	draw.Image

	// Close the display driver.
	Close() error

	// Clear the display buffer.
	Clear()

	// Show transfers the display buffer to the display.
	Show() error

	// PowerOn switches the panel on.
	PowerOn() error

	// PowerOff switches the panel off, display RAM is retained.
	PowerOff() error

	// SetContrast adjusts the contrast level (0-255).
	SetContrast(level int) error

	// Invert toggles inverted (white on black vs black on white) output.
	Invert(bool) error
}

// Geometry is the panel size.
type Geometry struct {
	// Width in pixels.
	Width int

	// Height in pixels, always a multiple of 8.
	Height int

	// Pages is the number of 8 pixel tall bands.
	Pages int
}

// NewGeometry validates the panel size.
func NewGeometry(width, height int) (Geometry, error) {
	if width <= 0 || width > 256 {
		return Geometry{}, fmt.Errorf("%w: width %d not in 1-256", ErrInvalidArgument, width)
	}
	if height <= 0 || height > 256 || height%8 != 0 {
		return Geometry{}, fmt.Errorf("%w: height %d is not a multiple of 8 in 8-256", ErrInvalidArgument, height)
	}
	return Geometry{
		Width:  width,
		Height: height,
		Pages:  height / 8,
	}, nil
}

func (g Geometry) String() string {
	return fmt.Sprintf("%dx%d", g.Width, g.Height)
}

// BufferSize is the frame size in bytes.
func (g Geometry) BufferSize() int {
	return g.Pages * g.Width
}

// ComPins is the COM pins hardware configuration parameter.
func (g Geometry) ComPins() byte {
	if (g.Height == 16 || g.Height == 32) && g.Width != 64 {
		return 0x02 // sequential
	}
	return 0x12 // alternative
}

// ColumnOffset is the first RAM column of the visible panel. 64 pixel wide panels are
// centered in the 128 column RAM.
func (g Geometry) ColumnOffset() int {
	if g.Width == 64 {
		return 32
	}
	return 0
}

// ColumnWindow is the first and last RAM column addressed by a frame transfer.
func (g Geometry) ColumnWindow() (start, end byte) {
	offset := g.ColumnOffset()
	return byte(offset), byte(offset + g.Width - 1)
}
