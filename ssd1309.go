package ssd1309

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log"
	"time"

	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio"

	"github.com/BeatGlow/ssd1309/pixel"
)

const (
	ssd1309DefaultWidth  = 128
	ssd1309DefaultHeight = 64
	ssd1309ResetDelay    = 10 * time.Millisecond
)

// Config is the display configuration.
type Config struct {
	// Width of the display in pixels, defaults to 128.
	Width int

	// Height of the display in pixels, defaults to 64.
	Height int

	// ExternalVCC is set for panels with an external high voltage supply. The init sequence
	// is the same for both supplies.
	ExternalVCC bool

	// Reset pin (optional).
	Reset gpio.PinOut
}

// DefaultConfig are the default configuration values.
var DefaultConfig = Config{
	Width:  ssd1309DefaultWidth,
	Height: ssd1309DefaultHeight,
}

// State of the controller protocol.
type State uint8

const (
	Uninitialized State = iota
	Initializing
	Active
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Initializing:
		return "initializing"
	case Active:
		return "active"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// Dev is a handle to an SSD1309 controller.
//
// Dev is not safe for concurrent use: pixel updates must not race with a transfer.
type Dev struct {
	c           Conn
	buf         *pixel.PageImage
	geometry    Geometry
	externalVCC bool
	reset       gpio.PinOut

	// Derived from the geometry at construction.
	comPins  byte
	colStart byte
	colEnd   byte

	state    State
	on       bool
	contrast byte
	inverted bool
}

// New returns an initialized display. The init sequence leaves the panel switched on with
// all pixels off. Config may be nil to use [DefaultConfig].
func New(c Conn, config *Config) (*Dev, error) {
	cfg := DefaultConfig
	if config != nil {
		cfg = *config
	}
	if cfg.Width == 0 {
		cfg.Width = ssd1309DefaultWidth
	}
	if cfg.Height == 0 {
		cfg.Height = ssd1309DefaultHeight
	}

	g, err := NewGeometry(cfg.Width, cfg.Height)
	if err != nil {
		return nil, err
	}

	d := &Dev{
		c:           c,
		buf:         pixel.NewPageImage(g.Width, g.Height),
		geometry:    g,
		externalVCC: cfg.ExternalVCC,
		reset:       cfg.Reset,
		comPins:     g.ComPins(),
	}
	d.colStart, d.colEnd = g.ColumnWindow()

	if err = d.Init(); err != nil {
		log.Printf("ssd1309: %s on %s failed to initialize, display is unconfigured: %v", d, c, err)
		return nil, err
	}
	return d, nil
}

func (d *Dev) String() string {
	if d.externalVCC {
		return fmt.Sprintf("SSD1309 OLED %s (external VCC)", d.geometry)
	}
	return fmt.Sprintf("SSD1309 OLED %s", d.geometry)
}

// Init runs the power-up sequence and clears the display. [New] already does this, call it
// again only to recover after a transport error.
func (d *Dev) Init() (err error) {
	d.state = Initializing
	d.on = false

	if d.reset != nil {
		if err = d.hardwareReset(); err != nil {
			return
		}
	}

	if err = d.command(
		setDisplayOff,
		setDisplayClockDiv, clockDivDefault,
		setMultiplexRatio, byte(d.geometry.Height-1),
		setDisplayOffset, 0x00,
		setStartLine|0x00, //nolint:staticcheck
		setChargePump, chargePumpEnable,
		setMemoryMode, memoryModeHoriz,
		setSegmentRemap,
		setComScanDec,
		setComPins, d.comPins,
		setContrast, contrastMax,
		setPrecharge, prechargeDefault,
		setVComDeselect, vcomDeselect,
		setDisplayAllOnResume,
		setNormalDisplay,
		setDisplayOn,
	); err != nil {
		return
	}
	d.contrast = contrastMax
	d.inverted = false
	d.on = true

	d.buf.Clear()
	if err = d.Show(); err != nil {
		return
	}

	d.state = Active
	return nil
}

func (d *Dev) hardwareReset() error {
	for _, level := range []gpio.Level{gpio.High, gpio.Low, gpio.High} {
		if err := d.reset.Out(level); err != nil {
			return fmt.Errorf("ssd1309: reset pin %s: %w", d.reset, err)
		}
		time.Sleep(ssd1309ResetDelay)
	}
	return nil
}

// command sends each byte as a separate command write, parameters included.
func (d *Dev) command(cmnds ...byte) error {
	for _, cmnd := range cmnds {
		if debug {
			log.Printf("ssd1309: command %#02x", cmnd)
		}
		if err := d.c.Command(cmnd); err != nil {
			return &TransportError{Op: fmt.Sprintf("command %#02x", cmnd), Err: err}
		}
	}
	return nil
}

func (d *Dev) data(data []byte) error {
	if debug {
		log.Printf("ssd1309: data %d bytes", len(data))
	}
	if err := d.c.Data(data); err != nil {
		return &TransportError{Op: fmt.Sprintf("data %d bytes", len(data)), Err: err}
	}
	return nil
}

// Show transfers the whole frame to display RAM.
func (d *Dev) Show() error {
	if err := d.command(
		setColumnAddr, d.colStart, d.colEnd,
		setPageAddr, 0x00, byte(d.geometry.Pages-1),
	); err != nil {
		return err
	}
	return d.data(d.buf.Pix)
}

// PowerOn switches the panel on.
func (d *Dev) PowerOn() error {
	if err := d.command(setDisplayOn); err != nil {
		return err
	}
	d.on = true
	return nil
}

// PowerOff switches the panel off (sleep mode), display RAM and configuration are retained.
func (d *Dev) PowerOff() error {
	if err := d.command(setDisplayOff); err != nil {
		return err
	}
	d.on = false
	return nil
}

// SetContrast adjusts the contrast level (0-255).
func (d *Dev) SetContrast(level int) error {
	if level < 0 || level > 0xff {
		return fmt.Errorf("%w: contrast %d not in 0-255", ErrInvalidArgument, level)
	}
	if err := d.command(setContrast, byte(level)); err != nil {
		return err
	}
	d.contrast = byte(level)
	return nil
}

// Invert switches between normal and inverted output.
func (d *Dev) Invert(invert bool) error {
	cmnd := byte(setNormalDisplay)
	if invert {
		cmnd |= 0x01 // setInvertDisplay
	}
	if err := d.command(cmnd); err != nil {
		return err
	}
	d.inverted = invert
	return nil
}

// Halt switches the panel off. It is the only teardown the controller knows.
func (d *Dev) Halt() error {
	return d.PowerOff()
}

// Close switches the panel off and closes the connection.
func (d *Dev) Close() error {
	if err := d.PowerOff(); err != nil {
		_ = d.c.Close()
		return err
	}
	return d.c.Close()
}

// State returns the protocol state.
func (d *Dev) State() State { return d.state }

// Powered reports whether the panel was last switched on.
func (d *Dev) Powered() bool { return d.on }

// Contrast returns the last contrast level sent.
func (d *Dev) Contrast() int { return int(d.contrast) }

// Inverted reports whether the output is inverted.
func (d *Dev) Inverted() bool { return d.inverted }

// Geometry returns the panel size.
func (d *Dev) Geometry() Geometry { return d.geometry }

// SetPixel turns the pixel at (x, y) on or off in the frame buffer.
func (d *Dev) SetPixel(x, y int, on bool) error {
	return d.buf.SetPixel(x, y, on)
}

// Pixel reports whether the pixel at (x, y) is on in the frame buffer.
func (d *Dev) Pixel(x, y int) (bool, error) {
	return d.buf.Pixel(x, y)
}

// Toggle inverts the pixel at (x, y) in the frame buffer.
func (d *Dev) Toggle(x, y int) error {
	return d.buf.Toggle(x, y)
}

// Fill sets all pixels in the frame buffer.
func (d *Dev) Fill(on bool) {
	d.buf.Fill(on)
}

// Clear turns all pixels in the frame buffer off.
func (d *Dev) Clear() {
	d.buf.Clear()
}

// Bytes returns the frame buffer, one byte per 8 vertical pixels.
func (d *Dev) Bytes() []byte {
	return d.buf.Bytes()
}

func (d *Dev) At(x, y int) color.Color {
	return d.buf.At(x, y)
}

func (d *Dev) Set(x, y int, c color.Color) {
	d.buf.Set(x, y, c)
}

func (d *Dev) Bounds() image.Rectangle {
	return d.buf.Bounds()
}

func (d *Dev) ColorModel() color.Model {
	return pixel.MonoModel
}

// Write replaces the frame buffer with a full frame in page layout and shows it.
func (d *Dev) Write(p []byte) (int, error) {
	if len(p) != len(d.buf.Pix) {
		return 0, fmt.Errorf("%w: frame is %d bytes, expected %d", ErrInvalidArgument, len(p), len(d.buf.Pix))
	}
	copy(d.buf.Pix, p)
	if err := d.Show(); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Draw copies src into the frame buffer and shows it.
func (d *Dev) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	draw.Draw(d.buf, r, src, sp, draw.Src)
	return d.Show()
}

// Interface checks.
var (
	_ Display        = (*Dev)(nil)
	_ display.Drawer = (*Dev)(nil)
)
