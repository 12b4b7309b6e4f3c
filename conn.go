package ssd1309

import (
	"errors"
	"fmt"
	"io"
	"log"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/i2c"

	"github.com/BeatGlow/ssd1309/conn"
)

// Conn errors.
var (
	ErrDCPin = errors.New("ssd1309: data/command (DC) GPIO pin is invalid")
)

// Conn is the connection interface for communicating with hardware.
//
// Writes are blocking and ordered, a Conn never has more than one transfer in flight.
type Conn interface {
	String() string

	// Close the connection.
	Close() error

	// Command sends a single command byte.
	Command(byte) error

	// Data sends data bytes as one logical transfer.
	Data([]byte) error
}

// I2CConfig describes the I²C bus configuration.
type I2CConfig struct {
	// Device is the I²C device, use -1 to use the first available device.
	Device int

	// Addr is the I²C address.
	Addr uint16
}

// DefaultI2CConfig are the default configuration values.
var DefaultI2CConfig = I2CConfig{
	Device: -1,
	Addr:   0x3c,
}

type writeCloser interface {
	io.WriteCloser
	String() string
}

type i2cConn struct {
	bus writeCloser
	buf []byte
}

// OpenI2C opens an I²C bus, config may be nil to use [DefaultI2CConfig].
func OpenI2C(config *I2CConfig) (Conn, error) {
	if config == nil {
		config = new(I2CConfig)
		*config = DefaultI2CConfig
	}

	addr := config.Addr
	if addr == 0 {
		addr = DefaultI2CConfig.Addr
	}

	c, err := conn.OpenI2C(config.Device, addr)
	if err != nil {
		return nil, err
	}
	return &i2cConn{bus: c}, nil
}

// NewI2C uses an already opened I²C bus.
func NewI2C(bus i2c.Bus, addr uint16) Conn {
	return &i2cConn{bus: conn.NewI2C(bus, addr)}
}

func (c *i2cConn) String() string {
	return c.bus.String()
}

func (c *i2cConn) Close() error {
	return c.bus.Close()
}

func (c *i2cConn) Command(cmnd byte) (err error) {
	_, err = c.bus.Write([]byte{i2cControlCommand, cmnd})
	return
}

func (c *i2cConn) Data(data []byte) (err error) {
	c.buf = append(c.buf[:0], i2cControlData)
	c.buf = append(c.buf, data...)
	_, err = c.bus.Write(c.buf)
	return
}

// SPIConfig describes the SPI bus configuration.
type SPIConfig struct {
	Bus       int
	Device    int
	Mode      conn.SPIMode
	SpeedHz   uint32
	DataLow   bool
	BatchSize uint
	DC        gpio.PinOut
	CE        gpio.PinOut
}

// DefaultSPIConfig are the default configuration values.
var DefaultSPIConfig = SPIConfig{
	Bus:       0,
	Device:    0,
	Mode:      conn.SPIMode0,
	SpeedHz:   8_000_000,
	BatchSize: 4096,
}

// ValidSPISpeeds are common valid SPI bus speeds.
var ValidSPISpeeds = []uint32{
	500_000,
	1_000_000,
	2_000_000,
	4_000_000,
	8_000_000,
}

type spiConn struct {
	bus       writeCloser
	dc        gpio.PinOut
	dcLevel   gpio.Level
	dcValid   bool
	cs        gpio.PinOut
	dataLow   bool
	batchSize uint
}

// OpenSPI opens a 4-wire SPI bus, the DC pin is required.
func OpenSPI(config *SPIConfig) (Conn, error) {
	if config == nil {
		config = new(SPIConfig)
		*config = DefaultSPIConfig
	}

	if config.DC == nil || config.DC == gpio.INVALID {
		return nil, ErrDCPin
	}

	if config.SpeedHz == 0 {
		config.SpeedHz = DefaultSPIConfig.SpeedHz
	}
	if config.BatchSize == 0 {
		config.BatchSize = DefaultSPIConfig.BatchSize
	}

	var valid bool
	for _, speed := range ValidSPISpeeds {
		if valid = speed == config.SpeedHz; valid {
			break
		}
	}
	if !valid {
		return nil, fmt.Errorf("%w: SPI speed %dHz", ErrInvalidArgument, config.SpeedHz)
	}

	c, err := conn.OpenSPI(config.Bus, config.Device, config.SpeedHz, config.Mode)
	if err != nil {
		return nil, err
	}

	batchSize := config.BatchSize
	if limit := c.MaxTxSize(); limit > 0 && uint(limit) < batchSize {
		batchSize = uint(limit)
	}

	return newSPIConn(c, config.DC, config.CE, config.DataLow, batchSize), nil
}

func newSPIConn(bus writeCloser, dc, cs gpio.PinOut, dataLow bool, batchSize uint) *spiConn {
	return &spiConn{
		bus:       bus,
		dc:        dc,
		cs:        cs,
		dataLow:   dataLow,
		batchSize: batchSize,
	}
}

func (c *spiConn) String() string {
	return c.bus.String()
}

func (c *spiConn) Close() error {
	return c.bus.Close()
}

func (c *spiConn) updateDC(level gpio.Level) error {
	if !c.dcValid || c.dcLevel != level {
		if err := c.dc.Out(level); err != nil {
			return err
		}
		c.dcLevel = level
		c.dcValid = true
	}
	return nil
}

func (c *spiConn) updateCS(level gpio.Level) error {
	if c.cs == nil {
		return nil
	}
	return c.cs.Out(level)
}

func (c *spiConn) Command(cmnd byte) (err error) {
	if err = c.updateDC(gpio.Level(c.dataLow)); err != nil {
		return
	}
	if err = c.updateCS(gpio.Low); err != nil {
		return
	}
	if _, err = c.bus.Write([]byte{cmnd}); err != nil {
		return
	}
	return c.updateCS(gpio.High)
}

func (c *spiConn) Data(data []byte) (err error) {
	if len(data) == 0 {
		return
	}
	if err = c.updateDC(gpio.Level(!c.dataLow)); err != nil {
		return
	}
	if err = c.updateCS(gpio.Low); err != nil {
		return
	}
	if err = c.writeChunked(data); err != nil {
		return
	}
	return c.updateCS(gpio.High)
}

func (c *spiConn) writeChunked(data []byte) (err error) {
	if c.batchSize == 0 || len(data) <= int(c.batchSize) {
		_, err = c.bus.Write(data)
		return
	}

	if debug {
		log.Printf("ssd1309: write %d bytes of data in %d chunks", len(data), (len(data)+int(c.batchSize)-1)/int(c.batchSize))
	}
	for buffer := data; len(buffer) > 0; {
		n := len(buffer)
		if n > int(c.batchSize) {
			n = int(c.batchSize)
		}
		if _, err = c.bus.Write(buffer[:n]); err != nil {
			return
		}
		buffer = buffer[n:]
	}
	return
}
