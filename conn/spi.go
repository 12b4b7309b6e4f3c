package conn

import (
	"fmt"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
)

// SPIMode is the clock polarity and phase.
type SPIMode = spi.Mode

const (
	SPIMode0 = spi.Mode0
	SPIMode1 = spi.Mode1
	SPIMode2 = spi.Mode2
	SPIMode3 = spi.Mode3
)

// SPI is a connected SPI device.
type SPI struct {
	port  spi.PortCloser
	conn  spi.Conn
	speed physic.Frequency
	mode  SPIMode
}

// OpenSPI opens the numbered spi bus with the numbered device. The device often corresponds
// to the CS pin for that bus.
func OpenSPI(bus, device int, speedHz uint32, mode SPIMode) (*SPI, error) {
	port, err := spireg.Open(fmt.Sprintf("SPI%d.%d", bus, device))
	if err != nil {
		return nil, fmt.Errorf("conn: open SPI%d.%d: %w", bus, device, err)
	}

	speed := physic.Frequency(speedHz) * physic.Hertz
	c, err := port.Connect(speed, mode, 8)
	if err != nil {
		_ = port.Close()
		return nil, fmt.Errorf("conn: SPI connect at %s: %w", speed, err)
	}

	return &SPI{
		port:  port,
		conn:  c,
		speed: speed,
		mode:  mode,
	}, nil
}

func (c *SPI) Close() error {
	return c.port.Close()
}

func (c *SPI) String() string {
	return fmt.Sprintf("SPI %s mode=%d speed=%s", c.port, c.mode, c.speed)
}

// MaxTxSize is the largest single transfer the driver accepts, 0 means unknown.
func (c *SPI) MaxTxSize() int {
	if l, ok := c.conn.(conn.Limits); ok {
		return l.MaxTxSize()
	}
	return 0
}

// Write sends p as one transfer.
func (c *SPI) Write(p []byte) (int, error) {
	if err := c.conn.Tx(p, nil); err != nil {
		return 0, err
	}
	return len(p), nil
}
