package conn

import (
	"fmt"
	"io"
	"strconv"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
)

// I2C is a single device address on an I²C bus.
type I2C struct {
	bus  i2c.Bus
	conn conn.Conn
	addr uint16
}

// OpenI2C opens the numbered I²C bus, use a negative device to open the first available bus.
func OpenI2C(device int, addr uint16) (*I2C, error) {
	var (
		bus i2c.BusCloser
		err error
	)
	if device < 0 {
		bus, err = i2creg.Open("")
	} else {
		bus, err = i2creg.Open(strconv.FormatInt(int64(device), 10))
	}
	if err != nil {
		return nil, fmt.Errorf("conn: open I²C bus %d: %w", device, err)
	}
	return NewI2C(bus, addr), nil
}

// NewI2C addresses a device on an already opened bus.
func NewI2C(bus i2c.Bus, addr uint16) *I2C {
	return &I2C{
		bus:  bus,
		conn: &i2c.Dev{Bus: bus, Addr: addr},
		addr: addr,
	}
}

func (c *I2C) String() string {
	return fmt.Sprintf("I²C bus %s address %#02x", c.bus, c.addr)
}

// Close closes the bus if it was opened by this package.
func (c *I2C) Close() error {
	if closer, ok := c.bus.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// Write sends p as one bus transaction.
func (c *I2C) Write(p []byte) (int, error) {
	if err := c.conn.Tx(p, nil); err != nil {
		return 0, err
	}
	return len(p), nil
}
