package conn

import (
	"testing"

	"periph.io/x/conn/v3/i2c/i2ctest"
)

func TestI2CWrite(t *testing.T) {
	bus := &i2ctest.Playback{
		Ops: []i2ctest.IO{
			{Addr: 0x3c, W: []byte{0x80, 0xae}},
			{Addr: 0x3c, W: []byte{0x40, 0x01, 0x02, 0x03}},
		},
		DontPanic: true,
	}
	c := NewI2C(bus, 0x3c)

	if n, err := c.Write([]byte{0x80, 0xae}); err != nil || n != 2 {
		t.Fatalf("Write returned %d, %v", n, err)
	}
	if n, err := c.Write([]byte{0x40, 0x01, 0x02, 0x03}); err != nil || n != 4 {
		t.Fatalf("Write returned %d, %v", n, err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestI2CWriteError(t *testing.T) {
	bus := &i2ctest.Playback{DontPanic: true}
	c := NewI2C(bus, 0x3d)
	if n, err := c.Write([]byte{0x80, 0xaf}); err == nil {
		t.Fatal("expected an error for an unexpected transaction")
	} else if n != 0 {
		t.Errorf("expected 0 bytes written on error, got %d", n)
	}
}
