// Command ssd1309-test draws a test pattern on an SSD1309 OLED display.
package main

import (
	"flag"
	"fmt"
	"image"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"github.com/BeatGlow/ssd1309"
	"github.com/BeatGlow/ssd1309/conn"
	"github.com/BeatGlow/ssd1309/pixel"
)

var (
	configFile    = flag.String("config", "", "configuration `filename`")
	widthFlag     = flag.Int("width", 0, "Display width")
	heightFlag    = flag.Int("height", 0, "Display height")
	i2cDeviceFlag = flag.Int("i2c-dev", ssd1309.DefaultI2CConfig.Device, "I²C device number (default: use first available)")
	i2cAddrFlag   = flag.Uint("i2c-addr", uint(ssd1309.DefaultI2CConfig.Addr), "I²C device address")
	spiBusFlag    = flag.Int("spi-bus", 0, "SPI bus")
	spiDeviceFlag = flag.Int("spi-dev", 0, "SPI device")
	resetPinFlag  = flag.String("reset", "", "Reset GPIO pin")
	dcPinFlag     = flag.String("dc", "GPIO24", "Data/Command GPIO pin (DC)")
	cePinFlag     = flag.String("ce", "", "Chip enable GPIO pin")
	contrastFlag  = flag.Int("contrast", -1, "Contrast level 0-255 (default: leave at maximum)")
	invertFlag    = flag.Bool("invert", false, "Invert the display")
	fontFlag      = flag.String("font", "", "TrueType font `filename` (default: built-in 7x13 font)")
	textFlag      = flag.String("text", "", "Text to render")
)

func main() {
	flag.Parse()

	cfg, err := parseConfig(*configFile)
	if err != nil {
		fatal(err)
	}
	applyFlags(cfg)
	if flag.NArg() > 0 {
		cfg.Bus = flag.Arg(0)
	}

	if _, err = host.Init(); err != nil {
		fatal(err)
	}

	c, err := openConn(cfg)
	if err != nil {
		fatal(err)
	}
	log.Printf("using connection: %s", c)

	output, err := ssd1309.New(c, &ssd1309.Config{
		Width:       cfg.Width,
		Height:      cfg.Height,
		ExternalVCC: cfg.ExternalVCC,
		Reset:       pinByName(cfg.Reset),
	})
	if err != nil {
		_ = c.Close()
		fatal(err)
	}
	defer output.Close()
	log.Printf("using driver: %s", output)

	if cfg.Contrast != nil {
		if err = output.SetContrast(*cfg.Contrast); err != nil {
			fatal(err)
		}
	}
	if err = output.Invert(cfg.Invert); err != nil {
		fatal(err)
	}

	face, err := loadFace(cfg)
	if err != nil {
		fatal(err)
	}

	// Draw box around edge
	r := output.Bounds()
	for x := 0; x < r.Max.X; x++ {
		output.Set(x, 0, pixel.On)
		output.Set(x, r.Max.Y-1, pixel.On)
	}
	for y := 0; y < r.Max.Y; y++ {
		output.Set(0, y, pixel.On)
		output.Set(r.Max.X-1, y, pixel.On)
	}

	d := &font.Drawer{
		Dst:  output,
		Src:  image.NewUniform(pixel.On),
		Face: face,
		Dot:  fixed.P(3, 2+face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(cfg.Text)
	if err = output.Show(); err != nil {
		fatal(err)
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	var (
		offset int
		ticker = time.NewTicker(50 * time.Millisecond)
		y      = r.Max.Y - 3
	)
	defer ticker.Stop()

	log.Println("hit control-c to stop...")
	for {
		select {
		case s := <-sig:
			log.Printf("caught signal %v, switching display off", s)
			return
		case <-ticker.C:
		}

		// Scan a marker along the bottom edge
		for x := 2; x < r.Max.X-2; x++ {
			_ = output.SetPixel(x, y, (x+offset)%8 < 2)
		}
		if err = output.Show(); err != nil {
			fatal(err)
		}
		offset++
	}
}

// applyFlags overrides config values with explicitly set flags.
func applyFlags(cfg *Config) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "width":
			cfg.Width = *widthFlag
		case "height":
			cfg.Height = *heightFlag
		case "i2c-dev":
			cfg.I2C.Device = *i2cDeviceFlag
		case "i2c-addr":
			cfg.I2C.Addr = uint16(*i2cAddrFlag)
		case "spi-bus":
			cfg.SPI.Bus = *spiBusFlag
		case "spi-dev":
			cfg.SPI.Device = *spiDeviceFlag
		case "reset":
			cfg.Reset = *resetPinFlag
		case "dc":
			cfg.SPI.DC = *dcPinFlag
		case "ce":
			cfg.SPI.CE = *cePinFlag
		case "contrast":
			if *contrastFlag >= 0 {
				cfg.Contrast = contrastFlag
			}
		case "invert":
			cfg.Invert = *invertFlag
		case "font":
			cfg.Font = *fontFlag
		case "text":
			cfg.Text = *textFlag
		}
	})
}

func openConn(cfg *Config) (ssd1309.Conn, error) {
	switch cfg.Bus {
	case "i2c":
		return ssd1309.OpenI2C(&ssd1309.I2CConfig{
			Device: cfg.I2C.Device,
			Addr:   cfg.I2C.Addr,
		})
	case "spi":
		return ssd1309.OpenSPI(&ssd1309.SPIConfig{
			Bus:     cfg.SPI.Bus,
			Device:  cfg.SPI.Device,
			Mode:    conn.SPIMode0,
			SpeedHz: cfg.SPI.SpeedHz,
			DC:      pinByName(cfg.SPI.DC),
			CE:      pinByName(cfg.SPI.CE),
		})
	default:
		return nil, fmt.Errorf("unsupported bus type %q", cfg.Bus)
	}
}

func pinByName(name string) gpio.PinOut {
	if name == "" {
		return nil
	}
	if p := gpioreg.ByName(name); p != nil {
		return p
	}
	log.Printf("GPIO pin %q not found, ignoring", name)
	return nil
}

func loadFace(cfg *Config) (font.Face, error) {
	if cfg.Font == "" {
		return basicfont.Face7x13, nil
	}
	raw, err := os.ReadFile(cfg.Font)
	if err != nil {
		return nil, err
	}
	f, err := freetype.ParseFont(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing font %s: %w", cfg.Font, err)
	}
	return truetype.NewFace(f, &truetype.Options{
		Size:    cfg.FontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "fatal: "+err.Error())
	os.Exit(1)
}
