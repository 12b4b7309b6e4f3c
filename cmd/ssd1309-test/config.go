package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Config is the bring-up configuration, flags override file values.
type Config struct {
	Bus         string `yaml:"bus"` // i2c or spi
	Width       int    `yaml:"width"`
	Height      int    `yaml:"height"`
	ExternalVCC bool   `yaml:"external_vcc"`
	Contrast    *int   `yaml:"contrast"`
	Invert      bool   `yaml:"invert"`
	Reset       string `yaml:"reset"`

	I2C struct {
		Device int    `yaml:"device"`
		Addr   uint16 `yaml:"addr"`
	} `yaml:"i2c"`

	SPI struct {
		Bus     int    `yaml:"bus"`
		Device  int    `yaml:"device"`
		SpeedHz uint32 `yaml:"speed_hz"`
		DC      string `yaml:"dc"`
		CE      string `yaml:"ce"`
	} `yaml:"spi"`

	Font     string  `yaml:"font"`
	FontSize float64 `yaml:"font_size"`
	Text     string  `yaml:"text"`
}

func defaultConfig() *Config {
	cfg := &Config{
		Bus:      "i2c",
		Width:    128,
		Height:   64,
		FontSize: 12,
		Text:     "SSD1309",
	}
	cfg.I2C.Device = -1
	cfg.I2C.Addr = 0x3c
	cfg.SPI.SpeedHz = 8_000_000
	cfg.SPI.DC = "GPIO24"
	return cfg
}

func parseConfig(filename string) (*Config, error) {
	cfg := defaultConfig()
	if filename == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.UnmarshalStrict(raw, cfg); err != nil {
		return nil, fmt.Errorf("parsing config from %s: %w", filename, err)
	}

	switch cfg.Bus {
	case "i2c", "spi":
	default:
		return nil, fmt.Errorf("config %s: unsupported bus type %q", filename, cfg.Bus)
	}
	if cfg.Contrast != nil && (*cfg.Contrast < 0 || *cfg.Contrast > 255) {
		return nil, fmt.Errorf("config %s: contrast %d not in 0-255", filename, *cfg.Contrast)
	}
	return cfg, nil
}
