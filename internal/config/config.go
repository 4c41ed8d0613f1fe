package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/coreman2200/ledstrip/led"
	"github.com/coreman2200/ledstrip/model"
	"github.com/coreman2200/ledstrip/strip"
)

type Channel struct {
	Pin  int    `yaml:"pin"`            // BCM GPIO number
	Port string `yaml:"port,omitempty"` // SPI port, e.g. "/dev/spidev0.0"; overrides pin
	// Brightness is a uniform correction, 0..255. Unset means 255.
	Brightness *int              `yaml:"brightness,omitempty"`
	Correction *model.Correction `yaml:"correction,omitempty"` // per component, wins over brightness
}

type Config struct {
	Driver     string    `yaml:"driver"`      // "nrz" | "console" | "fake"
	Protocol   string    `yaml:"protocol"`    // WS2811 | WS2812 | SK6812
	ColorOrder string    `yaml:"color_order"` // GRB, RGB, ...
	Capacity   int       `yaml:"capacity"`    // max pixels per strip
	Length     int       `yaml:"length"`      // active pixels per strip
	Channels   []Channel `yaml:"channels"`
}

// Default is an eight strip board of WS2812 in GRB order.
func Default() *Config {
	pins := []int{14, 12, 13, 15, 5, 4, 0, 2}
	c := &Config{
		Driver:     "nrz",
		Protocol:   "WS2812",
		ColorOrder: "GRB",
		Capacity:   600,
		Length:     600,
		Channels:   make([]Channel, len(pins)),
	}
	for i, p := range pins {
		c.Channels[i] = Channel{Pin: p}
	}
	return c
}

func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := Default()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

func Save(path string, c *Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}

func (c *Channel) correction() model.Correction {
	switch {
	case c.Correction != nil:
		return *c.Correction
	case c.Brightness != nil:
		return model.Uniform(uint8(*c.Brightness))
	default:
		return model.NoCorrection
	}
}

func (c *Config) Validate() error {
	if len(c.Channels) == 0 {
		return fmt.Errorf("no channels configured")
	}
	if c.Capacity < 1 {
		return fmt.Errorf("capacity must be positive, got %d", c.Capacity)
	}
	if c.Length < 1 || c.Length > c.Capacity {
		return fmt.Errorf("length %d not in [1, %d]", c.Length, c.Capacity)
	}
	profile, err := led.ParseProfile(c.Protocol)
	if err != nil {
		return err
	}
	if _, err := model.ParseOrder(c.ColorOrder); err != nil {
		return err
	}
	for i, ch := range c.Channels {
		if ch.Brightness != nil && (*ch.Brightness < 0 || *ch.Brightness > 255) {
			return fmt.Errorf("channel %d: brightness %d not in [0, 255]", i, *ch.Brightness)
		}
		if ch.Port == "" && ch.Pin < 0 {
			return fmt.Errorf("channel %d: invalid pin %d", i, ch.Pin)
		}
		if ch.Port != "" && profile.Freq != led.SPIProfileFreq {
			return fmt.Errorf("channel %d: %s can not be driven over SPI port %s", i, profile.Name, ch.Port)
		}
	}
	return nil
}

// StripConfig converts c into the buffer configuration.
func (c *Config) StripConfig() (strip.Config, error) {
	if err := c.Validate(); err != nil {
		return strip.Config{}, err
	}
	p, _ := led.ParseProfile(c.Protocol)
	o, _ := model.ParseOrder(c.ColorOrder)
	sc := strip.Config{
		Channels: make([]strip.Channel, len(c.Channels)),
		Capacity: c.Capacity,
		Length:   c.Length,
		Order:    o,
		Profile:  p,
	}
	for i := range c.Channels {
		sc.Channels[i] = strip.Channel{
			Pin:        c.Channels[i].Pin,
			Port:       c.Channels[i].Port,
			Correction: c.Channels[i].correction(),
		}
	}
	return sc, nil
}
