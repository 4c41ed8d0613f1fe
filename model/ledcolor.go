package model

import (
	"fmt"
	"image/color"
	"strconv"
)

const (
	RED_OFFSET   uint8 = 0x10
	GREEN_OFFSET uint8 = 0x08
	BLUE_OFFSET  uint8 = 0x0
)

// Color is one pixel value. Every way of setting a pixel ends up here.
type Color struct {
	R, G, B uint8
}

var (
	Black = Color{}
	White = Color{0xFF, 0xFF, 0xFF}
	Red   = Color{R: 0xFF}
	Green = Color{G: 0xFF}
	Blue  = Color{B: 0xFF}
)

// Pack returns r, g and b as a 24-bit 0xRRGGBB value.
func Pack(r, g, b uint8) uint32 {
	return uint32(r)<<RED_OFFSET | uint32(g)<<GREEN_OFFSET | uint32(b)<<BLUE_OFFSET
}

// PackInts is Pack for callers holding wider integers. Each component is masked
// to its low 8 bits so it cannot spill into its neighbour.
func PackInts(r, g, b int) uint32 {
	return Pack(uint8(r&0xFF), uint8(g&0xFF), uint8(b&0xFF))
}

func getcolor(c uint32, off uint8) uint8 {
	var mask uint32 = 0xFF << off
	return uint8((c & mask) >> off)
}

// Unpack splits a 0xRRGGBB value. Bits above the low 24 are ignored.
func Unpack(c uint32) Color {
	return Color{
		R: getcolor(c, RED_OFFSET),
		G: getcolor(c, GREEN_OFFSET),
		B: getcolor(c, BLUE_OFFSET),
	}
}

// ParseHex accepts "RRGGBB", "#RRGGBB" or "0xRRGGBB".
func ParseHex(s string) (Color, error) {
	switch {
	case len(s) > 0 && s[0] == '#':
		s = s[1:]
	case len(s) > 1 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X'):
		s = s[2:]
	}
	if len(s) != 6 {
		return Black, fmt.Errorf("invalid color %q: want RRGGBB", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return Black, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return Unpack(uint32(v)), nil
}

func (c Color) Packed() uint32 {
	return Pack(c.R, c.G, c.B)
}

func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

func (c Color) String() string {
	return fmt.Sprintf("%02x%02x%02x", c.R, c.G, c.B)
}
