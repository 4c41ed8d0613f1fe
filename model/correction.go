package model

// Correction is a per-strip calibration triple. Each factor scales its
// component on output: 255 leaves it unchanged, 0 turns it off.
type Correction struct {
	R uint8 `yaml:"r"`
	G uint8 `yaml:"g"`
	B uint8 `yaml:"b"`
}

// NoCorrection passes colors through untouched.
var NoCorrection = Correction{0xFF, 0xFF, 0xFF}

// Uniform applies the same factor to all three components.
func Uniform(k uint8) Correction {
	return Correction{k, k, k}
}

func scale8(v, k uint8) uint8 {
	return uint8((uint16(v) * (1 + uint16(k))) >> 8)
}

func (k Correction) Apply(c Color) Color {
	if k == NoCorrection {
		return c
	}
	return Color{
		R: scale8(c.R, k.R),
		G: scale8(c.G, k.G),
		B: scale8(c.B, k.B),
	}
}
