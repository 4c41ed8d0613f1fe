package led

import (
	"fmt"
	"strings"

	"periph.io/x/conn/v3/physic"
)

// Profile is an output protocol timing.
type Profile struct {
	Name string
	Freq physic.Frequency // data bit rate on the wire
}

var (
	WS2811 = Profile{Name: "WS2811", Freq: 400 * physic.KiloHertz}
	WS2812 = Profile{Name: "WS2812", Freq: 800 * physic.KiloHertz}
	SK6812 = Profile{Name: "SK6812", Freq: 800 * physic.KiloHertz}
)

var profiles = map[string]Profile{
	"WS2811":  WS2811,
	"WS2812":  WS2812,
	"WS2812B": WS2812,
	"SK6812":  SK6812,
}

func ParseProfile(s string) (Profile, error) {
	p, ok := profiles[strings.ToUpper(strings.TrimSpace(s))]
	if !ok {
		return Profile{}, fmt.Errorf("unknown LED protocol %q", s)
	}
	return p, nil
}

func (p Profile) String() string {
	return fmt.Sprintf("%s@%s", p.Name, p.Freq)
}

// SPIProfileFreq is the only data rate nrzled can encode over SPI.
const SPIProfileFreq = 800 * physic.KiloHertz

// spiFreq is the SPI clock that encodes one LED bit as three SPI bits, with
// some headroom. nrzled accepts nothing else.
func (p Profile) spiFreq() physic.Frequency {
	return SPIProfileFreq*3 + 100*physic.KiloHertz
}
