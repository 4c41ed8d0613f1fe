package led

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/gpio/gpiostream"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/nrzled"
	"periph.io/x/host/v3"
)

// NRZ binds output lines to WS281x style strips through periph's nrzled
// driver, either bit-banged on a GPIO pin or encoded over an SPI port.
type NRZ struct{}

// NewNRZ initializes the periph host drivers.
func NewNRZ() (*NRZ, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("periph host init: %w", err)
	}
	return &NRZ{}, nil
}

func (n *NRZ) Bind(b Binding) (Driver, error) {
	if b.Port != "" {
		p, err := spireg.Open(b.Port)
		if err != nil {
			return nil, fmt.Errorf("channel %d: open SPI port %q: %w", b.Channel, b.Port, err)
		}
		d, err := NewSPIDriver(p, b)
		if err != nil {
			_ = p.Close()
			return nil, err
		}
		d.(*drawerDriver).port = p
		return d, nil
	}
	p, err := streamPin(b, gpioreg.ByName(fmt.Sprintf("GPIO%d", b.Pin)))
	if err != nil {
		return nil, err
	}
	return NewStreamDriver(p, b)
}

// streamPin checks that the host pin can bit-bang an NRZ stream.
func streamPin(b Binding, pin gpio.PinIO) (gpiostream.PinOut, error) {
	if pin == nil {
		return nil, fmt.Errorf("channel %d: no GPIO%d on this host", b.Channel, b.Pin)
	}
	sp, ok := pin.(gpiostream.PinOut)
	if !ok {
		return nil, fmt.Errorf("channel %d: %s can not stream", b.Channel, pin.Name())
	}
	return sp, nil
}

func nrzOpts(b Binding) *nrzled.Opts {
	return &nrzled.Opts{
		NumPixels: b.Length,
		Channels:  3,
		Freq:      b.Profile.Freq,
	}
}

// NewSPIDriver drives one strip from an SPI port.
func NewSPIDriver(p spi.Port, b Binding) (Driver, error) {
	if b.Length <= 0 {
		return nil, fmt.Errorf("channel %d: invalid LED count: %d", b.Channel, b.Length)
	}
	if b.Profile.Freq != SPIProfileFreq {
		return nil, fmt.Errorf("channel %d: %s can not be driven over SPI, only %s strips can", b.Channel, b.Profile, SPIProfileFreq)
	}
	o := nrzOpts(b)
	o.Freq = b.Profile.spiFreq()
	d, err := nrzled.NewSPI(p, o)
	if err != nil {
		return nil, fmt.Errorf("channel %d: nrzled over SPI: %w", b.Channel, err)
	}
	log.Debug().Int("channel", b.Channel).Str("port", b.Port).Str("freq", o.Freq.String()).Msg("nrzled SPI bound")
	return newNRZDriver(d, b), nil
}

// NewStreamDriver bit-bangs one strip on a GPIO pin.
func NewStreamDriver(p gpiostream.PinOut, b Binding) (Driver, error) {
	if b.Length <= 0 {
		return nil, fmt.Errorf("channel %d: invalid LED count: %d", b.Channel, b.Length)
	}
	d, err := nrzled.NewStream(p, nrzOpts(b))
	if err != nil {
		return nil, fmt.Errorf("channel %d: nrzled on %s: %w", b.Channel, p, err)
	}
	log.Debug().Int("channel", b.Channel).Str("pin", p.Name()).Str("freq", b.Profile.Freq.String()).Msg("nrzled stream bound")
	return newNRZDriver(d, b), nil
}

func newNRZDriver(d *nrzled.Dev, b Binding) Driver {
	// Start dark; nrzled does not clear on open.
	if err := d.Halt(); err != nil {
		log.Warn().Err(err).Int("channel", b.Channel).Msg("initial halt failed")
	}
	dd := newDrawerDriver(d, b.Order, b.Length)
	dd.toNRGB = nrzColor
	return dd
}
