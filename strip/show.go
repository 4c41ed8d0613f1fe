package strip

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/coreman2200/ledstrip/led"
	"github.com/coreman2200/ledstrip/model"
)

var errNoDriver = errors.New("binder returned no driver")

// Begin binds one driver per channel, in channel order, with that channel's
// pin and correction. It may be called once, or again after Close. If a
// channel fails to bind, the drivers already bound are closed and the error
// is returned.
//
// Bound drivers transmit the active length at the time of Begin.
func (b *Buffer) Begin(binder led.Binder) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.drivers != nil {
		return ErrAlreadyBound
	}

	drivers := make([]led.Driver, 0, len(b.channels))
	for i, ch := range b.channels {
		d, err := binder.Bind(led.Binding{
			Channel:    i,
			Pin:        ch.Pin,
			Port:       ch.Port,
			Profile:    b.profile,
			Order:      b.order,
			Correction: ch.Correction,
			Length:     b.length,
		})
		if err == nil && d == nil {
			err = errNoDriver
		}
		if err != nil {
			for _, dd := range drivers {
				_ = dd.Close()
			}
			return fmt.Errorf("bind channel %d (pin %d): %w", i, ch.Pin, err)
		}
		// Output must be a pure function of the buffer.
		if dt, ok := d.(led.Ditherer); ok {
			dt.SetDither(false)
		}
		log.Debug().Int("channel", i).Int("pin", ch.Pin).Str("port", ch.Port).Msg("channel bound")
		drivers = append(drivers, d)
	}

	b.drivers = drivers
	b.boundLen = b.length
	b.frames = make([][]byte, len(drivers))
	for i := range b.frames {
		b.frames[i] = make([]byte, b.boundLen*3)
	}
	log.Info().Int("channels", len(drivers)).Int("length", b.boundLen).Str("order", b.order.String()).Msg("strips bound")
	return nil
}

// Bound reports how many channels Begin bound.
func (b *Buffer) Bound() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.drivers)
}

// calibrate copies the bound part of channel ch into its scratch frame with
// the channel correction applied.
func (b *Buffer) calibrate(ch int) []byte {
	src := b.pixels[ch][:b.boundLen*3]
	dst := b.frames[ch]
	k := b.channels[ch].Correction
	if k == model.NoCorrection {
		copy(dst, src)
		return dst
	}
	for off := 0; off < len(src); off += 3 {
		b.order.Put(dst[off:], k.Apply(b.order.Get(src[off:])))
	}
	return dst
}

// Show transmits every bound channel and blocks until all drivers are done.
// An error from any channel fails the whole commit.
func (b *Buffer) Show() error {
	// Hold the write lock so no pixel changes mid-frame and scratch frames are
	// not shared between concurrent Show calls.
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.drivers) == 0 {
		return ErrNotBound
	}

	var g errgroup.Group
	for i, d := range b.drivers {
		frame := b.calibrate(i)
		g.Go(func() error {
			if err := d.Write(frame); err != nil {
				log.Debug().Err(err).Int("channel", i).Msg("show failed")
				return fmt.Errorf("show channel %d: %w", i, err)
			}
			return nil
		})
	}
	return g.Wait()
}

// Close releases every bound driver. The buffer can not be shown afterwards.
func (b *Buffer) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	var first error
	for i, d := range b.drivers {
		if err := d.Close(); err != nil && first == nil {
			first = fmt.Errorf("close channel %d: %w", i, err)
		}
	}
	b.drivers = nil
	b.frames = nil
	return first
}
