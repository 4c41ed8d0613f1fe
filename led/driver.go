// Package led is the boundary between a pixel buffer and the hardware that
// clocks pixels out on a data line.
package led

import (
	"errors"

	"github.com/coreman2200/ledstrip/model"
)

// Driver abstracts an LED output line.
type Driver interface {
	// Write transmits one frame. wire holds 3 bytes per pixel, already in the
	// binding's wire order and already calibrated.
	Write(wire []byte) error
	// Close releases resources.
	Close() error
}

// Ditherer is implemented by drivers that can apply temporal dithering.
type Ditherer interface {
	SetDither(on bool)
}

// Binding describes one physical output line.
type Binding struct {
	Channel    int
	Pin        int
	Port       string // SPI port name; empty means bit-bang Pin
	Profile    Profile
	Order      model.Order
	Correction model.Correction
	Length     int // pixels transmitted per frame
}

// Binder creates the driver for one output line.
type Binder interface {
	Bind(b Binding) (Driver, error)
}

// BinderFunc adapts a function to a Binder.
type BinderFunc func(b Binding) (Driver, error)

func (f BinderFunc) Bind(b Binding) (Driver, error) { return f(b) }

var errClosed = errors.New("driver closed")
