// Package fake provides in-memory LED drivers for tests and dry runs.
package fake

import (
	"fmt"
	"sync"

	"github.com/coreman2200/ledstrip/led"
	"github.com/coreman2200/ledstrip/model"
)

// Driver records every frame written to it.
type Driver struct {
	mu      sync.Mutex
	Binding led.Binding
	Frames  [][]byte
	Dither  bool
	Closed  bool
	Err     error // returned by Write when set
	Verbose bool  // print a compact summary of each frame
}

func (d *Driver) Write(wire []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.Err != nil {
		return d.Err
	}
	d.Frames = append(d.Frames, append([]byte(nil), wire...))
	if d.Verbose {
		// compute simple average for log
		var r, g, b int
		n := len(wire) / 3
		for i := 0; i < n; i++ {
			c := d.Binding.Order.Get(wire[i*3:])
			r += int(c.R)
			g += int(c.G)
			b += int(c.B)
		}
		if n == 0 {
			n = 1
		}
		fmt.Printf("[ch %d frame %04d] avg=(%d,%d,%d)\n", d.Binding.Channel, len(d.Frames), r/n, g/n, b/n)
	}
	return nil
}

func (d *Driver) SetDither(on bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Dither = on
}

func (d *Driver) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Closed = true
	return nil
}

// Last returns the most recent frame decoded to colors, or nil.
func (d *Driver) Last() []model.Color {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.Frames) == 0 {
		return nil
	}
	f := d.Frames[len(d.Frames)-1]
	out := make([]model.Color, len(f)/3)
	for i := range out {
		out[i] = d.Binding.Order.Get(f[i*3:])
	}
	return out
}

// Binder hands out Drivers and remembers them by channel.
type Binder struct {
	mu      sync.Mutex
	Drivers []*Driver
	// FailAt makes Bind fail for that channel when >= 0.
	FailAt  int
	Verbose bool
}

func NewBinder() *Binder {
	return &Binder{FailAt: -1}
}

func (b *Binder) Bind(bb led.Binding) (led.Driver, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.FailAt >= 0 && bb.Channel == b.FailAt {
		return nil, fmt.Errorf("fake bind failure on channel %d", bb.Channel)
	}
	// start dithered so callers can see it being switched off
	d := &Driver{Binding: bb, Dither: true, Verbose: b.Verbose}
	b.Drivers = append(b.Drivers, d)
	return d, nil
}

// Pins lists the pins bound so far, in bind order.
func (b *Binder) Pins() []int {
	b.mu.Lock()
	defer b.mu.Unlock()
	pins := make([]int, len(b.Drivers))
	for i, d := range b.Drivers {
		pins[i] = d.Binding.Pin
	}
	return pins
}
