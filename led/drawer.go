package led

import (
	"fmt"
	"image"
	"io"
	"sync"

	"github.com/coreman2200/ledstrip/model"
	"periph.io/x/conn/v3/display"
)

// drawerDriver pushes wire frames to a periph display.Drawer as a one row
// image.
type drawerDriver struct {
	mu     sync.Mutex
	drawer display.Drawer
	port   io.Closer // optional, closed after the drawer is halted
	order  model.Order
	toNRGB func(wire []byte, o model.Order) (r, g, b uint8)
	before func()
	after  func()
	img    *image.NRGBA
}

func newDrawerDriver(d display.Drawer, o model.Order, length int) *drawerDriver {
	return &drawerDriver{
		drawer: d,
		order:  o,
		toNRGB: trueColor,
		img:    image.NewNRGBA(image.Rect(0, 0, length, 1)),
	}
}

// trueColor decodes the wire slot back to the color it represents.
func trueColor(wire []byte, o model.Order) (r, g, b uint8) {
	c := o.Get(wire)
	return c.R, c.G, c.B
}

// nrzColor feeds nrzled, which sends every image pixel as G, R, B. Handing it
// (wire[1], wire[0], wire[2]) makes the line carry the wire bytes as stored.
func nrzColor(wire []byte, _ model.Order) (r, g, b uint8) {
	return wire[1], wire[0], wire[2]
}

func (d *drawerDriver) frame(wire []byte) (*image.NRGBA, error) {
	n := d.img.Rect.Dx()
	if len(wire) != n*3 {
		return nil, fmt.Errorf("frame length %d does not match %d pixels", len(wire), n)
	}
	for x := 0; x < n; x++ {
		r, g, b := d.toNRGB(wire[x*3:x*3+3], d.order)
		i := d.img.PixOffset(x, 0)
		d.img.Pix[i+0] = r
		d.img.Pix[i+1] = g
		d.img.Pix[i+2] = b
		d.img.Pix[i+3] = 255
	}
	return d.img, nil
}

func (d *drawerDriver) Write(wire []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.drawer == nil {
		return errClosed
	}
	img, err := d.frame(wire)
	if err != nil {
		return err
	}
	if d.before != nil {
		d.before()
	}
	err = d.drawer.Draw(d.drawer.Bounds(), img, image.Point{})
	if d.after != nil {
		d.after()
	}
	return err
}

func (d *drawerDriver) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.drawer == nil {
		return nil
	}
	err := d.drawer.Halt()
	d.drawer = nil
	if d.port != nil {
		if cerr := d.port.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

func (d *drawerDriver) String() string {
	if d.drawer == nil {
		return "closed"
	}
	return d.drawer.String()
}
