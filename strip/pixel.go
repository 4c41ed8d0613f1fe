package strip

import (
	"fmt"

	"github.com/coreman2200/ledstrip/model"
)

// slot returns the three wire bytes of logical pixel i. Callers hold b.mu.
func (b *Buffer) slot(i int) []byte {
	ch, off := b.resolve(i)
	return b.pixels[ch][off*3 : off*3+3]
}

// SetPixel stores c at logical index i. i must be in [0, NumPixels()); use
// SetPixelChecked when that is not known.
func (b *Buffer) SetPixel(i int, c model.Color) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.order.Put(b.slot(i), c)
}

// SetPacked stores a 0xRRGGBB value.
func (b *Buffer) SetPacked(i int, c uint32) {
	b.SetPixel(i, model.Unpack(c))
}

func (b *Buffer) SetRGB(i int, red, green, blue uint8) {
	b.SetPixel(i, model.Color{R: red, G: green, B: blue})
}

// Pixel returns the color stored at logical index i.
func (b *Buffer) Pixel(i int) model.Color {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.order.Get(b.slot(i))
}

// Packed returns the pixel at i as 0xRRGGBB, the same layout SetPacked takes.
func (b *Buffer) Packed(i int) uint32 {
	return b.Pixel(i).Packed()
}

func (b *Buffer) inRange(i int) error {
	if n := b.length * len(b.channels); i < 0 || i >= n {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrOutOfRange, i, n)
	}
	return nil
}

func (b *Buffer) SetPixelChecked(i int, c model.Color) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.inRange(i); err != nil {
		return err
	}
	b.order.Put(b.slot(i), c)
	return nil
}

func (b *Buffer) PixelChecked(i int) (model.Color, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if err := b.inRange(i); err != nil {
		return model.Black, err
	}
	return b.order.Get(b.slot(i)), nil
}

// Fill sets every active pixel of every channel to c.
func (b *Buffer) Fill(c model.Color) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, px := range b.pixels {
		for off := 0; off < b.length; off++ {
			b.order.Put(px[off*3:], c)
		}
	}
}
