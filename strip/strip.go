// Package strip presents several fixed-length LED output lines as one flat
// pixel array.
//
// Logical pixel i lives on channel i/Length at offset i%Length, where Length is
// the active length shared by every channel. Each channel owns a buffer sized
// to Capacity pixels regardless of Length, stored in the wire order of the
// strips. Begin binds one driver per channel and Show transmits them all.
package strip

import (
	"errors"
	"fmt"
	"sync"

	"github.com/coreman2200/ledstrip/led"
	"github.com/coreman2200/ledstrip/model"
)

var (
	ErrConfig       = errors.New("invalid strip configuration")
	ErrOutOfRange   = errors.New("pixel index out of range")
	ErrNotBound     = errors.New("no channel bound")
	ErrAlreadyBound = errors.New("channels already bound")
)

// Channel is one physical output line.
type Channel struct {
	Pin        int
	Port       string
	Correction model.Correction
}

type Config struct {
	Channels []Channel
	Capacity int // pixels per channel buffer
	Length   int // initial active length
	Order    model.Order
	Profile  led.Profile
}

// Buffer is a set of per-channel pixel buffers addressed as one array.
//
// All methods are safe for concurrent use. The unchecked accessors still
// panic on an index outside [0, NumPixels()).
type Buffer struct {
	mu       sync.RWMutex
	channels []Channel
	pixels   [][]byte // per channel, capacity*3 bytes in wire order
	capacity int
	length   int
	order    model.Order
	profile  led.Profile

	drivers  []led.Driver
	boundLen int
	frames   [][]byte // calibrated scratch frames, one per bound channel
}

func New(cfg Config) (*Buffer, error) {
	if len(cfg.Channels) == 0 {
		return nil, fmt.Errorf("%w: no channels", ErrConfig)
	}
	if cfg.Capacity < 1 {
		return nil, fmt.Errorf("%w: capacity %d", ErrConfig, cfg.Capacity)
	}
	if err := checkLength(cfg.Length, cfg.Capacity); err != nil {
		return nil, err
	}
	b := &Buffer{
		channels: append([]Channel(nil), cfg.Channels...),
		pixels:   make([][]byte, len(cfg.Channels)),
		capacity: cfg.Capacity,
		length:   cfg.Length,
		order:    cfg.Order,
		profile:  cfg.Profile,
	}
	for i := range b.pixels {
		b.pixels[i] = make([]byte, cfg.Capacity*3)
	}
	return b, nil
}

func checkLength(n, capacity int) error {
	if n < 1 || n > capacity {
		return fmt.Errorf("%w: length %d not in [1, %d]", ErrConfig, n, capacity)
	}
	return nil
}

// SetLength changes the active length of every channel at once. Buffers are
// neither moved nor cleared, so existing pixels are reinterpreted. Drivers
// bound by Begin keep transmitting the length they were bound with.
func (b *Buffer) SetLength(n int) error {
	if err := checkLength(n, b.capacity); err != nil {
		return err
	}
	b.mu.Lock()
	b.length = n
	b.mu.Unlock()
	return nil
}

func (b *Buffer) Length() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.length
}

func (b *Buffer) Capacity() int { return b.capacity }

func (b *Buffer) Channels() int { return len(b.channels) }

func (b *Buffer) Order() model.Order { return b.order }

// NumPixels is Length times the channel count.
func (b *Buffer) NumPixels() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.length * len(b.channels)
}

// Resolve maps a logical index to its channel and offset within the channel.
func (b *Buffer) Resolve(i int) (channel, offset int) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.resolve(i)
}

func (b *Buffer) resolve(i int) (int, int) {
	return i / b.length, i % b.length
}
