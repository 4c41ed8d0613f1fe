package model

import (
	"fmt"
	"strings"
)

// Order is the sequence in which a strip expects the three color components
// on the wire.
type Order int

const (
	GRB Order = iota
	BRG
	BGR
	GBR
	RGB
	RBG
)

var StringOrders = map[string]Order{
	"GRB": GRB,
	"BRG": BRG,
	"BGR": BGR,
	"GBR": GBR,
	"RGB": RGB,
	"RBG": RBG,
}

// offsets holds the wire position of red, green and blue for each order.
var offsets = map[Order][3]int{
	GRB: {1, 0, 2},
	BRG: {1, 2, 0},
	BGR: {2, 1, 0},
	GBR: {2, 0, 1},
	RGB: {0, 1, 2},
	RBG: {0, 2, 1},
}

func ParseOrder(s string) (Order, error) {
	o, ok := StringOrders[strings.ToUpper(strings.TrimSpace(s))]
	if !ok {
		return GRB, fmt.Errorf("unknown color order %q", s)
	}
	return o, nil
}

func (o Order) String() string {
	for k, v := range StringOrders {
		if v == o {
			return k
		}
	}
	return fmt.Sprintf("Order(%d)", int(o))
}

// Offsets returns the wire position of red, green and blue. It panics on an
// Order that is not one of the constants above.
func (o Order) Offsets() (r, g, b int) {
	off, ok := offsets[o]
	if !ok {
		panic(fmt.Sprintf("model: invalid color order %d", int(o)))
	}
	return off[0], off[1], off[2]
}

// Put stores c into the first three bytes of dst.
func (o Order) Put(dst []byte, c Color) {
	r, g, b := o.Offsets()
	dst[r] = c.R
	dst[g] = c.G
	dst[b] = c.B
}

// Get reads a color back from the first three bytes of src.
func (o Order) Get(src []byte) Color {
	r, g, b := o.Offsets()
	return Color{R: src[r], G: src[g], B: src[b]}
}

func (o *Order) UnmarshalText(text []byte) error {
	v, err := ParseOrder(string(text))
	if err != nil {
		return err
	}
	*o = v
	return nil
}

func (o Order) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}
