package model_test

import (
	"strconv"
	"testing"

	. "github.com/coreman2200/ledstrip/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var TestRGBIsExpectedPacked = []struct {
	R      uint8
	G      uint8
	B      uint8
	Expect uint32
}{
	{0xFF, 0x80, 0x40, 0xFF8040},
	{0xFF, 0x00, 0x00, 0xFF0000},
	{0x00, 0xFF, 0x00, 0x00FF00},
	{0x00, 0x00, 0xFF, 0x0000FF},
	{0x12, 0x34, 0x56, 0x123456},
	{0x00, 0x00, 0x00, 0x000000},
}

func TestPack(t *testing.T) {
	for k, v := range TestRGBIsExpectedPacked {
		t.Run("Given RGB"+strconv.Itoa(k), func(t *testing.T) {
			got := Pack(v.R, v.G, v.B)
			assert.Equal(t, v.Expect, got)
			assert.Equal(t, v.Expect, Color{v.R, v.G, v.B}.Packed())

			c := Unpack(got)
			assert.Equal(t, v.B, uint8(got&0xFF), "blue is the low byte")
			assert.Equal(t, v.G, uint8(got>>8&0xFF), "green is the middle byte")
			assert.Equal(t, v.R, uint8(got>>16&0xFF), "red is the top byte")
			assert.Equal(t, Color{v.R, v.G, v.B}, c)
		})
	}
}

func TestPackExhaustiveComponents(t *testing.T) {
	for i := 0; i < 256; i++ {
		v := uint8(i)
		assert.Equal(t, uint32(i)<<16, Pack(v, 0, 0))
		assert.Equal(t, uint32(i)<<8, Pack(0, v, 0))
		assert.Equal(t, uint32(i), Pack(0, 0, v))
	}
}

func TestPackIntsMasksOverflow(t *testing.T) {
	// 0x1FF in green must not touch red.
	assert.Equal(t, uint32(0x01FF02), PackInts(1, 0x1FF, 2))
	assert.Equal(t, uint32(0x000000), PackInts(256, 256, 256))
	assert.Equal(t, uint32(0xFF8040), PackInts(255, 128, 64))
}

func TestUnpackIgnoresHighByte(t *testing.T) {
	assert.Equal(t, Color{0x11, 0x22, 0x33}, Unpack(0xAB112233))
}

func TestParseHex(t *testing.T) {
	for _, s := range []string{"ff8040", "#FF8040", "0xff8040"} {
		c, err := ParseHex(s)
		require.NoError(t, err, s)
		assert.Equal(t, Color{0xFF, 0x80, 0x40}, c, s)
	}
	for _, s := range []string{"", "fff", "gg0000", "#1234567"} {
		_, err := ParseHex(s)
		assert.Error(t, err, s)
	}
}

func TestColorString(t *testing.T) {
	assert.Equal(t, "ff8040", Color{0xFF, 0x80, 0x40}.String())
}

func TestOrderPutGet(t *testing.T) {
	c := Color{R: 1, G: 2, B: 3}
	cases := []struct {
		order Order
		wire  [3]byte
	}{
		{GRB, [3]byte{2, 1, 3}},
		{RGB, [3]byte{1, 2, 3}},
		{BRG, [3]byte{3, 1, 2}},
		{BGR, [3]byte{3, 2, 1}},
		{GBR, [3]byte{2, 3, 1}},
		{RBG, [3]byte{1, 3, 2}},
	}
	for _, tc := range cases {
		t.Run(tc.order.String(), func(t *testing.T) {
			buf := make([]byte, 3)
			tc.order.Put(buf, c)
			assert.Equal(t, tc.wire[:], buf)
			assert.Equal(t, c, tc.order.Get(buf))
		})
	}
}

func TestParseOrder(t *testing.T) {
	o, err := ParseOrder(" grb ")
	require.NoError(t, err)
	assert.Equal(t, GRB, o)

	o, err = ParseOrder("RBG")
	require.NoError(t, err)
	assert.Equal(t, RBG, o)

	_, err = ParseOrder("RGBW")
	assert.Error(t, err)
}

func TestInvalidOrderPanics(t *testing.T) {
	buf := make([]byte, 3)
	assert.Panics(t, func() { Order(99).Put(buf, White) })
	assert.Panics(t, func() { Order(-1).Get(buf) })
	assert.Equal(t, "Order(99)", Order(99).String())
}

func TestOrderText(t *testing.T) {
	var o Order
	require.NoError(t, o.UnmarshalText([]byte("BGR")))
	assert.Equal(t, BGR, o)
	b, err := o.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "BGR", string(b))
	assert.Error(t, o.UnmarshalText([]byte("XYZ")))
}

func TestCorrection(t *testing.T) {
	c := Color{0xFF, 0x80, 0x40}
	assert.Equal(t, c, NoCorrection.Apply(c))
	assert.Equal(t, c, Uniform(255).Apply(c))
	assert.Equal(t, Black, Uniform(0).Apply(c))
	// (v * (1+k)) >> 8
	assert.Equal(t, Color{0x7F, 0x40, 0x20}, Uniform(127).Apply(c))
	assert.Equal(t, Color{0xFF, 0x40, 0x00}, Correction{255, 127, 0}.Apply(c))
}
