package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want Cents
	}{
		{0, 0},
		{10.50, 1050},
		{33.33, 3333},
		{0.005, 1},
		{-12.34, -1234},
		{99.999, 10000},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FromFloat(tt.in), "FromFloat(%v)", tt.in)
	}
}

func TestFloat64RoundTrip(t *testing.T) {
	for _, c := range []Cents{0, 1, 99, 100, 3334, -6667} {
		assert.Equal(t, c, FromFloat(c.Float64()))
	}
}

func TestAbs(t *testing.T) {
	assert.Equal(t, Cents(5), Cents(-5).Abs())
	assert.Equal(t, Cents(5), Cents(5).Abs())
	assert.Equal(t, Cents(0), Cents(0).Abs())
}

func TestString(t *testing.T) {
	assert.Equal(t, "33.34", Cents(3334).String())
	assert.Equal(t, "-0.01", Cents(-1).String())
	assert.Equal(t, "0.00", Cents(0).String())
}
