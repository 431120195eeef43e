package greenops

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatNumber(t *testing.T) {
	cases := map[int64]string{
		0:          "0",
		950:        "950",
		1500:       "1,500",
		-2400:      "-2,400",
		12_345_678: "12,345,678",
	}
	for n, want := range cases {
		assert.Equal(t, want, FormatNumber(n), n)
	}
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		name      string
		f         float64
		precision int
		want      string
	}{
		{name: "baseline tonnes", f: 1500, precision: 2, want: "1,500.00"},
		{name: "compound growth year", f: 1210.0000000000002, precision: 2, want: "1,210.00"},
		{name: "rounds half away from zero", f: 0.125, precision: 2, want: "0.13"},
		{name: "carries into thousands", f: 999.996, precision: 2, want: "1,000.00"},
		{name: "chart axis label", f: 1650.4, precision: 0, want: "1,650"},
		{name: "negative fraction keeps sign", f: -0.25, precision: 2, want: "-0.25"},
		{name: "negative thousands", f: -4321.5, precision: 1, want: "-4,321.5"},
		{name: "not a number", f: math.NaN(), precision: 2, want: "NaN"},
		{name: "infinite", f: math.Inf(1), precision: 2, want: "+Inf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatFloat(tt.f, tt.precision))
		})
	}
}

func TestFormatLarge(t *testing.T) {
	tests := []struct {
		n    float64
		want string
	}{
		{n: 42.4, want: "42"},
		{n: 999_999, want: "999,999"},
		{n: 1_000_000, want: "~1.0 million"},
		{n: 7_860_000, want: "~7.9 million"},
		{n: 2_300_000_000, want: "~2.3 billion"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatLarge(tt.n), tt.n)
	}
}

func BenchmarkFormatFloat(b *testing.B) {
	for b.Loop() {
		_ = FormatFloat(1234567.891, 2)
	}
}
