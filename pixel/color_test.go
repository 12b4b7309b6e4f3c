package pixel

import (
	"image/color"
	"testing"
)

func TestMono(t *testing.T) {
	for _, c := range []Mono{Off, On} {
		r, g, b, a := c.RGBA()
		var want uint32
		if c.On {
			want = 0xffff
		}
		if r != want || g != want || b != want {
			t.Errorf("%v: expected rgb %#04x, got %#04x %#04x %#04x", c, want, r, g, b)
		}
		if a != 0xffff {
			t.Errorf("%v: expected opaque alpha, got %#04x", c, a)
		}
	}
}

func TestMonoModel(t *testing.T) {
	tests := []struct {
		in   color.Color
		want Mono
	}{
		{color.White, On},
		{color.Black, Off},
		{color.Transparent, Off},
		{color.Gray{Y: 0x7f}, Off},
		{color.Gray{Y: 0x80}, On},
		{On, On},
		{Off, Off},
	}
	for _, test := range tests {
		if v := MonoModel.Convert(test.in); v != test.want {
			t.Errorf("Convert(%#v): expected %v, got %v", test.in, test.want, v)
		}
	}
}
