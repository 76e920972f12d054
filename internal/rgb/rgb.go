// Package rgb implements the 16-bit packed color format of the palette
// hardware: bit 15 is the dark bit (halves brightness), bits 14-10 red,
// 9-5 green, 4-0 blue, five bits per channel.
package rgb

// Color is a packed palette word.
type Color uint16

const (
	DarkBit Color = 0x8000

	// Reference is the color-0 marker written by palette clears.
	Reference Color = DarkBit
)

// RGB packs three 5-bit channels.
func RGB(r, g, b uint8) Color {
	return Color(uint16(r&0x1F)<<10 | uint16(g&0x1F)<<5 | uint16(b&0x1F))
}

// RGBDark packs three 5-bit channels with the dark bit set.
func RGBDark(r, g, b uint8) Color {
	return RGB(r, g, b) | DarkBit
}

// RGB8 packs 8-bit channels, dropping the low three bits of each.
func RGB8(r, g, b uint8) Color {
	return RGB(r>>3, g>>3, b>>3)
}

// Gray builds a neutral color with equal channels.
func Gray(level uint8) Color {
	return RGB(level, level, level)
}

func (c Color) R() uint8 { return uint8(c>>10) & 0x1F }
func (c Color) G() uint8 { return uint8(c>>5) & 0x1F }
func (c Color) B() uint8 { return uint8(c) & 0x1F }

// Dark reports whether the dark bit is set.
func (c Color) Dark() bool { return c&DarkBit != 0 }

// Named colors used across the SDK and default palettes.
var (
	Black     = RGB(0, 0, 0)
	White     = RGB(31, 31, 31)
	Red       = RGB(31, 0, 0)
	Green     = RGB(0, 31, 0)
	Blue      = RGB(0, 0, 31)
	Yellow    = RGB(31, 31, 0)
	Cyan      = RGB(0, 31, 31)
	Magenta   = RGB(31, 0, 31)
	Orange    = RGB(31, 16, 0)
	GrayDark  = Gray(8)
	GrayMid   = Gray(16)
	GrayLight = Gray(24)
)

// Blend interpolates from a (ratio 0) to b (ratio 255) per channel with
// round-to-nearest.
func Blend(a, b Color, ratio uint8) Color {
	if ratio == 0 {
		return a
	}
	if ratio == 255 {
		return b
	}

	inv := uint16(255 - ratio)
	t := uint16(ratio)

	r := (uint16(a.R())*inv + uint16(b.R())*t + 128) >> 8
	g := (uint16(a.G())*inv + uint16(b.G())*t + 128) >> 8
	bl := (uint16(a.B())*inv + uint16(b.B())*t + 128) >> 8

	return RGB(uint8(r), uint8(g), uint8(bl))
}

// Darken subtracts amount from every channel, clamping at black.
func Darken(c Color, amount uint8) Color {
	if amount > 31 {
		amount = 31
	}
	return RGB(sub5(c.R(), amount), sub5(c.G(), amount), sub5(c.B(), amount))
}

// Lighten adds amount to every channel, clamping at white.
func Lighten(c Color, amount uint8) Color {
	if amount > 31 {
		amount = 31
	}
	return RGB(add5(c.R(), amount), add5(c.G(), amount), add5(c.B(), amount))
}

// AdjustBrightness lightens for positive amounts, darkens for negative.
func AdjustBrightness(c Color, amount int8) Color {
	if amount >= 0 {
		return Lighten(c, uint8(amount))
	}
	return Darken(c, uint8(-amount))
}

func Invert(c Color) Color {
	return RGB(31-c.R(), 31-c.G(), 31-c.B())
}

// Grayscale converts to the luminance Y = 0.299R + 0.587G + 0.114B.
func Grayscale(c Color) Color {
	lum := (77*uint16(c.R()) + 150*uint16(c.G()) + 29*uint16(c.B())) >> 8
	if lum > 31 {
		lum = 31
	}
	return Gray(uint8(lum))
}

// FromHSV converts 0..255 hue/saturation/value into a packed color.
// The standard byte-range algorithm runs first, then each channel is
// divided by 8 to land in the 5-bit palette range.
func FromHSV(h, s, v uint8) Color {
	if s == 0 {
		return Gray(v >> 3)
	}

	sector := h / 43
	remainder := (h - sector*43) * 6

	p := uint8((uint16(v) * uint16(255-s)) >> 8)
	q := uint8((uint16(v) * (255 - (uint16(s)*uint16(remainder))>>8)) >> 8)
	t := uint8((uint16(v) * (255 - (uint16(s)*uint16(255-remainder))>>8)) >> 8)

	v5, p5, q5, t5 := v>>3, p>>3, q>>3, t>>3

	switch sector {
	case 0:
		return RGB(v5, t5, p5)
	case 1:
		return RGB(q5, v5, p5)
	case 2:
		return RGB(p5, v5, t5)
	case 3:
		return RGB(p5, q5, v5)
	case 4:
		return RGB(t5, p5, v5)
	default:
		return RGB(v5, p5, q5)
	}
}

func sub5(c, amount uint8) uint8 {
	if c > amount {
		return c - amount
	}
	return 0
}

func add5(c, amount uint8) uint8 {
	if c+amount > 31 {
		return 31
	}
	return c + amount
}
