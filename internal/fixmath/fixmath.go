// Package fixmath provides 16.16 fixed-point arithmetic for the SDK.
// The target has no FPU, so every world-space quantity (positions,
// velocities, spring state, camera offsets) is a Fixed.
package fixmath

// Fixed is a signed 16.16 fixed-point value: range ±32767, precision ~0.000015.
type Fixed int32

// Angle is a binary radian ("brad"): 256 brads = one full turn.
type Angle uint8

const (
	Shift = 16
	One   = Fixed(1 << Shift)
	Half  = Fixed(1 << (Shift - 1))
)

// FIX converts an integer to fixed-point.
func FIX(i int) Fixed { return Fixed(i) << Shift }

// FromFloat converts a float constant to fixed-point. Intended for
// tuning constants only; nothing at runtime should pass through floats.
func FromFloat(f float64) Fixed { return Fixed(f * float64(One)) }

// Int truncates toward zero.
func (f Fixed) Int() int { return int(f >> Shift) }

// Round converts to the nearest integer.
func (f Fixed) Round() int { return int((f + Half) >> Shift) }

// Frac returns the fractional bits.
func (f Fixed) Frac() Fixed { return f & (One - 1) }

func Mul(a, b Fixed) Fixed {
	return Fixed((int64(a) * int64(b)) >> Shift)
}

func Div(a, b Fixed) Fixed {
	return Fixed((int64(a) << Shift) / int64(b))
}

func Abs(x Fixed) Fixed {
	if x < 0 {
		return -x
	}
	return x
}

// Sign returns -One, 0 or One.
func Sign(x Fixed) Fixed {
	switch {
	case x > 0:
		return One
	case x < 0:
		return -One
	}
	return 0
}

func Lerp(a, b, t Fixed) Fixed {
	return a + Mul(b-a, t)
}

func Clamp(x, min, max Fixed) Fixed {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}

// Sin returns the sine of an angle in brads, scaled to ~±One.
func Sin(a Angle) Fixed {
	return Fixed(sinTable[a]) << 1
}

// Cos is Sin shifted a quarter turn.
func Cos(a Angle) Fixed {
	return Fixed(sinTable[a+64]) << 1
}

// Atan2 returns the angle of (x,y) in brads using a linear octant
// approximation; good to about one brad, which is plenty for aiming.
func Atan2(y, x Fixed) Angle {
	if x == 0 && y == 0 {
		return 0
	}

	absX := Abs(x)
	absY := Abs(y)

	var ratio Fixed
	var steep bool
	if absX >= absY {
		ratio = Div(absY, absX)
	} else {
		ratio = Div(absX, absY)
		steep = true
	}

	// atan(r) ≈ r * 32/π over one octant
	a := Angle((int32(ratio) * 32) >> Shift)

	if steep {
		a = 64 - a
	}
	if x < 0 {
		a = 128 - a
	}
	if y < 0 {
		a = -a
	}
	return a
}

// Sqrt computes the integer square root with the classic bit-by-bit method.
func Sqrt(x uint32) uint16 {
	if x == 0 {
		return 0
	}

	var result uint32
	bit := uint32(1) << 30

	for bit > x {
		bit >>= 2
	}

	for bit != 0 {
		if x >= result+bit {
			x -= result + bit
			result = (result >> 1) + bit
		} else {
			result >>= 1
		}
		bit >>= 2
	}

	return uint16(result)
}

// SqrtFix returns the fixed-point square root of a non-negative Fixed.
func SqrtFix(x Fixed) Fixed {
	if x <= 0 {
		return 0
	}
	// sqrt(x * 65536) = sqrt(x) * 256
	return Fixed(Sqrt(uint32(x))) << (Shift / 2)
}

// Vec2 is a fixed-point 2-vector.
type Vec2 struct {
	X, Y Fixed
}

func (v Vec2) LengthSq() Fixed {
	return Mul(v.X, v.X) + Mul(v.Y, v.Y)
}

func (v Vec2) Length() Fixed {
	return SqrtFix(v.LengthSq())
}

func (v Vec2) Normalize() Vec2 {
	l := v.Length()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{Div(v.X, l), Div(v.Y, l)}
}
