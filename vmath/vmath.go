package vmath

import (
	"fmt"
	"math/bits"
)

// Frac is an exact rational scalar used for sub-cell positions
// Zero value is 0. Non-zero values keep den > 0 and gcd(num, den) == 1, so == compares by value
type Frac struct {
	num int64
	den int64
}

// --- Construction ---

// I returns the integer n as a Frac
func I(n int) Frac {
	if n == 0 {
		return Frac{}
	}
	return Frac{num: int64(n), den: 1}
}

// F returns num/den reduced. Panics on zero denominator
func F(num, den int64) Frac {
	if den == 0 {
		panic("vmath: zero denominator")
	}
	return reduce(num, den)
}

// Half is 1/2, the common half-cell step
var Half = F(1, 2)

func reduce(num, den int64) Frac {
	if num == 0 {
		return Frac{}
	}
	if den < 0 {
		num, den = -num, -den
	}
	if g := gcd(abs64(num), den); g > 1 {
		num /= g
		den /= g
	}
	return Frac{num: num, den: den}
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func abs64(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}

// --- Accessors ---

// Num returns the reduced numerator
func (f Frac) Num() int64 { return f.num }

// Den returns the reduced denominator, always >= 1
func (f Frac) Den() int64 {
	if f.den == 0 {
		return 1
	}
	return f.den
}

// --- Arithmetic ---

func (f Frac) Add(g Frac) Frac {
	if f.num == 0 {
		return g
	}
	if g.num == 0 {
		return f
	}
	if f.den == g.den {
		return reduce(f.num+g.num, f.den)
	}
	// lcm keeps denominators small for the step sizes used by kinematics
	d := gcd(f.den, g.den)
	l := f.den / d * g.den
	return reduce(f.num*(l/f.den)+g.num*(l/g.den), l)
}

func (f Frac) Sub(g Frac) Frac { return f.Add(g.Neg()) }

func (f Frac) Neg() Frac { return Frac{num: -f.num, den: f.den} }

func (f Frac) Mul(g Frac) Frac {
	if f.num == 0 || g.num == 0 {
		return Frac{}
	}
	return reduce(f.num*g.num, f.den*g.den)
}

// MulInt multiplies by an integer
func (f Frac) MulInt(n int) Frac {
	if n == 0 || f.num == 0 {
		return Frac{}
	}
	return reduce(f.num*int64(n), f.den)
}

// DivInt divides by an integer. Panics on zero
func (f Frac) DivInt(n int) Frac {
	if n == 0 {
		panic("vmath: division by zero")
	}
	return reduce(f.num, f.Den()*int64(n))
}

// --- Comparison ---

// Sign returns -1, 0 or 1
func (f Frac) Sign() int {
	switch {
	case f.num < 0:
		return -1
	case f.num > 0:
		return 1
	}
	return 0
}

// Cmp returns -1 if f < g, 0 if equal, 1 if f > g
func (f Frac) Cmp(g Frac) int {
	// Cross multiply in 128 bits, denominators are positive
	lhi, llo := mul128(f.num, g.Den())
	rhi, rlo := mul128(g.num, f.Den())
	if lhi != rhi {
		if lhi < rhi {
			return -1
		}
		return 1
	}
	if llo != rlo {
		if llo < rlo {
			return -1
		}
		return 1
	}
	return 0
}

// mul128 returns a*b as signed high word and unsigned low word
func mul128(a, b int64) (int64, uint64) {
	neg := (a < 0) != (b < 0)
	hi, lo := bits.Mul64(uint64(abs64(a)), uint64(abs64(b)))
	if neg {
		// two's complement of the 128-bit magnitude
		lo = ^lo + 1
		hi = ^hi
		if lo == 0 {
			hi++
		}
	}
	return int64(hi), lo
}

func (f Frac) Less(g Frac) bool { return f.Cmp(g) < 0 }

func (f Frac) LessEq(g Frac) bool { return f.Cmp(g) <= 0 }

func (f Frac) IsInt() bool { return f.Den() == 1 }

// --- Conversion ---

// Floor rounds toward negative infinity
func (f Frac) Floor() int {
	d := f.Den()
	q := f.num / d
	if f.num%d != 0 && f.num < 0 {
		q--
	}
	return int(q)
}

// Trunc rounds toward zero
func (f Frac) Trunc() int { return int(f.num / f.Den()) }

func (f Frac) Float64() float64 { return float64(f.num) / float64(f.Den()) }

func (f Frac) String() string {
	if f.IsInt() {
		return fmt.Sprintf("%d", f.num)
	}
	return fmt.Sprintf("%d/%d", f.num, f.den)
}

// --- Helpers ---

// Clamp restricts f to [lo, hi]
func Clamp(f, lo, hi Frac) Frac {
	if f.Less(lo) {
		return lo
	}
	if hi.Less(f) {
		return hi
	}
	return f
}

// Max returns the larger of a and b
func Max(a, b Frac) Frac {
	if a.Less(b) {
		return b
	}
	return a
}

// AbsInt returns |n|
func AbsInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// SignInt returns -1, 0 or 1
func SignInt(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}
