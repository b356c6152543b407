package fixedpoint

import "lukechampine.com/uint128"

var two = uint128.From64(2)

// Sqrt returns floor(sqrt(n)) by Newton iteration seeded at n/2.
func Sqrt(n uint128.Uint128) uint128.Uint128 {
	if n.Cmp(two) < 0 {
		return n
	}
	x := n.Div(two)
	y := x.Add(n.Div(x)).Div(two)
	for y.Cmp(x) < 0 {
		x = y
		y = x.Add(n.Div(x)).Div(two)
	}
	return x
}

// Sqrt64 is Sqrt of the 128-bit product a*b, the first-deposit LP amount.
func Sqrt64(a, b uint64) (uint64, error) {
	prod, err := Mul(uint128.From64(a), uint128.From64(b))
	if err != nil {
		return 0, err
	}
	return ToUint64(Sqrt(prod))
}
