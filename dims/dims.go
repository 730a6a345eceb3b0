// Package dims enumerates the (DIMPOINT, DIMVECT) pairs the engine
// supports. The front end that would normally generate a kernel per pair
// is out of scope here; this package is the runtime stand-in for that
// compile-time enumeration — an unsupported pair must fail cleanly
// rather than run with the wrong stride.
package dims

import "fmt"

// Pair is a (point dimension, payload dimension) combination.
type Pair struct {
	Point int
	Vect  int
}

func (p Pair) String() string {
	return fmt.Sprintf("(%d,%d)", p.Point, p.Vect)
}

// Supported lists the mandatory (DIMPOINT, DIMVECT) pairs.
var Supported = []Pair{
	{Point: 1, Vect: 1},
	{Point: 2, Vect: 1},
	{Point: 2, Vect: 2},
	{Point: 3, Vect: 1},
	{Point: 3, Vect: 3},
}

// IsSupported reports whether (dimPoint, dimVect) is one of the
// enumerated pairs.
func IsSupported(dimPoint, dimVect int) bool {
	for _, p := range Supported {
		if p.Point == dimPoint && p.Vect == dimVect {
			return true
		}
	}
	return false
}
