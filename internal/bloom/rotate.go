package bloom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Rotate turns p about the Z axis by theta radians.
func Rotate(p r3.Vec, theta float64) r3.Vec {
	sin, cos := math.Sincos(theta)
	return r3.Vec{
		X: p.X*cos - p.Y*sin,
		Y: p.X*sin + p.Y*cos,
		Z: p.Z,
	}
}
