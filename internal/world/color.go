package world

import (
	"fmt"
	"image/color"
	"math"

	"voxelbloom/internal/config"
)

// Color is a linear RGB intensity. Channels are conventionally in [0,1] but
// are never clamped until a renderer tone-maps them.
type Color struct {
	R float64
	G float64
	B float64
}

func RGB(r, g, b float64) Color {
	return Color{R: r, G: g, B: b}
}

func ColorFromConfig(v config.Vec3) Color {
	return Color{R: v[0], G: v[1], B: v[2]}
}

func (c Color) Add(o Color) Color {
	return Color{R: c.R + o.R, G: c.G + o.G, B: c.B + o.B}
}

func (c Color) Scale(f float64) Color {
	return Color{R: c.R * f, G: c.G * f, B: c.B * f}
}

// Mul multiplies channel by channel.
func (c Color) Mul(o Color) Color {
	return Color{R: c.R * o.R, G: c.G * o.G, B: c.B * o.B}
}

// Lerp blends from c (t=0) toward o (t=1).
func (c Color) Lerp(o Color, t float64) Color {
	return c.Scale(1 - t).Add(o.Scale(t))
}

// NRGBA clamps each channel to [0,1] and gamma encodes it.
func (c Color) NRGBA(gamma float64) color.NRGBA {
	return color.NRGBA{
		R: encodeChannel(c.R, gamma),
		G: encodeChannel(c.G, gamma),
		B: encodeChannel(c.B, gamma),
		A: 255,
	}
}

func (c Color) String() string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f)", c.R, c.G, c.B)
}

func encodeChannel(v, gamma float64) uint8 {
	v = clamp(v, 0, 1)
	if gamma > 0 && gamma != 1 {
		v = math.Pow(v, 1/gamma)
	}
	return uint8(math.Round(v * 255))
}

func clamp(value, lo, hi float64) float64 {
	if math.IsNaN(value) {
		return lo
	}
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}
