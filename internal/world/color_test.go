package world

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestColorLerpEndpoints(t *testing.T) {
	src := RGB(0.9, 0.9, 0.9)
	dst := RGB(0.9, 0.9, 0.1)

	assert.Equal(t, src, src.Lerp(dst, 0))
	assert.Equal(t, dst, src.Lerp(dst, 1))

	mid := src.Lerp(dst, 0.5)
	assert.InDelta(t, 0.5, mid.B, 1e-12)
}

func TestColorNRGBAClampsAndEncodes(t *testing.T) {
	c := RGB(-0.5, 2, 1)
	assert.Equal(t, color.NRGBA{R: 0, G: 255, B: 255, A: 255}, c.NRGBA(2.2))

	linear := RGB(0.5, 0.5, 0.5).NRGBA(1)
	assert.Equal(t, uint8(128), linear.R)
	encoded := RGB(0.5, 0.5, 0.5).NRGBA(2.2)
	assert.Greater(t, encoded.R, linear.R)
}

func TestEnvironmentShadeFavoursLitFaces(t *testing.T) {
	env := testEnvironment(8)

	top := env.Shade(r3.Vec{Y: 1})
	away := env.Shade(r3.Vec{Y: -1})
	assert.Greater(t, top.R, away.R)
	assert.InDelta(t, 0.2, away.R, 1e-9)
}

func TestEnvironmentGridBounds(t *testing.T) {
	bounds, ok := testEnvironment(64).GridBounds()
	assert.True(t, ok)
	assert.Equal(t, BlockCoord{X: -64, Y: -64, Z: -64}, bounds.Min)
	assert.Equal(t, BlockCoord{X: 63, Y: 63, Z: 63}, bounds.Max)

	_, ok = testEnvironment(0).GridBounds()
	assert.False(t, ok)
}

func TestTruncateRoundsTowardZero(t *testing.T) {
	assert.Equal(t, BlockCoord{X: 1, Y: -1, Z: 0}, Truncate(1.9, -1.9, -0.5))
}
