package world

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"voxelbloom/internal/config"
)

// Environment is the global scene setup handed to renderers. It is read once
// at startup and never touched by the stampers.
type Environment struct {
	Exposure       float64
	Edges          bool
	Extent         int
	Background     Color
	FloorHeight    int
	FloorColor     Color
	LightDirection r3.Vec // unit vector pointing toward the light
	LightAngle     float64
	LightColor     Color // already divided by exposure
	Gamma          float64
	TileWidth      int
}

func EnvironmentFromConfig(cfg *config.Config) Environment {
	dir := r3.Vec{X: cfg.Scene.Light.Direction[0], Y: cfg.Scene.Light.Direction[1], Z: cfg.Scene.Light.Direction[2]}
	if r3.Norm(dir) > 0 {
		dir = r3.Unit(dir)
	}
	return Environment{
		Exposure:       cfg.Scene.Exposure,
		Edges:          cfg.Scene.VoxelEdges,
		Extent:         cfg.Scene.Extent,
		Background:     ColorFromConfig(cfg.Scene.Background),
		FloorHeight:    cfg.Scene.Floor.Height,
		FloorColor:     ColorFromConfig(cfg.Scene.Floor.Color),
		LightDirection: dir,
		LightAngle:     cfg.Scene.Light.Angle,
		LightColor:     ColorFromConfig(cfg.LightColor()),
		Gamma:          cfg.Render.Gamma,
		TileWidth:      cfg.Render.TileWidth,
	}
}

// GridBounds returns the inclusive voxel box the scene accepts. ok is false
// when the grid is unbounded.
func (e Environment) GridBounds() (Bounds, bool) {
	if e.Extent <= 0 {
		return Bounds{}, false
	}
	return Bounds{
		Min: BlockCoord{X: -e.Extent, Y: -e.Extent, Z: -e.Extent},
		Max: BlockCoord{X: e.Extent - 1, Y: e.Extent - 1, Z: e.Extent - 1},
	}, true
}

// Shade returns the light reaching a face with the given outward normal.
// The light's angular radius widens the lit hemisphere a little so faces
// grazing the light are not cut off sharply.
func (e Environment) Shade(normal r3.Vec) Color {
	const ambient = 0.2
	lambert := r3.Dot(r3.Unit(normal), e.LightDirection)
	if e.LightAngle > 0 {
		lambert = (lambert + math.Sin(e.LightAngle)) / (1 + math.Sin(e.LightAngle))
	}
	if lambert < 0 {
		lambert = 0
	}
	return e.LightColor.Scale(ambient + (1-ambient)*lambert)
}
