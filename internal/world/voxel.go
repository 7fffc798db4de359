package world

import (
	"context"
	"errors"
)

// Material is an opaque voxel tag. The zero value means empty.
type Material uint8

const (
	MaterialEmpty Material = 0
	MaterialSolid Material = 1
)

// Voxel is the content stored at one grid coordinate.
type Voxel struct {
	Material Material
	Color    Color
}

func (v Voxel) Empty() bool {
	return v.Material == MaterialEmpty
}

// Write is a single SetVoxel call.
type Write struct {
	Pos      BlockCoord
	Material Material
	Color    Color
}

// Writer accepts voxel writes. A later write to the same coordinate
// replaces the earlier one.
type Writer interface {
	SetVoxel(pos BlockCoord, material Material, color Color)
}

// Sink is a Writer that can be finalized exactly once.
type Sink interface {
	Writer
	Finish(ctx context.Context) error
}

// ErrSceneFinished is returned by Finish when the sink was already finalized.
var ErrSceneFinished = errors.New("scene already finished")
