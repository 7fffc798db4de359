package world

import "math"

// BlockCoord describes a voxel position in scene space. Y is up.
type BlockCoord struct {
	X int
	Y int
	Z int
}

func (c BlockCoord) Add(o BlockCoord) BlockCoord {
	return BlockCoord{X: c.X + o.X, Y: c.Y + o.Y, Z: c.Z + o.Z}
}

// Truncate converts real scene coordinates to a voxel position, rounding
// every axis toward zero.
func Truncate(x, y, z float64) BlockCoord {
	return BlockCoord{X: int(math.Trunc(x)), Y: int(math.Trunc(y)), Z: int(math.Trunc(z))}
}

// Bounds is an axis-aligned bounding box with inclusive min/max corners.
type Bounds struct {
	Min BlockCoord
	Max BlockCoord
}

// Contains reports whether coord lies inside the inclusive box.
func (b Bounds) Contains(coord BlockCoord) bool {
	return coord.X >= b.Min.X && coord.X <= b.Max.X &&
		coord.Y >= b.Min.Y && coord.Y <= b.Max.Y &&
		coord.Z >= b.Min.Z && coord.Z <= b.Max.Z
}

// Size returns the number of voxels along each axis.
func (b Bounds) Size() BlockCoord {
	return BlockCoord{
		X: b.Max.X - b.Min.X + 1,
		Y: b.Max.Y - b.Min.Y + 1,
		Z: b.Max.Z - b.Min.Z + 1,
	}
}

// BoundsTracker grows a Bounds as coordinates are observed.
type BoundsTracker struct {
	bounds Bounds
	seen   bool
}

func (t *BoundsTracker) Observe(coord BlockCoord) {
	if !t.seen {
		t.bounds = Bounds{Min: coord, Max: coord}
		t.seen = true
		return
	}
	t.bounds.Min.X = min(t.bounds.Min.X, coord.X)
	t.bounds.Min.Y = min(t.bounds.Min.Y, coord.Y)
	t.bounds.Min.Z = min(t.bounds.Min.Z, coord.Z)
	t.bounds.Max.X = max(t.bounds.Max.X, coord.X)
	t.bounds.Max.Y = max(t.bounds.Max.Y, coord.Y)
	t.bounds.Max.Z = max(t.bounds.Max.Z, coord.Z)
}

// Bounds returns the observed box and false when nothing was observed.
func (t *BoundsTracker) Bounds() (Bounds, bool) {
	return t.bounds, t.seen
}
