package bloom

import (
	"context"

	"voxelbloom/internal/lattice"
	"voxelbloom/internal/world"
)

type FloorSpec struct {
	Center world.BlockCoord
	Size   int
	Color  world.Color
	Noise  world.Color // per-channel amplitude of the shared noise draw
}

// Floor stamps a flat square plate in the XZ plane over [-Size, Size)².
func (g *Generator) Floor(ctx context.Context, w world.Writer, spec FloorSpec) (int, error) {
	seed := g.rng.Int63()
	box := lattice.Grid2(lattice.Symmetric(spec.Size), lattice.Symmetric(spec.Size))
	return g.stamp(ctx, w, "floor", box, floorBody(spec, seed))
}

func floorBody(spec FloorSpec, seed int64) func(lattice.Point) []world.Write {
	return func(p lattice.Point) []world.Write {
		r := unitNoise(p.X, p.Y, seed)
		return []world.Write{{
			Pos:      spec.Center.Add(world.BlockCoord{X: p.X, Y: 0, Z: p.Y}),
			Material: world.MaterialSolid,
			Color:    spec.Color.Add(spec.Noise.Scale(r)),
		}}
	}
}
