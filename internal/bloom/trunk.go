package bloom

import (
	"context"

	"voxelbloom/internal/lattice"
	"voxelbloom/internal/world"
)

var trunkColor = world.RGB(0.5, 0.25, 0.0)

type TrunkSpec struct {
	Center world.BlockCoord
	Radius int
	Height int // the trunk spans [-Height, Height) around Center on Y
}

// Trunk stamps a vertical cylinder along Y.
func (g *Generator) Trunk(ctx context.Context, w world.Writer, spec TrunkSpec) (int, error) {
	// Lattice axes are (x, z, y).
	box := lattice.Grid3(lattice.Symmetric(spec.Radius), lattice.Symmetric(spec.Radius), lattice.Symmetric(spec.Height))
	return g.stamp(ctx, w, "trunk", box, trunkBody(spec))
}

func trunkBody(spec TrunkSpec) func(lattice.Point) []world.Write {
	radius2 := spec.Radius * spec.Radius
	return func(p lattice.Point) []world.Write {
		x, z, y := p.X, p.Y, p.Z
		if x*x+z*z > radius2 {
			return nil
		}
		return []world.Write{{
			Pos:      spec.Center.Add(world.BlockCoord{X: x, Y: y, Z: z}),
			Material: world.MaterialSolid,
			Color:    trunkColor,
		}}
	}
}
