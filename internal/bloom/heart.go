package bloom

import (
	"context"

	"voxelbloom/internal/lattice"
	"voxelbloom/internal/world"
)

var (
	heartColor     = world.RGB(1.0, 1.0, 0.0)
	heartHighlight = world.RGB(0.6, 0.6, 0.0)
)

type HeartSpec struct {
	Center world.BlockCoord
	Size   int
}

// Heart stamps a filled disk in the XY plane. Cells where both x and y are
// odd get a darker voxel one step above.
func (g *Generator) Heart(ctx context.Context, w world.Writer, spec HeartSpec) (int, error) {
	box := lattice.Grid2(lattice.Symmetric(spec.Size), lattice.Symmetric(spec.Size))
	return g.stamp(ctx, w, "heart", box, heartBody(spec))
}

func heartBody(spec HeartSpec) func(lattice.Point) []world.Write {
	radius2 := spec.Size * spec.Size
	return func(p lattice.Point) []world.Write {
		if p.X*p.X+p.Y*p.Y > radius2 {
			return nil
		}
		writes := []world.Write{{
			Pos:      spec.Center.Add(world.BlockCoord{X: p.X, Y: p.Y}),
			Material: world.MaterialSolid,
			Color:    heartColor,
		}}
		// &1 keeps negative odd numbers odd.
		if p.X&1 == 1 && p.Y&1 == 1 {
			writes = append(writes, world.Write{
				Pos:      spec.Center.Add(world.BlockCoord{X: p.X, Y: p.Y, Z: 1}),
				Material: world.MaterialSolid,
				Color:    heartHighlight,
			})
		}
		return writes
	}
}
