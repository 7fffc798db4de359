package bloom

import (
	"context"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"voxelbloom/internal/lattice"
	"voxelbloom/internal/world"
)

const (
	petalCopies = 6
	// bandRatio splits d = x²+y² into the inner and outer color bands,
	// as a fraction of size².
	bandRatio = 0.6
)

// offsetRange thickens a blade by re-stamping it at neighbouring integer
// offsets on X and Y. It is half-open, so it yields {-1, 0}.
var offsetRange = lattice.Span(-1, 1)

// BladeSpec describes a petal or a leaf.
type BladeSpec struct {
	Center   world.BlockCoord
	Size     int
	Inner    world.Color // color near the base
	Outer    world.Color // color at the band boundary
	Tilt     float64     // paraboloid lift per unit of x²+y²
	Rotation float64     // degrees, before jitter
}

// Petal stamps one blade with six rotated copies around Center.
func (g *Generator) Petal(ctx context.Context, w world.Writer, spec BladeSpec) (int, error) {
	tilt, rotation := g.perturb(spec)
	return g.stamp(ctx, w, "petal", bladeBox(spec.Size), bladeBody(spec, tilt, rotation, petalCopies))
}

// Leaf stamps a single blade at one rotation.
func (g *Generator) Leaf(ctx context.Context, w world.Writer, spec BladeSpec) (int, error) {
	tilt, rotation := g.perturb(spec)
	return g.stamp(ctx, w, "leaf", bladeBox(spec.Size), bladeBody(spec, tilt, rotation, 1))
}

// perturb jitters tilt and converts the rotation to the blade angle.
// One layout degree is π/360 radians.
func (g *Generator) perturb(spec BladeSpec) (tilt, rotation float64) {
	tilt = g.rng.Float64()*0.01 + spec.Tilt
	rotation = (g.rng.Float64()*20 + spec.Rotation) / 360 * math.Pi
	return tilt, rotation
}

func bladeBox(size int) lattice.Box {
	return lattice.Grid2(lattice.Span(0, size), lattice.Span(0, size))
}

// inSilhouette is the folium-shaped blade outline:
// (x/s)³ + (y/s)³ - (x/s)(y/s) <= 0.
func inSilhouette(x, y, size int) bool {
	if size <= 0 {
		return false
	}
	fx := float64(x) / float64(size)
	fy := float64(y) / float64(size)
	return fx*fx*fx+fy*fy*fy-fx*fy <= 0
}

// bandColor blends inner→outer up to the band boundary, then back from
// outer toward inner across the rest of the blade.
func bandColor(d float64, size int, inner, outer world.Color) world.Color {
	area := float64(size * size)
	boundary := area * bandRatio
	if d < boundary {
		return inner.Lerp(outer, d/boundary)
	}
	return outer.Lerp(inner, (d-boundary)/(area*(1-bandRatio)))
}

func bladeBody(spec BladeSpec, tilt, rotation float64, copies int) func(lattice.Point) []world.Write {
	center := r3.Vec{X: float64(spec.Center.X), Y: float64(spec.Center.Y), Z: float64(spec.Center.Z)}
	replicas := lattice.Grid3(offsetRange, offsetRange, lattice.Span(0, copies))

	return func(p lattice.Point) []world.Write {
		if !inSilhouette(p.X, p.Y, spec.Size) {
			return nil
		}
		d := float64(p.X*p.X + p.Y*p.Y)
		point := r3.Vec{X: float64(p.X), Y: float64(p.Y), Z: tilt * d}
		color := bandColor(d, spec.Size, spec.Inner, spec.Outer)

		writes := make([]world.Write, 0, replicas.Len())
		replicas.Each(func(r lattice.Point) {
			angle := rotation + math.Pi*float64(r.Z)/3
			offset := r3.Vec{X: float64(r.X), Y: float64(r.Y)}
			pos := r3.Add(r3.Add(center, offset), Rotate(point, angle))
			writes = append(writes, world.Write{
				Pos:      world.Truncate(pos.X, pos.Y, pos.Z),
				Material: world.MaterialSolid,
				Color:    color,
			})
		})
		return writes
	}
}
