// Package lattice runs a body over every point of a bounded integer box,
// in parallel, and hands the results back in lattice order.
package lattice

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Range is the half-open integer interval [Min, Max).
type Range struct {
	Min int
	Max int
}

func Span(min, max int) Range {
	return Range{Min: min, Max: max}
}

// Symmetric returns [-n, n).
func Symmetric(n int) Range {
	return Range{Min: -n, Max: n}
}

func (r Range) Len() int {
	if r.Max <= r.Min {
		return 0
	}
	return r.Max - r.Min
}

// Point is one lattice index.
type Point struct {
	X int
	Y int
	Z int
}

// Box is the product of up to three ranges. The first axis varies slowest.
type Box struct {
	X Range
	Y Range
	Z Range
}

// Grid2 is a two-axis box; Z is pinned to 0.
func Grid2(x, y Range) Box {
	return Box{X: x, Y: y, Z: Range{Min: 0, Max: 1}}
}

func Grid3(x, y, z Range) Box {
	return Box{X: x, Y: y, Z: z}
}

func (b Box) Len() int {
	return b.X.Len() * b.Y.Len() * b.Z.Len()
}

// At maps a linear index in [0, Len()) to its point.
func (b Box) At(i int) Point {
	zl := b.Z.Len()
	yl := b.Y.Len()
	return Point{
		X: b.X.Min + i/(yl*zl),
		Y: b.Y.Min + (i/zl)%yl,
		Z: b.Z.Min + i%zl,
	}
}

// Each calls fn for every point in lattice order.
func (b Box) Each(fn func(Point)) {
	for i, n := 0, b.Len(); i < n; i++ {
		fn(b.At(i))
	}
}

// WorkerCount picks how many goroutines to use for total cells.
func WorkerCount(requested, total int) int {
	if total <= 0 {
		return 0
	}
	workers := requested
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > total {
		workers = total
	}
	if workers <= 0 {
		workers = 1
	}
	return workers
}

// Run evaluates body for every point of box on up to workers goroutines and
// passes each result to apply, one point at a time, in lattice order.
// body must depend only on its point. apply is never called concurrently.
func Run[T any](ctx context.Context, workers int, box Box, body func(Point) []T, apply func(T)) error {
	total := box.Len()
	if total == 0 {
		return ctx.Err()
	}
	workers = WorkerCount(workers, total)

	slots := make([][]T, total)
	batch := (total + workers*4 - 1) / (workers * 4)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for start := 0; start < total; start += batch {
		start, end := start, min(start+batch, total)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			for i := start; i < end; i++ {
				slots[i] = body(box.At(i))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	for _, results := range slots {
		for _, r := range results {
			apply(r)
		}
	}
	return nil
}
