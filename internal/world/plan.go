package world

import (
	"context"
	"fmt"
	"image/color"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

const planSize = 8 * vg.Inch

// PlanRenderer plots the topmost voxel of every X/Z column as seen from above.
type PlanRenderer struct {
	Path  string
	Title string
}

func (r *PlanRenderer) Name() string {
	return "plan"
}

type planColumn struct {
	x, z int
	top  int
	col  Color
}

func (r *PlanRenderer) Render(ctx context.Context, scene *Scene) error {
	if scene == nil {
		return fmt.Errorf("scene is nil")
	}
	env := scene.Environment()
	frame, ok := renderFrame(scene)
	if !ok {
		frame = Bounds{}
	}

	columns := topColumns(scene)
	if err := ctx.Err(); err != nil {
		return err
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s plan (%d columns)", r.Title, len(columns))
	p.X.Label.Text = "x"
	p.Y.Label.Text = "z"
	p.BackgroundColor = env.Background.NRGBA(env.Gamma)
	p.X.Min, p.X.Max = float64(frame.Min.X), float64(frame.Max.X+1)
	p.Y.Min, p.Y.Max = float64(frame.Min.Z), float64(frame.Max.Z+1)

	if len(columns) > 0 {
		pts := make(plotter.XYs, len(columns))
		colors := make([]color.Color, len(columns))
		for i, c := range columns {
			pts[i] = plotter.XY{X: float64(c.x) + 0.5, Y: float64(c.z) + 0.5}
			colors[i] = c.col.Mul(env.Shade(normalTop)).NRGBA(env.Gamma)
		}
		scatter, err := plotter.NewScatter(pts)
		if err != nil {
			return fmt.Errorf("build plan scatter: %w", err)
		}
		span := max(frame.Size().X, frame.Size().Z, 1)
		radius := planSize / vg.Length(span) / 2
		scatter.GlyphStyleFunc = func(i int) draw.GlyphStyle {
			return draw.GlyphStyle{Color: colors[i], Radius: radius, Shape: draw.BoxGlyph{}}
		}
		p.Add(scatter)
	}

	if err := ensureOutputDir(r.Path); err != nil {
		return err
	}
	if err := p.Save(planSize, planSize, r.Path); err != nil {
		return fmt.Errorf("save plan: %w", err)
	}
	return nil
}

// topColumns keeps the highest voxel per X/Z column, sorted by X then Z.
func topColumns(scene *Scene) []planColumn {
	type key struct{ x, z int }
	tops := make(map[key]planColumn)
	// Snapshot is ordered bottom-up, so the last voxel seen in a column is its top.
	for _, w := range scene.Snapshot() {
		if w.Material == MaterialEmpty {
			continue
		}
		tops[key{w.Pos.X, w.Pos.Z}] = planColumn{x: w.Pos.X, z: w.Pos.Z, top: w.Pos.Y, col: w.Color}
	}
	out := make([]planColumn, 0, len(tops))
	for _, c := range tops {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].x != out[j].x {
			return out[i].x < out[j].x
		}
		return out[i].z < out[j].z
	})
	return out
}
