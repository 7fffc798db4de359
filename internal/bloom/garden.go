package bloom

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"voxelbloom/internal/world"
)

var (
	petalInner = world.RGB(0.9, 0.9, 0.9)
	petalOuter = world.RGB(0.9, 0.9, 0.1)
	leafInner  = world.RGB(0.1, 0.9, 0.1)
	leafOuter  = world.RGB(0.3, 0.9, 0.3)
	floorColor = world.RGB(0.3, 0.9, 0.1)
	floorNoise = world.RGB(0.01, 0.08, 0.01)
)

// flowerHead lists the petal rings from the widest, flattest one inward.
var flowerHead = []struct {
	layer    int
	size     int
	tilt     float64
	rotation float64
}{
	{layer: 0, size: 54, tilt: 0.00, rotation: 0},
	{layer: 1, size: 44, tilt: 0.01, rotation: 20},
	{layer: 2, size: 34, tilt: 0.03, rotation: 30},
	{layer: 3, size: 24, tilt: 0.05, rotation: 40},
}

var leafRotations = []float64{-45, 180}

// Stage is one step of the garden layout.
type Stage struct {
	Name string
	Run  func(ctx context.Context, w world.Writer) (int, error)
}

// Garden lays out the flower scene in a fixed order and finishes the sink.
type Garden struct {
	gen    *Generator
	logger *zap.Logger
}

func NewGarden(gen *Generator, logger *zap.Logger) *Garden {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Garden{gen: gen, logger: logger}
}

// Stages returns the layout in call order: trunk, four petal rings, heart,
// two leaves, floor. Later stages overwrite earlier ones where they overlap.
// Colors are jittered when a stage runs, not when the list is built.
func (g *Garden) Stages() []Stage {
	gen := g.gen
	stages := make([]Stage, 0, 9)

	stages = append(stages, Stage{Name: "trunk", Run: func(ctx context.Context, w world.Writer) (int, error) {
		return gen.Trunk(ctx, w, TrunkSpec{Center: world.BlockCoord{X: 0, Y: -30, Z: 2}, Radius: 3, Height: 30})
	}})

	for _, petal := range flowerHead {
		stages = append(stages, Stage{Name: fmt.Sprintf("petal-%d", petal.layer), Run: func(ctx context.Context, w world.Writer) (int, error) {
			return gen.Petal(ctx, w, BladeSpec{
				Center:   world.BlockCoord{X: 0, Y: 10, Z: petal.layer},
				Size:     petal.size,
				Inner:    gen.Jitter(petalInner, DefaultJitter),
				Outer:    gen.Jitter(petalOuter, DefaultJitter),
				Tilt:     petal.tilt,
				Rotation: petal.rotation,
			})
		}})
	}

	stages = append(stages, Stage{Name: "heart", Run: func(ctx context.Context, w world.Writer) (int, error) {
		return gen.Heart(ctx, w, HeartSpec{Center: world.BlockCoord{X: 0, Y: 10, Z: 9}, Size: 8})
	}})

	for i, rotation := range leafRotations {
		stages = append(stages, Stage{Name: fmt.Sprintf("leaf-%d", i), Run: func(ctx context.Context, w world.Writer) (int, error) {
			return gen.Leaf(ctx, w, BladeSpec{
				Center:   world.BlockCoord{X: 0, Y: -45, Z: 1},
				Size:     44,
				Inner:    gen.Jitter(leafInner, DefaultJitter),
				Outer:    gen.Jitter(leafOuter, DefaultJitter),
				Tilt:     0.01,
				Rotation: rotation,
			})
		}})
	}

	stages = append(stages, Stage{Name: "floor", Run: func(ctx context.Context, w world.Writer) (int, error) {
		return gen.Floor(ctx, w, FloorSpec{
			Center: world.BlockCoord{X: 0, Y: -60, Z: 0},
			Size:   56,
			Color:  floorColor,
			Noise:  floorNoise,
		})
	}})

	return stages
}

// Plant runs every stage against sink, then finishes it.
func (g *Garden) Plant(ctx context.Context, sink world.Sink) error {
	stages := g.Stages()
	total := 0
	for i, stage := range stages {
		writes, err := stage.Run(ctx, sink)
		if err != nil {
			return fmt.Errorf("garden stage %s: %w", stage.Name, err)
		}
		total += writes
		g.logger.Info("garden progress",
			zap.String("stage", stage.Name),
			zap.Int("step", i+1),
			zap.Int("of", len(stages)),
			zap.Int("writes", writes),
		)
	}
	g.logger.Info("garden planted", zap.Int64("seed", g.gen.Seed()), zap.Int("writes", total))
	if err := sink.Finish(ctx); err != nil {
		return fmt.Errorf("finish scene: %w", err)
	}
	return nil
}
