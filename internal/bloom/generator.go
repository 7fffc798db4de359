package bloom

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"voxelbloom/internal/lattice"
	"voxelbloom/internal/world"
)

// DefaultJitter is the per-channel jitter scale used for flower colors.
var DefaultJitter = world.RGB(0.1, 0.1, 0.1)

// Generator owns the random source shared by every stamper. Random draws
// happen once per stamp, before the lattice is walked, so lattice bodies
// stay pure and can run in parallel.
type Generator struct {
	rng     *rand.Rand
	seed    int64
	workers int
	logger  *zap.Logger
}

// NewGenerator seeds a generator. A zero seed is replaced with one taken
// from the clock; Seed reports the value actually used.
func NewGenerator(seed int64, workers int, logger *zap.Logger) *Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{
		rng:     rand.New(rand.NewSource(seed)),
		seed:    seed,
		workers: workers,
		logger:  logger,
	}
}

func (g *Generator) Seed() int64 {
	return g.seed
}

// Jitter shifts every channel of c by the same draw in [-0.5, 0.5),
// scaled per channel.
func (g *Generator) Jitter(c, scale world.Color) world.Color {
	return c.Add(scale.Scale(g.rng.Float64() - 0.5))
}

func (g *Generator) stamp(ctx context.Context, w world.Writer, shape string, box lattice.Box, body func(lattice.Point) []world.Write) (int, error) {
	writes := 0
	err := lattice.Run(ctx, g.workers, box, body, func(write world.Write) {
		w.SetVoxel(write.Pos, write.Material, write.Color)
		writes++
	})
	if err != nil {
		return writes, fmt.Errorf("stamp %s: %w", shape, err)
	}
	g.logger.Debug("shape stamped", zap.String("shape", shape), zap.Int("cells", box.Len()), zap.Int("writes", writes))
	return writes, nil
}
