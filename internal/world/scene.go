package world

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Scene owns the sparse voxel grid and renders it once on Finish.
type Scene struct {
	ID        string
	env       Environment
	logger    *zap.Logger
	renderers []Renderer

	mu          sync.Mutex
	store       VoxelStorage
	finished    bool
	writes      int
	outOfGrid   int
	afterFinish int
}

// SceneStats summarises the writes a scene has seen.
type SceneStats struct {
	Voxels      int
	Writes      int
	OutOfGrid   int
	AfterFinish int
}

func NewScene(env Environment, logger *zap.Logger, renderers ...Renderer) *Scene {
	return newSceneWithStorage(env, logger, newMemoryStorage(), renderers...)
}

func newSceneWithStorage(env Environment, logger *zap.Logger, store VoxelStorage, renderers ...Renderer) *Scene {
	if logger == nil {
		logger = zap.NewNop()
	}
	id := uuid.New().String()
	return &Scene{
		ID:        id,
		env:       env,
		logger:    logger.With(zap.String("scene", id)),
		renderers: renderers,
		store:     store,
	}
}

func (s *Scene) Environment() Environment {
	return s.env
}

// SetVoxel stores the voxel, replacing whatever was there. Writes outside
// the grid or after Finish are dropped and counted.
func (s *Scene) SetVoxel(pos BlockCoord, material Material, color Color) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.finished {
		s.afterFinish++
		return
	}
	if grid, ok := s.env.GridBounds(); ok && !grid.Contains(pos) {
		s.outOfGrid++
		return
	}
	s.writes++
	var err error
	if material == MaterialEmpty {
		err = s.store.Delete(pos)
	} else {
		err = s.store.Save(pos, Voxel{Material: material, Color: color})
	}
	if err != nil {
		s.logger.Warn("persist voxel", zap.Any("pos", pos), zap.Error(err))
	}
}

// Voxel returns the voxel stored at pos.
func (s *Scene) Voxel(pos BlockCoord) (Voxel, bool) {
	voxel, ok, err := s.store.Load(pos)
	if err != nil {
		s.logger.Warn("load voxel", zap.Any("pos", pos), zap.Error(err))
		return Voxel{}, false
	}
	return voxel, ok
}

// ForEachVoxel visits every stored voxel in no particular order.
func (s *Scene) ForEachVoxel(fn func(pos BlockCoord, voxel Voxel) bool) {
	if err := s.store.ForEach(fn); err != nil {
		s.logger.Warn("iterate voxels", zap.Error(err))
	}
}

// Snapshot returns the stored voxels sorted by Y, then Z, then X.
func (s *Scene) Snapshot() []Write {
	out := make([]Write, 0, s.store.Len())
	s.ForEachVoxel(func(pos BlockCoord, voxel Voxel) bool {
		out = append(out, Write{Pos: pos, Material: voxel.Material, Color: voxel.Color})
		return true
	})
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].Pos, out[j].Pos
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		if a.Z != b.Z {
			return a.Z < b.Z
		}
		return a.X < b.X
	})
	return out
}

// Bounds returns the box enclosing all stored voxels.
func (s *Scene) Bounds() (Bounds, bool) {
	var tracker BoundsTracker
	s.ForEachVoxel(func(pos BlockCoord, _ Voxel) bool {
		tracker.Observe(pos)
		return true
	})
	return tracker.Bounds()
}

func (s *Scene) Stats() SceneStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return SceneStats{
		Voxels:      s.store.Len(),
		Writes:      s.writes,
		OutOfGrid:   s.outOfGrid,
		AfterFinish: s.afterFinish,
	}
}

func (s *Scene) Finished() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.finished
}

// Finish seals the grid and runs every renderer once.
func (s *Scene) Finish(ctx context.Context) error {
	s.mu.Lock()
	if s.finished {
		s.mu.Unlock()
		return ErrSceneFinished
	}
	s.finished = true
	s.mu.Unlock()

	stats := s.Stats()
	s.logger.Info("scene finished",
		zap.Int("voxels", stats.Voxels),
		zap.Int("writes", stats.Writes),
		zap.Int("outOfGrid", stats.OutOfGrid),
	)

	for _, renderer := range s.renderers {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := renderer.Render(ctx, s); err != nil {
			return fmt.Errorf("render %s: %w", renderer.Name(), err)
		}
		s.logger.Info("scene rendered", zap.String("renderer", renderer.Name()))
	}
	return nil
}

// Close releases the underlying storage.
func (s *Scene) Close() error {
	return s.store.Close()
}
