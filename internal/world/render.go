package world

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"voxelbloom/internal/config"
)

// Renderer turns a finished scene into an artifact.
type Renderer interface {
	Name() string
	Render(ctx context.Context, scene *Scene) error
}

// NewRenderers builds the renderers listed in cfg.Modes, in order.
func NewRenderers(cfg config.RenderConfig) ([]Renderer, error) {
	renderers := make([]Renderer, 0, len(cfg.Modes))
	for _, mode := range cfg.Modes {
		path := filepath.Join(cfg.OutputDir, fmt.Sprintf("%s_%s.png", cfg.Name, mode))
		switch mode {
		case config.RenderIsometric:
			renderers = append(renderers, &IsometricRenderer{Path: path})
		case config.RenderPlan:
			renderers = append(renderers, &PlanRenderer{Path: path, Title: cfg.Name})
		default:
			return nil, fmt.Errorf("unknown render mode %q", mode)
		}
	}
	return renderers, nil
}

// renderFrame is the voxel box a renderer lays out: the fixed grid when the
// scene has one, otherwise whatever the voxels span.
func renderFrame(scene *Scene) (Bounds, bool) {
	if grid, ok := scene.Environment().GridBounds(); ok {
		return grid, true
	}
	return scene.Bounds()
}

func ensureOutputDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "" {
		return fmt.Errorf("output directory is empty")
	}
	return os.MkdirAll(dir, 0o755)
}

func writePNG(path string, img image.Image) (err error) {
	if err := ensureOutputDir(path); err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create preview: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close preview: %w", cerr)
		}
	}()
	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("encode preview: %w", err)
	}
	return nil
}
