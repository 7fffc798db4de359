package config

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDefaultConfig(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default configuration should be valid: %v", err)
	}
}

func TestValidateDetectsInvalidConfigurations(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "zero exposure",
			mutate:  func(cfg *Config) { cfg.Scene.Exposure = 0 },
			wantErr: "scene.exposure must be positive",
		},
		{
			name:    "non positive extent",
			mutate:  func(cfg *Config) { cfg.Scene.Extent = 0 },
			wantErr: "scene.extent must be positive",
		},
		{
			name:    "zero light direction",
			mutate:  func(cfg *Config) { cfg.Scene.Light.Direction = Vec3{} },
			wantErr: "scene.light.direction cannot be the zero vector",
		},
		{
			name:    "negative light angle",
			mutate:  func(cfg *Config) { cfg.Scene.Light.Angle = -0.1 },
			wantErr: "scene.light.angle cannot be negative",
		},
		{
			name:    "negative workers",
			mutate:  func(cfg *Config) { cfg.Generation.Workers = -1 },
			wantErr: "generation.workers cannot be negative",
		},
		{
			name:    "missing render name",
			mutate:  func(cfg *Config) { cfg.Render.Name = "" },
			wantErr: "render.name must be set",
		},
		{
			name:    "missing output dir",
			mutate:  func(cfg *Config) { cfg.Render.OutputDir = "" },
			wantErr: "render.output_dir must be set",
		},
		{
			name:    "unknown render mode",
			mutate:  func(cfg *Config) { cfg.Render.Modes = []string{"isometric", "raytrace"} },
			wantErr: "render.modes[1]",
		},
		{
			name:    "odd tile width",
			mutate:  func(cfg *Config) { cfg.Render.TileWidth = 7 },
			wantErr: "render.tile_width must be an even number",
		},
		{
			name:    "zero gamma",
			mutate:  func(cfg *Config) { cfg.Render.Gamma = 0 },
			wantErr: "render.gamma must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestOutputDirOptionalWithoutRenderModes(t *testing.T) {
	cfg := Default()
	cfg.Render.Modes = nil
	cfg.Render.OutputDir = ""
	require.NoError(t, cfg.Validate())
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Fatalf("unexpected config (-want +got):\n%s", diff)
	}
}

func TestLoadOverlaysYAMLOnDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bloom.yml")
	doc := strings.Join([]string{
		"scene:",
		"  exposure: 2",
		"  voxel_edges: true",
		"  light:",
		"    color: [0.5, 0.5, 0.5]",
		"generation:",
		"  seed: 42",
		"render:",
		"  modes: [plan]",
	}, "\n")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	want := Default()
	want.Scene.Exposure = 2
	want.Scene.VoxelEdges = true
	want.Scene.Light.Color = Vec3{0.5, 0.5, 0.5}
	want.Generation.Seed = 42
	want.Render.Modes = []string{RenderPlan}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("unexpected config (-want +got):\n%s", diff)
	}
	assert.Equal(t, Vec3{0.25, 0.25, 0.25}, cfg.LightColor())
}

func TestLoadAcceptsJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bloom.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"generation": {"seed": 7, "workers": 3}}`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, int64(7), cfg.Generation.Seed)
	assert.Equal(t, 3, cfg.Generation.Workers)
}

func TestParseJSONUsesSnakeCaseKeys(t *testing.T) {
	doc := `{"render": {"output_dir": "elsewhere", "tile_width": 16}, "scene": {"voxel_edges": true}}`

	cfg, err := Parse([]byte(doc))
	require.NoError(t, err)

	want := Default()
	want.Render.OutputDir = "elsewhere"
	want.Render.TileWidth = 16
	want.Scene.VoxelEdges = true
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("unexpected config (-want +got):\n%s", diff)
	}
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "camel case json", doc: `{"render": {"outputDir": "elsewhere"}}`},
		{name: "misspelled yaml", doc: "scene:\n  voxel_edge: true\n"},
		{name: "unknown section", doc: "camera:\n  fov: 60\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "parse config")
		})
	}
}

func TestParseEmptyDocumentKeepsDefaults(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Fatalf("unexpected config (-want +got):\n%s", diff)
	}
}

func TestLoadRejectsInvalidDocument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yml")
	require.NoError(t, os.WriteFile(path, []byte("scene:\n  exposure: -1\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validate config")
}

func TestLoadMissingFileWrapsNotExist(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWriteDefaultRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "bloom.yml")
	require.NoError(t, WriteDefault(path))

	cfg, err := Load(path)
	require.NoError(t, err)
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Fatalf("default config did not survive a write (-want +got):\n%s", diff)
	}
}

func TestFromEnvironment(t *testing.T) {
	t.Setenv(EnvInlineConfig, "")
	cfg, ok, err := FromEnvironment()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, cfg)

	payload := base64.StdEncoding.EncodeToString([]byte("generation:\n  seed: 99\n"))
	t.Setenv(EnvInlineConfig, payload)
	cfg, ok, err = FromEnvironment()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(99), cfg.Generation.Seed)

	t.Setenv(EnvInlineConfig, "not base64!")
	_, _, err = FromEnvironment()
	require.Error(t, err)
}
