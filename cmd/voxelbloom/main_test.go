package main

import (
	"context"
	"encoding/base64"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"go.uber.org/zap/zaptest"
	"gopkg.in/yaml.v3"

	"voxelbloom/internal/config"
)

func TestParseFlagsTracksExplicitValues(t *testing.T) {
	opts, err := parseFlags([]string{"-seed", "0", "-out", "/tmp/x"})
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}
	if !opts.seedSet {
		t.Fatalf("expected explicit -seed to be tracked")
	}
	if opts.renderSet {
		t.Fatalf("-render was not passed")
	}
	if opts.configPath != "voxelbloom.yml" {
		t.Fatalf("unexpected default config path %q", opts.configPath)
	}
}

func TestHelpFlagExitsCleanly(t *testing.T) {
	_, err := parseFlags([]string{"-h"})
	if !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("expected flag.ErrHelp, got %v", err)
	}
	if code := flagExitCode(err); code != 0 {
		t.Fatalf("help should exit 0, got %d", code)
	}

	_, err = parseFlags([]string{"-seed", "many"})
	if err == nil {
		t.Fatalf("expected a bad -seed value to fail")
	}
	if code := flagExitCode(err); code != 2 {
		t.Fatalf("bad flags should exit 2, got %d", code)
	}
}

func TestApplyOverrides(t *testing.T) {
	cfg := config.Default()
	cfg.Generation.Seed = 5
	opts := options{outputDir: "renders", seed: 42, seedSet: true, render: " plan, ,isometric ", renderSet: true}

	if err := applyOverrides(cfg, opts); err != nil {
		t.Fatalf("applyOverrides: %v", err)
	}
	if cfg.Render.OutputDir != "renders" {
		t.Fatalf("unexpected output dir %q", cfg.Render.OutputDir)
	}
	if cfg.Generation.Seed != 42 {
		t.Fatalf("unexpected seed %d", cfg.Generation.Seed)
	}
	if want := []string{"plan", "isometric"}; !reflect.DeepEqual(cfg.Render.Modes, want) {
		t.Fatalf("unexpected modes %v", cfg.Render.Modes)
	}
}

func TestApplyOverridesRejectsUnknownMode(t *testing.T) {
	cfg := config.Default()
	if err := applyOverrides(cfg, options{render: "voxel", renderSet: true}); err == nil {
		t.Fatalf("expected unknown render mode to be rejected")
	}
}

func TestLoadConfigWritesDefault(t *testing.T) {
	t.Setenv(config.EnvInlineConfig, "")
	path := filepath.Join(t.TempDir(), "nested", "voxelbloom.yml")

	cfg, err := loadConfig(path, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if !reflect.DeepEqual(cfg, config.Default()) {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("default config not written: %v", err)
	}
}

func TestLoadConfigPrefersEnvironment(t *testing.T) {
	cfg := config.Default()
	cfg.Render.Name = "from-env"
	data, err := yaml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	t.Setenv(config.EnvInlineConfig, base64.StdEncoding.EncodeToString(data))

	path := filepath.Join(t.TempDir(), "voxelbloom.yml")
	loaded, err := loadConfig(path, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if loaded.Render.Name != "from-env" {
		t.Fatalf("unexpected render name %q", loaded.Render.Name)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("config file should not be written when the environment supplies one")
	}
}

func TestRunRendersScene(t *testing.T) {
	cfg := config.Default()
	cfg.Generation.Seed = 11
	cfg.Render.OutputDir = t.TempDir()

	if err := run(context.Background(), cfg, zaptest.NewLogger(t)); err != nil {
		t.Fatalf("run: %v", err)
	}
	for _, mode := range cfg.Render.Modes {
		path := filepath.Join(cfg.Render.OutputDir, "bloom_"+mode+".png")
		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("missing %s render: %v", mode, err)
		}
		if info.Size() == 0 {
			t.Fatalf("%s render is empty", mode)
		}
	}
}
