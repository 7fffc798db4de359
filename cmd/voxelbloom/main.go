package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"voxelbloom/internal/bloom"
	"voxelbloom/internal/config"
	"voxelbloom/internal/world"
)

type options struct {
	configPath string
	outputDir  string
	seed       int64
	seedSet    bool
	render     string
	renderSet  bool
	debug      bool
}

func parseFlags(args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("voxelbloom", flag.ContinueOnError)
	fs.StringVar(&opts.configPath, "config", "voxelbloom.yml", "path to the scene configuration file")
	fs.StringVar(&opts.outputDir, "out", "", "directory for rendered images (overrides render.output_dir)")
	fs.Int64Var(&opts.seed, "seed", 0, "random seed (overrides generation.seed, 0 picks one from the clock)")
	fs.StringVar(&opts.render, "render", "", "comma separated render modes: isometric, plan (empty string disables rendering)")
	fs.BoolVar(&opts.debug, "debug", false, "enable development logging")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "seed":
			opts.seedSet = true
		case "render":
			opts.renderSet = true
		}
	})
	return opts, nil
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		os.Exit(flagExitCode(err))
	}

	logger, err := newLogger(opts.debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "initialise logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := loadConfig(opts.configPath, logger)
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}
	if err := applyOverrides(cfg, opts); err != nil {
		logger.Fatal("apply flags", zap.Error(err))
	}

	ctx, cancel := signalContext(context.Background(), logger)
	defer cancel()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("voxelbloom exited", zap.Error(err))
	}
}

// flagExitCode maps a flag parsing error to the process exit status. Asking
// for help is not a failure.
func flagExitCode(err error) int {
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	return 2
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// loadConfig prefers the inline environment configuration, then the file at
// path. A missing file is created with the defaults.
func loadConfig(path string, logger *zap.Logger) (*config.Config, error) {
	cfg, ok, err := config.FromEnvironment()
	if err != nil {
		return nil, err
	}
	if ok {
		logger.Info("configuration loaded from environment", zap.String("variable", config.EnvInlineConfig))
		return cfg, nil
	}

	cfg, err = config.Load(path)
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	if err := config.WriteDefault(path); err != nil {
		return nil, err
	}
	logger.Info("no configuration found, default configuration written", zap.String("path", path))
	return config.Load(path)
}

func applyOverrides(cfg *config.Config, opts options) error {
	if opts.outputDir != "" {
		cfg.Render.OutputDir = opts.outputDir
	}
	if opts.seedSet {
		cfg.Generation.Seed = opts.seed
	}
	if opts.renderSet {
		cfg.Render.Modes = splitModes(opts.render)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}
	return nil
}

func splitModes(raw string) []string {
	modes := []string{}
	for _, part := range strings.Split(raw, ",") {
		if mode := strings.TrimSpace(part); mode != "" {
			modes = append(modes, mode)
		}
	}
	return modes
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) (err error) {
	renderers, err := world.NewRenderers(cfg.Render)
	if err != nil {
		return err
	}
	scene := world.NewScene(world.EnvironmentFromConfig(cfg), logger, renderers...)
	defer func() {
		if cerr := scene.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close scene: %w", cerr)
		}
	}()

	gen := bloom.NewGenerator(cfg.Generation.Seed, cfg.Generation.Workers, logger)
	logger.Info("planting garden",
		zap.String("scene", scene.ID),
		zap.Int64("seed", gen.Seed()),
		zap.Strings("renderers", cfg.Render.Modes),
	)

	started := time.Now()
	if err := bloom.NewGarden(gen, logger).Plant(ctx, scene); err != nil {
		return err
	}
	logger.Info("scene complete",
		zap.String("scene", scene.ID),
		zap.Duration("elapsed", time.Since(started)),
	)
	return nil
}

func signalContext(parent context.Context, logger *zap.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer signal.Stop(signals)
		select {
		case sig := <-signals:
			logger.Warn("interrupted, stopping", zap.String("signal", sig.String()))
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}
