package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"phong-renderer/internal/batch"
	"phong-renderer/internal/config"
	"phong-renderer/internal/logger"
	"phong-renderer/internal/raster"
	"phong-renderer/internal/texture"
)

func main() {
	os.Exit(run())
}

func run() int {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.yaml file")
	initFile := flag.String("init", "", "Write the default config to this path and exit")
	job := flag.String("job", "", "Render only the job with this name")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	baseDir := flag.String("base", "", "Directory relative paths are resolved against")
	outputDir := flag.String("output", "", "Output directory (default: renders)")
	format := flag.String("format", "", "Output format: webp, png or tga (default: webp)")
	size := flag.Int("size", 0, "Output size in pixels (default: 256)")
	logLevel := flag.String("log-level", "", "Log level: debug, info, warn, error")

	flag.Parse()

	if *initFile != "" {
		if err := config.Default().SaveTo(*initFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing config: %v\n", err)
			return 1
		}
		fmt.Printf("Wrote %s\n", *initFile)
		return 0
	}

	// Load config
	cfg := config.Default()
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			return 1
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		BaseDir:   *baseDir,
		OutputDir: *outputDir,
		Format:    *format,
		Size:      *size,
		Workers:   *workers,
		LogLevel:  *logLevel,
	})

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logger: %v\n", err)
		return 1
	}
	defer logger.Sync()

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid config", zap.Error(err))
		return 1
	}

	jobs := cfg.Jobs
	if *job != "" {
		jobs = nil
		for _, j := range cfg.Jobs {
			if j.Name == *job {
				jobs = append(jobs, j)
			}
		}
	}
	if len(jobs) == 0 {
		logger.Info("no jobs to render")
		return 0
	}

	lights := make(map[string]raster.LightConfig, len(cfg.Lights))
	for name, l := range cfg.Lights {
		lights[name] = l.LightConfig()
	}

	// Build normal map index
	texIndex := texture.BuildIndex(cfg.NormalMapDir)
	texCache := texture.NewCache(texIndex)

	logger.Info("starting render",
		zap.Int("jobs", len(jobs)),
		zap.Int("workers", cfg.Workers),
		zap.Int("normal_maps", texIndex.Len()),
		zap.String("format", cfg.Format),
		zap.String("output", cfg.OutputDir))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()

	results := batch.Run(ctx, batch.Config{
		OutputDir:   cfg.OutputDir,
		Format:      cfg.Format,
		Lights:      lights,
		TexResolver: texCache,
		RenderSize:  cfg.RenderSize,
		Supersample: cfg.Supersample,
		Workers:     cfg.Workers,
	}, jobs)

	// Count results
	success, failed := 0, 0
	for _, r := range results {
		if r.Success {
			success++
			continue
		}
		failed++
		if failed <= 20 {
			logger.Warn("render failed",
				zap.String("job", r.Job),
				zap.Int("frame", r.Frame),
				zap.String("error", r.Error))
		}
	}

	logger.Info("done",
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("rendered", success),
		zap.Int("failed", failed))

	// Write manifest
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		logger.Warn("manifest dir", zap.Error(err))
	} else if err := batch.WriteManifest(manifestPath, results); err != nil {
		logger.Warn("manifest write failed", zap.Error(err))
	} else {
		logger.Info("manifest written", zap.String("path", manifestPath))
	}

	if failed > 0 {
		return 1
	}
	return 0
}
