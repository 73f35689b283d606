package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/lmittmann/tint"

	"github.com/menta2k/photo-framer/internal/config"
	"github.com/menta2k/photo-framer/internal/utils"
	"github.com/menta2k/photo-framer/pkg/batch"
	"github.com/menta2k/photo-framer/pkg/framer"
)

func main() {
	defaults, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	var (
		framePath       = flag.String("frame", defaults.FramePath, "path to the frame/background image")
		inputDir        = flag.String("input", defaults.InputDir, "directory containing source images")
		outputDir       = flag.String("output", defaults.OutputDir, "directory to save processed images")
		margin          = flag.Float64("margin", defaults.MarginPercent, "margin percentage (reserved, inferred from scale)")
		portraitScale   = flag.Float64("portrait-scale", defaults.PortraitScale, "scale factor for portrait images relative to the frame")
		landscapeScale  = flag.Float64("landscape-scale", defaults.LandscapeScale, "scale factor for landscape images relative to the frame")
		quality         = flag.Int("quality", defaults.Quality, "JPEG output quality 1-100")
		format          = flag.String("format", defaults.OutputFormat, "output image format: png|jpg|jpeg")
		portraitOffset  = flag.Float64("portrait-offset", defaults.PortraitOffsetY, "vertical offset for portrait images as a fraction of frame height")
		landscapeOffset = flag.Float64("landscape-offset", defaults.LandscapeOffsetY, "vertical offset for landscape and square images as a fraction of frame height")
	)
	flag.Parse()

	logger := slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      parseLevel(defaults.LogLevel),
			TimeFormat: "15:04:05",
		}),
	)
	slog.SetDefault(logger)

	cfg := framer.Config{
		FramePath:        absPath(*framePath),
		InputDir:         absPath(*inputDir),
		OutputDir:        absPath(*outputDir),
		MarginPercent:    *margin,
		PortraitScale:    *portraitScale,
		LandscapeScale:   *landscapeScale,
		Quality:          *quality,
		OutputFormat:     *format,
		PortraitOffsetY:  *portraitOffset,
		LandscapeOffsetY: *landscapeOffset,
	}

	engine, err := framer.NewEngineWithLogger(cfg, logger)
	if err != nil {
		logger.Error("fatal error", "error", err)
		os.Exit(1)
	}

	logger.Info("starting photo framer",
		"frame", cfg.FramePath,
		"input", cfg.InputDir,
		"output", cfg.OutputDir,
		"format", cfg.OutputFormat,
	)

	files, err := utils.ListImages(cfg.InputDir)
	if err != nil {
		logger.Error("fatal error", "error", err)
		os.Exit(1)
	}
	logger.Info("found images", "count", len(files))

	runner := batch.NewRunnerWithLogger(engine, logger)
	results, err := runner.Run(files, func(done, total int, name string) {
		logger.Info("processed", "file", name, "done", done, "total", total)
	})
	if err != nil {
		logger.Error("fatal error", "error", err)
		os.Exit(1)
	}

	var failed []framer.Result
	for _, r := range results {
		if !r.Success {
			failed = append(failed, r)
		}
	}

	logger.Info("processing complete", "success", len(results)-len(failed), "failed", len(failed))

	if len(failed) > 0 {
		logger.Warn("some images failed to process")
		for _, r := range failed {
			logger.Warn("failed", "file", filepath.Base(r.InputPath), "reason", r.Message)
		}
	}
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func absPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
