package framer

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"

	"github.com/menta2k/photo-framer/internal/utils"
)

// ErrFrameLoad indicates the frame file passed validation but could not be
// decoded when first needed. It is fatal to a run: nothing can be produced
// without a frame.
var ErrFrameLoad = errors.New("failed to load frame image")

// OutputSuffix is appended to the input file stem when naming output files.
const OutputSuffix = "_framed"

// Engine composites photos onto a cached frame image.
//
// The frame is loaded lazily on first use and cached for the lifetime of the
// configuration; SetConfig discards it only when the frame path changes.
// Once loaded the frame is read-only, so an Engine may serve concurrent
// preview requests.
type Engine struct {
	mu     sync.Mutex
	config Config
	logger *slog.Logger
	frame  *image.NRGBA
}

// NewEngine validates the configuration and returns an Engine. The frame
// image itself is not loaded until it is first needed.
func NewEngine(config Config) (*Engine, error) {
	return NewEngineWithLogger(config, nil)
}

// NewEngineWithLogger is NewEngine with a custom logger. A nil logger falls
// back to slog.Default().
func NewEngineWithLogger(config Config, logger *slog.Logger) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{config: config, logger: logger}, nil
}

// Config returns a copy of the engine's configuration.
func (e *Engine) Config() Config {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.config
}

// SetConfig replaces the configuration after validating it. The cached frame
// image is discarded only when the frame path changes.
func (e *Engine) SetConfig(config Config) error {
	if err := config.Validate(); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if config.FramePath != e.config.FramePath {
		e.frame = nil
	}
	e.config = config
	return nil
}

// Frame returns the cached frame image, loading it on first access. The
// returned image must not be mutated.
func (e *Engine) Frame() (*image.NRGBA, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.frame != nil {
		return e.frame, nil
	}
	img, err := loadImage(e.config.FramePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFrameLoad, err)
	}
	e.frame = imaging.Clone(img)
	return e.frame, nil
}

// ProcessImage runs the full pipeline for one source file: load, orientation
// correction, classification, sizing, resize, composition and export.
// Failures are reported through the Result, never as a panic; no partial
// output file is left behind.
func (e *Engine) ProcessImage(inputPath string) Result {
	composed, meta, err := e.render(inputPath)
	if err != nil {
		e.logger.Error("processing failed", "path", inputPath, "error", err)
		return Result{InputPath: inputPath, Message: err.Error()}
	}

	cfg := e.Config()
	outputPath := utils.OutputFilename(inputPath, cfg.OutputDir, OutputSuffix, cfg.OutputFormat)
	if err := export(composed, outputPath, cfg); err != nil {
		e.logger.Error("export failed", "path", inputPath, "error", err)
		return Result{InputPath: inputPath, Message: err.Error(), Metadata: meta}
	}

	return Result{
		InputPath:  inputPath,
		OutputPath: outputPath,
		Success:    true,
		Message:    "success",
		Metadata:   meta,
	}
}

// Preview renders a photo onto the frame and returns the composed image
// without writing anything to disk. Used by interactive front-ends for live
// parameter feedback.
func (e *Engine) Preview(inputPath string) (image.Image, error) {
	composed, _, err := e.render(inputPath)
	if err != nil {
		return nil, err
	}
	return composed, nil
}

// ProcessDirectory frames every supported image in the configured input
// directory, in name order.
func (e *Engine) ProcessDirectory() ([]Result, error) {
	cfg := e.Config()
	if err := utils.EnsureDir(cfg.OutputDir); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	files, err := utils.ListImages(cfg.InputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to list input directory: %w", err)
	}
	e.logger.Info("found images", "count", len(files), "dir", cfg.InputDir)

	results := make([]Result, 0, len(files))
	for _, file := range files {
		results = append(results, e.ProcessImage(file))
	}
	return results, nil
}

// render loads, orients, classifies, resizes and composites one photo.
func (e *Engine) render(inputPath string) (*image.NRGBA, *Metadata, error) {
	frame, err := e.Frame()
	if err != nil {
		return nil, nil, err
	}
	cfg := e.Config()

	img, err := loadImage(inputPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode %s: %w", filepath.Base(inputPath), err)
	}

	// Uniform 4-channel representation.
	src := imaging.Clone(img)

	origW := src.Bounds().Dx()
	origH := src.Bounds().Dy()
	orientation := ClassifyOrientation(origW, origH)

	meta := &Metadata{
		Path:        inputPath,
		Orientation: orientation,
		Width:       origW,
		Height:      origH,
	}

	frameW := frame.Bounds().Dx()
	frameH := frame.Bounds().Dy()
	targetW, targetH := TargetSize(origW, origH, orientation, frameW, frameH, cfg.PortraitScale, cfg.LandscapeScale)

	resized := imaging.Resize(src, targetW, targetH, imaging.Lanczos)

	composed := compose(frame, resized, cfg.offsetFor(orientation))
	return composed, meta, nil
}

// loadImage opens an image, applying any embedded EXIF orientation so the
// photo's visual orientation drives classification. WebP files fall back to
// an explicit decode.
func loadImage(path string) (image.Image, error) {
	if img, err := imaging.Open(path, imaging.AutoOrientation(true)); err == nil {
		return img, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if strings.HasSuffix(strings.ToLower(path), ".webp") {
		if img, err := webp.Decode(f); err == nil {
			return img, nil
		}
		if _, err := f.Seek(0, 0); err == nil {
			if img, _, err := image.Decode(f); err == nil {
				return img, nil
			}
		}
	} else {
		if img, _, err := image.Decode(f); err == nil {
			return img, nil
		}
	}
	return nil, fmt.Errorf("image: unknown format for %s", path)
}
