// Package scanner inspects directories and classifies images by orientation
// without fully decoding them, for display in interactive front-ends.
package scanner

import (
	"image"
	"log/slog"
	"os"

	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/menta2k/photo-framer/internal/utils"
	"github.com/menta2k/photo-framer/pkg/framer"
)

// Summary categorizes the images found in a directory.
type Summary struct {
	TotalImages     int
	PortraitCount   int
	LandscapeCount  int
	SquareCount     int
	SamplePortrait  string
	SampleLandscape string
	Images          []string
}

// Scanner reads image headers and counts orientations.
type Scanner struct {
	logger *slog.Logger
}

// New creates a Scanner logging through slog.Default().
func New() *Scanner {
	return NewWithLogger(nil)
}

// NewWithLogger creates a Scanner with a custom logger.
func NewWithLogger(logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scanner{logger: logger}
}

// ScanDirectory counts the images in a directory by orientation and records
// the first portrait and landscape samples. A missing directory yields an
// empty Summary; files that cannot be decoded are skipped with a warning.
func (s *Scanner) ScanDirectory(dir string) Summary {
	var summary Summary
	if !utils.DirExists(dir) {
		return summary
	}

	files, err := utils.ListImages(dir)
	if err != nil {
		s.logger.Warn("could not list directory", "dir", dir, "error", err)
		return summary
	}

	for _, file := range files {
		w, h, err := imageSize(file)
		if err != nil {
			s.logger.Warn("could not analyze image", "path", file, "error", err)
			continue
		}

		summary.Images = append(summary.Images, file)
		switch framer.ClassifyOrientation(w, h) {
		case framer.Square:
			summary.SquareCount++
		case framer.Portrait:
			summary.PortraitCount++
			if summary.SamplePortrait == "" {
				summary.SamplePortrait = file
			}
		default:
			summary.LandscapeCount++
			if summary.SampleLandscape == "" {
				summary.SampleLandscape = file
			}
		}
	}

	summary.TotalImages = summary.PortraitCount + summary.LandscapeCount + summary.SquareCount
	return summary
}

// imageSize reads just enough of a file to learn its dimensions.
func imageSize(path string) (int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, err
	}
	return cfg.Width, cfg.Height, nil
}
