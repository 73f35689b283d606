package framer

import (
	"fmt"
	"strings"

	"github.com/menta2k/photo-framer/internal/utils"
)

// Config holds all parameters governing one framing run. It is validated
// once when an Engine is built and treated as read-only during a batch run.
type Config struct {
	// FramePath is the background image every photo is composited onto.
	FramePath string
	// InputDir is the directory source photos are enumerated from.
	InputDir string
	// OutputDir receives the framed output files. It is created on demand.
	OutputDir string

	// MarginPercent is reserved: the effective margin is currently inferred
	// from the scale factors.
	MarginPercent float64

	// PortraitScale and LandscapeScale bound the photo relative to the frame
	// dimensions, per orientation. Square images use the landscape factor.
	PortraitScale  float64
	LandscapeScale float64

	// Quality applies to JPEG output only (1-100).
	Quality int

	// OutputFormat is one of "png", "jpg" or "jpeg".
	OutputFormat string

	// PortraitOffsetY and LandscapeOffsetY shift the pasted photo vertically
	// by a fraction of the frame height. Square images use the landscape
	// offset.
	PortraitOffsetY  float64
	LandscapeOffsetY float64

	// RemoveBackground is advisory; background removal is not part of the
	// core pipeline.
	RemoveBackground bool
}

// DefaultConfig returns a Config with the stock scale factors and PNG output.
// Paths must still be filled in before the Config validates.
func DefaultConfig() Config {
	return Config{
		MarginPercent:  5.0,
		PortraitScale:  0.7,
		LandscapeScale: 0.8,
		Quality:        95,
		OutputFormat:   "png",
	}
}

// ValidationError aggregates every problem found in a Config.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid configuration: " + strings.Join(e.Problems, ", ")
}

// Validate checks path existence and numeric ranges. It returns a
// *ValidationError listing every violation, or nil if the configuration is
// usable.
func (c Config) Validate() error {
	var problems []string

	if !utils.FileExists(c.FramePath) {
		problems = append(problems, fmt.Sprintf("frame file not found: %s", c.FramePath))
	}
	if !utils.DirExists(c.InputDir) {
		problems = append(problems, fmt.Sprintf("input directory not found: %s", c.InputDir))
	}
	if c.MarginPercent < 0 || c.MarginPercent > 50 {
		problems = append(problems, fmt.Sprintf("margin percent must be between 0 and 50, got: %g", c.MarginPercent))
	}
	if c.PortraitScale <= 0 || c.PortraitScale > 1 {
		problems = append(problems, fmt.Sprintf("portrait scale must be between 0 and 1, got: %g", c.PortraitScale))
	}
	if c.LandscapeScale <= 0 || c.LandscapeScale > 1 {
		problems = append(problems, fmt.Sprintf("landscape scale must be between 0 and 1, got: %g", c.LandscapeScale))
	}
	if c.Quality < 1 || c.Quality > 100 {
		problems = append(problems, fmt.Sprintf("quality must be between 1 and 100, got: %d", c.Quality))
	}
	switch strings.ToLower(c.OutputFormat) {
	case "png", "jpg", "jpeg":
	default:
		problems = append(problems, fmt.Sprintf("output format must be png or jpg, got: %s", c.OutputFormat))
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

// offsetFor returns the vertical offset fraction governing an orientation.
func (c Config) offsetFor(o Orientation) float64 {
	if o == Portrait {
		return c.PortraitOffsetY
	}
	return c.LandscapeOffsetY
}

// jpegOutput reports whether the configured format drops the alpha channel.
func (c Config) jpegOutput() bool {
	f := strings.ToLower(c.OutputFormat)
	return f == "jpg" || f == "jpeg"
}
