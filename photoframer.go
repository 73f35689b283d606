// Package photoframer composites photographs onto a fixed frame background,
// scaling and centering each photo according to its orientation.
//
// Basic usage:
//
//	package main
//
//	import (
//		"fmt"
//		"log"
//
//		photoframer "github.com/menta2k/photo-framer"
//		"github.com/menta2k/photo-framer/pkg/framer"
//	)
//
//	func main() {
//		cfg := framer.DefaultConfig()
//		cfg.FramePath = "frame.png"
//		cfg.InputDir = "./photos"
//		cfg.OutputDir = "./framed"
//
//		pf, err := photoframer.New(cfg)
//		if err != nil {
//			log.Fatal(err)
//		}
//
//		results, err := pf.FrameDirectory(func(done, total int, name string) {
//			fmt.Printf("%d/%d %s\n", done, total, name)
//		})
//		if err != nil {
//			log.Fatal(err)
//		}
//
//		for _, r := range results {
//			fmt.Printf("%s -> %s (ok=%v)\n", r.InputPath, r.OutputPath, r.Success)
//		}
//	}
//
// The package consists of three main components:
//
// 1. Framer (pkg/framer): orientation classification, target sizing and the
// single-image composition pipeline
// 2. Batch (pkg/batch): ordered batch processing with progress reporting and
// cooperative cancellation
// 3. Scanner (pkg/scanner): directory scanning and orientation census for
// interactive front-ends
//
// Photos are fit within a box derived from the frame size and a
// per-orientation scale factor, resized with Lanczos resampling, then
// alpha-composited over the frame. PNG output keeps transparency; JPEG
// output is flattened onto a black background and encoded with the
// configured quality.
package photoframer

import (
	"image"

	"github.com/menta2k/photo-framer/internal/utils"
	"github.com/menta2k/photo-framer/pkg/batch"
	"github.com/menta2k/photo-framer/pkg/framer"
)

// Version of the photo framer library
const Version = "1.0.0"

// PhotoFramer provides a high-level interface over the framing engine.
type PhotoFramer struct {
	engine *framer.Engine
}

// New validates the configuration and returns a PhotoFramer.
func New(config framer.Config) (*PhotoFramer, error) {
	engine, err := framer.NewEngine(config)
	if err != nil {
		return nil, err
	}
	return &PhotoFramer{engine: engine}, nil
}

// Engine exposes the underlying engine for advanced use.
func (pf *PhotoFramer) Engine() *framer.Engine {
	return pf.engine
}

// FrameImage processes a single photo and writes the framed output.
func (pf *PhotoFramer) FrameImage(inputPath string) framer.Result {
	return pf.engine.ProcessImage(inputPath)
}

// Preview returns the framed composition for one photo without saving it.
func (pf *PhotoFramer) Preview(inputPath string) (image.Image, error) {
	return pf.engine.Preview(inputPath)
}

// NewRunner returns a batch runner bound to this framer's engine. Use a
// fresh runner per run so cancellation state never carries over.
func (pf *PhotoFramer) NewRunner() *batch.Runner {
	return batch.NewRunner(pf.engine)
}

// FrameFiles processes an explicit ordered list of files.
func (pf *PhotoFramer) FrameFiles(files []string, progress batch.ProgressFunc) ([]framer.Result, error) {
	return pf.NewRunner().Run(files, progress)
}

// FrameDirectory frames every supported image in the configured input
// directory, in name order.
func (pf *PhotoFramer) FrameDirectory(progress batch.ProgressFunc) ([]framer.Result, error) {
	files, err := utils.ListImages(pf.engine.Config().InputDir)
	if err != nil {
		return nil, err
	}
	return pf.FrameFiles(files, progress)
}

// GetVersion returns the library version
func GetVersion() string {
	return Version
}
