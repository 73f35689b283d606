package framer

import (
	"fmt"
	"image"
	"image/color"
	"os"

	"github.com/disintegration/imaging"
)

// compose centers the photo over a copy of the frame, shifted vertically by
// offsetFraction of the frame height, and blends it using the photo's own
// alpha channel. Transparent photo pixels leave the frame visible. The
// cached frame is never written to.
func compose(frame, photo *image.NRGBA, offsetFraction float64) *image.NRGBA {
	frameW := frame.Bounds().Dx()
	frameH := frame.Bounds().Dy()
	photoW := photo.Bounds().Dx()
	photoH := photo.Bounds().Dy()

	x := (frameW - photoW) / 2
	y := (frameH-photoH)/2 + int(float64(frameH)*offsetFraction)

	out := imaging.Clone(frame)
	return imaging.Overlay(out, photo, image.Pt(x, y), 1.0)
}

// export encodes the composed image to disk. JPEG output flattens any
// remaining transparency onto a black background, so the encoded bytes do
// not depend on encoder defaults; PNG output keeps the alpha channel. A
// partially written file is removed on encode failure.
func export(img *image.NRGBA, outputPath string, cfg Config) error {
	toWrite := img
	if cfg.jpegOutput() {
		flat := imaging.New(img.Bounds().Dx(), img.Bounds().Dy(), color.NRGBA{0, 0, 0, 255})
		toWrite = imaging.Overlay(flat, img, image.Pt(0, 0), 1.0)
	}

	var err error
	if cfg.jpegOutput() {
		err = imaging.Save(toWrite, outputPath, imaging.JPEGQuality(cfg.Quality))
	} else {
		err = imaging.Save(toWrite, outputPath)
	}
	if err != nil {
		os.Remove(outputPath)
		return fmt.Errorf("failed to save %s: %w", outputPath, err)
	}
	return nil
}
