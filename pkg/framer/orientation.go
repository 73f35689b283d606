package framer

// squareTolerance is the relative difference between width and height below
// which an image counts as square.
const squareTolerance = 0.01

// ClassifyOrientation determines whether an image is portrait, landscape or
// square. Any positive dimension pair is classifiable.
func ClassifyOrientation(width, height int) Orientation {
	maxSide := width
	if height > maxSide {
		maxSide = height
	}
	diff := width - height
	if diff < 0 {
		diff = -diff
	}

	if float64(diff)/float64(maxSide) < squareTolerance {
		return Square
	}
	if height > width {
		return Portrait
	}
	return Landscape
}

// TargetSize computes the dimensions a photo should be resized to before it
// is placed on the frame. The photo is fit within a box derived from the
// frame size and the orientation's scale factor: portrait images anchor to
// the frame height, landscape images to the frame width, and square images
// borrow the landscape factor. The input aspect ratio is preserved and the
// final dimensions are truncated to integers, with a floor of 1 pixel so
// extreme aspect ratios never produce a zero dimension.
func TargetSize(origWidth, origHeight int, orientation Orientation, frameWidth, frameHeight int, portraitScale, landscapeScale float64) (int, int) {
	frameW := float64(frameWidth)
	frameH := float64(frameHeight)
	aspect := float64(origWidth) / float64(origHeight)

	var targetW, targetH float64
	switch orientation {
	case Portrait:
		targetH = frameH * portraitScale
		targetW = targetH * aspect
		if targetW > frameW*portraitScale {
			// Wide for a portrait frame slot, constrain on width instead.
			targetW = frameW * portraitScale
			targetH = targetW / aspect
		}
	case Landscape:
		targetW = frameW * landscapeScale
		targetH = targetW / aspect
		if targetH > frameH*landscapeScale {
			targetH = frameH * landscapeScale
			targetW = targetH * aspect
		}
	default: // square
		targetH = frameH * landscapeScale
		targetW = targetH
		if targetW > frameW*landscapeScale {
			targetW = frameW * landscapeScale
			targetH = targetW
		}
	}

	w, h := int(targetW), int(targetH)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}
