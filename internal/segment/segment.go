// Package segment isolates the plant from the background of a phenotyping
// image. Segmentation thresholds green-vegetation colors in HSV space, cleans
// the binary mask morphologically and keeps only the largest connected
// region, on the assumption that the plant is the single largest green
// object in frame.
package segment

import (
	"errors"
	"image"

	"plant-phenotyper/pkg/colorutil"

	"gocv.io/x/gocv"
)

// ErrNoPlantDetected reports that no foreground pixels survived thresholding
// and cleanup. It is a valid terminal state, not a failure: the accompanying
// mask is empty and all dependent features read as zero or absent.
var ErrNoPlantDetected = errors.New("no plant detected")

// Preprocess converts a BGR image to denoised RGB: the channel order used by
// the extractors, with a Gaussian blur to suppress sensor and compression
// noise before thresholding. Always recomputed from the original; the input
// is not modified. The caller owns the returned Mat.
func Preprocess(bgr gocv.Mat, params Params) gocv.Mat {
	rgb := gocv.NewMat()
	gocv.CvtColor(bgr, &rgb, gocv.ColorBGRToRGB)

	blurred := gocv.NewMat()
	gocv.GaussianBlur(rgb, &blurred, image.Point{X: params.BlurKernel, Y: params.BlurKernel}, 0, 0, gocv.BorderDefault)
	rgb.Close()

	return blurred
}

// Segment produces a binary foreground mask for a denoised RGB image. The
// returned mask has the input's dimensions, contains at most one connected
// foreground component, and must be Closed by the caller. When nothing green
// is found the mask is empty and the error is ErrNoPlantDetected.
func Segment(rgb gocv.Mat, params Params) (gocv.Mat, error) {
	hsv := gocv.NewMat()
	defer hsv.Close()
	gocv.CvtColor(rgb, &hsv, gocv.ColorRGBToHSV)

	// Threshold plant-colored pixels
	raw := gocv.NewMat()
	defer raw.Close()
	gocv.InRangeWithScalar(hsv,
		gocv.NewScalar(params.HueMin, params.SatMin, params.ValMin, 0),
		gocv.NewScalar(params.HueMax, params.SatMax, params.ValMax, 0),
		&raw)

	// Close before open: interior holes must be healed before speckle
	// removal, or opening can erase thin plant structures first.
	kernel := gocv.GetStructuringElement(gocv.MorphRect, image.Point{X: params.KernelSize, Y: params.KernelSize})
	defer kernel.Close()
	gocv.MorphologyEx(raw, &raw, gocv.MorphClose, kernel)
	gocv.MorphologyEx(raw, &raw, gocv.MorphOpen, kernel)

	mask := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0),
		rgb.Rows(), rgb.Cols(), gocv.MatTypeCV8U)

	contours := gocv.FindContours(raw, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()
	if contours.Size() == 0 {
		return mask, ErrNoPlantDetected
	}

	// Keep only the largest region; smaller ones are assumed to be
	// background noise, insects, labels and the like.
	largest := 0
	largestArea := gocv.ContourArea(contours.At(0))
	for i := 1; i < contours.Size(); i++ {
		if area := gocv.ContourArea(contours.At(i)); area > largestArea {
			largest = i
			largestArea = area
		}
	}
	gocv.DrawContours(&mask, contours, largest, colorutil.White, -1)

	return mask, nil
}

// DominantContour re-derives the outline of the mask's foreground region.
// With a mask produced by Segment there is at most one external contour, but
// the largest is selected regardless so the function is safe on any binary
// image. Returns nil for an empty mask.
func DominantContour(mask gocv.Mat) []image.Point {
	contours := gocv.FindContours(mask, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()
	if contours.Size() == 0 {
		return nil
	}

	largest := 0
	largestArea := gocv.ContourArea(contours.At(0))
	for i := 1; i < contours.Size(); i++ {
		if area := gocv.ContourArea(contours.At(i)); area > largestArea {
			largest = i
			largestArea = area
		}
	}

	return contours.At(largest).ToPoints()
}
