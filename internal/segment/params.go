package segment

// Params configures plant segmentation. HSV bounds use the OpenCV
// conventions: hue 0-180, saturation and value 0-255.
type Params struct {
	// HSV threshold for plant-colored pixels. Defaults are calibrated for
	// green vegetation against non-green backgrounds.
	HueMin float64
	HueMax float64
	SatMin float64
	SatMax float64
	ValMin float64
	ValMax float64

	// KernelSize is the side of the square structuring element used for
	// morphological closing and opening of the thresholded mask.
	KernelSize int

	// BlurKernel is the side of the Gaussian blur kernel applied during
	// preprocessing, with sigma derived from the kernel size.
	BlurKernel int
}

// DefaultParams returns segmentation parameters calibrated for green
// vegetation. Recalibrate with WithHSV for non-green subjects.
func DefaultParams() Params {
	return Params{
		HueMin: 25,
		HueMax: 90,
		SatMin: 40,
		SatMax: 255,
		ValMin: 40,
		ValMax: 255,

		KernelSize: 5,
		BlurKernel: 5,
	}
}

// WithHSV returns a copy of params with custom HSV threshold bounds.
func (p Params) WithHSV(hMin, hMax, sMin, sMax, vMin, vMax float64) Params {
	p.HueMin = hMin
	p.HueMax = hMax
	p.SatMin = sMin
	p.SatMax = sMax
	p.ValMin = vMin
	p.ValMax = vMax
	return p
}

// WithKernelSize returns a copy of params with a custom structuring element size.
func (p Params) WithKernelSize(size int) Params {
	p.KernelSize = size
	return p
}
