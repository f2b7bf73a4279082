package features

import (
	"math"

	"gocv.io/x/gocv"
)

// Texture computes gradient-magnitude and second-derivative statistics over
// the masked pixels of a denoised RGB image, as a proxy for surface
// complexity (venation, irregular margins). A mask with no foreground yields
// an empty Set; mismatched dimensions are a contract violation.
func Texture(rgb, mask gocv.Mat) (Set, error) {
	if rgb.Rows() != mask.Rows() || rgb.Cols() != mask.Cols() {
		return nil, &ShapeMismatchError{
			ImageRows: rgb.Rows(), ImageCols: rgb.Cols(),
			MaskRows: mask.Rows(), MaskCols: mask.Cols(),
		}
	}

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(rgb, &gray, gocv.ColorRGBToGray)

	gx := gocv.NewMat()
	defer gx.Close()
	gocv.Sobel(gray, &gx, gocv.MatTypeCV64F, 1, 0, 3, 1, 0, gocv.BorderDefault)

	gy := gocv.NewMat()
	defer gy.Close()
	gocv.Sobel(gray, &gy, gocv.MatTypeCV64F, 0, 1, 3, 1, 0, gocv.BorderDefault)

	lap := gocv.NewMat()
	defer lap.Close()
	gocv.Laplacian(gray, &lap, gocv.MatTypeCV64F, 3, 1, 0, gocv.BorderDefault)

	rows, cols := gray.Rows(), gray.Cols()
	var magnitudes, laplacians []float64
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			if mask.GetUCharAt(y, x) == 0 {
				continue
			}
			magnitudes = append(magnitudes, math.Hypot(gx.GetDoubleAt(y, x), gy.GetDoubleAt(y, x)))
			laplacians = append(laplacians, lap.GetDoubleAt(y, x))
		}
	}

	if len(magnitudes) == 0 {
		return Set{}, nil
	}

	set := Set{
		// Sharpness/texture-complexity proxy: higher variance means more
		// fine-grained surface detail.
		"laplacian_variance": variance(laplacians),
	}
	set["gradient_mean"], set["gradient_std"] = meanStd(magnitudes)
	return set, nil
}
