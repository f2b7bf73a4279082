package features

import (
	"gocv.io/x/gocv"
	"gonum.org/v1/gonum/stat"
)

// Color computes per-channel statistics and vegetation indices over the
// masked (foreground) pixels of a denoised RGB image. A mask with no
// foreground yields an empty Set. A mask whose dimensions do not match the
// image is a contract violation reported as *ShapeMismatchError.
func Color(rgb, mask gocv.Mat) (Set, error) {
	if rgb.Rows() != mask.Rows() || rgb.Cols() != mask.Cols() {
		return nil, &ShapeMismatchError{
			ImageRows: rgb.Rows(), ImageCols: rgb.Cols(),
			MaskRows: mask.Rows(), MaskCols: mask.Cols(),
		}
	}

	rows, cols := rgb.Rows(), rgb.Cols()
	var rs, gs, bs, exg, vari []float64

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			if mask.GetUCharAt(y, x) == 0 {
				continue
			}
			vec := rgb.GetVecbAt(y, x)
			r, g, b := float64(vec[0]), float64(vec[1]), float64(vec[2])

			rs = append(rs, r)
			gs = append(gs, g)
			bs = append(bs, b)

			// Excess Green: higher means greener vegetation
			exg = append(exg, 2*g-r-b)

			// VARI: pixels with a zero denominator contribute zero to
			// the mean instead of being excluded, keeping the samples
			// aligned with the other indices.
			if den := g + r - b; den != 0 {
				vari = append(vari, (g-r)/den)
			} else {
				vari = append(vari, 0)
			}
		}
	}

	if len(rs) == 0 {
		return Set{}, nil
	}

	set := Set{
		"excess_green_index": stat.Mean(exg, nil),
		"vari_index":         stat.Mean(vari, nil),
	}
	set["mean_R"], set["std_R"] = meanStd(rs)
	set["mean_G"], set["std_G"] = meanStd(gs)
	set["mean_B"], set["std_B"] = meanStd(bs)
	return set, nil
}
