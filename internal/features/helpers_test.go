package features

import (
	"testing"

	"gocv.io/x/gocv"
)

func emptyMask(t *testing.T, rows, cols int) gocv.Mat {
	t.Helper()
	m := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), rows, cols, gocv.MatTypeCV8U)
	t.Cleanup(func() { m.Close() })
	return m
}

func fullMask(t *testing.T, rows, cols int) gocv.Mat {
	t.Helper()
	m := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(255, 0, 0, 0), rows, cols, gocv.MatTypeCV8U)
	t.Cleanup(func() { m.Close() })
	return m
}

// uniformRGB builds an RGB-ordered image filled with one color.
func uniformRGB(t *testing.T, rows, cols int, r, g, b float64) gocv.Mat {
	t.Helper()
	m := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(r, g, b, 0), rows, cols, gocv.MatTypeCV8UC3)
	t.Cleanup(func() { m.Close() })
	return m
}
