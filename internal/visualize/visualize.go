// Package visualize renders the diagnostic composite for a pipeline run: a
// 2x2 panel image showing the original, the binary mask, a translucent
// foreground overlay, and the dominant contour with its bounding box.
package visualize

import (
	"fmt"
	"image"

	"plant-phenotyper/pkg/colorutil"

	"gocv.io/x/gocv"
)

// overlayOpacity is the blend weight of the green foreground highlight.
const overlayOpacity = 0.4

// Composite builds the 2x2 diagnostic panel from the original BGR image, the
// binary mask and the dominant contour (nil for an empty mask). The caller
// owns the returned Mat.
func Composite(bgr, mask gocv.Mat, contour []image.Point) gocv.Mat {
	maskPanel := gocv.NewMat()
	defer maskPanel.Close()
	gocv.CvtColor(mask, &maskPanel, gocv.ColorGrayToBGR)

	overlay := overlayPanel(bgr, mask)
	defer overlay.Close()

	outline := outlinePanel(bgr, contour)
	defer outline.Close()

	labeled := [4]gocv.Mat{
		labelPanel(bgr, "Original"),
		labelPanel(maskPanel, "Mask"),
		labelPanel(overlay, "Overlay"),
		labelPanel(outline, "Contour"),
	}
	for _, p := range labeled {
		defer p.Close()
	}

	top := gocv.NewMat()
	defer top.Close()
	gocv.Hconcat(labeled[0], labeled[1], &top)

	bottom := gocv.NewMat()
	defer bottom.Close()
	gocv.Hconcat(labeled[2], labeled[3], &bottom)

	grid := gocv.NewMat()
	gocv.Vconcat(top, bottom, &grid)
	return grid
}

// Save renders the composite and writes it to path.
func Save(path string, bgr, mask gocv.Mat, contour []image.Point) error {
	grid := Composite(bgr, mask, contour)
	defer grid.Close()

	if ok := gocv.IMWrite(path, grid); !ok {
		return fmt.Errorf("write composite image %s", path)
	}
	return nil
}

// overlayPanel blends a green highlight over the foreground region.
func overlayPanel(bgr, mask gocv.Mat) gocv.Mat {
	green := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 200, 0, 0),
		bgr.Rows(), bgr.Cols(), gocv.MatTypeCV8UC3)
	defer green.Close()

	blend := gocv.NewMat()
	defer blend.Close()
	gocv.AddWeighted(bgr, 1-overlayOpacity, green, overlayOpacity, 0, &blend)

	panel := bgr.Clone()
	blend.CopyToWithMask(&panel, mask)
	return panel
}

// outlinePanel draws the dominant contour and its bounding box.
func outlinePanel(bgr gocv.Mat, contour []image.Point) gocv.Mat {
	panel := bgr.Clone()
	if len(contour) == 0 {
		return panel
	}

	contours := gocv.NewPointsVectorFromPoints([][]image.Point{contour})
	defer contours.Close()
	gocv.DrawContours(&panel, contours, 0, colorutil.Red, 2)

	pv := gocv.NewPointVectorFromPoints(contour)
	defer pv.Close()
	gocv.Rectangle(&panel, gocv.BoundingRect(pv), colorutil.Yellow, 2)

	return panel
}

// labelPanel clones the panel and stamps its title in the top-left corner.
func labelPanel(panel gocv.Mat, title string) gocv.Mat {
	labeled := panel.Clone()
	gocv.PutText(&labeled, title, image.Point{X: 10, Y: 30},
		gocv.FontHersheySimplex, 0.9, colorutil.White, 2)
	return labeled
}
