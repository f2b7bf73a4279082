package features

import (
	"fmt"
	"math"

	"plant-phenotyper/internal/segment"
	"plant-phenotyper/pkg/geometry"

	"gocv.io/x/gocv"
)

// Morphological computes shape descriptors from a binary mask's dominant
// contour. An empty mask is valid: the size-related keys read zero and the
// ratio, centroid and invariant-moment keys are absent.
func Morphological(mask gocv.Mat) Set {
	set := Set{
		"area_foliar_pixels": float64(gocv.CountNonZero(mask)),
	}

	contour := segment.DominantContour(mask)
	if len(contour) == 0 {
		set["largura"] = 0
		set["altura"] = 0
		set["aspect_ratio"] = 0
		return set
	}
	area := set["area_foliar_pixels"]

	pv := gocv.NewPointVectorFromPoints(contour)
	defer pv.Close()

	perimeter := gocv.ArcLength(pv, true)
	set["perimetro"] = perimeter
	if perimeter > 0 {
		// 1.0 for a perfect circle, lower for elongated/irregular shapes
		set["compacidade"] = 4 * math.Pi * area / (perimeter * perimeter)
	}

	rect := gocv.BoundingRect(pv)
	width, height := rect.Dx(), rect.Dy()
	set["largura"] = float64(width)
	set["altura"] = float64(height)
	if width > 0 {
		set["aspect_ratio"] = float64(height) / float64(width)
	} else {
		set["aspect_ratio"] = 0
	}

	pts := make([]geometry.Point2D, len(contour))
	for i, p := range contour {
		pts[i] = geometry.NewPoint2D(float64(p.X), float64(p.Y))
	}
	hullArea := geometry.PolygonArea(geometry.ConvexHull(pts))
	set["area_convexa"] = hullArea
	if hullArea > 0 {
		// Near 1 for convex outlines, lower for lobed/serrated margins
		set["solidez"] = area / hullArea
	}

	m := gocv.Moments(mask, true)
	if m00 := m["m00"]; m00 != 0 {
		set["centro_massa_x"] = m["m10"] / m00
		set["centro_massa_y"] = m["m01"] / m00
		for i, hu := range huMoments(m) {
			set[fmt.Sprintf("hu_moment_%d", i+1)] = hu
		}
	}

	return set
}

// huMoments derives the seven rotation/scale/translation-invariant moments
// from the normalized central moments reported by gocv.Moments.
func huMoments(m map[string]float64) [7]float64 {
	n20, n11, n02 := m["nu20"], m["nu11"], m["nu02"]
	n30, n21, n12, n03 := m["nu30"], m["nu21"], m["nu12"], m["nu03"]

	t0 := n30 + n12
	t1 := n21 + n03

	var hu [7]float64
	hu[0] = n20 + n02
	hu[1] = (n20-n02)*(n20-n02) + 4*n11*n11
	hu[2] = (n30-3*n12)*(n30-3*n12) + (3*n21-n03)*(3*n21-n03)
	hu[3] = t0*t0 + t1*t1
	hu[4] = (n30-3*n12)*t0*(t0*t0-3*t1*t1) + (3*n21-n03)*t1*(3*t0*t0-t1*t1)
	hu[5] = (n20-n02)*(t0*t0-t1*t1) + 4*n11*t0*t1
	hu[6] = (3*n21-n03)*t0*(t0*t0-3*t1*t1) - (n30-3*n12)*t1*(3*t0*t0-t1*t1)
	return hu
}
