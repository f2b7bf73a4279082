// Package features computes phenotypic descriptors from a segmented plant
// image: shape measurements from the mask's dominant contour, per-channel
// color statistics and vegetation indices, and gradient-based texture
// statistics, all restricted to foreground pixels.
//
// Descriptors are returned as a flat Set keyed by name. Keys whose
// preconditions are not met (zero perimeter, zero hull area, zero moments)
// are omitted rather than reported as zero, so an absent key means "not
// computable" while a present zero is a genuine measurement. Consumers must
// check key presence.
package features

import "fmt"

// Set maps feature names to numeric values. Keys are namespaced by
// convention across the three extractor families and never collide.
type Set map[string]float64

// Merge copies all entries of other into s.
func (s Set) Merge(other Set) {
	for k, v := range other {
		s[k] = v
	}
}

// Has reports whether the named feature was computed.
func (s Set) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// ShapeMismatchError reports a mask whose dimensions do not match the image
// it is applied to. This is a contract violation between pipeline stages,
// not a recoverable input condition.
type ShapeMismatchError struct {
	ImageRows, ImageCols int
	MaskRows, MaskCols   int
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("mask shape %dx%d does not match image shape %dx%d",
		e.MaskRows, e.MaskCols, e.ImageRows, e.ImageCols)
}
