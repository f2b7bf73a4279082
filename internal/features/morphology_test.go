package features

import (
	"fmt"
	"image"
	"math"
	"testing"

	"plant-phenotyper/pkg/colorutil"

	"github.com/stretchr/testify/assert"
	"gocv.io/x/gocv"
)

func TestMorphologicalEmptyMask(t *testing.T) {
	mask := emptyMask(t, 100, 100)

	set := Morphological(mask)

	assert.Equal(t, 0.0, set["area_foliar_pixels"])
	assert.Equal(t, 0.0, set["largura"])
	assert.Equal(t, 0.0, set["altura"])
	assert.Equal(t, 0.0, set["aspect_ratio"])

	absent := []string{
		"perimetro", "compacidade", "area_convexa", "solidez",
		"centro_massa_x", "centro_massa_y",
		"hu_moment_1", "hu_moment_2", "hu_moment_3", "hu_moment_4",
		"hu_moment_5", "hu_moment_6", "hu_moment_7",
	}
	for _, key := range absent {
		assert.False(t, set.Has(key), "key %s should be absent", key)
	}
}

func TestMorphologicalCircle(t *testing.T) {
	const radius = 50
	mask := emptyMask(t, 200, 200)
	gocv.Circle(&mask, image.Pt(100, 100), radius, colorutil.White, -1)

	set := Morphological(mask)

	wantArea := math.Pi * radius * radius
	assert.InDelta(t, wantArea, set["area_foliar_pixels"], wantArea*0.03)

	// Rasterization inflates the measured perimeter slightly, so the
	// compactness of a digital circle lands a bit under the ideal 1.0.
	assert.Greater(t, set["compacidade"], 0.8)
	assert.Less(t, set["compacidade"], 1.05)

	assert.InDelta(t, 2*math.Pi*radius, set["perimetro"], 2*math.Pi*radius*0.15)
	assert.InDelta(t, 1.0, set["aspect_ratio"], 0.05)
	assert.InDelta(t, 2*radius+1, set["largura"], 3)
	assert.InDelta(t, 2*radius+1, set["altura"], 3)

	assert.Greater(t, set["solidez"], 0.95)
	assert.Less(t, set["solidez"], 1.1)

	assert.InDelta(t, 100, set["centro_massa_x"], 1.5)
	assert.InDelta(t, 100, set["centro_massa_y"], 1.5)

	// First invariant moment of a disk is 1/(2*pi)
	assert.InDelta(t, 1/(2*math.Pi), set["hu_moment_1"], 0.01)
	for i := 1; i <= 7; i++ {
		assert.True(t, set.Has(fmt.Sprintf("hu_moment_%d", i)))
	}
}

func TestMorphologicalRectangle(t *testing.T) {
	mask := emptyMask(t, 200, 200)
	// 41x81 pixels filled
	gocv.Rectangle(&mask, image.Rect(50, 40, 91, 121), colorutil.White, -1)

	set := Morphological(mask)

	assert.Equal(t, float64(41*81), set["area_foliar_pixels"])
	assert.Equal(t, 41.0, set["largura"])
	assert.Equal(t, 81.0, set["altura"])
	assert.InDelta(t, 81.0/41.0, set["aspect_ratio"], 1e-9)

	// Elongated shape: compactness well below circular
	assert.Less(t, set["compacidade"], 0.8)
	// Convex shape: solidity close to 1 (pixel-count area vs hull polygon
	// area differ by the boundary band)
	assert.InDelta(t, 1.0, set["solidez"], 0.08)

	assert.InDelta(t, 70.0, set["centro_massa_x"], 1)
	assert.InDelta(t, 80.0, set["centro_massa_y"], 1)
}

func TestMorphologicalHuInvariance(t *testing.T) {
	// The same disk at two positions and scales should produce nearly
	// identical first invariant moments.
	a := emptyMask(t, 300, 300)
	gocv.Circle(&a, image.Pt(80, 90), 30, colorutil.White, -1)

	b := emptyMask(t, 300, 300)
	gocv.Circle(&b, image.Pt(200, 180), 60, colorutil.White, -1)

	setA := Morphological(a)
	setB := Morphological(b)

	assert.InDelta(t, setA["hu_moment_1"], setB["hu_moment_1"], 0.005)
	assert.InDelta(t, setA["hu_moment_2"], setB["hu_moment_2"], 0.005)
}
