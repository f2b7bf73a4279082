package features

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

func TestTextureShapeMismatch(t *testing.T) {
	rgb := uniformRGB(t, 10, 10, 0, 0, 0)
	mask := fullMask(t, 10, 12)

	_, err := Texture(rgb, mask)

	var sme *ShapeMismatchError
	require.ErrorAs(t, err, &sme)
}

func TestTextureUniformImage(t *testing.T) {
	rgb := uniformRGB(t, 40, 40, 120, 120, 120)
	mask := fullMask(t, 40, 40)

	set, err := Texture(rgb, mask)
	require.NoError(t, err)

	assert.InDelta(t, 0.0, set["gradient_mean"], 1e-9)
	assert.InDelta(t, 0.0, set["gradient_std"], 1e-9)
	assert.InDelta(t, 0.0, set["laplacian_variance"], 1e-9)
}

func TestTextureEmptyMask(t *testing.T) {
	rgb := uniformRGB(t, 20, 20, 120, 120, 120)
	mask := emptyMask(t, 20, 20)

	set, err := Texture(rgb, mask)
	require.NoError(t, err)
	assert.Empty(t, set)
}

func TestTextureDetectsEdges(t *testing.T) {
	// Dark left half, bright right half: the vertical boundary carries
	// gradient energy.
	rgb := uniformRGB(t, 40, 40, 20, 20, 20)
	gocv.Rectangle(&rgb, image.Rect(20, 0, 40, 40), color.RGBA{R: 220, G: 220, B: 220, A: 255}, -1)
	mask := fullMask(t, 40, 40)

	set, err := Texture(rgb, mask)
	require.NoError(t, err)

	assert.Greater(t, set["gradient_mean"], 1.0)
	assert.Greater(t, set["gradient_std"], 1.0)
	assert.Greater(t, set["laplacian_variance"], 1.0)
}
