package pipeline

import (
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"plant-phenotyper/internal/segment"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testGreen = color.RGBA{R: 40, G: 180, B: 60, A: 255}
	testBrown = color.RGBA{R: 120, G: 80, B: 40, A: 255}
)

// writeScenePNG writes a 200x200 brown scene with an optional green disk of
// the given radius at the center.
func writeScenePNG(t *testing.T, path string, radius int) {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 200, 200))
	for y := 0; y < 200; y++ {
		for x := 0; x < 200; x++ {
			dx, dy := float64(x-100), float64(y-100)
			if radius > 0 && math.Hypot(dx, dy) <= float64(radius) {
				img.Set(x, y, testGreen)
			} else {
				img.Set(x, y, testBrown)
			}
		}
	}

	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
}

func newTestPipeline() *Pipeline {
	return New(DefaultConfig(), zerolog.Nop())
}

func TestRunExtractsFeatures(t *testing.T) {
	inDir, outDir := t.TempDir(), t.TempDir()
	imgPath := filepath.Join(inDir, "plant.png")
	writeScenePNG(t, imgPath, 50)

	res, err := newTestPipeline().Run(imgPath, outDir)
	require.NoError(t, err)
	assert.False(t, res.Reused)

	wantArea := math.Pi * 50 * 50
	assert.InDelta(t, wantArea, res.Features["area_foliar_pixels"], wantArea*0.10)

	// One key from each extractor family
	assert.True(t, res.Features.Has("hu_moment_1"))
	assert.True(t, res.Features.Has("mean_G"))
	assert.True(t, res.Features.Has("laplacian_variance"))
	assert.Greater(t, res.Features["mean_G"], 150.0)

	assert.FileExists(t, res.FeaturesPath)
	assert.FileExists(t, res.CompositePath)
}

func TestRunReusesExistingFeatures(t *testing.T) {
	inDir, outDir := t.TempDir(), t.TempDir()
	imgPath := filepath.Join(inDir, "plant.png")
	writeScenePNG(t, imgPath, 40)

	p := newTestPipeline()
	first, err := p.Run(imgPath, outDir)
	require.NoError(t, err)

	before, err := os.ReadFile(first.FeaturesPath)
	require.NoError(t, err)

	second, err := p.Run(imgPath, outDir)
	require.NoError(t, err)
	assert.True(t, second.Reused)
	assert.Equal(t, first.Features, second.Features)

	after, err := os.ReadFile(first.FeaturesPath)
	require.NoError(t, err)
	assert.Equal(t, before, after, "reused run must leave the JSON byte-identical")
}

func TestRunNoPlantIsNotAnError(t *testing.T) {
	inDir, outDir := t.TempDir(), t.TempDir()
	imgPath := filepath.Join(inDir, "soil.png")
	writeScenePNG(t, imgPath, 0)

	res, err := newTestPipeline().Run(imgPath, outDir)
	require.NoError(t, err)

	assert.Equal(t, 0.0, res.Features["area_foliar_pixels"])
	assert.Equal(t, 0.0, res.Features["aspect_ratio"])
	assert.False(t, res.Features.Has("perimetro"))
	assert.False(t, res.Features.Has("compacidade"))
	assert.False(t, res.Features.Has("mean_G"))
}

func TestRunMissingFile(t *testing.T) {
	_, err := newTestPipeline().Run(filepath.Join(t.TempDir(), "missing.png"), t.TempDir())

	var le *segment.LoadError
	require.ErrorAs(t, err, &le)
}
