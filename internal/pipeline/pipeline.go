// Package pipeline sequences the per-image phenotyping stages: load,
// preprocess, segment, extract, persist, visualize. Each run owns its own
// intermediate buffers and shares no state with other runs, so independent
// images can be processed concurrently with one Pipeline value.
package pipeline

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"plant-phenotyper/internal/features"
	"plant-phenotyper/internal/results"
	"plant-phenotyper/internal/segment"
	"plant-phenotyper/internal/visualize"

	"github.com/rs/zerolog"
)

// Config carries the tunables of a pipeline run.
type Config struct {
	Segmentation segment.Params

	// SaveVisualization controls whether the 2x2 diagnostic composite is
	// written next to the features JSON.
	SaveVisualization bool
}

// DefaultConfig returns the configuration used by the CLI.
func DefaultConfig() Config {
	return Config{
		Segmentation:      segment.DefaultParams(),
		SaveVisualization: true,
	}
}

// Pipeline runs the image-analysis stages for single images and directories.
type Pipeline struct {
	cfg Config
	log zerolog.Logger
}

// New creates a Pipeline.
func New(cfg Config, log zerolog.Logger) *Pipeline {
	return &Pipeline{cfg: cfg, log: log}
}

// Result collects the outputs of one image's run.
type Result struct {
	ImagePath     string
	Features      features.Set
	FeaturesPath  string
	CompositePath string

	// Reused is true when a prior features JSON was found at the expected
	// output path and the run was skipped.
	Reused bool
}

// Run processes one image and writes its outputs into outDir. If the
// expected features JSON already exists the stored record is returned
// without recomputing anything.
func (p *Pipeline) Run(imagePath, outDir string) (*Result, error) {
	stem := strings.TrimSuffix(filepath.Base(imagePath), filepath.Ext(imagePath))
	featuresPath := filepath.Join(outDir, stem+"_features.json")
	compositePath := filepath.Join(outDir, stem+"_analysis.png")

	if record, err := results.Load(featuresPath); err == nil {
		p.log.Info().Str("path", imagePath).Str("features", featuresPath).
			Msg("reusing existing features")
		return &Result{
			ImagePath:     imagePath,
			Features:      record.Features,
			FeaturesPath:  featuresPath,
			CompositePath: compositePath,
			Reused:        true,
		}, nil
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	bgr, err := segment.LoadImage(imagePath)
	if err != nil {
		return nil, err
	}
	defer bgr.Close()

	rgb := segment.Preprocess(bgr, p.cfg.Segmentation)
	defer rgb.Close()

	mask, err := segment.Segment(rgb, p.cfg.Segmentation)
	if err != nil {
		if !errors.Is(err, segment.ErrNoPlantDetected) {
			mask.Close()
			return nil, err
		}
		// Empty mask is a valid terminal state: features read zero/absent.
		p.log.Warn().Str("path", imagePath).Msg("no plant detected")
	}
	defer mask.Close()

	set := features.Morphological(mask)

	colorSet, err := features.Color(rgb, mask)
	if err != nil {
		return nil, err
	}
	set.Merge(colorSet)

	textureSet, err := features.Texture(rgb, mask)
	if err != nil {
		return nil, err
	}
	set.Merge(textureSet)

	record := results.NewRecord(imagePath, set)
	if err := results.Save(record, featuresPath); err != nil {
		return nil, fmt.Errorf("save features: %w", err)
	}

	if p.cfg.SaveVisualization {
		contour := segment.DominantContour(mask)
		if err := visualize.Save(compositePath, bgr, mask, contour); err != nil {
			return nil, err
		}
	}

	p.log.Info().Str("path", imagePath).
		Float64("area", set["area_foliar_pixels"]).
		Int("features", len(set)).
		Msg("image processed")

	return &Result{
		ImagePath:     imagePath,
		Features:      set,
		FeaturesPath:  featuresPath,
		CompositePath: compositePath,
	}, nil
}
