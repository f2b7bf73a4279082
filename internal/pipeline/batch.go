package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"plant-phenotyper/internal/results"
	"plant-phenotyper/internal/segment"
)

// RunDirectory processes every recognized image in inDir, in name order, and
// writes the aggregate manifest into outDir. A file that fails is recorded
// in the manifest with its error and does not stop the batch.
func (p *Pipeline) RunDirectory(inDir, outDir string) ([]results.BatchEntry, error) {
	dirEntries, err := os.ReadDir(inDir)
	if err != nil {
		return nil, fmt.Errorf("read input directory: %w", err)
	}

	entries := []results.BatchEntry{}
	for _, de := range dirEntries {
		if de.IsDir() || !segment.RecognizedExtension(de.Name()) {
			continue
		}

		res, err := p.Run(filepath.Join(inDir, de.Name()), outDir)
		if err != nil {
			p.log.Warn().Str("file", de.Name()).Err(err).Msg("image failed")
			entries = append(entries, results.BatchEntry{Filename: de.Name(), Error: err.Error()})
			continue
		}
		entries = append(entries, results.BatchEntry{Filename: de.Name(), Features: res.Features})
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	if err := results.SaveManifest(entries, filepath.Join(outDir, results.ManifestName)); err != nil {
		return nil, fmt.Errorf("save manifest: %w", err)
	}

	return entries, nil
}
