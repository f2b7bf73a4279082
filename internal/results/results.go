// Package results persists extracted feature sets and batch manifests as JSON.
package results

import (
	"bytes"
	"encoding/json"
	"os"
	"time"

	"plant-phenotyper/internal/features"
)

// ManifestName is the file name of the aggregate manifest a batch run writes
// into its output directory.
const ManifestName = "batch_results.json"

// Record is the per-image persistence unit: which image was measured, when,
// and the flat feature mapping.
type Record struct {
	ImagePath string       `json:"image_path"`
	Timestamp string       `json:"timestamp"`
	Features  features.Set `json:"features"`
}

// NewRecord creates a Record for the image stamped with the current time.
func NewRecord(imagePath string, set features.Set) Record {
	return Record{
		ImagePath: imagePath,
		Timestamp: time.Now().Format(time.RFC3339),
		Features:  set,
	}
}

// BatchEntry is one line of the batch manifest: either the features of a
// successfully processed file or the error that made it fail.
type BatchEntry struct {
	Filename string       `json:"filename"`
	Features features.Set `json:"features,omitempty"`
	Error    string       `json:"error,omitempty"`
}

// Save writes the record to path as indented JSON.
func Save(r Record, path string) error {
	return writeJSON(r, path)
}

// Load reads a record previously written by Save.
func Load(path string) (Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Record{}, err
	}

	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return Record{}, err
	}

	return r, nil
}

// SaveManifest writes the aggregate batch results to path.
func SaveManifest(entries []BatchEntry, path string) error {
	return writeJSON(entries, path)
}

// LoadManifest reads a manifest previously written by SaveManifest.
func LoadManifest(path string) ([]BatchEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var entries []BatchEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}

	return entries, nil
}

// writeJSON marshals v with 2-space indentation and HTML escaping off, so
// non-ASCII path names survive literally.
func writeJSON(v any, path string) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return err
	}

	return os.WriteFile(path, buf.Bytes(), 0644)
}
