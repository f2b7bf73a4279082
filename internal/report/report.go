// Package report turns a feature set into a human-readable Markdown report.
// The natural-language analysis is delegated to a text-completion capability
// injected through the Completer interface, so the pipeline and its tests
// never need network access or API credentials.
package report

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"plant-phenotyper/internal/features"
	"plant-phenotyper/internal/results"
)

// Completer produces prose from a system instruction and a user prompt.
// Implementations may fail or time out; the context bounds the call.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

const systemPrompt = "You are an expert in plant phenotyping, image analysis and agronomy."

const promptTemplate = `You are an expert in plant phenotyping and image analysis. Analyze the following morphological and color data extracted from a plant image:

%s

Provide a detailed, professional analysis covering:
1. Morphological traits: interpret leaf area, perimeter and dimensions.
2. Shape analysis: describe the overall shape based on solidity and compactness.
3. Color and health: interpret the vegetation indices (ExG, VARI).
4. Conclusions and recommendations: give an overall assessment and suggestions.

Be technical yet accessible, using appropriate scientific terminology.`

// Generator renders Markdown reports for single-plant feature sets.
type Generator struct {
	completer Completer
}

// NewGenerator creates a Generator backed by the given completion capability.
func NewGenerator(c Completer) *Generator {
	return &Generator{completer: c}
}

// Generate produces the full Markdown report for one plant's features:
// a dated header, the delegated analysis, and a table of every extracted
// value with humanized names.
func (g *Generator) Generate(ctx context.Context, set features.Set) (string, error) {
	analysis, err := g.analyze(ctx, set)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("# Plant Phenotyping Report\n\n")
	fmt.Fprintf(&b, "**Date**: %s\n\n", time.Now().Format("02/01/2006 15:04:05"))

	b.WriteString("## 1. Plant Analysis\n\n")
	b.WriteString(analysis)
	b.WriteString("\n\n")

	b.WriteString("## 2. Extracted Data\n\n")
	b.WriteString("| Trait | Value |\n|---|---|\n")
	for _, key := range sortedKeys(set) {
		fmt.Fprintf(&b, "| %s | %s |\n", humanizeKey(key), formatValue(set[key]))
	}

	return b.String(), nil
}

// GenerateFromFile reads a features JSON written by the pipeline, renders
// the report and writes it to outPath.
func (g *Generator) GenerateFromFile(ctx context.Context, jsonPath, outPath string) error {
	record, err := results.Load(jsonPath)
	if err != nil {
		return fmt.Errorf("read features: %w", err)
	}

	md, err := g.Generate(ctx, record.Features)
	if err != nil {
		return err
	}

	return os.WriteFile(outPath, []byte(md), 0644)
}

// analyze asks the completion capability for the narrative section.
func (g *Generator) analyze(ctx context.Context, set features.Set) (string, error) {
	data, err := json.MarshalIndent(set, "", "  ")
	if err != nil {
		return "", err
	}

	analysis, err := g.completer.Complete(ctx, systemPrompt, fmt.Sprintf(promptTemplate, data))
	if err != nil {
		return "", fmt.Errorf("generate analysis: %w", err)
	}
	return analysis, nil
}

func sortedKeys(set features.Set) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// humanizeKey turns a feature key into a table heading: underscores become
// spaces and each word is title-cased, so "area_foliar_pixels" reads
// "Area Foliar Pixels".
func humanizeKey(key string) string {
	words := strings.Split(key, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// formatValue renders whole numbers without a fraction and everything else
// to 4 decimal places.
func formatValue(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'f', 4, 64)
}
