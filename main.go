// Command plant-phenotyper extracts morphological, color and texture
// descriptors from plant images and optionally narrates them into a
// Markdown report.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"plant-phenotyper/internal/pipeline"
	"plant-phenotyper/internal/report"
	"plant-phenotyper/internal/version"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).
		With().Timestamp().Logger()

	app := &cli.App{
		Name:    "plant-phenotyper",
		Usage:   "extract phenotypic features from plant images",
		Version: version.Version,
		Commands: []*cli.Command{
			singleCommand(log),
			batchCommand(log),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("run failed")
	}
}

func ioFlags(inputUsage string) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "input", Aliases: []string{"i"}, Required: true, Usage: inputUsage},
		&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Required: true, Usage: "directory for results"},
		&cli.BoolFlag{Name: "report", Usage: "generate a Markdown report with model-written analysis"},
	}
}

func singleCommand(log zerolog.Logger) *cli.Command {
	return &cli.Command{
		Name:  "single",
		Usage: "process one image",
		Flags: ioFlags("path to the input image"),
		Action: func(c *cli.Context) error {
			p := pipeline.New(pipeline.DefaultConfig(), log)

			res, err := p.Run(c.String("input"), c.String("output"))
			if err != nil {
				return err
			}
			log.Info().Str("features", res.FeaturesPath).Msg("processing complete")

			if !c.Bool("report") {
				return nil
			}
			return writeReport(c.Context, log, res.FeaturesPath)
		},
	}
}

func batchCommand(log zerolog.Logger) *cli.Command {
	return &cli.Command{
		Name:  "batch",
		Usage: "process every recognized image in a directory",
		Flags: ioFlags("directory with input images"),
		Action: func(c *cli.Context) error {
			p := pipeline.New(pipeline.DefaultConfig(), log)

			entries, err := p.RunDirectory(c.String("input"), c.String("output"))
			if err != nil {
				return err
			}

			failed := 0
			for _, e := range entries {
				if e.Error != "" {
					failed++
				}
			}
			log.Info().Int("processed", len(entries)-failed).Int("failed", failed).
				Msg("batch complete")

			if c.Bool("report") {
				log.Warn().Msg("comparative batch reports are not implemented; skipping")
			}
			return nil
		},
	}
}

// writeReport renders the Markdown report next to the features JSON.
func writeReport(ctx context.Context, log zerolog.Logger, featuresPath string) error {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is not set; required for --report")
	}

	gen := report.NewGenerator(report.NewOpenAIClient(apiKey, ""))
	reportPath := strings.TrimSuffix(featuresPath, "_features.json") + "_report.md"

	if err := gen.GenerateFromFile(ctx, featuresPath, reportPath); err != nil {
		return err
	}
	log.Info().Str("report", filepath.Base(reportPath)).Msg("report generated")
	return nil
}
