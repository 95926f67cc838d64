// Package pipeline runs the ledger through every stage: read, clean, enrich,
// write the enriched artifact, aggregate, render and write the report.
//
// Each stage consumes the complete output of the previous one. A fatal error
// at any stage stops the run before the report is written.
package pipeline

import (
	"context"
	"errors"
	"time"

	"fjacquet/sales-analytics/internal/enrichment"
	"fjacquet/sales-analytics/internal/fileutils"
	"fjacquet/sales-analytics/internal/ledgererror"
	"fjacquet/sales-analytics/internal/logging"
	"fjacquet/sales-analytics/internal/models"
	"fjacquet/sales-analytics/internal/processor"
	"fjacquet/sales-analytics/internal/report"
)

// Options locates the input and output artifacts of a run.
type Options struct {
	InputPath    string
	EnrichedPath string
	ReportPath   string
	// Delimiter is used for the enriched artifact. Defaults to '|'.
	Delimiter rune
}

// Result carries the in-memory output of every stage.
type Result struct {
	Processing processor.Result
	Enriched   []models.EnrichedRecord
	Summary    report.Summary
	Report     string
}

// Pipeline wires the stages together.
type Pipeline struct {
	processor *processor.Processor
	enricher  *enrichment.Enricher
	generator *report.Generator
	logger    logging.Logger
}

// New creates a pipeline from its stages.
func New(proc *processor.Processor, enricher *enrichment.Enricher, generator *report.Generator, logger logging.Logger) *Pipeline {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Pipeline{
		processor: proc,
		enricher:  enricher,
		generator: generator,
		logger:    logger.WithField(logging.FieldStage, "pipeline"),
	}
}

// Run executes the full pipeline.
func (p *Pipeline) Run(ctx context.Context, opts Options) (*Result, error) {
	if opts.Delimiter == 0 {
		opts.Delimiter = '|'
	}
	start := time.Now()

	cleaned, err := p.Validate(opts.InputPath)
	if err != nil {
		return nil, err
	}

	enriched, err := p.enricher.EnrichAll(ctx, cleaned.Records)
	if err != nil {
		return nil, err
	}

	if err := fileutils.WriteEnriched(opts.EnrichedPath, enriched, opts.Delimiter); err != nil {
		return nil, err
	}
	p.logger.Info("Wrote enriched ledger",
		logging.F(logging.FieldOutputFile, opts.EnrichedPath),
		logging.F(logging.FieldCount, len(enriched)))

	summary := p.generator.Aggregate(enriched)
	summary.AttachQuality(cleaned.Total, cleaned.Rejected)
	text := p.generator.Render(summary)

	if err := fileutils.WriteFile(opts.ReportPath, text); err != nil {
		return nil, err
	}
	p.logger.Info("Wrote sales report",
		logging.F(logging.FieldOutputFile, opts.ReportPath),
		logging.F(logging.FieldDuration, time.Since(start).Milliseconds()))

	return &Result{
		Processing: cleaned,
		Enriched:   enriched,
		Summary:    summary,
		Report:     text,
	}, nil
}

// Validate reads and cleans the input without enriching or writing anything.
func (p *Pipeline) Validate(inputPath string) (processor.Result, error) {
	lines, err := fileutils.ReadLines(inputPath)
	if err != nil {
		return processor.Result{}, err
	}
	p.logger.Info("Read ledger",
		logging.F(logging.FieldInputFile, inputPath),
		logging.F(logging.FieldCount, len(lines)))

	cleaned, err := p.processor.CleanAndValidate(lines)
	if err != nil {
		return cleaned, withFilePath(err, inputPath)
	}
	return cleaned, nil
}

func withFilePath(err error, path string) error {
	var emptyErr *ledgererror.EmptyInputError
	if errors.As(err, &emptyErr) && emptyErr.FilePath == "" {
		emptyErr.FilePath = path
	}
	var formatErr *ledgererror.InvalidFormatError
	if errors.As(err, &formatErr) && formatErr.FilePath == "" {
		formatErr.FilePath = path
	}
	return err
}
