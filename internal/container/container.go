// Package container provides dependency injection for the sales-analytics application.
// It centralizes the creation and wiring of all application dependencies,
// making them explicit and testable.
package container

import (
	"fmt"

	"fjacquet/sales-analytics/internal/config"
	"fjacquet/sales-analytics/internal/enrichment"
	"fjacquet/sales-analytics/internal/logging"
	"fjacquet/sales-analytics/internal/pipeline"
	"fjacquet/sales-analytics/internal/processor"
	"fjacquet/sales-analytics/internal/report"
	"fjacquet/sales-analytics/internal/store"
)

// Container holds all application dependencies and provides methods to access them.
//
// Container is immutable after creation - all fields are private and can only
// be accessed through getter methods.
type Container struct {
	logger    logging.Logger
	config    *config.Config
	catalog   *store.Catalog
	api       enrichment.ProductAPI
	processor *processor.Processor
	enricher  *enrichment.Enricher
	generator *report.Generator
	pipeline  *pipeline.Pipeline
}

// NewContainer creates and wires all application dependencies with a logger
// built from cfg.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	return NewContainerWithLogger(cfg, config.ConfigureLoggingFromConfig(cfg))
}

// NewContainerWithLogger is NewContainer with an explicit logger.
func NewContainerWithLogger(cfg *config.Config, logger logging.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = config.ConfigureLoggingFromConfig(cfg)
	}

	catalog, err := store.LoadCatalog(cfg.Enrichment.CatalogFile, logger)
	if err != nil {
		return nil, err
	}
	api := enrichment.NewMockProductAPI(catalog)

	proc := processor.NewProcessor(processor.Options{
		Delimiter:   cfg.DelimiterRune(),
		DateLayouts: cfg.Input.DateLayouts,
		IDPrefix:    cfg.Input.IDPrefix,
	}, logger)

	delayer := enrichment.NewDelayer(
		cfg.Enrichment.Delay,
		cfg.Enrichment.Jitter,
		cfg.Enrichment.RatePerSecond,
		cfg.Enrichment.Seed,
	)
	enricher := enrichment.NewEnricher(enrichment.Options{
		Seed:    cfg.Enrichment.Seed,
		Workers: cfg.Enrichment.Workers,
		Delayer: delayer,
	}, api, logger)

	generator := report.NewGenerator(cfg.Report.TopN, cfg.Report.MaxRejectionsListed)

	logger.Debug("Container initialized",
		logging.F(logging.FieldCount, catalog.Len()),
		logging.F(logging.FieldWorkers, cfg.Enrichment.Workers),
		logging.F(logging.FieldDelimiter, cfg.Input.Delimiter))

	return &Container{
		logger:    logger,
		config:    cfg,
		catalog:   catalog,
		api:       api,
		processor: proc,
		enricher:  enricher,
		generator: generator,
		pipeline:  pipeline.New(proc, enricher, generator, logger),
	}, nil
}

// PipelineOptions returns the artifact locations from the configuration.
func (c *Container) PipelineOptions() pipeline.Options {
	return pipeline.Options{
		InputPath:    c.config.Input.Path,
		EnrichedPath: c.config.Output.EnrichedPath,
		ReportPath:   c.config.Output.ReportPath,
		Delimiter:    c.config.DelimiterRune(),
	}
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetCatalog returns the product catalogue behind the mock API.
func (c *Container) GetCatalog() *store.Catalog {
	return c.catalog
}

// GetProductAPI returns the product API used for enrichment.
func (c *Container) GetProductAPI() enrichment.ProductAPI {
	return c.api
}

// GetProcessor returns the ledger processor.
func (c *Container) GetProcessor() *processor.Processor {
	return c.processor
}

// GetEnricher returns the enrichment stage.
func (c *Container) GetEnricher() *enrichment.Enricher {
	return c.enricher
}

// GetGenerator returns the report generator.
func (c *Container) GetGenerator() *report.Generator {
	return c.generator
}

// GetPipeline returns the fully wired pipeline.
func (c *Container) GetPipeline() *pipeline.Pipeline {
	return c.pipeline
}
