// Package enrichment attaches region, category, discount and product
// metadata to validated sales records.
//
// Enrichment never rejects a record. Values depend only on the configured
// seed, the transaction id and the product catalogue, so simulated latency
// and the number of workers have no influence on the output.
package enrichment

import (
	"context"
	"fmt"
	"time"

	"fjacquet/sales-analytics/internal/logging"
	"fjacquet/sales-analytics/internal/models"

	"golang.org/x/sync/errgroup"
)

// Options configures an Enricher.
type Options struct {
	Seed    int64
	Workers int
	Delayer Delayer
}

// Enricher combines deterministic assignment with catalogue lookups.
type Enricher struct {
	assigner *Assigner
	api      ProductAPI
	delayer  Delayer
	workers  int
	logger   logging.Logger
}

// NewEnricher creates an enricher. Missing options fall back to a single
// worker, NoDelay and the built-in catalogue.
func NewEnricher(opts Options, api ProductAPI, logger logging.Logger) *Enricher {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if opts.Delayer == nil {
		opts.Delayer = NoDelay{}
	}
	if api == nil {
		api = NewMockProductAPI(nil)
	}
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Enricher{
		assigner: NewAssigner(opts.Seed),
		api:      api,
		delayer:  opts.Delayer,
		workers:  opts.Workers,
		logger:   logger.WithField(logging.FieldStage, "enrichment"),
	}
}

// API returns the product API the enricher queries.
func (e *Enricher) API() ProductAPI {
	return e.api
}

// Enrich enriches a single record after the simulated lookup latency. A
// failed wait only skips the latency; the record is still enriched.
func (e *Enricher) Enrich(ctx context.Context, rec models.SalesRecord) models.EnrichedRecord {
	if err := e.delayer.Wait(ctx); err != nil {
		e.logger.Debug("Simulated latency interrupted",
			logging.F(logging.FieldTransactionID, rec.TransactionID),
			logging.F(logging.FieldError, err.Error()))
	}

	meta := e.assigner.Assign(rec.TransactionID)
	enriched := models.EnrichedRecord{
		SalesRecord:  rec,
		Region:       meta.Region,
		Category:     meta.Category,
		DiscountFlag: meta.Discount,
	}

	if region, ok := models.ParseRegion(rec.SourceRegion); ok {
		enriched.Region = region
	}

	if product, ok := e.api.FetchProduct(ctx, rec.ProductID); ok {
		enriched.Category = product.Category
		enriched.Manufacturer = product.Manufacturer
		enriched.WarrantyMonths = product.WarrantyMonths
		enriched.APIMatch = true
	}

	e.logger.Debug("Enriched record",
		logging.F(logging.FieldTransactionID, rec.TransactionID),
		logging.F(logging.FieldProductID, rec.ProductID),
		logging.F(logging.FieldRegion, string(enriched.Region)),
		logging.F(logging.FieldCategory, string(enriched.Category)),
		logging.F(logging.FieldMatched, enriched.APIMatch))
	return enriched
}

// EnrichAll returns one enriched record per input, in input order. A
// cancelled ctx abandons the batch: no further record is started and the
// wrapped context error is returned instead of partial output.
func (e *Enricher) EnrichAll(ctx context.Context, recs []models.SalesRecord) ([]models.EnrichedRecord, error) {
	start := time.Now()

	var (
		out []models.EnrichedRecord
		err error
	)
	if e.workers > 1 && len(recs) > 1 {
		out, err = e.enrichConcurrent(ctx, recs)
	} else {
		out, err = e.enrichSequential(ctx, recs)
	}
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		e.logger.Warn("Enrichment interrupted",
			logging.F(logging.FieldCount, len(recs)),
			logging.F(logging.FieldError, err.Error()))
		return nil, fmt.Errorf("enrichment interrupted: %w", err)
	}

	matched := 0
	for _, rec := range out {
		if rec.APIMatch {
			matched++
		}
	}
	e.logger.Info("Enriched records",
		logging.F(logging.FieldCount, len(out)),
		logging.F(logging.FieldMatched, matched),
		logging.F(logging.FieldWorkers, e.workers),
		logging.F(logging.FieldDuration, time.Since(start).Milliseconds()))
	return out, nil
}

func (e *Enricher) enrichSequential(ctx context.Context, recs []models.SalesRecord) ([]models.EnrichedRecord, error) {
	out := make([]models.EnrichedRecord, 0, len(recs))
	for _, rec := range recs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out = append(out, e.Enrich(ctx, rec))
	}
	return out, nil
}

// enrichConcurrent fans records out to a bounded pool; each result is
// written to its input index so order survives.
func (e *Enricher) enrichConcurrent(ctx context.Context, recs []models.SalesRecord) ([]models.EnrichedRecord, error) {
	out := make([]models.EnrichedRecord, len(recs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i := range recs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = e.Enrich(gctx, recs[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	e.logger.Debug("Concurrent enrichment completed",
		logging.F(logging.FieldCount, len(recs)),
		logging.F(logging.FieldWorkers, e.workers))
	return out, nil
}
