// Package processor turns raw ledger lines into validated sales records.
//
// Malformed rows never abort a run: each one becomes a RejectedRow with a
// stable reason, and processing continues with the next line. Only an input
// without data lines, a header that lacks required columns, or a run in which
// every row was rejected is escalated as a fatal error.
package processor

import (
	"encoding/csv"
	"strings"

	"fjacquet/sales-analytics/internal/currencyutils"
	"fjacquet/sales-analytics/internal/dateutils"
	"fjacquet/sales-analytics/internal/ledgererror"
	"fjacquet/sales-analytics/internal/logging"
	"fjacquet/sales-analytics/internal/models"
)

// Options controls how ledger lines are split and validated.
type Options struct {
	// Delimiter separates fields. Defaults to '|'.
	Delimiter rune
	// DateLayouts are the accepted date layouts, tried in order.
	DateLayouts []string
	// IDPrefix, when set, is required at the start of every transaction id.
	IDPrefix string
}

// Result is the outcome of cleaning a whole ledger.
type Result struct {
	Records  []models.SalesRecord
	Rejected []models.RejectedRow
	// Total is the number of data lines seen, header excluded.
	Total int
	// HeaderDetected reports whether the first line was a header row.
	HeaderDetected bool
}

// Processor parses and validates ledger lines.
type Processor struct {
	opts   Options
	logger logging.Logger
}

// NewProcessor creates a processor. A nil logger falls back to a default logrus adapter.
func NewProcessor(opts Options, logger logging.Logger) *Processor {
	if opts.Delimiter == 0 {
		opts.Delimiter = '|'
	}
	if len(opts.DateLayouts) == 0 {
		opts.DateLayouts = dateutils.DefaultLayouts
	}
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Processor{
		opts:   opts,
		logger: logger.WithField(logging.FieldStage, "processor"),
	}
}

// Parse validates a single line against the default headerless layout.
// lineNo is only used to label a rejection.
func (p *Processor) Parse(line string, lineNo int) (models.SalesRecord, *models.RejectedRow) {
	return p.ParseWithLayout(DefaultLayout(), line, lineNo)
}

// ParseWithLayout validates a single line against layout. Exactly one of the
// two return values is meaningful: a nil *RejectedRow means the record is valid.
func (p *Processor) ParseWithLayout(layout Layout, line string, lineNo int) (models.SalesRecord, *models.RejectedRow) {
	fields, err := p.split(line)
	if err != nil {
		return models.SalesRecord{}, reject(line, "", &ledgererror.RowError{Line: lineNo, Reason: ledgererror.ReasonMalformed, Err: err})
	}

	rec, rowErr := p.buildRecord(layout, fields, lineNo)
	if rowErr != nil {
		id := ""
		if len(fields) > 0 {
			id = strings.TrimSpace(fields[0])
			if layout.Width() == len(fields) {
				id = layout.field(fields, ColTransactionID)
			}
		}
		return models.SalesRecord{}, reject(line, id, rowErr)
	}
	return rec, nil
}

// CleanAndValidate parses every line, accumulating valid records and
// rejections. A leading header row selects the column layout; otherwise the
// default layout applies. len(Records)+len(Rejected) == Total always holds.
func (p *Processor) CleanAndValidate(lines []string) (Result, error) {
	if len(lines) == 0 {
		return Result{}, &ledgererror.EmptyInputError{}
	}

	layout := DefaultLayout()
	data := lines
	offset := 1
	result := Result{}

	if first, err := p.split(lines[0]); err == nil && IsHeader(first) {
		layout, err = LayoutFromHeader(first)
		if err != nil {
			return Result{}, err
		}
		result.HeaderDetected = true
		data = lines[1:]
		offset = 2
	}

	if len(data) == 0 {
		return Result{}, &ledgererror.EmptyInputError{}
	}

	result.Total = len(data)
	result.Records = make([]models.SalesRecord, 0, len(data))

	for i, line := range data {
		rec, rejected := p.ParseWithLayout(layout, line, i+offset)
		if rejected != nil {
			p.logger.Warn("Rejected ledger row",
				logging.F(logging.FieldLine, rejected.Line),
				logging.F(logging.FieldTransactionID, rejected.TransactionID),
				logging.F(logging.FieldReason, rejected.Reason),
				logging.F(logging.FieldError, rejected.Detail))
			result.Rejected = append(result.Rejected, *rejected)
			continue
		}
		result.Records = append(result.Records, rec)
	}

	p.logger.Info("Cleaned ledger rows",
		logging.F(logging.FieldCount, result.Total),
		logging.F(logging.FieldValid, len(result.Records)),
		logging.F(logging.FieldRejected, len(result.Rejected)))

	if len(result.Records) == 0 {
		return result, &ledgererror.EmptyDatasetError{Total: result.Total, Rejected: len(result.Rejected)}
	}
	return result, nil
}

// split cuts a line into raw fields. Quoting is only honoured for the comma
// delimiter, where a product name may itself contain commas; any other
// delimiter is a plain separator and quote characters are data.
func (p *Processor) split(line string) ([]string, error) {
	if p.opts.Delimiter != ',' {
		return strings.Split(line, string(p.opts.Delimiter)), nil
	}
	reader := csv.NewReader(strings.NewReader(line))
	reader.Comma = p.opts.Delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1
	return reader.Read()
}

func (p *Processor) buildRecord(layout Layout, fields []string, lineNo int) (models.SalesRecord, *ledgererror.RowError) {
	rowErr := func(col Column, value, reason string, err error) *ledgererror.RowError {
		return &ledgererror.RowError{Line: lineNo, Field: string(col), Value: value, Reason: reason, Err: err}
	}

	if len(fields) != layout.Width() {
		return models.SalesRecord{}, &ledgererror.RowError{Line: lineNo, Reason: ledgererror.ReasonFieldCount}
	}

	id := layout.field(fields, ColTransactionID)
	if id == "" {
		return models.SalesRecord{}, rowErr(ColTransactionID, id, ledgererror.ReasonMissingID, nil)
	}
	if p.opts.IDPrefix != "" && !strings.HasPrefix(id, p.opts.IDPrefix) {
		return models.SalesRecord{}, rowErr(ColTransactionID, id, ledgererror.ReasonInvalidID, nil)
	}

	rawDate := layout.field(fields, ColDate)
	date, err := dateutils.ParseDate(rawDate, p.opts.DateLayouts)
	if err != nil {
		return models.SalesRecord{}, rowErr(ColDate, rawDate, ledgererror.ReasonInvalidDate, err)
	}

	product := CleanProductName(layout.field(fields, ColProductName))
	if product == "" {
		return models.SalesRecord{}, rowErr(ColProductName, product, ledgererror.ReasonMissingProduct, nil)
	}

	rawPrice := layout.field(fields, ColUnitPrice)
	price, err := currencyutils.ParseAmount(rawPrice)
	if err != nil {
		return models.SalesRecord{}, rowErr(ColUnitPrice, rawPrice, ledgererror.ReasonInvalidPrice, err)
	}
	if price.IsNegative() {
		return models.SalesRecord{}, rowErr(ColUnitPrice, rawPrice, ledgererror.ReasonNegativePrice, nil)
	}

	rawQty := layout.field(fields, ColQuantity)
	qty, err := currencyutils.ParseQuantity(rawQty)
	if err != nil {
		return models.SalesRecord{}, rowErr(ColQuantity, rawQty, ledgererror.ReasonInvalidQuantity, err)
	}
	if qty < 0 {
		return models.SalesRecord{}, rowErr(ColQuantity, rawQty, ledgererror.ReasonNegativeQty, nil)
	}

	customer := layout.field(fields, ColCustomerID)
	if layout.Has(ColCustomerID) && customer == "" {
		return models.SalesRecord{}, rowErr(ColCustomerID, customer, ledgererror.ReasonMissingCustomer, nil)
	}
	region := layout.field(fields, ColRegion)
	if layout.Has(ColRegion) && region == "" {
		return models.SalesRecord{}, rowErr(ColRegion, region, ledgererror.ReasonMissingRegion, nil)
	}

	rec := models.NewSalesRecord(id, date, product, price, qty)
	rec.ProductID = layout.field(fields, ColProductID)
	rec.CustomerID = customer
	rec.SourceRegion = region
	rec.Line = lineNo
	return rec, nil
}

// CleanProductName replaces embedded commas with spaces and collapses whitespace.
func CleanProductName(name string) string {
	return strings.Join(strings.Fields(strings.ReplaceAll(name, ",", " ")), " ")
}

func reject(raw, id string, err *ledgererror.RowError) *models.RejectedRow {
	return &models.RejectedRow{
		Line:          err.Line,
		TransactionID: id,
		Raw:           raw,
		Reason:        err.Reason,
		Detail:        err.Error(),
	}
}
