// Package models provides the data structures that flow through the sales pipeline.
package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the canonical date format written to every output artifact.
const DateLayout = "2006-01-02"

// Region is one of the fixed sales regions.
type Region string

const (
	RegionNorth Region = "North"
	RegionSouth Region = "South"
	RegionEast  Region = "East"
	RegionWest  Region = "West"
)

// Regions lists every region in report order.
var Regions = []Region{RegionNorth, RegionSouth, RegionEast, RegionWest}

// ParseRegion matches s case-insensitively against the fixed regions.
func ParseRegion(s string) (Region, bool) {
	s = strings.TrimSpace(s)
	for _, r := range Regions {
		if strings.EqualFold(string(r), s) {
			return r, true
		}
	}
	return "", false
}

// Category is one of the fixed product categories.
type Category string

const (
	CategoryElectronics Category = "Electronics"
	CategoryAccessories Category = "Accessories"
	CategoryAudio       Category = "Audio"
	CategoryStorage     Category = "Storage"
)

// Categories lists every category in report order.
var Categories = []Category{CategoryElectronics, CategoryAccessories, CategoryAudio, CategoryStorage}

// ParseCategory matches s case-insensitively against the fixed categories.
func ParseCategory(s string) (Category, bool) {
	s = strings.TrimSpace(s)
	for _, c := range Categories {
		if strings.EqualFold(string(c), s) {
			return c, true
		}
	}
	return "", false
}

// SalesRecord is a validated ledger row.
type SalesRecord struct {
	TransactionID string
	Date          time.Time
	ProductID     string
	ProductName   string
	UnitPrice     decimal.Decimal
	Quantity      int64
	CustomerID    string
	// SourceRegion is the region column of the ledger, when it has one.
	SourceRegion string
	// Revenue is always UnitPrice * Quantity.
	Revenue decimal.Decimal
	Line    int
}

// NewSalesRecord builds a record and derives its revenue.
func NewSalesRecord(id string, date time.Time, product string, price decimal.Decimal, qty int64) SalesRecord {
	return SalesRecord{
		TransactionID: id,
		Date:          date,
		ProductName:   product,
		UnitPrice:     price,
		Quantity:      qty,
		Revenue:       ComputeRevenue(price, qty),
	}
}

// ComputeRevenue returns price * quantity with exact decimal arithmetic.
func ComputeRevenue(price decimal.Decimal, qty int64) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(qty))
}

// DateString returns the record date in DateLayout.
func (r SalesRecord) DateString() string {
	return r.Date.Format(DateLayout)
}

// EnrichedRecord is a SalesRecord plus the metadata attached by enrichment.
type EnrichedRecord struct {
	SalesRecord
	Region         Region
	Category       Category
	DiscountFlag   bool
	Manufacturer   string
	WarrantyMonths int
	// APIMatch reports whether the product was found in the product catalogue.
	APIMatch bool
}

// RejectedRow is a ledger line dropped during cleaning. Reason is the stable
// label printed in the report; Detail also names the offending field and value.
type RejectedRow struct {
	Line          int
	TransactionID string
	Raw           string
	Reason        string
	Detail        string
}
