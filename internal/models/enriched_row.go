package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// EnrichedRow is the on-disk shape of an EnrichedRecord in the enriched ledger.
// It uses struct tags for gocsv marshaling.
type EnrichedRow struct {
	TransactionID  string `csv:"TransactionID"`
	Date           string `csv:"Date"`
	ProductID      string `csv:"ProductID"`
	ProductName    string `csv:"ProductName"`
	Quantity       int64  `csv:"Quantity"`
	UnitPrice      string `csv:"UnitPrice"`
	Revenue        string `csv:"Revenue"`
	CustomerID     string `csv:"CustomerID"`
	Region         string `csv:"Region"`
	Category       string `csv:"Category"`
	DiscountFlag   bool   `csv:"DiscountFlag"`
	Manufacturer   string `csv:"Manufacturer"`
	WarrantyMonths int    `csv:"WarrantyMonths"`
}

// ToRow converts the record to its artifact representation.
// Amounts are written with two decimal places.
func (r EnrichedRecord) ToRow() EnrichedRow {
	return EnrichedRow{
		TransactionID:  r.TransactionID,
		Date:           r.DateString(),
		ProductID:      r.ProductID,
		ProductName:    r.ProductName,
		Quantity:       r.Quantity,
		UnitPrice:      r.UnitPrice.StringFixed(2),
		Revenue:        r.Revenue.StringFixed(2),
		CustomerID:     r.CustomerID,
		Region:         string(r.Region),
		Category:       string(r.Category),
		DiscountFlag:   r.DiscountFlag,
		Manufacturer:   r.Manufacturer,
		WarrantyMonths: r.WarrantyMonths,
	}
}

// ToRecord parses an artifact row back into an EnrichedRecord.
// Revenue is recomputed rather than read.
func (row EnrichedRow) ToRecord() (EnrichedRecord, error) {
	date, err := time.Parse(DateLayout, row.Date)
	if err != nil {
		return EnrichedRecord{}, fmt.Errorf("invalid date '%s' for %s: %w", row.Date, row.TransactionID, err)
	}
	price, err := decimal.NewFromString(row.UnitPrice)
	if err != nil {
		return EnrichedRecord{}, fmt.Errorf("invalid unit price '%s' for %s: %w", row.UnitPrice, row.TransactionID, err)
	}
	region, ok := ParseRegion(row.Region)
	if !ok {
		return EnrichedRecord{}, fmt.Errorf("unknown region '%s' for %s", row.Region, row.TransactionID)
	}
	category, ok := ParseCategory(row.Category)
	if !ok {
		return EnrichedRecord{}, fmt.Errorf("unknown category '%s' for %s", row.Category, row.TransactionID)
	}

	rec := NewSalesRecord(row.TransactionID, date, row.ProductName, price, row.Quantity)
	rec.ProductID = row.ProductID
	rec.CustomerID = row.CustomerID

	return EnrichedRecord{
		SalesRecord:    rec,
		Region:         region,
		Category:       category,
		DiscountFlag:   row.DiscountFlag,
		Manufacturer:   row.Manufacturer,
		WarrantyMonths: row.WarrantyMonths,
		APIMatch:       row.Manufacturer != "",
	}, nil
}
