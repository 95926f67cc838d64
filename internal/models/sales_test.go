package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeRevenue(t *testing.T) {
	tests := []struct {
		name     string
		price    string
		qty      int64
		expected string
	}{
		{"integer price", "100", 2, "200"},
		{"cents do not drift", "0.10", 3, "0.3"},
		{"large price", "45000.50", 7, "315003.5"},
		{"zero quantity", "19.99", 0, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			price := decimal.RequireFromString(tt.price)
			got := ComputeRevenue(price, tt.qty)
			assert.True(t, decimal.RequireFromString(tt.expected).Equal(got), "expected %s, got %s", tt.expected, got)
		})
	}
}

func TestParseRegion(t *testing.T) {
	r, ok := ParseRegion(" north ")
	require.True(t, ok)
	assert.Equal(t, RegionNorth, r)

	_, ok = ParseRegion("Central")
	assert.False(t, ok)
	_, ok = ParseRegion("")
	assert.False(t, ok)
}

func TestParseCategory(t *testing.T) {
	c, ok := ParseCategory("STORAGE")
	require.True(t, ok)
	assert.Equal(t, CategoryStorage, c)

	_, ok = ParseCategory("Unknown")
	assert.False(t, ok)
}

func TestEnrichedRow_RoundTrip(t *testing.T) {
	date := time.Date(2024, 12, 10, 0, 0, 0, 0, time.UTC)
	rec := NewSalesRecord("T001", date, "Laptop", decimal.RequireFromString("45000"), 2)
	rec.ProductID = "P101"
	rec.CustomerID = "C001"

	enriched := EnrichedRecord{
		SalesRecord:    rec,
		Region:         RegionWest,
		Category:       CategoryElectronics,
		DiscountFlag:   true,
		Manufacturer:   "TechCorp",
		WarrantyMonths: 24,
		APIMatch:       true,
	}

	row := enriched.ToRow()
	assert.Equal(t, "2024-12-10", row.Date)
	assert.Equal(t, "45000.00", row.UnitPrice)
	assert.Equal(t, "90000.00", row.Revenue)
	assert.Equal(t, "West", row.Region)

	back, err := row.ToRecord()
	require.NoError(t, err)
	assert.Equal(t, enriched.TransactionID, back.TransactionID)
	assert.True(t, enriched.Revenue.Equal(back.Revenue))
	assert.Equal(t, enriched.Region, back.Region)
	assert.Equal(t, enriched.Category, back.Category)
	assert.True(t, back.APIMatch)
}

func TestEnrichedRow_ToRecordRejectsUnknownRegion(t *testing.T) {
	row := EnrichedRow{TransactionID: "T9", Date: "2024-01-01", UnitPrice: "1.00", Region: "Central", Category: "Audio"}
	_, err := row.ToRecord()
	assert.Error(t, err)
}
