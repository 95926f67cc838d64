package report

import (
	"strings"
	"testing"
	"time"

	"fjacquet/sales-analytics/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2024, 12, d, 0, 0, 0, 0, time.UTC)
}

func enriched(id string, date time.Time, product string, price, qty int64, region models.Region, category models.Category) models.EnrichedRecord {
	return models.EnrichedRecord{
		SalesRecord: models.NewSalesRecord(id, date, product, decimal.NewFromInt(price), qty),
		Region:      region,
		Category:    category,
	}
}

func TestAggregate_TopProductsTieKeepsFirstSeen(t *testing.T) {
	g := NewGenerator(2, 10)
	records := []models.EnrichedRecord{
		enriched("T1", day(1), "A", 500, 1, models.RegionNorth, models.CategoryAudio),
		enriched("T2", day(1), "B", 250, 2, models.RegionNorth, models.CategoryAudio),
		enriched("T3", day(1), "C", 300, 1, models.RegionNorth, models.CategoryAudio),
	}

	s := g.Aggregate(records)
	require.Len(t, s.TopProducts, 2)
	assert.Equal(t, "A", s.TopProducts[0].Name)
	assert.Equal(t, 1, s.TopProducts[0].Rank)
	assert.Equal(t, "B", s.TopProducts[1].Name)
	assert.Equal(t, int64(2), s.TopProducts[1].Quantity)

	records[0], records[1] = records[1], records[0]
	s = g.Aggregate(records)
	assert.Equal(t, "B", s.TopProducts[0].Name)
	assert.Equal(t, "A", s.TopProducts[1].Name)
}

func TestAggregate_PeakDayTiePicksEarliest(t *testing.T) {
	g := NewGenerator(5, 10)
	var records []models.EnrichedRecord
	for i := 0; i < 18; i++ {
		records = append(records, enriched("L", day(15), "X", 1, 1, models.RegionEast, models.CategoryStorage))
	}
	for i := 0; i < 18; i++ {
		records = append(records, enriched("E", day(10), "X", 1, 1, models.RegionEast, models.CategoryStorage))
	}
	records = append(records, enriched("S", day(20), "X", 1, 1, models.RegionEast, models.CategoryStorage))

	s := g.Aggregate(records)
	require.NotNil(t, s.PeakDay)
	assert.Equal(t, day(10), s.PeakDay.Date)
	assert.Equal(t, 18, s.PeakDay.Transactions)

	require.Len(t, s.DailyTotals, 3)
	assert.Equal(t, day(10), s.DailyTotals[0].Date)
	assert.Equal(t, day(20), s.DailyTotals[2].Date)
	assert.Equal(t, "2024-12-10 to 2024-12-20", s.DateRange.String())
}

func TestAggregate_RegionTotalsSumToTotal(t *testing.T) {
	g := NewGenerator(5, 10)
	records := []models.EnrichedRecord{
		enriched("T1", day(1), "A", 1999, 3, models.RegionNorth, models.CategoryAudio),
		enriched("T2", day(2), "B", 10, 7, models.RegionWest, models.CategoryStorage),
		enriched("T3", day(2), "C", 45000, 2, models.RegionWest, models.CategoryElectronics),
	}

	s := g.Aggregate(records)
	require.Len(t, s.RegionRevenue, 4)

	sum := decimal.Zero
	for _, r := range s.RegionRevenue {
		sum = sum.Add(r.Revenue)
	}
	assert.True(t, sum.Equal(s.TotalRevenue))
	assert.True(t, s.TotalRevenue.Equal(decimal.NewFromInt(96067)))
	assert.Equal(t, models.RegionSouth, s.RegionRevenue[1].Region)
	assert.True(t, s.RegionRevenue[1].Revenue.IsZero())
	assert.Equal(t, 2, s.RegionRevenue[3].Transactions)
}

func TestAggregate_Empty(t *testing.T) {
	g := NewGenerator(5, 10)
	s := g.Aggregate(nil)

	assert.Zero(t, s.TransactionCount)
	assert.True(t, s.TotalRevenue.IsZero())
	assert.Nil(t, s.PeakDay)
	assert.Len(t, s.RegionRevenue, 4)
	assert.Len(t, s.CategoryRevenue, 4)

	out := g.Render(s)
	assert.Contains(t, out, "Total Valid Transactions: 0\n")
	assert.Contains(t, out, "Total Revenue: $0.00\n")
	assert.Contains(t, out, "PEAK SALES DAY\n"+lightRule+"\nN/A\n")
	assert.Contains(t, out, "Date Range: N/A\n")
	assert.Contains(t, out, "Success Rate: 0.00%\n")
}

func TestAggregate_EnrichmentStats(t *testing.T) {
	g := NewGenerator(5, 10)
	matched := enriched("T1", day(1), "A", 1, 1, models.RegionNorth, models.CategoryAudio)
	matched.ProductID = "P101"
	matched.APIMatch = true
	miss := enriched("T2", day(1), "B", 1, 1, models.RegionNorth, models.CategoryAudio)
	miss.ProductID = "P999"
	missAgain := miss
	noID := enriched("T3", day(1), "C", 1, 1, models.RegionNorth, models.CategoryAudio)

	s := g.Aggregate([]models.EnrichedRecord{matched, miss, missAgain, noID})
	assert.Equal(t, 1, s.Enrichment.Matched)
	assert.Equal(t, 4, s.Enrichment.Total)
	assert.Equal(t, []string{"P999"}, s.Enrichment.Unmatched)
}

func TestRender_Golden(t *testing.T) {
	g := NewGenerator(3, 1)
	laptop := enriched("T001", day(15), "Laptop", 45000, 2, models.RegionNorth, models.CategoryElectronics)
	laptop.ProductID = "P101"
	laptop.APIMatch = true
	mouse := enriched("T002", day(15), "Mouse", 500, 3, models.RegionSouth, models.CategoryAccessories)
	mouse.ProductID = "P999"
	keyboard := enriched("T003", day(16), "Keyboard", 1500, 1, models.RegionNorth, models.CategoryAccessories)
	keyboard.ProductID = "P103"
	keyboard.APIMatch = true
	cable := enriched("T004", day(16), "Cable", 250, 4, models.RegionEast, models.CategoryAccessories)
	laptop.CustomerID = "C001"
	mouse.CustomerID = "C002"
	keyboard.CustomerID = "C001"
	cable.CustomerID = "C003"

	s := g.Aggregate([]models.EnrichedRecord{laptop, mouse, keyboard, cable})
	s.AttachQuality(6, []models.RejectedRow{
		{Line: 3, TransactionID: "T005", Reason: "invalid date"},
		{Line: 6, Reason: "wrong field count"},
	})

	heavy := strings.Repeat("=", 80)
	light := strings.Repeat("-", 80)
	want := strings.Join([]string{
		heavy,
		"SALES ANALYTICS REPORT",
		heavy,
		"",
		"Total Valid Transactions: 4",
		"Total Revenue: $94,000.00",
		"",
		light,
		"TOP 3 PRODUCTS BY REVENUE",
		light,
		"1. Laptop: $90,000.00",
		"2. Mouse: $1,500.00",
		"3. Keyboard: $1,500.00",
		"",
		light,
		"REGION-WISE REVENUE",
		light,
		"North: $91,500.00 (2 transactions)",
		"South: $1,500.00 (1 transactions)",
		"East: $1,000.00 (1 transactions)",
		"West: $0.00 (0 transactions)",
		"",
		light,
		"PEAK SALES DAY",
		light,
		"2024-12-15 (2 transactions)",
		"",
		light,
		"OVERALL SUMMARY",
		light,
		"Average Order Value: $23,500.00",
		"Date Range: 2024-12-15 to 2024-12-16",
		"",
		light,
		"REGION PERFORMANCE",
		light,
		"North: 3 units, 97.34% of revenue, avg $45,750.00",
		"South: 3 units, 1.60% of revenue, avg $1,500.00",
		"East: 4 units, 1.06% of revenue, avg $1,000.00",
		"West: 0 units, 0.00% of revenue, avg $0.00",
		"",
		light,
		"CATEGORY BREAKDOWN",
		light,
		"Electronics: $90,000.00 (1 transactions)",
		"Accessories: $4,000.00 (3 transactions)",
		"Audio: $0.00 (0 transactions)",
		"Storage: $0.00 (0 transactions)",
		"",
		light,
		"CUSTOMER INSIGHTS",
		light,
		"Unique Customers: 3",
		"",
		light,
		"TOP 3 CUSTOMERS BY REVENUE",
		light,
		"1. C001: $91,500.00 (2 transactions)",
		"2. C002: $1,500.00 (1 transactions)",
		"3. C003: $1,000.00 (1 transactions)",
		"",
		light,
		"LOW PERFORMING PRODUCTS (QTY < 10)",
		light,
		"Laptop: 2 units, $90,000.00",
		"Mouse: 3 units, $1,500.00",
		"Keyboard: 1 units, $1,500.00",
		"Cable: 4 units, $1,000.00",
		"",
		light,
		"DAILY SALES TREND",
		light,
		"2024-12-15: 2 transactions, 2 customers, $91,500.00",
		"2024-12-16: 2 transactions, 2 customers, $2,500.00",
		"",
		light,
		"DATA QUALITY",
		light,
		"Input Rows: 6",
		"Valid Rows: 4",
		"Rejected Rows: 2",
		"  Line 3 (T005): invalid date",
		"  ... and 1 more",
		"",
		light,
		"API ENRICHMENT SUMMARY",
		light,
		"Products Matched: 2/4",
		"Success Rate: 50.00%",
		"Unmatched Products: P999",
		"",
		heavy,
		"END OF REPORT",
		heavy,
		"",
	}, "\n")

	got := g.Render(s)
	assert.Equal(t, want, got)
	assert.Equal(t, got, g.Render(s))
}

func TestAggregate_CustomersAndVolume(t *testing.T) {
	g := NewGenerator(2, 10)
	records := []models.EnrichedRecord{
		enriched("T1", day(1), "Pen", 10, 4, models.RegionWest, models.CategoryAccessories),
		enriched("T2", day(1), "Pen", 10, 8, models.RegionWest, models.CategoryAccessories),
		enriched("T3", day(2), "Disk", 95, 1, models.RegionSouth, models.CategoryStorage),
		enriched("T4", day(2), "Cable", 5, 3, models.RegionSouth, models.CategoryAccessories),
		enriched("T5", day(2), "Cable", 5, 2, models.RegionSouth, models.CategoryAccessories),
	}
	records[0].CustomerID = "C1"
	records[1].CustomerID = "C2"
	records[2].CustomerID = "C2"
	records[3].CustomerID = "C3"
	records[4].CustomerID = ""

	s := g.Aggregate(records)

	assert.Equal(t, 3, s.UniqueCustomers)
	require.Len(t, s.TopCustomers, 2)
	assert.Equal(t, 1, s.TopCustomers[0].Rank)
	assert.Equal(t, "C2", s.TopCustomers[0].CustomerID)
	assert.True(t, s.TopCustomers[0].Revenue.Equal(decimal.NewFromInt(175)))
	assert.Equal(t, 2, s.TopCustomers[0].Transactions)
	assert.Equal(t, "C1", s.TopCustomers[1].CustomerID)
	assert.Equal(t, 2, s.TopCustomers[1].Rank)

	west, south := s.RegionRevenue[3], s.RegionRevenue[1]
	assert.Equal(t, int64(12), west.Units)
	assert.Equal(t, int64(6), south.Units)
	assert.True(t, south.Average().Equal(decimal.NewFromInt(40)))
	assert.True(t, s.RegionRevenue[0].Average().IsZero())
	assert.Equal(t, "50.00%", s.RegionShare(west))
	assert.Equal(t, "0.00%", s.RegionShare(s.RegionRevenue[0]))

	require.Len(t, s.LowPerformers, 2)
	assert.Equal(t, "Disk", s.LowPerformers[0].Name)
	assert.Equal(t, "Cable", s.LowPerformers[1].Name)
	assert.Equal(t, int64(5), s.LowPerformers[1].Quantity)

	require.Len(t, s.DailyTotals, 2)
	assert.Equal(t, 2, s.DailyTotals[0].Customers)
	assert.Equal(t, 2, s.DailyTotals[1].Customers)
}

func TestRender_NoCustomerData(t *testing.T) {
	g := NewGenerator(5, 10)
	s := g.Aggregate([]models.EnrichedRecord{
		enriched("T1", day(1), "Crate", 1, 40, models.RegionNorth, models.CategoryStorage),
	})

	out := g.Render(s)
	assert.Contains(t, out, "Unique Customers: 0\n")
	assert.Contains(t, out, "TOP 5 CUSTOMERS BY REVENUE\n"+lightRule+"\nNo customer data\n")
	assert.Contains(t, out, "LOW PERFORMING PRODUCTS (QTY < 10)\n"+lightRule+"\nNone\n")
	assert.Contains(t, out, "2024-12-01: 1 transactions, 0 customers, $40.00\n")
	assert.Contains(t, out, "North: 40 units, 100.00% of revenue, avg $40.00\n")
}

func TestNewGenerator_Defaults(t *testing.T) {
	g := NewGenerator(0, -1)
	assert.Equal(t, DefaultTopN, g.TopN)
	assert.Equal(t, DefaultMaxRejectionsListed, g.MaxRejectionsListed)
}
