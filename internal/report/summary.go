package report

import (
	"sort"
	"time"

	"fjacquet/sales-analytics/internal/currencyutils"
	"fjacquet/sales-analytics/internal/dateutils"
	"fjacquet/sales-analytics/internal/models"

	"github.com/shopspring/decimal"
)

// ProductRevenue is one ranked entry of the top products list.
type ProductRevenue struct {
	Rank     int
	Name     string
	Revenue  decimal.Decimal
	Quantity int64
}

// RegionTotal is the revenue and volume booked in one region.
type RegionTotal struct {
	Region       models.Region
	Revenue      decimal.Decimal
	Transactions int
	Units        int64
}

// Average is the mean transaction value in the region, zero when it has none.
func (r RegionTotal) Average() decimal.Decimal {
	if r.Transactions == 0 {
		return decimal.Zero
	}
	return r.Revenue.Div(decimal.NewFromInt(int64(r.Transactions)))
}

// CustomerRevenue is one ranked entry of the top customers list.
type CustomerRevenue struct {
	Rank         int
	CustomerID   string
	Revenue      decimal.Decimal
	Transactions int
}

// CategoryTotal is the revenue booked in one product category.
type CategoryTotal struct {
	Category     models.Category
	Revenue      decimal.Decimal
	Transactions int
}

// DailyTotal is the activity of a single calendar day. Customers counts
// distinct customer ids seen that day.
type DailyTotal struct {
	Date         time.Time
	Transactions int
	Revenue      decimal.Decimal
	Customers    int
}

// EnrichmentStats counts catalogue matches.
type EnrichmentStats struct {
	Matched int
	Total   int
	// Unmatched lists distinct product ids absent from the catalogue, in first-seen order.
	Unmatched []string
}

// Summary is the aggregate view rendered into the report.
type Summary struct {
	TransactionCount  int
	TotalRevenue      decimal.Decimal
	AverageOrderValue decimal.Decimal
	DateRange         dateutils.DateRange
	TopProducts       []ProductRevenue
	LowPerformers     []ProductRevenue
	UniqueCustomers   int
	TopCustomers      []CustomerRevenue
	RegionRevenue     []RegionTotal
	CategoryRevenue   []CategoryTotal
	DailyTotals       []DailyTotal
	PeakDay           *DailyTotal
	Enrichment        EnrichmentStats

	// InputRows and RejectedRows describe the cleaning step. Aggregate sets
	// InputRows to the record count; AttachQuality overrides both.
	InputRows    int
	RejectedRows []models.RejectedRow
}

// AttachQuality records the processor's counts on the summary.
func (s *Summary) AttachQuality(inputRows int, rejected []models.RejectedRow) {
	s.InputRows = inputRows
	s.RejectedRows = rejected
}

// LowPerformingThreshold is the total quantity below which a product is
// listed as low performing.
const LowPerformingThreshold = 10

// Aggregate folds enriched records into a Summary. Empty input yields a zero
// summary with every region and category present. Records without a customer
// id are left out of the customer figures.
func (g *Generator) Aggregate(records []models.EnrichedRecord) Summary {
	s := Summary{
		TransactionCount:  len(records),
		TotalRevenue:      decimal.Zero,
		AverageOrderValue: decimal.Zero,
		InputRows:         len(records),
	}

	regionIdx := make(map[models.Region]int, len(models.Regions))
	for i, r := range models.Regions {
		regionIdx[r] = i
		s.RegionRevenue = append(s.RegionRevenue, RegionTotal{Region: r, Revenue: decimal.Zero})
	}
	categoryIdx := make(map[models.Category]int, len(models.Categories))
	for i, c := range models.Categories {
		categoryIdx[c] = i
		s.CategoryRevenue = append(s.CategoryRevenue, CategoryTotal{Category: c, Revenue: decimal.Zero})
	}

	var (
		products  []ProductRevenue
		customers []CustomerRevenue
	)
	productIdx := make(map[string]int)
	customerIdx := make(map[string]int)
	daily := make(map[string]*DailyTotal)
	dayCustomers := make(map[string]map[string]bool)
	unmatchedSeen := make(map[string]bool)

	for _, rec := range records {
		s.TotalRevenue = s.TotalRevenue.Add(rec.Revenue)
		s.DateRange = s.DateRange.Extend(rec.Date)

		i, ok := productIdx[rec.ProductName]
		if !ok {
			i = len(products)
			productIdx[rec.ProductName] = i
			products = append(products, ProductRevenue{Name: rec.ProductName, Revenue: decimal.Zero})
		}
		products[i].Revenue = products[i].Revenue.Add(rec.Revenue)
		products[i].Quantity += rec.Quantity

		if rec.CustomerID != "" {
			ci, ok := customerIdx[rec.CustomerID]
			if !ok {
				ci = len(customers)
				customerIdx[rec.CustomerID] = ci
				customers = append(customers, CustomerRevenue{CustomerID: rec.CustomerID, Revenue: decimal.Zero})
			}
			customers[ci].Revenue = customers[ci].Revenue.Add(rec.Revenue)
			customers[ci].Transactions++
		}

		if ri, ok := regionIdx[rec.Region]; ok {
			s.RegionRevenue[ri].Revenue = s.RegionRevenue[ri].Revenue.Add(rec.Revenue)
			s.RegionRevenue[ri].Transactions++
			s.RegionRevenue[ri].Units += rec.Quantity
		}
		if ci, ok := categoryIdx[rec.Category]; ok {
			s.CategoryRevenue[ci].Revenue = s.CategoryRevenue[ci].Revenue.Add(rec.Revenue)
			s.CategoryRevenue[ci].Transactions++
		}

		day := rec.DateString()
		d, ok := daily[day]
		if !ok {
			d = &DailyTotal{Date: rec.Date, Revenue: decimal.Zero}
			daily[day] = d
			dayCustomers[day] = make(map[string]bool)
		}
		d.Transactions++
		d.Revenue = d.Revenue.Add(rec.Revenue)
		if rec.CustomerID != "" && !dayCustomers[day][rec.CustomerID] {
			dayCustomers[day][rec.CustomerID] = true
			d.Customers++
		}

		s.Enrichment.Total++
		if rec.APIMatch {
			s.Enrichment.Matched++
		} else if rec.ProductID != "" && !unmatchedSeen[rec.ProductID] {
			unmatchedSeen[rec.ProductID] = true
			s.Enrichment.Unmatched = append(s.Enrichment.Unmatched, rec.ProductID)
		}
	}

	if s.TransactionCount > 0 {
		s.AverageOrderValue = s.TotalRevenue.Div(decimal.NewFromInt(int64(s.TransactionCount)))
	}

	s.LowPerformers = lowPerformers(products)
	s.TopProducts = topProducts(products, g.TopN)
	s.UniqueCustomers = len(customers)
	s.TopCustomers = topCustomers(customers, g.TopN)
	s.DailyTotals, s.PeakDay = dailyTrend(daily)
	return s
}

// RegionShare is the region's part of the total revenue, as a percentage string.
func (s Summary) RegionShare(r RegionTotal) string {
	return currencyutils.FormatPercent(r.Revenue, s.TotalRevenue)
}

// lowPerformers keeps products whose summed quantity is under the threshold,
// in first-encountered order. It must run before topProducts reorders the slice.
func lowPerformers(products []ProductRevenue) []ProductRevenue {
	var low []ProductRevenue
	for _, p := range products {
		if p.Quantity < LowPerformingThreshold {
			low = append(low, p)
		}
	}
	return low
}

// topCustomers ranks by spend, descending, keeping first-encountered order on ties.
func topCustomers(customers []CustomerRevenue, n int) []CustomerRevenue {
	sort.SliceStable(customers, func(i, j int) bool {
		return customers[i].Revenue.GreaterThan(customers[j].Revenue)
	})
	if n >= 0 && len(customers) > n {
		customers = customers[:n]
	}
	for i := range customers {
		customers[i].Rank = i + 1
	}
	return customers
}

// topProducts ranks by revenue, descending. The stable sort keeps
// first-encountered order among equal revenues.
func topProducts(products []ProductRevenue, n int) []ProductRevenue {
	sort.SliceStable(products, func(i, j int) bool {
		return products[i].Revenue.GreaterThan(products[j].Revenue)
	})
	if n >= 0 && len(products) > n {
		products = products[:n]
	}
	for i := range products {
		products[i].Rank = i + 1
	}
	return products
}

// dailyTrend sorts days ascending and picks the busiest one. Scanning in date
// order with a strict comparison makes the earliest day win a tie.
func dailyTrend(daily map[string]*DailyTotal) ([]DailyTotal, *DailyTotal) {
	days := make([]DailyTotal, 0, len(daily))
	for _, d := range daily {
		days = append(days, *d)
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Date.Before(days[j].Date)
	})

	var peak *DailyTotal
	for i := range days {
		if peak == nil || days[i].Transactions > peak.Transactions {
			p := days[i]
			peak = &p
		}
	}
	return days, peak
}
