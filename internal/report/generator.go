// Package report aggregates enriched sales records and renders the plain text
// analytics report.
package report

import (
	"fmt"
	"strings"

	"fjacquet/sales-analytics/internal/currencyutils"
	"fjacquet/sales-analytics/internal/dateutils"

	"github.com/shopspring/decimal"
)

const (
	// DefaultTopN is the number of products and customers ranked when none is configured.
	DefaultTopN = 5
	// DefaultMaxRejectionsListed caps the rejected rows printed in DATA QUALITY.
	DefaultMaxRejectionsListed = 10

	reportWidth    = 80
	currencySymbol = "$"
)

var (
	heavyRule = strings.Repeat("=", reportWidth)
	lightRule = strings.Repeat("-", reportWidth)
)

// Generator aggregates and renders reports.
type Generator struct {
	TopN                int
	MaxRejectionsListed int
}

// NewGenerator creates a generator. Non-positive values fall back to the defaults.
func NewGenerator(topN, maxRejectionsListed int) *Generator {
	if topN < 1 {
		topN = DefaultTopN
	}
	if maxRejectionsListed < 0 {
		maxRejectionsListed = DefaultMaxRejectionsListed
	}
	return &Generator{TopN: topN, MaxRejectionsListed: maxRejectionsListed}
}

// Render lays the summary out as text. The output depends only on s and the
// generator settings, so identical summaries render byte-identical reports.
func (g *Generator) Render(s Summary) string {
	var b strings.Builder

	banner(&b, "SALES ANALYTICS REPORT")
	b.WriteString("\n")
	fmt.Fprintf(&b, "Total Valid Transactions: %d\n", s.TransactionCount)
	fmt.Fprintf(&b, "Total Revenue: %s\n", money(s.TotalRevenue))

	section(&b, fmt.Sprintf("TOP %d PRODUCTS BY REVENUE", g.TopN))
	if len(s.TopProducts) == 0 {
		b.WriteString("No products sold\n")
	}
	for _, p := range s.TopProducts {
		fmt.Fprintf(&b, "%d. %s: %s\n", p.Rank, p.Name, money(p.Revenue))
	}

	section(&b, "REGION-WISE REVENUE")
	for _, r := range s.RegionRevenue {
		fmt.Fprintf(&b, "%s: %s (%d transactions)\n", r.Region, money(r.Revenue), r.Transactions)
	}

	section(&b, "PEAK SALES DAY")
	if s.PeakDay == nil {
		b.WriteString("N/A\n")
	} else {
		fmt.Fprintf(&b, "%s (%d transactions)\n", dateutils.ToISODate(s.PeakDay.Date), s.PeakDay.Transactions)
	}

	section(&b, "OVERALL SUMMARY")
	fmt.Fprintf(&b, "Average Order Value: %s\n", money(s.AverageOrderValue))
	fmt.Fprintf(&b, "Date Range: %s\n", s.DateRange)

	section(&b, "REGION PERFORMANCE")
	for _, r := range s.RegionRevenue {
		fmt.Fprintf(&b, "%s: %d units, %s of revenue, avg %s\n", r.Region, r.Units, s.RegionShare(r), money(r.Average()))
	}

	section(&b, "CATEGORY BREAKDOWN")
	for _, c := range s.CategoryRevenue {
		fmt.Fprintf(&b, "%s: %s (%d transactions)\n", c.Category, money(c.Revenue), c.Transactions)
	}

	g.renderCustomers(&b, s)

	section(&b, fmt.Sprintf("LOW PERFORMING PRODUCTS (QTY < %d)", LowPerformingThreshold))
	if len(s.LowPerformers) == 0 {
		b.WriteString("None\n")
	}
	for _, p := range s.LowPerformers {
		fmt.Fprintf(&b, "%s: %d units, %s\n", p.Name, p.Quantity, money(p.Revenue))
	}

	section(&b, "DAILY SALES TREND")
	if len(s.DailyTotals) == 0 {
		b.WriteString("No sales recorded\n")
	}
	for _, d := range s.DailyTotals {
		fmt.Fprintf(&b, "%s: %d transactions, %d customers, %s\n",
			dateutils.ToISODate(d.Date), d.Transactions, d.Customers, money(d.Revenue))
	}

	g.renderQuality(&b, s)

	section(&b, "API ENRICHMENT SUMMARY")
	fmt.Fprintf(&b, "Products Matched: %d/%d\n", s.Enrichment.Matched, s.Enrichment.Total)
	fmt.Fprintf(&b, "Success Rate: %s\n", currencyutils.FormatPercent(
		decimal.NewFromInt(int64(s.Enrichment.Matched)), decimal.NewFromInt(int64(s.Enrichment.Total))))
	unmatched := "None"
	if len(s.Enrichment.Unmatched) > 0 {
		unmatched = strings.Join(s.Enrichment.Unmatched, ", ")
	}
	fmt.Fprintf(&b, "Unmatched Products: %s\n", unmatched)

	b.WriteString("\n")
	banner(&b, "END OF REPORT")
	return b.String()
}

func (g *Generator) renderCustomers(b *strings.Builder, s Summary) {
	section(b, "CUSTOMER INSIGHTS")
	fmt.Fprintf(b, "Unique Customers: %d\n", s.UniqueCustomers)

	section(b, fmt.Sprintf("TOP %d CUSTOMERS BY REVENUE", g.TopN))
	if len(s.TopCustomers) == 0 {
		b.WriteString("No customer data\n")
	}
	for _, c := range s.TopCustomers {
		fmt.Fprintf(b, "%d. %s: %s (%d transactions)\n", c.Rank, c.CustomerID, money(c.Revenue), c.Transactions)
	}
}

func (g *Generator) renderQuality(b *strings.Builder, s Summary) {
	section(b, "DATA QUALITY")
	fmt.Fprintf(b, "Input Rows: %d\n", s.InputRows)
	fmt.Fprintf(b, "Valid Rows: %d\n", s.TransactionCount)
	fmt.Fprintf(b, "Rejected Rows: %d\n", len(s.RejectedRows))

	listed := s.RejectedRows
	if len(listed) > g.MaxRejectionsListed {
		listed = listed[:g.MaxRejectionsListed]
	}
	for _, r := range listed {
		if r.TransactionID != "" {
			fmt.Fprintf(b, "  Line %d (%s): %s\n", r.Line, r.TransactionID, r.Reason)
		} else {
			fmt.Fprintf(b, "  Line %d: %s\n", r.Line, r.Reason)
		}
	}
	if rest := len(s.RejectedRows) - len(listed); rest > 0 {
		fmt.Fprintf(b, "  ... and %d more\n", rest)
	}
}

func banner(b *strings.Builder, title string) {
	b.WriteString(heavyRule + "\n")
	b.WriteString(title + "\n")
	b.WriteString(heavyRule + "\n")
}

func section(b *strings.Builder, title string) {
	b.WriteString("\n" + lightRule + "\n")
	b.WriteString(title + "\n")
	b.WriteString(lightRule + "\n")
}

func money(amount decimal.Decimal) string {
	return currencyutils.FormatAmount(amount, currencySymbol)
}
