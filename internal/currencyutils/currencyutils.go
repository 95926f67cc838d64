// Package currencyutils provides the decimal coercion and money formatting used by the pipeline.
package currencyutils

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ErrEmptyAmount is returned for blank numeric fields.
var ErrEmptyAmount = errors.New("empty amount")

var (
	currencyPrefix = regexp.MustCompile(`(?i)^(?:[$€£¥₹]|chf|eur|usd|gbp|inr)\s*`)
	printer        = message.NewPrinter(language.English)
)

// StandardizeAmount strips surrounding whitespace, a leading currency marker
// and thousands separators (',' and '\'') so the result can be parsed by
// decimal.NewFromString. Handles patterns like "$1,234.56" or "CHF 1'234.56".
func StandardizeAmount(amountStr string) string {
	amountStr = strings.TrimSpace(amountStr)
	amountStr = currencyPrefix.ReplaceAllString(amountStr, "")
	return strings.NewReplacer(",", "", "'", "").Replace(amountStr)
}

// ParseAmount parses a ledger amount. Unlike a lenient coercion it never falls
// back to zero: blank or non-numeric input is an error, and so are exponent
// notation ("1e3") and whitespace inside the number ("1 0").
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	standardized := StandardizeAmount(amountStr)
	if standardized == "" {
		return decimal.Zero, ErrEmptyAmount
	}
	if strings.ContainsFunc(standardized, isForeignRune) {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': only plain decimal notation is accepted", amountStr)
	}

	amount, err := decimal.NewFromString(standardized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': %w", amountStr, err)
	}
	return amount, nil
}

func isForeignRune(r rune) bool {
	return r == 'e' || r == 'E' || unicode.IsSpace(r)
}

// ParseQuantity parses an integral quantity. "3" and "3.0" are accepted, "2.5" is not.
func ParseQuantity(qtyStr string) (int64, error) {
	amount, err := ParseAmount(qtyStr)
	if err != nil {
		return 0, err
	}
	if !amount.IsInteger() {
		return 0, fmt.Errorf("quantity '%s' is not a whole number", qtyStr)
	}
	return amount.IntPart(), nil
}

// FormatAmount renders an amount with thousands grouping and two decimals,
// prefixed by symbol: FormatAmount(1234.5, "$") == "$1,234.50". The digits come
// from the decimal itself, so cents stay exact at any magnitude.
func FormatAmount(amount decimal.Decimal, symbol string) string {
	rounded := amount.Round(2)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Abs()
	}
	whole, frac, _ := strings.Cut(rounded.StringFixed(2), ".")
	return sign + symbol + groupThousands(whole) + "." + frac
}

// groupThousands inserts ',' every three digits of an unsigned integer string.
func groupThousands(whole string) string {
	if n, err := strconv.ParseInt(whole, 10, 64); err == nil {
		return printer.Sprintf("%d", n)
	}

	// Beyond int64: group by hand.
	head := len(whole) % 3
	if head == 0 {
		head = 3
	}
	var b strings.Builder
	b.WriteString(whole[:head])
	for i := head; i < len(whole); i += 3 {
		b.WriteByte(',')
		b.WriteString(whole[i : i+3])
	}
	return b.String()
}

// FormatPercent renders part/total as a percentage with two decimals. A zero
// total yields "0.00%".
func FormatPercent(part, total decimal.Decimal) string {
	if total.IsZero() {
		return "0.00%"
	}
	return part.Mul(decimal.NewFromInt(100)).Div(total).StringFixed(2) + "%"
}
