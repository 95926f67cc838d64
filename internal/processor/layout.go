package processor

import (
	"fmt"
	"strings"

	"fjacquet/sales-analytics/internal/ledgererror"
)

// Column identifies a ledger column the processor understands.
type Column string

const (
	ColTransactionID Column = "TransactionID"
	ColDate          Column = "Date"
	ColProductID     Column = "ProductID"
	ColProductName   Column = "ProductName"
	ColQuantity      Column = "Quantity"
	ColUnitPrice     Column = "UnitPrice"
	ColCustomerID    Column = "CustomerID"
	ColRegion        Column = "Region"
	// colIgnored marks a header column the processor does not read.
	colIgnored Column = ""
)

var requiredColumns = []Column{ColTransactionID, ColDate, ColProductName, ColUnitPrice, ColQuantity}

// headerAliases maps normalised header names to columns.
var headerAliases = map[string]Column{
	"transactionid": ColTransactionID,
	"date":          ColDate,
	"productid":     ColProductID,
	"productname":   ColProductName,
	"product":       ColProductName,
	"quantity":      ColQuantity,
	"qty":           ColQuantity,
	"unitprice":     ColUnitPrice,
	"price":         ColUnitPrice,
	"customerid":    ColCustomerID,
	"region":        ColRegion,
}

// Layout is the ordered column list of a ledger.
type Layout struct {
	columns []Column
	index   map[Column]int
}

// DefaultLayout is used for headerless ledgers:
// TransactionID, Date, ProductName, UnitPrice, Quantity.
func DefaultLayout() Layout {
	layout, _ := newLayout(requiredColumns)
	return layout
}

func newLayout(columns []Column) (Layout, error) {
	index := make(map[Column]int, len(columns))
	for i, c := range columns {
		if c == colIgnored {
			continue
		}
		if _, dup := index[c]; dup {
			return Layout{}, fmt.Errorf("duplicate column %s", c)
		}
		index[c] = i
	}
	return Layout{columns: columns, index: index}, nil
}

// Width is the number of fields every row must carry.
func (l Layout) Width() int {
	return len(l.columns)
}

// Has reports whether the layout carries column c.
func (l Layout) Has(c Column) bool {
	_, ok := l.index[c]
	return ok
}

func (l Layout) field(fields []string, c Column) string {
	i, ok := l.index[c]
	if !ok {
		return ""
	}
	return strings.TrimSpace(fields[i])
}

func normaliseHeader(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.NewReplacer(" ", "", "_", "", "-", "").Replace(name)
}

// IsHeader reports whether fields look like a header row: the first field
// names the transaction id column.
func IsHeader(fields []string) bool {
	if len(fields) == 0 {
		return false
	}
	return headerAliases[normaliseHeader(fields[0])] == ColTransactionID
}

// LayoutFromHeader maps header names to columns. Unknown names are kept as
// ignored positions so field counts still line up.
func LayoutFromHeader(fields []string) (Layout, error) {
	columns := make([]Column, len(fields))
	for i, name := range fields {
		columns[i] = headerAliases[normaliseHeader(name)]
	}

	layout, err := newLayout(columns)
	if err != nil {
		return Layout{}, &ledgererror.InvalidFormatError{
			ExpectedFormat: expectedFormat(),
			Msg:            err.Error(),
		}
	}

	var missing []string
	for _, c := range requiredColumns {
		if !layout.Has(c) {
			missing = append(missing, string(c))
		}
	}
	if len(missing) > 0 {
		return Layout{}, &ledgererror.InvalidFormatError{
			ExpectedFormat: expectedFormat(),
			Msg:            "header is missing " + strings.Join(missing, ", "),
		}
	}
	return layout, nil
}

func expectedFormat() string {
	names := make([]string, len(requiredColumns))
	for i, c := range requiredColumns {
		names[i] = string(c)
	}
	return "header with " + strings.Join(names, ", ")
}
