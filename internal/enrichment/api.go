package enrichment

import (
	"context"

	"fjacquet/sales-analytics/internal/store"
)

// ProductAPI looks up product metadata.
type ProductAPI interface {
	FetchProduct(ctx context.Context, productID string) (store.Product, bool)
	Status() APIStatus
}

// APIStatus describes the availability of a ProductAPI.
type APIStatus struct {
	Status            string `json:"status"`
	Message           string `json:"message"`
	ProductsAvailable int    `json:"products_available"`
}

// MockProductAPI answers lookups from an in-memory catalogue.
type MockProductAPI struct {
	catalog *store.Catalog
}

// NewMockProductAPI creates a mock API. A nil catalogue means the built-in one.
func NewMockProductAPI(catalog *store.Catalog) *MockProductAPI {
	if catalog == nil {
		catalog = store.DefaultCatalog()
	}
	return &MockProductAPI{catalog: catalog}
}

// FetchProduct returns the catalogue entry for productID. Blank ids never match.
func (m *MockProductAPI) FetchProduct(_ context.Context, productID string) (store.Product, bool) {
	if productID == "" {
		return store.Product{}, false
	}
	return m.catalog.Lookup(productID)
}

// Status always reports the mock as available.
func (m *MockProductAPI) Status() APIStatus {
	return APIStatus{
		Status:            "available",
		Message:           "Mock API is running",
		ProductsAvailable: m.catalog.Len(),
	}
}
