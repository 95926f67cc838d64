// Package store holds the product catalogue behind the mock product API.
//
// The catalogue ships with a built-in product list and can be replaced by a
// YAML file of the form:
//
//	products:
//	  - id: P101
//	    name: Laptop Premium
//	    category: Electronics
//	    manufacturer: TechCorp
//	    warranty_months: 24
package store

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"fjacquet/sales-analytics/internal/ledgererror"
	"fjacquet/sales-analytics/internal/logging"
	"fjacquet/sales-analytics/internal/models"

	"gopkg.in/yaml.v3"
)

const catalogFormat = "YAML document with a 'products' list (id, name, category, manufacturer, warranty_months)"

// Product is a catalogue entry.
type Product struct {
	ID             string          `yaml:"id"`
	Name           string          `yaml:"name"`
	Category       models.Category `yaml:"category"`
	Manufacturer   string          `yaml:"manufacturer"`
	WarrantyMonths int             `yaml:"warranty_months"`
}

type catalogFile struct {
	Products []Product `yaml:"products"`
}

// Catalog is an immutable product lookup table keyed by product id.
type Catalog struct {
	products map[string]Product
	ids      []string
}

var defaultProducts = []Product{
	{ID: "P101", Name: "Laptop Premium", Category: models.CategoryElectronics, Manufacturer: "TechCorp", WarrantyMonths: 24},
	{ID: "P102", Name: "Wireless Mouse", Category: models.CategoryAccessories, Manufacturer: "PeripheralCo", WarrantyMonths: 12},
	{ID: "P103", Name: "Mechanical Keyboard", Category: models.CategoryAccessories, Manufacturer: "KeyMasters", WarrantyMonths: 12},
	{ID: "P104", Name: "LED Monitor", Category: models.CategoryElectronics, Manufacturer: "DisplayTech", WarrantyMonths: 36},
	{ID: "P105", Name: "HD Webcam", Category: models.CategoryElectronics, Manufacturer: "VisionTech", WarrantyMonths: 12},
	{ID: "P106", Name: "Headphones", Category: models.CategoryAudio, Manufacturer: "SoundPro", WarrantyMonths: 18},
	{ID: "P107", Name: "USB Cable", Category: models.CategoryAccessories, Manufacturer: "CableCo", WarrantyMonths: 6},
	{ID: "P108", Name: "External Hard Drive 1TB", Category: models.CategoryStorage, Manufacturer: "DataSafe", WarrantyMonths: 24},
	{ID: "P109", Name: "Gaming Wireless Mouse", Category: models.CategoryAccessories, Manufacturer: "GameGear", WarrantyMonths: 12},
	{ID: "P110", Name: "Laptop Charger 65W", Category: models.CategoryAccessories, Manufacturer: "PowerPlus", WarrantyMonths: 12},
}

// DefaultCatalog returns the built-in catalogue.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(defaultProducts)
	if err != nil {
		panic(err)
	}
	return c
}

// NewCatalog validates products and indexes them by id. Ids are matched
// case-insensitively; categories must be one of models.Categories.
func NewCatalog(products []Product) (*Catalog, error) {
	c := &Catalog{products: make(map[string]Product, len(products))}
	for i, p := range products {
		p.ID = strings.TrimSpace(p.ID)
		if p.ID == "" {
			return nil, fmt.Errorf("product #%d has no id", i+1)
		}
		key := normaliseID(p.ID)
		if _, dup := c.products[key]; dup {
			return nil, fmt.Errorf("duplicate product id %s", p.ID)
		}
		category, ok := models.ParseCategory(string(p.Category))
		if !ok {
			return nil, fmt.Errorf("product %s has unknown category %q", p.ID, p.Category)
		}
		if p.WarrantyMonths < 0 {
			return nil, fmt.Errorf("product %s has negative warranty", p.ID)
		}
		p.Category = category
		c.products[key] = p
		c.ids = append(c.ids, key)
	}
	sort.Strings(c.ids)
	return c, nil
}

// LoadCatalog reads a catalogue file. An empty path yields the built-in
// catalogue. Relative paths are resolved with FindCatalogFile.
func LoadCatalog(path string, logger logging.Logger) (*Catalog, error) {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	if path == "" {
		logger.Debug("Using built-in product catalogue", logging.F(logging.FieldCount, len(defaultProducts)))
		return DefaultCatalog(), nil
	}

	resolved, err := FindCatalogFile(path)
	if err != nil {
		return nil, &ledgererror.FileNotFoundError{FilePath: path, Err: err}
	}

	data, err := os.ReadFile(resolved) // #nosec G304 -- catalogue path is user configured
	if err != nil {
		return nil, &ledgererror.ReadError{FilePath: resolved, Err: err}
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, &ledgererror.InvalidFormatError{FilePath: resolved, ExpectedFormat: catalogFormat, Msg: err.Error()}
	}
	if len(file.Products) == 0 {
		return nil, &ledgererror.InvalidFormatError{FilePath: resolved, ExpectedFormat: catalogFormat, Msg: "no products defined"}
	}

	catalog, err := NewCatalog(file.Products)
	if err != nil {
		return nil, &ledgererror.InvalidFormatError{FilePath: resolved, ExpectedFormat: catalogFormat, Msg: err.Error()}
	}

	logger.Info("Loaded product catalogue",
		logging.F(logging.FieldFile, resolved),
		logging.F(logging.FieldCount, catalog.Len()))
	return catalog, nil
}

// FindCatalogFile looks for filename as given, then under ./config and
// finally under $HOME/.config/sales-analytics.
func FindCatalogFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err != nil {
			return "", err
		}
		return filename, nil
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		locations = append(locations, filepath.Join(homeDir, ".config", "sales-analytics", filename))
	}

	for _, location := range locations {
		if info, err := os.Stat(location); err == nil && !info.IsDir() {
			return location, nil
		}
	}
	return "", fs.ErrNotExist
}

// SaveCatalog writes the catalogue as YAML, creating parent directories.
func SaveCatalog(c *Catalog, path string) error {
	data, err := yaml.Marshal(catalogFile{Products: c.Products()})
	if err != nil {
		return &ledgererror.WriteError{FilePath: path, Op: "encode", Err: err}
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return &ledgererror.WriteError{FilePath: path, Op: "create directory for", Err: err}
		}
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return &ledgererror.WriteError{FilePath: path, Op: "write", Err: err}
	}
	return nil
}

// Lookup returns the product with the given id.
func (c *Catalog) Lookup(productID string) (Product, bool) {
	p, ok := c.products[normaliseID(productID)]
	return p, ok
}

// Len is the number of products.
func (c *Catalog) Len() int {
	return len(c.products)
}

// Products returns every product sorted by id.
func (c *Catalog) Products() []Product {
	out := make([]Product, 0, len(c.ids))
	for _, id := range c.ids {
		out = append(out, c.products[id])
	}
	return out
}

func normaliseID(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}
