package catalog

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"checkout-app/internal/domain/money"
)

// Catalog is the product lookup table. Built once at startup, read-only after,
// so concurrent request handlers need no locking.
type Catalog struct {
	products []*Product
	byID     map[string]*Product
}

func New() *Catalog {
	return &Catalog{byID: make(map[string]*Product)}
}

func (c *Catalog) Add(p *Product) {
	c.products = append(c.products, p)
	c.byID[p.ID] = p
}

// Get looks a product up by id, active or not. Callers decide whether an
// inactive product is an error.
func (c *Catalog) Get(id string) (*Product, bool) {
	p, ok := c.byID[id]
	return p, ok
}

// ActiveProducts returns active products in registration order.
func (c *Catalog) ActiveProducts() []*Product {
	out := make([]*Product, 0, len(c.products))
	for _, p := range c.products {
		if p.Active {
			out = append(out, p)
		}
	}
	return out
}

func (c *Catalog) Len() int {
	return len(c.products)
}

// productsFile mirrors the TOML shape. Active is a pointer so an omitted
// field defaults to true, and Interval defaults to one_time.
type productsFile struct {
	Products []struct {
		ID              string            `toml:"id"`
		Name            string            `toml:"name"`
		Description     string            `toml:"description"`
		ProductType     ProductType       `toml:"product_type"`
		Price           money.Price       `toml:"price"`
		BillingInterval BillingInterval   `toml:"billing_interval"`
		Active          *bool             `toml:"active"`
		ImageURL        string            `toml:"image_url"`
		Metadata        map[string]string `toml:"metadata"`
	} `toml:"products"`
}

// Parse builds a catalog from TOML bytes (see config/products.toml).
func Parse(data []byte) (*Catalog, error) {
	var file productsFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse products: %w", err)
	}

	c := New()
	for _, entry := range file.Products {
		if entry.ID == "" {
			return nil, fmt.Errorf("parse products: product with empty id")
		}
		if _, ok := money.ParseCurrency(string(entry.Price.Currency)); !ok {
			return nil, fmt.Errorf("parse products: product %q has unsupported currency %q", entry.ID, entry.Price.Currency)
		}

		active := true
		if entry.Active != nil {
			active = *entry.Active
		}
		interval := entry.BillingInterval
		if interval == "" {
			interval = IntervalOneTime
		}
		productType := entry.ProductType
		if productType == "" {
			productType = TypeDigital
		}

		c.Add(&Product{
			ID:              entry.ID,
			Name:            entry.Name,
			Description:     entry.Description,
			ProductType:     productType,
			Price:           entry.Price,
			BillingInterval: interval,
			Active:          active,
			ImageURL:        entry.ImageURL,
			Metadata:        entry.Metadata,
		})
	}

	return c, nil
}

// Load reads the catalog file from disk. A missing file yields an empty
// catalog rather than an error so the server can boot without one.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return New(), nil
		}
		return nil, fmt.Errorf("read products file: %w", err)
	}
	return Parse(data)
}
