// Package store is the pest-control shop: a static catalog and a per-session,
// never-persisted cart with a simulated checkout.
package store

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// All is the category filter sentinel that selects the whole catalog.
const All = "All"

type Product struct {
	ID          string  `json:"id" yaml:"id"`
	Name        string  `json:"name" yaml:"name"`
	Category    string  `json:"category" yaml:"category"`
	PriceCents  int64   `json:"price_cents" yaml:"price_cents"`
	Rating      float64 `json:"rating" yaml:"rating"`
	Description string  `json:"description" yaml:"description"`
	InStock     bool    `json:"in_stock" yaml:"in_stock"`
}

type Catalog struct {
	products []Product
	byID     map[string]int
}

func NewCatalog(products []Product) (*Catalog, error) {
	if len(products) == 0 {
		return nil, errors.New("catalog is empty")
	}
	c := &Catalog{products: append([]Product{}, products...), byID: make(map[string]int, len(products))}
	for i, p := range c.products {
		if p.ID == "" {
			return nil, fmt.Errorf("product %d has no id", i)
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate product id %q", p.ID)
		}
		if p.PriceCents < 0 {
			return nil, fmt.Errorf("product %q has a negative price", p.ID)
		}
		c.byID[p.ID] = i
	}
	return c, nil
}

// LoadCatalog reads a YAML file of the form `products: [...]`.
func LoadCatalog(path string) (*Catalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc struct {
		Products []Product `yaml:"products"`
	}
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return NewCatalog(doc.Products)
}

func DefaultCatalog() *Catalog {
	c, err := NewCatalog(defaultProducts)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Catalog) All() []Product { return append([]Product{}, c.products...) }

func (c *Catalog) Product(id string) (Product, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Product{}, false
	}
	return c.products[i], true
}

// Categories returns All followed by each distinct category in catalog order.
func (c *Catalog) Categories() []string {
	out := []string{All}
	seen := map[string]bool{}
	for _, p := range c.products {
		if !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	return out
}

// Filter returns the products whose category equals category exactly, or
// the whole catalog for All.
func (c *Catalog) Filter(category string) []Product {
	if category == All {
		return c.All()
	}
	out := []Product{}
	for _, p := range c.products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

var defaultProducts = []Product{
	{ID: "1", Name: "Organic Neem Oil Spray", Category: "Organic", PriceCents: 2499, Rating: 4.5, Description: "Natural pest control solution for various garden pests", InStock: true},
	{ID: "2", Name: "Insecticidal Soap Concentrate", Category: "Organic", PriceCents: 1899, Rating: 4.3, Description: "Effective against aphids, mites, and soft-bodied insects", InStock: true},
	{ID: "3", Name: "BT Caterpillar Killer", Category: "Biological", PriceCents: 3299, Rating: 4.7, Description: "Targets caterpillars and worms without harming beneficial insects", InStock: true},
	{ID: "4", Name: "Diatomaceous Earth 10lb", Category: "Organic", PriceCents: 2999, Rating: 4.6, Description: "Natural powder for crawling insect control", InStock: true},
	{ID: "5", Name: "Pyrethrin Concentrate", Category: "Botanical", PriceCents: 3999, Rating: 4.4, Description: "Fast-acting botanical insecticide for broad spectrum control", InStock: false},
	{ID: "6", Name: "Spinosad Garden Spray", Category: "Organic", PriceCents: 2799, Rating: 4.8, Description: "OMRI listed organic solution for tough pests", InStock: true},
	{ID: "7", Name: "Beneficial Nematodes", Category: "Biological", PriceCents: 4499, Rating: 4.5, Description: "Live microscopic organisms that control soil pests", InStock: true},
	{ID: "8", Name: "Copper Fungicide", Category: "Chemical", PriceCents: 2199, Rating: 4.2, Description: "Prevents and controls fungal diseases on crops", InStock: true},
	{ID: "9", Name: "Horticultural Oil", Category: "Organic", PriceCents: 1999, Rating: 4.4, Description: "Smothers soft-bodied pests and their eggs", InStock: true},
}
