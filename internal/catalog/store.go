package catalog

import (
	"errors"
	"math"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidProduct  = errors.New("invalid product")
)

// Product is a catalog record. Prices are kept in integer cents so that
// cart and order totals add up exactly.
type Product struct {
	ID          int      `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	PriceCents  int64    `json:"price_cents" yaml:"-"`
	Images      []string `json:"images,omitempty" yaml:"images"`
	Image       string   `json:"image,omitempty" yaml:"image"`
	Category    string   `json:"category" yaml:"category"`
	ProductType string   `json:"product_type,omitempty" yaml:"product_type"`
	Featured    bool     `json:"featured" yaml:"featured"`
	InStock     bool     `json:"in_stock" yaml:"in_stock"`
	Dimensions  string   `json:"dimensions,omitempty" yaml:"dimensions"`
	Materials   []string `json:"materials,omitempty" yaml:"materials"`
	Colors      []string `json:"colors,omitempty" yaml:"colors"`
	Rating      float64  `json:"rating,omitempty" yaml:"rating"`
	ModelURL    string   `json:"model_url,omitempty" yaml:"model_url"`
}

// MainImage is the first gallery image, falling back to the single image.
func (p Product) MainImage() string {
	if len(p.Images) > 0 {
		return p.Images[0]
	}
	return p.Image
}

type Category struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Info  string `json:"info" yaml:"info"`
	Image string `json:"image" yaml:"image"`
}

// Provider is the read side of the catalog.
type Provider interface {
	Products() []Product
	Categories() []Category
	Product(id int) (Product, bool)
}

// Cents converts a decimal amount to integer cents, rounding half away from zero.
func Cents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
