package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

type yamlProduct struct {
	Product `yaml:",inline"`
	Price   float64 `yaml:"price"`
}

type yamlCatalog struct {
	Categories []Category    `yaml:"categories"`
	Products   []yamlProduct `yaml:"products"`
}

// Load parses a YAML catalog document. Prices are given in currency units.
func Load(r io.Reader) (*MemStore, error) {
	var doc yamlCatalog
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	seen := make(map[int]struct{}, len(doc.Products))
	products := make([]Product, 0, len(doc.Products))
	for _, yp := range doc.Products {
		if _, dup := seen[yp.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %d", ErrInvalidProduct, yp.ID)
		}
		if yp.Price < 0 {
			return nil, fmt.Errorf("%w: negative price for id %d", ErrInvalidProduct, yp.ID)
		}
		seen[yp.ID] = struct{}{}

		p := yp.Product
		p.PriceCents = Cents(yp.Price)
		products = append(products, p)
	}

	return NewMemStore(products, doc.Categories), nil
}

// LoadFile reads a catalog from path.
func LoadFile(path string) (*MemStore, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

// Default returns the catalog bundled with the binary. It panics if the
// embedded document is malformed.
func Default() *MemStore {
	s, err := Load(bytes.NewReader(defaultCatalog))
	if err != nil {
		panic(fmt.Sprintf("embedded catalog: %v", err))
	}
	return s
}
