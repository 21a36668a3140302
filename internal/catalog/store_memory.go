package catalog

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// MemStore holds the catalog in insertion order, which is also the
// "featured" display order.
type MemStore struct {
	mu         sync.RWMutex
	products   []Product
	categories []Category
	policy     *bluemonday.Policy
}

func NewMemStore(products []Product, categories []Category) *MemStore {
	return &MemStore{
		products:   append([]Product(nil), products...),
		categories: append([]Category(nil), categories...),
		policy:     bluemonday.StrictPolicy(),
	}
}

// Products returns a copy of the product list. Nested slices are shared and
// must be treated as read-only.
func (s *MemStore) Products() []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Product(nil), s.products...)
}

func (s *MemStore) Categories() []Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Category(nil), s.categories...)
}

func (s *MemStore) Product(id int) (Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// ProductTypes lists the distinct product types, sorted.
func (s *MemStore) ProductTypes() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := map[string]struct{}{}
	for _, p := range s.products {
		if p.ProductType != "" {
			seen[p.ProductType] = struct{}{}
		}
	}

	out := make([]string, 0, len(seen))
	for t := range seen {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Add appends p with the next free id. Free-text fields are stripped of markup.
func (s *MemStore) Add(p Product) (Product, error) {
	p.Name = strings.TrimSpace(s.policy.Sanitize(p.Name))
	p.Description = strings.TrimSpace(s.policy.Sanitize(p.Description))
	p.Category = strings.TrimSpace(p.Category)

	if p.Name == "" {
		return Product{}, fmt.Errorf("%w: name required", ErrInvalidProduct)
	}
	if p.PriceCents < 0 {
		return Product{}, fmt.Errorf("%w: negative price", ErrInvalidProduct)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	maxID := 0
	for _, existing := range s.products {
		if existing.ID > maxID {
			maxID = existing.ID
		}
	}
	p.ID = maxID + 1

	s.products = append(s.products, p)
	return p, nil
}

// Delete removes the product with id and reports whether it existed.
func (s *MemStore) Delete(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, p := range s.products {
		if p.ID == id {
			s.products = append(s.products[:i], s.products[i+1:]...)
			return true
		}
	}
	return false
}
