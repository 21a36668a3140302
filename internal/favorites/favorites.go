// Package favorites keeps the products liked while browsing. The set is not
// tied to a user and survives logout.
package favorites

import "FurniStore/internal/catalog"

// Set holds full product snapshots, unique by id, in insertion order.
// Set is not safe for concurrent use.
type Set struct {
	items []catalog.Product
}

// New builds a set from items, dropping later duplicates.
func New(items []catalog.Product) *Set {
	s := &Set{}
	for _, p := range items {
		s.Add(p)
	}
	return s
}

func (s *Set) Contains(productID int) bool {
	for _, p := range s.items {
		if p.ID == productID {
			return true
		}
	}
	return false
}

// Add inserts p unless a product with the same id is present. It reports
// whether the set changed.
func (s *Set) Add(p catalog.Product) bool {
	if s.Contains(p.ID) {
		return false
	}
	s.items = append(s.items, p)
	return true
}

// Remove deletes productID and reports whether the set changed.
func (s *Set) Remove(productID int) bool {
	for i, p := range s.items {
		if p.ID == productID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return true
		}
	}
	return false
}

// With returns the items as they would be after Add(p), without mutating s.
func (s *Set) With(p catalog.Product) ([]catalog.Product, bool) {
	if s.Contains(p.ID) {
		return s.List(), false
	}
	return append(s.List(), p), true
}

// Without returns the items as they would be after Remove(productID).
func (s *Set) Without(productID int) ([]catalog.Product, bool) {
	out := make([]catalog.Product, 0, len(s.items))
	for _, p := range s.items {
		if p.ID != productID {
			out = append(out, p)
		}
	}
	return out, len(out) != len(s.items)
}

func (s *Set) List() []catalog.Product {
	out := make([]catalog.Product, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Set) Len() int { return len(s.items) }

// Query filters and sorts the favorites with the catalog query rules.
func (s *Set) Query(q catalog.Query) ([]catalog.Product, error) {
	return catalog.Apply(s.items, q)
}

// Categories lists the distinct categories among the favorites.
func (s *Set) Categories() []string {
	return catalog.CategoriesOf(s.items)
}
