package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

const (
	SortFeatured  = "featured"
	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"
	SortName      = "name"

	allValues = "all"
)

var ErrBadQuery = errors.New("bad catalog query")

// Query narrows and orders a product list. Empty or "all" string fields and
// nil flags match everything.
type Query struct {
	Category    string
	ProductType string
	// PriceRange is "min-max" (inclusive) or "min+" in whole currency units.
	PriceRange string
	InStock    *bool
	Featured   *bool
	Search     string
	Sort       string
}

type priceBounds struct {
	min, max int64
	hasMax   bool
}

func parsePriceRange(s string) (priceBounds, bool, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == allValues {
		return priceBounds{}, false, nil
	}

	if lo, ok := strings.CutSuffix(s, "+"); ok {
		from, err := strconv.ParseFloat(lo, 64)
		if err != nil || from < 0 {
			return priceBounds{}, false, fmt.Errorf("%w: price range %q", ErrBadQuery, s)
		}
		return priceBounds{min: Cents(from)}, true, nil
	}

	lo, hi, ok := strings.Cut(s, "-")
	if !ok {
		return priceBounds{}, false, fmt.Errorf("%w: price range %q", ErrBadQuery, s)
	}
	from, err1 := strconv.ParseFloat(lo, 64)
	to, err2 := strconv.ParseFloat(hi, 64)
	if err1 != nil || err2 != nil || from < 0 || to < from {
		return priceBounds{}, false, fmt.Errorf("%w: price range %q", ErrBadQuery, s)
	}
	return priceBounds{min: Cents(from), max: Cents(to), hasMax: true}, true, nil
}

func matchAll(want string) bool {
	return want == "" || want == allValues
}

// Apply returns the products matching q, ordered by q.Sort. The input slice
// is not modified.
func Apply(products []Product, q Query) ([]Product, error) {
	bounds, hasBounds, err := parsePriceRange(q.PriceRange)
	if err != nil {
		return nil, err
	}
	switch q.Sort {
	case "", SortFeatured, SortPriceLow, SortPriceHigh, SortName:
	default:
		return nil, fmt.Errorf("%w: sort %q", ErrBadQuery, q.Sort)
	}

	search := strings.ToLower(strings.TrimSpace(q.Search))

	out := make([]Product, 0, len(products))
	for _, p := range products {
		if !matchAll(q.Category) && p.Category != q.Category {
			continue
		}
		if !matchAll(q.ProductType) && p.ProductType != q.ProductType {
			continue
		}
		if hasBounds {
			if p.PriceCents < bounds.min || (bounds.hasMax && p.PriceCents > bounds.max) {
				continue
			}
		}
		if q.InStock != nil && p.InStock != *q.InStock {
			continue
		}
		if q.Featured != nil && p.Featured != *q.Featured {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Description), search) {
			continue
		}
		out = append(out, p)
	}

	switch q.Sort {
	case SortPriceLow:
		sort.SliceStable(out, func(i, j int) bool { return out[i].PriceCents < out[j].PriceCents })
	case SortPriceHigh:
		sort.SliceStable(out, func(i, j int) bool { return out[i].PriceCents > out[j].PriceCents })
	case SortName:
		sort.SliceStable(out, func(i, j int) bool {
			return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
		})
	}

	return out, nil
}

// CategoriesOf lists the distinct categories present in products, in first-seen order.
func CategoriesOf(products []Product) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, p := range products {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	return out
}
