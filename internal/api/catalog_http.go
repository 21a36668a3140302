package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"FurniStore/internal/catalog"
	"FurniStore/pkg/kit"
)

// queryFrom reads catalog filters from the URL: category, type, price,
// in_stock, featured, q and sort.
func queryFrom(v url.Values) (catalog.Query, error) {
	q := catalog.Query{
		Category:    v.Get("category"),
		ProductType: v.Get("type"),
		PriceRange:  v.Get("price"),
		Search:      v.Get("q"),
		Sort:        v.Get("sort"),
	}

	var err error
	if q.InStock, err = boolParam(v, "in_stock"); err != nil {
		return catalog.Query{}, err
	}
	if q.Featured, err = boolParam(v, "featured"); err != nil {
		return catalog.Query{}, err
	}
	return q, nil
}

func boolParam(v url.Values, name string) (*bool, error) {
	raw := v.Get(name)
	if raw == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s=%q", catalog.ErrBadQuery, name, raw)
	}
	return &b, nil
}

func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	q, err := queryFrom(r.URL.Query())
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, err.Error(), nil)
		return
	}

	products, err := s.Store.QueryProducts(q)
	if errors.Is(err, catalog.ErrBadQuery) {
		kit.WriteError(w, r, http.StatusBadRequest, err.Error(), nil)
		return
	}
	if err != nil {
		s.serverError(w, r, "list products failed", err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, products)
}

func (s *Server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(r, "id")
	if !ok {
		kit.WriteError(w, r, http.StatusBadRequest, "bad product id", nil)
		return
	}

	p, ok := s.Store.Product(id)
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, catalog.ErrProductNotFound.Error(), map[string]any{"id": id})
		return
	}
	kit.WriteJSON(w, http.StatusOK, p)
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	kit.WriteJSON(w, http.StatusOK, s.Store.Categories())
}

func (s *Server) handleListProductTypes(w http.ResponseWriter, _ *http.Request) {
	kit.WriteJSON(w, http.StatusOK, s.Store.ProductTypes())
}
