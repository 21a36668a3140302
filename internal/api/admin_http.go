package api

import (
	"errors"
	"net/http"

	"FurniStore/internal/catalog"
	"FurniStore/internal/store"
	"FurniStore/pkg/kit"
)

func (s *Server) handleAllOrders(w http.ResponseWriter, _ *http.Request) {
	kit.WriteJSON(w, http.StatusOK, s.Store.GetAllOrders())
}

type addProductReq struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	PriceCents  int64    `json:"price_cents"`
	Images      []string `json:"images"`
	Image       string   `json:"image"`
	Category    string   `json:"category"`
	ProductType string   `json:"product_type"`
	Featured    bool     `json:"featured"`
	InStock     bool     `json:"in_stock"`
	Dimensions  string   `json:"dimensions"`
	Materials   []string `json:"materials"`
	Colors      []string `json:"colors"`
	ModelURL    string   `json:"model_url"`
}

func (req addProductReq) product() catalog.Product {
	return catalog.Product{
		Name:        req.Name,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		Images:      req.Images,
		Image:       req.Image,
		Category:    req.Category,
		ProductType: req.ProductType,
		Featured:    req.Featured,
		InStock:     req.InStock,
		Dimensions:  req.Dimensions,
		Materials:   req.Materials,
		Colors:      req.Colors,
		ModelURL:    req.ModelURL,
	}
}

func (s *Server) handleAddProduct(w http.ResponseWriter, r *http.Request) {
	var req addProductReq
	if err := kit.DecodeJSON(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": err.Error()})
		return
	}

	p, err := s.Store.AddProduct(req.product())
	switch {
	case errors.Is(err, catalog.ErrInvalidProduct):
		kit.WriteError(w, r, http.StatusBadRequest, err.Error(), nil)
		return
	case errors.Is(err, store.ErrForbidden):
		kit.WriteError(w, r, http.StatusForbidden, "forbidden", nil)
		return
	case err != nil:
		s.serverError(w, r, "add product failed", err)
		return
	}

	kit.WriteJSON(w, http.StatusCreated, p)
}

func (s *Server) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(r, "id")
	if !ok {
		kit.WriteError(w, r, http.StatusBadRequest, "bad product id", nil)
		return
	}

	if err := s.Store.DeleteProduct(id); err != nil {
		if errors.Is(err, store.ErrForbidden) {
			kit.WriteError(w, r, http.StatusForbidden, "forbidden", nil)
			return
		}
		s.serverError(w, r, "delete product failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
