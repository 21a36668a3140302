package api

import (
	"net/http"

	"FurniStore/internal/cart"
	"FurniStore/internal/catalog"
	"FurniStore/pkg/kit"
)

type cartResp struct {
	Items      []cart.Line `json:"items"`
	TotalCents int64       `json:"total_cents"`
}

func (s *Server) writeCart(w http.ResponseWriter) {
	kit.WriteJSON(w, http.StatusOK, cartResp{
		Items:      s.Store.Cart(),
		TotalCents: s.Store.CartTotal(),
	})
}

func (s *Server) handleGetCart(w http.ResponseWriter, _ *http.Request) {
	s.writeCart(w)
}

type addToCartReq struct {
	ProductID int `json:"product_id"`
	Quantity  int `json:"quantity"`
}

func (s *Server) handleAddToCart(w http.ResponseWriter, r *http.Request) {
	var req addToCartReq
	if err := kit.DecodeJSON(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": err.Error()})
		return
	}

	p, ok := s.Store.Product(req.ProductID)
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, catalog.ErrProductNotFound.Error(), map[string]any{"id": req.ProductID})
		return
	}

	s.Store.AddToCart(p, req.Quantity)
	s.writeCart(w)
}

type updateCartReq struct {
	Quantity int `json:"quantity"`
}

func (s *Server) handleUpdateCartItem(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(r, "id")
	if !ok {
		kit.WriteError(w, r, http.StatusBadRequest, "bad product id", nil)
		return
	}

	var req updateCartReq
	if err := kit.DecodeJSON(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": err.Error()})
		return
	}

	s.Store.UpdateCartQuantity(id, req.Quantity)
	s.writeCart(w)
}

func (s *Server) handleRemoveCartItem(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(r, "id")
	if !ok {
		kit.WriteError(w, r, http.StatusBadRequest, "bad product id", nil)
		return
	}

	s.Store.RemoveFromCart(id)
	s.writeCart(w)
}
