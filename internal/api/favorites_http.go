package api

import (
	"errors"
	"net/http"

	"FurniStore/internal/catalog"
	"FurniStore/pkg/kit"
)

type favoritesResp struct {
	Items      []catalog.Product `json:"items"`
	Categories []string          `json:"categories"`
}

func (s *Server) handleListFavorites(w http.ResponseWriter, r *http.Request) {
	q, err := queryFrom(r.URL.Query())
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, err.Error(), nil)
		return
	}

	items, err := s.Store.QueryFavorites(q)
	if errors.Is(err, catalog.ErrBadQuery) {
		kit.WriteError(w, r, http.StatusBadRequest, err.Error(), nil)
		return
	}
	if err != nil {
		s.serverError(w, r, "list favorites failed", err)
		return
	}

	kit.WriteJSON(w, http.StatusOK, favoritesResp{
		Items:      items,
		Categories: s.Store.FavoriteCategories(),
	})
}

type addFavoriteReq struct {
	ProductID int `json:"product_id"`
}

func (s *Server) handleAddFavorite(w http.ResponseWriter, r *http.Request) {
	var req addFavoriteReq
	if err := kit.DecodeJSON(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": err.Error()})
		return
	}

	p, ok := s.Store.Product(req.ProductID)
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, catalog.ErrProductNotFound.Error(), map[string]any{"id": req.ProductID})
		return
	}

	if err := s.Store.AddToFavorites(r.Context(), p); err != nil {
		s.serverError(w, r, "add favorite failed", err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, s.Store.Favorites())
}

func (s *Server) handleRemoveFavorite(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(r, "id")
	if !ok {
		kit.WriteError(w, r, http.StatusBadRequest, "bad product id", nil)
		return
	}

	if err := s.Store.RemoveFromFavorites(r.Context(), id); err != nil {
		s.serverError(w, r, "remove favorite failed", err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, s.Store.Favorites())
}
