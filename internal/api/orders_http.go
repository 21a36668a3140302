package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"FurniStore/internal/order"
	"FurniStore/pkg/kit"
)

func (s *Server) handlePlaceOrder(w http.ResponseWriter, r *http.Request) {
	if err := s.waitCheckout(r.Context()); err != nil {
		kit.WriteError(w, r, http.StatusServiceUnavailable, "checkout cancelled", nil)
		return
	}

	o, err := s.Store.PlaceOrder(r.Context())
	if errors.Is(err, order.ErrEmptyCartOrNoSession) {
		kit.WriteError(w, r, http.StatusBadRequest, "cart is empty", nil)
		return
	}
	if err != nil {
		if isTimeoutErr(err) {
			kit.WriteError(w, r, http.StatusGatewayTimeout, "timeout", nil)
			return
		}
		s.serverError(w, r, "place order failed", err)
		return
	}

	kit.WriteJSON(w, http.StatusCreated, o)
}

func (s *Server) waitCheckout(ctx context.Context) error {
	if s.CheckoutDelay <= 0 {
		return nil
	}

	t := time.NewTimer(s.CheckoutDelay)
	defer t.Stop()

	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

type ordersResp struct {
	Orders  []order.Order `json:"orders"`
	Summary order.Summary `json:"summary"`
}

func (s *Server) handleListOrders(w http.ResponseWriter, _ *http.Request) {
	orders := s.Store.GetUserOrders()
	kit.WriteJSON(w, http.StatusOK, ordersResp{
		Orders:  orders,
		Summary: order.Summarize(orders),
	})
}

type updateStatusReq struct {
	Status string `json:"status"`
}

// handleUpdateOrderStatus lets an admin set any status. Customers may only
// cancel their own orders.
func (s *Server) handleUpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	u, _ := UserFromContext(r.Context())
	id := chi.URLParam(r, "id")

	var req updateStatusReq
	if err := kit.DecodeJSON(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": err.Error()})
		return
	}
	st, err := order.ParseStatus(req.Status)
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, err.Error(), nil)
		return
	}

	o, ok := s.Store.Order(id)
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"id": id})
		return
	}
	if !u.IsAdmin() && (o.UserID != u.ID || st != order.StatusCancelled) {
		kit.WriteError(w, r, http.StatusForbidden, "forbidden", nil)
		return
	}

	if err := s.Store.UpdateOrderStatus(r.Context(), id, st); err != nil {
		s.serverError(w, r, "update order status failed", err)
		return
	}

	o, _ = s.Store.Order(id)
	kit.WriteJSON(w, http.StatusOK, o)
}

func isTimeoutErr(err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)
}
