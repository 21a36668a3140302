package store

import (
	"context"

	"go.uber.org/zap"

	"FurniStore/internal/cart"
	"FurniStore/internal/catalog"
	"FurniStore/internal/order"
	"FurniStore/internal/storage"
)

func (s *Store) AddToCart(p catalog.Product, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart.Add(p, quantity)
	s.metrics.cartChanged("add")
}

func (s *Store) RemoveFromCart(productID int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cart.Remove(productID) {
		s.metrics.cartChanged("remove")
	}
}

// UpdateCartQuantity sets a line's quantity; zero or less removes the line.
func (s *Store) UpdateCartQuantity(productID, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cart.SetQuantity(productID, quantity) {
		s.metrics.cartChanged("update")
	}
}

func (s *Store) Cart() []cart.Line {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cart.Lines()
}

func (s *Store) CartTotal() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cart.Total()
}

func (s *Store) AddToFavorites(ctx context.Context, p catalog.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, changed := s.favorites.With(p)
	if !changed {
		return nil
	}
	if err := s.persist(ctx, storage.KeyFavorites, next); err != nil {
		return err
	}
	s.favorites.Add(p)
	s.metrics.favoritesCount(s.favorites.Len())
	return nil
}

func (s *Store) RemoveFromFavorites(ctx context.Context, productID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, changed := s.favorites.Without(productID)
	if !changed {
		return nil
	}
	if err := s.persist(ctx, storage.KeyFavorites, next); err != nil {
		return err
	}
	s.favorites.Remove(productID)
	s.metrics.favoritesCount(s.favorites.Len())
	return nil
}

func (s *Store) Favorites() []catalog.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.favorites.List()
}

func (s *Store) QueryFavorites(q catalog.Query) ([]catalog.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.favorites.Query(q)
}

func (s *Store) FavoriteCategories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.favorites.Categories()
}

// PlaceOrder turns the cart into a pending order for the signed-in user and
// empties the cart. It fails with order.ErrEmptyCartOrNoSession when there is
// nothing to order or nobody to order for. If the order cannot be persisted,
// neither the orders nor the cart change.
func (s *Store) PlaceOrder(ctx context.Context) (order.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.session.User()
	if !ok || s.cart.Empty() {
		return order.Order{}, order.ErrEmptyCartOrNoSession
	}

	o := order.New(u.ID, u.Email, s.cart.Lines(), s.cart.Total(), s.now())

	if err := s.persist(ctx, storage.KeyOrders, s.orders.With(o)); err != nil {
		return order.Order{}, err
	}
	s.orders.Append(o)
	s.cart.Clear()

	s.metrics.orderPlaced(o.TotalCents)
	s.log.Info("order placed",
		zap.String("order_id", o.ID),
		zap.String("user_id", u.ID),
		zap.Int64("total_cents", o.TotalCents),
		zap.Int("lines", len(o.Items)),
	)
	return o, nil
}

// UpdateOrderStatus overwrites an order's status. Any status may follow any
// other; an unknown id is a no-op.
func (s *Store) UpdateOrderStatus(ctx context.Context, orderID string, st order.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.orders.SetStatus(orderID, st)
	if !ok {
		return nil
	}
	if err := s.persist(ctx, storage.KeyOrders, s.orders.All()); err != nil {
		s.orders.SetStatus(orderID, prev)
		return err
	}

	s.metrics.statusChanged(string(st))
	s.log.Info("order status changed",
		zap.String("order_id", orderID),
		zap.String("from", string(prev)),
		zap.String("to", string(st)),
	)
	return nil
}

func (s *Store) Order(id string) (order.Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.orders.Get(id)
}

// Orders returns the whole collection regardless of the session.
func (s *Store) Orders() []order.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.orders.All()
}

func (s *Store) OrdersForUser(userID string) []order.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.orders.ForUser(userID)
}

// GetUserOrders returns the signed-in user's orders, or none when anonymous.
func (s *Store) GetUserOrders() []order.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.session.User()
	if !ok {
		return []order.Order{}
	}
	return s.orders.ForUser(u.ID)
}

// GetAllOrders returns every order for an admin session and none otherwise.
func (s *Store) GetAllOrders() []order.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.session.IsAdmin() {
		return []order.Order{}
	}
	return s.orders.All()
}

func (s *Store) Products() []catalog.Product {
	return s.catalog.Products()
}

func (s *Store) Product(id int) (catalog.Product, bool) {
	return s.catalog.Product(id)
}

func (s *Store) Categories() []catalog.Category {
	return s.catalog.Categories()
}

// ProductTypes lists the distinct product types in the catalog, sorted.
func (s *Store) ProductTypes() []string {
	return s.catalog.ProductTypes()
}

func (s *Store) QueryProducts(q catalog.Query) ([]catalog.Product, error) {
	return catalog.Apply(s.catalog.Products(), q)
}

// AddProduct adds p to the catalog. Admin only.
func (s *Store) AddProduct(p catalog.Product) (catalog.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.session.IsAdmin() {
		return catalog.Product{}, ErrForbidden
	}

	added, err := s.catalog.Add(p)
	if err != nil {
		return catalog.Product{}, err
	}
	s.log.Info("product added", zap.Int("product_id", added.ID))
	return added, nil
}

// DeleteProduct removes a product from the catalog. Admin only; an unknown
// id is a no-op.
func (s *Store) DeleteProduct(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.session.IsAdmin() {
		return ErrForbidden
	}

	if s.catalog.Delete(id) {
		s.log.Info("product deleted", zap.Int("product_id", id))
	}
	return nil
}
