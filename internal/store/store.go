// Package store is the application store: it owns users, the session, the
// cart, favorites and orders, and mirrors the durable collections to storage
// before any mutating operation returns.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"FurniStore/internal/auth"
	"FurniStore/internal/cart"
	"FurniStore/internal/catalog"
	"FurniStore/internal/favorites"
	"FurniStore/internal/order"
	"FurniStore/internal/storage"
)

var ErrForbidden = errors.New("admin session required")

// Catalog is the product source the store reads, plus the admin edits.
type Catalog interface {
	catalog.Provider
	Add(p catalog.Product) (catalog.Product, error)
	Delete(id int) bool
	ProductTypes() []string
}

type Options struct {
	Catalog Catalog
	Storage storage.Store
	Log     *zap.Logger
	Metrics *Collector

	// PasswordCost is the bcrypt cost for new hashes; zero means the bcrypt default.
	PasswordCost int
	// KeepOrders loads persisted orders instead of resetting to the demo seed.
	KeepOrders bool
	Now        func() time.Time
}

// Store is safe for concurrent use. Every operation holds the lock for its
// whole duration, so callers never observe a half-applied change.
type Store struct {
	mu sync.RWMutex

	catalog Catalog
	storage storage.Store
	log     *zap.Logger
	metrics *Collector
	now     func() time.Time

	users     *auth.Directory
	session   auth.Session
	cart      *cart.Cart
	favorites *favorites.Set
	orders    *order.Book
}

// New loads users and favorites from storage, falling back to the seeds, and
// installs the seed orders. The session starts anonymous with an empty cart.
func New(ctx context.Context, opts Options) (*Store, error) {
	if opts.Catalog == nil || opts.Storage == nil {
		return nil, errors.New("store: catalog and storage are required")
	}
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	s := &Store{
		catalog: opts.Catalog,
		storage: opts.Storage,
		log:     opts.Log,
		metrics: opts.Metrics,
		now:     opts.Now,
		cart:    cart.New(),
	}

	if err := s.loadUsers(ctx, opts.PasswordCost); err != nil {
		return nil, err
	}
	if err := s.loadFavorites(ctx); err != nil {
		return nil, err
	}
	if err := s.loadOrders(ctx, opts.KeepOrders); err != nil {
		return nil, err
	}

	s.log.Info("store ready",
		zap.Int("users", s.users.Len()),
		zap.Int("favorites", s.favorites.Len()),
		zap.Int("orders", s.orders.Len()),
	)
	return s, nil
}

func (s *Store) loadUsers(ctx context.Context, cost int) error {
	var users []auth.User
	found, err := storage.GetJSON(ctx, s.storage, storage.KeyUsers, &users)
	if err != nil {
		return fmt.Errorf("load users: %w", err)
	}
	if !found {
		users = auth.SeedUsers()
	}

	dir, migrated, err := auth.NewDirectory(users, cost)
	if err != nil {
		return fmt.Errorf("load users: %w", err)
	}
	s.users = dir

	if !found || migrated {
		return s.persist(ctx, storage.KeyUsers, dir.List())
	}
	return nil
}

func (s *Store) loadFavorites(ctx context.Context) error {
	var items []catalog.Product
	if _, err := storage.GetJSON(ctx, s.storage, storage.KeyFavorites, &items); err != nil {
		return fmt.Errorf("load favorites: %w", err)
	}
	s.favorites = favorites.New(items)
	s.metrics.favoritesCount(s.favorites.Len())
	return nil
}

func (s *Store) loadOrders(ctx context.Context, keep bool) error {
	if keep {
		var orders []order.Order
		found, err := storage.GetJSON(ctx, s.storage, storage.KeyOrders, &orders)
		if err != nil {
			return fmt.Errorf("load orders: %w", err)
		}
		if found {
			s.orders = order.NewBook(orders)
			return nil
		}
	} else {
		_, found, err := s.storage.Get(ctx, storage.KeyOrders)
		if err != nil {
			return fmt.Errorf("load orders: %w", err)
		}
		if found {
			if err := s.storage.Remove(ctx, storage.KeyOrders); err != nil {
				return fmt.Errorf("discard orders: %w", err)
			}
			s.log.Info("discarded persisted orders")
		}
	}

	s.orders = order.NewBook(order.Seed(s.now()))
	return s.persist(ctx, storage.KeyOrders, s.orders.All())
}

func (s *Store) persist(ctx context.Context, key string, v any) error {
	if err := storage.SetJSON(ctx, s.storage, key, v); err != nil {
		s.log.Error("persist failed", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("persist %s: %w", key, err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.storage.Ping(ctx)
}

// Register creates an account and signs it in. A taken email yields a
// failed Result together with auth.ErrDuplicateEmail.
func (s *Store) Register(ctx context.Context, name, email, password string) (auth.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.users.NewUser(name, email, password)
	if errors.Is(err, auth.ErrDuplicateEmail) {
		s.metrics.registration(resultRejected)
		return auth.Result{Success: false, Message: auth.MsgDuplicateEmail}, err
	}
	if err != nil {
		s.metrics.registration(resultError)
		return auth.Result{}, err
	}

	if err := s.persist(ctx, storage.KeyUsers, s.users.With(u)); err != nil {
		s.metrics.registration(resultError)
		return auth.Result{}, err
	}
	s.users.Append(u)
	s.session.SignIn(u)

	s.metrics.registration(resultOK)
	s.log.Info("user registered", zap.String("user_id", u.ID))
	return auth.Result{Success: true, Message: auth.MsgRegistered}, nil
}

// Login signs in on an exact email and password match. Any failure returns
// auth.ErrInvalidCredentials and leaves the session untouched.
func (s *Store) Login(email, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.users.Verify(email, password)
	if err != nil {
		s.metrics.login(resultRejected)
		return auth.ErrInvalidCredentials
	}

	s.session.SignIn(u)
	s.metrics.login(resultOK)
	s.log.Info("user logged in", zap.String("user_id", u.ID), zap.Bool("admin", s.session.IsAdmin()))
	return nil
}

// Logout ends the session and empties the cart.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session.SignOut()
	s.cart.Clear()
}

func (s *Store) User() (auth.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.User()
}

func (s *Store) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.IsAdmin()
}

// Users returns the registered users, password hashes included.
func (s *Store) Users() []auth.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.users.List()
}
