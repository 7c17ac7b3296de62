// Package memstore is an in-process implementation of the repositories
// stores. Every read and write copies the document, so callers never share
// state with the store and version checks behave like a real database.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"bazaar-api/models"
	"bazaar-api/repositories"
)

func New() repositories.Store {
	return repositories.Store{
		Products: NewProducts(),
		Carts:    NewCarts(),
		Orders:   NewOrders(),
		Users:    NewUsers(),
		Sessions: NewSessions(),
	}
}

type Products struct {
	mu   sync.RWMutex
	docs map[int64]models.Product
}

func NewProducts() *Products {
	return &Products{docs: map[int64]models.Product{}}
}

func (s *Products) Create(_ context.Context, product *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.docs[product.ID]; ok {
		return repositories.ErrDuplicate
	}
	now := time.Now().UTC()
	product.Version = 1
	product.CreatedAt = now
	product.UpdatedAt = now
	s.docs[product.ID] = *product
	return nil
}

func (s *Products) FindByID(_ context.Context, id int64) (*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.docs[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &p, nil
}

func (s *Products) FindAll(_ context.Context, page, limit int) ([]models.Product, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]models.Product, 0, len(s.docs))
	for _, p := range s.docs {
		all = append(all, p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	start := (page - 1) * limit
	if start >= len(all) {
		return []models.Product{}, len(all), nil
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], len(all), nil
}

func (s *Products) Save(_ context.Context, product *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.docs[product.ID]
	if !ok {
		return repositories.ErrNotFound
	}
	if current.Version != product.Version {
		return repositories.ErrConflict
	}
	product.Version++
	product.UpdatedAt = time.Now().UTC()
	s.docs[product.ID] = *product
	return nil
}

func (s *Products) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.docs[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(s.docs, id)
	return nil
}

type Carts struct {
	mu   sync.RWMutex
	docs map[string]*models.Cart
}

func NewCarts() *Carts {
	return &Carts{docs: map[string]*models.Cart{}}
}

func (s *Carts) FindByUser(_ context.Context, userID string) (*models.Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.docs[userID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return c.Clone(), nil
}

func (s *Carts) Save(_ context.Context, cart *models.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	current, ok := s.docs[cart.UserID]
	switch {
	case cart.Version == 0 && ok:
		return repositories.ErrConflict
	case cart.Version == 0:
		cart.CreatedAt = now
	case !ok || current.Version != cart.Version:
		return repositories.ErrConflict
	}

	if cart.Items == nil {
		cart.Items = []models.CartLine{}
	}
	cart.Version++
	cart.UpdatedAt = now
	s.docs[cart.UserID] = cart.Clone()
	return nil
}

type Orders struct {
	mu   sync.RWMutex
	docs []*models.Order
}

func NewOrders() *Orders {
	return &Orders{}
}

func (s *Orders) Create(_ context.Context, order *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, o := range s.docs {
		if o.ID == order.ID {
			return repositories.ErrDuplicate
		}
	}
	s.docs = append(s.docs, order.Clone())
	return nil
}

func (s *Orders) FindByUser(_ context.Context, userID string) ([]models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	orders := []models.Order{}
	for i := len(s.docs) - 1; i >= 0; i-- {
		if s.docs[i].UserID == userID {
			orders = append(orders, *s.docs[i].Clone())
		}
	}
	return orders, nil
}

type Users struct {
	mu   sync.RWMutex
	docs map[string]*models.User
}

func NewUsers() *Users {
	return &Users{docs: map[string]*models.User{}}
}

func (s *Users) Create(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.docs {
		if u.ID == user.ID || u.Email == user.Email {
			return repositories.ErrDuplicate
		}
	}
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	s.docs[user.ID] = user.Clone()
	return nil
}

func (s *Users) FindByID(_ context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.docs[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return u.Clone(), nil
}

func (s *Users) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.docs {
		if u.Email == email {
			return u.Clone(), nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (s *Users) FindAll(_ context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]models.User, 0, len(s.docs))
	for _, u := range s.docs {
		users = append(users, *u.Clone())
	}
	sort.Slice(users, func(i, j int) bool { return users[i].CreatedAt.After(users[j].CreatedAt) })
	return users, nil
}

func (s *Users) Save(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.docs[user.ID]; !ok {
		return repositories.ErrNotFound
	}
	for _, u := range s.docs {
		if u.ID != user.ID && u.Email == user.Email {
			return repositories.ErrDuplicate
		}
	}
	user.UpdatedAt = time.Now().UTC()
	s.docs[user.ID] = user.Clone()
	return nil
}

type Sessions struct {
	mu      sync.Mutex
	expires map[string]time.Time
}

func NewSessions() *Sessions {
	return &Sessions{expires: map[string]time.Time{}}
}

func (s *Sessions) Save(_ context.Context, sessionID, _ string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.expires[sessionID] = time.Now().Add(ttl)
	return nil
}

func (s *Sessions) Exists(_ context.Context, sessionID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	exp, ok := s.expires[sessionID]
	if ok && time.Now().After(exp) {
		delete(s.expires, sessionID)
		return false, nil
	}
	return ok, nil
}

func (s *Sessions) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.expires, sessionID)
	return nil
}
