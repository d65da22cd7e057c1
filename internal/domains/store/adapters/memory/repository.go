package memory

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/Apurer/petstore-contract-suite/internal/domains/store/domain"
	"github.com/Apurer/petstore-contract-suite/internal/domains/store/ports"
)

var (
	_ ports.Repository       = (*Repository)(nil)
	_ ports.InventoryCounter = (*Repository)(nil)
)

// Repository keeps orders in memory. Orders saved without an id get one past the highest seen.
type Repository struct {
	mu      sync.RWMutex
	orders  map[int64]domain.Order
	highest int64
}

func NewRepository() *Repository {
	return &Repository{orders: map[int64]domain.Order{}}
}

// Save validates order and stores a copy, replacing any order with the same id.
func (r *Repository) Save(_ context.Context, order *domain.Order) (*domain.Order, error) {
	if order == nil {
		return nil, errors.New("order is nil")
	}
	stored := *order
	if err := stored.Validate(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if stored.ID == 0 {
		stored.ID = r.highest + 1
	}
	r.highest = max(r.highest, stored.ID)
	r.orders[stored.ID] = stored
	return stored.Clone(), nil
}

func (r *Repository) GetByID(_ context.Context, id int64) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return order.Clone(), nil
}

func (r *Repository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.orders, id)
	return nil
}

// List returns copies ordered by id.
func (r *Repository) List(_ context.Context) ([]*domain.Order, error) {
	r.mu.RLock()
	list := make([]*domain.Order, 0, len(r.orders))
	for _, order := range r.orders {
		list = append(list, order.Clone())
	}
	r.mu.RUnlock()
	slices.SortFunc(list, func(a, b *domain.Order) int { return cmp.Compare(a.ID, b.ID) })
	return list, nil
}

// CountByStatus sums quantities under the read lock without copying orders.
func (r *Repository) CountByStatus(context.Context) (domain.Inventory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	inv := domain.NewInventory()
	for _, order := range r.orders {
		inv[order.Status] += order.Quantity
	}
	return inv, nil
}

// Clear removes every order and restarts id assignment.
func (r *Repository) Clear(context.Context) error {
	r.mu.Lock()
	clear(r.orders)
	r.highest = 0
	r.mu.Unlock()
	return nil
}
