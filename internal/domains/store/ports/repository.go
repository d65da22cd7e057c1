package ports

import (
	"context"
	"errors"

	"github.com/Apurer/petstore-contract-suite/internal/domains/store/domain"
)

var ErrNotFound = errors.New("order not found")

// Repository persists orders.
type Repository interface {
	Save(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*domain.Order, error)
	// Clear removes every order.
	Clear(ctx context.Context) error
}

// InventoryCounter is implemented by repositories that can sum quantities per
// status without loading every order.
type InventoryCounter interface {
	CountByStatus(ctx context.Context) (domain.Inventory, error)
}
