package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/Apurer/petstore-contract-suite/internal/domains/store/domain"
	"github.com/Apurer/petstore-contract-suite/internal/domains/store/ports"
)

// Service orchestrates store/order use cases.
type Service struct {
	repo ports.Repository
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

// PlaceOrder stores order, replacing any order with the same id. A blank status becomes placed.
func (s *Service) PlaceOrder(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if order == nil {
		return nil, errors.New("order is nil")
	}
	candidate := order.Clone()
	if err := candidate.Validate(); err != nil {
		return nil, invalid(err)
	}
	return s.repo.Save(ctx, candidate)
}

func (s *Service) GetOrderByID(ctx context.Context, id int64) (*domain.Order, error) {
	order, err := s.repo.GetByID(ctx, id)
	return order, unknownOrder(id, err)
}

func (s *Service) DeleteOrder(ctx context.Context, id int64) error {
	return unknownOrder(id, s.repo.Delete(ctx, id))
}

// Inventory sums order quantities per status. Every known status is present, zero when unused.
func (s *Service) Inventory(ctx context.Context) (map[string]int32, error) {
	if counter, ok := s.repo.(ports.InventoryCounter); ok {
		inv, err := counter.CountByStatus(ctx)
		if err != nil {
			return nil, err
		}
		return inv.Counts(), nil
	}
	orders, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return domain.Tally(orders).Counts(), nil
}

// Reset drops every order and places seed in order.
func (s *Service) Reset(ctx context.Context, seed []*domain.Order) error {
	if err := s.repo.Clear(ctx); err != nil {
		return err
	}
	for _, order := range seed {
		if _, err := s.PlaceOrder(ctx, order); err != nil {
			return fmt.Errorf("seed order %d: %w", order.ID, err)
		}
	}
	return nil
}

var _ ports.Service = (*Service)(nil)
