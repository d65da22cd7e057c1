// Package observability instruments the store port for the twin.
package observability

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	storeapp "github.com/Apurer/petstore-contract-suite/internal/domains/store/application"
	storedomain "github.com/Apurer/petstore-contract-suite/internal/domains/store/domain"
	storeports "github.com/Apurer/petstore-contract-suite/internal/domains/store/ports"
	platformobservability "github.com/Apurer/petstore-contract-suite/internal/platform/observability"
)

// Service wraps a store port. Unknown orders and invalid orders count as rejections.
type Service struct {
	inner storeports.Service
	ops   *platformobservability.Operations
}

type config struct {
	logger *slog.Logger
	tracer trace.Tracer
	meter  metric.Meter
}

type Option func(*config)

func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

func WithTracer(tr trace.Tracer) Option {
	return func(c *config) { c.tracer = tr }
}

// WithMeter adds store.operations, store.operation.duration and the
// store.inventory.quantity gauge, observed per order status on collection.
func WithMeter(m metric.Meter) Option {
	return func(c *config) { c.meter = m }
}

// New wraps inner.
func New(inner storeports.Service, opts ...Option) storeports.Service {
	var cfg config
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	s := &Service{
		inner: inner,
		ops: platformobservability.NewOperations("store",
			platformobservability.WithOperationsLogger(cfg.logger),
			platformobservability.WithOperationsTracer(cfg.tracer),
			platformobservability.WithOperationsMeter(cfg.meter),
			platformobservability.WithRejections(IsRejection),
		),
	}
	if cfg.meter != nil {
		_, _ = cfg.meter.Int64ObservableGauge("store.inventory.quantity",
			metric.WithDescription("Ordered quantity per order status"),
			metric.WithInt64Callback(s.observeInventory))
	}
	return s
}

// IsRejection reports errors the caller caused.
func IsRejection(err error) bool {
	return errors.Is(err, storeports.ErrNotFound) || errors.Is(err, storeapp.ErrInvalidInput)
}

func orderID(id int64) []attribute.KeyValue {
	return []attribute.KeyValue{attribute.Int64("order.id", id)}
}

func (s *Service) PlaceOrder(ctx context.Context, order *storedomain.Order) (*storedomain.Order, error) {
	var attrs []attribute.KeyValue
	if order != nil {
		attrs = append(orderID(order.ID),
			attribute.Int64("order.pet_id", order.PetID),
			attribute.String("order.status", string(order.Status)))
	}
	return platformobservability.Observe(ctx, s.ops, "place_order", attrs, func(ctx context.Context) (*storedomain.Order, error) {
		return s.inner.PlaceOrder(ctx, order)
	})
}

func (s *Service) GetOrderByID(ctx context.Context, id int64) (*storedomain.Order, error) {
	return platformobservability.Observe(ctx, s.ops, "get_order", orderID(id), func(ctx context.Context) (*storedomain.Order, error) {
		return s.inner.GetOrderByID(ctx, id)
	})
}

func (s *Service) DeleteOrder(ctx context.Context, id int64) error {
	return platformobservability.Exec(ctx, s.ops, "delete_order", orderID(id), func(ctx context.Context) error {
		return s.inner.DeleteOrder(ctx, id)
	})
}

func (s *Service) Inventory(ctx context.Context) (map[string]int32, error) {
	return platformobservability.Observe(ctx, s.ops, "inventory", nil, s.inner.Inventory)
}

func (s *Service) Reset(ctx context.Context, seed []*storedomain.Order) error {
	attrs := []attribute.KeyValue{attribute.Int("order.seed.count", len(seed))}
	return platformobservability.Exec(ctx, s.ops, "reset", attrs, func(ctx context.Context) error {
		return s.inner.Reset(ctx, seed)
	})
}

func (s *Service) observeInventory(ctx context.Context, o metric.Int64Observer) error {
	inventory, err := s.inner.Inventory(ctx)
	if err != nil {
		return err
	}
	for status, quantity := range inventory {
		o.Observe(int64(quantity), metric.WithAttributes(attribute.String("order.status", status)))
	}
	return nil
}

var _ storeports.Service = (*Service)(nil)
