// Package observability instruments the pets port for the twin.
package observability

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	petsapp "github.com/Apurer/petstore-contract-suite/internal/domains/pets/application"
	pettypes "github.com/Apurer/petstore-contract-suite/internal/domains/pets/application/types"
	"github.com/Apurer/petstore-contract-suite/internal/domains/pets/ports"
	platformobservability "github.com/Apurer/petstore-contract-suite/internal/platform/observability"
)

// Service wraps a pets port. Unknown pets and invalid payloads count as rejections.
type Service struct {
	inner   ports.Service
	ops     *platformobservability.Operations
	catalog metric.Int64UpDownCounter
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

// WithMeter adds pets.operations, pets.operation.duration and the pets.catalog.size gauge.
func WithMeter(m metric.Meter) Option {
	return func(c *config) { c.meter = m }
}

// New wraps inner.
func New(inner ports.Service, opts ...Option) ports.Service {
	var cfg config
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	s := &Service{
		inner: inner,
		ops: platformobservability.NewOperations("pets",
			platformobservability.WithOperationsLogger(cfg.logger),
			platformobservability.WithOperationsTracer(cfg.tracer),
			platformobservability.WithOperationsMeter(cfg.meter),
			platformobservability.WithRejections(IsRejection),
		),
	}
	if cfg.meter != nil {
		s.catalog, _ = cfg.meter.Int64UpDownCounter("pets.catalog.size",
			metric.WithDescription("Pets currently held by the twin"))
	}
	return s
}

// IsRejection reports errors the caller caused.
func IsRejection(err error) bool {
	return errors.Is(err, ports.ErrNotFound) ||
		errors.Is(err, petsapp.ErrInvalidInput) ||
		errors.Is(err, petsapp.ErrInvalidStatusFilter)
}

func petID(id int64) []attribute.KeyValue {
	return []attribute.KeyValue{attribute.Int64("pet.id", id)}
}

func (s *Service) AddPet(ctx context.Context, input pettypes.AddPetInput) (*pettypes.PetProjection, error) {
	attrs := petID(input.ID)
	if input.Status != nil {
		attrs = append(attrs, attribute.String("pet.status", *input.Status))
	}
	existed := s.exists(ctx, input.ID)
	out, err := platformobservability.Observe(ctx, s.ops, "add", attrs, func(ctx context.Context) (*pettypes.PetProjection, error) {
		return s.inner.AddPet(ctx, input)
	})
	if err == nil && !existed {
		s.resize(ctx, 1)
	}
	return out, err
}

func (s *Service) UpdatePet(ctx context.Context, input pettypes.UpdatePetInput) (*pettypes.PetProjection, error) {
	return platformobservability.Observe(ctx, s.ops, "update", petID(input.ID), func(ctx context.Context) (*pettypes.PetProjection, error) {
		return s.inner.UpdatePet(ctx, input)
	})
}

func (s *Service) FindByStatus(ctx context.Context, input pettypes.FindPetsByStatusInput) ([]*pettypes.PetProjection, error) {
	attrs := []attribute.KeyValue{attribute.StringSlice("pet.statuses", input.Statuses)}
	return platformobservability.Observe(ctx, s.ops, "find_by_status", attrs, func(ctx context.Context) ([]*pettypes.PetProjection, error) {
		found, err := s.inner.FindByStatus(ctx, input)
		trace.SpanFromContext(ctx).SetAttributes(attribute.Int("pet.result.count", len(found)))
		return found, err
	})
}

func (s *Service) GetByID(ctx context.Context, input pettypes.PetIdentifier) (*pettypes.PetProjection, error) {
	return platformobservability.Observe(ctx, s.ops, "get", petID(input.ID), func(ctx context.Context) (*pettypes.PetProjection, error) {
		return s.inner.GetByID(ctx, input)
	})
}

// Delete succeeds for unknown pets; only a pet that existed shrinks the catalog gauge.
func (s *Service) Delete(ctx context.Context, input pettypes.PetIdentifier) error {
	existed := s.exists(ctx, input.ID)
	err := platformobservability.Exec(ctx, s.ops, "delete", petID(input.ID), func(ctx context.Context) error {
		return s.inner.Delete(ctx, input)
	})
	if err == nil && existed {
		s.resize(ctx, -1)
	}
	return err
}

func (s *Service) List(ctx context.Context) ([]*pettypes.PetProjection, error) {
	return platformobservability.Observe(ctx, s.ops, "list", nil, s.inner.List)
}

// Reset reseeds the catalog and moves the gauge to the seed size.
func (s *Service) Reset(ctx context.Context, seed []pettypes.AddPetInput) error {
	before := s.size(ctx)
	attrs := []attribute.KeyValue{attribute.Int("pet.seed.count", len(seed))}
	err := platformobservability.Exec(ctx, s.ops, "reset", attrs, func(ctx context.Context) error {
		return s.inner.Reset(ctx, seed)
	})
	if err == nil {
		s.resize(ctx, int64(len(seed)-before))
	}
	return err
}

func (s *Service) exists(ctx context.Context, id int64) bool {
	if s.catalog == nil {
		return false
	}
	_, err := s.inner.GetByID(ctx, pettypes.PetIdentifier{ID: id})
	return err == nil
}

func (s *Service) size(ctx context.Context) int {
	if s.catalog == nil {
		return 0
	}
	all, err := s.inner.List(ctx)
	if err != nil {
		return 0
	}
	return len(all)
}

func (s *Service) resize(ctx context.Context, delta int64) {
	if s.catalog != nil && delta != 0 {
		s.catalog.Add(ctx, delta)
	}
}

var _ ports.Service = (*Service)(nil)
