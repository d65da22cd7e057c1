// Package fixture creates the resources a check needs before it runs and
// removes them again afterwards.
package fixture

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"github.com/Apurer/petstore-contract-suite/internal/contract/endpoints"
	"github.com/Apurer/petstore-contract-suite/internal/contract/expect"
	"github.com/Apurer/petstore-contract-suite/internal/contract/invoker"
)

// DefaultPet is the literal pet created by CreatePet.
func DefaultPet() map[string]any {
	return map[string]any{
		"id":     1,
		"name":   "Buddy",
		"status": "available",
	}
}

// DefaultOrder is the literal order created by CreateOrder.
func DefaultOrder() map[string]any {
	return map[string]any{
		"id":       1,
		"petId":    1,
		"quantity": 1,
		"status":   "placed",
		"complete": true,
	}
}

type undo struct {
	kind string
	id   int64
	path string
}

// Fixtures creates preconditions through an Invoker and tracks them for cleanup.
type Fixtures struct {
	inv     invoker.Invoker
	logger  *slog.Logger
	cleanup bool

	mu      sync.Mutex
	pending []undo
}

// Option configures Fixtures.
type Option func(*Fixtures)

// WithLogger sets the logger used for fixture activity.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Fixtures) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithCleanup toggles deletion of created resources in Cleanup.
func WithCleanup(enabled bool) Option {
	return func(f *Fixtures) {
		f.cleanup = enabled
	}
}

// New returns Fixtures bound to inv. Cleanup is enabled by default.
func New(inv invoker.Invoker, opts ...Option) *Fixtures {
	f := &Fixtures{
		inv:     inv,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		cleanup: true,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	return f
}

// CreatePet creates DefaultPet and returns the decoded response body.
func (f *Fixtures) CreatePet(ctx context.Context) (map[string]any, error) {
	return f.CreatePetWith(ctx, DefaultPet())
}

// CreatePetWith creates a pet from payload.
func (f *Fixtures) CreatePetWith(ctx context.Context, payload map[string]any) (map[string]any, error) {
	body, err := f.create(ctx, "pet", endpoints.Pet, payload)
	if err != nil {
		return nil, err
	}
	if id, ok := idOf(body); ok {
		f.TrackPet(id)
	}
	return body, nil
}

// CreateOrder creates DefaultOrder and returns the decoded response body.
func (f *Fixtures) CreateOrder(ctx context.Context) (map[string]any, error) {
	return f.CreateOrderWith(ctx, DefaultOrder())
}

// CreateOrderWith places an order from payload.
func (f *Fixtures) CreateOrderWith(ctx context.Context, payload map[string]any) (map[string]any, error) {
	body, err := f.create(ctx, "order", endpoints.StoreOrder, payload)
	if err != nil {
		return nil, err
	}
	if id, ok := idOf(body); ok {
		f.TrackOrder(id)
	}
	return body, nil
}

// TrackPet schedules deletion of a pet that was created outside the fixtures.
func (f *Fixtures) TrackPet(id int64) {
	f.track(undo{kind: "pet", id: id, path: endpoints.PetByID(id)})
}

// TrackOrder schedules deletion of an order that was created outside the fixtures.
func (f *Fixtures) TrackOrder(id int64) {
	f.track(undo{kind: "order", id: id, path: endpoints.OrderByID(id)})
}

// Pending returns how many created resources await cleanup.
func (f *Fixtures) Pending() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.pending)
}

// Cleanup deletes created resources newest first. Already-deleted resources are fine.
func (f *Fixtures) Cleanup(ctx context.Context) error {
	f.mu.Lock()
	pending := f.pending
	f.pending = nil
	f.mu.Unlock()

	if !f.cleanup {
		return nil
	}
	var errs []error
	for i := len(pending) - 1; i >= 0; i-- {
		item := pending[i]
		res, err := f.inv.Do(ctx, invoker.Request{Method: http.MethodDelete, Path: item.path})
		if err != nil {
			errs = append(errs, fmt.Errorf("cleanup %s %d: %w", item.kind, item.id, err))
			continue
		}
		switch res.StatusCode {
		case http.StatusOK, http.StatusNoContent, http.StatusNotFound:
			f.logger.DebugContext(ctx, "fixture removed", slog.String("kind", item.kind), slog.Int64("id", item.id), slog.Int("status", res.StatusCode))
		default:
			errs = append(errs, fmt.Errorf("cleanup %s %d: unexpected status %d", item.kind, item.id, res.StatusCode))
		}
	}
	return errors.Join(errs...)
}

func (f *Fixtures) create(ctx context.Context, kind, path string, payload map[string]any) (map[string]any, error) {
	res, err := f.inv.Do(ctx, invoker.Request{Method: http.MethodPost, Path: path, Body: payload})
	if err != nil {
		return nil, fmt.Errorf("create %s fixture: %w", kind, err)
	}
	if err := expect.Status(res, http.StatusOK); err != nil {
		return nil, fmt.Errorf("create %s fixture: %w", kind, err)
	}
	body, err := res.Object()
	if err != nil {
		return nil, fmt.Errorf("create %s fixture: %w", kind, err)
	}
	f.logger.InfoContext(ctx, "fixture created", slog.String("kind", kind), slog.Any("id", body["id"]))
	return body, nil
}

func (f *Fixtures) track(u undo) {
	f.mu.Lock()
	f.pending = append(f.pending, u)
	f.mu.Unlock()
}

func idOf(body map[string]any) (int64, bool) {
	switch v := body["id"].(type) {
	case float64:
		return int64(v), true
	case int64:
		return v, true
	case int:
		return int64(v), true
	}
	return 0, false
}
