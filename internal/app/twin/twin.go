// Package twin assembles the in-process Petstore replica the contract suite runs against offline.
package twin

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	petstoreserver "github.com/Apurer/petstore-contract-suite/go"
	petsmemory "github.com/Apurer/petstore-contract-suite/internal/domains/pets/adapters/memory"
	petsobs "github.com/Apurer/petstore-contract-suite/internal/domains/pets/adapters/observability"
	petspostgres "github.com/Apurer/petstore-contract-suite/internal/domains/pets/adapters/persistence/postgres"
	petsapp "github.com/Apurer/petstore-contract-suite/internal/domains/pets/application"
	petsports "github.com/Apurer/petstore-contract-suite/internal/domains/pets/ports"
	storememory "github.com/Apurer/petstore-contract-suite/internal/domains/store/adapters/memory"
	storeobs "github.com/Apurer/petstore-contract-suite/internal/domains/store/adapters/observability"
	storepostgres "github.com/Apurer/petstore-contract-suite/internal/domains/store/adapters/persistence/postgres"
	storeapp "github.com/Apurer/petstore-contract-suite/internal/domains/store/application"
	storeports "github.com/Apurer/petstore-contract-suite/internal/domains/store/ports"
	"github.com/Apurer/petstore-contract-suite/internal/platform/migrations"
	platformobservability "github.com/Apurer/petstore-contract-suite/internal/platform/observability"
	platformpostgres "github.com/Apurer/petstore-contract-suite/internal/platform/postgres"
)

// Twin is a running Petstore replica: services, HTTP handler and the storage behind them.
type Twin struct {
	cfg     Config
	logger  *slog.Logger
	pets    petsports.Service
	store   storeports.Service
	handler *gin.Engine
	closeDB func()
}

type options struct {
	instruments *platformobservability.Instruments
	db          *gorm.DB
}

// Option customises New.
type Option func(*options)

// WithInstruments wires logging, tracing and metrics into every layer.
func WithInstruments(instruments *platformobservability.Instruments) Option {
	return func(o *options) {
		o.instruments = instruments
	}
}

// WithDB uses db for persistence instead of dialling cfg.Postgres. The caller keeps ownership.
func WithDB(db *gorm.DB) Option {
	return func(o *options) {
		o.db = db
	}
}

// New builds the twin and loads the seed catalog.
func New(ctx context.Context, cfg Config, opts ...Option) (*Twin, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if o.instruments != nil && o.instruments.Logger != nil {
		logger = o.instruments.Logger
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = "petstore-twin"
	}

	t := &Twin{cfg: cfg, logger: logger, closeDB: func() {}}
	petRepo, orderRepo, err := t.buildRepositories(ctx, o.db)
	if err != nil {
		return nil, err
	}

	t.pets = petsobs.New(
		petsapp.NewService(petRepo),
		petsobs.WithLogger(logger),
		petsobs.WithTracer(o.instruments.Tracer("internal.pets.application")),
		petsobs.WithMeter(o.instruments.Meter("internal.pets.application")),
	)
	t.store = storeobs.New(
		storeapp.NewService(orderRepo),
		storeobs.WithLogger(logger),
		storeobs.WithTracer(o.instruments.Tracer("internal.store.application")),
		storeobs.WithMeter(o.instruments.Meter("internal.store.application")),
	)

	if os.Getenv(gin.EnvGinMode) == "" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	if o.instruments != nil && o.instruments.TracerProvider != nil {
		router.Use(otelgin.Middleware(cfg.ServiceName, otelgin.WithTracerProvider(o.instruments.TracerProvider)))
	}
	t.handler = petstoreserver.NewRouterWithGinEngine(router, petstoreserver.ApiHandleFunctions{
		PetAPI:   petstoreserver.NewPetAPI(t.pets),
		StoreAPI: petstoreserver.NewStoreAPI(t.store),
		AdminAPI: petstoreserver.NewAdminAPI(t),
	})

	if err := t.Reset(ctx); err != nil {
		t.Close()
		return nil, fmt.Errorf("seed twin: %w", err)
	}
	return t, nil
}

func (t *Twin) buildRepositories(ctx context.Context, db *gorm.DB) (petsports.Repository, storeports.Repository, error) {
	if db == nil && t.cfg.Postgres.DSN != "" {
		pool, err := platformpostgres.Open(ctx, t.cfg.Postgres, t.logger)
		if err != nil {
			t.logger.Warn("failed to connect to postgres, falling back to memory", slog.String("error", err.Error()))
		} else {
			db = pool.DB
			t.closeDB = func() {
				if err := pool.Close(); err != nil {
					t.logger.Warn("failed to close postgres pool", slog.String("error", err.Error()))
				}
			}
		}
	}
	if db == nil {
		t.logger.Info("twin repositories configured in memory")
		return petsmemory.NewRepository(), storememory.NewRepository(), nil
	}
	if err := migrations.Run(db.WithContext(ctx)); err != nil {
		t.Close()
		return nil, nil, fmt.Errorf("migrate twin schema: %w", err)
	}
	t.logger.Info("twin repositories configured with postgres")
	return petspostgres.NewRepository(db), storepostgres.NewRepository(db), nil
}

// Reset clears every pet and order, then reloads the seed unless seeding is disabled.
func (t *Twin) Reset(ctx context.Context) error {
	pets, orders := SeedPets(), SeedOrders()
	if t.cfg.SeedDisabled {
		pets, orders = nil, nil
	}
	return errors.Join(
		t.pets.Reset(ctx, pets),
		t.store.Reset(ctx, orders),
	)
}

// Handler serves the Petstore API under /api/v3.
func (t *Twin) Handler() http.Handler {
	return t.handler
}

// BaseURL is the API root for a server listening at origin, e.g. an httptest.Server URL.
func BaseURL(origin string) string {
	return origin + petstoreserver.BasePath
}

// Close releases the database connection when the twin opened it.
func (t *Twin) Close() {
	if t.closeDB != nil {
		t.closeDB()
		t.closeDB = nil
	}
}
