//go:build integration
// +build integration

// To enable gopls support for this file, add the following to your VSCode settings.json:
// "gopls": {
//   "buildFlags": ["-tags=integration"]
// }

package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	petspostgres "github.com/Apurer/petstore-contract-suite/internal/domains/pets/adapters/persistence/postgres"
	"github.com/Apurer/petstore-contract-suite/internal/domains/pets/domain"
	"github.com/Apurer/petstore-contract-suite/internal/domains/pets/ports"
	"github.com/Apurer/petstore-contract-suite/internal/platform/migrations"
)

func setupPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("petstore_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, migrations.Run(db))

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}
	return db, cleanup
}

func newPet(t *testing.T, id int64, name string, status domain.Status) *domain.Pet {
	t.Helper()
	pet, err := domain.NewPet(id, name)
	require.NoError(t, err)
	require.NoError(t, pet.UpdateStatus(status))
	return pet
}

func TestPostgresRepository_SaveAndGetByID(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := petspostgres.NewRepository(db)
	ctx := context.Background()

	pet := newPet(t, 10, "doggie", domain.StatusAvailable)
	pet.ReplacePhotos([]string{"string"})
	pet.UpdateCategory(&domain.Category{ID: 1, Name: "Dogs"})
	pet.ReplaceTags([]domain.Tag{{ID: 0, Name: "string"}})

	saved, err := repo.Save(ctx, pet)
	require.NoError(t, err)
	assert.False(t, saved.Metadata.CreatedAt.IsZero())

	got, err := repo.GetByID(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, "doggie", got.Pet.Name)
	assert.Equal(t, domain.StatusAvailable, got.Pet.Status)
	assert.Equal(t, &domain.Category{ID: 1, Name: "Dogs"}, got.Pet.Category)
	assert.Equal(t, []domain.Tag{{ID: 0, Name: "string"}}, got.Pet.Tags)
	assert.Equal(t, []string{"string"}, got.Pet.PhotoURLs)
}

func TestPostgresRepository_UpsertKeepsCreatedAt(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := petspostgres.NewRepository(db)
	ctx := context.Background()

	pet := newPet(t, 1, "Buddy", domain.StatusAvailable)
	first, err := repo.Save(ctx, pet)
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)
	require.NoError(t, pet.Rename("Buddy Updated"))
	require.NoError(t, pet.UpdateStatus(domain.StatusSold))
	second, err := repo.Save(ctx, pet)
	require.NoError(t, err)

	assert.Equal(t, "Buddy Updated", second.Pet.Name)
	assert.Equal(t, domain.StatusSold, second.Pet.Status)
	assert.Equal(t, first.Metadata.CreatedAt.Unix(), second.Metadata.CreatedAt.Unix())
}

func TestPostgresRepository_FindByStatus(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := petspostgres.NewRepository(db)
	ctx := context.Background()

	for _, p := range []*domain.Pet{
		newPet(t, 1, "Available Dog", domain.StatusAvailable),
		newPet(t, 2, "Pending Cat", domain.StatusPending),
		newPet(t, 3, "Sold Bird", domain.StatusSold),
		newPet(t, 4, "Another Available", domain.StatusAvailable),
	} {
		_, err := repo.Save(ctx, p)
		require.NoError(t, err)
	}

	available, err := repo.FindByStatus(ctx, []domain.Status{domain.StatusAvailable})
	require.NoError(t, err)
	require.Len(t, available, 2)
	assert.Equal(t, int64(1), available[0].Pet.ID)

	none, err := repo.FindByStatus(ctx, nil)
	require.NoError(t, err)
	assert.NotNil(t, none)
}

func TestPostgresRepository_DeleteAndClear(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := petspostgres.NewRepository(db)
	ctx := context.Background()

	_, err := repo.Save(ctx, newPet(t, 1, "ToDelete", domain.StatusAvailable))
	require.NoError(t, err)
	require.NoError(t, repo.Delete(ctx, 1))

	_, err = repo.GetByID(ctx, 1)
	assert.ErrorIs(t, err, ports.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, 1), ports.ErrNotFound)

	_, err = repo.Save(ctx, newPet(t, 2, "Rex", domain.StatusPending))
	require.NoError(t, err)
	require.NoError(t, repo.Clear(ctx))
	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}
