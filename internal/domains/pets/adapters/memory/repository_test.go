package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/petstore-contract-suite/internal/domains/pets/domain"
	"github.com/Apurer/petstore-contract-suite/internal/domains/pets/ports"
)

func newPet(t *testing.T, id int64, name string, status domain.Status) *domain.Pet {
	t.Helper()
	pet, err := domain.NewPet(id, name)
	require.NoError(t, err)
	require.NoError(t, pet.UpdateStatus(status))
	return pet
}

func TestRepository_SaveKeepsCreatedAt(t *testing.T) {
	repo := NewRepository()
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	repo.WithClock(func() time.Time { return clock })
	ctx := context.Background()

	first, err := repo.Save(ctx, newPet(t, 1, "Buddy", domain.StatusAvailable))
	require.NoError(t, err)

	clock = clock.Add(time.Minute)
	second, err := repo.Save(ctx, newPet(t, 1, "Buddy Updated", domain.StatusSold))
	require.NoError(t, err)

	assert.Equal(t, first.Metadata.CreatedAt, second.Metadata.CreatedAt)
	assert.True(t, second.Metadata.UpdatedAt.After(first.Metadata.UpdatedAt))
	assert.Equal(t, "Buddy Updated", second.Pet.Name)
}

func TestRepository_ReturnsCopies(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()
	pet := newPet(t, 1, "Buddy", domain.StatusAvailable)
	pet.ReplacePhotos([]string{"a"})
	_, err := repo.Save(ctx, pet)
	require.NoError(t, err)

	pet.PhotoURLs[0] = "mutated"
	got, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, got.Pet.PhotoURLs)
}

func TestRepository_FindByStatusOrderedAndNeverNil(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()
	for _, p := range []*domain.Pet{
		newPet(t, 3, "C", domain.StatusAvailable),
		newPet(t, 1, "A", domain.StatusAvailable),
		newPet(t, 2, "B", domain.StatusSold),
	} {
		_, err := repo.Save(ctx, p)
		require.NoError(t, err)
	}

	available, err := repo.FindByStatus(ctx, []domain.Status{domain.StatusAvailable})
	require.NoError(t, err)
	require.Len(t, available, 2)
	assert.Equal(t, int64(1), available[0].Pet.ID)
	assert.Equal(t, int64(3), available[1].Pet.ID)

	pending, err := repo.FindByStatus(ctx, []domain.Status{domain.StatusPending})
	require.NoError(t, err)
	assert.NotNil(t, pending)
	assert.Empty(t, pending)
}

func TestRepository_DeleteAndClear(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()
	_, err := repo.Save(ctx, newPet(t, 1, "Buddy", domain.StatusAvailable))
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, 1))
	assert.ErrorIs(t, repo.Delete(ctx, 1), ports.ErrNotFound)

	_, err = repo.Save(ctx, newPet(t, 2, "Rex", domain.StatusPending))
	require.NoError(t, err)
	require.NoError(t, repo.Clear(ctx))
	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}
