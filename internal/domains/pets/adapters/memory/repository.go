package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	pettypes "github.com/Apurer/petstore-contract-suite/internal/domains/pets/application/types"
	"github.com/Apurer/petstore-contract-suite/internal/domains/pets/domain"
	"github.com/Apurer/petstore-contract-suite/internal/domains/pets/ports"
	"github.com/Apurer/petstore-contract-suite/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory implementation used by the twin and tests.
type Repository struct {
	mu   sync.RWMutex
	pets map[int64]*storedPet
	now  func() time.Time
}

type storedPet struct {
	pet      *domain.Pet
	metadata projection.Metadata
}

// NewRepository constructs an empty in-memory store.
func NewRepository() *Repository {
	return &Repository{
		pets: map[int64]*storedPet{},
		now:  time.Now,
	}
}

// WithClock overrides the clock used for metadata timestamps.
func (r *Repository) WithClock(now func() time.Time) {
	if now == nil {
		return
	}
	r.mu.Lock()
	r.now = now
	r.mu.Unlock()
}

// Save inserts or replaces a pet while maintaining metadata.
func (r *Repository) Save(_ context.Context, pet *domain.Pet) (*pettypes.PetProjection, error) {
	if pet == nil {
		return nil, errors.New("cannot save nil pet")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var prev *projection.Metadata
	if entry, ok := r.pets[pet.ID]; ok {
		prev = &entry.metadata
	}
	stored := &storedPet{
		pet:      pet.Clone(),
		metadata: projection.Touch(prev, r.now()),
	}
	r.pets[pet.ID] = stored
	return projectionCopy(stored), nil
}

// GetByID fetches a pet if present.
func (r *Repository) GetByID(_ context.Context, id int64) (*pettypes.PetProjection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.pets[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return projectionCopy(entry), nil
}

// Delete removes a pet.
func (r *Repository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.pets[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.pets, id)
	return nil
}

// FindByStatus returns pets with matching status ordered by id.
func (r *Repository) FindByStatus(_ context.Context, statuses []domain.Status) ([]*pettypes.PetProjection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	set := map[domain.Status]struct{}{}
	for _, s := range statuses {
		set[s] = struct{}{}
	}
	list := []*pettypes.PetProjection{}
	for _, entry := range r.pets {
		if _, ok := set[entry.pet.Status]; ok {
			list = append(list, projectionCopy(entry))
		}
	}
	sortByID(list)
	return list, nil
}

// List returns all pets ordered by id.
func (r *Repository) List(_ context.Context) ([]*pettypes.PetProjection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*pettypes.PetProjection, 0, len(r.pets))
	for _, entry := range r.pets {
		list = append(list, projectionCopy(entry))
	}
	sortByID(list)
	return list, nil
}

// Clear removes every pet.
func (r *Repository) Clear(context.Context) error {
	r.mu.Lock()
	r.pets = map[int64]*storedPet{}
	r.mu.Unlock()
	return nil
}

func sortByID(list []*pettypes.PetProjection) {
	sort.Slice(list, func(i, j int) bool { return list[i].Pet.ID < list[j].Pet.ID })
}

func projectionCopy(entry *storedPet) *pettypes.PetProjection {
	return &pettypes.PetProjection{
		Pet:      entry.pet.Clone(),
		Metadata: entry.metadata,
	}
}
