package types

import (
	"time"

	"github.com/Apurer/petstore-contract-suite/internal/domains/pets/domain"
	"github.com/Apurer/petstore-contract-suite/internal/shared/projection"
)

// PetProjection transports a domain aggregate together with its persistence metadata.
type PetProjection struct {
	Pet      *domain.Pet
	Metadata projection.Metadata
}

// NewPetProjection wraps an aggregate with persistence metadata.
func NewPetProjection(pet *domain.Pet, createdAt, updatedAt time.Time) *PetProjection {
	if pet == nil {
		return nil
	}
	return &PetProjection{
		Pet:      pet,
		Metadata: projection.Metadata{CreatedAt: createdAt, UpdatedAt: updatedAt},
	}
}
