package ports

import (
	"context"

	pettypes "github.com/Apurer/petstore-contract-suite/internal/domains/pets/application/types"
)

// Service defines the pets use cases exposed to adapters (inbound/driving port).
type Service interface {
	AddPet(ctx context.Context, input pettypes.AddPetInput) (*pettypes.PetProjection, error)
	UpdatePet(ctx context.Context, input pettypes.UpdatePetInput) (*pettypes.PetProjection, error)
	FindByStatus(ctx context.Context, input pettypes.FindPetsByStatusInput) ([]*pettypes.PetProjection, error)
	GetByID(ctx context.Context, input pettypes.PetIdentifier) (*pettypes.PetProjection, error)
	Delete(ctx context.Context, input pettypes.PetIdentifier) error
	List(ctx context.Context) ([]*pettypes.PetProjection, error)
	Reset(ctx context.Context, seed []pettypes.AddPetInput) error
}
