package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	types "github.com/Apurer/petstore-contract-suite/internal/domains/pets/application/types"
	"github.com/Apurer/petstore-contract-suite/internal/domains/pets/domain"
	"github.com/Apurer/petstore-contract-suite/internal/domains/pets/ports"
)

// Service orchestrates the pets bounded context use cases.
type Service struct {
	repo ports.Repository
}

// NewService wires the pets service with its dependencies.
func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

// AddPet persists a new pet aggregate. An existing pet with the same id is replaced.
func (s *Service) AddPet(ctx context.Context, input types.AddPetInput) (*types.PetProjection, error) {
	pet, err := buildPetFromMutation(input.PetMutationInput)
	if err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, pet)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// UpdatePet applies the supplied fields to an existing pet.
func (s *Service) UpdatePet(ctx context.Context, input types.UpdatePetInput) (*types.PetProjection, error) {
	projection, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, mapError(err)
	}
	if err := applyPartialMutation(projection.Pet, input.PetMutationInput); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, projection.Pet)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// FindByStatus searches pets matching any of the provided statuses.
// Every supplied status must be known and at least one must be given.
func (s *Service) FindByStatus(ctx context.Context, input types.FindPetsByStatusInput) ([]*types.PetProjection, error) {
	statuses := make([]domain.Status, 0, len(input.Statuses))
	for _, raw := range input.Statuses {
		for _, part := range strings.Split(raw, ",") {
			status, err := domain.ParseStatus(part)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrInvalidStatusFilter, err)
			}
			statuses = append(statuses, status)
		}
	}
	if len(statuses) == 0 {
		return nil, fmt.Errorf("%w: no status supplied", ErrInvalidStatusFilter)
	}
	result, err := s.repo.FindByStatus(ctx, statuses)
	if err != nil {
		return nil, mapError(err)
	}
	if result == nil {
		result = []*types.PetProjection{}
	}
	return result, nil
}

// GetByID loads a single pet aggregate.
func (s *Service) GetByID(ctx context.Context, input types.PetIdentifier) (*types.PetProjection, error) {
	projection, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, mapError(err)
	}
	return projection, nil
}

// Delete removes a pet. Deleting an unknown pet succeeds.
func (s *Service) Delete(ctx context.Context, input types.PetIdentifier) error {
	if err := s.repo.Delete(ctx, input.ID); err != nil && !errors.Is(err, ports.ErrNotFound) {
		return mapError(err)
	}
	return nil
}

// List exposes all pets for admin use cases.
func (s *Service) List(ctx context.Context) ([]*types.PetProjection, error) {
	result, err := s.repo.List(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	return result, nil
}

// Reset drops every pet and adds seed in order.
func (s *Service) Reset(ctx context.Context, seed []types.AddPetInput) error {
	if err := s.repo.Clear(ctx); err != nil {
		return mapError(err)
	}
	for _, input := range seed {
		if _, err := s.AddPet(ctx, input); err != nil {
			return fmt.Errorf("seed pet %d: %w", input.ID, err)
		}
	}
	return nil
}

func buildPetFromMutation(input types.PetMutationInput) (*domain.Pet, error) {
	if input.Name == nil {
		return nil, domain.ErrEmptyName
	}
	pet, err := domain.NewPet(input.ID, *input.Name)
	if err != nil {
		return nil, err
	}
	partial := input
	partial.Name = nil
	if err := applyPartialMutation(pet, partial); err != nil {
		return nil, err
	}
	return pet, nil
}

func applyPartialMutation(target *domain.Pet, input types.PetMutationInput) error {
	if input.Name != nil {
		if err := target.Rename(*input.Name); err != nil {
			return err
		}
	}
	if input.PhotoURLs != nil {
		target.ReplacePhotos(*input.PhotoURLs)
	}
	if input.Category != nil {
		cat := domain.Category{ID: input.Category.ID, Name: input.Category.Name}
		target.UpdateCategory(&cat)
	}
	if input.Tags != nil {
		tags := make([]domain.Tag, 0, len(*input.Tags))
		for _, t := range *input.Tags {
			tags = append(tags, domain.Tag{ID: t.ID, Name: t.Name})
		}
		target.ReplaceTags(tags)
	}
	if input.Status != nil {
		if err := target.UpdateStatus(domain.Status(*input.Status)); err != nil {
			return err
		}
	}
	return nil
}

var _ ports.Service = (*Service)(nil)
