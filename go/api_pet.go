package petstoreserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	pethttpmapper "github.com/Apurer/petstore-contract-suite/internal/domains/pets/adapters/http/mapper"
	petsapp "github.com/Apurer/petstore-contract-suite/internal/domains/pets/application"
	petstypes "github.com/Apurer/petstore-contract-suite/internal/domains/pets/application/types"
	petsports "github.com/Apurer/petstore-contract-suite/internal/domains/pets/ports"
)

const (
	textPetNotFound = "Pet not found"
	textPetDeleted  = "Pet deleted"
)

// PetAPI wires HTTP transport with the pets bounded context service.
type PetAPI struct {
	service petsports.Service
}

// NewPetAPI creates a PetAPI backed by the provided service.
func NewPetAPI(service petsports.Service) PetAPI {
	return PetAPI{service: service}
}

// Post /api/v3/pet
// Add a new pet to the store
func (api *PetAPI) AddPet(c *gin.Context) {
	var payload pethttpmapper.MutationPet
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	input := petstypes.AddPetInput{PetMutationInput: pethttpmapper.ToMutationInput(payload)}
	saved, err := api.service.AddPet(c.Request.Context(), input)
	if err != nil {
		respondPetServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, pethttpmapper.FromProjection(saved))
}

// Delete /api/v3/pet/:petId
// Deletes a pet. Unknown ids are deleted too.
func (api *PetAPI) DeletePet(c *gin.Context) {
	id, ok := parseIDParam(c, "petId")
	if !ok {
		return
	}
	if err := api.service.Delete(c.Request.Context(), petstypes.PetIdentifier{ID: id}); err != nil {
		respondPetServiceError(c, err)
		return
	}
	c.String(http.StatusOK, textPetDeleted)
}

// Get /api/v3/pet/findByStatus
// Finds Pets by status
func (api *PetAPI) FindPetsByStatus(c *gin.Context) {
	statuses := c.QueryArray("status")
	result, err := api.service.FindByStatus(c.Request.Context(), petstypes.FindPetsByStatusInput{Statuses: statuses})
	if err != nil {
		respondPetServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, pethttpmapper.FromProjectionList(result))
}

// Get /api/v3/pet/:petId
// Find pet by ID
func (api *PetAPI) GetPetById(c *gin.Context) {
	id, ok := parseIDParam(c, "petId")
	if !ok {
		return
	}
	pet, err := api.service.GetByID(c.Request.Context(), petstypes.PetIdentifier{ID: id})
	if err != nil {
		respondPetServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, pethttpmapper.FromProjection(pet))
}

// Put /api/v3/pet
// Update an existing pet
func (api *PetAPI) UpdatePet(c *gin.Context) {
	var payload pethttpmapper.MutationPet
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	input := petstypes.UpdatePetInput{PetMutationInput: pethttpmapper.ToMutationInput(payload)}
	updated, err := api.service.UpdatePet(c.Request.Context(), input)
	if err != nil {
		respondPetServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, pethttpmapper.FromProjection(updated))
}

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	value := c.Param(name)
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, errors.New("invalid "+name+": "+strconv.Quote(value)))
		return 0, false
	}
	return id, true
}

func respondPetServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	switch {
	case errors.Is(err, petsports.ErrNotFound):
		c.String(http.StatusNotFound, textPetNotFound)
	case errors.Is(err, petsapp.ErrInvalidInput), errors.Is(err, petsapp.ErrInvalidStatusFilter):
		respondError(c, http.StatusBadRequest, err)
	default:
		respondError(c, http.StatusInternalServerError, err)
	}
}
