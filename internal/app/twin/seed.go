package twin

import (
	pettypes "github.com/Apurer/petstore-contract-suite/internal/domains/pets/application/types"
	storedomain "github.com/Apurer/petstore-contract-suite/internal/domains/store/domain"
)

// Seed ids stay clear of the literal ids the contract scenarios write (1, 10, 9999).

// SeedPets is the catalog loaded at start and on every reset.
func SeedPets() []pettypes.AddPetInput {
	pet := func(id int64, name, status string, category *pettypes.CategoryInput, tags ...string) pettypes.AddPetInput {
		tagInputs := make([]pettypes.TagInput, 0, len(tags))
		for i, tag := range tags {
			tagInputs = append(tagInputs, pettypes.TagInput{ID: int64(i + 1), Name: tag})
		}
		photos := []string{}
		return pettypes.AddPetInput{PetMutationInput: pettypes.PetMutationInput{
			ID:        id,
			Name:      &name,
			Category:  category,
			PhotoURLs: &photos,
			Tags:      &tagInputs,
			Status:    &status,
		}}
	}
	dogs := &pettypes.CategoryInput{ID: 1, Name: "Dogs"}
	cats := &pettypes.CategoryInput{ID: 2, Name: "Cats"}
	return []pettypes.AddPetInput{
		pet(101, "Rex", "available", dogs, "friendly"),
		pet(102, "Luna", "available", cats),
		pet(103, "Milo", "pending", dogs, "puppy"),
		pet(104, "Nala", "pending", cats),
		pet(105, "Bella", "sold", dogs),
		pet(106, "Oscar", "sold", cats, "senior"),
	}
}

// SeedOrders gives the inventory non-zero approved and delivered counts.
func SeedOrders() []*storedomain.Order {
	return []*storedomain.Order{
		{ID: 101, PetID: 105, Quantity: 1, Status: storedomain.StatusDelivered, Complete: true},
		{ID: 102, PetID: 106, Quantity: 2, Status: storedomain.StatusApproved},
		{ID: 103, PetID: 103, Quantity: 1, Status: storedomain.StatusPlaced},
	}
}
