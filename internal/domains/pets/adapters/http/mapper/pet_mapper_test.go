package mapper

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/petstore-contract-suite/internal/domains/pets/domain"
)

func TestFromDomainPet_AlwaysRendersCollections(t *testing.T) {
	pet, err := domain.NewPet(1, "Buddy")
	require.NoError(t, err)

	raw, err := json.Marshal(FromDomainPet(pet))
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1,"name":"Buddy","photoUrls":[],"tags":[],"status":"available"}`, string(raw))
}

func TestFromDomainPet_KeepsZeroTagID(t *testing.T) {
	pet, err := domain.NewPet(10, "doggie")
	require.NoError(t, err)
	pet.UpdateCategory(&domain.Category{ID: 1, Name: "Dogs"})
	pet.ReplaceTags([]domain.Tag{{ID: 0, Name: "string"}})

	raw, err := json.Marshal(FromDomainPet(pet))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"tags":[{"id":0,"name":"string"}]`)
	assert.Contains(t, string(raw), `"category":{"id":1,"name":"Dogs"}`)
}

func TestToMutationInput_PreservesPresence(t *testing.T) {
	var model MutationPet
	require.NoError(t, json.Unmarshal([]byte(`{"id":1,"name":"Buddy","status":"available"}`), &model))

	input := ToMutationInput(model)
	require.NotNil(t, input.Name)
	require.NotNil(t, input.Status)
	assert.Nil(t, input.PhotoURLs)
	assert.Nil(t, input.Tags)
	assert.Nil(t, input.Category)
}
