package scenario

import (
	"context"
	"net/http"
	"net/url"

	"github.com/Apurer/petstore-contract-suite/internal/contract/endpoints"
	"github.com/Apurer/petstore-contract-suite/internal/contract/expect"
	"github.com/Apurer/petstore-contract-suite/internal/contract/fixture"
	"github.com/Apurer/petstore-contract-suite/internal/contract/schema"
)

// NonexistentID is an id the suite assumes no one has created.
const NonexistentID int64 = 9999

// StatusCase pairs a findByStatus filter with the status code it must produce.
type StatusCase struct {
	Label  string
	Status string
	Code   int
}

// FindByStatusCases lists the filters exercised against /pet/findByStatus.
var FindByStatusCases = []StatusCase{
	{Label: "available", Status: "available", Code: http.StatusOK},
	{Label: "pending", Status: "pending", Code: http.StatusOK},
	{Label: "sold", Status: "sold", Code: http.StatusOK},
	{Label: "blablabla", Status: "blablabla", Code: http.StatusBadRequest},
	{Label: "empty", Status: "", Code: http.StatusBadRequest},
}

// FullPetPayload is the pet used to check that every optional field round-trips.
func FullPetPayload() map[string]any {
	return map[string]any{
		"id":        10,
		"name":      "doggie",
		"category":  map[string]any{"id": 1, "name": "Dogs"},
		"photoUrls": []string{"string"},
		"tags":      []map[string]any{{"id": 0, "name": "string"}},
		"status":    "available",
	}
}

func petScenarios() []Scenario {
	out := []Scenario{
		{ID: "pet/delete-nonexistent", Feature: FeaturePet, Title: "Delete a nonexistent pet", Run: deleteNonexistentPet},
		{ID: "pet/update-nonexistent", Feature: FeaturePet, Title: "Update a nonexistent pet", Run: updateNonexistentPet},
		{ID: "pet/get-nonexistent", Feature: FeaturePet, Title: "Get a nonexistent pet", Run: getNonexistentPet},
		{ID: "pet/add", Feature: FeaturePet, Title: "Add a new pet", Run: addPet},
		{ID: "pet/add-full-data", Feature: FeaturePet, Title: "Add a new pet with full data", Run: addPetFullData},
		{ID: "pet/get-by-id", Feature: FeaturePet, Title: "Get pet by id", Run: getPetByID},
		{ID: "pet/update", Feature: FeaturePet, Title: "Update pet information", Run: updatePet},
		{ID: "pet/delete-by-id", Feature: FeaturePet, Title: "Delete pet by id", Run: deletePetByID},
	}
	for _, tc := range FindByStatusCases {
		out = append(out, Scenario{
			ID:      "pet/find-by-status/" + tc.Label,
			Feature: FeaturePet,
			Title:   "Find pets by status " + quoteLabel(tc.Status),
			Run:     findByStatus(tc),
		})
	}
	return out
}

func deleteNonexistentPet(ctx context.Context, env *Env) error {
	res, err := env.Delete(ctx, "delete a pet that does not exist", endpoints.PetByID(NonexistentID))
	if err != nil {
		return err
	}
	return env.Check(ctx, "check status and confirmation text", func() error {
		return expect.All(
			expect.Status(res, http.StatusOK),
			expect.Text(res, "Pet deleted"),
		)
	})
}

func updateNonexistentPet(ctx context.Context, env *Env) error {
	payload := map[string]any{"id": NonexistentID, "name": "Non-existent Pet", "status": "available"}
	res, err := env.Put(ctx, "update a pet that does not exist", endpoints.Pet, payload)
	if err != nil {
		return err
	}
	return env.Check(ctx, "check status and error text", func() error {
		return expect.All(
			expect.Status(res, http.StatusNotFound),
			expect.Text(res, "Pet not found"),
		)
	})
}

func getNonexistentPet(ctx context.Context, env *Env) error {
	res, err := env.Get(ctx, "get a pet that does not exist", endpoints.PetByID(NonexistentID), nil)
	if err != nil {
		return err
	}
	return env.Check(ctx, "check status and error text", func() error {
		return expect.All(
			expect.Status(res, http.StatusNotFound),
			expect.Text(res, "Pet not found"),
		)
	})
}

func addPet(ctx context.Context, env *Env) error {
	payload := fixture.DefaultPet()
	res, err := env.Post(ctx, "create the pet", endpoints.Pet, payload)
	if res != nil && res.StatusCode == http.StatusOK {
		env.Fixtures.TrackPet(1)
	}
	if err != nil {
		return err
	}
	if err := env.Check(ctx, "check status and schema", func() error {
		if err := expect.Status(res, http.StatusOK); err != nil {
			return err
		}
		return schema.PetSchema.ValidateJSON(res.Body)
	}); err != nil {
		return err
	}
	return env.Check(ctx, "check returned pet fields", func() error {
		return expect.FieldsEqual(res.Body, payload, "id", "name", "status")
	})
}

func addPetFullData(ctx context.Context, env *Env) error {
	payload := FullPetPayload()
	res, err := env.Post(ctx, "create the pet with every field", endpoints.Pet, payload)
	if res != nil && res.StatusCode == http.StatusOK {
		env.Fixtures.TrackPet(10)
	}
	if err != nil {
		return err
	}
	if err := env.Check(ctx, "check status and schema", func() error {
		if err := expect.Status(res, http.StatusOK); err != nil {
			return err
		}
		return schema.PetSchema.ValidateJSON(res.Body)
	}); err != nil {
		return err
	}
	return env.Check(ctx, "check returned pet fields", func() error {
		return expect.FieldsEqual(res.Body, payload,
			"id", "name", "category.id", "category.name", "photoUrls", "tags.0.id", "tags.0.name", "status")
	})
}

func getPetByID(ctx context.Context, env *Env) error {
	pet, err := env.Given(ctx, "create a pet", env.Fixtures.CreatePet)
	if err != nil {
		return err
	}
	id, err := idFrom(pet)
	if err != nil {
		return err
	}
	res, err := env.Get(ctx, "get the pet by id", endpoints.PetByID(id), nil)
	if err != nil {
		return err
	}
	return env.Check(ctx, "check status and id", func() error {
		if err := expect.Status(res, http.StatusOK); err != nil {
			return err
		}
		return expect.Field(res.Body, "id", id)
	})
}

func updatePet(ctx context.Context, env *Env) error {
	pet, err := env.Given(ctx, "create a pet", env.Fixtures.CreatePet)
	if err != nil {
		return err
	}
	id, err := idFrom(pet)
	if err != nil {
		return err
	}
	payload := map[string]any{"id": id, "name": "Buddy Updated", "status": "sold"}
	res, err := env.Put(ctx, "update the pet", endpoints.Pet, payload)
	if err != nil {
		return err
	}
	return env.Check(ctx, "check status, schema and updated fields", func() error {
		if err := expect.Status(res, http.StatusOK); err != nil {
			return err
		}
		return expect.All(
			schema.PetSchema.ValidateJSON(res.Body),
			expect.FieldsEqual(res.Body, payload),
		)
	})
}

func deletePetByID(ctx context.Context, env *Env) error {
	pet, err := env.Given(ctx, "create a pet", env.Fixtures.CreatePet)
	if err != nil {
		return err
	}
	id, err := idFrom(pet)
	if err != nil {
		return err
	}
	res, err := env.Delete(ctx, "delete the pet", endpoints.PetByID(id))
	if err != nil {
		return err
	}
	if err := env.Check(ctx, "check delete status", func() error {
		return expect.Status(res, http.StatusOK)
	}); err != nil {
		return err
	}
	res, err = env.Get(ctx, "get the deleted pet", endpoints.PetByID(id), nil)
	if err != nil {
		return err
	}
	return env.Check(ctx, "check the pet is gone", func() error {
		return expect.Status(res, http.StatusNotFound)
	})
}

func findByStatus(tc StatusCase) func(ctx context.Context, env *Env) error {
	return func(ctx context.Context, env *Env) error {
		query := url.Values{"status": {tc.Status}}
		res, err := env.Get(ctx, "find pets by status "+quoteLabel(tc.Status), endpoints.PetFindByStatus, query)
		if err != nil {
			return err
		}
		if err := env.Check(ctx, "check status code", func() error {
			return expect.Status(res, tc.Code)
		}); err != nil {
			return err
		}
		if tc.Code == http.StatusOK {
			return env.Check(ctx, "check body is a list", func() error {
				return expect.IsList(res.Body)
			})
		}
		return env.Check(ctx, "check body is an error object", func() error {
			return expect.IsObject(res.Body)
		})
	}
}

func quoteLabel(s string) string {
	return `"` + s + `"`
}
