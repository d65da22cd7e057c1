package types

// CategoryInput describes the category payload supplied to pet use cases.
type CategoryInput struct {
	ID   int64
	Name string
}

// TagInput carries tag metadata for pet commands.
type TagInput struct {
	ID   int64
	Name string
}

// PetMutationInput carries create and update fields. Nil pointers mean the field was absent.
type PetMutationInput struct {
	ID        int64
	Name      *string
	PhotoURLs *[]string
	Category  *CategoryInput
	Tags      *[]TagInput
	Status    *string
}

// AddPetInput captures the request to add a new pet into the catalog.
type AddPetInput struct {
	PetMutationInput
}

// UpdatePetInput changes an existing pet.
type UpdatePetInput struct {
	PetMutationInput
}

// FindPetsByStatusInput filters pets by store status.
type FindPetsByStatusInput struct {
	Statuses []string
}

// PetIdentifier references a pet by its aggregate ID.
type PetIdentifier struct {
	ID int64
}
