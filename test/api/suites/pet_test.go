package suites

import (
	"net/http"
	"net/url"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Apurer/petstore-contract-suite/internal/contract/endpoints"
	"github.com/Apurer/petstore-contract-suite/internal/contract/expect"
	"github.com/Apurer/petstore-contract-suite/internal/contract/fixture"
	"github.com/Apurer/petstore-contract-suite/internal/contract/scenario"
	"github.com/Apurer/petstore-contract-suite/internal/contract/schema"
)

var _ = Describe("Pet", func() {
	Context("When the pet does not exist", func() {
		It("should confirm deletion anyway", func() {
			res, err := client.Delete(ctx, endpoints.PetByID(scenario.NonexistentID))
			Expect(err).NotTo(HaveOccurred())
			Expect(res.StatusCode).To(Equal(http.StatusOK))
			Expect(res.Text()).To(Equal("Pet deleted"))
		})

		It("should refuse to update it", func() {
			res, err := client.Put(ctx, endpoints.Pet, map[string]any{
				"id": scenario.NonexistentID, "name": "Non-existent Pet", "status": "available",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(res.StatusCode).To(Equal(http.StatusNotFound))
			Expect(res.Text()).To(Equal("Pet not found"))
		})

		It("should return 404 on fetch", func() {
			res, err := client.Get(ctx, endpoints.PetByID(scenario.NonexistentID), nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.StatusCode).To(Equal(http.StatusNotFound))
			Expect(res.Text()).To(Equal("Pet not found"))
		})
	})

	Context("When creating pets", func() {
		It("should echo the literal id and validate against the schema", func() {
			payload := fixture.DefaultPet()
			res, err := client.Post(ctx, endpoints.Pet, payload)
			Expect(err).NotTo(HaveOccurred())
			fixtures.TrackPet(1)

			Expect(res.StatusCode).To(Equal(http.StatusOK))
			Expect(schema.PetSchema.ValidateJSON(res.Body)).To(Succeed())
			Expect(expect.FieldsEqual(res.Body, payload, "id", "name", "status")).To(Succeed())
		})

		It("should round-trip every optional field", func() {
			payload := scenario.FullPetPayload()
			res, err := client.Post(ctx, endpoints.Pet, payload)
			Expect(err).NotTo(HaveOccurred())
			fixtures.TrackPet(10)

			Expect(res.StatusCode).To(Equal(http.StatusOK))
			Expect(expect.FieldsEqual(res.Body, payload,
				"category.id", "category.name", "photoUrls", "tags.0.id", "tags.0.name")).To(Succeed())
		})
	})

	Context("When a pet exists", func() {
		var id int64

		BeforeEach(func() {
			pet, err := fixtures.CreatePet(ctx)
			Expect(err).NotTo(HaveOccurred())
			id = int64(pet["id"].(float64))
		})

		It("should be fetched by id", func() {
			res, err := client.Get(ctx, endpoints.PetByID(id), nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.StatusCode).To(Equal(http.StatusOK))
			Expect(expect.Field(res.Body, "id", id)).To(Succeed())
		})

		It("should accept an update", func() {
			payload := map[string]any{"id": id, "name": "Buddy Updated", "status": "sold"}
			res, err := client.Put(ctx, endpoints.Pet, payload)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.StatusCode).To(Equal(http.StatusOK))
			Expect(schema.PetSchema.ValidateJSON(res.Body)).To(Succeed())
			Expect(expect.FieldsEqual(res.Body, payload)).To(Succeed())
		})

		It("should be gone after deletion", func() {
			res, err := client.Delete(ctx, endpoints.PetByID(id))
			Expect(err).NotTo(HaveOccurred())
			Expect(res.StatusCode).To(Equal(http.StatusOK))

			res, err = client.Get(ctx, endpoints.PetByID(id), nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.StatusCode).To(Equal(http.StatusNotFound))
		})
	})

	DescribeTable("finding pets by status",
		func(tc scenario.StatusCase) {
			res, err := client.Get(ctx, endpoints.PetFindByStatus, url.Values{"status": {tc.Status}})
			Expect(err).NotTo(HaveOccurred())
			Expect(res.StatusCode).To(Equal(tc.Code))
			if tc.Code == http.StatusOK {
				Expect(expect.IsList(res.Body)).To(Succeed())
			} else {
				Expect(expect.IsObject(res.Body)).To(Succeed())
			}
		},
		statusEntries(),
	)
})

func statusEntries() []TableEntry {
	entries := make([]TableEntry, 0, len(scenario.FindByStatusCases))
	for _, tc := range scenario.FindByStatusCases {
		entries = append(entries, Entry(tc.Label, tc))
	}
	return entries
}
