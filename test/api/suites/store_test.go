package suites

import (
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Apurer/petstore-contract-suite/internal/contract/endpoints"
	"github.com/Apurer/petstore-contract-suite/internal/contract/expect"
	"github.com/Apurer/petstore-contract-suite/internal/contract/fixture"
	"github.com/Apurer/petstore-contract-suite/internal/contract/scenario"
	"github.com/Apurer/petstore-contract-suite/internal/contract/schema"
)

var orderFields = []string{"id", "petId", "quantity", "status", "complete"}

var _ = Describe("Store", func() {
	It("should place an order and echo its five fields", func() {
		payload := fixture.DefaultOrder()
		res, err := client.Post(ctx, endpoints.StoreOrder, payload)
		Expect(err).NotTo(HaveOccurred())
		fixtures.TrackOrder(1)

		Expect(res.StatusCode).To(Equal(http.StatusOK))
		Expect(schema.OrderSchema.ValidateJSON(res.Body)).To(Succeed())
		Expect(expect.FieldsEqual(res.Body, payload, orderFields...)).To(Succeed())
	})

	Context("When an order exists", func() {
		var order map[string]any

		BeforeEach(func() {
			var err error
			order, err = fixtures.CreateOrder(ctx)
			Expect(err).NotTo(HaveOccurred())
		})

		It("should be fetched unchanged", func() {
			res, err := client.Get(ctx, endpoints.OrderByID(int64(order["id"].(float64))), nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.StatusCode).To(Equal(http.StatusOK))
			Expect(expect.FieldsEqual(res.Body, order, orderFields...)).To(Succeed())
		})

		It("should be gone after deletion", func() {
			path := endpoints.OrderByID(int64(order["id"].(float64)))
			res, err := client.Delete(ctx, path)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.StatusCode).To(Equal(http.StatusOK))

			res, err = client.Get(ctx, path, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.StatusCode).To(Equal(http.StatusNotFound))
		})
	})

	It("should return 404 for an unknown order", func() {
		res, err := client.Get(ctx, endpoints.OrderByID(scenario.NonexistentID), nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.StatusCode).To(Equal(http.StatusNotFound))
	})

	It("should report integer approved and delivered counts", func() {
		res, err := client.Get(ctx, endpoints.StoreInventory, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.StatusCode).To(Equal(http.StatusOK))
		Expect(expect.IsInteger(res.Body, "approved")).To(Succeed())
		Expect(expect.IsInteger(res.Body, "delivered")).To(Succeed())
		Expect(schema.InventorySchema.ValidateJSON(res.Body)).To(Succeed())
	})
})
