package petstoreserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	storehttpmapper "github.com/Apurer/petstore-contract-suite/internal/domains/store/adapters/http/mapper"
	storeapp "github.com/Apurer/petstore-contract-suite/internal/domains/store/application"
	storeports "github.com/Apurer/petstore-contract-suite/internal/domains/store/ports"
)

const textOrderNotFound = "Order not found"

// StoreAPI wires HTTP transport with the store bounded context service.
type StoreAPI struct {
	service storeports.Service
}

// NewStoreAPI creates a StoreAPI backed by the provided service.
func NewStoreAPI(service storeports.Service) StoreAPI {
	return StoreAPI{service: service}
}

// Delete /api/v3/store/order/:orderId
// Delete purchase order by ID
func (api *StoreAPI) DeleteOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "orderId")
	if !ok {
		return
	}
	if err := api.service.DeleteOrder(c.Request.Context(), id); err != nil {
		respondStoreServiceError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// Get /api/v3/store/inventory
// Returns order quantities by status
func (api *StoreAPI) GetInventory(c *gin.Context) {
	inventory, err := api.service.Inventory(c.Request.Context())
	if err != nil {
		respondStoreServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, inventory)
}

// Get /api/v3/store/order/:orderId
// Find purchase order by ID
func (api *StoreAPI) GetOrderById(c *gin.Context) {
	id, ok := parseIDParam(c, "orderId")
	if !ok {
		return
	}
	order, err := api.service.GetOrderByID(c.Request.Context(), id)
	if err != nil {
		respondStoreServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, storehttpmapper.FromDomainOrder(order))
}

// Post /api/v3/store/order
// Place an order for a pet
func (api *StoreAPI) PlaceOrder(c *gin.Context) {
	var payload storehttpmapper.Order
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	order, err := storehttpmapper.ToDomainOrder(payload)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	saved, err := api.service.PlaceOrder(c.Request.Context(), order)
	if err != nil {
		respondStoreServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, storehttpmapper.FromDomainOrder(saved))
}

func respondStoreServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, storeports.ErrNotFound):
		c.String(http.StatusNotFound, textOrderNotFound)
	case errors.Is(err, storeapp.ErrInvalidInput):
		respondError(c, http.StatusBadRequest, err)
	default:
		respondError(c, http.StatusInternalServerError, err)
	}
}
