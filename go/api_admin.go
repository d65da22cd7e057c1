package petstoreserver

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Resetter restores the twin to its seed state.
type Resetter interface {
	Reset(ctx context.Context) error
}

// AdminAPI exposes twin control endpoints. They are not part of the Petstore API.
type AdminAPI struct {
	resetter Resetter
}

// NewAdminAPI creates an AdminAPI that delegates to resetter.
func NewAdminAPI(resetter Resetter) AdminAPI {
	return AdminAPI{resetter: resetter}
}

// Post /api/v3/admin/reset
// Clears all pets and orders and reloads the seed catalog
func (api *AdminAPI) Reset(c *gin.Context) {
	if api.resetter == nil {
		DefaultHandleFunc(c)
		return
	}
	if err := api.resetter.Reset(c.Request.Context()); err != nil {
		respondError(c, http.StatusInternalServerError, err)
		return
	}
	c.Status(http.StatusNoContent)
}
