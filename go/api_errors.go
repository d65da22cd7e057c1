package petstoreserver

import (
	"github.com/gin-gonic/gin"

	apierrors "github.com/Apurer/petstore-contract-suite/internal/shared/errors"
)

// respondError renders err as an RFC 7807 problem for status.
func respondError(c *gin.Context, status int, err error) {
	if err == nil {
		return
	}
	apierrors.Respond(c, apierrors.ForStatus(status, err))
}
