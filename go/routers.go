/*
 * Swagger Petstore - OpenAPI 3.0
 *
 * Subset of the Petstore API exercised by the contract suite, plus a reset hook for the twin.
 *
 * API version: 1.0.x
 */

package petstoreserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// BasePath is where every Petstore route is mounted.
const BasePath = "/api/v3"

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
}

// NewRouter returns a new router.
func NewRouter(handleFunctions ApiHandleFunctions) *gin.Engine {
	return NewRouterWithGinEngine(gin.Default(), handleFunctions)
}

// NewRouterWithGinEngine adds every route to router. Middleware must already be installed.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		switch route.Method {
		case http.MethodGet:
			router.GET(route.Pattern, route.HandlerFunc)
		case http.MethodPost:
			router.POST(route.Pattern, route.HandlerFunc)
		case http.MethodPut:
			router.PUT(route.Pattern, route.HandlerFunc)
		case http.MethodPatch:
			router.PATCH(route.Pattern, route.HandlerFunc)
		case http.MethodDelete:
			router.DELETE(route.Pattern, route.HandlerFunc)
		}
	}
	return router
}

// DefaultHandleFunc is the default handler for routes without one.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

// ApiHandleFunctions groups the handlers of every API.
type ApiHandleFunctions struct {
	// Routes for the PetAPI part of the API
	PetAPI PetAPI
	// Routes for the StoreAPI part of the API
	StoreAPI StoreAPI
	// Routes for the AdminAPI part of the API
	AdminAPI AdminAPI
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	return []Route{
		{
			"AddPet",
			http.MethodPost,
			BasePath + "/pet",
			handleFunctions.PetAPI.AddPet,
		},
		{
			"UpdatePet",
			http.MethodPut,
			BasePath + "/pet",
			handleFunctions.PetAPI.UpdatePet,
		},
		{
			"FindPetsByStatus",
			http.MethodGet,
			BasePath + "/pet/findByStatus",
			handleFunctions.PetAPI.FindPetsByStatus,
		},
		{
			"GetPetById",
			http.MethodGet,
			BasePath + "/pet/:petId",
			handleFunctions.PetAPI.GetPetById,
		},
		{
			"DeletePet",
			http.MethodDelete,
			BasePath + "/pet/:petId",
			handleFunctions.PetAPI.DeletePet,
		},
		{
			"GetInventory",
			http.MethodGet,
			BasePath + "/store/inventory",
			handleFunctions.StoreAPI.GetInventory,
		},
		{
			"PlaceOrder",
			http.MethodPost,
			BasePath + "/store/order",
			handleFunctions.StoreAPI.PlaceOrder,
		},
		{
			"GetOrderById",
			http.MethodGet,
			BasePath + "/store/order/:orderId",
			handleFunctions.StoreAPI.GetOrderById,
		},
		{
			"DeleteOrder",
			http.MethodDelete,
			BasePath + "/store/order/:orderId",
			handleFunctions.StoreAPI.DeleteOrder,
		},
		{
			"Reset",
			http.MethodPost,
			BasePath + "/admin/reset",
			handleFunctions.AdminAPI.Reset,
		},
	}
}
