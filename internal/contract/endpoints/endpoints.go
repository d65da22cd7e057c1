// Package endpoints builds request paths for the petstore resources, relative to the API base URL.
package endpoints

import (
	"fmt"

	"github.com/oapi-codegen/runtime"
)

const (
	Pet             = "/pet"
	PetFindByStatus = "/pet/findByStatus"
	StoreOrder      = "/store/order"
	StoreInventory  = "/store/inventory"
	AdminReset      = "/admin/reset"
)

// PetByID returns /pet/{petId}.
func PetByID(id int64) string {
	return Pet + "/" + pathParam("petId", id)
}

// OrderByID returns /store/order/{orderId}.
func OrderByID(id int64) string {
	return StoreOrder + "/" + pathParam("orderId", id)
}

// PetByRawID returns /pet/{segment} for an arbitrary, possibly non-numeric segment.
func PetByRawID(segment string) string {
	return Pet + "/" + pathParam("petId", segment)
}

func pathParam(name string, value any) string {
	styled, err := runtime.StyleParamWithLocation("simple", false, name, runtime.ParamLocationPath, value)
	if err != nil {
		// simple style only fails for unsupported kinds; ids are ints and strings
		return fmt.Sprint(value)
	}
	return styled
}
