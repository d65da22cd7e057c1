package endpoints

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaths(t *testing.T) {
	assert.Equal(t, "/pet/9999", PetByID(9999))
	assert.Equal(t, "/store/order/1", OrderByID(1))
	assert.Equal(t, "/pet/a%20b", PetByRawID("a b"))
}
