package mapper

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	storedomain "github.com/Apurer/petstore-contract-suite/internal/domains/store/domain"
)

func TestFromDomainOrder_OmitsMissingShipDate(t *testing.T) {
	order, err := storedomain.Draft{ID: 1, PetID: 1, Quantity: 1, Complete: true}.Order()
	require.NoError(t, err)

	raw, err := json.Marshal(FromDomainOrder(order))
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1,"petId":1,"quantity":1,"status":"placed","complete":true}`, string(raw))
}

func TestToDomainOrder_KeepsShipDate(t *testing.T) {
	var in Order
	require.NoError(t, json.Unmarshal([]byte(`{"id":2,"petId":3,"quantity":1,"shipDate":"2024-03-01T10:00:00Z","status":"approved"}`), &in))

	order, err := ToDomainOrder(in)
	require.NoError(t, err)
	assert.Equal(t, storedomain.StatusApproved, order.Status)
	assert.Equal(t, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), order.ShipDate)

	raw, err := json.Marshal(FromDomainOrder(order))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"shipDate":"2024-03-01T10:00:00Z"`)
}

func TestToDomainOrder_NamesInvalidFields(t *testing.T) {
	_, err := ToDomainOrder(Order{ID: 1, Status: "shipped"})
	require.Error(t, err)
	assert.ErrorIs(t, err, storedomain.ErrInvalidStatus)
	assert.ErrorIs(t, err, storedomain.ErrInvalidPetID)
	assert.Contains(t, err.Error(), `status: order status is invalid: "shipped"`)
}
