package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDraftOrder(t *testing.T) {
	shipDate := time.Date(2024, 3, 1, 12, 0, 0, 0, time.FixedZone("CET", 3600))

	tests := []struct {
		name       string
		draft      Draft
		wantStatus Status
		wantFields []string
	}{
		{name: "blank status is placed", draft: Draft{ID: 1, PetID: 1, Quantity: 1}, wantStatus: StatusPlaced},
		{name: "known status", draft: Draft{ID: 1, PetID: 1, Quantity: 2, Status: "approved"}, wantStatus: StatusApproved},
		{name: "status is case sensitive", draft: Draft{ID: 1, PetID: 1, Quantity: 1, Status: "Placed"}, wantFields: []string{"status"}},
		{name: "zero quantity", draft: Draft{ID: 1, PetID: 1}, wantFields: []string{"quantity"}},
		{name: "everything wrong", draft: Draft{Status: "lost", Quantity: -1}, wantFields: []string{"status", "petId", "quantity"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order, err := tt.draft.Order()
			if len(tt.wantFields) > 0 {
				require.Error(t, err)
				var fields []string
				for _, e := range err.(interface{ Unwrap() []error }).Unwrap() {
					var fieldErr *FieldError
					if errors.As(e, &fieldErr) {
						fields = append(fields, fieldErr.Field)
					}
				}
				assert.Equal(t, tt.wantFields, fields)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, order.Status)
		})
	}

	order, err := Draft{ID: 1, PetID: 1, Quantity: 1, ShipDate: shipDate}.Order()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, order.ShipDate.Location())
	assert.True(t, shipDate.Equal(order.ShipDate))
}

func TestFieldError_Unwraps(t *testing.T) {
	_, err := Draft{ID: 1, PetID: 1, Quantity: 0}.Order()
	require.ErrorIs(t, err, ErrInvalidQuantity)
	assert.EqualError(t, err, "quantity: quantity must be greater than zero")
}

func TestTally(t *testing.T) {
	inv := Tally([]*Order{
		{Quantity: 2, Status: StatusApproved},
		{Quantity: 1, Status: StatusApproved},
		{Quantity: 5, Status: StatusDelivered},
	})
	assert.Equal(t, map[string]int32{"placed": 0, "approved": 3, "delivered": 5}, inv.Counts())
	assert.Equal(t, map[string]int32{"placed": 0, "approved": 0, "delivered": 0}, NewInventory().Counts())
}

func TestClone(t *testing.T) {
	order := &Order{ID: 1, Quantity: 1}
	clone := order.Clone()
	clone.Quantity = 2
	assert.Equal(t, int32(1), order.Quantity)
}
