package mapper

import (
	"time"

	storedomain "github.com/Apurer/petstore-contract-suite/internal/domains/store/domain"
)

// Order is the wire shape of a store order. ShipDate is omitted unless it was supplied.
type Order struct {
	ID       int64      `json:"id"`
	PetID    int64      `json:"petId"`
	Quantity int32      `json:"quantity"`
	ShipDate *time.Time `json:"shipDate,omitempty"`
	Status   string     `json:"status"`
	Complete bool       `json:"complete"`
}

// ToDomainOrder validates a transport order and converts it into the store domain model.
func ToDomainOrder(order Order) (*storedomain.Order, error) {
	draft := storedomain.Draft{
		ID:       order.ID,
		PetID:    order.PetID,
		Quantity: order.Quantity,
		Status:   order.Status,
		Complete: order.Complete,
	}
	if order.ShipDate != nil {
		draft.ShipDate = *order.ShipDate
	}
	return draft.Order()
}

// FromDomainOrder converts a domain order to the transport representation.
func FromDomainOrder(order *storedomain.Order) Order {
	if order == nil {
		return Order{}
	}
	out := Order{
		ID:       order.ID,
		PetID:    order.PetID,
		Quantity: order.Quantity,
		Status:   string(order.Status),
		Complete: order.Complete,
	}
	if !order.ShipDate.IsZero() {
		shipDate := order.ShipDate
		out.ShipDate = &shipDate
	}
	return out
}
