package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Status enumerates order progression.
type Status string

const (
	StatusPlaced    Status = "placed"
	StatusApproved  Status = "approved"
	StatusDelivered Status = "delivered"
)

// Statuses lists every known order status in inventory order.
var Statuses = []Status{StatusPlaced, StatusApproved, StatusDelivered}

var (
	ErrInvalidPetID    = errors.New("pet id must be greater than zero")
	ErrInvalidQuantity = errors.New("quantity must be greater than zero")
	ErrInvalidStatus   = errors.New("order status is invalid")
)

// FieldError ties a violated order invariant to the JSON field that carries it.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Err.Error()
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// ParseStatus maps raw onto a known status. Blank means placed.
func ParseStatus(raw string) (Status, error) {
	status := Status(strings.TrimSpace(raw))
	if status == "" {
		return StatusPlaced, nil
	}
	for _, known := range Statuses {
		if status == known {
			return status, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
}

// Order is a store purchase order. A zero ShipDate means none was supplied and none is rendered.
type Order struct {
	ID       int64
	PetID    int64
	Quantity int32
	ShipDate time.Time
	Status   Status
	Complete bool
}

// Draft holds the client-supplied fields of an order before validation.
type Draft struct {
	ID       int64
	PetID    int64
	Quantity int32
	ShipDate time.Time
	Status   string
	Complete bool
}

// Order validates d and returns the order it describes. All violated fields are reported together.
func (d Draft) Order() (*Order, error) {
	var errs []error
	status, err := ParseStatus(d.Status)
	if err != nil {
		errs = append(errs, &FieldError{Field: "status", Err: err})
	}
	order := &Order{
		ID:       d.ID,
		PetID:    d.PetID,
		Quantity: d.Quantity,
		Status:   status,
		Complete: d.Complete,
	}
	if !d.ShipDate.IsZero() {
		order.ShipDate = d.ShipDate.UTC()
	}
	errs = append(errs, order.validateAmounts()...)
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return order, nil
}

// Validate checks an already built order, defaulting a blank status to placed.
func (o *Order) Validate() error {
	status, err := ParseStatus(string(o.Status))
	if err != nil {
		return errors.Join(append([]error{&FieldError{Field: "status", Err: err}}, o.validateAmounts()...)...)
	}
	o.Status = status
	return errors.Join(o.validateAmounts()...)
}

func (o *Order) validateAmounts() []error {
	var errs []error
	if o.PetID <= 0 {
		errs = append(errs, &FieldError{Field: "petId", Err: ErrInvalidPetID})
	}
	if o.Quantity <= 0 {
		errs = append(errs, &FieldError{Field: "quantity", Err: ErrInvalidQuantity})
	}
	return errs
}

// Clone returns a copy that shares nothing with o.
func (o *Order) Clone() *Order {
	c := *o
	return &c
}

// Inventory is the ordered quantity per status. Every known status is present.
type Inventory map[Status]int32

// NewInventory returns an inventory with every known status at zero.
func NewInventory() Inventory {
	inv := make(Inventory, len(Statuses))
	for _, status := range Statuses {
		inv[status] = 0
	}
	return inv
}

// Tally sums the quantities of orders by status.
func Tally(orders []*Order) Inventory {
	inv := NewInventory()
	for _, order := range orders {
		inv[order.Status] += order.Quantity
	}
	return inv
}

// Counts renders inv keyed by status name, the shape the inventory endpoint returns.
func (inv Inventory) Counts() map[string]int32 {
	out := make(map[string]int32, len(inv))
	for status, quantity := range inv {
		out[string(status)] = quantity
	}
	return out
}
