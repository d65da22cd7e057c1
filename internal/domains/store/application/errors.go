package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/petstore-contract-suite/internal/domains/store/domain"
	"github.com/Apurer/petstore-contract-suite/internal/domains/store/ports"
)

// ErrInvalidInput wraps every order rejected by a domain invariant.
var ErrInvalidInput = errors.New("invalid order input")

// InvalidFields lists the JSON fields named by the invariant violations in err.
func InvalidFields(err error) []string {
	var fields []string
	var walk func(error)
	walk = func(err error) {
		var fieldErr *domain.FieldError
		switch e := err.(type) {
		case interface{ Unwrap() []error }:
			for _, inner := range e.Unwrap() {
				walk(inner)
			}
		default:
			if errors.As(err, &fieldErr) {
				fields = append(fields, fieldErr.Field)
			}
		}
	}
	walk(err)
	return fields
}

func invalid(err error) error {
	if len(InvalidFields(err)) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}

func unknownOrder(id int64, err error) error {
	if errors.Is(err, ports.ErrNotFound) {
		return fmt.Errorf("order %d: %w", id, err)
	}
	return err
}
