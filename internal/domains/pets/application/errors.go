package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/petstore-contract-suite/internal/domains/pets/domain"
)

// ErrInvalidInput signals the request violated a domain invariant.
var ErrInvalidInput = errors.New("invalid pet input")

// ErrInvalidStatusFilter signals a findByStatus filter that is empty or unknown.
var ErrInvalidStatusFilter = errors.New("invalid status value")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyName) || errors.Is(err, domain.ErrInvalidStatus) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
