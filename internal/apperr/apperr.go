// Package apperr defines the named failure conditions surfaced by the
// marketplace core. Callers match them with errors.Is; handlers map them
// to HTTP statuses.
package apperr

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

var (
	// Authorization
	ErrUnauthorized = errors.New("not authorized to perform this action")

	// Uniqueness
	ErrAlreadyExists = errors.New("record already exists")

	// Validation
	ErrInvalidDates = errors.New("invalid dates")
	ErrValidation   = errors.New("validation failed")

	// Resource
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrEscrowMismatch    = errors.New("escrow balance mismatch")

	// State
	ErrJobAlreadyFilled       = errors.New("job has already been filled")
	ErrApplicationNotApproved = errors.New("application has not been approved")
	ErrWorkNotCompleted       = errors.New("work has not been completed")
	ErrAlreadyPaid            = errors.New("job has already been paid out")

	ErrNotFound = errors.New("record not found")
)

// HTTPStatus maps a core error to the status code the API responds with.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrUnauthorized):
		return fiber.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrAlreadyExists),
		errors.Is(err, ErrJobAlreadyFilled),
		errors.Is(err, ErrApplicationNotApproved),
		errors.Is(err, ErrWorkNotCompleted),
		errors.Is(err, ErrAlreadyPaid):
		return fiber.StatusConflict
	case errors.Is(err, ErrInsufficientFunds):
		return fiber.StatusPaymentRequired
	case errors.Is(err, ErrInvalidDates), errors.Is(err, ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrEscrowMismatch):
		return fiber.StatusInternalServerError
	default:
		return fiber.StatusInternalServerError
	}
}
