package customer

import "errors"

var (
	ErrCustomerNotFound  = errors.New("customer not found")
	ErrDuplicateDiscord  = errors.New("a customer with this discord id already exists")
	ErrInvalidDuration   = errors.New("duration must be at least one month")
	ErrNegativePrice     = errors.New("price cannot be negative")
	ErrInvalidTransition = errors.New("invalid status transition")
)
