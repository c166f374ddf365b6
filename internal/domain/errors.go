package domain

import "errors"

// ErrNotFound is returned when the requested trip or card does not exist.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned when input fails a business rule
// (e.g. unknown card type, negative cost, trip without a name).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrLastTrip is returned when deleting the only remaining trip.
// A workspace always holds at least one trip. Handlers should map this to HTTP 409.
var ErrLastTrip = errors.New("cannot delete the last trip")
