package domain

import "errors"

var (
	ErrValidation                  = errors.New("validation error")
	ErrNotFoundOrInsufficientStock = errors.New("item not found or insufficient stock")
	ErrStoreUnavailable            = errors.New("store unavailable")
	ErrStartFailure                = errors.New("workflow start failure")
	ErrNotFound                    = errors.New("not found")
)

// Error type names carried by workflow failures. They match the taxonomy so a
// run's failure can be classified from its history alone.
const (
	ErrorTypeNotFoundOrInsufficientStock = "NotFoundOrInsufficientStock"
	ErrorTypeStoreUnavailable            = "StoreUnavailable"
	ErrorTypeValidation                  = "ValidationError"
)
