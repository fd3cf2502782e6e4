package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// NewOrderID returns a UUIDv7 string. Version 7 ids start with a millisecond
// timestamp and the generator keeps them monotonic within a process, so the
// canonical string form sorts by creation order.
func NewOrderID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generate order id: %w", err)
	}
	return id.String(), nil
}

// NewItemID returns a fresh item identifier.
func NewItemID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generate item id: %w", err)
	}
	return id.String(), nil
}
