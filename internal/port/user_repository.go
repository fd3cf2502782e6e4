package port

import (
	"context"

	"github.com/rl1809/order-fulfillment/internal/core/domain"
)

type UserRepository interface {
	// PutUser writes the user record unconditionally
	PutUser(ctx context.Context, user domain.User) error

	// GetUser retrieves a user by ID, returns domain.ErrNotFound if absent
	GetUser(ctx context.Context, userID string) (*domain.User, error)
}
