package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rl1809/order-fulfillment/internal/core/domain"
	"github.com/rl1809/order-fulfillment/internal/port"
)

// PostConfirmationEvent is the identity provider's sign-up confirmation
// callback. Only the user attributes are read.
type PostConfirmationEvent struct {
	Request struct {
		UserAttributes struct {
			Sub   string `json:"sub"`
			Email string `json:"email"`
			Name  string `json:"name"`
		} `json:"userAttributes"`
	} `json:"request"`
}

type UserService struct {
	users  port.UserRepository
	now    func() time.Time
	logger *slog.Logger
}

func NewUserService(users port.UserRepository, logger *slog.Logger) *UserService {
	return &UserService{users: users, now: time.Now, logger: logger}
}

// Confirm records the confirmed user. The write is unconditional: a repeated
// confirmation overwrites the earlier record.
func (s *UserService) Confirm(ctx context.Context, event PostConfirmationEvent) error {
	attrs := event.Request.UserAttributes
	if attrs.Sub == "" {
		return fmt.Errorf("%w: sub is required", domain.ErrValidation)
	}

	user := domain.User{
		ID:        attrs.Sub,
		Email:     attrs.Email,
		Name:      attrs.Name,
		CreatedAt: s.now().UTC(),
	}
	if err := s.users.PutUser(ctx, user); err != nil {
		s.logger.Error("failed to record user", "user_id", user.ID, "error", err)
		return fmt.Errorf("record user %s: %w", user.ID, err)
	}

	s.logger.Info("user recorded", "user_id", user.ID)
	return nil
}
