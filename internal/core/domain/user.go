package domain

import "time"

// User is written exactly once, when the identity provider confirms a sign-up.
type User struct {
	ID        string
	Email     string
	Name      string
	CreatedAt time.Time
}
