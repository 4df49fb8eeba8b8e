package user

import "github.com/google/uuid"

// Summary is the public projection of a user: never the password hash.
type Summary struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
}
